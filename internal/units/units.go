// Package units provides angular unit handling for sky coordinates.
//
// Catalog columns may carry free-form unit strings in their metadata.
// Only units convertible to radians are usable for coordinates; anything
// else (time, flux, length, unrecognized strings) is reported as
// non-angular so callers can fail with a descriptive unit error.
package units

import (
	"math"
	"strings"
)

// Unit is a normalized unit name. The zero value is "no unit".
type Unit string

// Angular units understood by the matcher.
const (
	Degree    Unit = "deg"
	Radian    Unit = "rad"
	HourAngle Unit = "hourangle"
	Arcmin    Unit = "arcmin"
	Arcsec    Unit = "arcsec"
)

// radiansPer maps each angular unit to its size in radians.
var radiansPer = map[Unit]float64{
	Degree:    math.Pi / 180,
	Radian:    1,
	HourAngle: math.Pi / 12,
	Arcmin:    math.Pi / 180 / 60,
	Arcsec:    math.Pi / 180 / 3600,
}

// aliases maps common spellings to normalized unit names.
var aliases = map[string]Unit{
	"deg":        Degree,
	"degree":     Degree,
	"degrees":    Degree,
	"rad":        Radian,
	"radian":     Radian,
	"radians":    Radian,
	"hourangle":  HourAngle,
	"arcmin":     Arcmin,
	"arcminute":  Arcmin,
	"arcminutes": Arcmin,
	"arcsec":     Arcsec,
	"arcsecond":  Arcsec,
	"arcseconds": Arcsec,
}

// Parse normalizes a unit string. Catalogs are inconsistent about case
// ("deg", "DEG"), so lookup is case-insensitive. Unrecognized strings are
// preserved as-is so error messages can report what was actually found;
// such units are not angular. Note "hour" is deliberately absent from the
// alias table: it is a time unit, distinct from the angular "hourangle".
func Parse(s string) Unit {
	if u, ok := aliases[strings.ToLower(s)]; ok {
		return u
	}
	return Unit(s)
}

// Angular reports whether the unit is convertible to radians.
func (u Unit) Angular() bool {
	_, ok := radiansPer[u]
	return ok
}

// ToRadians converts a value in this unit to radians. It must only be
// called on angular units; non-angular units yield NaN.
func (u Unit) ToRadians(v float64) float64 {
	f, ok := radiansPer[u]
	if !ok {
		return math.NaN()
	}
	return v * f
}

// ArcsecPerRadian converts separations back to arcseconds.
const ArcsecPerRadian = 180 * 3600 / math.Pi
