// Package catalog provides the tabular catalog type that matchers operate on.
package catalog

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
)

// ISeries provides a type-erased interface for columns of any type.
type ISeries interface {
	Name() string
	Len() int
	Unit() string
	DataType() arrow.DataType
	IsNull(index int) bool
	HasNulls() bool
	String() string
	Array() arrow.Array
	Release()
}

// Catalog represents a named table of equal-length typed columns.
// Matchers treat catalogs as read-only.
type Catalog struct {
	name    string
	columns map[string]ISeries
	order   []string // Maintains column order
}

// New creates a new Catalog from a slice of ISeries.
func New(name string, series ...ISeries) *Catalog {
	columns := make(map[string]ISeries)
	order := make([]string, 0, len(series))

	for _, s := range series {
		columns[s.Name()] = s
		order = append(order, s.Name())
	}

	return &Catalog{
		name:    name,
		columns: columns,
		order:   order,
	}
}

// Name returns the catalog name.
func (c *Catalog) Name() string {
	return c.name
}

// Columns returns the names of all columns in order.
func (c *Catalog) Columns() []string {
	if len(c.order) == 0 {
		return []string{}
	}
	return append([]string(nil), c.order...)
}

// Len returns the number of rows (assumes all columns have same length).
func (c *Catalog) Len() int {
	if len(c.order) > 0 {
		if s, exists := c.columns[c.order[0]]; exists {
			return s.Len()
		}
	}
	return 0
}

// Width returns the number of columns.
func (c *Catalog) Width() int {
	return len(c.columns)
}

// Column returns the series for the given column name.
func (c *Catalog) Column(name string) (ISeries, bool) {
	s, exists := c.columns[name]
	return s, exists
}

// HasColumn checks if a column exists.
func (c *Catalog) HasColumn(name string) bool {
	_, exists := c.columns[name]
	return exists
}

// Masked reports whether any column of the catalog has missing rows.
func (c *Catalog) Masked() bool {
	for _, s := range c.columns {
		if s.HasNulls() {
			return true
		}
	}
	return false
}

// String returns a string representation of the catalog.
func (c *Catalog) String() string {
	if len(c.columns) == 0 {
		return fmt.Sprintf("Catalog[%s: empty]", c.name)
	}

	parts := []string{fmt.Sprintf("Catalog[%s: %dx%d]", c.name, c.Len(), c.Width())}

	for _, name := range c.order {
		s := c.columns[name]
		if s.Unit() != "" {
			parts = append(parts, fmt.Sprintf("  %s: %s [%s]", name, s.DataType().String(), s.Unit()))
		} else {
			parts = append(parts, fmt.Sprintf("  %s: %s", name, s.DataType().String()))
		}
	}

	return strings.Join(parts, "\n")
}

// Release releases all underlying Arrow memory.
func (c *Catalog) Release() {
	for _, s := range c.columns {
		s.Release()
	}
}
