package match

import (
	xxhash "github.com/cespare/xxhash/v2"
)

// Constants for the key index.
const (
	keyIndexLoadFactor     = 0.75       // load factor before resize
	keyIndexGrowthFactor   = 2          // growth factor on resize
	keyIndexCapacityFactor = 1.3        // initial capacity headroom
	hashSignBitMask        = 0x7FFFFFFF // mask to remove sign bit for positive modulo
)

// keyIndex is an xxhash-bucketed map from canonical key encodings to the
// compact position of their FIRST occurrence. Keeping only the first
// insertion pins the duplicate-key tie-break: inserting in ascending
// compact order makes the lowest compact index win.
type keyIndex struct {
	buckets  [][]keyEntry
	capacity int
	size     int
}

type keyEntry struct {
	key string
	pos int // compact position of the first occurrence
}

// newKeyIndex creates a key index sized for an estimated number of keys.
func newKeyIndex(estimatedSize int) *keyIndex {
	capacity := nextPowerOfTwo(int(float64(estimatedSize) * keyIndexCapacityFactor))
	return &keyIndex{
		buckets:  make([][]keyEntry, capacity),
		capacity: capacity,
	}
}

// Put records pos for key unless the key is already present.
func (ki *keyIndex) Put(key string, pos int) {
	bucketIdx := ki.bucketFor(key)

	for _, entry := range ki.buckets[bucketIdx] {
		if entry.key == key {
			// First occurrence wins; later duplicates are ignored.
			return
		}
	}

	ki.buckets[bucketIdx] = append(ki.buckets[bucketIdx], keyEntry{key: key, pos: pos})
	ki.size++

	if float64(ki.size) > float64(ki.capacity)*keyIndexLoadFactor {
		ki.resize()
	}
}

// Get retrieves the first-occurrence compact position for a key.
func (ki *keyIndex) Get(key string) (int, bool) {
	bucketIdx := ki.bucketFor(key)

	for _, entry := range ki.buckets[bucketIdx] {
		if entry.key == key {
			return entry.pos, true
		}
	}
	return 0, false
}

func (ki *keyIndex) bucketFor(key string) int {
	hash := xxhash.Sum64String(key)
	return int((hash & hashSignBitMask) % uint64(ki.capacity))
}

// resize doubles the capacity and rehashes all entries.
func (ki *keyIndex) resize() {
	newCapacity := ki.capacity * keyIndexGrowthFactor
	newBuckets := make([][]keyEntry, newCapacity)

	for _, bucket := range ki.buckets {
		for _, entry := range bucket {
			hash := xxhash.Sum64String(entry.key)
			idx := int((hash & hashSignBitMask) % uint64(newCapacity))
			newBuckets[idx] = append(newBuckets[idx], entry)
		}
	}

	ki.buckets = newBuckets
	ki.capacity = newCapacity
}

// nextPowerOfTwo returns the next power of two >= n.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	power := 1
	for power < n {
		power <<= 1
	}
	return power
}
