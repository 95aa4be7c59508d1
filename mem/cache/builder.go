package cache

import "github.com/sarchlab/cachesim/mem/cache/internal/tagging"

// Builder can build caches.
type Builder struct {
	geometry Geometry
}

// MakeBuilder creates a new builder with the default geometry.
func MakeBuilder() Builder {
	return Builder{
		geometry: Defaults(),
	}
}

// WithGeometry sets the whole geometry of the cache.
func (b Builder) WithGeometry(g Geometry) Builder {
	b.geometry = g
	return b
}

// WithSetBits sets the number of set index bits.
func (b Builder) WithSetBits(setBits int) Builder {
	b.geometry.SetBits = setBits
	return b
}

// WithWays sets the number of lines in each set.
func (b Builder) WithWays(ways int) Builder {
	b.geometry.Ways = ways
	return b
}

// WithBlockBits sets the number of block offset bits.
func (b Builder) WithBlockBits(blockBits int) Builder {
	b.geometry.BlockBits = blockBits
	return b
}

func (b Builder) parametersMustBeValid() {
	if err := b.geometry.Validate(); err != nil {
		panic(err)
	}
}

// Build builds a cache. It panics if the geometry is invalid, so callers
// that take the geometry from users should call Geometry.Validate first.
func (b Builder) Build() *Cache {
	b.parametersMustBeValid()

	c := &Cache{
		geometry: b.geometry,
		decoder:  NewAddressDecoder(b.geometry.SetBits, b.geometry.BlockBits),
		tags: tagging.NewTagArray(
			b.geometry.NumSets(),
			b.geometry.Ways,
		),
		victimFinder: tagging.NewLRUVictimFinder(),
	}

	return c
}
