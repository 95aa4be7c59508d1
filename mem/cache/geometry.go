package cache

import "fmt"

// MaxLines is the largest number of lines a simulated cache may hold.
const MaxLines = 1 << 24

// Geometry holds the immutable shape of a cache.
type Geometry struct {
	SetBits   int // s, the number of set index bits
	Ways      int // E, the number of lines per set
	BlockBits int // b, the number of block offset bits
}

// Defaults returns a 16KB, 4-way cache with 64-byte blocks.
func Defaults() Geometry {
	return Geometry{
		SetBits:   6,
		Ways:      4,
		BlockBits: 6,
	}
}

// NumSets returns the number of sets, 2^s.
func (g Geometry) NumSets() int {
	return 1 << g.SetBits
}

// BlockSize returns the number of bytes in a block, 2^b.
func (g Geometry) BlockSize() uint64 {
	return uint64(1) << g.BlockBits
}

// NumLines returns the number of lines across all the sets.
func (g Geometry) NumLines() int {
	return g.NumSets() * g.Ways
}

// Validate reports a ConfigurationError if the geometry cannot be simulated.
func (g Geometry) Validate() error {
	if g.SetBits < 0 || g.SetBits > 63 {
		return &ConfigurationError{
			Field:  "s",
			Value:  g.SetBits,
			Reason: "must be between 0 and 63",
		}
	}

	if g.BlockBits < 0 || g.BlockBits > 63 {
		return &ConfigurationError{
			Field:  "b",
			Value:  g.BlockBits,
			Reason: "must be between 0 and 63",
		}
	}

	if g.SetBits+g.BlockBits > 64 {
		return &ConfigurationError{
			Field:  "s+b",
			Value:  g.SetBits + g.BlockBits,
			Reason: "must not exceed the 64-bit address width",
		}
	}

	if g.Ways < 1 {
		return &ConfigurationError{
			Field:  "E",
			Value:  g.Ways,
			Reason: "must be at least 1",
		}
	}

	if g.Ways > MaxLines {
		return &ConfigurationError{
			Field:  "E",
			Value:  g.Ways,
			Reason: fmt.Sprintf("must not exceed %d", MaxLines),
		}
	}

	if g.SetBits > 24 || uint64(1)<<g.SetBits > uint64(MaxLines/g.Ways) {
		return &ConfigurationError{
			Field:  "s",
			Value:  g.SetBits,
			Reason: fmt.Sprintf("cache would exceed %d lines", MaxLines),
		}
	}

	return nil
}

func (g Geometry) String() string {
	return fmt.Sprintf("s=%d E=%d b=%d", g.SetBits, g.Ways, g.BlockBits)
}
