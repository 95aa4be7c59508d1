// Package cache models a set-associative cache with LRU replacement.
package cache

import (
	"fmt"

	"github.com/sarchlab/cachesim/mem/cache/internal/tagging"
)

// LineState is a read-only copy of a cache line.
type LineState struct {
	WayID   int    `json:"way_id"`
	Valid   bool   `json:"valid"`
	Tag     uint64 `json:"tag"`
	Recency uint64 `json:"recency"`
}

// Cache is a set-associative cache that tracks tags only. A Cache is not safe
// for concurrent use.
type Cache struct {
	geometry     Geometry
	decoder      AddressDecoder
	tags         tagging.TagArray
	victimFinder tagging.VictimFinder
}

// Geometry returns the shape of the cache.
func (c *Cache) Geometry() Geometry {
	return c.geometry
}

// Decoder returns the address decoder that matches the cache geometry.
func (c *Cache) Decoder() AddressDecoder {
	return c.decoder
}

// Access looks up the tag in the given set, fills or replaces a line on a
// miss, and updates the LRU order of the set.
func (c *Cache) Access(setIndex, tag uint64) Outcome {
	return c.AccessDetailed(setIndex, tag).Outcome
}

// AccessAddress decodes the address and accesses the cache with it.
func (c *Cache) AccessAddress(addr uint64) AccessResult {
	setIndex, tag := c.decoder.Decode(addr)
	return c.AccessDetailed(setIndex, tag)
}

// AccessDetailed is Access that also reports the way that is touched and the
// tag that is evicted.
func (c *Cache) AccessDetailed(setIndex, tag uint64) AccessResult {
	setID := c.mustBeValidSet(setIndex)

	result := AccessResult{
		SetIndex: setIndex,
		Tag:      tag,
	}

	block, found := c.tags.Lookup(setID, tag)
	if found {
		result.Outcome = Hit
	} else {
		block = c.victimFinder.FindVictim(c.tags.GetSet(setID))

		result.Outcome = Miss
		if block.IsValid {
			result.Outcome = MissWithEviction
			result.EvictedTag = block.Tag
		}

		block.IsValid = true
		block.Tag = tag
		c.tags.Update(block)
	}

	c.tags.Visit(block)
	result.WayID = block.WayID

	return result
}

func (c *Cache) mustBeValidSet(setIndex uint64) int {
	if setIndex >= uint64(c.tags.NumSets()) {
		panic(fmt.Sprintf("set index %d out of range [0, %d)",
			setIndex, c.tags.NumSets()))
	}

	return int(setIndex)
}

// SetState returns a copy of the lines in a set.
func (c *Cache) SetState(setIndex int) []LineState {
	set := c.tags.GetSet(setIndex)

	lines := make([]LineState, 0, len(set.Blocks))
	for _, b := range set.Blocks {
		lines = append(lines, LineState{
			WayID:   b.WayID,
			Valid:   b.IsValid,
			Tag:     b.Tag,
			Recency: b.Recency,
		})
	}

	return lines
}

// Reset invalidates every line in the cache.
func (c *Cache) Reset() {
	c.tags.Reset()
}
