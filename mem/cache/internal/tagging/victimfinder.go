package tagging

// A VictimFinder decides with block should be evicted
type VictimFinder interface {
	FindVictim(set *Set) Block
}

// LRUVictimFinder evicts the least recently used block to evict
type LRUVictimFinder struct {
}

// NewLRUVictimFinder returns a newly constructed lru evictor
func NewLRUVictimFinder() *LRUVictimFinder {
	e := new(LRUVictimFinder)
	return e
}

// FindVictim returns the block that a new tag should be placed in. An
// invalid block is preferred. Otherwise, the block with the largest recency
// is returned. The block with the lowest way index wins ties.
func (e *LRUVictimFinder) FindVictim(set *Set) Block {
	if len(set.Blocks) == 0 {
		panic("cannot find a victim in a set without blocks")
	}

	for _, block := range set.Blocks {
		if !block.IsValid {
			return block
		}
	}

	victim := set.Blocks[0]
	for _, block := range set.Blocks[1:] {
		if block.Recency > victim.Recency {
			victim = block
		}
	}

	return victim
}
