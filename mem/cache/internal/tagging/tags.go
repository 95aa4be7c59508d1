// Package tagging keeps the tag state of a set-associative cache.
package tagging

// TagArray holds the blocks of every set in a cache.
type TagArray interface {
	Lookup(setID int, tag uint64) (Block, bool)
	Update(block Block)
	Visit(block Block)
	GetSet(setID int) *Set
	NumSets() int
	NumWays() int
	Reset()
}

// NewTagArray creates a tag array with all blocks invalid.
func NewTagArray(numSets, numWays int) TagArray {
	t := &tagArrayImpl{
		numSets: numSets,
		numWays: numWays,
		Sets:    []Set{},
	}

	t.Reset()

	return t
}

// A Block of a cache is the information that is associated with a cache line
type Block struct {
	Tag     uint64
	SetID   int
	WayID   int
	IsValid bool

	// Recency is the number of accesses to the set since this block was last
	// touched. 0 marks the most recently used block.
	Recency uint64
}

// A Set is a list of blocks where a certain piece memory can be stored at.
type Set struct {
	Blocks []Block
}

type tagArrayImpl struct {
	numSets int
	numWays int
	Sets    []Set
}

func (t *tagArrayImpl) NumSets() int {
	return len(t.Sets)
}

func (t *tagArrayImpl) NumWays() int {
	return t.numWays
}

// GetSet returns the set with the given index.
func (t *tagArrayImpl) GetSet(setID int) *Set {
	if setID < 0 || setID >= len(t.Sets) {
		panic("set index out of range")
	}

	return &t.Sets[setID]
}

// Lookup finds the valid block in the set that holds the tag.
func (t *tagArrayImpl) Lookup(setID int, tag uint64) (Block, bool) {
	set := t.GetSet(setID)
	for _, block := range set.Blocks {
		if block.IsValid && block.Tag == tag {
			return block, true
		}
	}

	return Block{}, false
}

// Update updates the block information
func (t *tagArrayImpl) Update(block Block) {
	t.Sets[block.SetID].Blocks[block.WayID] = block
}

// Visit marks the block as the most recently used one and ages every other
// block in the same set by one step.
func (t *tagArrayImpl) Visit(block Block) {
	set := t.GetSet(block.SetID)

	for i := range set.Blocks {
		if i == block.WayID {
			set.Blocks[i].Recency = 0
			continue
		}

		set.Blocks[i].Recency++
	}
}

// Reset will mark all the blocks in the directory invalid. Blocks in a set
// get distinct recency values 0..numWays-1 so that the LRU order is always
// total.
func (t *tagArrayImpl) Reset() {
	t.Sets = make([]Set, t.numSets)
	for i := 0; i < t.numSets; i++ {
		t.Sets[i].Blocks = make([]Block, 0, t.numWays)

		for j := 0; j < t.numWays; j++ {
			block := Block{
				IsValid: false,
				SetID:   i,
				WayID:   j,
				Recency: uint64(j),
			}

			t.Sets[i].Blocks = append(t.Sets[i].Blocks, block)
		}
	}
}
