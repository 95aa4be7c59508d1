package tagging

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LRU Victim Finder", func() {
	var (
		finder *LRUVictimFinder
		set    *Set
	)

	BeforeEach(func() {
		finder = NewLRUVictimFinder()
		set = &Set{
			Blocks: []Block{
				{WayID: 0, IsValid: true, Recency: 1},
				{WayID: 1, IsValid: true, Recency: 3},
				{WayID: 2, IsValid: true, Recency: 0},
				{WayID: 3, IsValid: true, Recency: 2},
			},
		}
	})

	It("should prefer the first invalid block", func() {
		set.Blocks[2].IsValid = false
		set.Blocks[3].IsValid = false

		Expect(finder.FindVictim(set).WayID).To(Equal(2))
	})

	It("should pick the block with the largest recency", func() {
		Expect(finder.FindVictim(set).WayID).To(Equal(1))
	})

	It("should let the lowest way win a tie", func() {
		set.Blocks[3].Recency = 3

		Expect(finder.FindVictim(set).WayID).To(Equal(1))
	})

	It("should panic on an empty set", func() {
		Expect(func() { finder.FindVictim(&Set{}) }).To(Panic())
	})
})
