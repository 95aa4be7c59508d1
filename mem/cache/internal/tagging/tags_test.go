package tagging

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Tags", func() {
	var (
		tags *tagArrayImpl
	)

	BeforeEach(func() {
		tags = &tagArrayImpl{
			numSets: 16,
			numWays: 4,
			Sets:    []Set{},
		}
		tags.Reset()
	})

	It("should report the geometry", func() {
		Expect(tags.NumSets()).To(Equal(16))
		Expect(tags.NumWays()).To(Equal(4))
	})

	It("should start with invalid blocks and distinct recency", func() {
		set := tags.GetSet(3)

		Expect(set.Blocks).To(HaveLen(4))
		for i, block := range set.Blocks {
			Expect(block.IsValid).To(BeFalse())
			Expect(block.SetID).To(Equal(3))
			Expect(block.WayID).To(Equal(i))
			Expect(block.Recency).To(Equal(uint64(i)))
		}
	})

	It("should lookup", func() {
		set := tags.GetSet(2)
		set.Blocks[1].IsValid = true
		set.Blocks[1].Tag = 0x100

		block, ok := tags.Lookup(2, 0x100)
		Expect(ok).To(BeTrue())
		Expect(block.WayID).To(Equal(1))
	})

	It("should not find a tag stored in another set", func() {
		set := tags.GetSet(2)
		set.Blocks[1].IsValid = true
		set.Blocks[1].Tag = 0x100

		_, ok := tags.Lookup(3, 0x100)
		Expect(ok).To(BeFalse())
	})

	It("should return nil if block is invalid", func() {
		set := tags.GetSet(2)
		set.Blocks[0].Tag = 0x100

		block, ok := tags.Lookup(2, 0x100)
		Expect(ok).To(BeFalse())
		Expect(block).To(BeZero())
	})

	It("should update a block in place", func() {
		tags.Update(Block{Tag: 0x42, SetID: 5, WayID: 2, IsValid: true})

		Expect(tags.GetSet(5).Blocks[2].Tag).To(Equal(uint64(0x42)))
		Expect(tags.GetSet(5).Blocks[2].IsValid).To(BeTrue())
	})

	It("should reset the visited block and age the others", func() {
		set := tags.GetSet(0)

		tags.Visit(set.Blocks[2])

		Expect(set.Blocks[0].Recency).To(Equal(uint64(1)))
		Expect(set.Blocks[1].Recency).To(Equal(uint64(2)))
		Expect(set.Blocks[2].Recency).To(Equal(uint64(0)))
		Expect(set.Blocks[3].Recency).To(Equal(uint64(4)))
	})

	It("should not age blocks in other sets", func() {
		tags.Visit(tags.GetSet(0).Blocks[0])

		Expect(tags.GetSet(1).Blocks[1].Recency).To(Equal(uint64(1)))
	})

	It("should panic on an out-of-range set", func() {
		Expect(func() { tags.GetSet(16) }).To(Panic())
		Expect(func() { tags.GetSet(-1) }).To(Panic())
	})
})
