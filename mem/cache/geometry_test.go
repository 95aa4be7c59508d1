package cache

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Geometry", func() {
	It("should accept the defaults", func() {
		g := Defaults()

		Expect(g.Validate()).To(Succeed())
		Expect(g.NumSets()).To(Equal(64))
		Expect(g.BlockSize()).To(Equal(uint64(64)))
		Expect(g.NumLines()).To(Equal(256))
	})

	DescribeTable("should reject invalid geometry",
		func(g Geometry, field string) {
			err := g.Validate()

			var configErr *ConfigurationError
			Expect(errors.As(err, &configErr)).To(BeTrue())
			Expect(configErr.Field).To(Equal(field))
		},
		Entry("negative s", Geometry{SetBits: -1, Ways: 1}, "s"),
		Entry("negative b", Geometry{BlockBits: -1, Ways: 1}, "b"),
		Entry("b too wide", Geometry{BlockBits: 64, Ways: 1}, "b"),
		Entry("s+b too wide", Geometry{SetBits: 20, BlockBits: 50, Ways: 1}, "s+b"),
		Entry("no lines", Geometry{SetBits: 1, Ways: 0}, "E"),
		Entry("too many ways", Geometry{Ways: MaxLines + 1}, "E"),
		Entry("too many sets", Geometry{SetBits: 30, Ways: 1}, "s"),
		Entry("too many lines", Geometry{SetBits: 24, Ways: 2}, "s"),
	)

	It("should name the field in the message", func() {
		err := Geometry{SetBits: 1, Ways: 0}.Validate()

		Expect(err.Error()).To(ContainSubstring("E=0"))
	})

	It("should make the builder panic", func() {
		Expect(func() { MakeBuilder().WithWays(0).Build() }).To(Panic())
	})

	It("should build with the given geometry", func() {
		g := Geometry{SetBits: 3, Ways: 2, BlockBits: 5}

		c := MakeBuilder().WithGeometry(g).Build()

		Expect(c.Geometry()).To(Equal(g))
		Expect(c.SetState(7)).To(HaveLen(2))
	})
})
