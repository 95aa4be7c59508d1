package trace_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/mem/trace"
)

var _ = Describe("Reader", func() {
	readAll := func(r *trace.Reader) ([]trace.Entry, error) {
		entries := []trace.Entry{}
		for {
			e, err := r.Next()
			if err == io.EOF {
				return entries, nil
			}

			if err != nil {
				return entries, err
			}

			entries = append(entries, e)
		}
	}

	It("should read valgrind style lines", func() {
		r := trace.NewReader("test", strings.NewReader(
			"I 0400d7d4,8\n M 0421c7f0,4\n L 04f6b868,8\n S 7ff0005c8,8\n"))

		entries, err := readAll(r)

		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(Equal([]trace.Entry{
			{Op: trace.OpInstruction, Address: 0x0400d7d4, Size: 8, Line: 1},
			{Op: trace.OpModify, Address: 0x0421c7f0, Size: 4, Line: 2},
			{Op: trace.OpLoad, Address: 0x04f6b868, Size: 8, Line: 3},
			{Op: trace.OpStore, Address: 0x7ff0005c8, Size: 8, Line: 4},
		}))
		Expect(r.BytesRead()).To(Equal(uint64(56)))
	})

	It("should skip blank lines and keep line numbers", func() {
		r := trace.NewReader("test", strings.NewReader("\n L 10,1\n\n   \n S 20, 4"))

		entries, err := readAll(r)

		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(2))
		Expect(entries[0].Line).To(Equal(2))
		Expect(entries[1]).To(Equal(
			trace.Entry{Op: trace.OpStore, Address: 0x20, Size: 4, Line: 5}))
	})

	It("should report the malformed line", func() {
		r := trace.NewReader("test", strings.NewReader(" L 10,1\n L zz,1\n L 20,1\n"))

		entries, err := readAll(r)

		Expect(entries).To(HaveLen(1))
		var formatErr *trace.FormatError
		Expect(errors.As(err, &formatErr)).To(BeTrue())
		Expect(formatErr.Line).To(Equal(2))
		Expect(formatErr.Text).To(Equal(" L zz,1"))
		Expect(err.Error()).To(ContainSubstring("line 2"))
	})

	It("should report an overlong line as malformed", func() {
		long := " L " + strings.Repeat("0", trace.MaxLineLength) + ",1\n"
		r := trace.NewReader("test", strings.NewReader(" L 10,1\n"+long))

		entries, err := readAll(r)

		Expect(entries).To(HaveLen(1))
		var formatErr *trace.FormatError
		Expect(errors.As(err, &formatErr)).To(BeTrue())
		Expect(formatErr.Line).To(Equal(2))
	})

	It("should accept long lines below the limit", func() {
		addr := strings.Repeat("0", 100*1024) + "10"
		r := trace.NewReader("test", strings.NewReader(" L "+addr+",1\n"))

		entries, err := readAll(r)

		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Address).To(Equal(uint64(0x10)))
	})

	It("should open a file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "t.trace")
		Expect(os.WriteFile(path, []byte(" L 10,1\n"), 0o644)).To(Succeed())

		r, err := trace.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer r.Close()

		entries, err := readAll(r)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
		Expect(r.Name()).To(Equal(path))
		Expect(r.Size()).To(Equal(uint64(8)))
	})

	It("should report a missing file as a resource error", func() {
		_, err := trace.Open(filepath.Join(GinkgoT().TempDir(), "missing.trace"))

		var resourceErr *trace.ResourceError
		Expect(errors.As(err, &resourceErr)).To(BeTrue())
		Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
	})

	It("should refuse a directory", func() {
		_, err := trace.Open(GinkgoT().TempDir())

		var resourceErr *trace.ResourceError
		Expect(errors.As(err, &resourceErr)).To(BeTrue())
	})
})

var _ = DescribeTable("ParseLine",
	func(text string, ok bool, expected trace.Entry) {
		entry, err := trace.ParseLine(text)

		if !ok {
			var formatErr *trace.FormatError
			Expect(errors.As(err, &formatErr)).To(BeTrue())
			return
		}

		Expect(err).NotTo(HaveOccurred())
		Expect(entry).To(Equal(expected))
	},
	Entry("load", " L 7ff000123,4", true,
		trace.Entry{Op: trace.OpLoad, Address: 0x7ff000123, Size: 4}),
	Entry("space after comma", "S 10, 1", true,
		trace.Entry{Op: trace.OpStore, Address: 0x10, Size: 1}),
	Entry("hex prefix", "M 0xffffffffffffffff,8", true,
		trace.Entry{Op: trace.OpModify, Address: 0xffffffffffffffff, Size: 8}),
	Entry("instruction", "I 0,0", true,
		trace.Entry{Op: trace.OpInstruction, Address: 0, Size: 0}),
	Entry("unknown op", " X 10,1", false, trace.Entry{}),
	Entry("lowercase op", " l 10,1", false, trace.Entry{}),
	Entry("long op", " LL 10,1", false, trace.Entry{}),
	Entry("missing size", " L 10", false, trace.Entry{}),
	Entry("missing address", " L", false, trace.Entry{}),
	Entry("too many tokens", " L 10, 1 extra", false, trace.Entry{}),
	Entry("non-hex address", " L 1g,1", false, trace.Entry{}),
	Entry("address overflow", " L 1ffffffffffffffff,1", false, trace.Entry{}),
	Entry("negative size", " L 10,-1", false, trace.Entry{}),
	Entry("non-decimal size", " L 10,a", false, trace.Entry{}),
	Entry("two commas", " L 10,1,2", false, trace.Entry{}),
)

var _ = Describe("Op", func() {
	It("should count accesses", func() {
		Expect(trace.OpInstruction.NumAccesses()).To(Equal(0))
		Expect(trace.OpLoad.NumAccesses()).To(Equal(1))
		Expect(trace.OpStore.NumAccesses()).To(Equal(1))
		Expect(trace.OpModify.NumAccesses()).To(Equal(2))
	})

	It("should print entries in trace format", func() {
		e := trace.Entry{Op: trace.OpLoad, Address: 0x10, Size: 1}

		Expect(e.String()).To(Equal("L 10,1"))
	})
})
