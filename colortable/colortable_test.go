package colortable_test

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/AndrewGlebovski/Mandelbrot-Set/colortable"
	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
)

func writeTable(dir string, contents string) string {
	path := filepath.Join(dir, "palette.txt")
	Expect(os.WriteFile(path, []byte(contents), 0644)).To(Succeed())
	return path
}

func tempDir() string {
	dir, err := os.MkdirTemp("", "colortable")
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(os.RemoveAll, dir)
	return dir
}

func triples(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d %d %d\n", i, 2*i, 255-i)
	}
	return b.String()
}

var _ = Describe("Load", func() {
	var dir string

	BeforeEach(func() {
		dir = tempDir()
	})

	It("loads a file with exactly size triples", func() {
		table, err := colortable.Load(writeTable(dir, triples(16)), 16)
		Expect(err).NotTo(HaveOccurred())
		Expect(table.Len()).To(Equal(16))
		for i := 0; i < 16; i++ {
			Expect(table.At(i)).To(Equal(color.RGBA{R: uint8(i), G: uint8(2 * i), B: uint8(255 - i), A: 255}))
		}
	})

	It("accepts any whitespace between values", func() {
		table, err := colortable.Load(writeTable(dir, "1\t2  3\n\n4\n5 6\r\n"), 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(table.Colors()).To(Equal([]color.RGBA{{R: 1, G: 2, B: 3, A: 255}, {R: 4, G: 5, B: 6, A: 255}}))
	})

	It("reports a missing file", func() {
		table, err := colortable.Load(filepath.Join(dir, "missing.txt"), 16)
		Expect(err).To(MatchError(misc.ErrFileNotFound))
		Expect(table).To(BeNil())
	})

	It("rejects an empty path", func() {
		_, err := colortable.Load("", 16)
		Expect(err).To(MatchError(misc.ErrInvalidArgument))
	})

	DescribeTable("rejects malformed resources without returning a table",
		func(contents string) {
			table, err := colortable.Load(writeTable(dir, contents), 4)
			Expect(err).To(MatchError(misc.ErrInvalidFormat))
			Expect(table).To(BeNil())
		},
		Entry("fewer triples", triples(3)),
		Entry("a partial triple", triples(3)+"1 2"),
		Entry("a non-numeric token", "1 2 3\n4 five 6\n7 8 9\n10 11 12\n"),
		Entry("a negative value", triples(3)+"-1 2 3\n"),
		Entry("a value above 255", triples(3)+"256 0 0\n"),
		Entry("trailing data", triples(5)),
		Entry("an empty file", ""),
	)

	DescribeTable("validates the requested size",
		func(size int, kind error) {
			_, err := colortable.Load(writeTable(dir, triples(4)), size)
			Expect(err).To(MatchError(kind))
		},
		Entry("zero", 0, misc.ErrInvalidArgument),
		Entry("negative", -3, misc.ErrInvalidArgument),
		Entry("beyond the limit", colortable.MaxSize+1, misc.ErrAllocationFailure),
	)
})

var _ = Describe("Parse", func() {
	It("rejects a nil reader", func() {
		_, err := colortable.Parse(nil, 1)
		Expect(err).To(MatchError(misc.ErrInvalidArgument))
	})

	It("reads back what WriteTo wrote", func() {
		table, err := colortable.Parse(strings.NewReader(triples(8)), 8)
		Expect(err).NotTo(HaveOccurred())

		var out bytes.Buffer
		_, err = table.WriteTo(&out)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(Equal(triples(8)))
	})
})

var _ = Describe("Save", func() {
	It("writes a file Load accepts", func() {
		table, err := colortable.New([]color.RGBA{{R: 10, G: 20, B: 30}, {R: 40, G: 50, B: 60}})
		Expect(err).NotTo(HaveOccurred())

		path := filepath.Join(tempDir(), "saved.txt")
		Expect(table.Save(path)).To(Succeed())

		loaded, err := colortable.Load(path, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Colors()).To(Equal(table.Colors()))
	})
})

var _ = Describe("New", func() {
	It("forces entries opaque and copies its input", func() {
		colors := []color.RGBA{{R: 1, G: 2, B: 3, A: 0}}
		table, err := colortable.New(colors)
		Expect(err).NotTo(HaveOccurred())
		colors[0].R = 99
		Expect(table.At(0)).To(Equal(color.RGBA{R: 1, G: 2, B: 3, A: 255}))
	})

	It("refuses an empty table", func() {
		_, err := colortable.New(nil)
		Expect(err).To(MatchError(misc.ErrInvalidArgument))
	})
})

var _ = Describe("Generate", func() {
	It("blends each gradient without emitting its end color", func() {
		table, err := colortable.Generate([]colortable.Gradient{
			{StartColor: color.RGBA{R: 0}, EndColor: color.RGBA{R: 200}, NumberColors: 4},
			{StartColor: color.RGBA{B: 100}, EndColor: color.RGBA{B: 0}, NumberColors: 2},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(table.Colors()).To(Equal([]color.RGBA{
			{R: 0, A: 255}, {R: 50, A: 255}, {R: 100, A: 255}, {R: 150, A: 255},
			{B: 100, A: 255}, {B: 50, A: 255},
		}))
	})

	It("rejects a gradient without colors", func() {
		_, err := colortable.Generate([]colortable.Gradient{{NumberColors: 0}})
		Expect(err).To(MatchError(misc.ErrInvalidArgument))
	})

	It("rejects an empty list", func() {
		_, err := colortable.Generate(nil)
		Expect(err).To(MatchError(misc.ErrInvalidArgument))
	})
})
