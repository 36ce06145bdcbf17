// Package colortable holds the palette that maps escape-time buckets to colors.
//
// A table is read from a plain text resource made of exactly Size whitespace
// separated "red green blue" triples, each value a decimal integer in [0, 255].
// Entry i of the table colors iteration bucket i. Loading is all or nothing: a
// resource that is short, malformed or carries trailing data yields no table.
package colortable

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/AndrewGlebovski/Mandelbrot-Set/misc"
)

// MaxSize bounds the number of entries a table may reserve.
const MaxSize = 1 << 20

// Table is an immutable, fully populated list of opaque colors.
type Table struct {
	colors []color.RGBA
}

// New copies colors into a table. Alpha is forced to opaque.
func New(colors []color.RGBA) (*Table, error) {
	if len(colors) == 0 {
		return nil, fmt.Errorf("%w: color table needs at least one color", misc.ErrInvalidArgument)
	}
	if len(colors) > MaxSize {
		return nil, fmt.Errorf("%w: %d colors requested, limit is %d", misc.ErrAllocationFailure, len(colors), MaxSize)
	}

	table := &Table{colors: make([]color.RGBA, len(colors))}
	for i, c := range colors {
		c.A = 255
		table.colors[i] = c
	}
	return table, nil
}

// Load reads a table of size entries from the file at path.
func Load(path string, size int) (*Table, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}

	file, err := misc.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	table, err := Parse(file, size)
	if err != nil {
		return nil, fmt.Errorf("color table %s: %w", path, err)
	}
	return table, nil
}

// Parse reads a table of size entries from r.
func Parse(r io.Reader, size int) (*Table, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", misc.ErrInvalidArgument)
	}
	if err := checkSize(size); err != nil {
		return nil, err
	}

	colors := make([]color.RGBA, size)
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var channels [3]uint8
	for i := 0; i < size; i++ {
		for c := range channels {
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return nil, fmt.Errorf("%w: reading entry %d - %v", misc.ErrInvalidFormat, i, err)
				}
				return nil, fmt.Errorf("%w: expected %d entries, found %d", misc.ErrInvalidFormat, size, i)
			}
			value, err := strconv.ParseUint(scanner.Text(), 10, 8)
			if err != nil {
				return nil, fmt.Errorf("%w: entry %d: %q is not a value in [0,255]", misc.ErrInvalidFormat, i, scanner.Text())
			}
			channels[c] = uint8(value)
		}
		colors[i] = color.RGBA{R: channels[0], G: channels[1], B: channels[2], A: 255}
	}

	if scanner.Scan() {
		return nil, fmt.Errorf("%w: unexpected data after %d entries: %q", misc.ErrInvalidFormat, size, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", misc.ErrInvalidFormat, err)
	}

	return &Table{colors: colors}, nil
}

func checkSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: table size must be positive, got %d", misc.ErrInvalidArgument, size)
	}
	if size > MaxSize {
		return fmt.Errorf("%w: table size %d exceeds %d", misc.ErrAllocationFailure, size, MaxSize)
	}
	return nil
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.colors)
}

// At returns entry i. It panics when i is outside [0, Len()).
func (t *Table) At(i int) color.RGBA {
	return t.colors[i]
}

// Colors returns a copy of the entries.
func (t *Table) Colors() []color.RGBA {
	colors := make([]color.RGBA, len(t.colors))
	copy(colors, t.colors)
	return colors
}

// WriteTo writes the table in the text format Parse accepts, one triple per line.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.String())
	return int64(n), err
}

// Save writes the table to path.
func (t *Table) Save(path string) error {
	_, err := misc.WriteFile(path, []byte(t.String()))
	return err
}

func (t *Table) String() string {
	var b strings.Builder
	for _, c := range t.colors {
		fmt.Fprintf(&b, "%d %d %d\n", c.R, c.G, c.B)
	}
	return b.String()
}
