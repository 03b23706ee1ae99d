// Package grid provides the bit-packed solidity grid.
//
// Cells are stored column by column: cell (x, y) lives at flat index
// x*height + y, in word index/32, bit index%32. Out-of-range reads return
// false and out-of-range writes are ignored, so callers can probe
// neighbouring cells at the map edge without checking bounds themselves.
package grid

import (
	"fmt"
	"math/bits"
)

const wordBits = 32

type SolidGrid struct {
	width  int
	height int
	bits   []uint32
}

// New returns an empty grid. It panics on negative dimensions.
func New(width, height int) *SolidGrid {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("grid: invalid dimensions %dx%d", width, height))
	}
	return &SolidGrid{
		width:  width,
		height: height,
		bits:   make([]uint32, wordCount(width*height)),
	}
}

func wordCount(cells int) int {
	return (cells + wordBits - 1) / wordBits
}

func (g *SolidGrid) Width() int  { return g.width }
func (g *SolidGrid) Height() int { return g.height }

// Len is the number of cells.
func (g *SolidGrid) Len() int { return g.width * g.height }

// Index returns the flat index of (x, y) and whether it is in range.
func (g *SolidGrid) Index(x, y int) (int, bool) {
	if g == nil || x < 0 || y < 0 || x >= g.width || y >= g.height {
		return 0, false
	}
	return x*g.height + y, true
}

// Cell converts a flat index back to cell coordinates.
func (g *SolidGrid) Cell(i int) (x, y int, ok bool) {
	if !g.inRange(i) {
		return 0, 0, false
	}
	return i / g.height, i % g.height, true
}

func (g *SolidGrid) inRange(i int) bool {
	return g != nil && i >= 0 && i < g.width*g.height
}

func (g *SolidGrid) Get(x, y int) bool {
	i, ok := g.Index(x, y)
	if !ok {
		return false
	}
	return g.get(i)
}

func (g *SolidGrid) Set(x, y int, solid bool) {
	i, ok := g.Index(x, y)
	if !ok {
		return
	}
	g.set(i, solid)
}

func (g *SolidGrid) GetIndex(i int) bool {
	if !g.inRange(i) {
		return false
	}
	return g.get(i)
}

func (g *SolidGrid) SetIndex(i int, solid bool) {
	if !g.inRange(i) {
		return
	}
	g.set(i, solid)
}

// Toggle flips a cell and returns its new value. Out of range returns false.
func (g *SolidGrid) Toggle(x, y int) bool {
	i, ok := g.Index(x, y)
	if !ok {
		return false
	}
	g.bits[i/wordBits] ^= 1 << uint(i%wordBits)
	return g.get(i)
}

func (g *SolidGrid) get(i int) bool {
	return g.bits[i/wordBits]>>uint(i%wordBits)&1 == 1
}

// set flips the bit only when it differs from the requested value.
func (g *SolidGrid) set(i int, solid bool) {
	if g.get(i) == solid {
		return
	}
	g.bits[i/wordBits] ^= 1 << uint(i%wordBits)
}

// Count returns the number of solid cells.
func (g *SolidGrid) Count() int {
	n := 0
	for _, w := range g.bits {
		n += bits.OnesCount32(w)
	}
	return n
}

// Each calls fn for every solid cell in flat index order.
func (g *SolidGrid) Each(fn func(x, y int)) {
	for wi, w := range g.bits {
		for w != 0 {
			b := bits.TrailingZeros32(w)
			w &^= 1 << uint(b)
			i := wi*wordBits + b
			fn(i/g.height, i%g.height)
		}
	}
}

// Words returns a copy of the packed words, ready to upload as one buffer.
func (g *SolidGrid) Words() []uint32 {
	out := make([]uint32, len(g.bits))
	copy(out, g.bits)
	return out
}
