package table

import "slices"

// ellipsis marks abbreviated cell text.
const ellipsis = "…"

// minAbbrevWidth is the narrowest an abbreviated cell may get: one
// character followed by the ellipsis.
const minAbbrevWidth = 2

// layout is the result of fitting a table to the screen. It is computed
// per render and never stored on the table.
type layout struct {
	blocks []block
}

// block is one group of columns rendered together. widths is indexed by
// column and holds the final width of each column including margins;
// abbreviation may narrow a column in one block and not in another.
type block struct {
	cols   []int
	widths []int
}

func (t *Table) layout() layout {
	n := len(t.maxWidth)
	natural := make([]int, n)
	for i, w := range t.maxWidth {
		natural[i] = w + 2*t.margin
	}
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}

	if t.wrap == wrapNone || n == 0 || t.blockWidth(natural, all) <= t.screenWidth {
		return layout{blocks: []block{{cols: all, widths: natural}}}
	}

	// abbreviating may avoid the split entirely
	shrunk := slices.Clone(natural)
	t.shrinkAbbreviated(shrunk, all, t.blockWidth(shrunk, all)-t.screenWidth)
	if t.blockWidth(shrunk, all) <= t.screenWidth || n == 1 {
		return layout{blocks: []block{{cols: all, widths: shrunk}}}
	}

	var l layout
	for _, cols := range t.splitBlocks(natural) {
		widths := slices.Clone(natural)
		if excess := t.blockWidth(widths, cols) - t.screenWidth; excess > 0 {
			t.shrinkAbbreviated(widths, cols, excess)
		}
		l.blocks = append(l.blocks, block{cols: cols, widths: widths})
	}
	return l
}

// blockWidth returns the rendered line width of a block of columns.
func (t *Table) blockWidth(widths []int, cols []int) int {
	total := 0
	for _, c := range cols {
		total += widths[c]
	}
	if len(cols) > 1 {
		total += gapWidth * (len(cols) - 1)
	}
	if t.style.glyphs().framed {
		total += 2 * borderWidth
	}
	return total
}

// shrinkAbbreviated narrows the abbreviation-eligible columns among cols by
// up to excess columns, always taking from the currently widest one. A
// column never gets narrower than its header text or minAbbrevWidth.
func (t *Table) shrinkAbbreviated(widths, cols []int, excess int) {
	floors := slices.Clone(widths)
	eligible := false
	for _, i := range cols {
		if !t.abbrev[i] {
			continue
		}
		floor := minAbbrevWidth
		if t.hasHeader {
			floor = max(floor, displayWidth(t.header.cell(i)))
		}
		floors[i] = min(widths[i], floor+2*t.margin)
		eligible = eligible || floors[i] < widths[i]
	}
	if !eligible {
		return
	}

	for excess > 0 {
		idx := widestAboveFloor(widths, floors)
		if idx == -1 {
			return
		}
		widths[idx]--
		excess--
	}
}

func widestAboveFloor(widths, floors []int) int {
	idx := -1
	widest := 0
	for i, w := range widths {
		if w > floors[i] && w > widest {
			widest = w
			idx = i
		}
	}
	return idx
}

// splitBlocks breaks the columns into blocks that each fit the screen.
// Column 0 identifies the row and is repeated at the start of every block.
// The first block ends at the forced break column when one is configured;
// every other break is the last column that still fits. A block always
// takes at least one column besides column 0.
func (t *Table) splitBlocks(widths []int) [][]int {
	n := len(widths)
	var blocks [][]int
	next := 1
	if t.wrap == wrapForced && t.breakAfter >= 1 && t.breakAfter < n-1 {
		block := []int{0}
		for ; next <= t.breakAfter; next++ {
			block = append(block, next)
		}
		blocks = append(blocks, block)
	}

	for next < n {
		block := []int{0, next}
		w := t.blockWidth(widths, block)
		next++
		for next < n && w+gapWidth+widths[next] <= t.screenWidth {
			w += gapWidth + widths[next]
			block = append(block, next)
			next++
		}
		blocks = append(blocks, block)
	}
	return blocks
}
