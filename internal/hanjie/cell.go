// Package hanjie solves nonogram (Hanjie) puzzles by single-line logical
// deduction: a pruned depth-first search decides per-line consistency, and
// a propagation engine converts consistency checks into forced cells until
// no line can yield anything more.
package hanjie

import "strings"

// CellState is the knowledge we have about a single cell of the grid.
type CellState int8

const (
	Unknown CellState = iota
	Filled
	Empty
)

func (s CellState) String() string {
	switch s {
	case Filled:
		return "#"
	case Empty:
		return "."
	default:
		return "?"
	}
}

// Line is one row or column of the grid, extracted as an independent
// 1-D constraint. Probing always works on a copy, never on grid storage.
type Line []CellState

// Grid is a row-major width*height array of cell states.
type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			b.WriteString(g[y*width+x].String())
		}
		b.WriteString("\n")
	}
	return b.String()
}
