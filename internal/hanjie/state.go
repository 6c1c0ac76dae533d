package hanjie

import (
	"bytes"
	"encoding/gob"
)

// snapshot is the serialized form of a puzzle mid-solve: clues, grid and
// dirty flags, enough to resume probing exactly where it stopped.
type snapshot struct {
	Width, Height int
	Grid          Grid
	RowClues      [][]int
	ColClues      [][]int
	DirtyRows     []bool
	DirtyCols     []bool
}

// Bytes gob-encodes the full puzzle state for persistence.
func (p *Puzzle) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(snapshot{
		Width:     p.width,
		Height:    p.height,
		Grid:      p.grid,
		RowClues:  p.rowClues,
		ColClues:  p.colClues,
		DirtyRows: p.dirtyRows,
		DirtyCols: p.dirtyCols,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodePuzzle restores a puzzle previously encoded with [Puzzle.Bytes].
func DecodePuzzle(buf []byte) (*Puzzle, error) {
	var s snapshot
	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&s); err != nil {
		return nil, err
	}
	return &Puzzle{
		width:     s.Width,
		height:    s.Height,
		grid:      s.Grid,
		rowClues:  s.RowClues,
		colClues:  s.ColClues,
		dirtyRows: s.DirtyRows,
		dirtyCols: s.DirtyCols,
	}, nil
}
