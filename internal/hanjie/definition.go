package hanjie

import "encoding/json"

// Definition is the in-memory form of a puzzle: one ordered clue sequence
// per row and per column. Grid dimensions derive from the clue counts.
type Definition struct {
	RowClues [][]int `json:"row_clues"`
	ColClues [][]int `json:"col_clues"`
}

// ParseDefinition decodes a JSON puzzle definition. Clue feasibility is
// deliberately not checked here; the solver's rejection rule reports
// impossible clues on the first probe.
func ParseDefinition(data []byte) (Definition, error) {
	var def Definition
	err := json.Unmarshal(data, &def)
	return def, err
}

// Demo is a small built-in puzzle (a 5x5 lattice box) used by the CLI and
// as a seed fixture. Its only solution:
//
//	#####
//	#.#.#
//	#.#.#
//	#.#.#
//	#####
func Demo() Definition {
	return Definition{
		RowClues: [][]int{{5}, {1, 1, 1}, {1, 1, 1}, {1, 1, 1}, {5}},
		ColClues: [][]int{{5}, {1, 1}, {5}, {1, 1}, {5}},
	}
}
