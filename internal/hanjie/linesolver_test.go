package hanjie

import (
	"testing"
)

// parseLine builds a line from a compact string: '?' unknown, '#' filled,
// '.' empty.
func parseLine(s string) Line {
	line := make(Line, len(s))
	for i, r := range s {
		switch r {
		case '#':
			line[i] = Filled
		case '.':
			line[i] = Empty
		default:
			line[i] = Unknown
		}
	}
	return line
}

func TestHasLineSolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		line  string
		clues []int
		want  bool
	}{
		{"block of 3 fits in 5", "?????", []int{3}, true},
		{"two 2-blocks need 5 cells", "???", []int{2, 2}, false},
		{"exact fit", "?????", []int{5}, true},
		{"no clues, open line", "?????", nil, true},
		{"no clues, filled cell", "??#??", nil, false},
		{"single block covers lone mark", "#????", []int{1}, true},
		{"one block, two separated marks", "#...#", []int{1}, false},
		{"empties squeeze the block", "..???", []int{3}, true},
		{"empty cell breaks exact fit", ".????", []int{5}, false},
		{"blocks in order around empties", "#?.??", []int{1, 2}, true},
		{"mark at line end", "???#", []int{1}, true},
		{"run longer than clue", "??##", []int{1}, false},
		{"adjacent blocks need a gap", "##?##", []int{2, 2}, true},
		{"full run already placed", "###..", []int{3}, true},
		{"run shifted against clue", ".###.", []int{3}, true},
		{"empty line, no clues", "", nil, true},
		{"empty line, leftover clue", "", []int{1}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got := hasLineSolution(parseLine(test.line), test.clues)
			if got != test.want {
				t.Errorf("hasLineSolution(%q, %v) = %v, want %v",
					test.line, test.clues, got, test.want)
			}
		})
	}
}

func TestHasLineSolutionDeterministic(t *testing.T) {
	t.Parallel()

	line, clues := parseLine("?#???.??#?"), []int{2, 3}
	first := hasLineSolution(line, clues)
	for range 10 {
		if got := hasLineSolution(line, clues); got != first {
			t.Fatalf("hasLineSolution flapped: %v then %v", first, got)
		}
	}
}

func TestHasLineSolutionDoesNotMutate(t *testing.T) {
	t.Parallel()

	line := parseLine("?#??.")
	before := append(Line(nil), line...)
	hasLineSolution(line, []int{2})
	for i := range line {
		if line[i] != before[i] {
			t.Fatalf("cell %d mutated: %v -> %v", i, before[i], line[i])
		}
	}
}

func TestProbeLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		line  string
		clues []int
		ok    bool
		deds  []Deduction
	}{
		{
			name:  "middle cell forced",
			line:  "?????",
			clues: []int{3},
			ok:    true,
			deds:  []Deduction{{2, Filled}},
		},
		{
			name:  "exact fit fills everything",
			line:  "?????",
			clues: []int{5},
			ok:    true,
			deds: []Deduction{
				{0, Filled}, {1, Filled}, {2, Filled}, {3, Filled}, {4, Filled},
			},
		},
		{
			name:  "no clues blanks the line",
			line:  "??",
			clues: nil,
			ok:    true,
			deds:  []Deduction{{0, Empty}, {1, Empty}},
		},
		{
			name:  "nothing forced",
			line:  "?????",
			clues: []int{2},
			ok:    true,
			deds:  nil,
		},
		{
			name:  "contradiction detected up front",
			line:  "##",
			clues: []int{1},
			ok:    false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			deds, ok := probeLine(parseLine(test.line), test.clues)
			if ok != test.ok {
				t.Fatalf("probeLine(%q, %v) ok = %v, want %v",
					test.line, test.clues, ok, test.ok)
			}
			if len(deds) != len(test.deds) {
				t.Fatalf("deductions = %v, want %v", deds, test.deds)
			}
			for i := range deds {
				if deds[i] != test.deds[i] {
					t.Errorf("deduction %d = %v, want %v", i, deds[i], test.deds[i])
				}
			}
		})
	}
}

// Every deduction must be logically forced: fixing the cell to the
// opposite state has to make the line unsatisfiable.
func TestProbeLineDeductionsSound(t *testing.T) {
	t.Parallel()

	lines := []struct {
		line  string
		clues []int
	}{
		{"?????", []int{3}},
		{"??????????", []int{4, 3}},
		{"?#???.??#?", []int{2, 3}},
		{"???#???", []int{1, 2}},
	}

	for _, l := range lines {
		line := parseLine(l.line)
		deds, ok := probeLine(line, l.clues)
		if !ok {
			t.Fatalf("line %q unexpectedly inconsistent", l.line)
		}
		for _, d := range deds {
			opposite := Filled
			if d.Value == Filled {
				opposite = Empty
			}
			line[d.Index] = opposite
			if hasLineSolution(line, l.clues) {
				t.Errorf("line %q: deduction %v is not forced", l.line, d)
			}
			line[d.Index] = Unknown
		}
	}
}

func TestProbeLineDoesNotMutate(t *testing.T) {
	t.Parallel()

	line := parseLine("??#??")
	before := append(Line(nil), line...)
	if _, ok := probeLine(line, []int{3}); !ok {
		t.Fatal("line unexpectedly inconsistent")
	}
	for i := range line {
		if line[i] != before[i] {
			t.Fatalf("cell %d mutated: %v -> %v", i, before[i], line[i])
		}
	}
}
