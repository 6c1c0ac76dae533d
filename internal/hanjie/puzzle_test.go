package hanjie

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveBox(t *testing.T) {
	t.Parallel()

	p := NewPuzzle(Demo())
	require.NoError(t, p.Solve(context.Background()))

	assert.Equal(t, 0, p.Unknowns())

	want := "" +
		"#####\n" +
		"#.#.#\n" +
		"#.#.#\n" +
		"#.#.#\n" +
		"#####\n"
	assert.Equal(t, want, p.Cells().ToString(p.Width()))
}

func TestSolveLetterH(t *testing.T) {
	t.Parallel()

	p := NewPuzzle(Definition{
		RowClues: [][]int{{1, 1}, {1, 1}, {5}, {1, 1}, {1, 1}},
		ColClues: [][]int{{5}, {1}, {1}, {1}, {5}},
	})
	require.NoError(t, p.Solve(context.Background()))

	assert.Equal(t, 0, p.Unknowns())

	want := "" +
		"#...#\n" +
		"#...#\n" +
		"#####\n" +
		"#...#\n" +
		"#...#\n"
	assert.Equal(t, want, p.Cells().ToString(p.Width()))
}

// A 2x2 checkerboard clue set has two solutions; single-line deduction
// must converge cleanly and leave every cell ambiguous.
func TestSolveAmbiguousReachesFixpoint(t *testing.T) {
	t.Parallel()

	p := NewPuzzle(Definition{
		RowClues: [][]int{{1}, {1}},
		ColClues: [][]int{{1}, {1}},
	})
	require.NoError(t, p.Solve(context.Background()))
	assert.Equal(t, 4, p.Unknowns())
}

func TestSolveInconsistentClues(t *testing.T) {
	t.Parallel()

	// A 6-block can never fit a width-5 row.
	p := NewPuzzle(Definition{
		RowClues: [][]int{{6}},
		ColClues: [][]int{{1}, {1}, {1}, {1}, {1}},
	})
	err := p.Solve(context.Background())

	require.ErrorIs(t, err, ErrInconsistent)

	var lineErr LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, Rows, lineErr.Axis)
	assert.Equal(t, 0, lineErr.Index)
}

func TestSolveConflictingClues(t *testing.T) {
	t.Parallel()

	// Rows demand an all-filled grid, columns an all-empty one; the
	// contradiction must abort the solve rather than spin.
	p := NewPuzzle(Definition{
		RowClues: [][]int{{2}, {2}},
		ColClues: [][]int{nil, nil},
	})
	err := p.Solve(context.Background())
	require.ErrorIs(t, err, ErrInconsistent)
}

func TestSolveIdempotent(t *testing.T) {
	t.Parallel()

	p := NewPuzzle(Demo())
	require.NoError(t, p.Solve(context.Background()))
	solved := p.Cells()

	passes := 0
	err := p.SolveWith(context.Background(), SolveOptions{
		Progress: func(Pass) { passes++ },
	})
	require.NoError(t, err)

	assert.Equal(t, 0, passes, "stabilized grid must probe nothing")
	assert.Equal(t, solved, p.Cells())
}

func TestSolveParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	sequential := NewPuzzle(Demo())
	require.NoError(t, sequential.Solve(context.Background()))

	parallel := NewPuzzle(Demo())
	require.NoError(t, parallel.SolveWith(
		context.Background(), SolveOptions{Workers: 4},
	))

	assert.Equal(t, sequential.Cells(), parallel.Cells())
}

func TestSolveCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPuzzle(Demo())
	err := p.Solve(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSolvePassLimit(t *testing.T) {
	t.Parallel()

	p := NewPuzzle(Demo())
	err := p.SolveWith(context.Background(), SolveOptions{MaxPasses: 1})
	require.ErrorIs(t, err, ErrPassLimit)
}

func TestSolveProgressReports(t *testing.T) {
	t.Parallel()

	var passes []Pass
	p := NewPuzzle(Demo())
	require.NoError(t, p.SolveWith(context.Background(), SolveOptions{
		Progress: func(pass Pass) { passes = append(passes, pass) },
	}))

	require.NotEmpty(t, passes)
	assert.Equal(t, 1, passes[0].Number)
	assert.Equal(t, 10, passes[0].Probed, "first pass probes every line once")
	assert.Equal(t, 0, passes[len(passes)-1].Unknowns)
}

func TestCellAccessors(t *testing.T) {
	t.Parallel()

	p := NewPuzzle(Demo())
	require.NoError(t, p.Solve(context.Background()))

	assert.Equal(t, 5, p.Width())
	assert.Equal(t, 5, p.Height())
	assert.Equal(t, Filled, p.Cell(0, 0))
	assert.Equal(t, Empty, p.Cell(1, 1))
	assert.Equal(t, Filled, p.Cell(2, 2))

	// Cells returns a snapshot, not the live grid.
	cells := p.Cells()
	cells[0] = Unknown
	assert.Equal(t, Filled, p.Cell(0, 0))
}
