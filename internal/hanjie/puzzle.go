package hanjie

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Deduction is one cell forced to a definite state by probing a line.
type Deduction struct {
	Index int
	Value CellState
}

// Puzzle owns the grid, the fixed clue sequences, and the dirty-line
// worklists. A Puzzle is not safe for concurrent use; parallelism within
// a solve is handled internally.
type Puzzle struct {
	width, height int
	grid          Grid
	rowClues      [][]int
	colClues      [][]int

	// dirty flags: true means the line changed since it was last probed.
	dirtyRows []bool
	dirtyCols []bool
}

// NewPuzzle creates an all-Unknown puzzle from its definition. Dimensions
// derive from the clue counts; clue feasibility is not validated up front,
// an impossible clue surfaces through the solver on the first probe.
func NewPuzzle(def Definition) *Puzzle {
	p := &Puzzle{
		width:     len(def.ColClues),
		height:    len(def.RowClues),
		rowClues:  copyClues(def.RowClues),
		colClues:  copyClues(def.ColClues),
		dirtyRows: make([]bool, len(def.RowClues)),
		dirtyCols: make([]bool, len(def.ColClues)),
	}
	p.grid = make(Grid, p.width*p.height)
	for i := range p.dirtyRows {
		p.dirtyRows[i] = true
	}
	for j := range p.dirtyCols {
		p.dirtyCols[j] = true
	}
	return p
}

func copyClues(clues [][]int) [][]int {
	out := make([][]int, len(clues))
	for i, c := range clues {
		out[i] = append([]int(nil), c...)
	}
	return out
}

func (p *Puzzle) Width() int  { return p.width }
func (p *Puzzle) Height() int { return p.height }

// Cell returns the state of the cell at column x, row y.
func (p *Puzzle) Cell(x, y int) CellState { return p.grid[y*p.width+x] }

// Cells returns a read-only snapshot of the grid for renderers and DTOs.
func (p *Puzzle) Cells() Grid {
	return append(Grid(nil), p.grid...)
}

// Unknowns counts the cells still undetermined.
func (p *Puzzle) Unknowns() int {
	n := 0
	for _, c := range p.grid {
		if c == Unknown {
			n++
		}
	}
	return n
}

func (p *Puzzle) row(i int) Line {
	return append(Line(nil), p.grid[i*p.width:(i+1)*p.width]...)
}

func (p *Puzzle) col(j int) Line {
	line := make(Line, p.height)
	for i := range line {
		line[i] = p.grid[i*p.width+j]
	}
	return line
}

// probeLine checks a line for consistency and collects every forced cell.
// For each Unknown cell both hypotheses are tried: if filling it kills the
// line the cell must be Empty, if blanking it kills the line the cell must
// be Filled. Deductions are buffered, not applied; the line is restored
// after each hypothesis. ok is false when the line admits no arrangement
// at all.
func probeLine(line Line, clues []int) (deds []Deduction, ok bool) {
	if !hasLineSolution(line, clues) {
		return nil, false
	}
	for i, c := range line {
		if c != Unknown {
			continue
		}
		line[i] = Filled
		if !hasLineSolution(line, clues) {
			deds = append(deds, Deduction{i, Empty})
		}
		line[i] = Empty
		if !hasLineSolution(line, clues) {
			deds = append(deds, Deduction{i, Filled})
		}
		line[i] = Unknown
	}
	return deds, true
}

// sweepRow probes row i, writes its deductions into the grid, marks the
// crossed columns dirty and clears the row's own dirty flag. Returns the
// number of newly fixed cells.
func (p *Puzzle) sweepRow(i int) (int, error) {
	deds, ok := probeLine(p.row(i), p.rowClues[i])
	if !ok {
		return 0, LineError{Rows, i}
	}
	for _, d := range deds {
		p.grid[i*p.width+d.Index] = d.Value
		p.dirtyCols[d.Index] = true
	}
	p.dirtyRows[i] = false
	return len(deds), nil
}

func (p *Puzzle) sweepCol(j int) (int, error) {
	deds, ok := probeLine(p.col(j), p.colClues[j])
	if !ok {
		return 0, LineError{Cols, j}
	}
	for _, d := range deds {
		p.grid[d.Index*p.width+j] = d.Value
		p.dirtyRows[d.Index] = true
	}
	p.dirtyCols[j] = false
	return len(deds), nil
}

// Pass summarizes one full sweep over the dirty rows and columns.
type Pass struct {
	Number   int `json:"number"`
	Probed   int `json:"probed"`
	Deduced  int `json:"deduced"`
	Unknowns int `json:"unknowns"`
}

// SolveOptions tunes a solve without changing its results.
type SolveOptions struct {
	// Workers > 1 probes the dirty lines of each axis concurrently.
	// Deductions are still applied one line at a time, so the outcome
	// matches the sequential engine exactly.
	Workers int

	// MaxPasses caps the fixpoint loop; zero means no cap. Hitting the
	// cap surfaces ErrPassLimit.
	MaxPasses int

	// Progress, when set, is called after every completed pass.
	Progress func(Pass)
}

// Solve runs the fixpoint loop with default options: sequential probing,
// no pass cap.
func (p *Puzzle) Solve(ctx context.Context) error {
	return p.SolveWith(ctx, SolveOptions{})
}

// SolveWith repeatedly probes every dirty row, then every dirty column,
// until a full pass probes nothing. At that point no further single-line
// deduction exists anywhere in the grid; cells may remain Unknown if the
// puzzle needs cross-line reasoning. The solve aborts on the first
// unsatisfiable line, returning a [LineError] (wrapping [ErrInconsistent]),
// and on context cancellation between probes.
func (p *Puzzle) SolveWith(ctx context.Context, opts SolveOptions) error {
	for pass := 1; ; pass++ {
		if opts.MaxPasses > 0 && pass > opts.MaxPasses {
			return ErrPassLimit
		}

		var probed, deduced int
		var err error
		if opts.Workers > 1 {
			probed, deduced, err = p.runPassParallel(ctx, opts.Workers)
		} else {
			probed, deduced, err = p.runPass(ctx)
		}
		if err != nil {
			return err
		}
		if probed == 0 {
			return nil
		}
		if opts.Progress != nil {
			opts.Progress(Pass{
				Number:   pass,
				Probed:   probed,
				Deduced:  deduced,
				Unknowns: p.Unknowns(),
			})
		}
	}
}

func (p *Puzzle) runPass(ctx context.Context) (probed, deduced int, err error) {
	for i := range p.dirtyRows {
		if !p.dirtyRows[i] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return probed, deduced, err
		}
		n, err := p.sweepRow(i)
		if err != nil {
			return probed, deduced, err
		}
		probed++
		deduced += n
	}
	for j := range p.dirtyCols {
		if !p.dirtyCols[j] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return probed, deduced, err
		}
		n, err := p.sweepCol(j)
		if err != nil {
			return probed, deduced, err
		}
		probed++
		deduced += n
	}
	return probed, deduced, nil
}

// runPassParallel probes the dirty lines of one axis concurrently. Lines
// of the same axis never intersect, and probes work on private copies, so
// grid reads are safe; deductions are buffered per line and applied here,
// on the calling goroutine, once the whole axis batch is done.
func (p *Puzzle) runPassParallel(ctx context.Context, workers int) (probed, deduced int, err error) {
	rows := dirtyIndices(p.dirtyRows)
	n, err := p.probeBatch(ctx, workers, rows, Rows)
	if err != nil {
		return 0, 0, err
	}
	probed += len(rows)
	deduced += n

	cols := dirtyIndices(p.dirtyCols)
	n, err = p.probeBatch(ctx, workers, cols, Cols)
	if err != nil {
		return probed, deduced, err
	}
	probed += len(cols)
	deduced += n
	return probed, deduced, nil
}

func dirtyIndices(flags []bool) []int {
	var idx []int
	for i, d := range flags {
		if d {
			idx = append(idx, i)
		}
	}
	return idx
}

func (p *Puzzle) probeBatch(ctx context.Context, workers int, idx []int, axis Axis) (int, error) {
	results := make([][]Deduction, len(idx))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k, i := range idx {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var (
				line  Line
				clues []int
			)
			if axis == Rows {
				line, clues = p.row(i), p.rowClues[i]
			} else {
				line, clues = p.col(i), p.colClues[i]
			}
			deds, ok := probeLine(line, clues)
			if !ok {
				return LineError{axis, i}
			}
			results[k] = deds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	deduced := 0
	for k, i := range idx {
		for _, d := range results[k] {
			if axis == Rows {
				p.grid[i*p.width+d.Index] = d.Value
				p.dirtyCols[d.Index] = true
			} else {
				p.grid[d.Index*p.width+i] = d.Value
				p.dirtyRows[d.Index] = true
			}
		}
		deduced += len(results[k])
		if axis == Rows {
			p.dirtyRows[i] = false
		} else {
			p.dirtyCols[i] = false
		}
	}
	return deduced, nil
}
