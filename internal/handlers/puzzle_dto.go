package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/schema"

	"github.com/klofan/hanjie-server/internal/hanjie"
	"github.com/klofan/hanjie-server/internal/repository"
)

type CreatePuzzleDTO struct {
	Title    string  `json:"title"`
	RowClues [][]int `json:"row_clues"`
	ColClues [][]int `json:"col_clues"`
}

func (dto CreatePuzzleDTO) Validate() error {
	if len(dto.RowClues) == 0 || len(dto.ColClues) == 0 {
		return errors.New("row_clues and col_clues must both be non-empty")
	}
	for _, lines := range [][][]int{dto.RowClues, dto.ColClues} {
		for _, clues := range lines {
			for _, c := range clues {
				if c < 1 {
					return fmt.Errorf("clue lengths must be positive, got %d", c)
				}
			}
		}
	}
	return nil
}

type PuzzleDTO struct {
	PuzzleID  int64     `json:"puzzle_id"`
	Title     string    `json:"title"`
	Width     int32     `json:"width"`
	Height    int32     `json:"height"`
	RowClues  [][]int   `json:"row_clues"`
	ColClues  [][]int   `json:"col_clues"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPuzzleDTO(p *repository.Puzzle) PuzzleDTO {
	return PuzzleDTO{
		PuzzleID:  p.PuzzleID,
		Title:     p.Title,
		Width:     p.Width,
		Height:    p.Height,
		RowClues:  p.RowClues,
		ColClues:  p.ColClues,
		CreatedAt: p.CreatedAt.Time,
	}
}

// SolveQuery carries the solve tuning options passed as query parameters.
type SolveQuery struct {
	Workers   int    `schema:"workers"`
	MaxPasses int    `schema:"max_passes"`
	Format    string `schema:"format"`
}

var queryDecoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

func ParseSolveQuery(query url.Values) (SolveQuery, error) {
	var q SolveQuery
	if err := queryDecoder.Decode(&q, query); err != nil {
		return q, err
	}
	if q.Workers < 0 || q.MaxPasses < 0 {
		return q, errors.New("workers and max_passes must not be negative")
	}
	switch q.Format {
	case "", "json", "text":
	default:
		return q, fmt.Errorf("unknown format %q", q.Format)
	}
	return q, nil
}

type SolveDTO struct {
	SolveID    int64    `json:"solve_id"`
	PuzzleID   int64    `json:"puzzle_id"`
	Status     string   `json:"status"`
	Passes     int32    `json:"passes"`
	Unknowns   int32    `json:"unknowns"`
	DurationMs int64    `json:"duration_ms"`
	Grid       []string `json:"grid"`
}

func NewSolveDTO(s *repository.Solve, p *hanjie.Puzzle) SolveDTO {
	return SolveDTO{
		SolveID:    s.SolveID,
		PuzzleID:   s.PuzzleID,
		Status:     s.Status,
		Passes:     s.Passes,
		Unknowns:   s.Unknowns,
		DurationMs: s.DurationMs,
		Grid:       GridRows(p),
	}
}

// GridRows renders the grid one string per row, '#'/'.'/'?' per cell.
func GridRows(p *hanjie.Puzzle) []string {
	rows := make([]string, 0, p.Height())
	cells := p.Cells()
	for y := range p.Height() {
		row := make([]byte, p.Width())
		for x := range p.Width() {
			row[x] = cells[y*p.Width()+x].String()[0]
		}
		rows = append(rows, string(row))
	}
	return rows
}
