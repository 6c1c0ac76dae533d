package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Solve status values.
const (
	StatusSolved       = "solved"       // fixpoint, no cells undetermined
	StatusPartial      = "partial"      // fixpoint, ambiguity remains
	StatusInconsistent = "inconsistent" // a line contradicted its clues
)

type Solve struct {
	SolveID    int64
	PuzzleID   int64
	AccountID  *int64
	Status     string
	Passes     int32
	Unknowns   int32
	DurationMs int64
	State      []byte
	CreatedAt  pgtype.Timestamptz
}

type CreateSolveParams struct {
	PuzzleID   int64
	AccountID  *int64
	Status     string
	Passes     int32
	Unknowns   int32
	DurationMs int64
	State      []byte
}

func (q *Queries) CreateSolve(ctx context.Context, params CreateSolveParams) (*Solve, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO solve (puzzle_id, account_id, status, passes, unknowns, duration_ms, state)
		VALUES (@puzzle_id, @account_id, @status, @passes, @unknowns, @duration_ms, @state)
		RETURNING *`,
		pgx.NamedArgs{
			"puzzle_id":   params.PuzzleID,
			"account_id":  params.AccountID,
			"status":      params.Status,
			"passes":      params.Passes,
			"unknowns":    params.Unknowns,
			"duration_ms": params.DurationMs,
			"state":       params.State,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Solve])
}

func (q *Queries) FetchSolve(ctx context.Context, solveId int64) (*Solve, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM solve WHERE solve_id = $1", solveId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Solve])
}

func (q *Queries) FetchLatestSolve(ctx context.Context, puzzleId int64) (*Solve, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM solve WHERE puzzle_id = $1 ORDER BY solve_id DESC LIMIT 1",
		puzzleId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Solve])
}
