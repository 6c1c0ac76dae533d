package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type Puzzle struct {
	PuzzleID  int64
	AccountID *int64
	Title     string
	Width     int32
	Height    int32
	RowClues  [][]int
	ColClues  [][]int
	CreatedAt pgtype.Timestamptz
}

type CreatePuzzleParams struct {
	AccountID *int64
	Title     string
	Width     int32
	Height    int32
	RowClues  [][]int
	ColClues  [][]int
}

func (q *Queries) CreatePuzzle(ctx context.Context, params CreatePuzzleParams) (*Puzzle, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO puzzle (account_id, title, width, height, row_clues, col_clues)
		VALUES (@account_id, @title, @width, @height, @row_clues, @col_clues)
		RETURNING *`,
		pgx.NamedArgs{
			"account_id": params.AccountID,
			"title":      params.Title,
			"width":      params.Width,
			"height":     params.Height,
			"row_clues":  params.RowClues,
			"col_clues":  params.ColClues,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Puzzle])
}

func (q *Queries) FetchPuzzle(ctx context.Context, puzzleId int64) (*Puzzle, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM puzzle WHERE puzzle_id = $1", puzzleId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Puzzle])
}

func (q *Queries) ListPuzzles(ctx context.Context, limit int32) ([]*Puzzle, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM puzzle ORDER BY puzzle_id DESC LIMIT $1", limit,
	)
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[Puzzle])
}
