// Package repository holds the hand-written pgx queries for the puzzle,
// solve and account tables.
package repository

import "github.com/jackc/pgx/v5/pgxpool"

type Queries struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Queries {
	return &Queries{db: db}
}
