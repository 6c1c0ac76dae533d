package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/klofan/hanjie-server/internal/config"
	"github.com/klofan/hanjie-server/internal/hanjie"
	"github.com/klofan/hanjie-server/internal/middleware"
	"github.com/klofan/hanjie-server/internal/render"
	"github.com/klofan/hanjie-server/internal/repository"
)

type PuzzleHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
	ws     *config.WebSocket
}

func NewPuzzleHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
) *PuzzleHandler {
	return &PuzzleHandler{
		logger: logger,
		repo:   repository.New(db),
		ws:     ws,
	}
}

func accountId(r *http.Request) *int64 {
	claims, ok := r.Context().Value(middleware.CtxAccountClaims).(*config.AccountClaims)
	if !ok {
		return nil
	}
	return &claims.AccountId
}

func (h PuzzleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreatePuzzleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}
	if err := dto.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	puzzle, err := h.repo.CreatePuzzle(r.Context(), repository.CreatePuzzleParams{
		AccountID: accountId(r),
		Title:     dto.Title,
		Width:     int32(len(dto.ColClues)),
		Height:    int32(len(dto.RowClues)),
		RowClues:  dto.RowClues,
		ColClues:  dto.ColClues,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to insert puzzle", "error", err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	sendJSONOrLog(w, h.logger, NewPuzzleDTO(puzzle))
}

func (h PuzzleHandler) fetchPuzzle(w http.ResponseWriter, r *http.Request) *repository.Puzzle {
	puzzleId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil
	}
	puzzle, err := h.repo.FetchPuzzle(r.Context(), puzzleId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch puzzle from db", "error", err)
		return nil
	}
	return puzzle
}

func (h PuzzleHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	puzzle := h.fetchPuzzle(w, r)
	if puzzle == nil {
		return
	}
	sendJSONOrLog(w, h.logger, NewPuzzleDTO(puzzle))
}

func (h PuzzleHandler) List(w http.ResponseWriter, r *http.Request) {
	puzzles, err := h.repo.ListPuzzles(r.Context(), 100)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to list puzzles", "error", err)
		return
	}
	dtos := make([]PuzzleDTO, 0, len(puzzles))
	for _, p := range puzzles {
		dtos = append(dtos, NewPuzzleDTO(p))
	}
	sendJSONOrLog(w, h.logger, dtos)
}

// Solve runs the propagation engine against a stored puzzle, records the
// outcome, and returns the resulting grid. Query parameters tune the run:
// workers (parallel line probing), max_passes, format=json|text.
func (h PuzzleHandler) Solve(w http.ResponseWriter, r *http.Request) {
	query, err := ParseSolveQuery(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	stored := h.fetchPuzzle(w, r)
	if stored == nil {
		return
	}

	puzzle := hanjie.NewPuzzle(hanjie.Definition{
		RowClues: stored.RowClues,
		ColClues: stored.ColClues,
	})

	var passes int32
	start := time.Now()
	err = puzzle.SolveWith(r.Context(), hanjie.SolveOptions{
		Workers:   query.Workers,
		MaxPasses: query.MaxPasses,
		Progress:  func(hanjie.Pass) { passes++ },
	})
	duration := time.Since(start)

	status := repository.StatusSolved
	switch {
	case errors.Is(err, hanjie.ErrInconsistent):
		status = repository.StatusInconsistent
	case errors.Is(err, hanjie.ErrPassLimit):
		status = repository.StatusPartial
	case err != nil:
		// Context cancellation: the client went away, nothing to record.
		h.logger.Warn("solve aborted", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	case puzzle.Unknowns() > 0:
		status = repository.StatusPartial
	}

	state, err := puzzle.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to serialize puzzle state", "error", err)
		return
	}

	solve, err := h.repo.CreateSolve(r.Context(), repository.CreateSolveParams{
		PuzzleID:   stored.PuzzleID,
		AccountID:  accountId(r),
		Status:     status,
		Passes:     passes,
		Unknowns:   int32(puzzle.Unknowns()),
		DurationMs: duration.Milliseconds(),
		State:      state,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to insert solve", "error", err)
		return
	}

	if query.Format == "text" {
		w.Header().Add("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte(render.Text(puzzle))); err != nil {
			h.logger.Error("unable to send text grid", "error", err)
		}
		return
	}
	sendJSONOrLog(w, h.logger, NewSolveDTO(solve, puzzle))
}

// FetchSolve returns the most recent recorded solve of a puzzle.
func (h PuzzleHandler) FetchSolve(w http.ResponseWriter, r *http.Request) {
	puzzleId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	solve, err := h.repo.FetchLatestSolve(r.Context(), puzzleId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch solve from db", "error", err)
		return
	}

	puzzle, err := hanjie.DecodePuzzle(solve.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("db returned invalid solve.state", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewSolveDTO(solve, puzzle))
}
