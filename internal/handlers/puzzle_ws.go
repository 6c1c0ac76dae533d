package handlers

import (
	"errors"
	"net/http"

	"github.com/klofan/hanjie-server/internal/hanjie"
)

type passFrame struct {
	Type string      `json:"type"`
	Pass hanjie.Pass `json:"pass"`
	Grid []string    `json:"grid"`
}

type doneFrame struct {
	Type     string   `json:"type"`
	Status   string   `json:"status"`
	Error    string   `json:"error,omitempty"`
	Unknowns int      `json:"unknowns"`
	Grid     []string `json:"grid"`
}

// Watch streams a solve over a websocket: one frame per completed pass,
// then a final frame with the outcome. The solve runs with the same
// options as the plain Solve endpoint but is not recorded.
func (h PuzzleHandler) Watch(w http.ResponseWriter, r *http.Request) {
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

	conn, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	puzzle := hanjie.NewPuzzle(hanjie.Definition{
		RowClues: stored.RowClues,
		ColClues: stored.ColClues,
	})

	var writeErr error
	solveErr := puzzle.SolveWith(r.Context(), hanjie.SolveOptions{
		Workers:   query.Workers,
		MaxPasses: query.MaxPasses,
		Progress: func(pass hanjie.Pass) {
			if writeErr != nil {
				return
			}
			writeErr = conn.WriteJSON(passFrame{
				Type: "pass",
				Pass: pass,
				Grid: GridRows(puzzle),
			})
		},
	})
	if writeErr != nil {
		h.logger.Warn("watch client dropped", "error", writeErr)
		return
	}

	done := doneFrame{
		Type:     "done",
		Unknowns: puzzle.Unknowns(),
		Grid:     GridRows(puzzle),
	}
	switch {
	case errors.Is(solveErr, hanjie.ErrInconsistent):
		done.Status = "inconsistent"
		done.Error = solveErr.Error()
	case errors.Is(solveErr, hanjie.ErrPassLimit):
		done.Status = "partial"
		done.Error = solveErr.Error()
	case solveErr != nil:
		done.Status = "aborted"
		done.Error = solveErr.Error()
	case puzzle.Unknowns() > 0:
		done.Status = "partial"
	default:
		done.Status = "solved"
	}

	if err := conn.WriteJSON(done); err != nil {
		h.logger.Warn("unable to write final frame", "error", err)
	}
}
