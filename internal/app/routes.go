package app

import "github.com/klofan/hanjie-server/internal/handlers"

func (a *App) loadRoutes() {
	puzzle := handlers.NewPuzzleHandler(a.logger, a.db, a.ws)
	auth := handlers.NewAuthHandler(a.logger, a.db, a.cookies, a.jwt)

	a.router.HandleFunc("POST /puzzle", puzzle.Create)
	a.router.HandleFunc("GET /puzzle", puzzle.List)
	a.router.HandleFunc("GET /puzzle/{id}", puzzle.Fetch)
	a.router.HandleFunc("POST /puzzle/{id}/solve", puzzle.Solve)
	a.router.HandleFunc("GET /puzzle/{id}/solve", puzzle.FetchSolve)
	a.router.HandleFunc("/puzzle/{id}/watch", puzzle.Watch)

	a.router.HandleFunc("POST /auth/register", auth.Register)
	a.router.HandleFunc("POST /auth/login", auth.Login)
	a.router.HandleFunc("POST /auth/logout", auth.Logout)
	a.router.HandleFunc("GET /auth/status", auth.Status)
}
