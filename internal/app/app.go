package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/klofan/hanjie-server/internal/config"
	"github.com/klofan/hanjie-server/internal/database"
	"github.com/klofan/hanjie-server/internal/middleware"
)

type App struct {
	logger  *slog.Logger
	router  *http.ServeMux
	db      *pgxpool.Pool
	cookies *config.Cookies
	jwt     *config.JWT
	ws      *config.WebSocket
}

func New(logger *slog.Logger) *App {
	return &App{
		logger: logger,
		router: http.NewServeMux(),
	}
}

func (a *App) Start(ctx context.Context) error {
	db, _, err := database.ConnectAndMigrate(ctx)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	a.db = db
	defer db.Close()

	jwt, err := config.NewJWT()
	if err != nil {
		return err
	}
	a.jwt = jwt

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		return err
	}
	a.cookies = cookies

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	a.loadRoutes()

	addr := config.Addr()
	server := &http.Server{
		Addr: addr,
		Handler: middleware.Wrap(
			a.router,
			middleware.Auth(a.logger, cookies),
			middleware.Cors(),
			middleware.Logging(a.logger),
		),
	}

	a.logger.Info("server listening", slog.String("addr", addr))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
