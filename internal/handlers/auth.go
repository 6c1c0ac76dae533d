package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/klofan/hanjie-server/internal/config"
	"github.com/klofan/hanjie-server/internal/middleware"
	"github.com/klofan/hanjie-server/internal/repository"
)

type AuthHandler struct {
	logger  *slog.Logger
	repo    *repository.Queries
	cookies *config.Cookies
	jwt     *config.JWT
}

func NewAuthHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	cookies *config.Cookies,
	jwt *config.JWT,
) *AuthHandler {
	return &AuthHandler{
		logger:  logger,
		repo:    repository.New(db),
		cookies: cookies,
		jwt:     jwt,
	}
}

var (
	errBadAuthBody     = errors.New("request body must contain url-encoded username and password")
	errPasswordTooLong = errors.New("password too long")
	errUsernameTaken   = errors.New("username taken")
	errBadCredentials  = errors.New("invalid username or password")
)

func credentials(r *http.Request) (username, password string, err error) {
	if err := r.ParseForm(); err != nil {
		return "", "", errBadAuthBody
	}
	username = r.FormValue("username")
	password = r.FormValue("password")
	if username == "" || password == "" {
		return "", "", errBadAuthBody
	}
	if len(password) > 72 { // bcrypt input cap
		return "", "", errPasswordTooLong
	}
	return username, password, nil
}

func (h AuthHandler) issueCookies(w http.ResponseWriter, accountId int64, username string) {
	token, err := h.jwt.Sign(config.NewAccountClaims(accountId, username))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to sign claims", "error", err)
		return
	}
	if err := h.cookies.Refresh(w, token); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to set cookies", "error", err)
	}
}

func (h AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username, password, err := credentials(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to hash password", "error", err)
		return
	}

	account, err := h.repo.CreateAccount(r.Context(), repository.CreateAccountParams{
		Username:     username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, h.logger, wrapError(errUsernameTaken))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to insert account", "error", err)
		return
	}

	h.issueCookies(w, account.AccountID, account.Username)
}

func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username, password, err := credentials(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	account, err := h.repo.FetchAccount(r.Context(), username)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusUnauthorized)
		sendJSONOrLog(w, h.logger, wrapError(errBadCredentials))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch account", "error", err)
		return
	}

	if bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)) != nil {
		w.WriteHeader(http.StatusUnauthorized)
		sendJSONOrLog(w, h.logger, wrapError(errBadCredentials))
		return
	}

	h.issueCookies(w, account.AccountID, account.Username)
}

func (h AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
}

type statusDTO struct {
	LoggedIn bool    `json:"logged_in"`
	Username *string `json:"username,omitempty"`
}

func (h AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.CtxAccountClaims).(*config.AccountClaims)
	if !ok {
		sendJSONOrLog(w, h.logger, statusDTO{LoggedIn: false})
		return
	}
	sendJSONOrLog(w, h.logger, statusDTO{LoggedIn: true, Username: &claims.Username})
}
