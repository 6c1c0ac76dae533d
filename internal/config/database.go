package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Database struct {
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
}

func requireEnv(key string) (string, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", fmt.Errorf("no %s env variable set", key)
	}
	return value, nil
}

func loadPassword() (string, error) {
	if password, ok := os.LookupEnv("POSTGRES_PASSWORD"); ok {
		return password, nil
	}
	passwordFile, ok := os.LookupEnv("POSTGRES_PASSWORD_FILE")
	if !ok {
		return "", fmt.Errorf("no POSTGRES_PASSWORD or POSTGRES_PASSWORD_FILE env variable set")
	}
	data, err := os.ReadFile(passwordFile)
	if err != nil {
		return "", fmt.Errorf("unable to read from password file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func NewDatabase() (*Database, error) {
	cfg := &Database{}
	var err error
	if cfg.Username, err = requireEnv("POSTGRES_USER"); err != nil {
		return nil, err
	}
	if cfg.Password, err = loadPassword(); err != nil {
		return nil, fmt.Errorf("unable to load password: %w", err)
	}
	if cfg.Host, err = requireEnv("POSTGRES_HOST"); err != nil {
		return nil, err
	}
	if cfg.Port, err = requireEnv("POSTGRES_PORT"); err != nil {
		return nil, err
	}
	if cfg.DBName, err = requireEnv("POSTGRES_DB"); err != nil {
		return nil, err
	}
	if cfg.SSLMode, err = requireEnv("POSTGRES_SSLMODE"); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c Database) URL() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		c.Username,
		url.QueryEscape(c.Password),
		c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func DbURL() (string, error) {
	if dbURL, ok := os.LookupEnv("DATABASE_URL"); ok {
		return dbURL, nil
	}
	cfg, err := NewDatabase()
	if err != nil {
		return "", fmt.Errorf("no DATABASE_URL set; %w", err)
	}
	return cfg.URL(), nil
}

func NewPgxpoolConfig() (*pgxpool.Config, error) {
	dbURL, err := DbURL()
	if err != nil {
		return nil, err
	}
	return pgxpool.ParseConfig(dbURL)
}
