package app

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/akarpov/oilpulse/config"
)

// TestInitPostgres_InvalidHost expects ping failure.
func TestInitPostgres_InvalidHost(t *testing.T) {
	cfg := config.Config{Postgres: config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     54329, // unlikely mapped
		User:     "x",
		Password: "y",
		DBName:   "z",
		SSLMode:  "disable",
	}}
	db, err := InitPostgres(cfg)
	if err == nil {
		_ = db.Close()
		t.Fatalf("expected error connecting to invalid DB")
	}
}

// TestInitPostgres_OpenFailure covers the sql.Open error path via the opener indirection.
func TestInitPostgres_OpenFailure(t *testing.T) {
	old := sqlOpener
	sqlOpener = func(driver, dsn string) (*sql.DB, error) { return nil, errors.New("boom") }
	t.Cleanup(func() { sqlOpener = old })

	if _, err := InitPostgres(config.Config{}); err == nil {
		t.Fatalf("expected open error")
	}
}
