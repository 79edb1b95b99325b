package db

import (
	"context"
	"testing"

	"github.com/tradehub/marketplace-backend/pkg/config"
	"github.com/tradehub/marketplace-backend/pkg/logger"
)

func TestNewOpensSQLite(t *testing.T) {
	client, err := New(context.Background(), config.DBConfig{
		DSN:          "file::memory:?cache=shared",
		Driver:       config.DBDriverSQLite,
		MaxOpenConns: 1,
	}, logger.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}

	var one int
	if err := client.DB().Raw("SELECT 1").Scan(&one).Error; err != nil {
		t.Fatalf("raw query failed: %v", err)
	}
	if one != 1 {
		t.Fatalf("expected 1, got %d", one)
	}
}

func TestNewRequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{Driver: config.DBDriverPostgres}, nil); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}

func TestDialectorFor(t *testing.T) {
	cases := map[string]string{
		config.DBDriverSQLite:   "sqlite",
		config.DBDriverPostgres: "postgres",
		"":                      "postgres",
	}
	for driver, want := range cases {
		got := dialectorFor(config.DBConfig{Driver: driver, DSN: "postgres://localhost/test"}).Name()
		if got != want {
			t.Fatalf("driver %q: expected dialector %q, got %q", driver, want, got)
		}
	}
}
