//go:build integration
// +build integration

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/growwgate/internal/domain/models"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "growwgate",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=growwgate sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "growwgate")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func TestRefreshLog_Integration(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// applying twice is a no-op
	if err := Migrate(db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	repo := NewRefreshLogRepository(db)
	ctx := context.Background()
	base := time.Date(2025, 1, 2, 3, 30, 0, 0, time.UTC)

	events := []models.RefreshEvent{
		{Trigger: models.TriggerStartup, Error: "client not initialized", CreatedAt: base},
		{Trigger: models.TriggerManual, Success: true, IssuedOn: "2025-01-02", CreatedAt: base.Add(time.Minute)},
		{Trigger: models.TriggerScheduled, Success: true, IssuedOn: "2025-01-03", CreatedAt: base.Add(24 * time.Hour)},
	}
	for _, ev := range events {
		if err := repo.Record(ctx, ev); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	cases := []struct {
		name        string
		limit       int
		wantLen     int
		wantFirst   models.RefreshTrigger
		wantIssued  string
		wantSuccess bool
	}{
		{name: "all", limit: 10, wantLen: 3, wantFirst: models.TriggerScheduled, wantIssued: "2025-01-03", wantSuccess: true},
		{name: "limited", limit: 1, wantLen: 1, wantFirst: models.TriggerScheduled, wantIssued: "2025-01-03", wantSuccess: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := repo.Recent(ctx, c.limit)
			if err != nil {
				t.Fatalf("recent: %v", err)
			}
			if len(out) != c.wantLen {
				t.Fatalf("len=%d, want %d", len(out), c.wantLen)
			}
			if out[0].Trigger != c.wantFirst || out[0].IssuedOn != c.wantIssued || out[0].Success != c.wantSuccess {
				t.Fatalf("unexpected newest row %+v", out[0])
			}
		})
	}

	t.Run("failed attempt has no issue date", func(t *testing.T) {
		out, err := repo.Recent(ctx, 10)
		if err != nil {
			t.Fatalf("recent: %v", err)
		}
		last := out[len(out)-1]
		if last.Success || last.IssuedOn != "" || last.Error == "" {
			t.Fatalf("unexpected oldest row %+v", last)
		}
	})
}
