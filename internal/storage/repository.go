package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/guttosm/growwgate/db"
	"github.com/guttosm/growwgate/internal/domain/models"
)

const (
	// DefaultHistoryLimit is used when no positive limit is requested.
	DefaultHistoryLimit = 20
	// MaxHistoryLimit caps the number of rows returned by Recent.
	MaxHistoryLimit = 200

	dateLayout = "2006-01-02"
)

// RefreshLogRepository persists the token refresh audit trail.
type RefreshLogRepository interface {
	Record(ctx context.Context, ev models.RefreshEvent) error
	Recent(ctx context.Context, limit int) ([]models.RefreshEvent, error)
	Ping(ctx context.Context) error
}

type refreshLogRepository struct {
	db *sql.DB
}

// NewRefreshLogRepository creates a RefreshLogRepository backed by db.
//
// Parameters:
//   - db (*sql.DB): open connection; the token_refresh_log table must exist (see Migrate).
//
// Returns:
//   - RefreshLogRepository: Postgres implementation of the audit log.
func NewRefreshLogRepository(db *sql.DB) RefreshLogRepository {
	return &refreshLogRepository{db: db}
}

// Migrate applies the embedded goose migrations.
func Migrate(conn *sql.DB) error {
	goose.SetBaseFS(db.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(conn, db.MigrationsDir); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Record inserts one refresh attempt.
func (r *refreshLogRepository) Record(ctx context.Context, ev models.RefreshEvent) error {
	createdAt := ev.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	// empty issue date (failed attempt) maps to NULL
	var issuedOn interface{}
	if ev.IssuedOn != "" {
		d, err := time.Parse(dateLayout, ev.IssuedOn)
		if err != nil {
			return fmt.Errorf("invalid issued_on %q: %w", ev.IssuedOn, err)
		}
		issuedOn = d
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO token_refresh_log (trigger, success, error, issued_on, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, string(ev.Trigger), ev.Success, ev.Error, issuedOn, createdAt)
	return err
}

// Recent returns the latest refresh attempts, newest first.
func (r *refreshLogRepository) Recent(ctx context.Context, limit int) ([]models.RefreshEvent, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, trigger, success, error, issued_on, created_at
		FROM token_refresh_log
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.RefreshEvent, 0, limit)
	for rows.Next() {
		var (
			ev       models.RefreshEvent
			trigger  string
			issuedOn sql.NullTime
		)
		if err := rows.Scan(&ev.ID, &trigger, &ev.Success, &ev.Error, &issuedOn, &ev.CreatedAt); err != nil {
			return nil, err
		}
		ev.Trigger = models.RefreshTrigger(trigger)
		if issuedOn.Valid {
			ev.IssuedOn = issuedOn.Time.Format(dateLayout)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Ping checks the database connection; used by the readiness probe.
func (r *refreshLogRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
