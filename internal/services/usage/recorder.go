// Package usage persists one row per inference request when a database is
// configured. The recorder is nil-safe so handlers never branch on it.
package usage

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maxErrorCodeLen = 512

// Record captures the outcome of a single inference request.
type Record struct {
	RequestID string
	Route     string
	Provider  string
	Model     string
	Status    int
	Latency   time.Duration
	BytesIn   int64
	Chars     int
	ErrorCode string
	Timestamp time.Time
	Success   bool
}

// Recorder writes request records to Postgres.
type Recorder struct {
	pool *pgxpool.Pool
}

// NewRecorder returns a recorder backed by pool; a nil pool yields a nil
// recorder, which drops records.
func NewRecorder(pool *pgxpool.Pool) *Recorder {
	if pool == nil {
		return nil
	}
	return &Recorder{pool: pool}
}

// Record inserts the request row. Failures are logged, not propagated: usage
// accounting must never fail a serving request.
func (r *Recorder) Record(ctx context.Context, rec Record) {
	if r == nil || r.pool == nil {
		return
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	if rec.RequestID == "" {
		rec.RequestID = uuid.NewString()
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO request_log (
			id, request_id, route, provider, model, status,
			latency_ms, bytes_in, chars, error_code, success, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		uuid.New(),
		rec.RequestID,
		rec.Route,
		rec.Provider,
		rec.Model,
		rec.Status,
		rec.Latency.Milliseconds(),
		rec.BytesIn,
		rec.Chars,
		TruncateErrorCode(rec.ErrorCode),
		rec.Success,
		rec.Timestamp,
	)
	if err != nil {
		slog.Error("record usage", slog.String("route", rec.Route), slog.String("error", err.Error()))
	}
}

// TruncateErrorCode bounds provider error strings so a pathological upstream
// message cannot bloat the log table.
func TruncateErrorCode(code string) string {
	if len(code) <= maxErrorCodeLen {
		return code
	}
	return code[:maxErrorCodeLen]
}
