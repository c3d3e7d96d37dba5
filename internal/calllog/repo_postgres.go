package calllog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// PostgresRepo persists call logs in the call_logs table.
//
// NOTE: This repository assumes the following table exists:
//
//	CREATE TABLE call_logs (
//	    id            UUID PRIMARY KEY,
//	    customer_name TEXT NOT NULL,
//	    phone         TEXT NOT NULL,
//	    direction     TEXT NOT NULL,
//	    status        TEXT NOT NULL,
//	    duration      INT  NOT NULL,
//	    timestamp     TIMESTAMPTZ NOT NULL,
//	    recording_url TEXT,
//	    transcription TEXT NOT NULL,
//	    order_summary TEXT,
//	    ai_confidence DOUBLE PRECISION,
//	    created_at    TIMESTAMPTZ NOT NULL
//	)
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Create(ctx context.Context, log CallLog) error {
	const q = `
INSERT INTO call_logs
	(id, customer_name, phone, direction, status, duration, timestamp,
	 recording_url, transcription, order_summary, ai_confidence, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`
	_, err := r.db.ExecContext(ctx, q,
		log.ID,
		log.CustomerName,
		log.Phone,
		string(log.Direction),
		string(log.Status),
		log.DurationSeconds,
		log.Timestamp,
		nullString(log.RecordingURL),
		log.Transcription,
		nullString(log.OrderSummary),
		nullFloat(log.AIConfidence),
		log.CreatedAt,
	)
	return err
}

func (r *PostgresRepo) List(ctx context.Context, f ListFilter) ([]CallLog, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var b strings.Builder
	b.WriteString(`
SELECT id, customer_name, phone, direction, status, duration, timestamp,
       recording_url, transcription, order_summary, ai_confidence, created_at
FROM call_logs
WHERE 1=1`)

	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.PhoneContains != "" {
		b.WriteString(" AND phone ILIKE " + arg("%"+f.PhoneContains+"%"))
	}
	if f.Status != "" {
		b.WriteString(" AND status = " + arg(string(f.Status)))
	}
	if f.Direction != "" {
		b.WriteString(" AND direction = " + arg(string(f.Direction)))
	}
	if !f.Since.IsZero() {
		b.WriteString(" AND timestamp >= " + arg(f.Since))
	}
	b.WriteString(" ORDER BY timestamp DESC LIMIT " + arg(limit))

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CallLog
	for rows.Next() {
		var l CallLog
		var rec, summary sql.NullString
		var conf sql.NullFloat64
		if err := rows.Scan(
			&l.ID,
			&l.CustomerName,
			&l.Phone,
			&l.Direction,
			&l.Status,
			&l.DurationSeconds,
			&l.Timestamp,
			&rec,
			&l.Transcription,
			&summary,
			&conf,
			&l.CreatedAt,
		); err != nil {
			return nil, err
		}
		l.RecordingURL = rec.String
		l.OrderSummary = summary.String
		if conf.Valid {
			v := conf.Float64
			l.AIConfidence = &v
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
