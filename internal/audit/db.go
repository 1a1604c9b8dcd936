// Package audit keeps a local trail of booking requests for reporting.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Outcomes recorded per booking request.
const (
	OutcomeBooked   = "booked"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Entry is one booking request in the trail.
type Entry struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	VisitorName  string    `json:"visitor_name"`
	VisitorEmail string    `json:"visitor_email"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	MeetingID    string    `json:"meeting_id,omitempty"`
	Outcome      string    `json:"outcome"`
	CreatedAt    time.Time `json:"created_at"`
}

// DB wraps the sqlite audit database.
type DB struct {
	*sql.DB
}

// Open opens the audit database at path and runs migrations.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS booking_audit (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			visitor_name TEXT NOT NULL,
			visitor_email TEXT NOT NULL,
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			meeting_id TEXT,
			outcome TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate audit db: %w", err)
	}
	return &DB{db}, nil
}

// Record inserts one entry.
func (db *DB) Record(ctx context.Context, e Entry) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO booking_audit
			(id, username, visitor_name, visitor_email, start_time, end_time, meeting_id, outcome, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Username, e.VisitorName, e.VisitorEmail, e.Start, e.End, e.MeetingID, e.Outcome, e.CreatedAt)
	return err
}

// List returns all entries ordered by creation time ascending.
func (db *DB) List(ctx context.Context) ([]Entry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, username, visitor_name, visitor_email, start_time, end_time, meeting_id, outcome, created_at
		FROM booking_audit
		ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var meetingID sql.NullString
		if err := rows.Scan(&e.ID, &e.Username, &e.VisitorName, &e.VisitorEmail,
			&e.Start, &e.End, &meetingID, &e.Outcome, &e.CreatedAt); err != nil {
			return nil, err
		}
		if meetingID.Valid {
			e.MeetingID = meetingID.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteOlderThan removes entries older than the retention window and
// returns how many were deleted.
func (db *DB) DeleteOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	res, err := db.ExecContext(ctx,
		`DELETE FROM booking_audit WHERE created_at < ?`,
		time.Now().UTC().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
