package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session is one exploration-session history record.
type Session struct {
	ID         int64
	Slug       string
	Topic      string
	Mode       string
	Budget     string
	Threshold  float64
	OutputDir  string
	Iterations int
	Status     string
	Reason     string
	StartedAt  int64
	EndedAt    *int64
}

// Running reports whether the session has not ended yet.
func (s *Session) Running() bool {
	return s.Status == "running"
}

// Duration returns the elapsed wall time, using now for running sessions.
func (s *Session) Duration(now time.Time) time.Duration {
	end := now.UnixMilli()
	if s.EndedAt != nil {
		end = *s.EndedAt
	}
	return time.Duration(end-s.StartedAt) * time.Millisecond
}

// StartSession records a new running session. If another record already uses
// the slug, a short uuid suffix is appended so later lookups stay unambiguous.
// The (possibly suffixed) slug is returned on the session.
func (db *DB) StartSession(s *Session) error {
	if s.Slug == "" {
		s.Slug = uuid.NewString()[:8]
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sessions WHERE slug = ?", s.Slug).Scan(&count); err != nil {
		return fmt.Errorf("check slug: %w", err)
	}
	if count > 0 {
		s.Slug = s.Slug + "-" + uuid.NewString()[:8]
	}

	if s.StartedAt == 0 {
		s.StartedAt = time.Now().UnixMilli()
	}
	if s.Threshold == 0 {
		s.Threshold = 0.6
	}

	result, err := db.Exec(`
		INSERT INTO sessions (slug, topic, mode, budget, threshold, output_dir, iterations, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?, 1, 'running', ?)
	`, s.Slug, s.Topic, s.Mode, s.Budget, s.Threshold, s.OutputDir, s.StartedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	id, _ := result.LastInsertId()
	s.ID = id
	s.Iterations = 1
	s.Status = "running"
	return nil
}

// EndSession finalizes the most recent running session with the given slug.
// Ending a slug with no running session is not an error; the session may
// have crashed and been swept by FixStaleSessions already.
func (db *DB) EndSession(slug string, iterations int, status, reason string) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		UPDATE sessions SET iterations = ?, status = ?, reason = ?, ended_at = ?
		WHERE id = (
			SELECT id FROM sessions
			WHERE slug = ? AND status = 'running'
			ORDER BY started_at DESC LIMIT 1
		)
	`, iterations, status, reason, now, slug)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

// GetSession returns the most recent session for a slug, or nil.
func (db *DB) GetSession(slug string) (*Session, error) {
	row := db.QueryRow(`
		SELECT id, slug, topic, mode, budget, threshold, output_dir, iterations, status, reason, started_at, ended_at
		FROM sessions WHERE slug = ? ORDER BY started_at DESC LIMIT 1
	`, slug)
	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return s, nil
}

// RecentSessions returns the most recent sessions, newest first.
func (db *DB) RecentSessions(limit int) ([]Session, error) {
	rows, err := db.Query(`
		SELECT id, slug, topic, mode, budget, threshold, output_dir, iterations, status, reason, started_at, ended_at
		FROM sessions ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		var endedAt sql.NullInt64
		if err := rows.Scan(&s.ID, &s.Slug, &s.Topic, &s.Mode, &s.Budget, &s.Threshold,
			&s.OutputDir, &s.Iterations, &s.Status, &s.Reason, &s.StartedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if endedAt.Valid {
			s.EndedAt = &endedAt.Int64
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// FixStaleSessions marks running sessions as errored when no live session
// actually exists. A session that crashed never wrote its end record.
// Returns the number of rows swept.
func (db *DB) FixStaleSessions() (int, error) {
	now := time.Now().UnixMilli()
	result, err := db.Exec(`
		UPDATE sessions SET status = 'error', reason = 'session ended unexpectedly', ended_at = ?
		WHERE status = 'running'
	`, now)
	if err != nil {
		return 0, fmt.Errorf("fix stale sessions: %w", err)
	}
	n, _ := result.RowsAffected()
	return int(n), nil
}

// ActiveSession returns the currently running session, or nil.
func (db *DB) ActiveSession() (*Session, error) {
	row := db.QueryRow(`
		SELECT id, slug, topic, mode, budget, threshold, output_dir, iterations, status, reason, started_at, ended_at
		FROM sessions WHERE status = 'running' ORDER BY started_at DESC LIMIT 1
	`)
	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("active session: %w", err)
	}
	return s, nil
}

// Stats summarizes session outcomes for the dashboard footer.
type Stats struct {
	Total       int
	Completed   int
	RateLimited int
	Cancelled   int
}

// SessionStats counts sessions per outcome bucket. Completed includes
// max-iterations runs, matching how the dashboard has always grouped them.
func (db *DB) SessionStats() (Stats, error) {
	var st Stats
	rows, err := db.Query("SELECT status, COUNT(*) FROM sessions GROUP BY status")
	if err != nil {
		return st, fmt.Errorf("session stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return st, fmt.Errorf("scan stats: %w", err)
		}
		st.Total += n
		switch status {
		case "completed", "max-iterations":
			st.Completed += n
		case "rate-limited":
			st.RateLimited += n
		case "cancelled":
			st.Cancelled += n
		}
	}
	return st, rows.Err()
}

// StatusIcon returns the two-character dashboard indicator for a status.
func StatusIcon(status string) string {
	switch strings.ToLower(status) {
	case "running":
		return ">>"
	case "completed":
		return "OK"
	case "rate-limited":
		return "$$"
	case "cancelled":
		return "--"
	case "max-iterations":
		return "##"
	case "error":
		return "!!"
	default:
		return "??"
	}
}

func scanSession(row *sql.Row) (*Session, error) {
	var s Session
	var endedAt sql.NullInt64
	err := row.Scan(&s.ID, &s.Slug, &s.Topic, &s.Mode, &s.Budget, &s.Threshold,
		&s.OutputDir, &s.Iterations, &s.Status, &s.Reason, &s.StartedAt, &endedAt)
	if err != nil {
		return nil, err
	}
	if endedAt.Valid {
		s.EndedAt = &endedAt.Int64
	}
	return &s, nil
}
