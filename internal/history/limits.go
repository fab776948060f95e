package history

import (
	"fmt"
	"time"
)

// Limits configures token ceilings per window. A zero ceiling disables that
// window's check. Threshold is the fraction of a ceiling at which further
// sessions are refused (spend never runs all the way to the hard limit).
type Limits struct {
	Threshold     float64
	DailyTokens   int64
	WeeklyTokens  int64
	SessionTokens int64
}

// WindowDetail reports one window's usage against its ceiling.
type WindowDetail struct {
	Window   string  `json:"window"`
	Used     int64   `json:"used"`
	Limit    int64   `json:"limit"`
	Pct      float64 `json:"pct"`
	Exceeded bool    `json:"exceeded"`
	Note     string  `json:"note,omitempty"`
}

// LimitResult is the rate-limit verdict.
type LimitResult struct {
	Allowed bool           `json:"allowed"`
	Details []WindowDetail `json:"details"`
}

const usageDateLayout = "2006-01-02"

// RecordUsage adds tokens to the given day's counter.
func (db *DB) RecordUsage(day string, tokens int64) error {
	_, err := db.Exec(`
		INSERT INTO token_usage (day, tokens) VALUES (?, ?)
		ON CONFLICT(day) DO UPDATE SET tokens = tokens + excluded.tokens
	`, day, tokens)
	if err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

// UsageOn returns the token count recorded for one day.
func (db *DB) UsageOn(day string) (int64, error) {
	var tokens int64
	err := db.QueryRow("SELECT COALESCE(SUM(tokens), 0) FROM token_usage WHERE day = ?", day).Scan(&tokens)
	if err != nil {
		return 0, fmt.Errorf("usage on %s: %w", day, err)
	}
	return tokens, nil
}

// usageSince sums tokens for the last n days ending at the given day.
func (db *DB) usageSince(end time.Time, days int) (int64, error) {
	start := end.AddDate(0, 0, -(days - 1)).Format(usageDateLayout)
	var tokens int64
	err := db.QueryRow(
		"SELECT COALESCE(SUM(tokens), 0) FROM token_usage WHERE day >= ? AND day <= ?",
		start, end.Format(usageDateLayout),
	).Scan(&tokens)
	if err != nil {
		return 0, fmt.Errorf("usage since %s: %w", start, err)
	}
	return tokens, nil
}

// CheckLimits compares recorded plus in-flight session usage against the
// configured ceilings. With no ceilings configured the check degrades open:
// the limiter must never be the reason nothing can run.
func (db *DB) CheckLimits(l Limits, sessionTokens int64, now time.Time) (LimitResult, error) {
	threshold := l.Threshold
	if threshold <= 0 {
		threshold = 0.6
	}

	if l.DailyTokens == 0 && l.WeeklyTokens == 0 && l.SessionTokens == 0 {
		return LimitResult{
			Allowed: true,
			Details: []WindowDetail{{Window: "config", Note: "no limits configured, allowing"}},
		}, nil
	}

	result := LimitResult{Allowed: true}
	check := func(window string, used, limit int64) {
		pct := float64(used) / float64(limit)
		exceeded := pct >= threshold
		if exceeded {
			result.Allowed = false
		}
		result.Details = append(result.Details, WindowDetail{
			Window:   window,
			Used:     used,
			Limit:    limit,
			Pct:      pct * 100,
			Exceeded: exceeded,
		})
	}

	if l.DailyTokens > 0 {
		used, err := db.UsageOn(now.UTC().Format(usageDateLayout))
		if err != nil {
			return result, err
		}
		check("daily", used+sessionTokens, l.DailyTokens)
	}
	if l.WeeklyTokens > 0 {
		used, err := db.usageSince(now.UTC(), 7)
		if err != nil {
			return result, err
		}
		check("weekly", used+sessionTokens, l.WeeklyTokens)
	}
	if l.SessionTokens > 0 {
		check("session", sessionTokens, l.SessionTokens)
	}

	return result, nil
}
