package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// retention for tab-view rows
const viewRetention = 365 * 24 * time.Hour

type TabCount struct {
	TabID string `json:"tab_id"`
	Views int64  `json:"views"`
}

type TabView struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	FromTab   string    `json:"from_tab"`
	ToTab     string    `json:"to_tab"`
	Timestamp time.Time `json:"timestamp"`
}

type TabStats struct {
	TotalSwitches  int64      `json:"total_switches"`
	UniqueVisitors int64      `json:"unique_visitors"`
	SwitchesToday  int64      `json:"switches_today"`
	PerTab         []TabCount `json:"per_tab"`
	Recent         []TabView  `json:"recent"`
}

// Store persists anonymised tab-switch events in sqlite.
type Store struct {
	db *sql.DB
}

func openStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// sqlite allows a single writer; ":memory:" is also per connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS tab_views (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		from_tab TEXT NOT NULL,
		to_tab TEXT NOT NULL,
		viewed_at INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create tab_views: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_tab_views_viewed_at ON tab_views (viewed_at)`)
	if err != nil {
		return fmt.Errorf("create tab_views index: %w", err)
	}
	return nil
}

func (s *Store) RecordTabView(ctx context.Context, hashedIP, from, to string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tab_views (hashed_ip, from_tab, to_tab, viewed_at)
		VALUES (?, ?, ?, ?)
	`, hashedIP, from, to, at.Unix())
	if err != nil {
		return fmt.Errorf("record tab view: %w", err)
	}
	return nil
}

// Cleanup removes rows older than the retention window and reports how many
// were deleted.
func (s *Store) Cleanup(ctx context.Context, now time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tab_views WHERE viewed_at < ?`, now.Add(-viewRetention).Unix())
	if err != nil {
		return 0, fmt.Errorf("cleanup tab views: %w", err)
	}
	return result.RowsAffected()
}

func (s *Store) Stats(ctx context.Context, now time.Time) (*TabStats, error) {
	stats := &TabStats{}

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COUNT(DISTINCT hashed_ip) FROM tab_views`).
		Scan(&stats.TotalSwitches, &stats.UniqueVisitors)
	if err != nil {
		return nil, fmt.Errorf("count tab views: %w", err)
	}

	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tab_views WHERE viewed_at >= ?`, startOfDay.Unix()).
		Scan(&stats.SwitchesToday)
	if err != nil {
		return nil, fmt.Errorf("count today's tab views: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT to_tab, COUNT(*) AS views
		FROM tab_views
		GROUP BY to_tab
		ORDER BY views DESC, to_tab ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("count per tab: %w", err)
	}
	for rows.Next() {
		var tc TabCount
		if err := rows.Scan(&tc.TabID, &tc.Views); err != nil {
			rows.Close()
			return nil, err
		}
		stats.PerTab = append(stats.PerTab, tc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats.Recent, err = s.RecentViews(ctx, 50)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) RecentViews(ctx context.Context, limit int) ([]TabView, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, from_tab, to_tab, viewed_at
		FROM tab_views
		ORDER BY viewed_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent tab views: %w", err)
	}
	defer rows.Close()

	var views []TabView
	for rows.Next() {
		var v TabView
		var ts int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.FromTab, &v.ToTab, &ts); err != nil {
			return nil, err
		}
		v.Timestamp = time.Unix(ts, 0).UTC()
		views = append(views, v)
	}
	return views, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
