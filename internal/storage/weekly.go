package storage

import (
	"context"
	"fmt"
	"time"
)

// NamedCount is one row of a grouped count (hero, map or user).
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// WeeklyOverview is the cross-user activity digest. The week is
// [Since, Until); the previous week is [PrevSince, Since). Windows apply to
// when a match was logged, not when it was played.
type WeeklyOverview struct {
	Since     time.Time `json:"since"`
	Until     time.Time `json:"until"`
	PrevSince time.Time `json:"prevSince"`

	MatchesThisWeek  int `json:"matchesThisWeek"`
	MatchesLastWeek  int `json:"matchesLastWeek"`
	ActiveUsersWeek  int `json:"activeUsersThisWeek"`
	TotalUsers       int `json:"totalUsers"`
	TotalMatchesEver int `json:"totalMatches"`

	TopHeroes []NamedCount `json:"topHeroes"` // all time, top 5
	TopMaps   []NamedCount `json:"topMaps"`   // this week, top 3
	TopUsers  []NamedCount `json:"topUsers"`  // all time, top 3
}

const (
	weeklyTopHeroes = 5
	weeklyTopMaps   = 3
	weeklyTopUsers  = 3
)

// WeeklyOverview aggregates activity across every user in the store.
func (db *DB) WeeklyOverview(ctx context.Context, since, prevSince time.Time) (*WeeklyOverview, error) {
	w := &WeeklyOverview{Since: since, Until: time.Now(), PrevSince: prevSince}
	sinceMs, prevMs := since.UnixMilli(), prevSince.UnixMilli()

	counts := []struct {
		dst   *int
		query string
		args  []interface{}
	}{
		{&w.MatchesThisWeek, "SELECT COUNT(1) FROM matches WHERE created_at >= ?", []interface{}{sinceMs}},
		{&w.MatchesLastWeek, "SELECT COUNT(1) FROM matches WHERE created_at >= ? AND created_at < ?", []interface{}{prevMs, sinceMs}},
		{&w.ActiveUsersWeek, "SELECT COUNT(DISTINCT user_id) FROM matches WHERE created_at >= ?", []interface{}{sinceMs}},
		{&w.TotalUsers, "SELECT COUNT(DISTINCT user_id) FROM matches", nil},
		{&w.TotalMatchesEver, "SELECT COUNT(1) FROM matches", nil},
	}
	for _, c := range counts {
		if err := db.conn.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("weekly count: %w", err)
		}
	}

	var err error
	w.TopHeroes, err = countRows(db.conn.QueryContext(ctx, `
		SELECT hero, COUNT(1) AS n FROM match_heroes
		GROUP BY hero ORDER BY n DESC, hero LIMIT ?`, weeklyTopHeroes))
	if err != nil {
		return nil, fmt.Errorf("weekly top heroes: %w", err)
	}
	w.TopMaps, err = countRows(db.conn.QueryContext(ctx, `
		SELECT map, COUNT(1) AS n FROM matches WHERE created_at >= ?
		GROUP BY map ORDER BY n DESC, map LIMIT ?`, sinceMs, weeklyTopMaps))
	if err != nil {
		return nil, fmt.Errorf("weekly top maps: %w", err)
	}
	w.TopUsers, err = countRows(db.conn.QueryContext(ctx, `
		SELECT user_id, COUNT(1) AS n FROM matches
		GROUP BY user_id ORDER BY n DESC, user_id LIMIT ?`, weeklyTopUsers))
	if err != nil {
		return nil, fmt.Errorf("weekly top users: %w", err)
	}
	return w, nil
}
