package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/pable/owstats/internal/model"
)

// InsertMatches stores records for userID in one transaction and returns
// their ids in input order. Records without an ID get a fresh nanoid;
// a zero CreatedAt is set to now.
func (db *DB) InsertMatches(ctx context.Context, userID string, records []model.MatchRecord) ([]string, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	matchStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches(id, user_id, map, map_type, result, group_size, played_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer matchStmt.Close()

	heroStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO match_heroes(match_id, position, hero, role, percentage)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer heroStmt.Close()

	now := time.Now()
	ids := make([]string, 0, len(records))
	for _, r := range records {
		id, created, err := prepareRecord(r, now)
		if err != nil {
			return nil, err
		}
		_, err = matchStmt.ExecContext(ctx,
			id, userID, r.Map, string(r.MapType), string(r.Result), r.GroupSize,
			r.PlayedAt.UnixMilli(), created.UnixMilli(),
		)
		if err != nil {
			return nil, fmt.Errorf("insert match %s: %w", id, err)
		}
		for i, h := range r.Heroes {
			if _, err := heroStmt.ExecContext(ctx, id, i, h.Hero, string(h.Role), h.Percentage); err != nil {
				return nil, fmt.Errorf("insert hero %s for match %s: %w", h.Hero, id, err)
			}
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	db.log.Debug().Str("user", userID).Int("count", len(ids)).Msg("matches inserted")
	return ids, nil
}

// prepareRecord fills the generated fields shared by both backends.
func prepareRecord(r model.MatchRecord, now time.Time) (string, time.Time, error) {
	id := r.ID
	if id == "" {
		var err error
		if id, err = gonanoid.New(); err != nil {
			return "", time.Time{}, fmt.Errorf("generate id: %w", err)
		}
	}
	created := r.CreatedAt
	if created.IsZero() {
		created = now
	}
	return id, created, nil
}

// DeleteMatch removes one of userID's matches along with its hero rows.
func (db *DB) DeleteMatch(ctx context.Context, userID, id string) error {
	res, err := db.conn.ExecContext(ctx, "DELETE FROM matches WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMatchNotFound
	}
	return nil
}

// ListMatches returns all of userID's matches, oldest first, with heroes in
// the order they were logged.
func (db *DB) ListMatches(ctx context.Context, userID string) ([]model.MatchRecord, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, map, map_type, result, group_size, played_at, created_at
		FROM matches WHERE user_id = ?
		ORDER BY played_at, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchRecord
	index := make(map[string]int)
	for rows.Next() {
		var (
			m                 model.MatchRecord
			mapType, result   string
			played, createdMs int64
		)
		if err := rows.Scan(&m.ID, &m.Map, &mapType, &result, &m.GroupSize, &played, &createdMs); err != nil {
			return nil, err
		}
		m.MapType = model.MapType(mapType)
		m.Result = model.Result(result)
		m.PlayedAt = time.UnixMilli(played).In(db.loc)
		m.CreatedAt = time.UnixMilli(createdMs).In(db.loc)
		index[m.ID] = len(out)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	heroRows, err := db.conn.QueryContext(ctx, `
		SELECT h.match_id, h.hero, h.role, h.percentage
		FROM match_heroes h JOIN matches m ON m.id = h.match_id
		WHERE m.user_id = ?
		ORDER BY h.match_id, h.position`, userID)
	if err != nil {
		return nil, err
	}
	defer heroRows.Close()
	for heroRows.Next() {
		var (
			matchID, role string
			h             model.HeroAllocation
		)
		if err := heroRows.Scan(&matchID, &h.Hero, &role, &h.Percentage); err != nil {
			return nil, err
		}
		h.Role = model.Role(role)
		if i, ok := index[matchID]; ok {
			out[i].Heroes = append(out[i].Heroes, h)
		}
	}
	return out, heroRows.Err()
}

// QueryRaw runs an arbitrary query and returns column names and every row
// rendered as strings. NULL renders as "NULL".
func (db *DB) QueryRaw(ctx context.Context, query string) ([]string, [][]string, error) {
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		out = append(out, formatRow(vals))
	}
	return cols, out, rows.Err()
}

func formatRow(vals []interface{}) []string {
	row := make([]string, len(vals))
	for i, v := range vals {
		switch x := v.(type) {
		case nil:
			row[i] = "NULL"
		case []byte:
			row[i] = string(x)
		default:
			row[i] = fmt.Sprint(x)
		}
	}
	return row
}

// countRows runs a "name, count" grouping query.
func countRows(rows *sql.Rows, err error) ([]NamedCount, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []NamedCount
	for rows.Next() {
		var c NamedCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
