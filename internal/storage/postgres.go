package storage

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/pable/owstats/internal/model"
)

//go:embed postgres_schema.sql
var postgresSchema string

// PGDB is the Postgres-backed Store, for a match log shared by several users.
type PGDB struct {
	pool *pgxpool.Pool
	loc  *time.Location
	log  zerolog.Logger
}

// OpenPostgres connects to dsn and creates the schema if it is missing.
func OpenPostgres(ctx context.Context, dsn string, loc *time.Location, log zerolog.Logger) (*PGDB, error) {
	if loc == nil {
		loc = time.UTC
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	log.Debug().Msg("postgres store ready")
	return &PGDB{pool: pool, loc: loc, log: log}, nil
}

// Close releases the pool.
func (db *PGDB) Close() error {
	db.pool.Close()
	return nil
}

// InsertMatches queues every row in a single batch inside one transaction.
func (db *PGDB) InsertMatches(ctx context.Context, userID string, records []model.MatchRecord) ([]string, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	batch := &pgx.Batch{}
	ids := make([]string, 0, len(records))
	for _, r := range records {
		id, created, err := prepareRecord(r, now)
		if err != nil {
			return nil, err
		}
		batch.Queue(`INSERT INTO matches(id, user_id, map, map_type, result, group_size, played_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id, userID, r.Map, string(r.MapType), string(r.Result), r.GroupSize,
			r.PlayedAt.UnixMilli(), created.UnixMilli())
		for i, h := range r.Heroes {
			batch.Queue(`INSERT INTO match_heroes(match_id, position, hero, role, percentage)
				VALUES ($1, $2, $3, $4, $5)`, id, i, h.Hero, string(h.Role), h.Percentage)
		}
		ids = append(ids, id)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, fmt.Errorf("insert matches: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	db.log.Debug().Str("user", userID).Int("count", len(ids)).Msg("matches inserted")
	return ids, nil
}

// DeleteMatch removes one of userID's matches; hero rows cascade.
func (db *PGDB) DeleteMatch(ctx context.Context, userID, id string) error {
	tag, err := db.pool.Exec(ctx, "DELETE FROM matches WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMatchNotFound
	}
	return nil
}

// ListMatches returns all of userID's matches, oldest first.
func (db *PGDB) ListMatches(ctx context.Context, userID string) ([]model.MatchRecord, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT m.id, m.map, m.map_type, m.result, m.group_size, m.played_at, m.created_at,
		       h.hero, h.role, h.percentage
		FROM matches m LEFT JOIN match_heroes h ON h.match_id = m.id
		WHERE m.user_id = $1
		ORDER BY m.played_at, m.id, h.position`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchRecord
	for rows.Next() {
		var (
			id, mapName, mapType, result string
			groupSize                    int
			played, created              int64
			hero, role                   *string
			pct                          *int
		)
		if err := rows.Scan(&id, &mapName, &mapType, &result, &groupSize, &played, &created, &hero, &role, &pct); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].ID != id {
			out = append(out, model.MatchRecord{
				ID:        id,
				Map:       mapName,
				MapType:   model.MapType(mapType),
				Result:    model.Result(result),
				GroupSize: groupSize,
				PlayedAt:  time.UnixMilli(played).In(db.loc),
				CreatedAt: time.UnixMilli(created).In(db.loc),
			})
		}
		if hero != nil {
			last := &out[len(out)-1]
			last.Heroes = append(last.Heroes, model.HeroAllocation{Hero: *hero, Role: model.Role(*role), Percentage: *pct})
		}
	}
	return out, rows.Err()
}

// QueryRaw runs an arbitrary query and stringifies every value.
func (db *PGDB) QueryRaw(ctx context.Context, query string) ([]string, [][]string, error) {
	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Name
	}
	var out [][]string
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, nil, err
		}
		out = append(out, formatRow(vals))
	}
	return cols, out, rows.Err()
}

// WeeklyOverview mirrors DB.WeeklyOverview.
func (db *PGDB) WeeklyOverview(ctx context.Context, since, prevSince time.Time) (*WeeklyOverview, error) {
	w := &WeeklyOverview{Since: since, Until: time.Now(), PrevSince: prevSince}
	sinceMs, prevMs := since.UnixMilli(), prevSince.UnixMilli()

	err := db.pool.QueryRow(ctx, `
		SELECT
		  COUNT(*) FILTER (WHERE created_at >= $1),
		  COUNT(*) FILTER (WHERE created_at >= $2 AND created_at < $1),
		  COUNT(DISTINCT user_id) FILTER (WHERE created_at >= $1),
		  COUNT(DISTINCT user_id),
		  COUNT(*)
		FROM matches`, sinceMs, prevMs).Scan(
		&w.MatchesThisWeek, &w.MatchesLastWeek, &w.ActiveUsersWeek, &w.TotalUsers, &w.TotalMatchesEver)
	if err != nil {
		return nil, fmt.Errorf("weekly counts: %w", err)
	}

	if w.TopHeroes, err = db.counts(ctx, `
		SELECT hero, COUNT(*) AS n FROM match_heroes
		GROUP BY hero ORDER BY n DESC, hero LIMIT $1`, weeklyTopHeroes); err != nil {
		return nil, fmt.Errorf("weekly top heroes: %w", err)
	}
	if w.TopMaps, err = db.counts(ctx, `
		SELECT map, COUNT(*) AS n FROM matches WHERE created_at >= $1
		GROUP BY map ORDER BY n DESC, map LIMIT $2`, sinceMs, weeklyTopMaps); err != nil {
		return nil, fmt.Errorf("weekly top maps: %w", err)
	}
	if w.TopUsers, err = db.counts(ctx, `
		SELECT user_id, COUNT(*) AS n FROM matches
		GROUP BY user_id ORDER BY n DESC, user_id LIMIT $1`, weeklyTopUsers); err != nil {
		return nil, fmt.Errorf("weekly top users: %w", err)
	}
	return w, nil
}

func (db *PGDB) counts(ctx context.Context, query string, args ...interface{}) ([]NamedCount, error) {
	rows, err := db.pool.Query(ctx, query, args...)
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
