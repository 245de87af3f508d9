package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Stats returns row counts for each table.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(ctx, `
        SELECT (SELECT COUNT(1) FROM artist),
               (SELECT COUNT(1) FROM album),
               (SELECT COUNT(1) FROM track)`).Scan(&stats.Artists, &stats.Albums, &stats.Tracks)
	if err != nil {
		return Stats{}, fmt.Errorf("library stats: %w", err)
	}
	return stats, nil
}

// CheckHealth returns diagnostic information about the library database.
func (s *Store) CheckHealth(ctx context.Context) (DatabaseHealth, error) {
	health := DatabaseHealth{
		DBPath:          s.path,
		LatestMigration: latestMigration(),
	}

	if s.path == "" {
		return health, errors.New("library database path is unknown")
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return health, nil
		}
		return health, fmt.Errorf("stat library database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("library database path %q is a directory", s.path)
	}
	health.DatabaseExists = true

	if s.db == nil {
		return health, errors.New("library database connection unavailable")
	}

	connCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping library database: %w", err)
	}
	health.DatabaseReadable = true

	if health.SchemaVersion, err = s.schemaVersion(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("read schema version: %w", err)
	}

	for _, table := range []string{"artist", "album", "track"} {
		var count int
		row := s.db.QueryRowContext(connCtx, "SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		if err := row.Scan(&count); err != nil {
			health.Error = err.Error()
			return health, fmt.Errorf("query table info: %w", err)
		}
		if count == 0 {
			health.MissingTables = append(health.MissingTables, table)
		}
	}

	var integrityResult string
	if err := s.db.QueryRowContext(connCtx, "PRAGMA integrity_check").Scan(&integrityResult); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityCheck = strings.EqualFold(integrityResult, "ok")

	return health, nil
}
