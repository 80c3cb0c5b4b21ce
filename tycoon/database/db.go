// Package database opens the embedded sqlite save store and owns its
// schema.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	"github.com/kirari-dev/streamtycoon/tycoon/database/models"
	"github.com/kirari-dev/streamtycoon/tycoon/logger"
)

const defaultConnTimeout = 5 * time.Second

// DB wraps the bun handle over an embedded sqlite file.
type DB struct {
	bunDB *bun.DB
}

// New opens (creating if needed) the sqlite database at path and ensures
// the schema. Use ":memory:" for an ephemeral store.
func New(ctx context.Context, path string) (*DB, error) {
	start := time.Now()

	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite at %s: %w", path, err)
	}
	// the embedded driver serializes writes anyway
	sqldb.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	if err = sqldb.PingContext(pingCtx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	db := &DB{bunDB: bun.NewDB(sqldb, sqlitedialect.New())}
	if err = db.createTables(ctx); err != nil {
		sqldb.Close()
		return nil, err
	}

	logger.LogQuery("open database", time.Since(start), nil)
	return db, nil
}

func (db *DB) createTables(ctx context.Context) error {
	if _, err := db.bunDB.NewCreateTable().
		Model((*models.Save)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create saves table: %w", err)
	}
	return nil
}

// BunDB exposes the underlying handle for repositories.
func (db *DB) BunDB() *bun.DB { return db.bunDB }

func (db *DB) Close() error {
	return db.bunDB.Close()
}
