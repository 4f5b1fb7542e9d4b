package main

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements creates the five tables on startup. The unique constraints
// on favorites and playlist_songs back the storage-level conflict handling;
// the cascades implement owned composition (user owns playlists, playlist
// owns its membership rows).
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(100) NOT NULL UNIQUE,
		password BYTEA NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS songs (
		id TEXT PRIMARY KEY,
		song_url TEXT NOT NULL,
		thumbnail_url TEXT NOT NULL,
		artist TEXT NOT NULL,
		song_name VARCHAR(100) NOT NULL,
		hex_code VARCHAR(6) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS favorites (
		id TEXT PRIMARY KEY,
		song_id TEXT NOT NULL REFERENCES songs(id),
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		UNIQUE (user_id, song_id)
	)`,
	`CREATE TABLE IF NOT EXISTS playlists (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		is_public BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS playlist_songs (
		id TEXT PRIMARY KEY,
		playlist_id TEXT NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
		song_id TEXT NOT NULL REFERENCES songs(id),
		position TEXT NOT NULL,
		added_at TIMESTAMPTZ NOT NULL,
		UNIQUE (playlist_id, song_id)
	)`,
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
