// Package sqlstore provides sqlx-backed Store implementations for postgres
// and sqlite. Queries are written with ? placeholders and rebound per driver.
package sqlstore

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mindhaven/backend/internal/config"
)

// Open connects to the configured database and bootstraps the schema.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	var dsn string
	switch cfg.Driver {
	case "postgres":
		dsn = cfg.URL
	case "sqlite3":
		dsn = cfg.Path
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}

	db, err := sqlx.Connect(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// migrate applies the schema. Statements are idempotent and portable across
// both supported drivers.
func migrate(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS mood_entries (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			mood_score INTEGER NOT NULL,
			emotions TEXT NOT NULL DEFAULT '[]',
			notes TEXT NOT NULL DEFAULT '',
			activities TEXT NOT NULL DEFAULT '[]',
			sleep_hours REAL,
			energy_level INTEGER,
			stress_level INTEGER,
			social_interactions INTEGER,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mood_entries_user_created
			ON mood_entries (user_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS journal_entries (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			mood TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_entries_user_created
			ON journal_entries (user_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS chat_sessions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_sessions_user_created
			ON chat_sessions (user_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			model TEXT NOT NULL DEFAULT '',
			crisis_detected BOOLEAN NOT NULL DEFAULT FALSE,
			fallback BOOLEAN NOT NULL DEFAULT FALSE,
			input_tokens INTEGER NOT NULL DEFAULT 0,
			output_tokens INTEGER NOT NULL DEFAULT 0,
			total_tokens INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_user_created
			ON chat_messages (user_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_session
			ON chat_messages (session_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS crisis_events (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			session_id TEXT NOT NULL,
			message_content TEXT NOT NULL,
			keywords_detected TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_crisis_events_user_created
			ON crisis_events (user_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS user_achievements (
			user_id TEXT NOT NULL,
			achievement_id TEXT NOT NULL,
			progress INTEGER NOT NULL DEFAULT 0,
			unlocked BOOLEAN NOT NULL DEFAULT FALSE,
			unlocked_at TIMESTAMP,
			PRIMARY KEY (user_id, achievement_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
