package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are written in the
// subset of SQL shared by SQLite and PostgreSQL and are safe to re-run;
// d selects the dialect-specific upgrade steps.
func Migrate(db *sql.DB, d Dialect) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE statements re-run on every start; tolerate
			// the column already being there.
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateXPTransactionsKey(db, d); err != nil {
		return fmt.Errorf("re-keying xp_transactions: %w", err)
	}
	return nil
}

func isDuplicateColumn(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate column name") ||
		(strings.Contains(msg, "column") && strings.Contains(msg, "already exists"))
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		username            TEXT PRIMARY KEY,
		total_xp            INTEGER NOT NULL DEFAULT 0,
		vacation_mode       INTEGER NOT NULL DEFAULT 0,
		last_processed_date TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		username       TEXT NOT NULL REFERENCES users(username) ON DELETE CASCADE,
		id             TEXT NOT NULL,
		position       INTEGER NOT NULL DEFAULT 0,
		title          TEXT NOT NULL DEFAULT '',
		priority       TEXT NOT NULL DEFAULT '',
		difficulty     TEXT NOT NULL DEFAULT '',
		duration       TEXT NOT NULL DEFAULT '',
		is_complete    INTEGER NOT NULL DEFAULT 0,
		is_habit       INTEGER NOT NULL DEFAULT 0,
		completed_at   TEXT,
		streak_current INTEGER NOT NULL DEFAULT 0,
		streak_best    INTEGER NOT NULL DEFAULT 0,
		creation_date  TEXT,
		due_date       TEXT,
		start_date     TEXT,
		dependencies   TEXT NOT NULL DEFAULT '[]',
		tags           TEXT NOT NULL DEFAULT '[]',
		project        TEXT,
		PRIMARY KEY (username, id)
	)`,

	`CREATE TABLE IF NOT EXISTS xp_transactions (
		username    TEXT NOT NULL REFERENCES users(username) ON DELETE CASCADE,
		id          TEXT NOT NULL,
		position    INTEGER NOT NULL DEFAULT 0,
		amount      INTEGER NOT NULL,
		source      TEXT NOT NULL,
		timestamp   TEXT NOT NULL,
		task_id     TEXT,
		description TEXT NOT NULL DEFAULT '',
		game_date   TEXT,
		PRIMARY KEY (username, id)
	)`,

	`CREATE TABLE IF NOT EXISTS badges (
		username    TEXT NOT NULL REFERENCES users(username) ON DELETE CASCADE,
		id          TEXT NOT NULL,
		position    INTEGER NOT NULL DEFAULT 0,
		name        TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		glyph       TEXT NOT NULL DEFAULT '',
		earned_date TEXT,
		PRIMARY KEY (username, id)
	)`,

	// Aggregated daily rows track how many movements they fold in.
	`ALTER TABLE xp_transactions ADD COLUMN entry_count INTEGER NOT NULL DEFAULT 1`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(username, position)`,
	xpIndexes[0],
	xpIndexes[1],
	`CREATE INDEX IF NOT EXISTS idx_badges_user ON badges(username, position)`,
}

var xpIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_xp_user ON xp_transactions(username, position)`,
	`CREATE INDEX IF NOT EXISTS idx_xp_game_date ON xp_transactions(username, game_date)`,
}

// migrateXPTransactionsKey moves ledgers created with a global id key to
// the per-user (username, id) key, so two users may hold rows with the
// same id.
func migrateXPTransactionsKey(db *sql.DB, d Dialect) error {
	if d == Postgres {
		return rekeyPostgres(db)
	}
	return rekeySQLite(db)
}

func rekeyPostgres(db *sql.DB) error {
	var cols int
	err := db.QueryRow(`SELECT COUNT(*) FROM information_schema.key_column_usage
		WHERE table_name = 'xp_transactions' AND constraint_name = 'xp_transactions_pkey'`).Scan(&cols)
	if err != nil {
		return fmt.Errorf("inspecting primary key: %w", err)
	}
	if cols != 1 {
		return nil
	}
	_, err = db.Exec(`ALTER TABLE xp_transactions
		DROP CONSTRAINT xp_transactions_pkey,
		ADD PRIMARY KEY (username, id)`)
	return err
}

func rekeySQLite(db *sql.DB) error {
	ctx := context.Background()

	var createSQL string
	if err := db.QueryRowContext(ctx, `SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'xp_transactions'`).Scan(&createSQL); err != nil {
		return fmt.Errorf("loading xp_transactions schema: %w", err)
	}
	if strings.Contains(strings.Join(strings.Fields(strings.ToLower(createSQL)), " "), "primary key (username, id)") {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	steps := []struct {
		name string
		stmt string
	}{
		{"dropping stale xp_transactions_new", `DROP TABLE IF EXISTS xp_transactions_new`},
		{"creating xp_transactions_new", `CREATE TABLE xp_transactions_new (
			username    TEXT NOT NULL REFERENCES users(username) ON DELETE CASCADE,
			id          TEXT NOT NULL,
			position    INTEGER NOT NULL DEFAULT 0,
			amount      INTEGER NOT NULL,
			source      TEXT NOT NULL,
			timestamp   TEXT NOT NULL,
			task_id     TEXT,
			description TEXT NOT NULL DEFAULT '',
			game_date   TEXT,
			entry_count INTEGER NOT NULL DEFAULT 1,
			PRIMARY KEY (username, id)
		)`},
		{"copying xp_transactions", `INSERT INTO xp_transactions_new (
			username, id, position, amount, source, timestamp, task_id, description, game_date, entry_count
		) SELECT
			username, id, position, amount, source, timestamp, task_id, description, game_date, entry_count
		FROM xp_transactions`},
		{"dropping old xp_transactions", `DROP TABLE xp_transactions`},
		{"renaming xp_transactions_new", `ALTER TABLE xp_transactions_new RENAME TO xp_transactions`},
	}
	for _, step := range steps {
		if _, err := tx.ExecContext(ctx, step.stmt); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}
	for _, stmt := range xpIndexes {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("recreating xp indexes: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration: %w", err)
	}
	committed = true
	return nil
}
