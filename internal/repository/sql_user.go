package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/xpledger/internal/db"
	"github.com/alexanderramin/xpledger/internal/domain"
)

const timeLayout = time.RFC3339Nano

const taskColumns = `id, title, priority, difficulty, duration, is_complete, is_habit,
		completed_at, streak_current, streak_best, creation_date, due_date, start_date,
		dependencies, tags, project`

const xpColumns = `id, amount, source, timestamp, task_id, description, game_date, entry_count`

// SQLUserStore implements UserStore on SQLite or PostgreSQL. Queries are
// written with '?' placeholders and rebound per dialect through db.Bind.
type SQLUserStore struct {
	db      db.DBTX
	uow     db.UnitOfWork
	dialect db.Dialect
}

// NewSQLUserStore creates a store whose writes run in transactions on conn.
func NewSQLUserStore(conn *sql.DB, dialect db.Dialect) *SQLUserStore {
	return &SQLUserStore{db: db.Bind(conn, dialect), uow: db.NewSQLUnitOfWork(conn), dialect: dialect}
}

// NewSQLUserStoreWithUoW lets callers supply the transaction boundary.
func NewSQLUserStoreWithUoW(conn db.DBTX, uow db.UnitOfWork, dialect db.Dialect) *SQLUserStore {
	return &SQLUserStore{db: db.Bind(conn, dialect), uow: uow, dialect: dialect}
}

func (s *SQLUserStore) ListUsers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT username FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning username: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return names, nil
}

func (s *SQLUserStore) LoadUser(ctx context.Context, username string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT username, total_xp, vacation_mode, last_processed_date
		FROM users WHERE username = ?`, username)

	var (
		u        domain.User
		vacation int
		lastDay  sql.NullString
	)
	if err := row.Scan(&u.Username, &u.TotalXP, &vacation, &lastDay); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.VacationMode = intToBool(vacation)
	u.LastProcessedDate = parseNullableTime(lastDay, timeLayout)

	var err error
	if u.Tasks, err = s.loadTasks(ctx, username); err != nil {
		return nil, err
	}
	if u.XPTransactions, err = s.loadTransactions(ctx, username); err != nil {
		return nil, err
	}
	if u.Badges, err = s.loadBadges(ctx, username); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLUserStore) loadTasks(ctx context.Context, username string) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+taskColumns+`
		FROM tasks WHERE username = ? ORDER BY position`, username)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func scanTask(rows *sql.Rows) (*domain.Task, error) {
	var (
		t                         domain.Task
		priority, difficulty, dur string
		complete, habit           int
		completedAt, created      sql.NullString
		due, start, project       sql.NullString
		deps, tags                string
	)
	err := rows.Scan(&t.ID, &t.Title, &priority, &difficulty, &dur, &complete, &habit,
		&completedAt, &t.StreakCurrent, &t.StreakBest, &created, &due, &start,
		&deps, &tags, &project)
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	t.Priority = domain.Priority(priority)
	t.Difficulty = domain.Difficulty(difficulty)
	t.Duration = domain.Duration(dur)
	t.IsComplete = intToBool(complete)
	t.IsHabit = intToBool(habit)
	t.CompletedAt = parseNullableTime(completedAt, timeLayout)
	t.CreationDate = parseNullableTime(created, timeLayout)
	t.DueDate = parseNullableTime(due, timeLayout)
	t.StartDate = parseNullableTime(start, timeLayout)
	t.Project = parseNullableString(project)

	if t.Dependencies, err = decodeList(deps); err != nil {
		return nil, fmt.Errorf("decoding dependencies of task %s: %w", t.ID, err)
	}
	if t.Tags, err = decodeList(tags); err != nil {
		return nil, fmt.Errorf("decoding tags of task %s: %w", t.ID, err)
	}
	return &t, nil
}

func (s *SQLUserStore) loadTransactions(ctx context.Context, username string) ([]*domain.XPTransaction, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+xpColumns+`
		FROM xp_transactions WHERE username = ? ORDER BY position`, username)
	if err != nil {
		return nil, fmt.Errorf("querying xp transactions: %w", err)
	}
	defer rows.Close()

	var txs []*domain.XPTransaction
	for rows.Next() {
		var (
			tx             domain.XPTransaction
			source, ts     string
			taskID, gameDt sql.NullString
		)
		if err := rows.Scan(&tx.ID, &tx.Amount, &source, &ts, &taskID, &tx.Description, &gameDt, &tx.EntryCount); err != nil {
			return nil, fmt.Errorf("scanning xp transaction: %w", err)
		}
		tx.Source = domain.XPSource(source)
		if tx.Timestamp, err = time.Parse(timeLayout, ts); err != nil {
			return nil, fmt.Errorf("parsing timestamp of %s: %w", tx.ID, err)
		}
		tx.TaskID = parseNullableString(taskID)
		tx.GameDate = parseNullableTime(gameDt, timeLayout)
		txs = append(txs, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating xp transactions: %w", err)
	}
	return txs, nil
}

func (s *SQLUserStore) loadBadges(ctx context.Context, username string) ([]*domain.Badge, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description, glyph, earned_date
		FROM badges WHERE username = ? ORDER BY position`, username)
	if err != nil {
		return nil, fmt.Errorf("querying badges: %w", err)
	}
	defer rows.Close()

	var out []*domain.Badge
	for rows.Next() {
		var (
			b      domain.Badge
			earned sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Glyph, &earned); err != nil {
			return nil, fmt.Errorf("scanning badge: %w", err)
		}
		b.EarnedDate = parseNullableTime(earned, timeLayout)
		out = append(out, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating badges: %w", err)
	}
	return out, nil
}

// SaveUser upserts the user row and rewrites its tasks, ledger and badges
// in a single transaction.
func (s *SQLUserStore) SaveUser(ctx context.Context, u *domain.User) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		tx = db.Bind(tx, s.dialect)
		_, err := tx.ExecContext(ctx, `INSERT INTO users (username, total_xp, vacation_mode, last_processed_date)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (username) DO UPDATE SET
				total_xp = excluded.total_xp,
				vacation_mode = excluded.vacation_mode,
				last_processed_date = excluded.last_processed_date`,
			u.Username, u.TotalXP, boolToInt(u.VacationMode), nullableTimeToString(u.LastProcessedDate, timeLayout))
		if err != nil {
			return fmt.Errorf("upserting user %s: %w", u.Username, err)
		}

		for _, table := range []string{"tasks", "xp_transactions", "badges"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE username = ?`, u.Username); err != nil {
				return fmt.Errorf("clearing %s for %s: %w", table, u.Username, err)
			}
		}

		for i, t := range u.Tasks {
			if err := s.insertTask(ctx, tx, u.Username, i, t); err != nil {
				return err
			}
		}
		for i, x := range u.XPTransactions {
			_, err := tx.ExecContext(ctx, `INSERT INTO xp_transactions (username, position, `+xpColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				u.Username, i, x.ID, x.Amount, string(x.Source), x.Timestamp.UTC().Format(timeLayout),
				nullableString(x.TaskID), x.Description, nullableTimeToString(x.GameDate, timeLayout), x.EntryCount)
			if err != nil {
				return fmt.Errorf("inserting xp transaction %s: %w", x.ID, err)
			}
		}
		for i, b := range u.Badges {
			_, err := tx.ExecContext(ctx, `INSERT INTO badges (username, position, id, name, description, glyph, earned_date)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				u.Username, i, b.ID, b.Name, b.Description, b.Glyph, nullableTimeToString(b.EarnedDate, timeLayout))
			if err != nil {
				return fmt.Errorf("inserting badge %s: %w", b.ID, err)
			}
		}
		return nil
	})
}

func (s *SQLUserStore) insertTask(ctx context.Context, tx db.DBTX, username string, pos int, t *domain.Task) error {
	deps, err := encodeList(t.Dependencies)
	if err != nil {
		return fmt.Errorf("encoding dependencies of task %s: %w", t.ID, err)
	}
	tags, err := encodeList(t.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags of task %s: %w", t.ID, err)
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO tasks (username, position, `+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		username, pos, t.ID, t.Title, string(t.Priority), string(t.Difficulty), string(t.Duration),
		boolToInt(t.IsComplete), boolToInt(t.IsHabit), nullableTimeToString(t.CompletedAt, timeLayout),
		t.StreakCurrent, t.StreakBest,
		nullableTimeToString(t.CreationDate, timeLayout),
		nullableTimeToString(t.DueDate, timeLayout),
		nullableTimeToString(t.StartDate, timeLayout),
		deps, tags, nullableString(t.Project))
	if err != nil {
		return fmt.Errorf("inserting task %s: %w", t.ID, err)
	}
	return nil
}

var _ UserStore = (*SQLUserStore)(nil)
