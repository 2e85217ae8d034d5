package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	kind       TEXT NOT NULL DEFAULT 'chore',
	status     TEXT NOT NULL DEFAULT 'todo',
	owner      TEXT NOT NULL DEFAULT 'Family',
	due_date   TEXT,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL,
	points     INTEGER,
	recurring  INTEGER NOT NULL DEFAULT 0,
	frequency  TEXT NOT NULL DEFAULT '',
	notes      TEXT NOT NULL DEFAULT '',
	archived   INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_items_owner ON items(owner);
CREATE INDEX IF NOT EXISTS idx_items_status ON items(status);
CREATE INDEX IF NOT EXISTS idx_items_due ON items(due_date);
`

const itemColumns = `id, title, kind, status, owner, due_date, created_at, updated_at, points, recurring, frequency, notes`

// dueOrder sorts by due date ascending with undated items last, then by
// insertion order.
const dueOrder = ` ORDER BY due_date IS NULL, due_date ASC, created_at ASC, rowid ASC`

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithClock overrides the time source used for timestamps and date windows.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) { s.now = now }
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
func OpenSQLite(path string, opts ...Option) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	// One connection keeps :memory: databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init store schema: %w", err)
	}

	s := &SQLiteStore{db: db, path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	slog.Debug("store: opened", "path", path)
	return s, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database location.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) today() string {
	return s.now().Format(dateLayout)
}

// Create inserts a new chore with status todo.
func (s *SQLiteStore) Create(ctx context.Context, in NewItem) (*Item, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, opError(OpCreate, errors.New("title is required"))
	}
	owner := in.Owner
	if owner == "" {
		owner = DefaultOwner
	}
	now := s.now()
	item := &Item{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Kind:      KindChore,
		Status:    StatusTodo,
		Owner:     owner,
		DueDate:   truncateDate(in.DueDate),
		CreatedAt: now,
		UpdatedAt: now,
		Points:    in.Points,
		Recurring: in.Recurring,
		Frequency: in.Frequency,
		Notes:     in.Notes,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Title, string(item.Kind), string(item.Status), item.Owner,
		formatDate(item.DueDate), now.UnixNano(), now.UnixNano(),
		nullInt(item.Points), boolInt(item.Recurring), string(item.Frequency), item.Notes,
	)
	if err != nil {
		return nil, opError(OpCreate, err)
	}

	slog.Debug("store: created item", "id", item.ID, "title", item.Title, "owner", item.Owner)
	return item, nil
}

// Get returns the item with the given id, or nil when it does not exist.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ? AND archived = 0`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, opError(OpGet, err)
	}
	return item, nil
}

// SetStatus changes an item's status and bumps its updated time.
func (s *SQLiteStore) SetStatus(ctx context.Context, id string, status Status) (*Item, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET status = ?, updated_at = ? WHERE id = ? AND archived = 0`,
		string(status), s.now().UnixNano(), id)
	if err != nil {
		return nil, opError(OpUpdate, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, opError(OpUpdate, fmt.Errorf("%w: %s", ErrNotFound, id))
	}

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, opError(OpUpdate, err)
	}
	if item == nil {
		return nil, opError(OpUpdate, fmt.Errorf("%w: %s", ErrNotFound, id))
	}
	return item, nil
}

// Archive soft-deletes an item; archived items disappear from every query.
func (s *SQLiteStore) Archive(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET archived = 1, updated_at = ? WHERE id = ? AND archived = 0`,
		s.now().UnixNano(), id)
	if err != nil {
		return opError(OpArchive, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return opError(OpArchive, fmt.Errorf("%w: %s", ErrNotFound, id))
	}
	return nil
}

// OpenTasks returns chores that are not done, optionally for one owner.
func (s *SQLiteStore) OpenTasks(ctx context.Context, owner string) ([]*Item, error) {
	q := `SELECT ` + itemColumns + ` FROM items WHERE archived = 0 AND kind = 'chore' AND status != 'done'`
	args := []any{}
	if owner != "" {
		q += ` AND owner = ?`
		args = append(args, owner)
	}
	return s.query(ctx, "open tasks", q+dueOrder, args...)
}

// TasksForOwner returns every chore of an owner, done ones included.
func (s *SQLiteStore) TasksForOwner(ctx context.Context, owner string) ([]*Item, error) {
	q := `SELECT ` + itemColumns + ` FROM items WHERE archived = 0 AND kind = 'chore' AND owner = ?`
	return s.query(ctx, "tasks for "+owner, q+dueOrder, owner)
}

// TasksDueToday returns open chores due on the current local date.
func (s *SQLiteStore) TasksDueToday(ctx context.Context) ([]*Item, error) {
	q := `SELECT ` + itemColumns + ` FROM items
		WHERE archived = 0 AND kind = 'chore' AND status != 'done' AND due_date = ?
		ORDER BY owner ASC, created_at ASC, rowid ASC`
	return s.query(ctx, "tasks for today", q, s.today())
}

// TasksCompletedSince returns done chores last updated at or after since.
func (s *SQLiteStore) TasksCompletedSince(ctx context.Context, since time.Time, owner string) ([]*Item, error) {
	q := `SELECT ` + itemColumns + ` FROM items
		WHERE archived = 0 AND kind = 'chore' AND status = 'done' AND updated_at >= ?`
	args := []any{since.UnixNano()}
	if owner != "" {
		q += ` AND owner = ?`
		args = append(args, owner)
	}
	return s.query(ctx, "completed tasks", q+` ORDER BY updated_at DESC, rowid ASC`, args...)
}

// TasksOverdue returns open chores whose due date is before today.
func (s *SQLiteStore) TasksOverdue(ctx context.Context, owner string) ([]*Item, error) {
	q := `SELECT ` + itemColumns + ` FROM items
		WHERE archived = 0 AND kind = 'chore' AND status != 'done'
		AND due_date IS NOT NULL AND due_date < ?`
	args := []any{s.today()}
	if owner != "" {
		q += ` AND owner = ?`
		args = append(args, owner)
	}
	return s.query(ctx, "overdue tasks", q+dueOrder, args...)
}

func (s *SQLiteStore) query(ctx context.Context, what, q string, args ...any) ([]*Item, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, opError(OpQuery, fmt.Errorf("get %s: %w", what, err))
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, opError(OpQuery, fmt.Errorf("scan %s: %w", what, err))
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, opError(OpQuery, fmt.Errorf("get %s: %w", what, err))
	}
	return items, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(sc scanner) (*Item, error) {
	var (
		item      Item
		kind      string
		status    string
		due       sql.NullString
		created   int64
		updated   int64
		points    sql.NullInt64
		recurring int
		frequency string
	)
	if err := sc.Scan(&item.ID, &item.Title, &kind, &status, &item.Owner, &due,
		&created, &updated, &points, &recurring, &frequency, &item.Notes); err != nil {
		return nil, err
	}

	item.Kind = Kind(kind)
	item.Status = Status(status)
	item.Frequency = Frequency(frequency)
	item.Recurring = recurring != 0
	item.CreatedAt = time.Unix(0, created)
	item.UpdatedAt = time.Unix(0, updated)
	if points.Valid {
		p := int(points.Int64)
		item.Points = &p
	}
	if due.Valid && due.String != "" {
		d, err := time.ParseInLocation(dateLayout, due.String, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse due date %q: %w", due.String, err)
		}
		item.DueDate = &d
	}
	return &item, nil
}

func truncateDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	return &d
}

func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
