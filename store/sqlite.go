package store

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ardnew/modulista/lang"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// SQLite is a [Store] backed by a SQLite database.
type SQLite struct {
	db   *sql.DB
	opts options
}

// OpenSQLite opens (creating if needed) the database at path and migrates
// its schema.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (*SQLite, error) {
	db, err := sql.Open("sqlite", dataSource(path))
	if err != nil {
		return nil, ErrOpen.With(slog.String("path", path)).Wrap(err)
	}

	// SQLite allows a single writer, and each connection to ":memory:" is
	// a separate database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, ErrOpen.With(slog.String("path", path)).Wrap(err)
	}

	if err := migrateSchema(ctx, db); err != nil {
		_ = db.Close()

		return nil, ErrMigrate.With(slog.String("path", path)).Wrap(err)
	}

	s := &SQLite{db: db, opts: makeOptions(opts...)}

	s.opts.logger.DebugContext(ctx, "opened store",
		slog.String("path", path),
		slog.Int("schema", CurrentSchemaVersion),
	)

	return s, nil
}

func dataSource(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")

	if path != MemoryDSN {
		q.Add("_pragma", "journal_mode(WAL)")
	}

	return "file:" + path + "?" + q.Encode()
}

// DB returns the underlying database handle.
func (s *SQLite) DB() *sql.DB { return s.db }

func (s *SQLite) Close() error { return s.db.Close() }

const selectItem = `SELECT id, path, name, type, value, ord FROM items`

func (s *SQLite) Add(ctx context.Context, it lang.Item) (lang.Item, error) {
	value, err := encodeValue(it)
	if err != nil {
		return lang.Item{}, err
	}

	err = s.tx(ctx, func(tx *sql.Tx) error {
		taken, err := namesAt(ctx, tx, it.Path)
		if err != nil {
			return err
		}

		it.ID = uuid.NewString()
		it.Name = uniqueName(it.Name, func(name string) bool { return taken[name] })

		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(ord) + 1, 0) FROM items WHERE path = ?`, it.Path,
		).Scan(&it.Order); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO items (id, path, name, type, value, ord, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			it.ID, it.Path, it.Name, it.Type.String(), value, it.Order,
			time.Now().UnixNano(),
		)

		return err
	})
	if err != nil {
		return lang.Item{}, err
	}

	if it.Type.IsContainer() {
		it.Value = nil
	}

	s.opts.logger.TraceContext(ctx, "add item",
		slog.String("id", it.ID),
		slog.String("path", it.Path),
		slog.String("name", it.Name),
	)

	return it, nil
}

func (s *SQLite) Update(ctx context.Context, it lang.Item) error {
	value, err := encodeValue(it)
	if err != nil {
		return err
	}

	return s.tx(ctx, func(tx *sql.Tx) error {
		var other string

		err := tx.QueryRowContext(ctx,
			`SELECT id FROM items WHERE path = ? AND name = ? AND id != ?`,
			it.Path, it.Name, it.ID,
		).Scan(&other)

		switch {
		case err == nil:
			return ErrDuplicateName.With(
				slog.String("path", it.Path),
				slog.String("name", it.Name),
			)
		case !errors.Is(err, sql.ErrNoRows):
			return err
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE items SET path = ?, name = ?, type = ?, value = ?, ord = ?
			 WHERE id = ?`,
			it.Path, it.Name, it.Type.String(), value, it.Order, it.ID,
		)
		if err != nil {
			return err
		}

		return requireAffected(res, slog.String("id", it.ID))
	})
}

func (s *SQLite) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return ErrQuery.Wrap(err)
	}

	return requireAffected(res, slog.String("id", id))
}

func (s *SQLite) DeleteTree(ctx context.Context, path string) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM items WHERE instr(path, ?) = 1`, path)
	if err != nil {
		return 0, ErrQuery.Wrap(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, ErrQuery.Wrap(err)
	}

	return int(n), nil
}

func (s *SQLite) Get(ctx context.Context, id string) (lang.Item, error) {
	it, err := scanItem(s.db.QueryRowContext(ctx, selectItem+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return it, ErrNotFound.With(slog.String("id", id))
	}

	return it, err
}

func (s *SQLite) Lookup(ctx context.Context, path, name string) (lang.Item, error) {
	it, err := scanItem(s.db.QueryRowContext(ctx,
		selectItem+` WHERE path = ? AND name = ?`, path, name))
	if errors.Is(err, sql.ErrNoRows) {
		return it, ErrNotFound.With(
			slog.String("path", path),
			slog.String("name", name),
		)
	}

	return it, err
}

func (s *SQLite) Children(ctx context.Context, path string) ([]lang.Item, error) {
	return children(ctx, s.db, path)
}

// FetchChildren implements [lang.Fetcher].
func (s *SQLite) FetchChildren(ctx context.Context, path string) ([]lang.Item, error) {
	items, err := s.Children(ctx, path)

	s.opts.logger.TraceContext(ctx, "fetch children",
		slog.String("path", path),
		slog.Int("count", len(items)),
	)

	return items, err
}

func (s *SQLite) Reorder(ctx context.Context, path string, ids []string) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		items, err := children(ctx, tx, path)
		if err != nil {
			return err
		}

		known := make(map[string]bool, len(items))
		for _, it := range items {
			known[it.ID] = true
		}

		for _, id := range ids {
			if !known[id] {
				return ErrNotFound.With(
					slog.String("path", path),
					slog.String("id", id),
				)
			}
		}

		for i, it := range reordered(items, ids, func(it lang.Item) string {
			return it.ID
		}) {
			if it.Order == i {
				continue
			}

			if _, err := tx.ExecContext(ctx,
				`UPDATE items SET ord = ? WHERE id = ?`, i, it.ID,
			); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *SQLite) tx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ErrQuery.Wrap(err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()

		var ee *lang.Error
		if errors.As(err, &ee) {
			return err
		}

		return ErrQuery.Wrap(err)
	}

	if err := tx.Commit(); err != nil {
		return ErrQuery.Wrap(err)
	}

	return nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func children(ctx context.Context, q queryer, path string) ([]lang.Item, error) {
	rows, err := q.QueryContext(ctx,
		selectItem+` WHERE path = ? ORDER BY ord, created_at, rowid`, path)
	if err != nil {
		return nil, ErrQuery.Wrap(err)
	}
	defer rows.Close()

	var items []lang.Item

	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}

		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, ErrQuery.Wrap(err)
	}

	return items, nil
}

func namesAt(ctx context.Context, q queryer, path string) (map[string]bool, error) {
	rows, err := q.QueryContext(ctx, `SELECT name FROM items WHERE path = ?`, path)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]bool)

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}

		names[name] = true
	}

	return names, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (lang.Item, error) {
	var (
		it         lang.Item
		typ, value string
	)

	if err := row.Scan(&it.ID, &it.Path, &it.Name, &typ, &value, &it.Order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return it, err
		}

		return it, ErrQuery.Wrap(err)
	}

	it.Type = lang.ParseItemType(typ)

	v, err := decodeValue(it.Type, value)
	if err != nil {
		return it, err
	}

	it.Value = v

	return it, nil
}

func requireAffected(res sql.Result, attr slog.Attr) error {
	n, err := res.RowsAffected()
	if err != nil {
		return ErrQuery.Wrap(err)
	}

	if n == 0 {
		return ErrNotFound.With(attr)
	}

	return nil
}
