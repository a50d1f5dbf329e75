// Package sqlite implements store.Store on modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/kachalmers/tuiter/server/internal/model"
	"github.com/kachalmers/tuiter/server/internal/store"
)

//go:embed schema.sql
var schema string

type sqliteStore struct{ db *sql.DB }

// New opens the database at path and applies the schema.
func New(ctx context.Context, path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	s, err := NewWithDB(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB applies the schema to an existing connection.
func NewWithDB(ctx context.Context, db *sql.DB) (store.Store, error) {
	for _, stmt := range store.SplitStatements(schema) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("sqlite schema: %w", err)
		}
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Users() store.Users { return &users{db: s.db} }
func (s *sqliteStore) Tuits() store.Tuits { return &tuits{db: s.db} }

func (s *sqliteStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
func (s *sqliteStore) Close() error                   { return s.db.Close() }

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }
func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// mapErr translates driver errors into model sentinels using the extended
// result codes the driver reports.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	var se *msqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", model.ErrConflict, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %v", model.ErrNotFound, err)
		}
	}
	return err
}

// --- Users ---
type users struct{ db *sql.DB }

const userColumns = `id, username, password_hash, email, first_name, last_name, joined_on`

type rowScanner interface{ Scan(dest ...any) error }

func scanUser(row rowScanner) (*model.User, error) {
	var u model.User
	var joined int64
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.FirstName, &u.LastName, &joined); err != nil {
		return nil, mapErr(err)
	}
	u.JoinedOn = fromMillis(joined)
	return &u, nil
}

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	out := *m
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	_, err := u.db.ExecContext(ctx, `INSERT INTO users (`+userColumns+`) VALUES (?,?,?,?,?,?,?)`,
		out.ID, out.Username, out.PasswordHash, out.Email, out.FirstName, out.LastName, toMillis(out.JoinedOn))
	if err != nil {
		return nil, mapErr(err)
	}
	out.JoinedOn = fromMillis(toMillis(out.JoinedOn))
	return &out, nil
}

func (u *users) List(ctx context.Context) ([]*model.User, error) {
	rows, err := u.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := []*model.User{}
	for rows.Next() {
		usr, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, usr)
	}
	return out, rows.Err()
}

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	return scanUser(u.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, userID))
}

func (u *users) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(u.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ? ORDER BY seq LIMIT 1`, username))
}

func (u *users) Delete(ctx context.Context, userID string) (int64, error) {
	res, err := u.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (u *users) DeleteByUsername(ctx context.Context, username string) (int64, error) {
	res, err := u.db.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// --- Tuits ---
type tuits struct{ db *sql.DB }

const tuitColumns = `id, tuit, posted_by, posted_on`

func scanTuit(row rowScanner) (*model.Tuit, error) {
	var t model.Tuit
	var posted int64
	if err := row.Scan(&t.ID, &t.Tuit, &t.AuthorID, &posted); err != nil {
		return nil, mapErr(err)
	}
	t.PostedOn = fromMillis(posted)
	return &t, nil
}

func (t *tuits) Create(ctx context.Context, m *model.Tuit) (*model.Tuit, error) {
	out := *m
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	_, err := t.db.ExecContext(ctx, `INSERT INTO tuits (`+tuitColumns+`) VALUES (?,?,?,?)`,
		out.ID, out.Tuit, out.AuthorID, toMillis(out.PostedOn))
	if err != nil {
		return nil, mapErr(err)
	}
	out.PostedOn = fromMillis(toMillis(out.PostedOn))
	return &out, nil
}

func (t *tuits) List(ctx context.Context) ([]*model.Tuit, error) {
	rows, err := t.db.QueryContext(ctx, `SELECT `+tuitColumns+` FROM tuits ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := []*model.Tuit{}
	for rows.Next() {
		tu, err := scanTuit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tu)
	}
	return out, rows.Err()
}

func (t *tuits) Get(ctx context.Context, tuitID string) (*model.Tuit, error) {
	return scanTuit(t.db.QueryRowContext(ctx, `SELECT `+tuitColumns+` FROM tuits WHERE id = ?`, tuitID))
}

func (t *tuits) Delete(ctx context.Context, tuitID string) (int64, error) {
	res, err := t.db.ExecContext(ctx, `DELETE FROM tuits WHERE id = ?`, tuitID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
