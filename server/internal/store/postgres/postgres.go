// Package postgres implements store.Store on PostgreSQL through the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kachalmers/tuiter/server/internal/model"
	"github.com/kachalmers/tuiter/server/internal/store"
)

//go:embed schema.sql
var schema string

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB applies the schema and returns a store over db.
func NewWithDB(ctx context.Context, db *sql.DB) (store.Store, error) {
	for _, stmt := range store.SplitStatements(schema) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("postgres schema: %w", err)
		}
	}
	return &pgStore{db: db}, nil
}

type pgStore struct{ db *sql.DB }

func (s *pgStore) Users() store.Users { return &users{db: s.db} }
func (s *pgStore) Tuits() store.Tuits { return &tuits{db: s.db} }

func (s *pgStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
func (s *pgStore) Close() error                   { return s.db.Close() }

// mapErr translates driver errors into model sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", model.ErrConflict, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", model.ErrNotFound, pgErr.ConstraintName)
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
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.FirstName, &u.LastName, &u.JoinedOn); err != nil {
		return nil, mapErr(err)
	}
	u.JoinedOn = u.JoinedOn.UTC()
	return &u, nil
}

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	out := *m
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	if out.JoinedOn.IsZero() {
		out.JoinedOn = time.Now().UTC()
	}
	row := u.db.QueryRowContext(ctx, `
        INSERT INTO users (`+userColumns+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING joined_on
    `, out.ID, out.Username, out.PasswordHash, out.Email, out.FirstName, out.LastName, out.JoinedOn)
	if err := row.Scan(&out.JoinedOn); err != nil {
		return nil, mapErr(err)
	}
	out.JoinedOn = out.JoinedOn.UTC()
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
	return scanUser(u.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, userID))
}

func (u *users) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(u.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1 ORDER BY seq LIMIT 1`, username))
}

func (u *users) Delete(ctx context.Context, userID string) (int64, error) {
	res, err := u.db.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (u *users) DeleteByUsername(ctx context.Context, username string) (int64, error) {
	res, err := u.db.ExecContext(ctx, `DELETE FROM users WHERE username=$1`, username)
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
	if err := row.Scan(&t.ID, &t.Tuit, &t.AuthorID, &t.PostedOn); err != nil {
		return nil, mapErr(err)
	}
	t.PostedOn = t.PostedOn.UTC()
	return &t, nil
}

func (t *tuits) Create(ctx context.Context, m *model.Tuit) (*model.Tuit, error) {
	out := *m
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	if out.PostedOn.IsZero() {
		out.PostedOn = time.Now().UTC()
	}
	row := t.db.QueryRowContext(ctx, `
        INSERT INTO tuits (`+tuitColumns+`)
        VALUES ($1,$2,$3,$4)
        RETURNING posted_on
    `, out.ID, out.Tuit, out.AuthorID, out.PostedOn)
	if err := row.Scan(&out.PostedOn); err != nil {
		return nil, mapErr(err)
	}
	out.PostedOn = out.PostedOn.UTC()
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
	return scanTuit(t.db.QueryRowContext(ctx, `SELECT `+tuitColumns+` FROM tuits WHERE id=$1`, tuitID))
}

func (t *tuits) Delete(ctx context.Context, tuitID string) (int64, error) {
	res, err := t.db.ExecContext(ctx, `DELETE FROM tuits WHERE id=$1`, tuitID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
