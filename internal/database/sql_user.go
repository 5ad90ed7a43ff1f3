package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nokokiii/API-Engineering-Exam/internal/models"
)

type SQLUserStore struct {
	db      *sqlx.DB
	dialect Dialect
}

// NewSQL connects to dsn and applies the schema migrations.
func NewSQL(ctx context.Context, dialect Dialect, dsn string) (*SQLUserStore, error) {
	db, err := sqlx.ConnectContext(ctx, string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("database: connect %s: %w", dialect, err)
	}

	if dialect == SQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := Migrate(dialect, dsn); err != nil {
		db.Close()
		return nil, err
	}
	return NewSQLUserStore(db, dialect), nil
}

func NewSQLUserStore(db *sqlx.DB, dialect Dialect) *SQLUserStore {
	return &SQLUserStore{db: db, dialect: dialect}
}

func (s *SQLUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, s.db.Rebind("SELECT id, name, lastname FROM users WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLUserStore) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.SelectContext(ctx, &users, "SELECT id, name, lastname FROM users ORDER BY id"); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *SQLUserStore) Create(ctx context.Context, name, lastname string) (*models.User, error) {
	for attempt := 0; attempt < createAttempts; attempt++ {
		u, err := s.insertNext(ctx, name, lastname)
		if isDuplicateKey(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return u, nil
	}
	return nil, fmt.Errorf("database: no free id after %d attempts", createAttempts)
}

// insertNext stores the user under max(id)+1. A concurrent create can take
// the same id first, in which case the insert fails with a duplicate key.
func (s *SQLUserStore) insertNext(ctx context.Context, name, lastname string) (*models.User, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	u := models.User{Name: name, Lastname: lastname}
	if err := tx.GetContext(ctx, &u.ID, "SELECT COALESCE(MAX(id), 0) + 1 FROM users"); err != nil {
		return nil, err
	}
	if _, err := tx.NamedExecContext(ctx, `INSERT INTO users (id, name, lastname) VALUES (:id, :name, :lastname)`, u); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLUserStore) Upsert(ctx context.Context, u *models.User) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var n int
	if err := tx.GetContext(ctx, &n, tx.Rebind("SELECT COUNT(*) FROM users WHERE id = ?"), u.ID); err != nil {
		return false, err
	}
	if _, err := tx.NamedExecContext(ctx, s.dialect.upsertQuery(), u); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return n == 0, nil
}

func (s *SQLUserStore) Update(ctx context.Context, id int64, p models.UserPatch) error {
	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Lastname != nil {
		sets = append(sets, "lastname = ?")
		args = append(args, *p.Lastname)
	}
	if len(sets) == 0 {
		return s.mustExist(ctx, id)
	}
	args = append(args, id)

	query := s.db.Rebind("UPDATE users SET " + strings.Join(sets, ", ") + " WHERE id = ?")
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// mysql counts changed rows, not matched ones.
		return s.mustExist(ctx, id)
	}
	return nil
}

func (s *SQLUserStore) mustExist(ctx context.Context, id int64) error {
	ok, err := s.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *SQLUserStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM users WHERE id = ?"), id)
	return err
}

func (s *SQLUserStore) Exists(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, s.db.Rebind("SELECT COUNT(*) FROM users WHERE id = ?"), id); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLUserStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM users")
	return err
}

func (s *SQLUserStore) Close() error {
	return s.db.Close()
}
