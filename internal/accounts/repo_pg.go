package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	insertAccountSQL = `INSERT INTO accounts (id, username, password_hash, account_type, token, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	selectByIDSQL = `SELECT id, username, password_hash, account_type, token, created_at
FROM accounts WHERE id = $1`

	selectByUsernameSQL = `SELECT id, username, password_hash, account_type, token, created_at
FROM accounts WHERE lower(username) = lower($1)`

	selectByTokenSQL = `SELECT id, username, password_hash, account_type, token, created_at
FROM accounts WHERE token = $1`

	deleteAccountSQL = `DELETE FROM accounts WHERE id = $1`

	listAccountsSQL = `SELECT username, account_type FROM accounts ORDER BY username`
)

// PGRepo is a Postgres-backed implementation of Repo.
type PGRepo struct {
	DB *sql.DB
}

// NewPGRepo constructs a PGRepo over the given database handle.
func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{DB: db}
}

func (r *PGRepo) Create(ctx context.Context, acct Account) error {
	_, err := r.DB.ExecContext(ctx, insertAccountSQL,
		acct.ID, acct.Username, acct.PasswordHash, acct.Type, acct.Token, acct.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id uuid.UUID) (Account, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx, selectByIDSQL, id))
}

func (r *PGRepo) GetByUsername(ctx context.Context, username string) (Account, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx, selectByUsernameSQL, username))
}

func (r *PGRepo) GetByToken(ctx context.Context, token string) (Account, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx, selectByTokenSQL, token))
}

func (r *PGRepo) scanOne(row *sql.Row) (Account, error) {
	var acct Account
	err := row.Scan(&acct.ID, &acct.Username, &acct.PasswordHash, &acct.Type, &acct.Token, &acct.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, fmt.Errorf("scan account: %w", err)
	}
	return acct, nil
}

func (r *PGRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.DB.ExecContext(ctx, deleteAccountSQL, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) List(ctx context.Context) ([]Summary, error) {
	rows, err := r.DB.QueryContext(ctx, listAccountsSQL)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.Username, &s.Type); err != nil {
			return nil, fmt.Errorf("scan account summary: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return out, nil
}

var _ Repo = (*PGRepo)(nil)
