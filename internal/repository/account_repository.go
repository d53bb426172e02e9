package repository

import (
	"context"

	"github.com/servicelink/admin-service/internal/domain"
)

const accountColumns = `id, email, password_hash, first_name, last_name, phone, profile_picture,
               role, is_active, is_verified, created_at, updated_at`

type accountRepository struct {
	db DBTX
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(db DBTX) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO users (email, password_hash, first_name, last_name, phone, role, is_active, is_verified)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		account.Email,
		account.PasswordHash,
		account.FirstName,
		account.LastName,
		account.Phone,
		account.Role,
		account.IsActive,
		account.IsVerified,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	return translate(err)
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *accountRepository) SetActive(ctx context.Context, id string, active bool) (*domain.Account, error) {
	query := `UPDATE users SET is_active=$1, updated_at=NOW() WHERE id=$2 RETURNING ` + accountColumns
	var account domain.Account
	if err := scanAccount(r.db.QueryRow(ctx, query, active, id), &account); err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

func (r *accountRepository) SetPasswordHash(ctx context.Context, id, hash string) error {
	const query = `UPDATE users SET password_hash=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.db.Exec(ctx, query, hash, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *accountRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	if err := scanAccount(r.db.QueryRow(ctx, query, arg), &account); err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner, account *domain.Account) error {
	return row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.FirstName,
		&account.LastName,
		&account.Phone,
		&account.ProfilePicture,
		&account.Role,
		&account.IsActive,
		&account.IsVerified,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
}
