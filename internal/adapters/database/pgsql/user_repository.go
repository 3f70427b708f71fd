package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portsrepo "github.com/freshmanexams/fe_backend/internal/core/ports/repositories"
	"github.com/freshmanexams/fe_backend/internal/models"
	"github.com/freshmanexams/fe_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, username, email, google_id, auth_provider, password_hash, is_verified, role,
	session_token, last_login, verification_code, verification_code_expires_at,
	reset_password_token, reset_password_expires_at, created_at, updated_at, photo`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.Email,
		&m.GoogleID,
		&m.AuthProvider,
		&m.PasswordHash,
		&m.IsVerified,
		&m.Role,
		&m.SessionToken,
		&m.LastLogin,
		&m.VerificationCode,
		&m.VerificationCodeExpiresAt,
		&m.ResetPasswordToken,
		&m.ResetPasswordExpiresAt,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.Photo,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainUser(m)
	return &d, nil
}

func (r *PgxUserRepository) findOne(ctx context.Context, what string, query string, args ...any) (*domain.User, error) {
	user, err := scanUser(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by %s: %w", what, err)
	}
	return user, nil
}

func (r *PgxUserRepository) findMany(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *user)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}
	return users, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.Email,
		m.GoogleID,
		m.AuthProvider,
		m.PasswordHash,
		m.IsVerified,
		m.Role,
		m.SessionToken,
		m.LastLogin,
		m.VerificationCode,
		m.VerificationCodeExpiresAt,
		m.ResetPasswordToken,
		m.ResetPasswordExpiresAt,
		m.CreatedAt,
		m.UpdatedAt,
		m.Photo,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user already exists: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	return r.findOne(ctx, "ID", query, userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	return r.findOne(ctx, "username", query, username)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	return r.findOne(ctx, "email", query, email)
}

func (r *PgxUserRepository) FindUserByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	// A username match wins over an email match held by another row.
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE username = $1 OR email = $1
        ORDER BY (username = $1) DESC
        LIMIT 1;
    `
	return r.findOne(ctx, "identifier", query, identifier)
}

func (r *PgxUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1);`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	// Default limit if not specified or invalid
	if limit <= 0 {
		limit = 20
	}
	// Ensure offset is non-negative
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + userColumns + `
        FROM users
        ORDER BY created_at DESC, user_id
        LIMIT $1 OFFSET $2;
    `
	return r.findMany(ctx, query, limit, offset)
}

func (r *PgxUserRepository) FindUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at DESC;`
	return r.findMany(ctx, query, string(role))
}

func (r *PgxUserRepository) CountUsers(ctx context.Context) (int, int, error) {
	var total, verified int
	err := r.Pool.QueryRow(ctx, `
        SELECT COUNT(*), COUNT(*) FILTER (WHERE is_verified)
        FROM users;
    `).Scan(&total, &verified)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, verified, nil
}

func (r *PgxUserRepository) FindUserByVerificationCode(ctx context.Context, code string, now time.Time) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE verification_code = $1 AND verification_code_expires_at > $2
        LIMIT 1;
    `
	return r.findOne(ctx, "verification code", query, code, now)
}

func (r *PgxUserRepository) FindUserByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE reset_password_token = $1 AND reset_password_expires_at > $2
        LIMIT 1;
    `
	return r.findOne(ctx, "reset token", query, token, now)
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        UPDATE users
        SET username = $1, email = $2, google_id = $3, auth_provider = $4, password_hash = $5,
            is_verified = $6, role = $7, session_token = $8, last_login = $9,
            verification_code = $10, verification_code_expires_at = $11,
            reset_password_token = $12, reset_password_expires_at = $13, updated_at = $14,
            photo = $15
        WHERE user_id = $16;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Username,
		m.Email,
		m.GoogleID,
		m.AuthProvider,
		m.PasswordHash,
		m.IsVerified,
		m.Role,
		m.SessionToken,
		m.LastLogin,
		m.VerificationCode,
		m.VerificationCodeExpiresAt,
		m.ResetPasswordToken,
		m.ResetPasswordExpiresAt,
		m.UpdatedAt,
		m.Photo,
		m.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user update conflicts with an existing user: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdateSessionToken(ctx context.Context, userID string, token string, lastLogin time.Time) error {
	query := `
        UPDATE users
        SET session_token = $1, last_login = $2, updated_at = $2
        WHERE user_id = $3;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, token, lastLogin, userID)
	if err != nil {
		return fmt.Errorf("failed to update session token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) ClearSessionToken(ctx context.Context, userID string, token string) error {
	query := `
        UPDATE users
        SET session_token = '', updated_at = NOW()
        WHERE user_id = $1 AND session_token = $2;
    `
	if _, err := r.Pool.Exec(ctx, query, userID, token); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
