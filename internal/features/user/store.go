package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *store {
	return &store{
		db: db,
	}
}

func (s *store) createOne(ctx context.Context, email, hashedPassword string) (*User, error) {
	query := `INSERT INTO users(email, hashed_password) VALUES($1, $2)
		RETURNING user_id, email, hashed_password, COALESCE(profile_image, ''), COALESCE(reset_code, ''), is_active, is_admin, created_at`

	var user User
	err := s.db.QueryRowContext(
		ctx,
		query,
		email,
		hashedPassword,
	).Scan(
		&user.UserID,
		&user.Email,
		&user.HashedPassword,
		&user.ProfileImage,
		&user.ResetCode,
		&user.IsActive,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to insert new user in user store: %w",
			err,
		)
	}

	return &user, nil
}

func (s *store) findByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT user_id, email, hashed_password, COALESCE(profile_image, ''), COALESCE(reset_code, ''), is_active, is_admin, created_at
		FROM users WHERE email = $1`

	return s.scanOne(s.db.QueryRowContext(ctx, query, email))
}

func (s *store) findByID(ctx context.Context, userID uuid.UUID) (*User, error) {
	query := `SELECT user_id, email, hashed_password, COALESCE(profile_image, ''), COALESCE(reset_code, ''), is_active, is_admin, created_at
		FROM users WHERE user_id = $1`

	return s.scanOne(s.db.QueryRowContext(ctx, query, userID))
}

func (s *store) scanOne(row *sql.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.UserID,
		&user.Email,
		&user.HashedPassword,
		&user.ProfileImage,
		&user.ResetCode,
		&user.IsActive,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf(
			"failed to scan user from user store: %w",
			err,
		)
	}

	return &user, nil
}

func (s *store) updateProfileImage(ctx context.Context, userID uuid.UUID, imagePath string) (bool, error) {
	query := `UPDATE users SET profile_image = $1 WHERE user_id = $2`

	result, err := s.db.ExecContext(ctx, query, imagePath, userID)
	if err != nil {
		return false, fmt.Errorf(
			"failed to update profile image in user store: %w",
			err,
		)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

func (s *store) setResetCode(ctx context.Context, email, code string) (bool, error) {
	query := `UPDATE users SET reset_code = $1 WHERE email = $2`

	result, err := s.db.ExecContext(ctx, query, code, email)
	if err != nil {
		return false, fmt.Errorf(
			"failed to set reset code in user store: %w",
			err,
		)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

// resetPassword swaps the password hash only when the stored reset code
// matches, in one conditional update.
func (s *store) resetPassword(ctx context.Context, email, code, newHashedPassword string) (bool, error) {
	query := `UPDATE users SET hashed_password = $1, reset_code = NULL
		WHERE email = $2 AND reset_code = $3`

	result, err := s.db.ExecContext(ctx, query, newHashedPassword, email, code)
	if err != nil {
		return false, fmt.Errorf(
			"failed to reset password in user store: %w",
			err,
		)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}
