package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// credentials is the slice of a user the session feature needs to
// authenticate and mint tokens.
type credentials struct {
	UserID         uuid.UUID
	Email          string
	HashedPassword string
	IsActive       bool
}

type store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *store {
	return &store{
		db: db,
	}
}

func (s *store) findCredentialsByEmail(ctx context.Context, email string) (*credentials, error) {
	query := `SELECT user_id, email, hashed_password, is_active FROM users WHERE email = $1`

	var creds credentials
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&creds.UserID,
		&creds.Email,
		&creds.HashedPassword,
		&creds.IsActive,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf(
			"failed to scan credentials from session store: %w",
			err,
		)
	}

	return &creds, nil
}

// blacklistToken inserts the jti and reports whether this call claimed it.
// ON CONFLICT DO NOTHING affects zero rows for an already-blacklisted jti,
// so two concurrent refreshes of the same token can never both claim it.
func (s *store) blacklistToken(ctx context.Context, jti string) (bool, error) {
	query := `INSERT INTO blacklisted_tokens(jti) VALUES($1) ON CONFLICT (jti) DO NOTHING`

	result, err := s.db.ExecContext(ctx, query, jti)
	if err != nil {
		return false, fmt.Errorf(
			"failed to blacklist token in session store: %w",
			err,
		)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}
