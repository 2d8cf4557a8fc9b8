package session

import (
	"context"

	"github.com/sampledev-eng/freshcart-express-backend/internal/auth"
	"github.com/sampledev-eng/freshcart-express-backend/internal/servererrors"
	"golang.org/x/crypto/bcrypt"
)

type storer interface {
	findCredentialsByEmail(ctx context.Context, email string) (*credentials, error)
	blacklistToken(ctx context.Context, jti string) (claimed bool, err error)
}

type tokenManager interface {
	GenerateTokenPair(email string) (*auth.TokenPair, error)
	ValidateRefreshToken(tokenStr string) (isValid bool, claims *auth.TokenClaims, err error)
}

type service struct {
	store        storer
	tokenManager tokenManager
}

func NewService(store storer, tokenManager tokenManager) *service {
	return &service{
		store:        store,
		tokenManager: tokenManager,
	}
}

// login verifies the credentials and issues a token pair. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *service) login(ctx context.Context, email, password string) (*auth.TokenPair, error) {
	creds, err := s.store.findCredentialsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if creds == nil {
		return nil, servererrors.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(creds.HashedPassword),
		[]byte(password),
	)
	if err != nil {
		return nil, servererrors.ErrInvalidCredentials
	}

	return s.tokenManager.GenerateTokenPair(creds.Email)
}

// refresh exchanges a valid, unused refresh token for a fresh pair. The old
// token's jti is claimed into the blacklist before a new pair is issued, so
// every refresh token is single use even under concurrent exchanges:
// {valid-unused} -> consumed -> {blacklisted, terminal}.
func (s *service) refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	isValid, claims, err := s.tokenManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if !isValid {
		return nil, servererrors.ErrInvalidToken
	}

	creds, err := s.store.findCredentialsByEmail(ctx, claims.Email)
	if err != nil {
		return nil, err
	}

	if creds == nil {
		return nil, servererrors.ErrInvalidToken
	}

	claimed, err := s.store.blacklistToken(ctx, claims.JTI)
	if err != nil {
		return nil, err
	}

	if !claimed {
		return nil, servererrors.ErrTokenRevoked
	}

	return s.tokenManager.GenerateTokenPair(creds.Email)
}

// logout permanently revokes the presented refresh token by jti. Logging
// out an already-revoked token is a no-op, not an error.
func (s *service) logout(ctx context.Context, refreshToken string) error {
	isValid, claims, err := s.tokenManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return err
	}

	if !isValid {
		return servererrors.ErrInvalidToken
	}

	_, err = s.store.blacklistToken(ctx, claims.JTI)

	return err
}
