package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the subset of JWT claims this system cares about: the
// subject email, the unique token id used for revocation tracking, and the
// expiry.
type TokenClaims struct {
	Email     string
	JTI       string
	ExpiresAt time.Time
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// TokenService signs and verifies access and refresh tokens. Both are HS256
// only; a presented token signed with any other algorithm is rejected.
type TokenService struct {
	accessTokenSecret  []byte
	refreshTokenSecret []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

func NewTokenService(
	accessTokenSecret string,
	refreshTokenSecret string,
	accessTokenExpiryInMins int,
	refreshTokenExpiryInMins int,
) *TokenService {
	return &TokenService{
		accessTokenSecret:  []byte(accessTokenSecret),
		refreshTokenSecret: []byte(refreshTokenSecret),
		accessTokenExpiry:  time.Duration(accessTokenExpiryInMins) * time.Minute,
		refreshTokenExpiry: time.Duration(refreshTokenExpiryInMins) * time.Minute,
	}
}

// GenerateTokenPair issues a fresh access and refresh token for email. Each
// token carries its own jti.
func (s *TokenService) GenerateTokenPair(email string) (*TokenPair, error) {
	accessToken, err := generateToken(
		email,
		s.accessTokenSecret,
		s.accessTokenExpiry,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := generateToken(
		email,
		s.refreshTokenSecret,
		s.refreshTokenExpiry,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

func (s *TokenService) ValidateAccessToken(tokenStr string) (isValid bool, claims *TokenClaims, err error) {
	return validateToken(tokenStr, s.accessTokenSecret)
}

func (s *TokenService) ValidateRefreshToken(tokenStr string) (isValid bool, claims *TokenClaims, err error) {
	return validateToken(tokenStr, s.refreshTokenSecret)
}

func generateToken(email string, secret []byte, expiry time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.MapClaims{
			"sub": email,
			"jti": uuid.New().String(),
			"iat": jwt.NewNumericDate(now),
			"exp": jwt.NewNumericDate(now.Add(expiry)),
		},
	)

	return token.SignedString(secret)
}

func validateToken(tokenStr string, secret []byte) (bool, *TokenClaims, error) {
	token, err := jwt.Parse(
		tokenStr,
		func(t *jwt.Token) (any, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		// invalid signature, wrong algorithm, malformed or expired; all of
		// them mean "not valid", none of them is a server fault.
		return false, nil, nil
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return false, nil, nil
	}

	email, err := mapClaims.GetSubject()
	if err != nil || email == "" {
		return false, nil, nil
	}

	jti, ok := mapClaims["jti"].(string)
	if !ok || jti == "" {
		return false, nil, nil
	}

	expiresAt, err := mapClaims.GetExpirationTime()
	if err != nil {
		return false, nil, nil
	}

	return true, &TokenClaims{
		Email:     email,
		JTI:       jti,
		ExpiresAt: expiresAt.Time,
	}, nil
}
