package auth

import (
	"testing"
)

func Test_TokenService_GenerateAndValidate(t *testing.T) {
	tokenService := NewTokenService("access-secret", "refresh-secret", 30, 60*24*7)

	pair, err := tokenService.GenerateTokenPair("jane@example.com")
	if err != nil {
		t.Fatal(err)
	}

	if pair.TokenType != "bearer" {
		t.Errorf("expected token type 'bearer', got %q", pair.TokenType)
	}

	isValid, claims, err := tokenService.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatal(err)
	}
	if !isValid {
		t.Fatal("expected access token to be valid")
	}
	if claims.Email != "jane@example.com" {
		t.Errorf("expected subject 'jane@example.com', got %q", claims.Email)
	}
	if claims.JTI == "" {
		t.Error("expected a jti on the access token")
	}

	isValid, refreshClaims, err := tokenService.ValidateRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatal(err)
	}
	if !isValid {
		t.Fatal("expected refresh token to be valid")
	}
	if refreshClaims.JTI == claims.JTI {
		t.Error("access and refresh token must not share a jti")
	}
}

func Test_TokenService_RejectsCrossTokenUse(t *testing.T) {
	tokenService := NewTokenService("access-secret", "refresh-secret", 30, 60*24*7)

	pair, err := tokenService.GenerateTokenPair("jane@example.com")
	if err != nil {
		t.Fatal(err)
	}

	// a refresh token presented as an access token is signed with the wrong
	// secret and must not validate
	isValid, _, _ := tokenService.ValidateAccessToken(pair.RefreshToken)
	if isValid {
		t.Error("refresh token validated as an access token")
	}

	isValid, _, _ = tokenService.ValidateRefreshToken(pair.AccessToken)
	if isValid {
		t.Error("access token validated as a refresh token")
	}
}

func Test_TokenService_RejectsExpiredToken(t *testing.T) {
	expired := NewTokenService("access-secret", "refresh-secret", -1, -1)

	pair, err := expired.GenerateTokenPair("jane@example.com")
	if err != nil {
		t.Fatal(err)
	}

	isValid, _, _ := expired.ValidateAccessToken(pair.AccessToken)
	if isValid {
		t.Error("expired access token validated")
	}

	isValid, _, _ = expired.ValidateRefreshToken(pair.RefreshToken)
	if isValid {
		t.Error("expired refresh token validated")
	}
}

func Test_TokenService_RejectsTamperedToken(t *testing.T) {
	tokenService := NewTokenService("access-secret", "refresh-secret", 30, 30)

	pair, err := tokenService.GenerateTokenPair("jane@example.com")
	if err != nil {
		t.Fatal(err)
	}

	tampered := pair.AccessToken[:len(pair.AccessToken)-2] + "xx"

	isValid, _, _ := tokenService.ValidateAccessToken(tampered)
	if isValid {
		t.Error("tampered token validated")
	}

	isValid, _, _ = tokenService.ValidateAccessToken("not-a-jwt")
	if isValid {
		t.Error("garbage token validated")
	}
}

func Test_TokenService_FreshPairsGetFreshJTIs(t *testing.T) {
	tokenService := NewTokenService("access-secret", "refresh-secret", 30, 30)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		pair, err := tokenService.GenerateTokenPair("jane@example.com")
		if err != nil {
			t.Fatal(err)
		}

		_, claims, _ := tokenService.ValidateRefreshToken(pair.RefreshToken)
		if claims == nil {
			t.Fatal("expected refresh token to validate")
		}
		if seen[claims.JTI] {
			t.Fatalf("jti %q issued twice", claims.JTI)
		}
		seen[claims.JTI] = true
	}
}
