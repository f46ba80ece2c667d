package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goals-course/authenticator/internal/core/domain"
	"github.com/goals-course/authenticator/internal/core/ports"
)

func newTestTokenService() ports.TokenService {
	return NewTokenService(TokenServiceConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		Issuer:        "authenticator-test",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	}, zerolog.Nop())
}

func testUser(roles ...string) *domain.User {
	domainRoles := make([]domain.Role, 0, len(roles))
	for _, title := range roles {
		domainRoles = append(domainRoles, domain.Role{ID: uuid.New(), Title: title})
	}
	return &domain.User{
		ID:       uuid.New(),
		Username: "alice@example.com",
		Enabled:  true,
		Roles:    domainRoles,
	}
}

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService()
	user := testUser(domain.RoleAdmin, domain.RoleUser)

	token, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if !svc.Validate(token) {
		t.Fatalf("freshly issued token failed validation")
	}

	username, err := svc.Username(token)
	if err != nil {
		t.Fatalf("Username: %v", err)
	}
	if username != user.Username {
		t.Fatalf("expected username %q, got %q", user.Username, username)
	}

	id, err := svc.UserID(token)
	if err != nil {
		t.Fatalf("UserID: %v", err)
	}
	if id != user.ID {
		t.Fatalf("expected user id %s, got %s", user.ID, id)
	}

	exp, err := svc.ExpiresAt(token)
	if err != nil {
		t.Fatalf("ExpiresAt: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", exp)
	}
}

func TestTokenService_AccessTokenCarriesRoles(t *testing.T) {
	svc := newTestTokenService()
	user := testUser(domain.RoleAdmin)

	token, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("access-secret"), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}

	roles, ok := claims["roles"].([]interface{})
	if !ok || len(roles) != 1 || roles[0] != domain.RoleAdmin {
		t.Fatalf("expected roles [%s], got %v", domain.RoleAdmin, claims["roles"])
	}
	if claims["iss"] != "authenticator-test" {
		t.Fatalf("expected issuer claim, got %v", claims["iss"])
	}
}

func TestTokenService_ValidateRejections(t *testing.T) {
	svc := newTestTokenService()
	user := testUser()

	otherSvc := NewTokenService(TokenServiceConfig{
		AccessSecret:  "a-different-secret",
		RefreshSecret: "refresh-secret",
		Issuer:        "authenticator-test",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	}, zerolog.Nop())
	foreign, err := otherSvc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	expiredSvc := NewTokenService(TokenServiceConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		Issuer:        "authenticator-test",
		AccessTTL:     -time.Minute,
		RefreshTTL:    24 * time.Hour,
	}, zerolog.Nop())
	expired, err := expiredSvc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	cases := []struct {
		name  string
		token string
	}{
		{"empty string", ""},
		{"foreign secret", foreign},
		{"expired", expired},
		{"malformed", "not.a.jwt"},
		{"garbage", "zzzzzz"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if svc.Validate(tc.token) {
				t.Fatalf("expected Validate to return false")
			}
		})
	}
}

func TestTokenService_RefreshTokenUsesSeparateSecretAndAlg(t *testing.T) {
	svc := newTestTokenService()
	user := testUser()

	refresh, err := svc.GenerateRefreshToken(user)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	// A refresh token must never pass access-token validation: different
	// secret, different MAC.
	if svc.Validate(refresh) {
		t.Fatalf("refresh token validated as an access token")
	}

	parsed, err := jwt.Parse(refresh, func(tkn *jwt.Token) (interface{}, error) {
		if tkn.Method.Alg() != jwt.SigningMethodHS512.Alg() {
			t.Fatalf("expected HS512, got %s", tkn.Method.Alg())
		}
		return []byte("refresh-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("refresh token did not verify with refresh secret: %v", err)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub != user.Username {
		t.Fatalf("expected subject %q, got %q (%v)", user.Username, sub, err)
	}
}

func TestTokenService_ExpiredAccessTokenStillExpiredNextValidate(t *testing.T) {
	// AccessTTL forced negative so Validate classifies expiry, not signature.
	svc := NewTokenService(TokenServiceConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		Issuer:        "authenticator-test",
		AccessTTL:     -time.Hour,
		RefreshTTL:    24 * time.Hour,
	}, zerolog.Nop())

	token, err := svc.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if svc.Validate(token) {
		t.Fatalf("expected expired token to fail validation")
	}
	if svc.Validate(token) {
		t.Fatalf("second validation must also fail")
	}
}
