package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func baseClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":         "42",
		"given_name":  "Ada",
		"family_name": "Lovelace",
		"email":       "ada@example.com",
		"roles":       []string{"User", "Admin"},
		"iss":         "codeclub",
		"aud":         "codeclub-web",
		"iat":         now.Unix(),
		"exp":         now.Add(5 * time.Minute).Unix(),
	}
}

func TestResolveIdentity(t *testing.T) {
	cfg := testConfig()
	token := signToken(t, baseClaims(), cfg.JWTSecret)

	identity, err := ResolveIdentity(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, uint(42), identity.UserID)
	assert.Equal(t, "Ada", identity.FirstName)
	assert.Equal(t, "Lovelace", identity.LastName)
	assert.Equal(t, "ada@example.com", identity.Email)
	assert.Equal(t, []string{"User", "Admin"}, identity.Roles)
}

func TestResolveIdentityRejectsBadTokens(t *testing.T) {
	cfg := testConfig()

	mutate := func(fn func(jwt.MapClaims)) jwt.MapClaims {
		claims := baseClaims()
		fn(claims)
		return claims
	}

	cases := []struct {
		name  string
		token string
	}{
		{"wrong secret", signToken(t, baseClaims(), "othersecret")},
		{"wrong issuer", signToken(t, mutate(func(c jwt.MapClaims) { c["iss"] = "someone-else" }), cfg.JWTSecret)},
		{"missing issuer", signToken(t, mutate(func(c jwt.MapClaims) { delete(c, "iss") }), cfg.JWTSecret)},
		{"wrong audience", signToken(t, mutate(func(c jwt.MapClaims) { c["aud"] = "other-app" }), cfg.JWTSecret)},
		{"missing audience", signToken(t, mutate(func(c jwt.MapClaims) { delete(c, "aud") }), cfg.JWTSecret)},
		{"expired", signToken(t, mutate(func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Minute).Unix() }), cfg.JWTSecret)},
		{"no expiry", signToken(t, mutate(func(c jwt.MapClaims) { delete(c, "exp") }), cfg.JWTSecret)},
		{"missing subject", signToken(t, mutate(func(c jwt.MapClaims) { delete(c, "sub") }), cfg.JWTSecret)},
		{"missing given name", signToken(t, mutate(func(c jwt.MapClaims) { delete(c, "given_name") }), cfg.JWTSecret)},
		{"missing family name", signToken(t, mutate(func(c jwt.MapClaims) { delete(c, "family_name") }), cfg.JWTSecret)},
		{"missing email", signToken(t, mutate(func(c jwt.MapClaims) { delete(c, "email") }), cfg.JWTSecret)},
		{"missing roles", signToken(t, mutate(func(c jwt.MapClaims) { delete(c, "roles") }), cfg.JWTSecret)},
		{"garbage", "not.a.token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveIdentity(tc.token, cfg)
			var aerr *AuthError
			assert.ErrorAs(t, err, &aerr)
		})
	}
}

func TestResolveIdentityFromIssuedToken(t *testing.T) {
	cfg := testConfig()
	svc := NewAuthService(newTestDB(t), cfg)
	user, err := svc.Register(registerInput("ada", "ada@example.com"))
	require.NoError(t, err)

	pair, err := svc.Login("ada", "password123")
	require.NoError(t, err)

	identity, err := ResolveIdentity(pair.Token, cfg)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, []string{"User"}, identity.Roles)
	assert.True(t, identity.HasRole("User"))
	assert.False(t, identity.HasRole("Admin"))
}

func TestHasRoleIsFlat(t *testing.T) {
	identity := &Identity{Roles: []string{"Admin"}}
	assert.True(t, identity.HasRole("Admin"))
	assert.False(t, identity.HasRole("User")) // Admin gains nothing implicitly
}
