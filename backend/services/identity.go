package services

import (
	"fmt"
	"strconv"

	"codeclub/backend/config"

	"github.com/golang-jwt/jwt/v4"
)

// Identity is the per-request view of the authenticated user, built once from
// the access token. Downstream code reads it as plain data; no further claim
// lookups happen past this point.
type Identity struct {
	UserID    uint
	FirstName string
	LastName  string
	Email     string
	Roles     []string
}

func (id *Identity) HasRole(role string) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ResolveIdentity validates an access token and constructs the request
// identity. Signature, issuer, audience and expiry are all mandatory; a token
// missing any identity claim is rejected rather than defaulted.
func ResolveIdentity(tokenString string, cfg *config.Config) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, NewAuthError("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, NewAuthError("invalid token claims")
	}
	if !claims.VerifyIssuer(cfg.JWTIssuer, true) {
		return nil, NewAuthError("invalid token issuer")
	}
	if !claims.VerifyAudience(cfg.JWTAudience, true) {
		return nil, NewAuthError("invalid token audience")
	}
	if _, ok := claims["exp"]; !ok {
		return nil, NewAuthError("token has no expiry")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, NewAuthError("token has no subject")
	}
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, NewAuthError("invalid token subject")
	}

	firstName, ok := claims["given_name"].(string)
	if !ok {
		return nil, NewAuthError("token has no given name")
	}
	lastName, ok := claims["family_name"].(string)
	if !ok {
		return nil, NewAuthError("token has no family name")
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, NewAuthError("token has no email")
	}

	rawRoles, ok := claims["roles"].([]interface{})
	if !ok {
		return nil, NewAuthError("token has no roles")
	}
	roles := make([]string, 0, len(rawRoles))
	for _, r := range rawRoles {
		name, ok := r.(string)
		if !ok {
			return nil, NewAuthError("invalid role claim")
		}
		roles = append(roles, name)
	}

	return &Identity{
		UserID:    uint(userID),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Roles:     roles,
	}, nil
}
