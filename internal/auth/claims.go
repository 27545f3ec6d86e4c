package auth

import (
	"encoding/json"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/token-demo/internal/domain"
)

// Claim names written for a user.
const (
	ClaimID       = "id"
	ClaimRole     = "role"
	ClaimUsername = "username"
)

// registeredClaims are owned by the token manager and may not be set by callers.
var registeredClaims = map[string]struct{}{
	"exp": {},
	"iat": {},
	"nbf": {},
	"jti": {},
	"iss": {},
	"sub": {},
	"aud": {},
}

// Claims is the caller-visible claim set of a token.
type Claims map[string]any

// BuildClaims maps a user onto its claim set.
func BuildClaims(user domain.User) Claims {
	return Claims{
		ClaimID:       user.ID,
		ClaimRole:     user.Role,
		ClaimUsername: user.Username,
	}
}

// toMapClaims copies c into a jwt.MapClaims ready for signing.
func (c Claims) toMapClaims() jwt.MapClaims {
	out := make(jwt.MapClaims, len(c)+3)
	for k, v := range c {
		out[k] = v
	}
	return out
}

// fromMapClaims strips registered claims and restores the Go types the
// builder used: integers come back as int64 and the role as domain.Role.
func fromMapClaims(in jwt.MapClaims) Claims {
	out := make(Claims, len(in))
	for k, v := range in {
		if _, reserved := registeredClaims[k]; reserved {
			continue
		}
		out[k] = normalizeValue(v)
	}
	if raw, ok := out[ClaimRole].(string); ok {
		if role, err := domain.ParseRole(raw); err == nil && string(role) == raw {
			out[ClaimRole] = role
		}
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
