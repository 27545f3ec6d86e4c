package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/spec-kit/token-demo/pkg/util/errorutil"
)

// TokenManager handles issuing and validating JWT tokens. It holds no key
// material; every call names the key it signs or verifies with.
type TokenManager struct {
	now   func() time.Time
	newID func() string
}

// Option configures a TokenManager.
type Option func(*TokenManager)

// WithClock overrides the time source used for iat, the expiration check on
// issue, and exp validation on verify.
func WithClock(now func() time.Time) Option {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// NewTokenManager builds a new manager.
func NewTokenManager(opts ...Option) *TokenManager {
	tm := &TokenManager{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm
}

// Issue signs claims into a compact token that expires at expiresAt.
func (tm *TokenManager) Issue(claims Claims, expiresAt time.Time, key *SigningKey) (string, error) {
	if key == nil {
		return "", apperrors.NewInvalidKey("signing key is required")
	}
	if len(claims) == 0 {
		return "", apperrors.NewInvalidClaims("claims must not be empty")
	}
	for name := range claims {
		if _, reserved := registeredClaims[name]; reserved {
			return "", apperrors.NewInvalidClaims(fmt.Sprintf("claim %q is reserved", name))
		}
	}

	// exp and iat are encoded at jwt.TimePrecision, so compare them as they
	// will appear on the wire.
	exp := expiresAt.Truncate(jwt.TimePrecision)
	iat := tm.now().Truncate(jwt.TimePrecision)
	if !exp.After(iat) {
		return "", apperrors.NewInvalidExpiration(
			fmt.Sprintf("expiration %s is not after %s", exp.Format(time.RFC3339), iat.Format(time.RFC3339)))
	}

	payload := claims.toMapClaims()
	payload["exp"] = jwt.NewNumericDate(exp)
	payload["iat"] = jwt.NewNumericDate(iat)
	payload["jti"] = tm.newID()

	token := jwt.NewWithClaims(key.alg.signingMethod(), payload)
	token.Header["kid"] = key.id

	tokenString, err := token.SignedString(key.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks the token's signature and expiry against key and returns the
// claims it was issued with.
func (tm *TokenManager) Verify(tokenStr string, key *SigningKey) (Claims, error) {
	if key == nil {
		return nil, apperrors.NewInvalidKey("signing key is required")
	}

	parsed, err := jwt.Parse(tokenStr, func(_ *jwt.Token) (interface{}, error) {
		return key.secret, nil
	},
		jwt.WithValidMethods([]string{string(key.alg)}),
		jwt.WithExpirationRequired(),
		jwt.WithJSONNumber(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, apperrors.NewMalformed(errors.New("invalid token claims"))
	}
	return fromMapClaims(claims), nil
}

// classify maps golang-jwt validation errors onto the verification error kinds.
// A bad signature wins over every claim problem.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return apperrors.NewInvalidSignature(err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperrors.NewExpired(err)
	default:
		return apperrors.NewMalformed(err)
	}
}
