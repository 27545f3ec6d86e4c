package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/hkdf"

	apperrors "github.com/spec-kit/token-demo/pkg/util/errorutil"
)

// Algorithm names a supported HMAC signing algorithm.
type Algorithm string

const (
	AlgorithmHS256 Algorithm = "HS256"
	AlgorithmHS384 Algorithm = "HS384"
	AlgorithmHS512 Algorithm = "HS512"
)

const keyIDInfo = "token-demo-kid-v1"

// ParseAlgorithm maps a configured algorithm name onto Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	alg := Algorithm(strings.ToUpper(strings.TrimSpace(s)))
	if alg.KeySize() == 0 {
		return "", fmt.Errorf("unsupported signing algorithm %q", s)
	}
	return alg, nil
}

// KeySize returns the secret length in bytes, matching the digest size of the
// underlying hash. Unknown algorithms report 0.
func (a Algorithm) KeySize() int {
	switch a {
	case AlgorithmHS256:
		return 32
	case AlgorithmHS384:
		return 48
	case AlgorithmHS512:
		return 64
	default:
		return 0
	}
}

func (a Algorithm) signingMethod() jwt.SigningMethod {
	switch a {
	case AlgorithmHS256:
		return jwt.SigningMethodHS256
	case AlgorithmHS384:
		return jwt.SigningMethodHS384
	case AlgorithmHS512:
		return jwt.SigningMethodHS512
	default:
		return nil
	}
}

// SigningKey is symmetric key material bound to one algorithm. It never
// renders its secret through String or the zap encoder.
type SigningKey struct {
	alg    Algorithm
	secret []byte
	id     string
}

// GenerateSigningKey draws a fresh random key sized for alg.
func GenerateSigningKey(alg Algorithm) (*SigningKey, error) {
	return generateSigningKey(alg, rand.Reader)
}

func generateSigningKey(alg Algorithm, random io.Reader) (*SigningKey, error) {
	size := alg.KeySize()
	if size == 0 {
		return nil, apperrors.NewInvalidKey(fmt.Sprintf("unsupported signing algorithm %q", alg))
	}
	secret := make([]byte, size)
	if _, err := io.ReadFull(random, secret); err != nil {
		return nil, apperrors.NewKeyGeneration(err)
	}
	return NewSigningKey(alg, secret)
}

// NewSigningKey wraps existing key material. The secret must be at least as
// long as the algorithm's digest.
func NewSigningKey(alg Algorithm, secret []byte) (*SigningKey, error) {
	size := alg.KeySize()
	if size == 0 {
		return nil, apperrors.NewInvalidKey(fmt.Sprintf("unsupported signing algorithm %q", alg))
	}
	if len(secret) < size {
		return nil, apperrors.NewInvalidKey(fmt.Sprintf("%s requires at least %d key bytes, got %d", alg, size, len(secret)))
	}

	id, err := deriveKeyID(secret)
	if err != nil {
		return nil, apperrors.NewKeyGeneration(err)
	}

	owned := make([]byte, len(secret))
	copy(owned, secret)
	return &SigningKey{alg: alg, secret: owned, id: id}, nil
}

// deriveKeyID produces a short public identifier for the key with HKDF, so the
// kid header and logs can name a key without revealing it.
func deriveKeyID(secret []byte) (string, error) {
	reader := hkdf.New(sha256.New, secret, nil, []byte(keyIDInfo))
	id := make([]byte, 8)
	if _, err := io.ReadFull(reader, id); err != nil {
		return "", err
	}
	return hex.EncodeToString(id), nil
}

// Algorithm returns the algorithm the key signs with.
func (k *SigningKey) Algorithm() Algorithm {
	return k.alg
}

// ID returns the public key identifier placed in the token header.
func (k *SigningKey) ID() string {
	return k.id
}

func (k *SigningKey) String() string {
	return fmt.Sprintf("SigningKey(alg=%s, kid=%s)", k.alg, k.id)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (k *SigningKey) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("alg", string(k.alg))
	enc.AddString("kid", k.id)
	return nil
}
