package errorutil

import (
	"errors"
	"fmt"
)

// Error codes understood by callers of the token pipeline.
const (
	CodeInvalidSignature     = "INVALID_SIGNATURE"
	CodeExpired              = "EXPIRED"
	CodeMalformed            = "MALFORMED"
	CodeSerializationFailure = "SERIALIZATION_FAILURE"
	CodeInvalidClaims        = "INVALID_CLAIMS"
	CodeInvalidExpiration    = "INVALID_EXPIRATION"
	CodeInvalidKey           = "INVALID_KEY"
	CodeKeyGeneration        = "KEY_GENERATION_FAILED"
	CodeInvalidConfig        = "INVALID_CONFIG"
	CodeInternal             = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError carrying the same code, so the
// package sentinels match any wrapped instance of their kind.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrInvalidSignature     = &DomainError{Code: CodeInvalidSignature, Message: "token signature is invalid"}
	ErrExpired              = &DomainError{Code: CodeExpired, Message: "token has expired"}
	ErrMalformed            = &DomainError{Code: CodeMalformed, Message: "token is malformed"}
	ErrSerializationFailure = &DomainError{Code: CodeSerializationFailure, Message: "claims could not be serialized"}
	ErrInvalidClaims        = &DomainError{Code: CodeInvalidClaims, Message: "claims are invalid"}
	ErrInvalidExpiration    = &DomainError{Code: CodeInvalidExpiration, Message: "expiration must be in the future"}
	ErrInvalidKey           = &DomainError{Code: CodeInvalidKey, Message: "signing key is invalid"}
	ErrKeyGeneration        = &DomainError{Code: CodeKeyGeneration, Message: "signing key generation failed"}
	ErrInvalidConfig        = &DomainError{Code: CodeInvalidConfig, Message: "configuration is invalid"}
)

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{Code: code, Message: message, Err: err}
}

func wrap(sentinel *DomainError, err error) error {
	return NewDomainError(sentinel.Code, sentinel.Message, err)
}

// NewInvalidSignature reports a token whose signature does not match the key.
func NewInvalidSignature(err error) error {
	return wrap(ErrInvalidSignature, err)
}

// NewExpired reports a token whose exp is not after the verification time.
func NewExpired(err error) error {
	return wrap(ErrExpired, err)
}

// NewMalformed reports a token that cannot be decoded or lacks required claims.
func NewMalformed(err error) error {
	return wrap(ErrMalformed, err)
}

// NewSerializationFailure reports verified claims that could not be rendered.
func NewSerializationFailure(err error) error {
	return wrap(ErrSerializationFailure, err)
}

// NewKeyGeneration reports a random source failure while provisioning a key.
func NewKeyGeneration(err error) error {
	return wrap(ErrKeyGeneration, err)
}

// NewInvalidClaims reports a claim set rejected before signing.
func NewInvalidClaims(message string) error {
	return NewDomainError(CodeInvalidClaims, message, nil)
}

// NewInvalidExpiration reports an expiration that would not outlive issuance.
func NewInvalidExpiration(message string) error {
	return NewDomainError(CodeInvalidExpiration, message, nil)
}

// NewInvalidKey reports a missing or unusable signing key.
func NewInvalidKey(message string) error {
	return NewDomainError(CodeInvalidKey, message, nil)
}

// NewInvalidConfig reports configuration rejected at startup.
func NewInvalidConfig(err error) error {
	return wrap(ErrInvalidConfig, err)
}

// NewInternalError wraps a failure that carries no domain code.
func NewInternalError(err error) *DomainError {
	return NewDomainError(CodeInternal, "internal error", err)
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return NewInternalError(err)
}

// CodeOf returns the code of the first DomainError in err's chain, or an
// empty string when there is none.
func CodeOf(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}
