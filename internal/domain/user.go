package domain

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Role enumerates the access level carried by a user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// ParseRole maps a textual role onto the Role enumeration.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the recognised roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is the identity record a token is issued for. It is immutable after NewUser.
type User struct {
	ID       int64
	Role     Role
	Username string
}

// IDAllocator hands out user ids starting at 0. The zero value is ready to use.
type IDAllocator struct {
	next atomic.Int64
}

// Next returns the next id. Successive calls return strictly increasing values.
func (a *IDAllocator) Next() int64 {
	return a.next.Add(1) - 1
}

// NewUser builds a user with an id taken from ids.
func NewUser(ids *IDAllocator, role Role, username string) User {
	return User{
		ID:       ids.Next(),
		Role:     role,
		Username: username,
	}
}
