package domain_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/token-demo/internal/domain"
)

func TestIDAllocatorMonotonic(t *testing.T) {
	t.Parallel()

	var ids domain.IDAllocator
	prev := ids.Next()
	assert.Equal(t, int64(0), prev)

	for i := 0; i < 100; i++ {
		next := ids.Next()
		assert.Greater(t, next, prev)
		prev = next
	}
	assert.Equal(t, int64(100), prev)
}

func TestIDAllocatorConcurrent(t *testing.T) {
	t.Parallel()

	var (
		ids  domain.IDAllocator
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]struct{})
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := ids.Next()
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 50)
	for i := int64(0); i < 50; i++ {
		assert.Contains(t, seen, i)
	}
}

func TestIndependentAllocators(t *testing.T) {
	t.Parallel()

	var a, b domain.IDAllocator
	assert.Equal(t, int64(0), a.Next())
	assert.Equal(t, int64(1), a.Next())
	assert.Equal(t, int64(0), b.Next())
}

func TestNewUser(t *testing.T) {
	t.Parallel()

	var ids domain.IDAllocator
	admin := domain.NewUser(&ids, domain.RoleAdmin, "Marmont")
	user := domain.NewUser(&ids, domain.RoleUser, "Soult")

	assert.Equal(t, domain.User{ID: 0, Role: domain.RoleAdmin, Username: "Marmont"}, admin)
	assert.Equal(t, domain.User{ID: 1, Role: domain.RoleUser, Username: "Soult"}, user)
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want domain.Role
	}{
		{"ADMIN", domain.RoleAdmin},
		{"admin", domain.RoleAdmin},
		{" User ", domain.RoleUser},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseRole(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := domain.ParseRole("ROOT")
		require.Error(t, err)
		assert.False(t, domain.Role("ROOT").Valid())
	})
}
