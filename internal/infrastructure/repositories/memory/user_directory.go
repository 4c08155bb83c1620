package memory

import (
	"context"
	"sync"

	"vodguard/internal/core/domain"
	"vodguard/internal/core/ports"
)

type MemoryUserDirectory struct {
	users map[domain.UserID]*domain.User
	mu    sync.RWMutex
}

func NewMemoryUserDirectory() *MemoryUserDirectory {
	return &MemoryUserDirectory{
		users: make(map[domain.UserID]*domain.User),
	}
}

var _ ports.UserDirectory = (*MemoryUserDirectory)(nil)

func (r *MemoryUserDirectory) FindByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, domain.ErrUserNotFound
	}

	return user, nil
}

func (r *MemoryUserDirectory) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}

	return nil, domain.ErrUserNotFound
}

// Add registers a user account; used for seeding and tests.
func (r *MemoryUserDirectory) Add(user *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
}
