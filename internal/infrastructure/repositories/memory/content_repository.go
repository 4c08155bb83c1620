package memory

import (
	"context"
	"sync"

	"vodguard/internal/core/domain"
	"vodguard/internal/core/ports"
)

type MemoryContentRepository struct {
	contents map[domain.ContentID]*domain.Content
	mu       sync.RWMutex
}

func NewMemoryContentRepository() *MemoryContentRepository {
	return &MemoryContentRepository{
		contents: make(map[domain.ContentID]*domain.Content),
	}
}

var _ ports.ContentRepository = (*MemoryContentRepository)(nil)

func (r *MemoryContentRepository) Resolve(ctx context.Context, id domain.ContentID) (*domain.Content, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	content, exists := r.contents[id]
	if !exists {
		return nil, domain.ErrContentNotFound
	}

	return content, nil
}

// Add registers a content item; used for seeding and tests.
func (r *MemoryContentRepository) Add(content *domain.Content) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contents[content.ID] = content
}
