package memory

import (
	"context"
	"sync"

	"vodguard/internal/core/domain"
	"vodguard/internal/core/ports"
)

type enrollmentKey struct {
	subjectID domain.UserID
	contentID domain.ContentID
}

type MemoryEnrollmentRepository struct {
	enrollments map[enrollmentKey]struct{}
	mu          sync.RWMutex
}

func NewMemoryEnrollmentRepository() *MemoryEnrollmentRepository {
	return &MemoryEnrollmentRepository{
		enrollments: make(map[enrollmentKey]struct{}),
	}
}

var _ ports.EnrollmentRepository = (*MemoryEnrollmentRepository)(nil)

func (r *MemoryEnrollmentRepository) IsEntitled(ctx context.Context, subjectID domain.UserID, contentID domain.ContentID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.enrollments[enrollmentKey{subjectID: subjectID, contentID: contentID}]
	return ok, nil
}

// Enroll entitles a subject to a content item; used for seeding and tests.
func (r *MemoryEnrollmentRepository) Enroll(subjectID domain.UserID, contentID domain.ContentID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enrollments[enrollmentKey{subjectID: subjectID, contentID: contentID}] = struct{}{}
}
