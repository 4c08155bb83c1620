package ports

import (
	"context"

	"vodguard/internal/core/domain"
)

// ContentRepository resolves a content identifier to its media metadata.
type ContentRepository interface {
	Resolve(ctx context.Context, id domain.ContentID) (*domain.Content, error)
}

// EnrollmentRepository answers the entitlement question: may this subject
// access this content item.
type EnrollmentRepository interface {
	IsEntitled(ctx context.Context, subjectID domain.UserID, contentID domain.ContentID) (bool, error)
}

// UserDirectory looks up accounts for login and refresh re-validation.
type UserDirectory interface {
	FindByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
