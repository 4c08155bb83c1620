package ports

import (
	"context"

	"vodguard/internal/core/domain"
)

// ContentAccessService issues and validates short-lived, content-bound
// streaming tokens.
type ContentAccessService interface {
	IssueToken(ctx context.Context, contentID domain.ContentID, subjectID domain.UserID, role domain.UserRole) (string, error)
	ValidateToken(token string, contentID domain.ContentID) (domain.UserID, bool)
	RevokeToken(token string) bool
}

// SessionService issues signed access tokens and opaque refresh tokens,
// and rotates and revokes sessions.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	IssueAccessToken(claims domain.AccessClaims) (string, error)
	VerifyAccessToken(token string) (*domain.AccessClaims, error)
	IssueRefreshToken(claims domain.AccessClaims) (string, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Revoke(refreshToken string) bool
	RevokeAll(subjectID domain.UserID) int
}
