package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"vodguard/internal/core/domain"
	"vodguard/internal/core/ports"
	apperrors "vodguard/pkg/errors"
	"vodguard/pkg/tokenstore"
)

// randomHex returns n cryptographically random bytes, hex-encoded.
func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

type contentAccessService struct {
	contents    ports.ContentRepository
	enrollments ports.EnrollmentRepository
	store       *tokenstore.Store[domain.StreamToken]
	ttl         time.Duration
}

// NewContentAccessService creates the authority that mints and validates
// stream tokens. The store's sweep lifecycle is owned by the caller.
func NewContentAccessService(
	contents ports.ContentRepository,
	enrollments ports.EnrollmentRepository,
	store *tokenstore.Store[domain.StreamToken],
	ttl time.Duration,
) ports.ContentAccessService {
	return &contentAccessService{
		contents:    contents,
		enrollments: enrollments,
		store:       store,
		ttl:         ttl,
	}
}

func (s *contentAccessService) IssueToken(ctx context.Context, contentID domain.ContentID, subjectID domain.UserID, role domain.UserRole) (string, error) {
	if _, err := s.contents.Resolve(ctx, contentID); err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			return "", apperrors.NewNotFoundError("content")
		}
		return "", apperrors.WrapError(err, apperrors.ErrCodeInternal, "content lookup failed", http.StatusInternalServerError)
	}

	// Admins and instructors may always watch; students must be enrolled.
	if !role.Privileged() {
		entitled, err := s.enrollments.IsEntitled(ctx, subjectID, contentID)
		if err != nil {
			return "", apperrors.WrapError(err, apperrors.ErrCodeInternal, "entitlement check failed", http.StatusInternalServerError)
		}
		if !entitled {
			return "", apperrors.NewForbiddenError("you must be enrolled to watch this content")
		}
	}

	value, err := randomHex(32)
	if err != nil {
		return "", apperrors.WrapError(err, apperrors.ErrCodeInternal, "token generation failed", http.StatusInternalServerError)
	}

	now := time.Now()
	expiresAt := now.Add(s.ttl)
	s.store.Put(value, domain.StreamToken{
		ContentID: contentID,
		SubjectID: subjectID,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, expiresAt)

	return value, nil
}

func (s *contentAccessService) ValidateToken(token string, contentID domain.ContentID) (domain.UserID, bool) {
	tok, ok := s.store.Get(token)
	if !ok {
		return "", false
	}

	// A stream token is bound to exactly one content item.
	if tok.ContentID != contentID {
		return "", false
	}

	return tok.SubjectID, true
}

func (s *contentAccessService) RevokeToken(token string) bool {
	return s.store.Revoke(token)
}
