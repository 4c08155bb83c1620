package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"vodguard/internal/core/domain"
	"vodguard/internal/core/ports"
	apperrors "vodguard/pkg/errors"
	"vodguard/pkg/tokenstore"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the access token payload.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type sessionService struct {
	jwtSecret  []byte
	issuer     string
	audience   string
	accessTTL  time.Duration
	refreshTTL time.Duration
	store      *tokenstore.Store[domain.RefreshToken]
	users      ports.UserDirectory
}

// NewSessionService creates the session authority. Access tokens are
// stateless signed JWTs; refresh tokens are opaque values kept in the
// provided store, whose sweep lifecycle is owned by the caller.
func NewSessionService(
	jwtSecret string,
	issuer string,
	audience string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
	store *tokenstore.Store[domain.RefreshToken],
	users ports.UserDirectory,
) ports.SessionService {
	return &sessionService{
		jwtSecret:  []byte(jwtSecret),
		issuer:     issuer,
		audience:   audience,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		store:      store,
		users:      users,
	}
}

func (s *sessionService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", "", apperrors.NewUnauthorizedError("invalid email or password")
		}
		return nil, "", "", apperrors.WrapError(err, apperrors.ErrCodeInternal, "user lookup failed", http.StatusInternalServerError)
	}

	if !user.Active {
		return nil, "", "", apperrors.NewUnauthorizedError("account is disabled")
	}

	switch user.Status {
	case domain.StatusApproved:
	case domain.StatusPending:
		return nil, "", "", apperrors.NewUnauthorizedError("account is awaiting approval")
	case domain.StatusRejected:
		return nil, "", "", apperrors.NewUnauthorizedError("account has been rejected")
	default:
		return nil, "", "", apperrors.NewUnauthorizedError("account is not approved")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", apperrors.NewUnauthorizedError("invalid email or password")
	}

	claims := domain.AccessClaims{
		SubjectID: user.ID,
		Email:     user.Email,
		Role:      user.Role,
	}

	accessToken, err := s.IssueAccessToken(claims)
	if err != nil {
		return nil, "", "", err
	}

	refreshToken, err := s.IssueRefreshToken(claims)
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

func (s *sessionService) IssueAccessToken(claims domain.AccessClaims) (string, error) {
	now := time.Now()
	tokenClaims := &Claims{
		Email: claims.Email,
		Role:  string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(claims.SubjectID),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.WrapError(err, apperrors.ErrCodeInternal, "failed to sign access token", http.StatusInternalServerError)
	}
	return signed, nil
}

func (s *sessionService) VerifyAccessToken(tokenString string) (*domain.AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.NewUnauthorizedError("token expired")
		}
		return nil, apperrors.NewUnauthorizedError("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.NewUnauthorizedError("invalid token")
	}

	return &domain.AccessClaims{
		SubjectID: domain.UserID(claims.Subject),
		Email:     claims.Email,
		Role:      domain.UserRole(claims.Role),
	}, nil
}

func (s *sessionService) IssueRefreshToken(claims domain.AccessClaims) (string, error) {
	value, err := randomHex(64)
	if err != nil {
		return "", apperrors.WrapError(err, apperrors.ErrCodeInternal, "token generation failed", http.StatusInternalServerError)
	}

	expiresAt := time.Now().Add(s.refreshTTL)
	s.store.Put(value, domain.RefreshToken{
		SubjectID: claims.SubjectID,
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: expiresAt,
	}, expiresAt)

	return value, nil
}

// Refresh exchanges a live refresh token for a new access token. The
// refresh token is reusable until it expires or is revoked.
func (s *sessionService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	data, ok := s.store.Get(refreshToken)
	if !ok {
		return "", apperrors.NewUnauthorizedError("invalid or expired refresh token")
	}

	// The subject must still be an active, approved account.
	user, err := s.users.FindByID(ctx, data.SubjectID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", apperrors.NewUnauthorizedError("user not found")
		}
		return "", apperrors.WrapError(err, apperrors.ErrCodeInternal, "user lookup failed", http.StatusInternalServerError)
	}
	if !user.Active {
		return "", apperrors.NewUnauthorizedError("account is disabled")
	}
	if user.Status != domain.StatusApproved {
		return "", apperrors.NewUnauthorizedError("account is not approved")
	}

	return s.IssueAccessToken(domain.AccessClaims{
		SubjectID: data.SubjectID,
		Email:     data.Email,
		Role:      data.Role,
	})
}

func (s *sessionService) Revoke(refreshToken string) bool {
	return s.store.Revoke(refreshToken)
}

func (s *sessionService) RevokeAll(subjectID domain.UserID) int {
	return s.store.RevokeWhere(func(data domain.RefreshToken) bool {
		return data.SubjectID == subjectID
	})
}
