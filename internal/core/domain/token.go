package domain

import "time"

// StreamToken binds an opaque token value (the store key) to exactly one
// content item and the subject it was issued to. Immutable after creation.
type StreamToken struct {
	ContentID ContentID
	SubjectID UserID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// RefreshToken holds the claims carried by an opaque, store-backed refresh
// token. The token value itself is the store key.
type RefreshToken struct {
	SubjectID UserID
	Email     string
	Role      UserRole
	ExpiresAt time.Time
}

// AccessClaims is the payload embedded in a signed access token.
type AccessClaims struct {
	SubjectID UserID
	Email     string
	Role      UserRole
}
