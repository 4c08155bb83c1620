package streaming

import (
	"os"
	"path/filepath"
	"strings"

	apperrors "vodguard/pkg/errors"
)

// Guard canonicalizes requested media paths and rejects anything escaping
// the configured media root.
type Guard struct {
	root string
}

// NewGuard resolves root to an absolute path once at construction.
func NewGuard(root string) (*Guard, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &Guard{root: filepath.Clean(abs)}, nil
}

// Root returns the absolute media root.
func (g *Guard) Root() string {
	return g.root
}

// Resolve joins rel onto the media root, canonicalizes the result and
// verifies it is still a descendant of the root. Escapes are Forbidden.
func (g *Guard) Resolve(rel string) (string, error) {
	resolved := filepath.Clean(filepath.Join(g.root, rel))

	if resolved != g.root && !strings.HasPrefix(resolved, g.root+string(os.PathSeparator)) {
		return "", apperrors.NewForbiddenError("invalid file path")
	}

	return resolved, nil
}
