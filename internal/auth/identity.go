package auth

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/plateful/mealscan/internal/config"
)

// Identity is the client-side view of the signed-in user.
type Identity struct {
	UID   string
	Email string
}

// TokenSource supplies the bearer token attached to API requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns a fixed token. The token is a Firebase ID
// token minted outside this process.
type StaticTokenSource struct {
	token string
}

// NewStaticTokenSource builds a token source from config: the literal
// token wins, otherwise the token is read from the configured file.
func NewStaticTokenSource(cfg config.AuthConfig) (*StaticTokenSource, error) {
	token := strings.TrimSpace(cfg.IDToken)
	if token == "" && cfg.IDTokenFile != "" {
		data, err := os.ReadFile(cfg.IDTokenFile)
		if err != nil {
			return nil, fmt.Errorf("auth: read token file: %w", err)
		}
		token = strings.TrimSpace(string(data))
	}
	if token == "" {
		return nil, fmt.Errorf("auth: no id token configured")
	}
	return &StaticTokenSource{token: token}, nil
}

func (s *StaticTokenSource) Token(_ context.Context) (string, error) {
	return s.token, nil
}

// idClaims are the claims the client cares about in a Firebase ID token.
type idClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
}

// IdentityFromToken extracts the uid (and email, if present) from an ID
// token WITHOUT verifying the signature. Verification is the backend's
// job; the client only needs the uid for request bodies.
func IdentityFromToken(raw string) (Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identity{}, fmt.Errorf("auth: token is empty")
	}

	var claims idClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return Identity{}, fmt.Errorf("auth: parse token: %w", err)
	}

	uid := claims.UserID
	if uid == "" {
		uid = claims.Subject
	}
	if uid == "" {
		return Identity{}, fmt.Errorf("auth: token has no user_id or sub claim")
	}

	return Identity{UID: uid, Email: claims.Email}, nil
}
