package garmin

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arloliu/fitsync/errs"
)

// Token is the persisted session token.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type,omitempty"`
	Username    string    `json:"username,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Valid reports whether the token exists and has not expired.
func (t Token) Valid() bool {
	return t.AccessToken != "" && (t.ExpiresAt.IsZero() || time.Now().Before(t.ExpiresAt))
}

// LoadToken reads a token file. Any failure maps to ErrNotAuthenticated;
// callers fall back to interactive login.
func LoadToken(path string) (Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Token{}, fmt.Errorf("%w: no session token at %s", errs.ErrNotAuthenticated, path)
	}

	var t Token
	if err := json.Unmarshal(data, &t); err != nil {
		return Token{}, fmt.Errorf("%w: malformed token file %s", errs.ErrNotAuthenticated, path)
	}

	return t, nil
}

// SaveToken persists the token with owner-only permissions.
func SaveToken(path string, t Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}
