package contracts

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// viewerTokenBytes is the entropy of a viewer token; hex-encoded it yields
// a 64-character string.
const viewerTokenBytes = 32

// NewViewerToken returns a cryptographically random viewer token.
func NewViewerToken() (string, error) {
	b := make([]byte, viewerTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate viewer token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
