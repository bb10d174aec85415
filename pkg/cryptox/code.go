package cryptox

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// CodeCharset is the alphabet for human-typed one-time codes.
const CodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode returns a string of length characters drawn uniformly from
// charset using crypto/rand.
func GenerateCode(length int, charset string) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", length)
	}
	if charset == "" {
		return "", errors.New("charset must not be empty")
	}

	limit := big.NewInt(int64(len(charset)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate random code: %w", err)
		}
		out[i] = charset[n.Int64()]
	}
	return string(out), nil
}
