package security

import (
	"crypto/rand"
	"fmt"
)

var tokenCharset = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// QuoteTokenLength is the length of the shareable quote lookup token.
const QuoteTokenLength = 16

// GenerateToken produces a random alphanumeric string used for shareable
// quote lookup URLs.
func GenerateToken(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive")
	}

	result := make([]rune, length)
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	for i, b := range buf {
		result[i] = tokenCharset[int(b)%len(tokenCharset)]
	}
	return string(result), nil
}
