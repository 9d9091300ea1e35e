package security_test

import (
	"testing"

	"github.com/vitrineshop/vitrine-backend/pkg/security"
)

func TestGenerateToken(t *testing.T) {
	token, err := security.GenerateToken(security.QuoteTokenLength)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if len(token) != security.QuoteTokenLength {
		t.Fatalf("expected %d characters, got %d", security.QuoteTokenLength, len(token))
	}
	for _, r := range token {
		if !isAlnum(r) {
			t.Fatalf("token contains non-alphanumeric rune %q", r)
		}
	}

	other, err := security.GenerateToken(security.QuoteTokenLength)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if token == other {
		t.Fatal("two generated tokens collided")
	}
}

func TestGenerateTokenInvalidLength(t *testing.T) {
	if _, err := security.GenerateToken(0); err == nil {
		t.Fatal("expected error for zero length")
	}
}

func isAlnum(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return false
}
