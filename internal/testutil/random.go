package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// randomHex returns n random bytes hex-encoded.
func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// RandomEmail returns a unique email address for test accounts.
func RandomEmail() string {
	return fmt.Sprintf("user-%s@example.com", randomHex(6))
}

// RandomName returns a unique human-readable name.
func RandomName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, randomHex(4))
}
