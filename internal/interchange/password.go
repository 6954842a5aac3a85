package interchange

import (
	"crypto/rand"
	"fmt"
)

// passwordAlphabet excludes look-alike characters so a placeholder password
// read off a report or log is unambiguous.
const passwordAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"

// generatePassword returns a random placeholder password for imported user
// accounts. The fixed "A1!" suffix guarantees the upper/digit/symbol classes
// the destination's complexity rules require; the random prefix carries the
// entropy. Users are expected to reset it through the normal recovery flow.
func generatePassword() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}
	for i, b := range buf {
		buf[i] = passwordAlphabet[int(b)%len(passwordAlphabet)]
	}
	return string(buf) + "A1!", nil
}
