package login

import (
	"crypto/rand"
	"encoding/hex"
)

// newSessionToken returns a 64-char hex token. The token is the cookie
// value and the sessions primary key.
func newSessionToken() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
