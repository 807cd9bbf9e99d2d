// munui/utils/security.go
package utils

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// AdminKey holds the process-wide admin credential. It is constructed once at
// startup and injected into the store; nothing reads it from ambient state.
// Operators set either a plaintext key, compared in constant time, or a
// bcrypt hash of the key. When both are set the hash wins.
type AdminKey struct {
	plain string
	hash  string
}

// NewAdminKey wraps the configured credential.
func NewAdminKey(plain, bcryptHash string) *AdminKey {
	return &AdminKey{plain: plain, hash: bcryptHash}
}

// Matches reports whether candidate is the admin credential. An empty
// candidate or an unconfigured key never matches.
func (k *AdminKey) Matches(candidate string) bool {
	if candidate == "" {
		return false
	}
	if k.hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(k.hash), []byte(candidate)) == nil
	}
	if k.plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(k.plain)) == 1
}

// GetIPAddress extracts the real IP address from a request, trusting
// forwarding headers set by a reverse proxy.
func GetIPAddress(r *http.Request) string {
	if cf := r.Header.Get("CF-Connecting-IP"); cf != "" {
		return cf
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
