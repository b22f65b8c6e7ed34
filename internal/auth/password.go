package auth

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Password schemes.
const (
	SchemeMD5    = "md5"
	SchemeBcrypt = "bcrypt"
)

// Hasher produces password digests and verifies passwords against digests
// of either scheme, so stored md5 digests keep working after a switch to bcrypt.
type Hasher struct {
	scheme string
	cost   int
}

// NewHasher constructs a hasher producing digests in scheme.
func NewHasher(scheme string, bcryptCost int) (*Hasher, error) {
	scheme = strings.ToLower(strings.TrimSpace(scheme))
	switch scheme {
	case SchemeMD5:
	case SchemeBcrypt:
		if bcryptCost == 0 {
			bcryptCost = bcrypt.DefaultCost
		}
		if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("auth: bcrypt cost %d out of range", bcryptCost)
		}
	default:
		return nil, fmt.Errorf("auth: unknown password scheme %q", scheme)
	}
	return &Hasher{scheme: scheme, cost: bcryptCost}, nil
}

// Hash returns the digest of password.
func (h *Hasher) Hash(password string) (string, error) {
	if h.scheme == SchemeBcrypt {
		digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
		if err != nil {
			return "", fmt.Errorf("auth: bcrypt: %w", err)
		}
		return string(digest), nil
	}
	return md5Hex(password), nil
}

// Verify reports whether password matches digest.
func (h *Hasher) Verify(digest, password string) bool {
	if strings.HasPrefix(digest, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	}
	want := md5Hex(password)
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(digest)), []byte(want)) == 1
}

func md5Hex(password string) string {
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}
