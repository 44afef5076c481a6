// Package avatar derives deterministic Gravatar URLs from email addresses.
package avatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// Gravatar parameters: 200px, PG-rated, "mystery man" fallback.
const (
	size     = "200"
	rating   = "pg"
	fallback = "mm"
	baseURL  = "https://www.gravatar.com/avatar/"
)

// URL returns the Gravatar URL for an email address. The same email always
// yields the same URL regardless of case or surrounding whitespace.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("%s%s?s=%s&r=%s&d=%s", baseURL, hex.EncodeToString(sum[:]), size, rating, fallback)
}
