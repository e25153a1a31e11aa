package utils

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL derives a deterministic avatar URL from an email address.
// Size 200, rating pg, "mystery man" default for addresses without a gravatar.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", sum)
}
