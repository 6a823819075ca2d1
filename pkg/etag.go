package pkg

import (
	"crypto/sha1"
	"encoding/base64"
	"strings"
)

// StrongETag returns a quoted, url-safe base64 sha1 digest of the given fingerprint.
func StrongETag(fingerprint []byte) string {
	sum := sha1.Sum(fingerprint)
	return `"` + base64.RawURLEncoding.EncodeToString(sum[:]) + `"`
}

// ParseIfNoneMatch splits an If-None-Match header into its entity tags.
// Weak tags are compared as if they were strong.
func ParseIfNoneMatch(header string) []string {
	if header == "" {
		return nil
	}

	var tags []string
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(part)
		tag = strings.TrimPrefix(tag, "W/")
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// ETagMatches reports whether an If-None-Match header matches etag.
// A "*" entry matches any current representation.
func ETagMatches(header, etag string) bool {
	for _, tag := range ParseIfNoneMatch(header) {
		if tag == etag || tag == "*" {
			return true
		}
	}
	return false
}
