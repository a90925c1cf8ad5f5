package utils

import "strings"

// NormalizeLanguage canonicalizes a free-form language string so that
// "Python", " python " and "PYTHON" all index the same guidance tables.
func NormalizeLanguage(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
