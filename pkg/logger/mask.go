package logger

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// MaskSecret keeps the first four characters of a credential and hides the rest.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if utf8.RuneCountInString(secret) <= 4 {
		return "****"
	}
	runes := []rune(secret)
	return string(runes[:4]) + strings.Repeat("*", 4)
}

// MaskURL drops the query string and fragment so search terms and
// coordinates never reach the log.
func MaskURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
			return rawURL[:i]
		}
		return rawURL
	}
	return parsed.Scheme + "://" + parsed.Host + parsed.EscapedPath()
}
