// Package urlkey canonicalizes result URLs so the same destination
// (modulo trailing slash, scheme/host case, or fragment) dedupes across
// Brave's sections.
package urlkey

import (
	"net/url"
	"strings"
)

// NormalizeForDedup lower-cases the scheme and host, drops any fragment,
// and trims a trailing "/" from the path down to "/" (never below it); an
// empty path on a URL with a host counts as "/". If the input doesn't parse
// as a URL it is returned trimmed and unchanged.
func NormalizeForDedup(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" {
		return trimmed
	}

	scheme := strings.ToLower(parsed.Scheme)
	host := strings.ToLower(parsed.Hostname())
	port := ""
	if p := parsed.Port(); p != "" {
		port = ":" + p
	}

	path := parsed.Path
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	if path == "" && host != "" {
		path = "/"
	}

	query := ""
	if parsed.RawQuery != "" {
		query = "?" + parsed.RawQuery
	}

	return scheme + "://" + host + port + path + query
}
