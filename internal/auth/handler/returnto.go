package handler

import (
	"net/url"
	"strings"
	"unicode"
)

const maxReturnToLen = 1024

// SafeReturnTo accepts raw only if it is a plain path on the frontend
// origin: a single leading slash, no scheme or host, no query or fragment,
// no backslashes, no dot segments and no control characters. When prefixes
// is non-empty the path must also sit under one of them. Anything else
// returns fallback.
func SafeReturnTo(raw string, prefixes []string, fallback string) string {
	if raw == "" || len(raw) > maxReturnToLen {
		return fallback
	}
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return fallback
	}
	if strings.ContainsAny(raw, `\?#`) {
		return fallback
	}
	for _, r := range raw {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return fallback
		}
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Opaque != "" || u.User != nil {
		return fallback
	}

	// u.Path is percent-decoded; re-check what the browser will resolve.
	if strings.HasPrefix(u.Path, "//") || strings.Contains(u.Path, `\`) {
		return fallback
	}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg == "." || seg == ".." {
			return fallback
		}
	}

	if len(prefixes) > 0 && !hasAllowedPrefix(u.Path, prefixes) {
		return fallback
	}

	return raw
}

func hasAllowedPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		prefix = strings.TrimRight(prefix, "/")
		if prefix == "" {
			return true
		}
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
