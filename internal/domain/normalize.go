package domain

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// domainPattern accepts a label of alphanumerics and hyphens (not starting or
// ending in a hyphen) followed by a 2+ letter TLD or an xn-- punycode label.
// The same pattern is enforced everywhere a domain crosses a boundary.
var domainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,61}[a-zA-Z0-9]?\.([a-zA-Z]{2,}|xn--[a-zA-Z0-9-]+)$`)

// Valid reports whether domain matches the accepted domain syntax.
func Valid(domain string) bool {
	return domainPattern.MatchString(domain)
}

// Normalize lowercases a hostname or URL and strips any scheme, path and
// leading "www." prefix. "https://www.Example.com/path" and
// "http://example.com" both normalize to "example.com". An empty string is
// returned when no hostname can be extracted.
func Normalize(raw string) string {
	host := raw
	if strings.Contains(raw, "/") || strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return ""
		}
		host = u.Hostname()
		if host == "" {
			// "example.com/path" parses with an empty host; retry with a scheme.
			u, err = url.Parse("http://" + raw)
			if err != nil {
				return ""
			}
			host = u.Hostname()
		}
	}
	host = strings.ToLower(strings.TrimSpace(host))
	host = strings.TrimPrefix(host, "www.")
	return host
}

// Registrable reduces a hostname to its registrable domain (eTLD+1), so
// "edition.cnn.com" resolves ratings recorded for "cnn.com". Hosts the
// public suffix list cannot reduce are returned normalized as-is.
func Registrable(host string) string {
	host = Normalize(host)
	if host == "" {
		return ""
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return registrable
}
