package endpoints

import (
	"net/url"
	"strings"
)

// DefaultBaseURL is the backend origin used outside production when no base
// URL is configured.
const DefaultBaseURL = "http://localhost:8000"

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
	"ws":    "80",
	"wss":   "443",
}

// NormalizeBaseURL reduces raw to its origin (scheme://host[:port]) when it
// is an absolute URL. Anything else comes back with its trailing slashes
// stripped.
func NormalizeBaseURL(raw string) string {
	if origin, ok := originOf(raw); ok {
		return origin
	}
	return strings.TrimRight(raw, "/")
}

// ResolveBaseURL picks the base URL for the endpoint table. Production
// always yields "" so requests stay relative to the serving origin.
func ResolveBaseURL(production bool, raw string) string {
	if production {
		return ""
	}
	if raw == "" {
		raw = DefaultBaseURL
	}
	return NormalizeBaseURL(raw)
}

func originOf(raw string) (string, bool) {
	raw = strings.TrimFunc(raw, isC0OrSpace)

	// Path, query and fragment are discarded anyway, so a bad escape in
	// them must not hide the origin.
	u, err := url.Parse(raw)
	if err != nil {
		u, err = url.Parse(authority(raw))
	}
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", false
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port := u.Port(); port != "" && defaultPorts[scheme] != port {
		host += ":" + port
	}
	return scheme + "://" + host, true
}

// authority cuts raw down to scheme://authority.
func authority(raw string) string {
	i := strings.Index(raw, "://")
	if i < 0 {
		return raw
	}
	rest := raw[i+len("://"):]
	if j := strings.IndexAny(rest, "/?#"); j >= 0 {
		rest = rest[:j]
	}
	return raw[:i+len("://")] + rest
}

func isC0OrSpace(r rune) bool {
	return r <= ' '
}
