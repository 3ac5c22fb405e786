package gopaginate

import (
	"net/http"
	"net/url"
	"strings"
)

// RequestURL returns the absolute URL of r. The scheme is taken from
// X-Forwarded-Proto when present, otherwise from the TLS state.
func RequestURL(r *http.Request) *url.URL {
	u := *r.URL

	u.Scheme = "http"
	if r.TLS != nil {
		u.Scheme = "https"
	}
	if proto, _, _ := strings.Cut(r.Header.Get("X-Forwarded-Proto"), ","); strings.TrimSpace(proto) != "" {
		u.Scheme = strings.ToLower(strings.TrimSpace(proto))
	}

	if u.Host == "" {
		u.Host = r.Host
	}

	return &u
}

// ParseRequest reads a Query from r, keeping its absolute URL as Query.Path.
func ParseRequest(r *http.Request) Query {
	return ParseQuery(RequestURL(r))
}
