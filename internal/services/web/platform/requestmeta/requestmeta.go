// Package requestmeta resolves request scheme and origin metadata.
package requestmeta

import (
	"net/http"
	"net/url"
	"strings"
)

// SchemePolicy controls how the request scheme is resolved.
//
// X-Forwarded-Proto is only consulted when TrustForwardedProto is set, which
// should be the case only behind a proxy that overwrites the header.
type SchemePolicy struct {
	TrustForwardedProto bool
}

// origin is a normalized scheme/host/port triple.
type origin struct {
	scheme string
	host   string
	port   string
}

func (o origin) valid() bool {
	return o.scheme != "" && o.host != "" && o.port != ""
}

// IsHTTPS reports whether a request should be treated as HTTPS.
func IsHTTPS(r *http.Request) bool {
	return IsHTTPSWithPolicy(r, SchemePolicy{})
}

// IsHTTPSWithPolicy reports whether a request should be treated as HTTPS
// under policy.
func IsHTTPSWithPolicy(r *http.Request, policy SchemePolicy) bool {
	return Scheme(r, policy) == "https"
}

// Scheme returns "http" or "https" for r, or "" for a nil request.
func Scheme(r *http.Request, policy SchemePolicy) string {
	if r == nil {
		return ""
	}
	if policy.TrustForwardedProto {
		if forwarded := normalizeScheme(r.Header.Get("X-Forwarded-Proto")); forwarded != "" {
			return forwarded
		}
	}
	if r.URL != nil {
		if scheme := normalizeScheme(r.URL.Scheme); scheme != "" {
			return scheme
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// HasSameOriginProof reports whether Origin or Referer proves same-origin.
func HasSameOriginProof(r *http.Request) bool {
	return HasSameOriginProofWithPolicy(r, SchemePolicy{})
}

// HasSameOriginProofWithPolicy reports whether the Origin header, or the
// Referer when Origin is absent, names the same scheme, host and port as the
// request itself.
func HasSameOriginProofWithPolicy(r *http.Request, policy SchemePolicy) bool {
	if r == nil {
		return false
	}
	self := requestOrigin(r, policy)
	if !self.valid() {
		return false
	}
	claimed := strings.TrimSpace(r.Header.Get("Origin"))
	if claimed == "" {
		claimed = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if claimed == "" {
		return false
	}
	other, ok := parseOrigin(claimed)
	if !ok {
		return false
	}
	return other == self
}

func requestOrigin(r *http.Request, policy SchemePolicy) origin {
	scheme := Scheme(r, policy)
	rawHost := r.Host
	if strings.TrimSpace(rawHost) == "" && r.URL != nil {
		rawHost = r.URL.Host
	}
	host, port := splitHost(rawHost)
	if port == "" {
		port = defaultPort(scheme)
	}
	return origin{scheme: scheme, host: host, port: port}
}

func parseOrigin(raw string) (origin, bool) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return origin{}, false
	}
	o := origin{
		scheme: normalizeScheme(parsed.Scheme),
		host:   strings.ToLower(parsed.Hostname()),
		port:   parsed.Port(),
	}
	if o.port == "" {
		o.port = defaultPort(o.scheme)
	}
	return o, o.valid()
}

func splitHost(rawHost string) (string, string) {
	parsed, err := url.Parse("//" + strings.TrimSpace(rawHost))
	if err != nil {
		return "", ""
	}
	return strings.ToLower(parsed.Hostname()), parsed.Port()
}

func normalizeScheme(raw string) string {
	switch scheme := strings.ToLower(strings.TrimSpace(raw)); scheme {
	case "http", "https":
		return scheme
	default:
		return ""
	}
}

func defaultPort(scheme string) string {
	switch scheme {
	case "https":
		return "443"
	case "http":
		return "80"
	default:
		return ""
	}
}
