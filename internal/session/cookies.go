package session

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/atinyakov/receipts/internal/models"
)

// JarCookies exposes the session cookie held by a cookie jar for a set of
// origins (typically the auth API and the web front end).
type JarCookies struct {
	Jar  http.CookieJar
	URLs []*url.URL
}

// NewJarCookies parses rawURLs and returns a JarCookies over jar. Empty
// entries are skipped.
func NewJarCookies(jar http.CookieJar, rawURLs ...string) (*JarCookies, error) {
	jc := &JarCookies{Jar: jar}
	for _, raw := range rawURLs {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil, err
		}
		jc.URLs = append(jc.URLs, u)
	}
	return jc, nil
}

// HasSession reports whether any of the URLs carries a non-empty session cookie.
func (j *JarCookies) HasSession() bool {
	if j.Jar == nil {
		return false
	}
	for _, u := range j.URLs {
		for _, c := range j.Jar.Cookies(u) {
			if c.Name == models.SessionCookieName && c.Value != "" {
				return true
			}
		}
	}
	return false
}

// DeleteSession expires the session cookie for every URL. The path and
// domain chosen by the backend are unknown, so the cookie is expired for
// every directory prefix of each URL's path, both host-only and for every
// dotted parent domain of the URL's host.
func (j *JarCookies) DeleteSession() {
	if j.Jar == nil {
		return
	}
	for _, u := range j.URLs {
		domains := append([]string{""}, cookieDomains(u.Hostname())...)
		var expired []*http.Cookie
		for _, d := range domains {
			for _, p := range cookiePaths(u.Path) {
				expired = append(expired, &http.Cookie{
					Name:   models.SessionCookieName,
					Domain: d,
					Path:   p,
					MaxAge: -1,
				})
			}
		}
		j.Jar.SetCookies(u, expired)
	}
}

// cookieDomains returns host and each of its parents that still contains a
// dot, e.g. "api.example.com", "example.com". IP addresses and single-label
// hosts only ever hold host-only cookies.
func cookieDomains(host string) []string {
	if host == "" || net.ParseIP(host) != nil || !strings.Contains(host, ".") {
		return nil
	}
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	var domains []string
	for d := host; strings.Contains(d, "."); d = d[strings.IndexByte(d, '.')+1:] {
		domains = append(domains, d)
	}
	return domains
}

// cookiePaths returns "/" followed by every directory prefix of p.
func cookiePaths(p string) []string {
	paths := []string{"/"}
	for i := 1; i < len(p); i++ {
		if p[i] == '/' {
			paths = append(paths, p[:i])
		}
	}
	if len(p) > 1 && !strings.HasSuffix(p, "/") {
		paths = append(paths, p)
	}
	return paths
}
