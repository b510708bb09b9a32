// Package fetch talks to the outside world: status URL parsing, FxTwitter API
// access and image byte downloads, with an optional sqlite cache in front of
// the API.
package fetch

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Hosts we recognize as pointing to a status. Mirrors and front-ends resolve
// through the same API.
var supportedDomains = map[string]bool{
	"x.com":              true,
	"twitter.com":        true,
	"mobile.twitter.com": true,
	"fxtwitter.com":      true,
	"fixupx.com":         true,
	"vxtwitter.com":      true,
	"nitter.net":         true,
}

// matches /user/status/ID and /i/statuses/ID
var statusPattern = regexp.MustCompile(`/(?:\w+)/status(?:es)?/(\d+)`)

// ParseStatusURL extracts screen name and status id from an X/Twitter URL.
// Scheme is optional, "www." prefix is ignored.
func ParseStatusURL(raw string) (screenName, id string, err error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("unable to parse URL %q: %w", raw, err)
	}

	domain := strings.ToLower(u.Hostname())
	if domain == "" {
		return "", "", fmt.Errorf("unable to parse URL %q: no host", raw)
	}
	domain = strings.TrimPrefix(domain, "www.")

	if !supportedDomains[domain] {
		return "", "", fmt.Errorf("unsupported domain %q", domain)
	}

	m := statusPattern.FindStringSubmatch(u.Path)
	if m == nil {
		return "", "", fmt.Errorf("no status id found in URL %q", raw)
	}
	id = m[1]

	if parts := strings.Split(strings.Trim(u.Path, "/"), "/"); len(parts) > 0 && parts[0] != "" {
		screenName = parts[0]
	} else {
		screenName = "i"
	}
	return screenName, id, nil
}
