package render

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// link is a rendered hyperlink. Href is empty for plain text items.
type link struct {
	Text string
	Href string
}

// withScheme prefixes bare hosts such as "linkedin.com/in/ada" with https.
func withScheme(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// pathLabel renders a URL as host plus path without scheme, "www." or a
// trailing slash: "https://www.linkedin.com/in/ada/" becomes
// "linkedin.com/in/ada".
func pathLabel(raw string) string {
	u, err := url.Parse(withScheme(raw))
	if err != nil || u.Hostname() == "" {
		return raw
	}
	label := strings.TrimPrefix(u.Hostname(), "www.") + strings.TrimSuffix(u.EscapedPath(), "/")
	return label
}

// domainLabel renders a URL as its registrable domain ("docs.acme.co.uk"
// becomes "acme.co.uk"). Hosts without a public suffix keep the full
// hostname.
func domainLabel(raw string) string {
	u, err := url.Parse(withScheme(raw))
	if err != nil || u.Hostname() == "" {
		return raw
	}
	host := u.Hostname()
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}

func newLink(raw string, label func(string) string) *link {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &link{Text: label(raw), Href: withScheme(raw)}
}
