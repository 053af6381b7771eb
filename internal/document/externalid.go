package document

import (
	"net/url"
	"strings"
)

const (
	externalIDDelimiter = "-"

	// Type tags prefixing external ids.
	ExternalTypeCheck = "check"
)

// ExternalID builds the deterministic identifier a document is registered
// under: <type>-<domain>-<unique id>, with every dot replaced by the
// delimiter because the service rejects dots in external ids. The same
// (type, domain, id) triple always yields the same token, so a re-submitted
// or re-queried document keeps its identity.
func ExternalID(typeTag, domain, uniqueID string) string {
	id := typeTag + externalIDDelimiter + domain + externalIDDelimiter + uniqueID
	return strings.ReplaceAll(id, ".", externalIDDelimiter)
}

// DomainFromURL extracts the bare host of a URL, without port. It accepts
// plain hostnames too, so a configured domain passes through unchanged.
func DomainFromURL(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	if host, _, ok := strings.Cut(raw, ":"); ok {
		return host
	}
	return raw
}
