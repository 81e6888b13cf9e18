package form

import (
	"strings"
)

const mapsEmbedBase = "https://www.google.com/maps"

// MapSearchURL returns the embeddable map URL for a campus search, or ""
// when query is empty.
func MapSearchURL(query string) string {
	if query == "" {
		return ""
	}
	return mapsEmbedBase + "?q=" + encodeComponent(query+" college campus") + "&output=embed"
}

// encodeComponent percent-encodes s the way browsers encode a URI
// component: everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ) is escaped.
func encodeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
