// Package kurl implements the kernel's scheme:reference addressing
// scheme (spec.md §3/§4.1).
package kurl

import (
	"strings"
	"unicode/utf8"

	"github.com/vvlevchenko/mini32k/kernel/errno"
)

// URL is a parsed scheme:reference address, e.g. "disk:/0/boot" or
// "debug:". A URL with an empty scheme addresses the root namespace.
type URL struct {
	scheme    string
	reference string
}

// Parse splits s on the first ':'. If no ':' is present, the scheme is
// empty and the whole input becomes the reference. Parse fails with
// EINVAL only when s is not valid UTF-8, since it cannot then be
// represented faithfully.
func Parse(s string) (URL, error) {
	if !utf8.ValidString(s) {
		return URL{}, errno.New(errno.EINVAL, "url.parse")
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return URL{scheme: s[:i], reference: s[i+1:]}, nil
	}
	return URL{scheme: "", reference: s}, nil
}

// New builds a URL directly from its parts, bypassing parsing.
func New(scheme, reference string) URL {
	return URL{scheme: scheme, reference: reference}
}

// Scheme returns the scheme component (may be empty).
func (u URL) Scheme() string { return u.scheme }

// Reference returns the reference component, slashes intact.
func (u URL) Reference() string { return u.reference }

// String reconstructs "scheme:reference".
func (u URL) String() string {
	return u.scheme + ":" + u.reference
}

// Equal reports byte-exact equality between two URLs.
func (u URL) Equal(other URL) bool {
	return u.scheme == other.scheme && u.reference == other.reference
}
