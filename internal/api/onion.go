package api

import "strings"

// IsOnionURL reports whether a URL's authority is a Tor hidden
// service. The check splits on "/" and inspects the path segment at
// index 2, so malformed or relative URLs come back as non-onion rather
// than erroring.
func IsOnionURL(url string) bool {
	parts := strings.Split(url, "/")
	if len(parts) < 3 {
		return false
	}
	authority := parts[2]
	labels := strings.Split(authority, ".")
	return labels[len(labels)-1] == "onion"
}
