package locator

import (
	"net/url"
	"regexp"
	"strings"
)

// Conversation refs look like "/c/<id>", possibly nested under a project
// prefix ("/g/<project>/c/<id>") and possibly carrying a query string.
var idPattern = regexp.MustCompile(`(?:^|/)c/([A-Za-z0-9][A-Za-z0-9_-]*)$`)

// Normalize reduces a ref to its bare path: origin, query and fragment
// stripped, trailing separators trimmed. It never fails; unparseable input
// degrades to naive string slicing. Idempotent.
func Normalize(ref string) string {
	path := ref
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		path = u.Path
	} else {
		if i := strings.Index(path, "://"); i >= 0 {
			rest := path[i+3:]
			if j := strings.Index(rest, "/"); j >= 0 {
				path = rest[j:]
			} else {
				path = "/"
			}
		}
		if i := strings.IndexAny(path, "?#"); i >= 0 {
			path = path[:i]
		}
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}

// ExtractID pulls the identifier segment out of a ref. ok is false when the
// ref does not point at a deletable row (no identifier segment).
func ExtractID(ref string) (string, bool) {
	m := idPattern.FindStringSubmatch(Normalize(ref))
	if m == nil {
		return "", false
	}
	return m[1], true
}
