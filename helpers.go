package blogcrm

import (
	"net/url"
	"strings"
)

// Slugify converts a title or name to a URL-safe slug: lowercase a-z0-9
// separated by single hyphens, with no leading or trailing hyphen.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// optional returns nil for blank strings and a pointer to the trimmed value
// otherwise.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// deref returns the pointed-to string or "".
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// AdminURL builds the admin panel location for a state.
func AdminURL(s AdminState) string {
	q := url.Values{}
	q.Set("tab", string(s.Tab))
	if s.Editing != "" {
		q.Set("edit", s.Editing)
	}
	return "/admin/?" + q.Encode()
}
