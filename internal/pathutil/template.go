package pathutil

import "strings"

// CanonicalTemplate rewrites a router-specific route template into the
// canonical OpenAPI form used as the schema lookup key:
//
//   - ":name" and "*name" segments (gin, echo) become "{name}"
//   - "{name:pattern}" (gorilla/mux, chi) becomes "{name}"
//   - "{name...}" (net/http wildcard) becomes "{name}"
//   - "{$}" (net/http exact-match marker) is dropped
//   - a trailing slash is stripped, except for the root "/"
//
// Templates already in canonical form are returned unchanged. An unbalanced
// brace is copied through verbatim.
func CanonicalTemplate(template string) string {
	if template == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		c := template[i]
		switch {
		case c == '{':
			end := closingBrace(template, i)
			if end < 0 {
				b.WriteString(template[i:])
				i = len(template)
				continue
			}
			if name := braceName(template[i+1 : end]); name != "$" {
				b.WriteByte('{')
				b.WriteString(name)
				b.WriteByte('}')
			}
			i = end + 1
		case (c == ':' || c == '*') && (i == 0 || template[i-1] == '/') && i+1 < len(template) && template[i+1] != '/':
			end := strings.IndexByte(template[i:], '/')
			if end < 0 {
				end = len(template)
			} else {
				end += i
			}
			b.WriteByte('{')
			b.WriteString(template[i+1 : end])
			b.WriteByte('}')
			i = end
		default:
			b.WriteByte(c)
			i++
		}
	}

	return TrimTrailingSlash(b.String())
}

// TrimTrailingSlash removes a single trailing slash. The root path "/" is
// returned unchanged.
func TrimTrailingSlash(path string) string {
	if len(path) > 1 && path[len(path)-1] == '/' {
		return path[:len(path)-1]
	}
	return path
}

// closingBrace returns the index of the brace closing the one at start,
// honouring nested braces inside regex patterns such as {id:[0-9]{3}}.
// Returns -1 when the braces are unbalanced.
func closingBrace(s string, start int) int {
	level := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			level++
		case '}':
			if level--; level == 0 {
				return i
			}
		}
	}
	return -1
}

// braceName extracts the variable name from the inside of a brace pair,
// dropping any ":pattern" suffix and the "..." wildcard marker.
func braceName(inner string) string {
	if idx := strings.IndexByte(inner, ':'); idx >= 0 {
		inner = inner[:idx]
	}
	return strings.TrimSuffix(inner, "...")
}
