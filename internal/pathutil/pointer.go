package pathutil

import "strings"

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer joins segments into an RFC 6901 JSON pointer, escaping "~" and "/"
// in each segment. No segments yield the empty pointer "".
func Pointer(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	size := len(segments)
	for _, seg := range segments {
		size += len(seg)
	}

	var b strings.Builder
	b.Grow(size)
	for _, seg := range segments {
		b.WriteByte('/')
		if strings.ContainsAny(seg, "~/") {
			pointerEscaper.WriteString(&b, seg) //nolint:errcheck // strings.Builder never fails
			continue
		}
		b.WriteString(seg)
	}
	return b.String()
}
