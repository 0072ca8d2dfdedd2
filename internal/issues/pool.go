package issues

import (
	"strings"
	"sync"
)

var stringBuilderPool = sync.Pool{
	New: func() any {
		return new(strings.Builder)
	},
}

// getStringBuilder retrieves a builder from the pool and resets it.
func getStringBuilder() *strings.Builder {
	sb := stringBuilderPool.Get().(*strings.Builder)
	sb.Reset()
	return sb
}

// putStringBuilder returns a builder to the pool.
func putStringBuilder(sb *strings.Builder) {
	if sb == nil {
		return
	}
	stringBuilderPool.Put(sb)
}

// Messages beautifies every issue, preserving order and count.
func Messages(list []Issue) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, len(list))
	for n, issue := range list {
		out[n] = issue.Beautify()
	}
	return out
}
