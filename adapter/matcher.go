package adapter

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/erraggy/oasguard/internal/pathutil"
)

// routeMatcher matches a concrete request path against one canonical template.
type routeMatcher struct {
	template string
	regex    *regexp.Regexp
	names    []string
	// literals counts segments without placeholders; more literals = more specific
	literals int
}

func newTemplateMatcher(template string) (*routeMatcher, error) {
	if template == "" || template[0] != '/' {
		return nil, fmt.Errorf("route template %q must start with /", template)
	}

	m := &routeMatcher{template: template}
	seen := make(map[string]bool)

	var pattern strings.Builder
	pattern.WriteByte('^')
	for _, segment := range strings.Split(template[1:], "/") {
		pattern.WriteByte('/')
		locs := pathutil.PathParamRegex.FindAllStringSubmatchIndex(segment, -1)
		if len(locs) == 0 {
			pattern.WriteString(regexp.QuoteMeta(segment))
			m.literals++
			continue
		}
		last := 0
		for _, loc := range locs {
			name := segment[loc[2]:loc[3]]
			if seen[name] {
				return nil, fmt.Errorf("duplicate placeholder %q in route template %q", name, template)
			}
			seen[name] = true
			m.names = append(m.names, name)
			pattern.WriteString(regexp.QuoteMeta(segment[last:loc[0]]))
			pattern.WriteString("([^/]+)")
			last = loc[1]
		}
		pattern.WriteString(regexp.QuoteMeta(segment[last:]))
	}
	pattern.WriteByte('$')

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, fmt.Errorf("compiling route template %q: %w", template, err)
	}
	m.regex = re
	return m, nil
}

func (m *routeMatcher) match(path string) (map[string]string, bool) {
	groups := m.regex.FindStringSubmatch(path)
	if groups == nil {
		return nil, false
	}
	params := make(map[string]string, len(m.names))
	for n, name := range m.names {
		params[name] = groups[n+1]
	}
	return params, true
}

// routeMatchers tries templates from most to least specific, so "/pets/mine"
// wins over "/pets/{petId}".
type routeMatchers []*routeMatcher

func newRouteMatcher(templates []string) (routeMatchers, error) {
	out := make(routeMatchers, 0, len(templates))
	for _, t := range templates {
		m, err := newTemplateMatcher(t)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].literals != out[j].literals {
			return out[i].literals > out[j].literals
		}
		if len(out[i].names) != len(out[j].names) {
			return len(out[i].names) < len(out[j].names)
		}
		return out[i].template < out[j].template
	})
	return out, nil
}

// match returns the template and captured values for path.
func (ms routeMatchers) match(path string) (string, map[string]string, bool) {
	for _, m := range ms {
		if params, ok := m.match(path); ok {
			return m.template, params, true
		}
	}
	return "", nil, false
}
