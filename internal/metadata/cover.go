// file: internal/metadata/cover.go
// version: 2.0.0
// guid: 4efaa7b8-e29a-47f3-84f7-39b46bfc9a01

package metadata

import (
	"fmt"
	"strings"
)

// Rewrite replaces one low-resolution marker in a cover URL.
type Rewrite struct {
	From string
	To   string
}

// DefaultRewrites covers both known cleanups of Google Books thumbnail URLs:
// bumping the zoom level down to the canonical one and dropping the page-curl
// decoration.
var DefaultRewrites = []string{"zoom=5=>zoom=1", "&edge=curl=>"}

// ParseRewrites turns "from=>to" specs into rewrites. An empty "to" strips
// the marker.
func ParseRewrites(specs []string) ([]Rewrite, error) {
	rewrites := make([]Rewrite, 0, len(specs))
	for _, spec := range specs {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		from, to, ok := strings.Cut(spec, "=>")
		if !ok {
			return nil, fmt.Errorf("invalid cover rewrite %q: expected from=>to", spec)
		}
		if from == "" {
			return nil, fmt.Errorf("invalid cover rewrite %q: empty marker", spec)
		}
		if strings.Contains(to, "=>") {
			return nil, fmt.Errorf("invalid cover rewrite %q: one rewrite per entry", spec)
		}
		rewrites = append(rewrites, Rewrite{From: from, To: to})
	}
	return rewrites, nil
}

// NormalizeCoverURL forces an https scheme and applies each rewrite once.
func NormalizeCoverURL(raw string, rewrites []Rewrite) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http:") {
		u = "https:" + strings.TrimPrefix(u, "http:")
	}
	for _, rw := range rewrites {
		u = strings.Replace(u, rw.From, rw.To, 1)
	}
	return u
}
