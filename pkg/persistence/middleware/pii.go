package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

type piiMiddleware struct {
	next     ports.EntryStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks entry data values whose
// keys match the patterns before they reach the wrapped store. Masking is
// one-way: loads return the masked document.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.EntryStore) ports.EntryStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, entries []domain.ConfigEntry) error {
	// Clone before masking so the in-memory entries the engine serves
	// stay intact.
	cloned := make([]domain.ConfigEntry, len(entries))
	for i, entry := range entries {
		cloned[i] = entry
		if data, ok := entry.Data.(map[string]any); ok {
			copied := deepCopyMap(data)
			maskMap(copied, m.patterns)
			cloned[i].Data = copied
		}
	}

	return m.next.Save(ctx, cloned)
}

func (m *piiMiddleware) Load(ctx context.Context) ([]domain.ConfigEntry, error) {
	return m.next.Load(ctx)
}

// Helpers

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		// Handle nested maps
		if subMap, ok := v.(map[string]any); ok {
			out[k] = deepCopyMap(subMap)
		} else {
			out[k] = v // shallow copy of value
		}
	}
	return out
}

func maskMap(m map[string]any, patterns []*regexp.Regexp) {
	for k, v := range m {
		// Check key against patterns
		for _, p := range patterns {
			if p.MatchString(k) {
				m[k] = "***"
				break
			}
		}

		// Recurse if map
		if subMap, ok := v.(map[string]any); ok {
			maskMap(subMap, patterns)
		}
	}
}
