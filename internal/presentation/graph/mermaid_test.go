package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/espalier/internal/presentation/graph"
	"github.com/aretw0/espalier/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		entries  []domain.ConfigEntry
		contains []string
	}{
		{
			name: "Domain And Entry Shapes",
			entries: []domain.ConfigEntry{
				{ID: "abc123", Domain: "hub", Title: "Main Hub", Source: domain.SourceUser},
			},
			contains: []string{
				`hub(("hub"))`,
				`abc123["Main Hub"]`,
				"hub --> abc123",
			},
		},
		{
			name: "Discovery Uses Dotted Arrow",
			entries: []domain.ConfigEntry{
				{ID: "def456", Domain: "cast", Title: "Living Room", Source: domain.SourceDiscovery},
			},
			contains: []string{
				"cast -.-> def456",
			},
		},
		{
			name: "Domain Node Emitted Once",
			entries: []domain.ConfigEntry{
				{ID: "e1", Domain: "hub", Title: "One", Source: domain.SourceUser},
				{ID: "e2", Domain: "hub", Title: "Two", Source: domain.SourceUser},
			},
			contains: []string{
				"hub --> e1",
				"hub --> e2",
			},
		},
		{
			name: "ID Sanitization And Label Escaping",
			entries: []domain.ConfigEntry{
				{ID: "a-b.c", Domain: "my-domain", Title: `He said "hi"`, Source: domain.SourceUser},
			},
			contains: []string{
				`my_domain(("my-domain"))`,
				`a_b_c["He said 'hi'"]`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.entries)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
		})
	}

	t.Run("Domain Node Count", func(t *testing.T) {
		got := graph.GenerateMermaid([]domain.ConfigEntry{
			{ID: "e1", Domain: "hub", Source: domain.SourceUser},
			{ID: "e2", Domain: "hub", Source: domain.SourceUser},
		})
		if n := strings.Count(got, `hub(("hub"))`); n != 1 {
			t.Errorf("domain node emitted %d times, want 1", n)
		}
	})
}
