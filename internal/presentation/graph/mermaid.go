// Package graph renders the committed configuration as a Mermaid diagram:
// one node per domain, one leaf per entry.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
)

// GenerateMermaid produces Mermaid flowchart syntax from the entry list.
// Domains render as circles, entries as rectangles; discovery-sourced
// entries connect with a dotted arrow so provenance is visible at a glance.
func GenerateMermaid(entries []domain.ConfigEntry) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	seen := make(map[string]bool)
	for _, entry := range entries {
		safeDomain := sanitizeMermaidID(entry.Domain)
		if !seen[entry.Domain] {
			seen[entry.Domain] = true
			sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", safeDomain, entry.Domain))
		}

		safeEntry := sanitizeMermaidID(entry.ID)
		label := entry.Title
		if label == "" {
			label = entry.ID
		}
		// Escape double quotes for Mermaid labels
		label = strings.ReplaceAll(label, "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", safeEntry, label))

		arrow := "-->"
		if entry.Source == domain.SourceDiscovery {
			arrow = "-.->"
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeDomain, arrow, safeEntry))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
