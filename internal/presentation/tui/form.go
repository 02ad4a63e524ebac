package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
)

// FormMarkdown turns a form envelope into markdown suitable for glamour.
func FormMarkdown(result domain.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", result.Title)
	if result.TotalSteps > 0 {
		fmt.Fprintf(&b, "*Step `%s` of %d*\n\n", result.StepID, result.TotalSteps)
	} else {
		fmt.Fprintf(&b, "*Step `%s`*\n\n", result.StepID)
	}
	if result.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", result.Description)
	}

	if len(result.Errors) > 0 {
		b.WriteString("**Please correct the following:**\n\n")
		for _, field := range sortedKeys(result.Errors) {
			fmt.Fprintf(&b, "- `%s`: %s\n", field, result.Errors[field])
		}
		b.WriteString("\n")
	}

	if len(result.DataSchema) > 0 {
		b.WriteString("| Field | Type |\n|---|---|\n")
		fields := make([]string, 0, len(result.DataSchema))
		for field := range result.DataSchema {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(&b, "| %s | %s |\n", field, result.DataSchema[field].Name())
		}
	}

	return b.String()
}

// EntryMarkdown summarizes a committed entry.
func EntryMarkdown(entry domain.ConfigEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s configured\n\n", entry.Title)
	fmt.Fprintf(&b, "- Domain: `%s`\n", entry.Domain)
	fmt.Fprintf(&b, "- Entry ID: `%s`\n", entry.ID)
	fmt.Fprintf(&b, "- Source: `%s`\n", entry.Source)
	return b.String()
}

// AbortMarkdown summarizes an aborted flow.
func AbortMarkdown(result domain.Result) string {
	return fmt.Sprintf("## Flow aborted\n\nReason: `%s`\n", result.Reason)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
