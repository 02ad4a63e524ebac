package tui_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/espalier/internal/presentation/tui"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/schema"
)

func TestFormMarkdown(t *testing.T) {
	md := tui.FormMarkdown(domain.Result{
		Type:       domain.ResultTypeForm,
		Title:      "Connect Hub",
		StepID:     "auth",
		TotalSteps: 2,
		DataSchema: schema.Schema{
			"token": schema.Secret(),
			"host":  schema.String(),
		},
		Errors: map[string]string{"token": "required"},
	})

	assert.Contains(t, md, "# Connect Hub")
	assert.Contains(t, md, "Step `auth` of 2")
	assert.Contains(t, md, "- `token`: required")
	// Fields render sorted.
	assert.Less(t, strings.Index(md, "| host |"), strings.Index(md, "| token |"))
	assert.Contains(t, md, "| token | secret |")
}

func TestEntryMarkdown(t *testing.T) {
	md := tui.EntryMarkdown(domain.ConfigEntry{
		ID:     "flow-1",
		Domain: "hub",
		Title:  "Main Hub",
		Source: domain.SourceDiscovery,
	})

	assert.Contains(t, md, "## Main Hub configured")
	assert.Contains(t, md, "Entry ID: `flow-1`")
	assert.Contains(t, md, "Source: `discovery`")
}

func TestAbortMarkdown(t *testing.T) {
	md := tui.AbortMarkdown(domain.Result{Reason: "already_configured"})
	assert.Contains(t, md, "Reason: `already_configured`")
}
