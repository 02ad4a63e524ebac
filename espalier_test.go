package espalier_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/schedule"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/flow"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/schema"
)

type lightHandler struct {
	flow.Handler
	name string
}

func newLightHandler() ports.FlowHandler {
	h := &lightHandler{}
	h.SetVersion(2)
	h.Handle(flow.StepInit, h.stepInit)
	h.Handle("confirm", h.stepConfirm)
	return h
}

func (h *lightHandler) stepInit(ctx context.Context, input any) (domain.Result, error) {
	if input == nil {
		return h.ShowForm(flow.Form{
			Title:      "Light",
			StepID:     flow.StepInit,
			DataSchema: schema.Schema{"name": schema.String()},
			TotalSteps: 2,
		}), nil
	}
	h.name = input.(map[string]any)["name"].(string)
	return h.ShowForm(flow.Form{
		Title:      "Light",
		StepID:     "confirm",
		TotalSteps: 2,
	}), nil
}

func (h *lightHandler) stepConfirm(ctx context.Context, input any) (domain.Result, error) {
	return h.CreateEntry(h.name, map[string]any{"name": h.name}), nil
}

func TestEngineEndToEnd(t *testing.T) {
	store := memory.NewStore()
	sched := schedule.NewManual()
	eng, err := espalier.New("",
		espalier.WithStore(store),
		espalier.WithScheduler(sched),
	)
	require.NoError(t, err)
	eng.Register("light", newLightHandler)

	ctx := context.Background()
	require.NoError(t, eng.Load(ctx))

	form, err := eng.Configure(ctx, "light", "", "", nil)
	require.NoError(t, err)
	require.Equal(t, domain.ResultTypeForm, form.Type)

	next, err := eng.Configure(ctx, "light", form.FlowID, form.StepID, map[string]any{"name": "porch"})
	require.NoError(t, err)
	require.Equal(t, "confirm", next.StepID)

	final, err := eng.Configure(ctx, "light", form.FlowID, next.StepID, nil)
	require.NoError(t, err)
	require.Equal(t, domain.ResultTypeCreateEntry, final.Type)

	assert.Equal(t, []string{"light"}, eng.Domains())
	entries := eng.Entries("light")
	require.Len(t, entries, 1)
	assert.Equal(t, "porch", entries[0].Title)
	assert.Equal(t, 2, entries[0].Version)
	assert.Equal(t, form.FlowID, entries[0].ID)
	assert.Empty(t, eng.Flows())

	// The commit scheduled a save; a fresh engine sees it after Fire.
	sched.Fire()
	fresh, err := espalier.New("", espalier.WithStore(store))
	require.NoError(t, err)
	require.NoError(t, fresh.Load(ctx))
	assert.Equal(t, []string{"light"}, fresh.Domains())
}

func TestEngineDefaultFileStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "entries.json")

	eng, err := espalier.New(path)
	require.NoError(t, err)
	eng.Register("light", newLightHandler)

	ctx := context.Background()
	require.NoError(t, eng.Load(ctx))

	form, err := eng.Configure(ctx, "light", "", "", nil)
	require.NoError(t, err)
	_, err = eng.Configure(ctx, "light", form.FlowID, form.StepID, map[string]any{"name": "hall"})
	require.NoError(t, err)
	_, err = eng.Configure(ctx, "light", form.FlowID, "confirm", nil)
	require.NoError(t, err)

	require.NoError(t, eng.Flush(ctx))

	fresh, err := espalier.New(path)
	require.NoError(t, err)
	require.NoError(t, fresh.Load(ctx))
	entries := fresh.Entries("light")
	require.Len(t, entries, 1)
	assert.Equal(t, "hall", entries[0].Title)
}

func TestEngineUnknownDomain(t *testing.T) {
	eng, err := espalier.New("", espalier.WithStore(memory.NewStore()))
	require.NoError(t, err)

	_, err = eng.Configure(context.Background(), "ghost", "", "", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownHandler)
}
