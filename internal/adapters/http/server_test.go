package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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

func newTestEngine(t *testing.T) *espalier.Engine {
	t.Helper()
	eng, err := espalier.New("",
		espalier.WithStore(memory.NewStore()),
		espalier.WithScheduler(schedule.NewManual()),
	)
	require.NoError(t, err)
	eng.Register("hub", func() ports.FlowHandler {
		h := &struct{ flow.Handler }{}
		h.Handle(flow.StepInit, func(ctx context.Context, input any) (domain.Result, error) {
			if input == nil {
				return h.ShowForm(flow.Form{
					Title:      "Hub",
					StepID:     flow.StepInit,
					DataSchema: schema.Schema{"host": schema.String()},
				}), nil
			}
			return h.CreateEntry("Hub", input), nil
		})
		return h
	})
	return eng
}

func TestGetHealth(t *testing.T) {
	handler := NewHandler(newTestEngine(t))

	req, _ := http.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	handler := NewHandler(newTestEngine(t))

	req, _ := http.NewRequest("GET", "/info", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "espalier-http", resp["app"])
	assert.NotEmpty(t, resp["version"])
	assert.Equal(t, "0.1.0", resp["api_version"])
}

func TestFlowOverHTTP(t *testing.T) {
	handler := NewHandler(newTestEngine(t))

	// Start the flow: expect a form.
	body := strings.NewReader(`{"domain": "hub"}`)
	req, _ := http.NewRequest("POST", "/flows", body)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var form domain.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &form))
	assert.Equal(t, domain.ResultTypeForm, form.Type)
	require.NotEmpty(t, form.FlowID)

	// Submit it: expect a committed entry.
	submit := `{"domain": "hub", "flow_id": "` + form.FlowID + `", "step_id": "init", "input": {"host": "hub.local"}}`
	req, _ = http.NewRequest("POST", "/flows", strings.NewReader(submit))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var result domain.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, domain.ResultTypeCreateEntry, result.Type)

	// The entry shows up in the listings.
	req, _ = http.NewRequest("GET", "/domains", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var domains []string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &domains))
	assert.Equal(t, []string{"hub"}, domains)

	req, _ = http.NewRequest("GET", "/domains/hub/entries", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var entries []domain.ConfigEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, form.FlowID, entries[0].ID)
	assert.Equal(t, "Hub", entries[0].Title)
}

func TestPostFlowsErrors(t *testing.T) {
	handler := NewHandler(newTestEngine(t))

	tests := []struct {
		name string
		body string
		code int
	}{
		{"Unknown Domain", `{"domain": "ghost"}`, http.StatusNotFound},
		{"Unknown Step", `{"domain": "hub", "step_id": "bogus"}`, http.StatusBadRequest},
		{"Missing Domain", `{}`, http.StatusBadRequest},
		{"Malformed Body", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("POST", "/flows", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			assert.Equal(t, tt.code, rr.Code)
		})
	}
}

func TestGetGraph(t *testing.T) {
	eng := newTestEngine(t)
	handler := NewHandler(eng)

	form, err := eng.Configure(context.Background(), "hub", "", "", nil)
	require.NoError(t, err)
	_, err = eng.Configure(context.Background(), "hub", form.FlowID, "init", map[string]any{"host": "h"})
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/graph", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "graph TD")
	assert.Contains(t, rr.Body.String(), `hub(("hub"))`)
}
