package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/flow"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/schema"
)

// RegisterDemoHandlers wires the built-in demo domains so the binary is
// usable without writing any Go. Real deployments register their own
// handlers through the library API instead.
func RegisterDemoHandlers(engine *espalier.Engine) {
	engine.Register("demo_hub", newDemoHubHandler)
	engine.Register("demo_discovery", newDemoDiscoveryHandler)
}

// demoHubHandler walks through a two-step hub setup: connection details
// first, credentials second.
type demoHubHandler struct {
	flow.Handler
	host string
	port int
}

func newDemoHubHandler() ports.FlowHandler {
	h := &demoHubHandler{}
	h.SetVersion(1)
	h.Handle(flow.StepInit, h.stepInit)
	h.Handle("credentials", h.stepCredentials)
	return h
}

func (h *demoHubHandler) stepInit(ctx context.Context, input any) (domain.Result, error) {
	if input == nil {
		return h.ShowForm(flow.Form{
			Title:       "Demo Hub",
			StepID:      flow.StepInit,
			Description: "Where is the hub running?",
			DataSchema: schema.Schema{
				"host": schema.String(),
				"port": schema.Int(),
			},
			TotalSteps: 2,
		}), nil
	}

	var conn struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	}
	if err := flow.DecodeInput(input, &conn); err != nil {
		return domain.Result{}, fmt.Errorf("invalid connection input: %w", err)
	}
	h.host = conn.Host
	h.port = conn.Port

	return h.ShowForm(flow.Form{
		Title:       "Demo Hub",
		StepID:      "credentials",
		Description: "Enter the access token shown on the hub display.",
		DataSchema: schema.Schema{
			"token": schema.Secret(),
		},
		TotalSteps: 2,
	}), nil
}

func (h *demoHubHandler) stepCredentials(ctx context.Context, input any) (domain.Result, error) {
	var creds struct {
		Token string `mapstructure:"token"`
	}
	if err := flow.DecodeInput(input, &creds); err != nil {
		return domain.Result{}, fmt.Errorf("invalid credentials input: %w", err)
	}
	if creds.Token == "" {
		return h.ShowForm(flow.Form{
			Title:  "Demo Hub",
			StepID: "credentials",
			Errors: map[string]string{"token": "token must not be empty"},
			DataSchema: schema.Schema{
				"token": schema.Secret(),
			},
			TotalSteps: 2,
		}), nil
	}

	return h.CreateEntry(fmt.Sprintf("Hub at %s:%d", h.host, h.port), map[string]any{
		"host":  h.host,
		"port":  h.port,
		"token": creds.Token,
	}), nil
}

// demoDiscoveryHandler simulates a discovered device: a single confirmation
// step, recorded with the discovery source.
type demoDiscoveryHandler struct {
	flow.Handler
}

func newDemoDiscoveryHandler() ports.FlowHandler {
	h := &demoDiscoveryHandler{}
	h.SetSource(domain.SourceDiscovery)
	h.Handle(flow.StepInit, h.stepInit)
	return h
}

func (h *demoDiscoveryHandler) stepInit(ctx context.Context, input any) (domain.Result, error) {
	if input == nil {
		return h.ShowForm(flow.Form{
			Title:       "Discovered Device",
			StepID:      flow.StepInit,
			Description: "A device was found on the network. Add it?",
			DataSchema: schema.Schema{
				"confirm": schema.Bool(),
			},
			TotalSteps: 1,
		}), nil
	}

	var answer struct {
		Confirm bool `mapstructure:"confirm"`
	}
	if err := flow.DecodeInput(input, &answer); err != nil {
		return domain.Result{}, fmt.Errorf("invalid confirmation input: %w", err)
	}
	if !answer.Confirm {
		return h.Abort("not_confirmed"), nil
	}

	return h.CreateEntry("Discovered Device", map[string]any{
		"model": "demo-device-1",
	}), nil
}
