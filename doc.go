/*
Package espalier is a multi-step configuration flow engine: it guides a
caller through the forms needed to set up an integration domain and commits
the collected data as durable configuration entries.

It separates the flow logic (handlers), the orchestration (manager) and the
persistence (entry stores) so the same flows can be driven from a CLI, an
HTTP server or an agent transport.

# Concept

Each integration domain registers a handler factory. Starting a flow
instantiates a handler, and every subsequent step is dispatched to that same
instance, so handlers accumulate state across steps naturally. A step
returns one of three envelopes: a form (ask the caller for more input), an
abort (end without result) or a created entry (commit the collected data).
Committed entries are persisted as a single document through a pluggable
store, debounced so bursts of flows produce one write.

# Key Features

  - Stateful multi-step flows: one handler instance per flow, reused until
    the flow finishes or aborts.
  - Pluggable persistence: file (JSON/YAML), Redis, or in-memory stores.
  - Debounced saves: bursts of committed entries collapse into one write.
  - Hexagonal architecture: core logic is decoupled from adapters
    (storage, scheduling, transports).

# Usage

Register handlers, load prior entries, then drive flows with Configure.

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/espalier"
		"github.com/aretw0/espalier/pkg/domain"
		"github.com/aretw0/espalier/pkg/flow"
		"github.com/aretw0/espalier/pkg/ports"
		"github.com/aretw0/espalier/pkg/schema"
	)

	type hubHandler struct {
		flow.Handler
	}

	func newHubHandler() ports.FlowHandler {
		h := &hubHandler{}
		h.SetVersion(1)
		h.Handle(flow.StepInit, h.stepInit)
		return h
	}

	func (h *hubHandler) stepInit(ctx context.Context, input any) (domain.Result, error) {
		if input == nil {
			return h.ShowForm(flow.Form{
				Title:      "Hub",
				StepID:     flow.StepInit,
				DataSchema: schema.Schema{"host": schema.String()},
			}), nil
		}
		return h.CreateEntry("Hub", input), nil
	}

	func main() {
		eng, err := espalier.New("")
		if err != nil {
			log.Fatal(err)
		}
		eng.Register("hub", newHubHandler)

		ctx := context.Background()
		if err := eng.Load(ctx); err != nil {
			log.Fatal(err)
		}

		// First call renders the form.
		form, _ := eng.Configure(ctx, "hub", "", "", nil)

		// Second call submits it and commits the entry.
		result, _ := eng.Configure(ctx, "hub", form.FlowID, form.StepID,
			map[string]any{"host": "hub.local"})
		fmt.Println(result.Type)

		// Persist before shutdown.
		if err := eng.Flush(ctx); err != nil {
			log.Fatal(err)
		}
	}
*/
package espalier
