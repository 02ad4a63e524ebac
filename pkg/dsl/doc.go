/*
Package dsl provides a Go DSL for declaring configuration flow handlers.

It lets developers define multi-step flows as a chain of prompt steps
instead of writing a handler struct by hand. Submitted values accumulate in
the flow and are handed to the finishing step, which builds the entry.

Example usage:

	package main

	import (
		"github.com/aretw0/espalier"
		"github.com/aretw0/espalier/pkg/dsl"
		"github.com/aretw0/espalier/pkg/schema"
	)

	func main() {
		hub := dsl.New().Version(1)

		hub.Step("init").
			Title("Hub").
			Description("Where is the hub running?").
			Field("host", schema.String()).
			Field("port", schema.Int()).
			Then("credentials")

		hub.Step("credentials").
			Title("Hub").
			Field("token", schema.Secret()).
			Finish(func(values map[string]any) (string, any) {
				return "Hub", values
			})

		eng, _ := espalier.New("")
		eng.Register("hub", hub.Factory())
		// ... drive the flow with eng.Configure
	}
*/
package dsl
