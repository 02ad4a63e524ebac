/*
Package flow provides the base contract concrete flow handlers embed.

A handler is a stateful object living for the duration of one configuration
flow. Concrete handlers embed Handler, register their steps by name in the
constructor, and keep whatever private state they need between steps as
plain struct fields:

	type accountFlow struct {
	    flow.Handler
	    username string
	}

	func newAccountFlow() ports.FlowHandler {
	    f := &accountFlow{}
	    f.SetVersion(1)
	    f.Handle(flow.StepInit, f.stepInit)
	    f.Handle("credentials", f.stepCredentials)
	    return f
	}

Steps return exactly one result envelope, built with the ShowForm,
CreateEntry, and Abort helpers. The flow id is injected by the manager via
Bind, never passed by the step itself.
*/
package flow
