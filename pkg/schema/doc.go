// Package schema describes the shape of the input a configuration form
// expects.
//
// A Schema maps field names to types. Flow handlers attach a Schema to a
// form result so that callers (CLI, HTTP, MCP) can render the right prompts
// and validate input before submitting the next step:
//
//	form := h.ShowForm(flow.Form{
//	    Title:  "Account",
//	    StepID: "init",
//	    DataSchema: schema.Schema{
//	        "username": schema.String(),
//	        "password": schema.Secret(),
//	        "retries":  schema.Int(),
//	    },
//	})
//
// Schemas serialize to JSON as a map of field names to type names
// ({"retries": "int"}), so a form envelope survives the trip through an
// HTTP or MCP adapter and can be reconstructed on the far side with
// ParseTypeMap.
//
// The package has no dependencies beyond the standard library.
package schema
