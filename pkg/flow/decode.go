package flow

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeInput decodes loosely-typed step input (typically a map[string]any
// that arrived over HTTP or MCP) into a typed struct using "mapstructure"
// tags. Handlers that prefer typed step input call it at the top of a step:
//
//	var creds struct {
//	    Username string `mapstructure:"username"`
//	    Password string `mapstructure:"password"`
//	}
//	if err := flow.DecodeInput(input, &creds); err != nil { ... }
func DecodeInput(input any, out any) error {
	if input == nil {
		return fmt.Errorf("no input to decode")
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}

	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("failed to decode input: %w", err)
	}
	return nil
}
