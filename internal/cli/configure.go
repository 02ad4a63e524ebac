package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/presentation/tui"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/schema"
)

// RunConfigure drives one configuration flow interactively: it renders each
// form, prompts for the fields, and submits until the flow finishes.
func RunConfigure(ctx context.Context, engine *espalier.Engine, domainName string, quiet bool) error {
	render := tui.NewRenderer()
	reader := bufio.NewReader(os.Stdin)

	result, err := engine.Configure(ctx, domainName, "", "", nil)
	if err != nil {
		return err
	}

	for {
		switch result.Type {
		case domain.ResultTypeForm:
			printMarkdown(render, tui.FormMarkdown(result))

			input, err := promptForm(reader, result.DataSchema)
			if err != nil {
				return err
			}

			result, err = engine.Configure(ctx, domainName, result.FlowID, result.StepID, input)
			if err != nil {
				return err
			}

		case domain.ResultTypeCreateEntry:
			for _, entry := range engine.Entries(domainName) {
				if entry.ID == result.FlowID {
					printMarkdown(render, tui.EntryMarkdown(entry))
					break
				}
			}
			if err := engine.Flush(ctx); err != nil {
				return fmt.Errorf("failed to persist entries: %w", err)
			}
			if !quiet {
				printSystemMessage("Entry saved.")
			}
			return nil

		case domain.ResultTypeAbort:
			printMarkdown(render, tui.AbortMarkdown(result))
			return nil

		default:
			return fmt.Errorf("unexpected result type %q", result.Type)
		}
	}
}

// promptForm collects one value per schema field, re-prompting on values
// that do not parse as the declared type.
func promptForm(reader *bufio.Reader, dataSchema schema.Schema) (map[string]any, error) {
	fields := make([]string, 0, len(dataSchema))
	for field := range dataSchema {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	input := make(map[string]any, len(fields))
	for _, field := range fields {
		fieldType := dataSchema[field]
		for {
			text, err := promptField(reader, field, fieldType)
			if err != nil {
				return nil, err
			}
			value, err := parseValue(text, fieldType)
			if err != nil {
				printSystemMessage("Invalid value for '%s': %v", field, err)
				continue
			}
			input[field] = value
			break
		}
	}
	return input, nil
}

func parseValue(text string, fieldType schema.Type) (any, error) {
	name := fieldType.Name()
	switch {
	case name == schema.TypeInt:
		return strconv.Atoi(text)
	case name == schema.TypeFloat:
		return strconv.ParseFloat(text, 64)
	case name == schema.TypeBool:
		return strconv.ParseBool(text)
	case strings.HasPrefix(name, "["):
		parts := strings.Split(text, ",")
		values := make([]any, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			elemName := name[1 : len(name)-1]
			value, err := parseValue(part, namedType(elemName))
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}
		return values, nil
	default:
		return text, nil
	}
}

func namedType(name string) schema.Type {
	t, err := schema.ParseType(name)
	if err != nil {
		return schema.String()
	}
	return t
}

func printMarkdown(render func(string) (string, error), markdown string) {
	out, err := render(markdown)
	if err != nil {
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}
