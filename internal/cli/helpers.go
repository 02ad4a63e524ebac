package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/schema"
)

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout flow UI).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message to stdout.
func printSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFlowStart: func(ctx context.Context, e *domain.FlowEvent) {
			logger.Debug("Flow Started", "flow_id", e.FlowID, "domain", e.Domain)
		},
		OnFlowResult: func(ctx context.Context, e *domain.ResultEvent) {
			logger.Debug("Flow Result", "flow_id", e.FlowID, "type", e.Type)
		},
		OnEntryCreated: func(ctx context.Context, e *domain.EntryEvent) {
			logger.Debug("Entry Created", "entry_id", e.Entry.ID, "domain", e.Entry.Domain)
		},
		OnSave: func(ctx context.Context, e *domain.SaveEvent) {
			if e.Err != nil {
				logger.Debug("Save Failed", "err", e.Err)
			} else {
				logger.Debug("Entries Saved", "count", e.Entries)
			}
		},
	}
}

// promptField reads one form field from the terminal. Secret fields are
// read without echo when stdin is a real terminal.
func promptField(reader *bufio.Reader, field string, fieldType schema.Type) (string, error) {
	fmt.Printf("%s (%s): ", field, fieldType.Name())

	if fieldType.Name() == schema.TypeSecret && term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		return string(raw), nil
	}

	text, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
