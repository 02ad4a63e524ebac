// Package cli implements the interactive workflows behind the espalier
// commands: engine construction, form prompting and output rendering.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/adapters/file"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/adapters/redis"
	"github.com/aretw0/espalier/pkg/ports"
)

// RunOptions carries the store and verbosity settings shared by commands.
type RunOptions struct {
	StoreKind     string // file, yaml, redis or memory
	StorePath     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Debug         bool
	Quiet         bool
}

// CreateEngine initializes an engine with standard CLI conventions.
func CreateEngine(opts RunOptions, logger *slog.Logger) (*espalier.Engine, error) {
	store, err := createStore(opts)
	if err != nil {
		return nil, err
	}

	engineOpts := []espalier.Option{
		espalier.WithStore(store),
		espalier.WithLogger(logger),
	}
	if opts.Debug {
		engineOpts = append(engineOpts, espalier.WithLifecycleHooks(createDebugHooks(logger)))
	}

	engine, err := espalier.New(opts.StorePath, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}

	return engine, nil
}

// SetupEngine builds the engine from CLI options, registers the built-in
// demo domains and loads previously committed entries.
func SetupEngine(ctx context.Context, opts RunOptions) (*espalier.Engine, error) {
	logger := createLogger(opts.Debug)
	engine, err := CreateEngine(opts, logger)
	if err != nil {
		return nil, err
	}
	RegisterDemoHandlers(engine)
	if err := engine.Load(ctx); err != nil {
		return nil, err
	}
	return engine, nil
}

func createStore(opts RunOptions) (ports.EntryStore, error) {
	switch opts.StoreKind {
	case "", "file":
		return file.New(opts.StorePath), nil
	case "yaml":
		return file.New(opts.StorePath, file.WithFormat(file.FormatYAML)), nil
	case "redis":
		return redis.New(opts.RedisAddr, opts.RedisPassword, opts.RedisDB), nil
	case "memory":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown store kind %q (supported: file, yaml, redis, memory)", opts.StoreKind)
	}
}
