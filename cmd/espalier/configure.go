package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/internal/presentation/tui"
)

var configureCmd = &cobra.Command{
	Use:   "configure <domain>",
	Short: "Run a configuration flow interactively",
	Long: `Starts the configuration flow for a domain and walks through its forms.
Field values are prompted one by one; secret fields are read without echo.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := runOptionsFromFlags(cmd)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		engine, err := cli.SetupEngine(ctx, opts)
		if err != nil {
			fmt.Printf("Error initializing espalier: %v\n", err)
			os.Exit(1)
		}

		if !opts.Quiet {
			tui.PrintBanner()
		}

		if err := cli.RunConfigure(ctx, engine, args[0], opts.Quiet); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)
}
