package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/internal/presentation/graph"
	"github.com/aretw0/espalier/pkg/domain"
)

var entriesCmd = &cobra.Command{
	Use:   "entries [domain]",
	Short: "List committed configuration entries",
	Long: `Lists the committed configuration entries, optionally filtered by domain.
Use --graph to render the configuration topology as a Mermaid diagram.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := runOptionsFromFlags(cmd)
		asGraph, _ := cmd.Flags().GetBool("graph")

		engine, err := cli.SetupEngine(context.Background(), opts)
		if err != nil {
			fmt.Printf("Error initializing espalier: %v\n", err)
			os.Exit(1)
		}

		var entries []domain.ConfigEntry
		if len(args) == 1 {
			entries = engine.Entries(args[0])
		} else {
			entries = engine.AllEntries()
		}

		if asGraph {
			fmt.Print(graph.GenerateMermaid(entries))
			return
		}

		if entries == nil {
			entries = []domain.ConfigEntry{}
		}
		out, _ := json.MarshalIndent(entries, "", "  ")
		fmt.Println(string(out))
	},
}

func init() {
	rootCmd.AddCommand(entriesCmd)
	entriesCmd.Flags().Bool("graph", false, "Render as a Mermaid diagram")
}
