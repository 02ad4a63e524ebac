package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/cli"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the domains with committed entries",
	Run: func(cmd *cobra.Command, args []string) {
		opts := runOptionsFromFlags(cmd)
		jsonMode, _ := cmd.Flags().GetBool("json")

		engine, err := cli.SetupEngine(context.Background(), opts)
		if err != nil {
			fmt.Printf("Error initializing espalier: %v\n", err)
			os.Exit(1)
		}

		domains := engine.Domains()
		if jsonMode {
			if domains == nil {
				domains = []string{}
			}
			out, _ := json.MarshalIndent(domains, "", "  ")
			fmt.Println(string(out))
			return
		}

		for _, d := range domains {
			fmt.Println(d)
		}
	},
}

func init() {
	rootCmd.AddCommand(domainsCmd)
	domainsCmd.Flags().Bool("json", false, "Output as JSON")
}
