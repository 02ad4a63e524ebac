package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "espalier",
	Short: "Espalier is a multi-step configuration flow engine",
	Long:  `Espalier guides users through multi-step setup flows and persists the collected configuration entries.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("store", "file", "Entry store backend: file, yaml, redis or memory")
	rootCmd.PersistentFlags().String("store-path", "", "Path of the entry document (file/yaml stores)")
	rootCmd.PersistentFlags().String("redis-addr", "localhost:6379", "Redis address (redis store)")
	rootCmd.PersistentFlags().String("redis-password", "", "Redis password (redis store)")
	rootCmd.PersistentFlags().Int("redis-db", 0, "Redis database number (redis store)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress system messages")
}

// runOptionsFromFlags collects the persistent store flags into RunOptions.
func runOptionsFromFlags(cmd *cobra.Command) cli.RunOptions {
	kind, _ := cmd.Flags().GetString("store")
	path, _ := cmd.Flags().GetString("store-path")
	redisAddr, _ := cmd.Flags().GetString("redis-addr")
	redisPassword, _ := cmd.Flags().GetString("redis-password")
	redisDB, _ := cmd.Flags().GetInt("redis-db")
	debug, _ := cmd.Flags().GetBool("debug")
	quiet, _ := cmd.Flags().GetBool("quiet")

	return cli.RunOptions{
		StoreKind:     kind,
		StorePath:     path,
		RedisAddr:     redisAddr,
		RedisPassword: redisPassword,
		RedisDB:       redisDB,
		Debug:         debug,
		Quiet:         quiet,
	}
}
