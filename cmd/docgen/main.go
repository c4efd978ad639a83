package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sangkips/salesdoc-api/internal/logger"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "docgen",
	Short: "Render Thai sales documents and related utilities",
	Long: `docgen renders quotations, invoices and billing notes to PDF from a
JSON description, spells out baht amounts in Thai and issues development
tokens for the API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := logger.DefaultConfig()
		cfg.Level = logLevel
		cfg.Output = "stderr"
		return logger.Setup(cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(renderCmd, bahtCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
