package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sangkips/salesdoc-api/pkg/thai"
)

var bahtCmd = &cobra.Command{
	Use:     "baht [amount]",
	Short:   "Spell out an amount in Thai baht text",
	Example: `  docgen baht 1250.50`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), thai.BahtTextString(args[0]))
	},
}
