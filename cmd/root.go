package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wegner15/billforge/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "billforge",
	Short: "billforge - deterministic invoice and quotation PDF generator",
	Long: `billforge renders invoices and quotations as paginated A4 PDFs from a
complete document model. Given the same model and timestamp, the output
is byte-for-byte identical, which makes documents safely regenerable.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Use \"billforge render\" to generate a document, or --help for options.")
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cmd")
		log.Error().Err(err).Msg("command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
