package main

import (
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "parsec",
	Short: "Figure reports for cosmological simulation runs",
	Long: "Parsec turns simulation snapshots and halo catalogues into binned figures,\n" +
		"exports reusable plot metadata, and aggregates everything into an HTML report.\n" +
		"Given several runs it overlays their previously exported metadata instead.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.Version = version
}
