package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"parsec/internal/display"
	"parsec/internal/format"
	"parsec/internal/metadata"
)

var inspectFlags struct {
	markdown bool
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <metadata.yml>",
	Short: "Summarize an exported plot metadata file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectFlags.markdown, "markdown", false, "Render the summary as Markdown")
}

func runInspect(_ *cobra.Command, args []string) error {
	rec, err := metadata.Read(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Run:      %s\n", rec.RunName)
	fmt.Printf("Snapshot: %s\n", rec.Snapshot)
	if rec.Created != "" {
		fmt.Printf("Created:  %s\n", rec.Created)
	}
	fmt.Println()

	mode := format.ASCII
	if inspectFlags.markdown {
		mode = format.Markdown
	}
	tbl := format.NewTable(mode)
	tbl.Header("Plot", "Statistic", "Points", "X", "Y")
	tbl.Columns(format.ColumnConfig{Number: 3, Right: true})
	for _, name := range rec.PlotNames() {
		pr := rec.Plots[name]
		tbl.Row(name, display.Statistic(pr.Statistic), len(pr.Line.X), pr.XLabel, pr.YLabel)
	}
	fmt.Println(tbl.String())
	return nil
}
