package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"parsec/internal/config"
	"parsec/internal/display"
	"parsec/internal/format"
	"parsec/internal/logging"
	"parsec/internal/pipeline"
	"parsec/internal/plotting"
	"parsec/internal/scripts"
	"parsec/internal/simrun"
)

var reportFlags struct {
	configDir    string
	snapshots    []string
	catalogues   []string
	inputs       []string
	outputDir    string
	metadataBase string
	debug        bool
	noProgress   bool
	markdown     bool
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate figures and an HTML report for one or more runs",
	Long: `Report pairs snapshots, catalogues and input directories positionally into
runs. A single run computes figures from its catalogue and exports plot
metadata; multiple runs overlay their previously exported metadata into
composite figures. Either way the output directory ends up with the
figures and an index.html report.`,
	RunE: runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVarP(&reportFlags.configDir, "config", "C", "", "Configuration directory (config.yml, plots/, optional style/scripts)")
	f.StringSliceVarP(&reportFlags.snapshots, "snapshots", "s", nil, "Snapshot file per run (required; count selects the mode)")
	f.StringSliceVarP(&reportFlags.catalogues, "catalogues", "c", nil, "Halo catalogue file per run (required)")
	f.StringSliceVarP(&reportFlags.inputs, "inputs", "i", nil, "Input directory per run (default: current directory)")
	f.StringVarP(&reportFlags.outputDir, "output", "o", "", "Output directory for figures and index.html (required)")
	_ = reportCmd.MarkFlagRequired("config")
	_ = reportCmd.MarkFlagRequired("output")
	f.StringVarP(&reportFlags.metadataBase, "metadata-base", "m", "data", "Base name for the exported metadata file")
	f.BoolVarP(&reportFlags.debug, "debug", "d", false, "Enable debug logging")
	f.BoolVar(&reportFlags.noProgress, "no-progress", false, "Disable the per-plot progress bar")
	f.BoolVar(&reportFlags.markdown, "markdown", false, "Render summary tables as Markdown")
	_ = reportCmd.MarkFlagRequired("snapshots")
	_ = reportCmd.MarkFlagRequired("catalogues")
}

func runReport(_ *cobra.Command, _ []string) error {
	logging.Init(logging.Level(reportFlags.debug), "text")
	log := logging.New("report")

	cfg, err := config.LoadFromDir(reportFlags.configDir)
	if err != nil {
		return err
	}

	runs, warnings := simrun.Resolve(reportFlags.snapshots, reportFlags.catalogues, reportFlags.inputs)
	for _, w := range warnings {
		log.Warn(w)
	}

	var progress plotting.ProgressFunc
	if !reportFlags.noProgress {
		progress = progressObserver()
	}

	res, err := pipeline.Execute(cfg, runs, pipeline.Options{
		OutputDir:     reportFlags.outputDir,
		MetadataBase:  reportFlags.metadataBase,
		SnapshotCount: len(reportFlags.snapshots),
		Progress:      progress,
		Log:           log,
	})
	if err != nil {
		return err
	}

	printSummary(res)
	return nil
}

// progressObserver feeds per-plot progress into a pterm bar. The bar is
// created lazily because the plot count is only known at the first call.
func progressObserver() plotting.ProgressFunc {
	var bar *pterm.ProgressbarPrinter
	return func(i, n int, name string) {
		if bar == nil {
			bar, _ = pterm.DefaultProgressbar.WithTotal(n).WithTitle("rendering figures").Start()
		}
		bar.UpdateTitle(name)
		bar.Increment()
	}
}

// scriptOutputWidth caps the output column of the script summary table.
const scriptOutputWidth = 60

// scriptOutput flattens a script's captured output (or its start error)
// into a single truncated table cell.
func scriptOutput(r scripts.Result) string {
	out := r.Output
	if r.Err != "" {
		out = r.Err
	}
	return format.Truncate(strings.Join(strings.Fields(out), " "), scriptOutputWidth)
}

func tableMode() format.Mode {
	if reportFlags.markdown {
		return format.Markdown
	}
	return format.ASCII
}

func printSummary(res *pipeline.Result) {
	fmt.Printf("Mode: %s\n\n", display.Mode(res.Mode.String()))

	figures := format.NewTable(tableMode())
	figures.Header("Figure", "Statistic", "Points")
	figures.Columns(format.ColumnConfig{Number: 3, Right: true})
	for _, s := range res.Specs {
		figures.Row(s.Filename, display.Statistic(s.Config.Statistic), len(s.Line.X))
	}
	fmt.Println(figures.String())

	if len(res.Collisions) > 0 {
		fmt.Println()
		coll := format.NewTable(tableMode())
		coll.Header("Colliding File", "Figures")
		coll.Columns(format.ColumnConfig{Number: 2, Right: true})
		for _, c := range res.Collisions {
			coll.Row(c.Filename+"."+c.Extension, c.Count)
		}
		fmt.Println(coll.String())
	}

	if len(res.Scripts) > 0 {
		fmt.Println()
		scr := format.NewTable(tableMode())
		scr.Header("", "Script", "Status", "Duration", "Output")
		scr.Columns(format.ColumnConfig{Number: 5, MaxWidth: scriptOutputWidth})
		for _, s := range res.Scripts {
			scr.Row(format.BoolMark(s.OK()), s.Path, display.ScriptStatus(s.ExitCode), format.FmtDuration(s.Duration), scriptOutput(s))
		}
		fmt.Println(scr.String())
	}

	for _, w := range res.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	for _, p := range res.MetadataPaths {
		fmt.Printf("Metadata: %s\n", p)
	}
	fmt.Printf("Report: %s\n", res.ReportPath)
}
