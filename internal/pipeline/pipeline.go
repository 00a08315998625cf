// Package pipeline wires the whole report generation together: mode
// selection, figure production, metadata export or reconstruction,
// collision detection, auxiliary script dispatch, and the final report
// page.
//
// Tolerated conditions accumulate in Result.Warnings; only conditions
// that make the remaining work meaningless surface as returned errors.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"parsec/internal/catalogue"
	"parsec/internal/compare"
	"parsec/internal/config"
	"parsec/internal/display"
	"parsec/internal/metadata"
	"parsec/internal/plotting"
	"parsec/internal/scripts"
	"parsec/internal/simrun"
	"parsec/internal/webpage"
)

var (
	// ErrNoRuns means no simulation run could be resolved from the inputs.
	ErrNoRuns = errors.New("no simulation runs resolved")
	// ErrNoMetadata means comparison mode found no readable metadata file
	// for any run, so there is nothing to reconstruct from.
	ErrNoMetadata = errors.New("no run metadata could be read")
)

// Options are the per-invocation knobs that are not part of the
// configuration directory.
type Options struct {
	OutputDir    string
	MetadataBase string
	FigureExt    string

	// SnapshotCount is the length of the snapshot list as given on the
	// command line, before run resolution truncated it against the other
	// lists. The snapshot count alone selects the mode; zero falls back
	// to the resolved run count.
	SnapshotCount int

	Progress plotting.ProgressFunc
	Log      *slog.Logger
}

func (o Options) ext() string {
	if o.FigureExt == "" {
		return "png"
	}
	return o.FigureExt
}

func (o Options) log() *slog.Logger {
	if o.Log == nil {
		return slog.Default()
	}
	return o.Log
}

// Result is everything one pipeline execution produced.
type Result struct {
	Mode          simrun.Mode
	Specs         []plotting.Spec
	Record        *metadata.Record
	MetadataPaths []string
	Collisions    []Collision
	Scripts       []scripts.Result
	ReportPath    string
	Warnings      []string
}

// Execute runs the full pipeline for the resolved runs: one run generates
// figures from its catalogue and exports metadata, two or more reconstruct
// composite figures from previously exported metadata.
func Execute(cfg config.Config, runs []simrun.Run, opts Options) (*Result, error) {
	if len(runs) == 0 {
		return nil, ErrNoRuns
	}
	log := opts.log()

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	configs, err := plotting.LoadConfigs(cfg.PlotsPath())
	if err != nil {
		return nil, err
	}
	log.Debug("plot configs loaded", "count", len(configs), "dir", cfg.PlotsPath())

	snapshots := opts.SnapshotCount
	if snapshots == 0 {
		snapshots = len(runs)
	}
	res := &Result{Mode: simrun.SelectMode(snapshots)}
	log.Info("pipeline mode selected", "mode", res.Mode.String(), "snapshots", snapshots, "runs", len(runs))

	switch res.Mode {
	case simrun.ModeStandalone:
		err = standalone(cfg, runs[0], configs, opts, res)
	case simrun.ModeComparison:
		err = comparison(cfg, runs, configs, opts, res)
	}
	if err != nil {
		return nil, err
	}

	res.Collisions = DetectCollisions(res.Specs, opts.ext())
	for _, c := range res.Collisions {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%d figures share the output file %s.%s; later renders overwrote earlier ones", c.Count, c.Filename, c.Extension))
	}

	res.Scripts = scripts.Dispatch(cfg.Scripts, cfg, scriptParams(cfg, runs, opts), log)

	reportPath, err := buildReport(cfg, runs, opts, res)
	if err != nil {
		return nil, err
	}
	res.ReportPath = reportPath

	return res, nil
}

// standalone computes every configured plot from the run's catalogue,
// renders single-line figures, and exports the plot metadata next to the
// run's input data. A metadata write failure is tolerated: the figures and
// report are already worth keeping.
func standalone(cfg config.Config, run simrun.Run, configs []plotting.Config, opts Options, res *Result) error {
	cat, err := catalogue.LoadCatalogue(run.Catalogue, cfg.RegistrationPath())
	if err != nil {
		return err
	}

	ps, err := plotting.Create(configs, cfg.ObservationalDataPath())
	if err != nil {
		return err
	}
	ps.Link(cat)

	specs, warnings := ps.Render(run.Name, opts.OutputDir, opts.ext(), opts.Progress)
	res.Specs = specs
	res.Warnings = append(res.Warnings, warnings...)

	res.Record = metadata.NewRecord(run.Name, run.Snapshot)
	for _, spec := range specs {
		res.Record.Plots[spec.Filename] = metadata.PlotRecord{
			Filename:  spec.Filename,
			Caption:   spec.Config.Caption,
			Statistic: spec.Config.Statistic,
			XLabel:    display.AxisLabel(spec.Config.X),
			YLabel:    display.AxisLabel(spec.Config.Y),
			XScale:    spec.Config.XScale,
			YScale:    spec.Config.YScale,
			Line:      spec.Line,
		}
	}

	path := metadata.Filename(run.InputDir, opts.MetadataBase, run.Snapshot)
	if err := metadata.Write(path, res.Record); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("metadata not exported: %v", err))
	} else {
		res.MetadataPaths = append(res.MetadataPaths, path)
		opts.log().Info("metadata exported", "path", path, "plots", len(res.Record.Plots))
	}
	return nil
}

// comparison reads each run's previously exported metadata and rebuilds
// composite overlay figures from it. Runs whose metadata cannot be read
// are skipped with a warning; the comparison proceeds with the rest.
func comparison(cfg config.Config, runs []simrun.Run, configs []plotting.Config, opts Options, res *Result) error {
	records := map[string]*metadata.Record{}
	var order []string
	for _, run := range runs {
		path := metadata.Filename(run.InputDir, opts.MetadataBase, run.Snapshot)
		rec, err := metadata.Read(path)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("run %s: %v; excluded from comparison", run.Name, err))
			continue
		}
		records[run.Name] = rec
		order = append(order, run.Name)
		res.MetadataPaths = append(res.MetadataPaths, path)
	}
	if len(records) == 0 {
		return ErrNoMetadata
	}

	cmpRes, err := compare.Reconstruct(configs, records, order, cfg.ObservationalDataPath(), opts.OutputDir, opts.ext(), opts.Progress)
	if err != nil {
		return err
	}
	res.Specs = cmpRes.Specs
	res.Record = cmpRes.Record
	res.Warnings = append(res.Warnings, cmpRes.Warnings...)
	return nil
}

// scriptParams flattens the runs into the fixed positional contract every
// auxiliary script receives.
func scriptParams(cfg config.Config, runs []simrun.Run, opts Options) scripts.Params {
	p := scripts.Params{
		OutputDir: opts.OutputDir,
		ConfigDir: cfg.ConfigDirectory,
	}
	for _, run := range runs {
		p.Snapshots = append(p.Snapshots, run.Snapshot)
		p.Catalogues = append(p.Catalogues, run.Catalogue)
		p.InputDirs = append(p.InputDirs, run.InputDir)
		p.RunNames = append(p.RunNames, run.Name)
	}
	return p
}

// buildReport assembles and writes {output}/index.html from everything the
// pipeline produced so far.
func buildReport(cfg config.Config, runs []simrun.Run, opts Options, res *Result) (string, error) {
	page := webpage.New(strings.Join(simrun.Names(runs), ", "))
	page.AddMode(res.Mode.String())
	if res.Record != nil {
		page.AddMetadata(res.Record, opts.ext())
	}

	var css string
	if path := cfg.StylesheetPath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("stylesheet not inlined: %v", err))
		} else {
			css = string(data)
		}
	}
	page.AddConfig(cfg, css)

	var entries []webpage.RunEntry
	for _, run := range runs {
		entry := webpage.RunEntry{
			Name:      run.Name,
			Catalogue: run.Catalogue,
			InputDir:  run.InputDir,
		}
		snap, err := catalogue.LoadSnapshot(run.Snapshot)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("run %s: snapshot summary unavailable: %v", run.Name, err))
		} else {
			entry.Snapshot = snap
		}
		entries = append(entries, entry)
	}
	page.AddRuns(entries)
	page.AddScripts(res.Scripts)
	page.AddWarnings(res.Warnings)

	return page.Save(opts.OutputDir)
}
