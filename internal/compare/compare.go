// Package compare rebuilds composite overlay figures for multiple runs
// from their exported plot metadata, without touching raw catalogues.
package compare

import (
	"fmt"
	"strings"

	"parsec/internal/metadata"
	"parsec/internal/plotting"
)

// CompositeLineData maps plot identity → run name → that run's line data.
// It exists only for the duration of a reconstruction pass.
type CompositeLineData map[string]map[string]metadata.Line

// Result carries the same artifact shapes standalone generation produces —
// a metadata object and a rendered spec collection — so downstream
// components need not know which mode ran.
type Result struct {
	Specs     []plotting.Spec
	Record    *metadata.Record
	Composite CompositeLineData
	Warnings  []string
}

// Reconstruct merges the per-run records into one composite figure per
// configured plot identity. Configs arrive most-recently-modified first;
// when two define the same identity the first wins. Every composite figure
// is attempted independently: a render failure becomes a warning and the
// remaining plots still render.
//
// records is keyed by run name; runOrder preserves positional order so
// legends list runs the way they were given on the command line.
func Reconstruct(
	configs []plotting.Config,
	records map[string]*metadata.Record,
	runOrder []string,
	obsDataDir, outputDir, ext string,
	progress plotting.ProgressFunc,
) (*Result, error) {
	obs, err := plotting.LoadObservations(obsDataDir)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Record:    metadata.NewRecord(strings.Join(runOrder, ", "), ""),
		Composite: CompositeLineData{},
	}

	unique := dedupe(configs, &res.Warnings)
	n := len(unique)
	for i, cfg := range unique {
		if progress != nil {
			progress(i+1, n, cfg.Filename)
		}

		perRun := map[string]metadata.Line{}
		var series []plotting.NamedLine
		for _, run := range runOrder {
			rec, ok := records[run]
			if !ok {
				continue
			}
			pr, ok := rec.Plots[cfg.Filename]
			if !ok {
				continue
			}
			perRun[run] = pr.Line
			series = append(series, plotting.NamedLine{Name: run, Line: pr.Line})
		}
		if len(series) == 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("plot %s: no run metadata carries this plot; skipped", cfg.Filename))
			continue
		}

		res.Composite[cfg.Filename] = perRun

		if err := renderComposite(cfg, series, obs, outputDir, ext); err != nil {
			res.Warnings = append(res.Warnings, err.Error())
			continue
		}

		res.Specs = append(res.Specs, plotting.Spec{
			Filename: cfg.Filename,
			Config:   cfg,
			Line:     series[0].Line,
		})
		res.Record.Plots[cfg.Filename] = metadata.PlotRecord{
			Filename:  cfg.Filename,
			Caption:   cfg.Caption,
			Statistic: cfg.Statistic,
			XScale:    cfg.XScale,
			YScale:    cfg.YScale,
			Line:      series[0].Line,
		}
	}

	return res, nil
}

// renderComposite draws one overlay figure, one line per run.
func renderComposite(cfg plotting.Config, series []plotting.NamedLine, obs []plotting.ObsLine, outputDir, ext string) error {
	matched := make([]plotting.ObsLine, 0)
	for _, o := range obs {
		if o.Plot == cfg.Filename {
			matched = append(matched, o)
		}
	}
	return plotting.RenderFigure(cfg, series, matched, outputDir, ext)
}

// dedupe keeps the first config per plot identity, warning on duplicates.
func dedupe(configs []plotting.Config, warnings *[]string) []plotting.Config {
	seen := map[string]bool{}
	var unique []plotting.Config
	for _, cfg := range configs {
		if seen[cfg.Filename] {
			*warnings = append(*warnings, fmt.Sprintf("plot %s: defined more than once; keeping the most recently modified config", cfg.Filename))
			continue
		}
		seen[cfg.Filename] = true
		unique = append(unique, cfg)
	}
	return unique
}
