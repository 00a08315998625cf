// Package metadata owns the plot-metadata round trip: the deterministic
// per-run filename contract and the YAML serialization of everything a
// comparison run needs to redraw a run's figures without its catalogue.
package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Line is one plot's series data: paired x/y arrays.
type Line struct {
	X []float64 `yaml:"x"`
	Y []float64 `yaml:"y"`
}

// PlotRecord describes one produced figure well enough to redraw it:
// identity, labels, scales, and the computed line.
type PlotRecord struct {
	Filename  string `yaml:"filename"`
	Caption   string `yaml:"caption,omitempty"`
	Statistic string `yaml:"statistic,omitempty"`
	XLabel    string `yaml:"x_label,omitempty"`
	YLabel    string `yaml:"y_label,omitempty"`
	XScale    string `yaml:"x_scale,omitempty"`
	YScale    string `yaml:"y_scale,omitempty"`
	Line      Line   `yaml:"line"`
}

// Record is the exported description of all figures produced for one run.
// Written once after standalone generation; read back, never mutated,
// during comparison.
type Record struct {
	RunName  string                `yaml:"run_name"`
	Snapshot string                `yaml:"snapshot"`
	Created  string                `yaml:"created,omitempty"`
	Plots    map[string]PlotRecord `yaml:"plots"`
}

// NewRecord returns an empty Record stamped with the run identity.
func NewRecord(runName, snapshot string) *Record {
	return &Record{
		RunName:  runName,
		Snapshot: snapshot,
		Created:  time.Now().UTC().Format(time.RFC3339),
		Plots:    map[string]PlotRecord{},
	}
}

// PlotNames returns the record's plot identities, sorted.
func (r *Record) PlotNames() []string {
	names := make([]string, 0, len(r.Plots))
	for n := range r.Plots {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// suffixLen is the width of the snapshot index suffix in metadata filenames.
const suffixLen = 4

// Filename computes the deterministic metadata path for a run:
//
//	{inputDir}/{baseName}_{last 4 chars of the snapshot stem, zero-padded}.yml
//
// e.g. base "data", snapshot "snapshot_0000.hdf5" → "{inputDir}/data_0000.yml".
// The path is reproducible without reading any file, which is what lets
// comparison mode locate prior standalone output.
func Filename(inputDir, baseName, snapshotPath string) string {
	stem := filepath.Base(snapshotPath)
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))

	suffix := stem
	if len(suffix) > suffixLen {
		suffix = suffix[len(suffix)-suffixLen:]
	}
	for len(suffix) < suffixLen {
		suffix = "0" + suffix
	}

	return filepath.Join(inputDir, fmt.Sprintf("%s_%s.yml", baseName, suffix))
}

// Write serializes the record to path. Callers treat failure as non-fatal:
// the pipeline proceeds with the in-memory record and no retry is made.
func Write(path string, rec *Record) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// Read loads a previously exported record.
func Read(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse metadata %s: %w", path, err)
	}
	return &rec, nil
}
