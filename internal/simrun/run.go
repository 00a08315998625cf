// Package simrun describes the simulation runs a pipeline invocation
// operates on and selects the execution mode from their count.
package simrun

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Run is one simulation instance: a snapshot file, a halo-catalogue file,
// and the input directory both live under.
type Run struct {
	Name      string
	Snapshot  string
	Catalogue string
	InputDir  string
}

// Resolve zips the three positional input lists into Runs. The lists are
// consumed pairwise in lock-step; surplus entries in longer lists are
// dropped, each with a warning naming the dropped entry. An empty inputs
// list defaults every run's input directory to ".".
func Resolve(snapshots, catalogues, inputs []string) ([]Run, []string) {
	if len(inputs) == 0 {
		inputs = make([]string, len(snapshots))
		for i := range inputs {
			inputs[i] = "."
		}
	}

	n := len(snapshots)
	if len(catalogues) < n {
		n = len(catalogues)
	}
	if len(inputs) < n {
		n = len(inputs)
	}

	var warnings []string
	for _, s := range snapshots[n:] {
		warnings = append(warnings, fmt.Sprintf("ignoring surplus snapshot %q (only %d run(s) resolved)", s, n))
	}
	for _, c := range catalogues[n:] {
		warnings = append(warnings, fmt.Sprintf("ignoring surplus catalogue %q (only %d run(s) resolved)", c, n))
	}
	for _, d := range inputs[n:] {
		warnings = append(warnings, fmt.Sprintf("ignoring surplus input directory %q (only %d run(s) resolved)", d, n))
	}

	runs := make([]Run, 0, n)
	seen := map[string]bool{}
	for i := 0; i < n; i++ {
		name := runName(inputs[i], snapshots[i])
		if seen[name] {
			name = fmt.Sprintf("%s-%d", name, i+1)
		}
		seen[name] = true
		runs = append(runs, Run{
			Name:      name,
			Snapshot:  joinInput(inputs[i], snapshots[i]),
			Catalogue: joinInput(inputs[i], catalogues[i]),
			InputDir:  inputs[i],
		})
	}
	return runs, warnings
}

// Names returns the run names in positional order.
func Names(runs []Run) []string {
	names := make([]string, len(runs))
	for i, r := range runs {
		names[i] = r.Name
	}
	return names
}

// runName derives a legend-friendly name: the input directory base, or the
// snapshot stem when the input directory is the current directory.
func runName(inputDir, snapshot string) string {
	base := filepath.Base(filepath.Clean(inputDir))
	if base != "." && base != string(filepath.Separator) && base != "" {
		return base
	}
	stem := filepath.Base(snapshot)
	return strings.TrimSuffix(stem, filepath.Ext(stem))
}

// joinInput resolves a per-run file against its input directory. Absolute
// paths and paths already under the input directory pass through.
func joinInput(inputDir, path string) string {
	if filepath.IsAbs(path) || inputDir == "" || inputDir == "." {
		return path
	}
	if strings.HasPrefix(path, inputDir+string(filepath.Separator)) {
		return path
	}
	return filepath.Join(inputDir, path)
}
