package pipeline

import (
	"sort"

	"parsec/internal/plotting"
)

// Collision reports a figure filename produced by more than one plot in a
// single execution. Renders happen in order, so the last one owns the
// file on disk; the diagnostic exists so nobody mistakes that figure for
// the earlier plots.
type Collision struct {
	Filename  string
	Extension string
	Count     int
}

// DetectCollisions scans the produced specs for duplicate output
// filenames. Results are sorted by filename for stable reporting.
func DetectCollisions(specs []plotting.Spec, ext string) []Collision {
	counts := map[string]int{}
	for _, s := range specs {
		counts[s.Filename]++
	}

	var collisions []Collision
	for name, n := range counts {
		if n > 1 {
			collisions = append(collisions, Collision{Filename: name, Extension: ext, Count: n})
		}
	}
	sort.Slice(collisions, func(i, j int) bool { return collisions[i].Filename < collisions[j].Filename })
	return collisions
}
