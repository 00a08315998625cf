package plotting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"parsec/internal/metadata"
)

// ObsLine is one observational reference curve, overlaid on the plot
// identity it names.
type ObsLine struct {
	Plot  string        `yaml:"plot"`
	Label string        `yaml:"label"`
	Line  metadata.Line `yaml:"line"`
}

// LoadObservations reads every .yml/.yaml reference curve in dir.
// An empty dir means no observational overlays; that is not an error.
func LoadObservations(dir string) ([]ObsLine, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read observational data dir: %w", err)
	}

	var obs []ObsLine
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yml" && ext != ".yaml" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read observational data %s: %w", path, err)
		}
		var o ObsLine
		if err := yaml.Unmarshal(data, &o); err != nil {
			return nil, fmt.Errorf("parse observational data %s: %w", path, err)
		}
		if o.Plot == "" || len(o.Line.X) == 0 {
			return nil, fmt.Errorf("observational data %s: needs a plot identity and line data", path)
		}
		obs = append(obs, o)
	}
	return obs, nil
}

// observationsFor filters the curves overlaying one plot identity.
func observationsFor(obs []ObsLine, plot string) []ObsLine {
	var matched []ObsLine
	for _, o := range obs {
		if o.Plot == plot {
			matched = append(matched, o)
		}
	}
	return matched
}
