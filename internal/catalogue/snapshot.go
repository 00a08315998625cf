// Package catalogue loads simulation snapshots and halo catalogues.
//
// The pipeline only depends on the narrow contracts here: LoadSnapshot and
// LoadCatalogue return handles exposing named quantities. The on-disk
// formats are deliberately plain (a YAML snapshot summary and a columnar
// halo table); the file extension is not interpreted.
package catalogue

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Snapshot is a loaded snapshot handle: the global metadata of one
// simulation output, used for the per-run section of the report.
type Snapshot struct {
	Path string `yaml:"-"`

	Name           string           `yaml:"name"`
	Redshift       float64          `yaml:"redshift"`
	ScaleFactor    float64          `yaml:"scale_factor,omitempty"`
	BoxSize        float64          `yaml:"box_size,omitempty"` // comoving Mpc
	ParticleCounts map[string]int64 `yaml:"particle_counts,omitempty"`
	Code           string           `yaml:"code,omitempty"` // producing simulation code
}

// LoadSnapshot reads a snapshot summary file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	s.Path = path
	return &s, nil
}
