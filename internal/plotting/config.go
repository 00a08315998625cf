// Package plotting turns halo catalogues into binned line data and renders
// the figures. It is the plotting collaborator behind the pipeline's
// create/link/render contract.
package plotting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Statistics understood by ComputeLine.
const (
	StatMedian       = "median"
	StatMean         = "mean"
	StatMassFunction = "mass_function"
	StatHistogram    = "histogram"
)

// defaultBins is used when a plot config leaves bins unset.
const defaultBins = 25

// Config defines one figure: its output filename stem, the catalogue
// quantities it draws, and the statistic that reduces them to a line.
type Config struct {
	Filename  string    `yaml:"filename"`
	Caption   string    `yaml:"caption,omitempty"`
	X         string    `yaml:"x"`
	Y         string    `yaml:"y,omitempty"`
	Statistic string    `yaml:"statistic"`
	Bins      int       `yaml:"bins,omitempty"`
	XScale    string    `yaml:"x_scale,omitempty"` // "log" or "linear"
	YScale    string    `yaml:"y_scale,omitempty"`
	XLimits   []float64 `yaml:"x_limits,omitempty"` // [min, max]
}

// Validate checks the config is complete enough to plot.
func (c Config) Validate() error {
	if c.Filename == "" {
		return fmt.Errorf("plot config missing filename")
	}
	if c.X == "" {
		return fmt.Errorf("plot %s: missing x quantity", c.Filename)
	}
	switch c.Statistic {
	case StatMedian, StatMean:
		if c.Y == "" {
			return fmt.Errorf("plot %s: statistic %q needs a y quantity", c.Filename, c.Statistic)
		}
	case StatMassFunction, StatHistogram:
	default:
		return fmt.Errorf("plot %s: unknown statistic %q", c.Filename, c.Statistic)
	}
	if len(c.XLimits) != 0 && len(c.XLimits) != 2 {
		return fmt.Errorf("plot %s: x_limits needs exactly [min, max]", c.Filename)
	}
	return nil
}

func (c Config) bins() int {
	if c.Bins > 0 {
		return c.Bins
	}
	return defaultBins
}

// LoadConfigs reads every .yml/.yaml plot definition in dir, ordered
// most-recently-modified first. That ordering is the tie-break for which
// configuration wins when two files define the same plot identity.
func LoadConfigs(dir string) ([]Config, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read plot config dir: %w", err)
	}

	type entry struct {
		cfg   Config
		mtime int64
	}
	var loaded []entry
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
			return nil, fmt.Errorf("read plot config %s: %w", path, err)
		}
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse plot config %s: %w", path, err)
		}
		if cfg.Filename == "" {
			cfg.Filename = strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat plot config %s: %w", path, err)
		}
		loaded = append(loaded, entry{cfg: cfg, mtime: info.ModTime().UnixNano()})
	}

	sort.SliceStable(loaded, func(i, j int) bool {
		return loaded[i].mtime > loaded[j].mtime
	})

	configs := make([]Config, len(loaded))
	for i, e := range loaded {
		configs[i] = e.cfg
	}
	return configs, nil
}
