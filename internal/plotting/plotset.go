package plotting

import (
	"fmt"

	"parsec/internal/catalogue"
	"parsec/internal/metadata"
)

// Spec is one produced figure: its filename identity plus the numeric
// payload downstream merging needs. This is the structural contract any
// plotting backend must satisfy.
type Spec struct {
	Filename string
	Config   Config
	Line     metadata.Line
}

// ProgressFunc observes per-plot progress during rendering. i is 1-based.
// A nil ProgressFunc disables reporting; the generation logic itself never
// depends on it.
type ProgressFunc func(i, n int, name string)

// PlotSet holds the configured plots and, once linked, the catalogue they
// draw from.
type PlotSet struct {
	Configs      []Config
	Observations []ObsLine

	cat *catalogue.Catalogue
}

// Create builds a PlotSet from plot configs and loads any observational
// reference curves from obsDataDir ("" for none).
func Create(configs []Config, obsDataDir string) (*PlotSet, error) {
	obs, err := LoadObservations(obsDataDir)
	if err != nil {
		return nil, err
	}
	return &PlotSet{Configs: configs, Observations: obs}, nil
}

// Link attaches the halo catalogue the plots will be computed from.
func (ps *PlotSet) Link(cat *catalogue.Catalogue) {
	ps.cat = cat
}

// Render computes and draws every configured plot into outputDir with the
// given extension. Each plot is attempted independently: a failure becomes
// a warning and the remaining plots still render. The returned specs cover
// the figures actually produced.
func (ps *PlotSet) Render(runName, outputDir, ext string, progress ProgressFunc) ([]Spec, []string) {
	var specs []Spec
	var warnings []string

	n := len(ps.Configs)
	for i, cfg := range ps.Configs {
		if progress != nil {
			progress(i+1, n, cfg.Filename)
		}
		if ps.cat == nil {
			warnings = append(warnings, fmt.Sprintf("plot %s: no catalogue linked", cfg.Filename))
			continue
		}
		line, err := ComputeLine(cfg, ps.cat)
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		series := []NamedLine{{Name: runName, Line: line}}
		if err := RenderFigure(cfg, series, observationsFor(ps.Observations, cfg.Filename), outputDir, ext); err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		specs = append(specs, Spec{Filename: cfg.Filename, Config: cfg, Line: line})
	}
	return specs, warnings
}
