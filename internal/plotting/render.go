package plotting

import (
	"fmt"
	"math"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"parsec/internal/display"
	"parsec/internal/metadata"
)

// NamedLine pairs a legend label (the run name) with its line data.
type NamedLine struct {
	Name string
	Line metadata.Line
}

// figureWidth/figureHeight are the fixed raster dimensions of every figure.
const (
	figureWidth  = 6 * vg.Inch
	figureHeight = 4 * vg.Inch
)

// RenderFigure draws one figure to {outputDir}/{cfg.Filename}.{ext}: one
// solid line per named series plus dashed observational overlays. A single
// unnamed series is drawn without a legend entry.
func RenderFigure(cfg Config, lines []NamedLine, obs []ObsLine, outputDir, ext string) error {
	p := plot.New()
	p.Title.Text = cfg.Caption
	p.X.Label.Text = display.AxisLabel(cfg.X)
	p.Y.Label.Text = yAxisLabel(cfg)

	logX := cfg.XScale == "log"
	logY := cfg.YScale == "log"
	if logX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if logY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	plotted := 0
	for i, nl := range lines {
		pts := lineToXYs(nl.Line, logX, logY)
		if len(pts) == 0 {
			continue
		}
		ln, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("plot %s: series %q: %w", cfg.Filename, nl.Name, err)
		}
		ln.Color = plotutil.Color(i)
		p.Add(ln)
		if len(lines) > 1 && nl.Name != "" {
			p.Legend.Add(nl.Name, ln)
		}
		plotted++
	}
	if plotted == 0 {
		return fmt.Errorf("plot %s: no drawable series", cfg.Filename)
	}

	for j, o := range obs {
		pts := lineToXYs(o.Line, logX, logY)
		if len(pts) == 0 {
			continue
		}
		ln, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("plot %s: observations %q: %w", cfg.Filename, o.Label, err)
		}
		ln.Color = plotutil.Color(len(lines) + j)
		ln.Dashes = plotutil.Dashes(1)
		p.Add(ln)
		if o.Label != "" {
			p.Legend.Add(o.Label, ln)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = true

	out := filepath.Join(outputDir, cfg.Filename+"."+ext)
	if err := p.Save(figureWidth, figureHeight, out); err != nil {
		return fmt.Errorf("save figure %s: %w", out, err)
	}
	return nil
}

func yAxisLabel(cfg Config) string {
	switch cfg.Statistic {
	case StatMassFunction:
		return "dN/dlog₁₀(" + display.Quantity(cfg.X) + ")"
	case StatHistogram:
		return "Count"
	}
	return display.AxisLabel(cfg.Y)
}

// lineToXYs converts line data to plotter points, dropping values that a
// log axis cannot represent.
func lineToXYs(line metadata.Line, logX, logY bool) plotter.XYs {
	n := len(line.X)
	if len(line.Y) < n {
		n = len(line.Y)
	}
	pts := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		x, y := line.X[i], line.Y[i]
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		if (logX && x <= 0) || (logY && y <= 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	return pts
}
