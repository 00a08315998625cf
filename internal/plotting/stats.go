package plotting

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"parsec/internal/catalogue"
	"parsec/internal/metadata"
)

// ComputeLine reduces the configured catalogue quantities to one line of
// binned statistics. Bin edges are linear or logarithmic following the
// plot's x scale; empty bins are dropped.
func ComputeLine(cfg Config, cat *catalogue.Catalogue) (metadata.Line, error) {
	xs, ok := cat.Column(cfg.X)
	if !ok {
		return metadata.Line{}, fmt.Errorf("plot %s: catalogue %s has no column %q", cfg.Filename, cat.Path, cfg.X)
	}

	var ys []float64
	if cfg.Statistic == StatMedian || cfg.Statistic == StatMean {
		ys, ok = cat.Column(cfg.Y)
		if !ok {
			return metadata.Line{}, fmt.Errorf("plot %s: catalogue %s has no column %q", cfg.Filename, cat.Path, cfg.Y)
		}
	}

	logX := cfg.XScale == "log"
	xv, yv := usable(xs, ys, logX)
	if len(xv) == 0 {
		return metadata.Line{}, fmt.Errorf("plot %s: no usable values in column %q", cfg.Filename, cfg.X)
	}

	edges, err := binEdges(cfg, xv, logX)
	if err != nil {
		return metadata.Line{}, err
	}

	switch cfg.Statistic {
	case StatMedian:
		return binnedReduce(xv, yv, edges, logX, median), nil
	case StatMean:
		return binnedReduce(xv, yv, edges, logX, func(v []float64) float64 {
			return stat.Mean(v, nil)
		}), nil
	case StatMassFunction:
		return massFunction(xv, edges, logX), nil
	case StatHistogram:
		return histogram(xv, edges, logX), nil
	}
	return metadata.Line{}, fmt.Errorf("plot %s: unknown statistic %q", cfg.Filename, cfg.Statistic)
}

// usable filters NaN/Inf pairs, and non-positive x when binning in log space.
func usable(xs, ys []float64, logX bool) ([]float64, []float64) {
	xv := make([]float64, 0, len(xs))
	var yv []float64
	if ys != nil {
		yv = make([]float64, 0, len(ys))
	}
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		if logX && x <= 0 {
			continue
		}
		if ys != nil {
			y := ys[i]
			if math.IsNaN(y) || math.IsInf(y, 0) {
				continue
			}
			yv = append(yv, y)
		}
		xv = append(xv, x)
	}
	return xv, yv
}

// binEdges returns bins+1 edges in plot space (log10 when logX).
func binEdges(cfg Config, xv []float64, logX bool) ([]float64, error) {
	lo, hi := xv[0], xv[0]
	for _, x := range xv {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	if len(cfg.XLimits) == 2 {
		lo, hi = cfg.XLimits[0], cfg.XLimits[1]
		if logX && lo <= 0 {
			return nil, fmt.Errorf("plot %s: log-scale x_limits must be positive", cfg.Filename)
		}
	}
	if logX {
		lo, hi = math.Log10(lo), math.Log10(hi)
	}
	if hi <= lo {
		hi = lo + 1
	}

	n := cfg.bins()
	edges := make([]float64, n+1)
	step := (hi - lo) / float64(n)
	for i := range edges {
		edges[i] = lo + float64(i)*step
	}
	return edges, nil
}

// binSpace maps a data value into the edge space (log10 when logX).
func binSpace(x float64, logX bool) float64 {
	if logX {
		return math.Log10(x)
	}
	return x
}

// center converts a bin midpoint back into data space.
func center(edges []float64, i int, logX bool) float64 {
	mid := (edges[i] + edges[i+1]) / 2
	if logX {
		return math.Pow(10, mid)
	}
	return mid
}

// binIndex locates x's bin, or -1 when outside the edge range.
func binIndex(x float64, edges []float64, logX bool) int {
	v := binSpace(x, logX)
	if v < edges[0] || v > edges[len(edges)-1] {
		return -1
	}
	i := sort.SearchFloat64s(edges, v) - 1
	if i < 0 {
		i = 0
	}
	if i > len(edges)-2 {
		i = len(edges) - 2
	}
	return i
}

func median(v []float64) float64 {
	sorted := append([]float64(nil), v...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// binnedReduce applies reduce to the y values falling into each x bin.
func binnedReduce(xv, yv, edges []float64, logX bool, reduce func([]float64) float64) metadata.Line {
	nbins := len(edges) - 1
	buckets := make([][]float64, nbins)
	for i, x := range xv {
		if b := binIndex(x, edges, logX); b >= 0 {
			buckets[b] = append(buckets[b], yv[i])
		}
	}

	var line metadata.Line
	for i, b := range buckets {
		if len(b) == 0 {
			continue
		}
		line.X = append(line.X, center(edges, i, logX))
		line.Y = append(line.Y, reduce(b))
	}
	return line
}

// massFunction counts objects per bin normalized by bin width, so log-space
// bins yield counts per dex.
func massFunction(xv, edges []float64, logX bool) metadata.Line {
	counts := binCounts(xv, edges, logX)
	var line metadata.Line
	for i, c := range counts {
		if c == 0 {
			continue
		}
		width := edges[i+1] - edges[i]
		line.X = append(line.X, center(edges, i, logX))
		line.Y = append(line.Y, c/width)
	}
	return line
}

func histogram(xv, edges []float64, logX bool) metadata.Line {
	counts := binCounts(xv, edges, logX)
	var line metadata.Line
	for i, c := range counts {
		line.X = append(line.X, center(edges, i, logX))
		line.Y = append(line.Y, c)
	}
	return line
}

func binCounts(xv, edges []float64, logX bool) []float64 {
	counts := make([]float64, len(edges)-1)
	for _, x := range xv {
		if b := binIndex(x, edges, logX); b >= 0 {
			counts[b]++
		}
	}
	return counts
}
