// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans.
// Use these functions in axis labels, CLI output, and the HTML report.
// Keep raw codes for YAML fields, map keys, and equality comparisons.
package display

import "fmt"

// --- Halo Quantities ---

var quantities = map[string]string{
	"masses":              "Halo Mass",
	"stellar_masses":      "Stellar Mass",
	"gas_masses":          "Gas Mass",
	"temperatures":        "Temperature",
	"densities":           "Density",
	"vmax":                "Maximum Circular Velocity",
	"radii":               "Virial Radius",
	"star_formation_rate": "Star Formation Rate",
	"metallicities":       "Metallicity",
	"concentrations":      "Concentration",
}

var units = map[string]string{
	"masses":              "M☉",
	"stellar_masses":      "M☉",
	"gas_masses":          "M☉",
	"temperatures":        "K",
	"densities":           "g/cm³",
	"vmax":                "km/s",
	"radii":               "Mpc",
	"star_formation_rate": "M☉/yr",
}

// Quantity returns the human-readable name for a catalogue column code.
// Unknown codes are returned as-is.
func Quantity(code string) string {
	if name, ok := quantities[code]; ok {
		return name
	}
	return code
}

// AxisLabel returns "Halo Mass [M☉]" format for plot axes.
// Quantities without a registered unit get the bare name.
func AxisLabel(code string) string {
	name := Quantity(code)
	if u, ok := units[code]; ok {
		return name + " [" + u + "]"
	}
	return name
}

// --- Statistics ---

var statistics = map[string]string{
	"median":        "Binned Median",
	"mean":          "Binned Mean",
	"mass_function": "Mass Function",
	"histogram":     "Histogram",
}

// Statistic returns the human-readable name for a plot statistic code.
func Statistic(code string) string {
	if name, ok := statistics[code]; ok {
		return name
	}
	return code
}

// --- Script Outcomes ---

// ScriptStatus formats an auxiliary script exit code for humans.
// 0 -> "ok", n -> "failed (exit n)", -1 -> "did not start".
func ScriptStatus(exitCode int) string {
	switch {
	case exitCode == 0:
		return "ok"
	case exitCode < 0:
		return "did not start"
	default:
		return fmt.Sprintf("failed (exit %d)", exitCode)
	}
}

// Mode returns the human-readable pipeline mode name for the report.
// "standalone" -> "Standalone", "comparison" -> "Comparison".
func Mode(code string) string {
	switch code {
	case "standalone":
		return "Standalone"
	case "comparison":
		return "Comparison"
	}
	return code
}
