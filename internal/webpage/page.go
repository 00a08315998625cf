// Package webpage assembles the final report page model and renders it to
// index.html. It composes sections in order and performs no computation
// beyond that.
package webpage

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"parsec/internal/catalogue"
	"parsec/internal/config"
	"parsec/internal/display"
	"parsec/internal/metadata"
	"parsec/internal/scripts"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// reportFilename is the fixed name of the rendered report inside the
// output directory.
const reportFilename = "index.html"

// PlotEntry is one figure on the page.
type PlotEntry struct {
	Filename  string
	Image     string
	Caption   string
	Statistic string
}

// RunEntry is the per-run metadata section content for one run.
type RunEntry struct {
	Name      string
	Snapshot  *catalogue.Snapshot
	Catalogue string
	InputDir  string
}

// ScriptEntry is one auxiliary script outcome.
type ScriptEntry struct {
	Path     string
	Status   string
	Duration string
	Output   string
}

// ConfigEntry is one configuration key/value pair shown on the page.
type ConfigEntry struct {
	Key   string
	Value string
}

// Page is the report page model, filled by successive enrichment and then
// rendered once.
type Page struct {
	Title       string
	Mode        string
	GeneratedAt string
	Stylesheet  template.CSS

	Plots    []PlotEntry
	Config   []ConfigEntry
	Runs     []RunEntry
	Scripts  []ScriptEntry
	Warnings []string
}

// New starts a page with the given title (the joined run names).
func New(title string) *Page {
	return &Page{
		Title:       title,
		GeneratedAt: time.Now().UTC().Format(time.RFC1123),
	}
}

// AddMetadata fills the figure section from the final plot metadata,
// ordered by plot identity. ext is the figure file extension.
func (p *Page) AddMetadata(rec *metadata.Record, ext string) {
	for _, name := range rec.PlotNames() {
		pr := rec.Plots[name]
		p.Plots = append(p.Plots, PlotEntry{
			Filename:  pr.Filename,
			Image:     pr.Filename + "." + ext,
			Caption:   pr.Caption,
			Statistic: display.Statistic(pr.Statistic),
		})
	}
}

// AddConfig fills the configuration section and inlines the stylesheet
// content (css may be empty).
func (p *Page) AddConfig(cfg config.Config, css string) {
	p.Stylesheet = template.CSS(css)
	p.Config = []ConfigEntry{
		{Key: "Configuration directory", Value: cfg.ConfigDirectory},
		{Key: "Plot definitions", Value: cfg.PlotsPath()},
	}
	if d := cfg.ObservationalDataPath(); d != "" {
		p.Config = append(p.Config, ConfigEntry{Key: "Observational data", Value: d})
	}
	if r := cfg.RegistrationPath(); r != "" {
		p.Config = append(p.Config, ConfigEntry{Key: "Registration file", Value: r})
	}
	p.Config = append(p.Config, ConfigEntry{Key: "Auxiliary scripts", Value: fmt.Sprintf("%d", len(cfg.Scripts))})
}

// AddMode records the pipeline mode for the page header.
func (p *Page) AddMode(mode string) {
	p.Mode = display.Mode(mode)
}

// AddRuns fills the per-run metadata section in positional order.
func (p *Page) AddRuns(runs []RunEntry) {
	p.Runs = append(p.Runs, runs...)
}

// AddScripts fills the auxiliary-script section from dispatch results.
func (p *Page) AddScripts(results []scripts.Result) {
	for _, r := range results {
		entry := ScriptEntry{
			Path:     r.Path,
			Status:   display.ScriptStatus(r.ExitCode),
			Duration: r.Duration.Round(time.Millisecond).String(),
			Output:   r.Output,
		}
		if r.Err != "" {
			entry.Output = r.Err
		}
		p.Scripts = append(p.Scripts, entry)
	}
}

// AddWarnings surfaces the pipeline's tolerated conditions on the page.
func (p *Page) AddWarnings(warnings []string) {
	p.Warnings = append(p.Warnings, warnings...)
}

// Render produces the HTML document.
func (p *Page) Render() ([]byte, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "report.gohtml", p); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

// Save renders the page and writes {outputDir}/index.html, returning the
// written path.
func (p *Page) Save(outputDir string) (string, error) {
	data, err := p.Render()
	if err != nil {
		return "", err
	}
	path := filepath.Join(outputDir, reportFilename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
