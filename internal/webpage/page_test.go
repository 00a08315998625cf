package webpage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"parsec/internal/catalogue"
	"parsec/internal/config"
	"parsec/internal/metadata"
	"parsec/internal/scripts"
	"parsec/internal/webpage"
)

func samplePage() *webpage.Page {
	p := webpage.New("run1, run2")
	p.AddMode("comparison")

	rec := metadata.NewRecord("run1, run2", "")
	rec.Plots["density_temperature"] = metadata.PlotRecord{
		Filename:  "density_temperature",
		Caption:   "Density against temperature",
		Statistic: "median",
	}
	p.AddMetadata(rec, "png")

	p.AddConfig(config.Config{
		ConfigDirectory: "conf",
		PlotsDirectory:  "plots",
	}, "body { margin: 0 }")

	p.AddRuns([]webpage.RunEntry{
		{
			Name:      "run1",
			InputDir:  "run1",
			Catalogue: "run1/halos_0000.txt",
			Snapshot:  &catalogue.Snapshot{Name: "snapshot_0000", Redshift: 0.5},
		},
		{Name: "run2", InputDir: "run2", Catalogue: "run2/halos_0000.txt"},
	})

	p.AddScripts([]scripts.Result{
		{Path: "conf/extra.sh", ExitCode: 0, Duration: 120 * time.Millisecond, Output: "done"},
		{Path: "conf/broken.sh", ExitCode: 2, Duration: time.Millisecond, Output: "boom"},
	})

	p.AddWarnings([]string{"plot ghost: skipped"})
	return p
}

func TestRender_AllSections(t *testing.T) {
	html, err := samplePage().Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	text := string(html)

	for _, want := range []string{
		"<title>run1, run2</title>",
		"body { margin: 0 }",
		`src="density_temperature.png"`,
		"Density against temperature",
		"Binned Median",
		"snapshot_0000",
		"run2/halos_0000.txt",
		"conf/extra.sh",
		"failed (exit 2)",
		"plot ghost: skipped",
		"Plot definitions",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestRender_EmptyPage(t *testing.T) {
	html, err := webpage.New("run1").Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	text := string(html)
	if !strings.Contains(text, "No figures were produced.") {
		t.Error("empty page should say no figures were produced")
	}
	if strings.Contains(text, "<section id=\"scripts\">") {
		t.Error("script section should be absent when no scripts ran")
	}
}

func TestSave_WritesIndexHTML(t *testing.T) {
	dir := t.TempDir()
	path, err := samplePage().Save(dir)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != filepath.Join(dir, "index.html") {
		t.Errorf("report path = %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("index.html not written: %v", err)
	}
}
