package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"parsec/internal/config"
	"parsec/internal/metadata"
	"parsec/internal/plotting"
	"parsec/internal/simrun"
)

const snapshotYAML = `name: snapshot_0000
redshift: 0.0
scale_factor: 1.0
box_size: 25.0
code: toysim
`

const catalogueTable = `# masses temperatures
1.0e10 1.0e4
2.0e10 2.0e4
4.0e10 3.0e4
8.0e10 4.0e4
1.6e11 5.0e4
`

const plotYAML = `filename: density_temperature
caption: Halo mass against temperature
x: masses
y: temperatures
statistic: median
bins: 4
`

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// fixture lays out a config directory plus one run directory and returns
// the loaded config and the resolved run.
func fixture(t *testing.T, root, runDir string) (config.Config, simrun.Run) {
	t.Helper()
	confDir := filepath.Join(root, "conf")
	write(t, filepath.Join(confDir, "config.yml"), "plots_directory: plots\nstylesheet: style.css\n")
	write(t, filepath.Join(confDir, "style.css"), "body { font-family: sans-serif }")
	write(t, filepath.Join(confDir, "plots", "density_temperature.yml"), plotYAML)

	input := filepath.Join(root, runDir)
	snap := filepath.Join(input, "snapshot_0000.hdf5")
	cat := filepath.Join(input, "halos_0000.txt")
	write(t, snap, snapshotYAML)
	write(t, cat, catalogueTable)

	cfg, err := config.LoadFromDir(confDir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg, simrun.Run{Name: runDir, Snapshot: snap, Catalogue: cat, InputDir: input}
}

func TestExecute_StandaloneProducesAllArtifacts(t *testing.T) {
	root := t.TempDir()
	cfg, run := fixture(t, root, "run1")
	out := filepath.Join(root, "out")

	var seen []string
	res, err := Execute(cfg, []simrun.Run{run}, Options{
		OutputDir:    out,
		MetadataBase: "data",
		Progress:     func(i, n int, name string) { seen = append(seen, name) },
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Mode != simrun.ModeStandalone {
		t.Errorf("mode = %v, want standalone", res.Mode)
	}
	for _, artifact := range []string{
		filepath.Join(out, "density_temperature.png"),
		filepath.Join(out, "index.html"),
		filepath.Join(root, "run1", "data_0000.yml"),
	} {
		if _, err := os.Stat(artifact); err != nil {
			t.Errorf("missing artifact: %v", err)
		}
	}
	if len(res.MetadataPaths) != 1 {
		t.Errorf("metadata paths = %v", res.MetadataPaths)
	}
	if len(seen) != 1 || seen[0] != "density_temperature" {
		t.Errorf("progress observed %v", seen)
	}

	rec, err := metadata.Read(res.MetadataPaths[0])
	if err != nil {
		t.Fatalf("read exported metadata: %v", err)
	}
	pr, ok := rec.Plots["density_temperature"]
	if !ok {
		t.Fatal("exported metadata missing the produced plot")
	}
	if len(pr.Line.X) == 0 || len(pr.Line.X) != len(pr.Line.Y) {
		t.Errorf("exported line malformed: %d x, %d y", len(pr.Line.X), len(pr.Line.Y))
	}
	if pr.XLabel != "Halo Mass [M☉]" {
		t.Errorf("x label = %q", pr.XLabel)
	}
}

func TestExecute_ComparisonRoundTrip(t *testing.T) {
	root := t.TempDir()
	cfg, run1 := fixture(t, root, "run1")
	_, run2 := fixture(t, root, "run2")
	opts := Options{OutputDir: filepath.Join(root, "solo"), MetadataBase: "data"}

	for _, run := range []simrun.Run{run1, run2} {
		if _, err := Execute(cfg, []simrun.Run{run}, opts); err != nil {
			t.Fatalf("standalone pass for %s: %v", run.Name, err)
		}
	}

	out := filepath.Join(root, "combined")
	res, err := Execute(cfg, []simrun.Run{run1, run2}, Options{OutputDir: out, MetadataBase: "data"})
	if err != nil {
		t.Fatalf("comparison Execute: %v", err)
	}

	if res.Mode != simrun.ModeComparison {
		t.Errorf("mode = %v, want comparison", res.Mode)
	}
	if _, err := os.Stat(filepath.Join(out, "density_temperature.png")); err != nil {
		t.Errorf("composite figure missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "index.html")); err != nil {
		t.Errorf("report missing: %v", err)
	}
	if res.Record.RunName != "run1, run2" {
		t.Errorf("merged run name = %q", res.Record.RunName)
	}
	for _, w := range res.Warnings {
		if strings.Contains(w, "excluded from comparison") {
			t.Errorf("no run should be excluded: %v", res.Warnings)
		}
	}
}

func TestExecute_ModeFollowsSnapshotCount(t *testing.T) {
	root := t.TempDir()
	cfg, run1 := fixture(t, root, "run1")
	_, run2 := fixture(t, root, "run2")

	for _, run := range []simrun.Run{run1, run2} {
		opts := Options{OutputDir: filepath.Join(root, "solo"), MetadataBase: "data", SnapshotCount: 1}
		if _, err := Execute(cfg, []simrun.Run{run}, opts); err != nil {
			t.Fatalf("standalone pass for %s: %v", run.Name, err)
		}
	}

	// Two snapshots against one catalogue resolve to a single run, but the
	// snapshot count alone decides the mode: this must still be a
	// comparison, reconstructed from metadata without touching catalogues.
	runs, _ := simrun.Resolve(
		[]string{run1.Snapshot, run2.Snapshot},
		[]string{run1.Catalogue},
		[]string{run1.InputDir},
	)
	if len(runs) != 1 {
		t.Fatalf("resolved %d runs, want 1", len(runs))
	}
	res, err := Execute(cfg, runs, Options{OutputDir: filepath.Join(root, "combined"), MetadataBase: "data", SnapshotCount: 2})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Mode != simrun.ModeComparison {
		t.Errorf("mode = %v, want comparison with 2 snapshots", res.Mode)
	}

	// One snapshot with surplus catalogues stays standalone.
	runs, _ = simrun.Resolve(
		[]string{run1.Snapshot},
		[]string{run1.Catalogue, run2.Catalogue, run2.Catalogue},
		[]string{run1.InputDir},
	)
	res, err = Execute(cfg, runs, Options{OutputDir: filepath.Join(root, "solo2"), MetadataBase: "data", SnapshotCount: 1})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Mode != simrun.ModeStandalone {
		t.Errorf("mode = %v, want standalone with 1 snapshot", res.Mode)
	}
}

func TestExecute_ComparisonSkipsRunWithoutMetadata(t *testing.T) {
	root := t.TempDir()
	cfg, run1 := fixture(t, root, "run1")
	_, run2 := fixture(t, root, "run2")

	// Only run1 has been through a standalone pass.
	if _, err := Execute(cfg, []simrun.Run{run1}, Options{OutputDir: filepath.Join(root, "solo"), MetadataBase: "data"}); err != nil {
		t.Fatalf("standalone pass: %v", err)
	}

	res, err := Execute(cfg, []simrun.Run{run1, run2}, Options{OutputDir: filepath.Join(root, "combined"), MetadataBase: "data"})
	if err != nil {
		t.Fatalf("comparison Execute: %v", err)
	}

	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "run2") && strings.Contains(w, "excluded from comparison") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected run2 exclusion warning, got %v", res.Warnings)
	}
	if len(res.MetadataPaths) != 1 {
		t.Errorf("only run1's metadata should be read, got %v", res.MetadataPaths)
	}
}

func TestExecute_ComparisonAllMetadataMissing(t *testing.T) {
	root := t.TempDir()
	cfg, run1 := fixture(t, root, "run1")
	_, run2 := fixture(t, root, "run2")

	_, err := Execute(cfg, []simrun.Run{run1, run2}, Options{OutputDir: filepath.Join(root, "combined"), MetadataBase: "data"})
	if !errors.Is(err, ErrNoMetadata) {
		t.Errorf("err = %v, want ErrNoMetadata", err)
	}
}

func TestExecute_NoRuns(t *testing.T) {
	_, err := Execute(config.Config{}, nil, Options{OutputDir: t.TempDir()})
	if !errors.Is(err, ErrNoRuns) {
		t.Errorf("err = %v, want ErrNoRuns", err)
	}
}

func TestDetectCollisions(t *testing.T) {
	specs := []plotting.Spec{
		{Filename: "a"},
		{Filename: "a"},
		{Filename: "b"},
	}
	got := DetectCollisions(specs, "png")
	if len(got) != 1 {
		t.Fatalf("got %d collisions, want 1", len(got))
	}
	if got[0].Filename != "a" || got[0].Count != 2 || got[0].Extension != "png" {
		t.Errorf("collision = %+v", got[0])
	}
}
