package catalogue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleCatalogue = `# masses temperatures
1.0e10 1.0e4
2.0e10 2.0e4
4.0e10 8.0e4
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCatalogue(t *testing.T) {
	path := writeFile(t, t.TempDir(), "halos_0000.txt", sampleCatalogue)

	cat, err := LoadCatalogue(path, "")
	if err != nil {
		t.Fatalf("LoadCatalogue: %v", err)
	}

	if cat.NumHaloes() != 3 {
		t.Errorf("NumHaloes = %d, want 3", cat.NumHaloes())
	}
	masses, ok := cat.Column("masses")
	if !ok {
		t.Fatal("masses column missing")
	}
	if diff := cmp.Diff([]float64{1e10, 2e10, 4e10}, masses); diff != "" {
		t.Errorf("masses mismatch (-want +got):\n%s", diff)
	}
	if _, ok := cat.Column("absent"); ok {
		t.Error("unknown column should not resolve")
	}
	if diff := cmp.Diff([]string{"masses", "temperatures"}, cat.Columns()); diff != "" {
		t.Errorf("column names mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCatalogue_Registration(t *testing.T) {
	dir := t.TempDir()
	catPath := writeFile(t, dir, "halos.txt", sampleCatalogue)
	regPath := writeFile(t, dir, "registration.yml", `columns:
  - name: masses_msun
    source: masses
    scale: 1.0e10
`)

	cat, err := LoadCatalogue(catPath, regPath)
	if err != nil {
		t.Fatalf("LoadCatalogue: %v", err)
	}
	derived, ok := cat.Column("masses_msun")
	if !ok {
		t.Fatal("derived column missing")
	}
	if derived[0] != 1e20 {
		t.Errorf("derived[0] = %g, want 1e20", derived[0])
	}
}

func TestLoadCatalogue_BadShape(t *testing.T) {
	path := writeFile(t, t.TempDir(), "halos.txt", "# a b\n1.0\n")
	if _, err := LoadCatalogue(path, ""); err == nil {
		t.Fatal("expected error for ragged row")
	}
}

func TestLoadCatalogue_MissingHeader(t *testing.T) {
	path := writeFile(t, t.TempDir(), "halos.txt", "1.0 2.0\n")
	if _, err := LoadCatalogue(path, ""); err == nil {
		t.Fatal("expected error for missing column header")
	}
}

func TestLoadSnapshot(t *testing.T) {
	path := writeFile(t, t.TempDir(), "snapshot_0000.hdf5", `name: cosmo_box
redshift: 0.1
box_size: 25.0
particle_counts:
  gas: 1000
  dark_matter: 2000
`)

	snap, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if snap.Name != "cosmo_box" || snap.Redshift != 0.1 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if snap.ParticleCounts["dark_matter"] != 2000 {
		t.Errorf("particle counts not parsed: %+v", snap.ParticleCounts)
	}
	if snap.Path != path {
		t.Errorf("Path = %q, want %q", snap.Path, path)
	}
}
