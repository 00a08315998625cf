package metadata

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFilename(t *testing.T) {
	cases := []struct {
		inputDir, base, snapshot string
		want                     string
	}{
		{"run1", "data", "snapshot_0000.hdf5", "run1/data_0000.yml"},
		{"run2", "data", "run2/snapshot_0123.hdf5", "run2/data_0123.yml"},
		{"out", "metadata", "snap_9999.hdf5", "out/metadata_9999.yml"},
		// Short stems are zero-padded on the left to four characters.
		{"d", "data", "s7.hdf5", "d/data_00s7.yml"},
		// Only the last four characters of longer stems survive.
		{"d", "data", "snapshot_12345.hdf5", "d/data_2345.yml"},
	}
	for _, tc := range cases {
		if got := Filename(tc.inputDir, tc.base, tc.snapshot); got != filepath.FromSlash(tc.want) {
			t.Errorf("Filename(%q, %q, %q) = %q, want %q", tc.inputDir, tc.base, tc.snapshot, got, tc.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	rec := NewRecord("run1", "snapshot_0000.hdf5")
	rec.Plots["density_temperature"] = PlotRecord{
		Filename:  "density_temperature",
		Caption:   "Density vs temperature",
		Statistic: "median",
		XScale:    "log",
		YScale:    "log",
		Line: Line{
			X: []float64{1e10, 2e10, 4e10},
			Y: []float64{1e4, 2e4, 8e4},
		},
	}

	path := filepath.Join(t.TempDir(), "data_0000.yml")
	if err := Write(path, rec); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_Unwritable(t *testing.T) {
	rec := NewRecord("run1", "snapshot_0000.hdf5")
	err := Write(filepath.Join(t.TempDir(), "missing", "data_0000.yml"), rec)
	if err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
}

func TestRead_Missing(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "data_0000.yml")); err == nil {
		t.Fatal("expected error for missing metadata file")
	}
}

func TestPlotNames_Sorted(t *testing.T) {
	rec := NewRecord("run1", "s")
	rec.Plots["b"] = PlotRecord{Filename: "b"}
	rec.Plots["a"] = PlotRecord{Filename: "a"}
	if diff := cmp.Diff([]string{"a", "b"}, rec.PlotNames()); diff != "" {
		t.Errorf("plot names mismatch (-want +got):\n%s", diff)
	}
}
