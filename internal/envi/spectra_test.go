package envi

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadSpectraDirParsesAndResamples(t *testing.T) {
	dir := t.TempDir()
	contents := `Name = quartz
First X Value = 400
Last X Value = 600
X Units = Nanometers
400 0.1
500 0.5
600 0.9
`
	if err := os.WriteFile(filepath.Join(dir, "quartz.txt"), []byte(contents), 0o644); err != nil {
		t.Fatalf("writing spectrum file: %v", err)
	}

	target := []float64{400e-9, 450e-9, 600e-9}
	table, err := ReadSpectraDir(dir, target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Names) != 1 || table.Names[0] != "quartz" {
		t.Fatalf("got names %v", table.Names)
	}
	if table.NumSpectra() != 1 {
		t.Fatalf("got %d spectra, want 1", table.NumSpectra())
	}

	row := table.Row(0)
	if row[0] != 0.1 {
		t.Errorf("at 400nm: got %v, want 0.1", row[0])
	}
	if row[2] != 0.9 {
		t.Errorf("at 600nm: got %v, want 0.9", row[2])
	}
	wantMid := float32(0.3) // interpolated halfway between 0.1 at 400 and 0.5 at 500
	if diff := row[1] - wantMid; diff > 1e-4 || diff < -1e-4 {
		t.Errorf("at 450nm: got %v, want ~%v", row[1], wantMid)
	}
}

func TestReadSpectraDirClampsOutOfRangeToEndpoint(t *testing.T) {
	dir := t.TempDir()
	contents := `Name = basalt
X Units = nanometers
500 0.2
700 0.8
`
	if err := os.WriteFile(filepath.Join(dir, "basalt.txt"), []byte(contents), 0o644); err != nil {
		t.Fatalf("writing spectrum file: %v", err)
	}

	target := []float64{300e-9, 900e-9}
	table, err := ReadSpectraDir(dir, target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row := table.Row(0)
	if row[0] != 0.2 {
		t.Errorf("below range: got %v, want clamp to 0.2", row[0])
	}
	if row[1] != 0.8 {
		t.Errorf("above range: got %v, want clamp to 0.8", row[1])
	}
}

func TestReadSpectraDirRejectsTooFewPoints(t *testing.T) {
	dir := t.TempDir()
	contents := `Name = single
X Units = nanometers
500 0.2
`
	if err := os.WriteFile(filepath.Join(dir, "single.txt"), []byte(contents), 0o644); err != nil {
		t.Fatalf("writing spectrum file: %v", err)
	}

	if _, err := ReadSpectraDir(dir, []float64{500}); err == nil {
		t.Error("expected an error for a spectrum with fewer than two points")
	}
}
