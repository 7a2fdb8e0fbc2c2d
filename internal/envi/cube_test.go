package envi

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/jvillarasensio/hsiclass/hwy/contrib/workerpool"
	"github.com/jvillarasensio/hsiclass/internal/classify/condition"
)

func writeFloat32File(t *testing.T, values []float32) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.bin")
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("writing cube file: %v", err)
	}
	return path
}

func TestReadCubeBIL(t *testing.T) {
	pool := workerpool.New(0)
	defer pool.Close()

	hdr := Header{Samples: 2, Lines: 1, Bands: 2, DataType: DataFloat32, Interleave: condition.BIL}
	path := writeFloat32File(t, []float32{1, 2, 3, 4})

	cube, err := ReadCube(path, hdr, pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float32{1, 2, 3, 4}
	for i, got := range cube.Raw() {
		if got != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got, want[i])
		}
	}
}

func TestReadCubeClampsNegativeReflectance(t *testing.T) {
	pool := workerpool.New(0)
	defer pool.Close()

	hdr := Header{Samples: 2, Lines: 1, Bands: 1, DataType: DataFloat32, Interleave: condition.BIL}
	path := writeFloat32File(t, []float32{-5, 3})

	cube, err := ReadCube(path, hdr, pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float32{0, 3}
	for i, got := range cube.Raw() {
		if got != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got, want[i])
		}
	}
}

func TestReadCubeRejectsTruncatedFile(t *testing.T) {
	pool := workerpool.New(0)
	defer pool.Close()

	hdr := Header{Samples: 4, Lines: 1, Bands: 1, DataType: DataFloat32, Interleave: condition.BIL}
	path := writeFloat32File(t, []float32{1, 2})

	if _, err := ReadCube(path, hdr, pool); err == nil {
		t.Error("expected an error for a truncated cube file")
	}
}

func TestReadCubeHonorsHeaderOffset(t *testing.T) {
	pool := workerpool.New(0)
	defer pool.Close()

	hdr := Header{Samples: 2, Lines: 1, Bands: 1, DataType: DataFloat32, Interleave: condition.BIL, HeaderOffset: 4}
	path := writeFloat32File(t, []float32{999, 1, 2})

	cube, err := ReadCube(path, hdr, pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float32{1, 2}
	for i, got := range cube.Raw() {
		if got != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got, want[i])
		}
	}
}
