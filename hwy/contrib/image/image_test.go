package image

import "testing"

func TestNewCube(t *testing.T) {
	c := NewCube[float32](2, 3, 4)
	if c.Lines() != 2 || c.Samples() != 3 || c.Bands() != 4 {
		t.Fatalf("dims: got %dx%dx%d, want 2x3x4", c.Lines(), c.Samples(), c.Bands())
	}
	if c.PixelCount() != 6 {
		t.Errorf("PixelCount: got %d, want 6", c.PixelCount())
	}
}

func TestNewCubeZeroDimensions(t *testing.T) {
	c := NewCube[float32](0, 0, 0)
	if c.PixelCount() != 0 {
		t.Errorf("PixelCount: got %d, want 0", c.PixelCount())
	}
}

func TestCubePixelBILAddressing(t *testing.T) {
	// 2 lines, 3 samples, 2 bands, true BIL order: band 0 holds all of a
	// line's samples, then band 1 holds all of that line's samples, then
	// the next line. Band stride within a pixel is samples (3), not 1.
	data := make([]float32, 2*3*2)
	for i := range data {
		data[i] = float32(i)
	}
	c := NewCubeFromBIL(data, 2, 3, 2)

	// Last pixel of the cube: line 1, sample 2. Band 0 lives at
	// 1*3*2 + 0*3 + 2 = 8, band 1 at 1*3*2 + 1*3 + 2 = 11.
	px := c.Pixel(1, 2)
	want := []float32{8, 11}
	if len(px) != 2 || px[0] != want[0] || px[1] != want[1] {
		t.Errorf("Pixel(1,2) = %v, want %v", px, want)
	}

	// Pixel(0,0): band 0 at offset 0, band 1 at offset 0+3=3. A stride-1
	// (BIP-style) read would wrongly return [0 1]; this is the regression
	// the review's true-BIL fix is meant to catch.
	px0 := c.Pixel(0, 0)
	if px0[0] != 0 || px0[1] != 3 {
		t.Errorf("Pixel(0,0) = %v, want [0 3]", px0)
	}
}

func TestCubePixelAt(t *testing.T) {
	data := make([]float32, 2*3*2)
	for i := range data {
		data[i] = float32(i)
	}
	c := NewCubeFromBIL(data, 2, 3, 2)

	for idx := range c.PixelCount() {
		line, sample := idx/3, idx%3
		if got, want := c.PixelAt(idx), c.Pixel(line, sample); got[0] != want[0] || got[1] != want[1] {
			t.Errorf("PixelAt(%d) = %v, want %v", idx, got, want)
		}
	}
}

func TestCubePixelOutOfBounds(t *testing.T) {
	c := NewCube[float32](2, 2, 2)
	if c.Pixel(-1, 0) != nil {
		t.Error("Pixel(-1,0) should return nil")
	}
	if c.Pixel(0, 2) != nil {
		t.Error("Pixel(0,2) should return nil")
	}
	if c.PixelAt(-1) != nil || c.PixelAt(4) != nil {
		t.Error("PixelAt out of range should return nil")
	}
}

func TestCubePixelIsAGatheredCopy(t *testing.T) {
	// With samples=1 a pixel's bands are samples=1 apart, i.e. adjacent in
	// the backing slice; Pixel must still gather into a fresh slice rather
	// than alias the cube's storage.
	c := NewCube[float32](1, 1, 3)
	px := c.Pixel(0, 0)
	px[1] = 42
	if c.Raw()[1] == 42 {
		t.Error("Pixel should return a gathered copy, not an alias of the backing storage")
	}
}

func TestCubeClone(t *testing.T) {
	c := NewCube[float32](1, 2, 2)
	c.Raw()[c.Offset(0, 0)] = 1
	clone := c.Clone()
	clone.Raw()[clone.Offset(0, 0)] = 99
	if c.Raw()[c.Offset(0, 0)] != 1 {
		t.Error("Clone should be independent of the source cube")
	}
}

func TestCubeScaleInPlace(t *testing.T) {
	c := NewCube[float32](1, 3, 5)
	for i := range c.Raw() {
		c.Raw()[i] = float32(i + 1)
	}
	c.ScaleInPlace(0.5)
	for i, v := range c.Raw() {
		want := float32(i+1) * 0.5
		if v != want {
			t.Errorf("ScaleInPlace[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestCubeScaleInPlaceOddLength(t *testing.T) {
	// A band count that won't divide evenly by any vector width exercises
	// the scalar tail in ScaleInPlace.
	c := NewCube[float32](1, 1, 17)
	for i := range c.Raw() {
		c.Raw()[i] = 2
	}
	c.ScaleInPlace(3)
	for _, v := range c.Raw() {
		if v != 6 {
			t.Errorf("tail element = %v, want 6", v)
		}
	}
}

func BenchmarkCubePixelAt(b *testing.B) {
	c := NewCube[float32](50, 50, 224)
	b.ReportAllocs()
	for b.Loop() {
		for idx := range c.PixelCount() {
			_ = c.PixelAt(idx)
		}
	}
}
