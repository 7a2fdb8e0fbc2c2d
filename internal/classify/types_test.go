package classify

import (
	"errors"
	"testing"
)

func TestParseMetric(t *testing.T) {
	tests := []struct {
		in   string
		want Metric
	}{
		{"euclidean", Euclidean},
		{"EUCLIDEAN", Euclidean},
		{"ccm", CCM},
		{"CCM", CCM},
	}
	for _, tt := range tests {
		got, err := ParseMetric(tt.in)
		if err != nil {
			t.Errorf("ParseMetric(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseMetric(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMetricRejectsUnknown(t *testing.T) {
	_, err := ParseMetric("cosine")
	if !errors.Is(err, ErrConfigInvalid) {
		t.Errorf("got %v, want ErrConfigInvalid", err)
	}
}

func TestParseDeviceClassDefaultsToDefault(t *testing.T) {
	got, err := ParseDeviceClass("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != DeviceDefault {
		t.Errorf("got %v, want DeviceDefault", got)
	}
}

func TestParseDeviceClassRejectsUnknown(t *testing.T) {
	_, err := ParseDeviceClass("tpu")
	if !errors.Is(err, ErrConfigInvalid) {
		t.Errorf("got %v, want ErrConfigInvalid", err)
	}
}

func TestSpectraTableNumSpectraAndRow(t *testing.T) {
	table := SpectraTable{Bands: 2, Data: []float32{1, 2, 3, 4, 5, 6}}
	if table.NumSpectra() != 3 {
		t.Errorf("got %d, want 3", table.NumSpectra())
	}
	row := table.Row(1)
	want := []float32{3, 4}
	for i, got := range row {
		if got != want[i] {
			t.Errorf("row[%d] = %v, want %v", i, got, want[i])
		}
	}
}
