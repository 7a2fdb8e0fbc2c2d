package envi

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/jvillarasensio/hsiclass/internal/classify"
)

// spectrum is one parsed reference spectrum text file before resampling:
// a name, a unit scale for its own wavelength column, and the raw
// (wavelength, reflectance) pairs in file order.
type spectrum struct {
	name        string
	unitScale   float64
	wavelengths []float64
	reflectance []float64
}

// ReadSpectraDir parses every reference spectrum file in dir and resamples
// each onto targetWavelengths (the cube's own band centers, already scaled
// to metres). Unlike the original reader's nearest-wavelength walk, this
// resamples by linear interpolation between the two bracketing source
// points — see DESIGN.md for the rationale.
func ReadSpectraDir(dir string, targetWavelengths []float64) (classify.SpectraTable, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return classify.SpectraTable{}, fmt.Errorf("envi: reading spectra directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	// Each file is an independent parse; errgroup fans them out and Wait
	// returns the first error any of them reports.
	parsed := make([]spectrum, len(paths))
	var g errgroup.Group
	for i, p := range paths {
		g.Go(func() error {
			sp, err := readSpectrumFile(p)
			if err != nil {
				return fmt.Errorf("envi: parsing spectrum %s: %w", p, err)
			}
			parsed[i] = sp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return classify.SpectraTable{}, err
	}

	bands := len(targetWavelengths)
	table := classify.SpectraTable{Bands: bands}
	for _, sp := range parsed {
		table.Names = append(table.Names, sp.name)
		table.Data = append(table.Data, resample(sp, targetWavelengths)...)
	}

	if unique := lo.Uniq(table.Names); len(unique) != len(table.Names) {
		return classify.SpectraTable{}, fmt.Errorf("envi: duplicate reference spectrum name among %v", table.Names)
	}

	return table, nil
}

// readSpectrumFile parses one "Name / First X Value / Last X Value / X
// Units" header block followed by a two-column wavelength/reflectance
// table, mirroring the original ENVI_reader's read_spectrum field labels.
func readSpectrumFile(path string) (spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return spectrum{}, err
	}
	defer f.Close()

	sp := spectrum{name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	unitScale := 1.0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if key, value, ok := splitHeaderLine(line); ok {
			switch key {
			case "name":
				sp.name = value
				continue
			case "x units":
				scale, known := wavelengthUnitScale[strings.ToLower(value)]
				if !known {
					return spectrum{}, fmt.Errorf("unrecognised x units %q", value)
				}
				unitScale = scale
				continue
			case "first x value", "last x value":
				continue
			}
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		wl, err1 := strconv.ParseFloat(fields[0], 64)
		refl, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		sp.wavelengths = append(sp.wavelengths, wl/unitScale)
		sp.reflectance = append(sp.reflectance, refl)
	}
	sp.unitScale = unitScale

	if len(sp.wavelengths) < 2 {
		return spectrum{}, fmt.Errorf("spectrum has fewer than two sample points")
	}
	return sp, scanner.Err()
}

// resample linearly interpolates sp onto target, clamping to the nearest
// endpoint outside sp's own wavelength range.
func resample(sp spectrum, target []float64) []float32 {
	out := make([]float32, len(target))
	ascending := sp.wavelengths[1] > sp.wavelengths[0]

	for i, tw := range target {
		out[i] = float32(interpolate(sp.wavelengths, sp.reflectance, tw, ascending))
	}
	return out
}

func interpolate(xs, ys []float64, x float64, ascending bool) float64 {
	n := len(xs)
	if !ascending {
		return interpolate(reverse(xs), reverse(ys), x, true)
	}
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}
	idx := sort.SearchFloat64s(xs, x)
	if xs[idx] == x {
		return ys[idx]
	}
	hi := idx
	lo := idx - 1
	frac := (x - xs[lo]) / (xs[hi] - xs[lo])
	return ys[lo] + frac*(ys[hi]-ys[lo])
}

func reverse(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[len(v)-1-i] = x
	}
	return out
}
