// Package envi implements the classification engine's external
// collaborators: ENVI header and binary cube I/O, and reference-spectrum
// text parsing with wavelength resampling. These are data-format boundary
// packages — the classification core never parses a file itself.
package envi

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jvillarasensio/hsiclass/internal/classify/condition"
)

// DataType names an ENVI "data type" code and its in-file element width.
type DataType int

const (
	DataUint8 DataType = 1
	DataInt16 DataType = 2
	DataInt32 DataType = 3
	DataFloat32 DataType = 4
	DataFloat64 DataType = 5
	DataUint16 DataType = 12
	DataUint32 DataType = 13
	DataInt64 DataType = 14
	DataUint64 DataType = 15
)

// ByteWidth returns the on-disk element size for d, or 0 if d is not one of
// the documented codes.
func (d DataType) ByteWidth() int {
	switch d {
	case DataUint8:
		return 1
	case DataInt16, DataUint16:
		return 2
	case DataInt32, DataFloat32, DataUint32:
		return 4
	case DataFloat64, DataInt64, DataUint64:
		return 8
	default:
		return 0
	}
}

// wavelengthUnitScale maps a unit name to its scale factor in units per
// metre, per §6 of the cube metadata contract.
var wavelengthUnitScale = map[string]float64{
	"meters": 1, "m": 1,
	"centimeters": 1e2, "cm": 1e2,
	"millimeters": 1e3, "mm": 1e3,
	"micrometers": 1e6, "um": 1e6,
	"nanometers": 1e9, "nm": 1e9,
	"angstroms": 1e10,
}

var interleaveMapper = map[string]condition.Interleave{
	"bsq": condition.BSQ,
	"bil": condition.BIL,
	"bip": condition.BIP,
}

// Header is the immutable metadata record of a cube, parsed from a plain
// text ENVI .hdr file.
type Header struct {
	Samples                int
	Lines                  int
	Bands                  int
	HeaderOffset           int
	DataType               DataType
	Interleave             condition.Interleave
	ReflectanceScaleFactor int
	WavelengthUnitScale    float64
	Wavelengths            []float64
}

// ImageSize returns the total element count of the cube this header
// describes.
func (h Header) ImageSize() int {
	return h.Samples * h.Lines * h.Bands
}

// ReadHeader parses an ENVI .hdr file. samples, lines, bands, data type,
// interleave, wavelength units, reflectance scale factor and the wavelength
// list are required (header offset defaults to 0; byte order is not read);
// a missing or invalid key reports kMetadataInvalid-equivalent detail via
// the returned error, matching the original reader's check_properties pass
// but reporting which field failed instead of a single opaque failure.
func ReadHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, fmt.Errorf("envi: opening header: %w", err)
	}
	defer f.Close()

	h := Header{DataType: -1, ReflectanceScaleFactor: -1, WavelengthUnitScale: -1}
	h.Interleave = -1

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		key, value, ok := splitHeaderLine(line)
		if !ok {
			continue
		}

		switch key {
		case "samples":
			h.Samples, err = strconv.Atoi(value)
		case "lines":
			h.Lines, err = strconv.Atoi(value)
		case "bands":
			h.Bands, err = strconv.Atoi(value)
		case "header offset":
			h.HeaderOffset, err = strconv.Atoi(value)
		case "reflectance scale factor":
			h.ReflectanceScaleFactor, err = strconv.Atoi(value)
		case "data type":
			code, convErr := strconv.Atoi(value)
			if convErr != nil {
				err = convErr
				break
			}
			h.DataType = DataType(code)
		case "interleave":
			il, known := interleaveMapper[strings.ToLower(value)]
			if !known {
				return Header{}, fmt.Errorf("envi: unrecognised interleave %q", value)
			}
			h.Interleave = il
		case "wavelength units":
			scale, known := wavelengthUnitScale[strings.ToLower(value)]
			if !known {
				return Header{}, fmt.Errorf("envi: unrecognised wavelength unit %q", value)
			}
			h.WavelengthUnitScale = scale
		case "wavelength":
			h.Wavelengths, err = readWavelengthList(scanner, value)
		}
		if err != nil {
			return Header{}, fmt.Errorf("envi: parsing %q: %w", key, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return Header{}, fmt.Errorf("envi: reading header: %w", err)
	}

	return h, h.validate()
}

func (h Header) validate() error {
	switch {
	case h.Samples <= 0, h.Lines <= 0, h.Bands <= 0:
		return fmt.Errorf("envi: samples/lines/bands must be positive")
	case h.DataType.ByteWidth() == 0:
		return fmt.Errorf("envi: unrecognised or missing data type")
	case h.Interleave < condition.BIL || h.Interleave > condition.BIP:
		return fmt.Errorf("envi: missing interleave")
	case h.ReflectanceScaleFactor <= 0:
		return fmt.Errorf("envi: reflectance scale factor must be positive")
	case h.WavelengthUnitScale <= 0:
		return fmt.Errorf("envi: missing wavelength units")
	case len(h.Wavelengths) != h.Bands:
		return fmt.Errorf("envi: wavelength count %d does not match bands %d", len(h.Wavelengths), h.Bands)
	}
	return nil
}

// splitHeaderLine splits a "key = value" line, trimming whitespace from
// both sides and lower-casing the key for case-insensitive matching.
func splitHeaderLine(line string) (key, value string, ok bool) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", "", false
	}
	key = strings.ToLower(strings.TrimSpace(line[:idx]))
	value = strings.TrimSpace(line[idx+1:])
	return key, value, key != ""
}

// readWavelengthList consumes a "wavelength = { v1, v2, ... }" block, which
// may continue across multiple lines until a line containing "}".
func readWavelengthList(scanner *bufio.Scanner, firstValue string) ([]float64, error) {
	var values []float64
	buf := strings.TrimPrefix(strings.TrimSpace(firstValue), "{")
	for {
		closed := strings.Contains(buf, "}")
		buf = strings.ReplaceAll(buf, "}", "")
		for _, tok := range strings.Split(buf, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing wavelength value %q: %w", tok, err)
			}
			values = append(values, v)
		}
		if closed {
			return values, nil
		}
		if !scanner.Scan() {
			return nil, fmt.Errorf("unterminated wavelength list")
		}
		buf = scanner.Text()
	}
}
