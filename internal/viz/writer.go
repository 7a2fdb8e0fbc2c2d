// Package viz renders a classification result as the two artifacts the
// original analyzer produced: a colour-coded classification image and a
// legend listing each material's colour, pixel share, and stage timings.
// Grounded on _examples/original_source/Analyzer/code/Results_writer.cpp's
// write_jpg/write_legend, expressed with the standard image/jpeg encoder
// instead of stb_image_write since no pack example vendors a third-party
// JPEG or image-encoding library.
package viz

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"text/tabwriter"

	"github.com/jvillarasensio/hsiclass/internal/classify"
)

// JPEGQuality matches the original writer's JPG_MAX_QUALITY.
const JPEGQuality = 100

// palette mirrors Results_writer.cpp's ten-colour table, cycled by
// label % len(palette) for material counts beyond ten.
var palette = []struct {
	name string
	c    color.RGBA
}{
	{"Red", color.RGBA{255, 0, 0, 255}},
	{"Green", color.RGBA{0, 255, 0, 255}},
	{"Blue", color.RGBA{0, 0, 255, 255}},
	{"Yellow", color.RGBA{255, 255, 0, 255}},
	{"Magenta", color.RGBA{255, 0, 255, 255}},
	{"Cyan", color.RGBA{0, 255, 255, 255}},
	{"White", color.RGBA{255, 255, 255, 255}},
	{"Black", color.RGBA{0, 0, 0, 255}},
	{"Light Gray", color.RGBA{128, 128, 128, 255}},
	{"Gray", color.RGBA{25, 25, 25, 255}},
}

// colorFor returns the palette entry for label, or black for an unmatched
// pixel (label < 0, the sentinel a kernel leaves behind when no reference
// spectrum ever improved on the initial score).
func colorFor(label int32) (string, color.RGBA) {
	if label < 0 {
		return "unmatched", palette[7].c // Black
	}
	p := palette[int(label)%len(palette)]
	return p.name, p.c
}

// WriteClassificationImage renders result's per-pixel labels as a
// samples-wide, lines-tall JPEG, one colour per label from the fixed
// ten-colour palette.
func WriteClassificationImage(w io.Writer, result classify.Result, lines, samples int) error {
	if lines*samples != len(result.Labels) {
		return fmt.Errorf("viz: label count %d does not match %dx%d grid", len(result.Labels), lines, samples)
	}

	img := image.NewRGBA(image.Rect(0, 0, samples, lines))
	for line := 0; line < lines; line++ {
		for s := 0; s < samples; s++ {
			_, c := colorFor(result.Labels[line*samples+s])
			img.SetRGBA(s, line, c)
		}
	}

	return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
}

// WriteLegend writes, for every reference spectrum name, its assigned
// colour and the count/percentage of pixels it won, followed by a
// column-aligned table of the run's stage timings — the same two blocks
// Results_writer.cpp's write_legend produces as one text file.
func WriteLegend(w io.Writer, result classify.Result, names []string) error {
	counts := make([]int, len(names))
	unmatched := 0
	for _, label := range result.Labels {
		if label < 0 || int(label) >= len(names) {
			unmatched++
			continue
		}
		counts[label]++
	}
	total := len(result.Labels)

	bw := bufio.NewWriter(w)
	for i, name := range names {
		colorName, _ := colorFor(int32(i))
		pct := 0.0
		if total > 0 {
			pct = float64(counts[i]) * 100.0 / float64(total)
		}
		fmt.Fprintf(bw, "%d: %s   =>   %s   %d/%d   %.4g%% of the total pixels\n",
			i+1, name, colorName, counts[i], total, pct)
	}
	if unmatched > 0 {
		fmt.Fprintf(bw, "unmatched: no reference spectrum improved on the initial score   %d/%d\n", unmatched, total)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Times in milliseconds:")
	tw := tabwriter.NewWriter(bw, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Init\tStaging\tConditioning\tClassify\tDelivery\tTotal")
	fmt.Fprintf(tw, "%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
		result.Timing.InitMS, result.Timing.StagingMS, result.Timing.ConditioningMS,
		result.Timing.ClassifyMS, result.Timing.DeliveryMS, result.Timing.TotalMS)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("viz: writing timing table: %w", err)
	}

	return bw.Flush()
}

// WriteLabelMap writes result's per-pixel labels as a CSV grid of samples
// columns by lines rows: a plain-text alternative to the JPEG image for
// callers that want the raw label grid (tests, downstream tooling that
// doesn't want to decode an image).
func WriteLabelMap(w io.Writer, result classify.Result, lines, samples int) error {
	if lines*samples != len(result.Labels) {
		return fmt.Errorf("viz: label count %d does not match %dx%d grid", len(result.Labels), lines, samples)
	}

	bw := bufio.NewWriter(w)
	for line := 0; line < lines; line++ {
		for s := 0; s < samples; s++ {
			if s > 0 {
				bw.WriteByte(',')
			}
			fmt.Fprintf(bw, "%d", result.Labels[line*samples+s])
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
