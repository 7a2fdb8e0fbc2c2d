// Command hsiclass classifies a hyperspectral image cube against a set of
// reference spectra, one label per pixel.
package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"

	"github.com/jvillarasensio/hsiclass/hwy/contrib/workerpool"
	"github.com/jvillarasensio/hsiclass/internal/classify"
	"github.com/jvillarasensio/hsiclass/internal/config"
	"github.com/jvillarasensio/hsiclass/internal/envi"
	"github.com/jvillarasensio/hsiclass/internal/telemetry"
	"github.com/jvillarasensio/hsiclass/internal/viz"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "hsiclass",
		Short: "Classify hyperspectral cube pixels against reference spectra",
		Long: `hsiclass reads an ENVI hyperspectral cube and a directory of reference
spectra, classifies every pixel against its nearest reference by Euclidean
distance or spectral correlation, and writes one label per pixel.`,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("hsiclass v%s\n", version)
		},
	})

	classifyCmd := &cobra.Command{
		Use:   "classify",
		Short: "Run one classification pass",
		RunE:  runClassify,
	}
	classifyCmd.Flags().String("config", "", "YAML config file path")
	classifyCmd.Flags().String("cube", "", "Path to the ENVI cube binary")
	classifyCmd.Flags().String("header", "", "Path to the ENVI .hdr file (defaults to cube path with .hdr extension)")
	classifyCmd.Flags().String("spectra", "", "Path to the reference spectra directory")
	classifyCmd.Flags().String("output", "", "Base path for the classification image (.jpg) and legend (.legend.txt) (defaults to \"classification\")")
	classifyCmd.Flags().String("metric", "euclidean", "Similarity metric: euclidean or ccm")
	classifyCmd.Flags().String("device", "default", "Device class: default, cpu, gpu, accelerator")
	classifyCmd.Flags().String("residency", "borrowed", "Residency mode: borrowed or owned")
	classifyCmd.Flags().String("tier", "", "Force a kernel tier: flat, grouped, cached (default: auto)")
	rootCmd.AddCommand(classifyCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func runClassify(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")

	fileCfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	override := config.File{}
	override.CubePath, _ = flags.GetString("cube")
	override.SpectraPath, _ = flags.GetString("spectra")
	override.OutputPath, _ = flags.GetString("output")
	override.Metric, _ = flags.GetString("metric")
	override.Device, _ = flags.GetString("device")
	override.Residency, _ = flags.GetString("residency")
	override.Tier, _ = flags.GetString("tier")
	merged := config.Merge(fileCfg, override)

	if merged.CubePath == "" || merged.SpectraPath == "" {
		return fmt.Errorf("%w: --cube and --spectra are required", classify.ErrConfigInvalid)
	}

	headerPath, _ := flags.GetString("header")
	if headerPath == "" {
		headerPath = merged.CubePath + ".hdr"
	}

	log := stdr.New(stdlog.New(os.Stderr, "", stdlog.LstdFlags))

	cfg, err := buildConfig(merged)
	if err != nil {
		return err
	}

	pool := workerpool.New(0)
	defer pool.Close()

	hdr, err := envi.ReadHeader(headerPath)
	if err != nil {
		return fmt.Errorf("%w: %v", classify.ErrMetadataInvalid, err)
	}

	cube, err := envi.ReadCube(merged.CubePath, hdr, pool)
	if err != nil {
		return err
	}

	targetWavelengths := make([]float64, len(hdr.Wavelengths))
	for i, wl := range hdr.Wavelengths {
		targetWavelengths[i] = wl / hdr.WavelengthUnitScale
	}
	spectra, err := envi.ReadSpectraDir(merged.SpectraPath, targetWavelengths)
	if err != nil {
		return err
	}

	engine := classify.New(log, telemetry.NoOp())
	defer engine.Close()

	result, err := engine.Classify(context.Background(), cfg, cube, spectra)
	if err != nil {
		return err
	}

	log.Info(fmt.Sprintf("classified %s pixels against %s reference spectra in %s",
		humanize.Comma(int64(len(result.Labels))),
		humanize.Comma(int64(spectra.NumSpectra())),
		humanize.FtoaWithDigits(result.Timing.TotalMS, 1)+"ms"))

	return writeResult(merged.OutputPath, result, spectra.Names, hdr.Lines, hdr.Samples)
}

func buildConfig(f config.File) (classify.Config, error) {
	metric, err := classify.ParseMetric(f.Metric)
	if err != nil {
		return classify.Config{}, err
	}
	device, err := classify.ParseDeviceClass(f.Device)
	if err != nil {
		return classify.Config{}, err
	}
	residency := classify.Borrowed
	if f.Residency == "owned" {
		residency = classify.Owned
	}

	cfg := classify.Config{Metric: metric, Device: device, Residency: residency}
	if f.Tier != "" {
		tier, err := parseTier(f.Tier)
		if err != nil {
			return classify.Config{}, err
		}
		cfg.ForceTier = &tier
	}
	return cfg, nil
}

func parseTier(s string) (classify.KernelTier, error) {
	switch s {
	case "flat":
		return classify.TierFlat, nil
	case "grouped":
		return classify.TierGrouped, nil
	case "cached":
		return classify.TierCached, nil
	default:
		return 0, fmt.Errorf("%w: unknown tier %q", classify.ErrConfigInvalid, s)
	}
}

// writeResult renders result as the two artifacts create_results produces in
// the original analyzer: a colour-coded classification image and a legend
// of material/colour/pixel-share/timing, both derived from base. base
// defaults to "classification" in the working directory when --output is
// empty, since unlike a plain label dump a JPEG has nowhere sensible to go
// on stdout.
func writeResult(base string, result classify.Result, names []string, lines, samples int) error {
	if base == "" {
		base = "classification"
	}

	imgFile, err := os.Create(base + ".jpg")
	if err != nil {
		return fmt.Errorf("opening image output: %w", err)
	}
	defer imgFile.Close()
	if err := viz.WriteClassificationImage(imgFile, result, lines, samples); err != nil {
		return fmt.Errorf("writing image output: %w", err)
	}

	legendFile, err := os.Create(base + ".legend.txt")
	if err != nil {
		return fmt.Errorf("opening legend output: %w", err)
	}
	defer legendFile.Close()
	if err := viz.WriteLegend(legendFile, result, names); err != nil {
		return fmt.Errorf("writing legend output: %w", err)
	}

	return nil
}

// exitCodeFor maps the engine's sentinel error taxonomy onto distinct
// process exit codes so scripted callers can branch on failure class.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, classify.ErrConfigInvalid):
		return 2
	case errors.Is(err, classify.ErrMetadataInvalid):
		return 3
	case errors.Is(err, classify.ErrUnsupportedInterleave):
		return 4
	case errors.Is(err, classify.ErrBackendUnavailable):
		return 5
	case errors.Is(err, classify.ErrResidencyFailure):
		return 6
	case errors.Is(err, classify.ErrKernelFailure):
		return 7
	default:
		return 1
	}
}
