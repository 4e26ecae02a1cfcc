// Package cli wires the detection pipeline behind the geovision command.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"geovision/internal/debug"
	"geovision/internal/detection"
	"geovision/internal/geo"
	"geovision/internal/imaging"
)

// OutputName is the fixed file name written inside the output directory.
const OutputName = "geo.json"

// Execute runs the root command, exiting nonzero on any error.
func Execute(version string) {
	if err := NewRootCmd(version).Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the geovision command. Exposed for tests.
func NewRootCmd(version string) *cobra.Command {
	var (
		imagePath string
		outdir    string
		verbosity int
		rho       float64
		theta     float64
	)

	cmd := &cobra.Command{
		Use:   "geovision",
		Short: "Detect road lines in aerial imagery and export them as GeoJSON",
		Long: `geovision extracts candidate road lines from a single satellite or
aerial image and writes them to <outdir>/geo.json as a GeoJSON
FeatureCollection.

Detection runs Canny edge detection followed by a Hough line transform.
Pixel coordinates are exported as-is; no geographic projection is applied.`,
		Version: version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Runtime failures are not usage problems.
			cmd.SilenceUsage = true

			sink := debug.New(verbosity, cmd.OutOrStdout())
			defer sink.Close()

			logLevel := slog.LevelWarn
			if verbosity >= 1 {
				logLevel = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: logLevel,
			}))

			opts := runOptions{
				image:  imagePath,
				outdir: outdir,
			}
			if cmd.Flags().Changed("rho") {
				opts.rho = &rho
			}
			if cmd.Flags().Changed("theta") {
				opts.theta = &theta
			}

			return run(opts, sink, logger)
		},
	}

	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "fully-qualified path to the input image (required)")
	cmd.Flags().StringVarP(&outdir, "outdir", "o", "", "fully-qualified directory for the output (required)")
	cmd.Flags().CountVarP(&verbosity, "verbosity", "v", "increase debug verbosity (-v logs, -vv adds image windows)")
	cmd.Flags().Float64VarP(&rho, "rho", "r", 1.0, "Hough distance resolution in pixels")
	cmd.Flags().Float64VarP(&theta, "theta", "t", detection.DefaultParams().Theta, "Hough angle resolution in radians")
	_ = cmd.MarkFlagRequired("image")
	_ = cmd.MarkFlagRequired("outdir")

	return cmd
}

type runOptions struct {
	image  string
	outdir string
	rho    *float64
	theta  *float64
}

// run executes one load-detect-export pass and writes geo.json.
//
// A run with no detected lines is still a success and writes a valid
// FeatureCollection with empty geometry.
func run(opts runOptions, sink debug.Sink, logger *slog.Logger) error {
	stat, err := os.Stat(opts.outdir)
	if err != nil {
		return fmt.Errorf("output directory: %w", err)
	}
	if !stat.IsDir() {
		return fmt.Errorf("output directory %s is not a directory", opts.outdir)
	}

	cache := imaging.NewImageCache()

	info, err := imaging.LoadInfo(cache, opts.image)
	if err != nil {
		return err
	}
	logger.Debug("input image",
		"path", opts.image,
		"width", info.Width,
		"height", info.Height,
		"format", info.Format,
		"bytes", info.FileSizeBytes)

	detector := detection.NewDetector(cache, sink)
	if opts.rho != nil {
		detector.Hough.Rho = *opts.rho
	}
	if opts.theta != nil {
		detector.Hough.Theta = *opts.theta
	}

	segments, err := detector.Detect(opts.image)
	if err != nil {
		return err
	}
	logger.Debug("detection complete", "segments", len(segments))

	exporter := geo.NewExporter(sink)
	exporter.Add(segments)
	doc, err := exporter.JSON()
	if err != nil {
		return err
	}

	outPath := filepath.Join(opts.outdir, OutputName)
	if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	logger.Debug("wrote output", "path", outPath)

	return nil
}
