package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dyang37/go-sysmat/config"
	"github.com/dyang37/go-sysmat/model"
	"github.com/dyang37/go-sysmat/sysmat"
)

// flags holds the geometry, mask and output paths plus the log level, bound
// to both cobra flags and SYSMAT_* environment variables via viper.
type flags struct {
	geometryPath string
	maskPath     string
	outputPath   string
	logLevel     string
}

func newRootCmd() *cobra.Command {
	var f flags
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "sysmat-build",
		Short: "Build a packed 3-D parallel-beam CT system matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(v, f)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.geometryPath, "geometry", "", "Path to geometry file (JSON or YAML) describing ImageParams/SinoParams/SVParams")
	fs.StringVar(&f.maskPath, "mask", "", "Path to reconstruction mask file (one byte per voxel, nonzero = active); omit for an all-active mask")
	fs.StringVar(&f.outputPath, "output", "a.bin", "Output path for the packed system matrix")
	fs.StringVar(&f.logLevel, "log-level", "info", "Log level (debug|info|warn|error)")

	if err := v.BindPFlags(fs); err != nil {
		panic(fmt.Sprintf("sysmat-build: bind flags: %v", err))
	}
	v.SetEnvPrefix("SYSMAT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd
}

func runBuild(v *viper.Viper, f flags) error {
	geometryPath := v.GetString("geometry")
	if geometryPath == "" {
		geometryPath = f.geometryPath
	}
	maskPath := v.GetString("mask")
	if maskPath == "" {
		maskPath = f.maskPath
	}
	outputPath := v.GetString("output")
	if outputPath == "" {
		outputPath = f.outputPath
	}
	logLevel := v.GetString("log-level")
	if logLevel == "" {
		logLevel = f.logLevel
	}

	log := newLogger(logLevel)

	if geometryPath == "" {
		return fmt.Errorf("--geometry is required")
	}

	geom, err := config.Load(geometryPath)
	if err != nil {
		return err
	}

	mask, err := loadMask(maskPath, geom.Image.Nx*geom.Image.Ny)
	if err != nil {
		return err
	}

	store, err := sysmat.ComputeA(geom.Image, geom.Sino, geom.SV, mask, log)
	if err != nil {
		return err
	}

	if err := sysmat.WriteA(outputPath, store); err != nil {
		return err
	}

	log.Info().Str("output", outputPath).Msg("system matrix written")
	return nil
}

// loadMask reads a reconstruction mask (one byte per voxel, nonzero =
// active) from path, or returns an all-active mask of length n if path is
// empty.
func loadMask(path string, n int) ([]bool, error) {
	if path == "" {
		mask := make([]bool, n)
		for i := range mask {
			mask[i] = true
		}
		return mask, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrIO, path, err)
	}
	if len(data) != n {
		return nil, fmt.Errorf("%w: mask file %s has %d bytes, want %d", model.ErrShape, path, len(data), n)
	}
	mask := make([]bool, n)
	for i, b := range data {
		mask[i] = b != 0
	}
	return mask, nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}
