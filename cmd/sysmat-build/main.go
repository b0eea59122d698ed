// Command sysmat-build computes a packed system matrix from a geometry
// file and writes it to disk using the §6 binary layout.
package main

import (
	"os"

	"github.com/rs/zerolog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		zerolog.New(os.Stderr).With().Timestamp().Logger().Error().Err(err).Msg("sysmat-build failed")
		os.Exit(1)
	}
}
