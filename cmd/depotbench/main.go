// depotbench times the core storage operations over a configurable number of
// entities.
//
//	go run ./cmd/depotbench run --entities 100000 --profile cpu --out .
//	go tool pprof -http=":8000" cpu.pprof
package main

import (
	"os"

	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if err := newRootCmd(&logger).Execute(); err != nil {
		logger.Error().Err(err).Msg("depotbench failed")
		os.Exit(1)
	}
}
