// Package blayer compiles flat Bristol boolean circuits into layered
// schedules and evaluates them generically, so the same circuit runs
// over cleartext booleans or homomorphic ciphertexts.
package blayer

import (
	"github.com/consensys/gnark/logger"

	"github.com/fhe-go/blayer/bristol"
	"github.com/fhe-go/blayer/layered"
	"github.com/fhe-go/blayer/layering"
)

type CompileResult struct {
	circuit *layered.Circuit
	stats   layered.Stats
}

// Compile schedules a Bristol circuit into layers and validates the
// result.
func Compile(c *bristol.Circuit) (*CompileResult, error) {
	lc, err := layering.Compile(c)
	if err != nil {
		return nil, err
	}
	if err := layered.Validate(lc); err != nil {
		return nil, err
	}
	stats := lc.GetStats()
	log := logger.Logger()
	log.Info().
		Int("layers", stats.NbLayers).
		Int("nbGates", stats.NbGates).
		Int("nbPrunes", stats.NbPrunes).
		Int("maxLive", stats.MaxLive).
		Msg("compiled")
	return &CompileResult{circuit: lc, stats: stats}, nil
}

func (c *CompileResult) GetLayeredCircuit() *layered.Circuit {
	return c.circuit
}

func (c *CompileResult) GetStats() layered.Stats {
	return c.stats
}
