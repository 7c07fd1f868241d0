package test

import (
	"testing"

	"github.com/fhe-go/blayer/layering"
)

func testRandomCircuits(t *testing.T, conf *randomCircuitConfig, seedL, seedR, nCase int) {
	a := NewAssert(t)
	for seed := seedL; seed <= seedR; seed++ {
		conf.seed = seed
		src := randomCircuit(conf)
		lc, err := layering.Compile(src)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		a.CheckSchedule(src, lc)
		for i := 1; i <= nCase; i++ {
			a.CheckEval(src, lc, randomAssignment(src, seed*1000+i))
		}
	}
}

func TestRandomCircuitsSmall(t *testing.T) {
	testRandomCircuits(t, &randomCircuitConfig{
		nbIn:    randRange{2, 8},
		nbGates: randRange{8, 40},
	}, 1, 200, 3)
}

func TestRandomCircuitsMedium(t *testing.T) {
	testRandomCircuits(t, &randomCircuitConfig{
		nbIn:    randRange{16, 64},
		nbGates: randRange{200, 1000},
	}, 1, 20, 2)
}

func TestRandomCircuitsLarge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large random circuits in short mode")
	}
	testRandomCircuits(t, &randomCircuitConfig{
		nbIn:    randRange{64, 128},
		nbGates: randRange{20000, 50000},
	}, 1, 3, 1)
}
