package layered

type Stats struct {
	// number of layers in the schedule
	NbLayers int
	// total number of gates
	NbGates int
	// gate counts by operation
	NbAnd  int
	NbOr   int
	NbXor  int
	NbNot  int
	NbCopy int
	// number of input/output bits
	NbInput  int
	NbOutput int
	// total number of pruned wires
	NbPrunes int
	// peak number of simultaneously live wires. This is the number that
	// bounds memory when wire values are ciphertexts.
	MaxLive int
}

// GetStats collects statistical information about the schedule, such as
// the number of layers, per-operation gate counts and the peak live-wire
// footprint.
func (c *Circuit) GetStats() Stats {
	s := Stats{
		NbLayers: len(c.Layers),
	}
	for _, label := range c.Inputs {
		s.NbInput += label.Bits
	}
	for _, label := range c.Outputs {
		s.NbOutput += label.Bits
	}
	live := s.NbInput
	s.MaxLive = live
	for _, layer := range c.Layers {
		for _, g := range layer.Gates {
			switch g.Op {
			case And:
				s.NbAnd++
			case Or:
				s.NbOr++
			case Xor:
				s.NbXor++
			case Not:
				s.NbNot++
			case Copy:
				s.NbCopy++
			}
		}
		s.NbGates += len(layer.Gates)
		s.NbPrunes += len(layer.Prunes)
		live += len(layer.Gates)
		if live > s.MaxLive {
			s.MaxLive = live
		}
		live -= len(layer.Prunes)
	}
	return s
}
