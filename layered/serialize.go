package layered

import (
	"fmt"

	"github.com/fhe-go/blayer/utils"
)

const serializeMagic = 5787864243809003843

// Serialize converts a Circuit into a byte array for storage or
// transmission.
func (c *Circuit) Serialize() []byte {
	o := utils.OutputBuf{}
	o.AppendUint64(serializeMagic)
	o.AppendUint64(uint64(c.WireCount))
	appendLabels := func(labels []Label) {
		o.AppendUint64(uint64(len(labels)))
		for _, l := range labels {
			o.AppendString(l.Name)
			o.AppendUint64(uint64(l.Start))
			o.AppendUint64(uint64(l.Bits))
		}
	}
	appendLabels(c.Inputs)
	appendLabels(c.Outputs)
	o.AppendUint64(uint64(len(c.Layers)))
	for _, layer := range c.Layers {
		o.AppendUint64(uint64(len(layer.Gates)))
		for _, g := range layer.Gates {
			o.AppendUint8(uint8(g.Op))
			o.AppendUint64(uint64(g.In0))
			if !g.IsUnary() {
				o.AppendUint64(uint64(g.In1))
			}
			o.AppendUint64(uint64(g.Out))
		}
		o.AppendUint64(uint64(len(layer.Prunes)))
		for _, w := range layer.Prunes {
			o.AppendUint64(uint64(w))
		}
	}
	return o.Bytes()
}

// Deserialize parses a byte array produced by Serialize back into a
// Circuit and validates it.
func Deserialize(buf []byte) (*Circuit, error) {
	in := utils.NewInputBuf(buf)
	if err := in.CheckLen(16); err != nil {
		return nil, err
	}
	if in.ReadUint64() != serializeMagic {
		return nil, fmt.Errorf("invalid header")
	}
	c := &Circuit{}
	c.WireCount = int(in.ReadUint64())
	readLabels := func() ([]Label, error) {
		if err := in.CheckLen(8); err != nil {
			return nil, err
		}
		n := in.ReadUint64()
		labels := make([]Label, n)
		for i := range labels {
			if err := in.CheckLen(8); err != nil {
				return nil, err
			}
			labels[i].Name = in.ReadString()
			if err := in.CheckLen(16); err != nil {
				return nil, err
			}
			labels[i].Start = int(in.ReadUint64())
			labels[i].Bits = int(in.ReadUint64())
		}
		return labels, nil
	}
	var err error
	if c.Inputs, err = readLabels(); err != nil {
		return nil, err
	}
	if c.Outputs, err = readLabels(); err != nil {
		return nil, err
	}
	if err := in.CheckLen(8); err != nil {
		return nil, err
	}
	nbLayers := in.ReadUint64()
	c.Layers = make([]Layer, nbLayers)
	for i := range c.Layers {
		if err := in.CheckLen(8); err != nil {
			return nil, err
		}
		nbGates := in.ReadUint64()
		gates := make([]Gate, nbGates)
		for j := range gates {
			if err := in.CheckLen(17); err != nil {
				return nil, err
			}
			op := Op(in.ReadUint8())
			if op > Copy {
				return nil, fmt.Errorf("invalid gate op %d", op)
			}
			gates[j].Op = op
			gates[j].In0 = int(in.ReadUint64())
			if !op.IsUnary() {
				if err := in.CheckLen(16); err != nil {
					return nil, err
				}
				gates[j].In1 = int(in.ReadUint64())
			}
			gates[j].Out = int(in.ReadUint64())
		}
		c.Layers[i].Gates = gates
		if err := in.CheckLen(8); err != nil {
			return nil, err
		}
		nbPrunes := in.ReadUint64()
		if err := in.CheckLen(int(nbPrunes) * 8); err != nil {
			return nil, err
		}
		prunes := make([]int, nbPrunes)
		for j := range prunes {
			prunes[j] = int(in.ReadUint64())
		}
		c.Layers[i].Prunes = prunes
	}
	if in.Remaining() != 0 {
		return nil, fmt.Errorf("%d trailing bytes", in.Remaining())
	}
	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}
