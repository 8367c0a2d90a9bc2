package circuit

// wireOnNeighborUpdate recomputes a wire's power level from its four
// cardinal neighbors: wire-to-wire transfer attenuates by 1
// (floored at 0), while a power-emitting neighbor of any other kind
// transfers its full output. The strict equality guard against the prior
// level is what keeps notifyNeighbors recursion convergent.
func wireOnNeighborUpdate(sim *Simulator, b *Block) {
	var newLevel uint8
	for _, d := range directions {
		n := b.Pos.Side(d)
		nb, ok := sim.store.blockAt(n)
		if !ok {
			continue
		}
		var in uint8
		if nb.Kind == KindWire {
			if nb.Logic.PowerLevel > 0 {
				in = nb.Logic.PowerLevel - 1
			}
		} else {
			in = sim.powerOutput(nb, d.Opposite())
		}
		if in > newLevel {
			newLevel = in
		}
	}
	if newLevel == b.Logic.PowerLevel {
		return
	}
	b.Logic.PowerLevel = newLevel
	b.Logic.Powered = newLevel > 0
	b.Visual.PowerLevel = newLevel
	b.Visual.Powered = newLevel > 0
	sim.notifyNeighbors(b.Pos)
}
