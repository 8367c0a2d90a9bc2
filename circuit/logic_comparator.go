package circuit

// comparatorOnNeighborUpdate schedules a recompute on the next tick for
// every neighbor change (: "delay 0, i.e., next tick").
func comparatorOnNeighborUpdate(sim *Simulator, b *Block) {
	sim.scheduleUpdate(b, 0, 0, 0)
}

// comparatorOnScheduledTick recomputes the comparator's output from its
// rear and side inputs per its mode.
func comparatorOnScheduledTick(sim *Simulator, b *Block) {
	facing := b.Rotation
	rear := facing.Opposite()
	rearPower := sim.getPower(b.Pos, rear)
	sidePower := sim.getPower(b.Pos, facing.Left())
	if p := sim.getPower(b.Pos, facing.Right()); p > sidePower {
		sidePower = p
	}

	var out uint8
	switch b.Logic.Mode {
	case ModeSubtract:
		if rearPower > sidePower {
			out = rearPower - sidePower
		}
	default: // ModeCompare
		if rearPower >= sidePower {
			out = rearPower
		}
	}

	if out == b.Logic.PowerLevel {
		return
	}
	b.Logic.PowerLevel = out
	b.Logic.Powered = out > 0
	b.Visual.PowerLevel = out
	b.Visual.Powered = out > 0
	b.Visual.TypeTag = b.ExternalKind()
	sim.notifyNeighbors(b.Pos)
}
