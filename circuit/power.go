package circuit

// getPower resolves the power entering target from direction fromDir
// (component C4, ).
func (sim *Simulator) getPower(target Coordinate, fromDir Direction) uint8 {
	src := target.Side(fromDir)
	b, ok := sim.store.blockAt(src)
	if !ok {
		return 0
	}
	return sim.powerOutput(b, fromDir.Opposite())
}

// maxNeighborPower returns the maximum power entering pos from any of the
// four cardinal neighbors.
func (sim *Simulator) maxNeighborPower(pos Coordinate) uint8 {
	var max uint8
	for _, d := range directions {
		if p := sim.getPower(pos, d); p > max {
			max = p
		}
	}
	return max
}

// powerOutput asks b for the power it emits toward the given direction
// (i.e. a neighbor on that side of b). Non-emitting kinds (Solid,
// PistonHead — ) and non-facing sides of directional emitters
// return 0.
func (sim *Simulator) powerOutput(b *Block, toDir Direction) uint8 {
	switch b.Kind {
	case KindWire:
		// Wires emit omnidirectionally to direct queriers.
		return b.Logic.PowerLevel
	case KindTorch:
		// No back-powering of the supporting block.
		if toDir == b.Rotation {
			return 0
		}
		return b.Logic.PowerLevel
	case KindLever, KindButton:
		return b.Logic.PowerLevel
	case KindRepeater:
		if toDir == b.Rotation {
			return b.Logic.PowerLevel
		}
		return 0
	case KindComparator:
		if toDir == b.Rotation {
			return b.Logic.PowerLevel
		}
		return 0
	case KindObserver:
		if toDir == b.Rotation.Opposite() {
			return b.Logic.PowerLevel
		}
		return 0
	case KindPowerSource:
		return 15
	default:
		// Solid, Piston, StickyPiston, PistonHead: no re-transmission of
		// power through conductors (non-goal).
		return 0
	}
}
