package circuit

// repeaterLocked reports whether a Repeater or Comparator neighbor on
// either side is powering b toward it.
func repeaterLocked(sim *Simulator, b *Block) bool {
	facing := b.Rotation
	for _, side := range [2]Direction{facing.Left(), facing.Right()} {
		n := b.Pos.Side(side)
		nb, ok := sim.store.blockAt(n)
		if !ok || !nb.Kind.sideLocksRepeater() {
			continue
		}
		if sim.powerOutput(nb, side.Opposite()) > 0 {
			return true
		}
	}
	return false
}

// repeaterOnNeighborUpdate re-evaluates locking on every call, and while
// unlocked schedules a transition delay×2 game ticks later whenever the
// rear input disagrees with the current powered state.
func repeaterOnNeighborUpdate(sim *Simulator, b *Block) {
	b.Logic.Locked = repeaterLocked(sim, b)
	if b.Logic.Locked {
		return
	}
	rearPower := sim.getPower(b.Pos, b.Rotation.Opposite())
	want := rearPower > 0
	if want != b.Logic.Powered {
		sim.scheduleUpdate(b, int64(b.Logic.Delay)*2, 0, 0)
	}
}

// repeaterOnScheduledTick commits the powered transition if still locked-free
// and the rear input still disagrees with the current state (:
// "the scheduled callback recomputes want at fire time and commits only if
// still differing").
func repeaterOnScheduledTick(sim *Simulator, b *Block) {
	if b.Logic.Locked {
		return
	}
	rearPower := sim.getPower(b.Pos, b.Rotation.Opposite())
	want := rearPower > 0
	if want == b.Logic.Powered {
		return
	}
	b.Logic.Powered = want
	if want {
		b.Logic.PowerLevel = 15
	} else {
		b.Logic.PowerLevel = 0
	}
	b.Visual.Powered = want
	b.Visual.PowerLevel = b.Logic.PowerLevel
	b.Visual.TypeTag = b.ExternalKind()
	sim.notifyNeighbors(b.Pos)
}
