package circuit

// torchReevalDelay is the fixed 2 game tick reevaluation delay used by both
// placement and neighbor updates.
const torchReevalDelay = 2

func torchOnPlaced(sim *Simulator, b *Block) {
	sim.scheduleUpdate(b, torchReevalDelay, 0, 0)
}

func torchOnNeighborUpdate(sim *Simulator, b *Block) {
	sim.scheduleUpdate(b, torchReevalDelay, 0, 0)
}

// torchOnScheduledTick extinguishes a lit torch when its attached block is
// now powered, or ignites an off torch when it is not.
func torchOnScheduledTick(sim *Simulator, b *Block) {
	inputPower := sim.getPower(b.Pos, b.Rotation)
	switch {
	case inputPower > 0 && b.lit():
		b.Logic.PowerLevel = 0
		b.Visual.PowerLevel = 0
		b.Visual.Powered = false
		b.Visual.TypeTag = b.ExternalKind()
		sim.notifyNeighbors(b.Pos)
	case inputPower == 0 && !b.lit():
		b.Logic.PowerLevel = 15
		b.Visual.PowerLevel = 15
		b.Visual.Powered = true
		b.Visual.TypeTag = b.ExternalKind()
		sim.notifyNeighbors(b.Pos)
	}
}
