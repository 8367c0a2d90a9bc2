package circuit

// leverToggle flips a lever between 0 and 15.
func leverToggle(sim *Simulator, b *Block) {
	if b.Logic.PowerLevel > 0 {
		b.Logic.PowerLevel = 0
		b.Logic.Powered = false
	} else {
		b.Logic.PowerLevel = 15
		b.Logic.Powered = true
	}
	b.Visual.PowerLevel = b.Logic.PowerLevel
	b.Visual.Powered = b.Logic.Powered
	sim.notifyNeighbors(b.Pos)
}
