package circuit

// buttonPulseDelay is the fixed 20 game tick pulse width,
// regardless of any re-press attempt while already pressed.
const buttonPulseDelay = 20

// buttonPress presses a button, a no-op while already pressed.
func buttonPress(sim *Simulator, b *Block) {
	if b.Logic.PowerLevel > 0 {
		return
	}
	b.Logic.PowerLevel = 15
	b.Logic.Powered = true
	b.Visual.PowerLevel = 15
	b.Visual.Powered = true
	sim.notifyNeighbors(b.Pos)
	sim.scheduleUpdate(b, buttonPulseDelay, 0, 0)
}

// buttonOnScheduledTick releases the button at the end of its pulse.
func buttonOnScheduledTick(sim *Simulator, b *Block) {
	b.Logic.PowerLevel = 0
	b.Logic.Powered = false
	b.Visual.PowerLevel = 0
	b.Visual.Powered = false
	sim.notifyNeighbors(b.Pos)
}
