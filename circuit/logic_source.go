package circuit

// sourceOnPlaced initializes a PowerSource's observable state. Its output is
// fixed at 15 regardless of this field (power.go.powerOutput returns 15
// unconditionally for KindPowerSource); it is kept in sync purely for
// Query/Visual consumers.
func sourceOnPlaced(sim *Simulator, b *Block) {
	b.Logic.PowerLevel = 15
	b.Logic.Powered = true
	b.Visual.PowerLevel = 15
	b.Visual.Powered = true
}
