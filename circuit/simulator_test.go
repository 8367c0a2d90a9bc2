package circuit

import "testing"

func newTestSim(t *testing.T) *Simulator {
	t.Helper()
	return New(Config{Width: 16, Height: 16})
}

func TestCreateBlockRejectsOutOfBounds(t *testing.T) {
	sim := newTestSim(t)
	if _, err := sim.CreateBlock(KindWire, -1, 0); err != ErrOutOfBounds {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := sim.CreateBlock(KindWire, 16, 0); err != ErrOutOfBounds {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestCreateBlockRejectsOccupied(t *testing.T) {
	sim := newTestSim(t)
	if _, err := sim.CreateBlock(KindWire, 2, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := sim.CreateBlock(KindWire, 2, 2); err != ErrOccupied {
		t.Fatalf("expected ErrOccupied, got %v", err)
	}
}

func TestRemoveEmptyCellIsNoOp(t *testing.T) {
	sim := newTestSim(t)
	if err := sim.RemoveBlock(5, 5); err != ErrEmptyCell {
		t.Fatalf("expected ErrEmptyCell, got %v", err)
	}
}

// TestAtMostOneBlockPerCell exercises the core grid invariant directly:
// after place, remove, replace, a cell always holds zero or one block.
func TestAtMostOneBlockPerCell(t *testing.T) {
	sim := newTestSim(t)
	id1, err := sim.CreateBlock(KindWire, 3, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sim.Query(3, 3); !ok {
		t.Fatalf("expected a block at (3,3)")
	}
	if err := sim.RemoveBlock(3, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sim.Query(3, 3); ok {
		t.Fatalf("expected no block at (3,3) after removal")
	}
	id2, err := sim.CreateBlock(KindTorch, 3, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id2 == id1 {
		t.Fatalf("expected a fresh BlockId, ids must never be reused, got %d twice", id1)
	}
}

func TestRotateBlockCycles(t *testing.T) {
	sim := newTestSim(t)
	sim.CreateBlock(KindRepeater, 1, 1)
	for i := 0; i < 4; i++ {
		b, _ := sim.Query(1, 1)
		want := Direction(i)
		if b.Rotation != want {
			t.Fatalf("rotation step %d: got %v want %v", i, b.Rotation, want)
		}
		if err := sim.RotateBlock(1, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	b, _ := sim.Query(1, 1)
	if b.Rotation != North {
		t.Fatalf("expected rotation to wrap back to North, got %v", b.Rotation)
	}
}

func TestConfigureRepeaterDelayCycles(t *testing.T) {
	sim := newTestSim(t)
	sim.CreateBlock(KindRepeater, 1, 1)
	b, _ := sim.Query(1, 1)
	if b.Logic.Delay != 1 {
		t.Fatalf("expected default delay 1, got %d", b.Logic.Delay)
	}
	wantSeq := []uint8{2, 3, 4, 1}
	for i, want := range wantSeq {
		if err := sim.ConfigureRepeaterDelay(1, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, _ := sim.Query(1, 1)
		if b.Logic.Delay != want {
			t.Fatalf("step %d: got delay %d want %d", i, b.Logic.Delay, want)
		}
	}
}

func TestLeverTogglePowersAdjacentWire(t *testing.T) {
	sim := newTestSim(t)
	sim.CreateBlock(KindLever, 0, 0)
	sim.CreateBlock(KindWire, 1, 0)

	b, _ := sim.Query(1, 0)
	if b.Logic.PowerLevel != 0 {
		t.Fatalf("expected wire unpowered before toggle, got %d", b.Logic.PowerLevel)
	}

	if err := sim.Interact(0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, _ = sim.Query(1, 0)
	if b.Logic.PowerLevel != 15 {
		t.Fatalf("expected wire at full strength next to a lever, got %d", b.Logic.PowerLevel)
	}
}

// TestWireAttenuation builds a straight wire run fed by a lever and checks
// the k-th wire, counting the one beside the lever as k = 0, reads exactly
// max(0, 15-k).
func TestWireAttenuation(t *testing.T) {
	sim := newTestSim(t)
	sim.CreateBlock(KindLever, 0, 0)
	const runLength = 15
	for x := 1; x <= runLength; x++ {
		if _, err := sim.CreateBlock(KindWire, x, 0); err != nil {
			t.Fatalf("place wire %d: %v", x, err)
		}
	}
	if err := sim.Interact(0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for x := 1; x <= runLength; x++ {
		b, _ := sim.Query(x, 0)
		k := x - 1
		want := uint8(0)
		if 15-k > 0 {
			want = uint8(15 - k)
		}
		if b.Logic.PowerLevel != want {
			t.Fatalf("wire %d: got power %d want %d", x, b.Logic.PowerLevel, want)
		}
	}
}

func TestWireConvergesToZeroWithoutSource(t *testing.T) {
	sim := newTestSim(t)
	sim.CreateBlock(KindLever, 0, 0)
	sim.CreateBlock(KindWire, 1, 0)
	sim.Interact(0, 0)
	b, _ := sim.Query(1, 0)
	if b.Logic.PowerLevel == 0 {
		t.Fatalf("expected wire to be powered before source removal")
	}

	if err := sim.RemoveBlock(0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ = sim.Query(1, 0)
	if b.Logic.PowerLevel != 0 {
		t.Fatalf("expected wire to fall to 0 once its source is gone, got %d", b.Logic.PowerLevel)
	}
}

// TestTorchTogglesWithInput exercises the torch state machine end to end
//: an unpowered torch is lit; powering its attached side
// extinguishes it 2 ticks later, and removing that power re-ignites it 2
// ticks after that. This is the same toggle mechanism the canonical
// 5-block torch clock chains into a self-sustaining oscillator.
func TestTorchTogglesWithInput(t *testing.T) {
	sim := newTestSim(t)
	sim.CreateBlock(KindLever, 0, 0)
	if _, err := sim.CreateBlock(KindTorch, 1, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ { // North -> East -> South -> West: attach dir -> west neighbor (0,0)
		if err := sim.RotateBlock(1, 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// Each RotateBlock call already re-schedules a reevaluation; advance past
	// the last one before asserting steady state.
	sim.Tick()
	sim.Tick()
	b, _ := sim.Query(1, 0)
	if !b.lit() {
		t.Fatalf("expected torch lit while its attached side is unpowered")
	}

	if err := sim.Interact(0, 0); err != nil { // lever on, powers (0,0) -> torch's attach side
		t.Fatalf("unexpected error: %v", err)
	}
	sim.Tick()
	sim.Tick()
	b, _ = sim.Query(1, 0)
	if b.lit() {
		t.Fatalf("expected torch extinguished once its attached side is powered")
	}

	if err := sim.Interact(0, 0); err != nil { // lever off again
		t.Fatalf("unexpected error: %v", err)
	}
	sim.Tick()
	sim.Tick()
	b, _ = sim.Query(1, 0)
	if !b.lit() {
		t.Fatalf("expected torch to re-ignite once power is removed")
	}
}

// TestRepeaterDelay checks the repeater commits its transition exactly
// delay*2 game ticks after its rear input changes (scenario
// S2's timing rule).
func TestRepeaterDelay(t *testing.T) {
	sim := newTestSim(t)
	sim.CreateBlock(KindLever, 0, 0)
	sim.CreateBlock(KindWire, 1, 0)
	sim.CreateBlock(KindRepeater, 2, 0)
	sim.RotateBlock(2, 0) // facing East: rear reads from (1,0)
	for i := 0; i < 2; i++ {
		sim.ConfigureRepeaterDelay(2, 0) // delay 1 -> 2 -> 3
	}
	sim.CreateBlock(KindWire, 3, 0)

	if err := sim.Interact(0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const wantDelayTicks = 3 * 2
	for i := 0; i < wantDelayTicks-1; i++ {
		sim.Tick()
		b, _ := sim.Query(3, 0)
		if b.Logic.PowerLevel != 0 {
			t.Fatalf("tick %d: expected output wire still 0, got %d", i+1, b.Logic.PowerLevel)
		}
	}
	sim.Tick()
	b, _ := sim.Query(3, 0)
	if b.Logic.PowerLevel != 15 {
		t.Fatalf("expected output wire powered after %d ticks, got %d", wantDelayTicks, b.Logic.PowerLevel)
	}
}

// TestRepeaterStaysOffWithoutInput is the round-trip property: a repeater
// with constant-zero rear input and no locking never powers on.
func TestRepeaterStaysOffWithoutInput(t *testing.T) {
	sim := newTestSim(t)
	sim.CreateBlock(KindRepeater, 2, 0)
	for i := 0; i < 20; i++ {
		sim.Tick()
	}
	b, _ := sim.Query(2, 0)
	if b.Logic.Powered {
		t.Fatalf("expected repeater to remain unpowered with no rear input")
	}
}

// TestRepeaterLocking mirrors scenario S7: repeater B, facing toward
// repeater A's left side, freezes A's powered state regardless of A's rear
// input once B is itself powered.
func TestRepeaterLocking(t *testing.T) {
	sim := newTestSim(t)
	// A faces East at (5,5): rear = West (4,5), left = North (5,4).
	sim.CreateBlock(KindRepeater, 5, 5)
	sim.RotateBlock(5, 5) // North -> East
	sim.CreateBlock(KindLever, 4, 5)

	// B sits on A's left (North) neighbor, facing South so its output
	// points back down at A.
	sim.CreateBlock(KindRepeater, 5, 4)
	sim.RotateBlock(5, 4)
	sim.RotateBlock(5, 4) // North -> East -> South
	sim.CreateBlock(KindLever, 5, 3)

	const settle = 6

	sim.Interact(4, 5) // power A's rear
	for i := 0; i < settle; i++ {
		sim.Tick()
	}
	a, _ := sim.Query(5, 5)
	if !a.Logic.Powered {
		t.Fatalf("expected A powered on while unlocked")
	}

	sim.Interact(5, 3) // power B's rear, which locks A
	for i := 0; i < settle; i++ {
		sim.Tick()
	}
	a, _ = sim.Query(5, 5)
	if !a.Logic.Locked {
		t.Fatalf("expected A to be locked once B is powered on A's left side")
	}

	sim.Interact(4, 5) // drop A's rear input while locked
	for i := 0; i < settle; i++ {
		sim.Tick()
	}
	a, _ = sim.Query(5, 5)
	if !a.Logic.Powered {
		t.Fatalf("expected a locked repeater to ignore a rear-input change")
	}
}

// TestComparatorSubtractMode mirrors scenario S3: a full-strength rear
// input and a side input stepped down a wire chain to exactly level 4
// yield a Subtract-mode output of 15-4=11.
func TestComparatorSubtractMode(t *testing.T) {
	sim := New(Config{Width: 20, Height: 24})
	sim.CreateBlock(KindPowerSource, 4, 5)
	sim.CreateBlock(KindComparator, 5, 5)
	sim.RotateBlock(5, 5) // facing East: rear reads (4,5), right reads (5,6)

	sim.CreateBlock(KindLever, 5, 18)
	for i := 1; i <= 12; i++ {
		sim.CreateBlock(KindWire, 5, 18-i)
	}
	sim.Interact(5, 18)
	for i := 0; i < 30; i++ {
		sim.Tick()
	}
	side, _ := sim.Query(5, 6)
	if side.Logic.PowerLevel != 4 {
		t.Fatalf("expected side input wire stepped down to 4, got %d", side.Logic.PowerLevel)
	}

	if err := sim.ConfigureComparatorMode(5, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		sim.Tick()
	}
	c, _ := sim.Query(5, 5)
	if c.Logic.PowerLevel != 11 {
		t.Fatalf("expected subtract output 11, got %d", c.Logic.PowerLevel)
	}
}

func TestComparatorCompareModeReturnsRearWhenRearGreaterOrEqual(t *testing.T) {
	sim := newTestSim(t)
	sim.CreateBlock(KindPowerSource, 0, 0)
	sim.CreateBlock(KindComparator, 1, 0)
	sim.RotateBlock(1, 0)
	for i := 0; i < 5; i++ {
		sim.Tick()
	}
	c, _ := sim.Query(1, 0)
	if c.Logic.PowerLevel != 15 {
		t.Fatalf("expected compare-mode output to equal rear power 15, got %d", c.Logic.PowerLevel)
	}
}

// TestPistonPushChain mirrors scenario S4: a lever-fed piston pushes a run
// of movable stone blocks.
func TestPistonPushChain(t *testing.T) {
	sim := New(Config{Width: 20, Height: 4})
	sim.CreateBlock(KindLever, 0, 1)
	sim.CreateBlock(KindPiston, 0, 0)
	sim.RotateBlock(0, 0) // facing East
	for x := 1; x <= 11; x++ {
		sim.CreateSolid(MaterialStone, x, 0)
	}
	// (12,0) left empty.

	if err := sim.Interact(0, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 6; i++ {
		sim.Tick()
	}

	p, _ := sim.Query(0, 0)
	if !p.Logic.Extended {
		t.Fatalf("expected piston to extend")
	}
	head, ok := sim.Query(1, 0)
	if !ok || head.Kind != KindPistonHead {
		t.Fatalf("expected a piston head at (1,0)")
	}
	for x := 2; x <= 12; x++ {
		b, ok := sim.Query(x, 0)
		if !ok || b.Kind != KindSolid {
			t.Fatalf("expected stone at (%d,0) after push", x)
		}
	}
}

// TestPistonPushOverflow mirrors scenario S5: an immovable block at the far
// end of the chain blocks the whole extension.
func TestPistonPushOverflow(t *testing.T) {
	sim := New(Config{Width: 20, Height: 4})
	sim.CreateBlock(KindLever, 0, 1)
	sim.CreateBlock(KindPiston, 0, 0)
	sim.RotateBlock(0, 0)
	for x := 1; x <= 11; x++ {
		sim.CreateSolid(MaterialStone, x, 0)
	}
	sim.CreateSolid(MaterialObsidian, 12, 0)

	sim.Interact(0, 1)
	for i := 0; i < 6; i++ {
		sim.Tick()
	}

	p, _ := sim.Query(0, 0)
	if p.Logic.Extended {
		t.Fatalf("expected piston extension to fail against an immovable chain")
	}
	for x := 1; x <= 11; x++ {
		b, _ := sim.Query(x, 0)
		if b.Pos.X != x {
			t.Fatalf("expected stone at (%d,0) to remain in place", x)
		}
	}
}

// TestStickyPistonPull mirrors scenario S6: retracting a sticky piston
// pulls the block it is holding back with it.
func TestStickyPistonPull(t *testing.T) {
	sim := New(Config{Width: 10, Height: 4})
	sim.CreateBlock(KindLever, 0, 1)
	sim.CreateBlock(KindStickyPiston, 0, 0)
	sim.RotateBlock(0, 0)
	sim.CreateSolid(MaterialStone, 2, 0)

	sim.Interact(0, 1)
	for i := 0; i < 6; i++ {
		sim.Tick()
	}
	p, _ := sim.Query(0, 0)
	if !p.Logic.Extended {
		t.Fatalf("expected sticky piston to extend")
	}

	sim.Interact(0, 1) // cut power
	for i := 0; i < 6; i++ {
		sim.Tick()
	}
	p, _ = sim.Query(0, 0)
	if p.Logic.Extended {
		t.Fatalf("expected sticky piston to retract")
	}
	if _, ok := sim.Query(2, 0); ok {
		t.Fatalf("expected (2,0) vacated after pull")
	}
	stone, ok := sim.Query(1, 0)
	if !ok || stone.Kind != KindSolid {
		t.Fatalf("expected the stone pulled to (1,0)")
	}
}

func TestRemovingExtendedPistonAlsoRemovesHead(t *testing.T) {
	sim := New(Config{Width: 10, Height: 4})
	sim.CreateBlock(KindLever, 0, 1)
	sim.CreateBlock(KindPiston, 0, 0)
	sim.RotateBlock(0, 0)
	sim.Interact(0, 1)
	for i := 0; i < 4; i++ {
		sim.Tick()
	}
	p, _ := sim.Query(0, 0)
	if !p.Logic.Extended {
		t.Fatalf("expected piston extended before removal test")
	}

	if err := sim.RemoveBlock(0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sim.Query(1, 0); ok {
		t.Fatalf("expected orphaned piston head to be removed along with its piston")
	}
}

func TestNeighborDispatchBudgetAborts(t *testing.T) {
	sim := New(Config{Width: 8, Height: 8, MaxNeighborDispatch: 1})
	sim.CreateBlock(KindLever, 0, 0)
	sim.CreateBlock(KindWire, 1, 0)
	sim.CreateBlock(KindWire, 2, 0)

	if err := sim.Interact(0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim.Metrics().Snapshot().DispatchAborts == 0 {
		t.Fatalf("expected a budget-exhaustion abort to be recorded with a tight budget")
	}
}

func TestScheduledTickIgnoresOrphanedEntry(t *testing.T) {
	sim := newTestSim(t)
	sim.CreateBlock(KindButton, 1, 1)
	sim.Interact(1, 1)
	if err := sim.RemoveBlock(1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sim.CreateBlock(KindWire, 1, 1)

	for i := 0; i < 25; i++ {
		sim.Tick()
	}
	if sim.Metrics().Snapshot().OrphanDiscards == 0 {
		t.Fatalf("expected the button's stale scheduled entry to be discarded as an orphan")
	}
	b, _ := sim.Query(1, 1)
	if b.Kind != KindWire {
		t.Fatalf("expected the replacement wire to be untouched by the orphaned entry")
	}
}
