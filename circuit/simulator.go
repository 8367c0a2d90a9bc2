package circuit

import "log/slog"

// Simulator is the engine facade (component C7, ). It owns the
// grid/entity store, the scheduler, and the single logical clock; it is not
// safe for concurrent use.
type Simulator struct {
	cfg     Config
	store   *store
	sched   *scheduler
	metrics *Metrics
	log     *slog.Logger

	nextID BlockId

	// dispatchBudget bounds the onNeighborUpdate recursion triggered by the
	// external call currently in progress.
	dispatchBudget int
}

// New creates a Simulator with the given configuration.
func New(cfg Config) *Simulator {
	cfg = cfg.withDefaults()
	return &Simulator{
		cfg:     cfg,
		store:   newStore(cfg.Width, cfg.Height),
		sched:   newScheduler(),
		metrics: NewMetrics(),
		log:     cfg.Log,
	}
}

// Metrics returns the simulator's counters.
func (sim *Simulator) Metrics() *Metrics { return sim.metrics }

// Dimensions returns the grid width and height.
func (sim *Simulator) Dimensions() (width, height int) {
	return sim.store.width, sim.store.height
}

func (sim *Simulator) allocID() BlockId {
	sim.nextID++
	return sim.nextID
}

// beginEdit resets the per-call dispatch budget. Every external entry point
// that can trigger notifyNeighbors recursion calls this first.
func (sim *Simulator) beginEdit() {
	sim.dispatchBudget = sim.cfg.MaxNeighborDispatch
}

// ---------------------------------------------------------------------------
// C7 Engine API
// ---------------------------------------------------------------------------

// CreateBlock places a new block of the given kind at (x, y), rotation 0.
// Returns ErrOutOfBounds or ErrOccupied without mutating the grid; on
// success it returns the freshly allocated BlockId.
func (sim *Simulator) CreateBlock(kind BlockKind, x, y int) (BlockId, error) {
	pos := Coordinate{X: x, Y: y}
	if !pos.In(sim.store.width, sim.store.height) {
		return 0, ErrOutOfBounds
	}
	if _, ok := sim.store.blockAt(pos); ok {
		return 0, ErrOccupied
	}
	sim.beginEdit()

	id := sim.allocID()
	b := Block{
		ID:   id,
		Pos:  pos,
		Kind: kind,
		Visual: VisualState{
			Powered:    false,
			PowerLevel: 0,
		},
	}
	initLogicDefaults(&b)
	ptr := sim.store.insert(b)
	sim.onPlaced(ptr)
	return id, nil
}

// CreateSolid places an inert Solid block of the given material.
func (sim *Simulator) CreateSolid(material SolidMaterial, x, y int) (BlockId, error) {
	id, err := sim.CreateBlock(KindSolid, x, y)
	if err != nil {
		return 0, err
	}
	b, _ := sim.store.blockByID(id)
	b.Logic.Material = material
	b.Visual.TypeTag = b.ExternalKind()
	return id, nil
}

// RemoveBlock deletes the block at (x, y), if any, and fires one
// notifyNeighbors at the vacated cell. A piston removed while extended also
// removes its orphaned head.
func (sim *Simulator) RemoveBlock(x, y int) error {
	pos := Coordinate{X: x, Y: y}
	if !pos.In(sim.store.width, sim.store.height) {
		return ErrOutOfBounds
	}
	b, ok := sim.store.blockAt(pos)
	if !ok {
		return ErrEmptyCell
	}
	sim.beginEdit()
	sim.removeBlockInternal(b)
	sim.notifyNeighbors(pos)
	return nil
}

// removeBlockInternal deletes b (and, if it is an extended piston, its
// orphaned head) without itself notifying neighbors — callers that already
// hold the dispatch budget and want their own single notifyNeighbors call
// use this directly (RemoveBlock).
func (sim *Simulator) removeBlockInternal(b *Block) {
	pos := b.Pos
	if (b.Kind == KindPiston || b.Kind == KindStickyPiston) && b.Logic.Extended && b.Logic.HeadID != noBlock {
		if head, ok := sim.store.blockByID(b.Logic.HeadID); ok {
			sim.store.remove(head.Pos)
		}
	}
	if b.Kind == KindPistonHead && b.Logic.SourceID != noBlock {
		if source, ok := sim.store.blockByID(b.Logic.SourceID); ok {
			source.Logic.Extended = false
			source.Logic.HeadID = noBlock
		}
	}
	sim.store.remove(pos)
}

// RotateBlock advances rotation by one step. No-op for
// extended pistons. Fires onNeighborUpdate(self, self) then notifyNeighbors.
func (sim *Simulator) RotateBlock(x, y int) error {
	pos := Coordinate{X: x, Y: y}
	if !pos.In(sim.store.width, sim.store.height) {
		return ErrOutOfBounds
	}
	b, ok := sim.store.blockAt(pos)
	if !ok {
		return ErrEmptyCell
	}
	if (b.Kind == KindPiston || b.Kind == KindStickyPiston) && b.Logic.Extended {
		return nil
	}
	sim.beginEdit()
	b.Rotation = b.Rotation.Rotate()
	sim.onNeighborUpdate(pos, pos)
	sim.notifyNeighbors(pos)
	return nil
}

// Interact performs the kind-specific player interaction: Lever toggles,
// Button presses, other kinds no-op.
func (sim *Simulator) Interact(x, y int) error {
	pos := Coordinate{X: x, Y: y}
	if !pos.In(sim.store.width, sim.store.height) {
		return ErrOutOfBounds
	}
	b, ok := sim.store.blockAt(pos)
	if !ok {
		return ErrEmptyCell
	}
	sim.beginEdit()
	switch b.Kind {
	case KindLever:
		leverToggle(sim, b)
	case KindButton:
		buttonPress(sim, b)
	}
	return nil
}

// ConfigureRepeaterDelay cycles a repeater's delay 1→2→3→4→1. No-op for
// other kinds.
func (sim *Simulator) ConfigureRepeaterDelay(x, y int) error {
	pos := Coordinate{X: x, Y: y}
	if !pos.In(sim.store.width, sim.store.height) {
		return ErrOutOfBounds
	}
	b, ok := sim.store.blockAt(pos)
	if !ok {
		return ErrEmptyCell
	}
	if b.Kind != KindRepeater {
		return nil
	}
	b.Logic.Delay = b.Logic.Delay%4 + 1
	return nil
}

// ConfigureComparatorMode toggles a comparator between Compare and Subtract.
// No-op for other kinds.
func (sim *Simulator) ConfigureComparatorMode(x, y int) error {
	pos := Coordinate{X: x, Y: y}
	if !pos.In(sim.store.width, sim.store.height) {
		return ErrOutOfBounds
	}
	b, ok := sim.store.blockAt(pos)
	if !ok {
		return ErrEmptyCell
	}
	if b.Kind != KindComparator {
		return nil
	}
	if b.Logic.Mode == ModeCompare {
		b.Logic.Mode = ModeSubtract
	} else {
		b.Logic.Mode = ModeCompare
	}
	sim.beginEdit()
	sim.scheduleUpdate(b, 0, 0, 0)
	return nil
}

// Tick advances the clock by one and drains all due scheduled entries
// (component C2, ).
func (sim *Simulator) Tick() {
	sim.beginEdit()
	sim.metrics.incTicks()
	due := sim.sched.drain()
	for _, e := range due {
		b, ok := sim.store.blockAt(e.pos)
		if !ok || blockIdentity(b) != e.identity {
			sim.metrics.incOrphanDiscard()
			continue
		}
		sim.metrics.incScheduledRun()
		sim.onScheduledTick(b, e.payload)
	}
}

// Query returns a read-only copy of the block at (x, y), if any.
func (sim *Simulator) Query(x, y int) (Block, bool) {
	b, ok := sim.store.blockAt(Coordinate{X: x, Y: y})
	if !ok {
		return Block{}, false
	}
	return *b, true
}

// QueryPower returns the maximum power entering (x, y) from any neighbor.
func (sim *Simulator) QueryPower(x, y int) uint8 {
	return sim.maxNeighborPower(Coordinate{X: x, Y: y})
}

// ---------------------------------------------------------------------------
// Scheduling helper used by C5 handlers.
// ---------------------------------------------------------------------------

// scheduleUpdate enqueues a future onScheduledTick for b, delayTicks game
// ticks from now.
func (sim *Simulator) scheduleUpdate(b *Block, delayTicks int64, priority int, payload uint32) {
	sim.sched.schedule(b.Pos, delayTicks, priority, payload, blockIdentity(b))
}

// ---------------------------------------------------------------------------
// C3 Neighbor Notifier
// ---------------------------------------------------------------------------

// notifyNeighbors invokes onNeighborUpdate on each of the four cardinal
// neighbors of pos, synchronously and depth-first, in N, E, S, W order.
func (sim *Simulator) notifyNeighbors(pos Coordinate) {
	for _, d := range directions {
		n := pos.Side(d)
		b, ok := sim.store.blockAt(n)
		if !ok {
			continue
		}
		sim.onNeighborUpdate(b, pos)
	}
}

// onNeighborUpdate dispatches to the block's per-kind handler, guarded by
// the per-edit dispatch budget (design notes: a generous bound
// protecting against a pathological, non-converging construction).
func (sim *Simulator) onNeighborUpdate(b *Block, from Coordinate) {
	if sim.dispatchBudget <= 0 {
		sim.metrics.incDispatchAbort()
		if sim.log != nil {
			sim.log.Error("neighbor dispatch budget exhausted, aborting chain",
				"pos", b.Pos, "kind", b.Kind.String())
		}
		return
	}
	sim.dispatchBudget--
	sim.metrics.incDispatch()

	switch b.Kind {
	case KindWire:
		wireOnNeighborUpdate(sim, b)
	case KindTorch:
		torchOnNeighborUpdate(sim, b)
	case KindRepeater:
		repeaterOnNeighborUpdate(sim, b)
	case KindComparator:
		comparatorOnNeighborUpdate(sim, b)
	case KindObserver:
		observerOnNeighborUpdate(sim, b, from)
	case KindPiston, KindStickyPiston:
		pistonOnNeighborUpdate(sim, b)
	case KindLever, KindButton, KindPowerSource, KindSolid, KindPistonHead:
		// Passive with respect to neighbor power changes.
	}
}

// onPlaced runs a block's placement-time setup (Lifecycle),
// followed by exactly one notifyNeighbors call.
func (sim *Simulator) onPlaced(b *Block) {
	switch b.Kind {
	case KindTorch:
		torchOnPlaced(sim, b)
	case KindPowerSource:
		sourceOnPlaced(sim, b)
	}
	sim.notifyNeighbors(b.Pos)
}

// onScheduledTick dispatches a due scheduled entry to its block's handler
// (step 4).
func (sim *Simulator) onScheduledTick(b *Block, payload uint32) {
	switch b.Kind {
	case KindTorch:
		torchOnScheduledTick(sim, b)
	case KindButton:
		buttonOnScheduledTick(sim, b)
	case KindRepeater:
		repeaterOnScheduledTick(sim, b)
	case KindComparator:
		comparatorOnScheduledTick(sim, b)
	case KindObserver:
		observerOnScheduledTick(sim, b)
	case KindPiston, KindStickyPiston:
		pistonOnScheduledTick(sim, b)
	}
}

// initLogicDefaults sets kind-specific starting values not covered by the
// zero value of LogicState.
func initLogicDefaults(b *Block) {
	switch b.Kind {
	case KindRepeater:
		b.Logic.Delay = 1
	}
	b.Visual.TypeTag = b.ExternalKind()
}
