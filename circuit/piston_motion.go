package circuit

// pushLimit is the count at which a push chain fails (step 2:
// "count++; if count ≥ 12, fail"), so at most 11 blocks ever move in a
// single extension — matching scenario S4 (eleven movable stones succeed,
// a twelfth cell must be empty).
const pushLimit = 12

// canPush walks from headCell along push, collecting the contiguous run of
// movable blocks that must shift to make room. ok is false if the run hits
// an immovable block, the grid edge, or the push limit before finding an
// empty cell (step 2).
func canPush(sim *Simulator, headCell Coordinate, push Direction) (cells []Coordinate, ok bool) {
	width, height := sim.store.width, sim.store.height
	cur := headCell
	count := 0
	for {
		if !cur.In(width, height) {
			return nil, false
		}
		b, exists := sim.store.blockAt(cur)
		if !exists {
			return cells, true
		}
		if b.immovable() {
			return nil, false
		}
		count++
		if count >= pushLimit {
			return nil, false
		}
		cells = append(cells, cur)
		cur = cur.Side(push)
	}
}

// pistonExtend attempts to push the blocks in front of piston one cell
// along its rotation and spawns a linked PistonHead. On failure no state
// changes at all; only the piston-overflow metric is incremented.
func pistonExtend(sim *Simulator, piston *Block) {
	push := piston.Rotation
	headCell := piston.Pos.Side(push)

	cells, ok := canPush(sim, headCell, push)
	if !ok {
		sim.metrics.incPistonOverflow()
		return
	}

	for i := len(cells) - 1; i >= 0; i-- {
		old := cells[i]
		dest := old.Side(push)
		sim.store.move(old, dest)
		sim.notifyNeighbors(old)
		sim.notifyNeighbors(dest)
	}

	headID := sim.allocID()
	head := Block{
		ID:       headID,
		Pos:      headCell,
		Kind:     KindPistonHead,
		Rotation: push,
		Logic: LogicState{
			SourceID: piston.ID,
			Sticky:   piston.Kind == KindStickyPiston,
		},
	}
	sim.store.insert(head)

	piston.Logic.Extended = true
	piston.Logic.HeadID = headID
	piston.Visual.ExtendedFlag = true
	sim.metrics.incPistonPush()
	sim.notifyNeighbors(headCell)
}

// pistonRetract removes the piston's head and, if sticky, pulls the block
// two cells ahead back by one (Retract).
func pistonRetract(sim *Simulator, piston *Block) {
	if !piston.Logic.Extended {
		return
	}
	push := piston.Rotation
	headCell := piston.Pos.Side(push)

	if head, ok := sim.store.blockByID(piston.Logic.HeadID); ok {
		headCell = head.Pos
		sim.store.remove(headCell)
	}
	piston.Logic.Extended = false
	piston.Logic.HeadID = noBlock
	piston.Visual.ExtendedFlag = false
	sim.notifyNeighbors(headCell)

	if piston.Kind != KindStickyPiston {
		return
	}
	target := headCell.Side(push)
	tb, ok := sim.store.blockAt(target)
	if !ok || tb.immovable() {
		return
	}
	dest := headCell
	sim.store.move(target, dest)
	sim.notifyNeighbors(target)
	sim.notifyNeighbors(dest)
}
