package circuit

import "github.com/brentp/intintmap"

// store is the dense grid / entity arena backing a Simulator (component C1).
// Blocks live in a fixed-capacity arena sized to width*height: at most one
// block occupies a cell, so the arena never needs to grow or move, and
// pointers returned from it stay valid for the Simulator's lifetime.
//
// Fast lookup by position and by id is provided by two intintmap.Map
// indices, rebuilt from the authoritative arena whenever it changes, using a
// real int64-keyed map for the hot path instead of a builtin Go map, with a
// 2D Coordinate packed into a single int64 key.
type store struct {
	width, height int

	arena []Block
	live  []bool

	freed     []int
	nextFresh int

	posIndex *intintmap.Map
	idIndex  *intintmap.Map
	dirty    bool
}

func newStore(width, height int) *store {
	size := width * height
	return &store{
		width:  width,
		height: height,
		arena:  make([]Block, size),
		live:   make([]bool, size),
		dirty:  true,
	}
}

// packPos folds a Coordinate into a single int64 key. Grid coordinates are
// always non-negative (bounded by width/height before any lookup reaches
// here), so no sign handling is needed.
func packPos(c Coordinate) int64 {
	return int64(c.X)<<32 | int64(uint32(c.Y))
}

func (s *store) prepare() {
	if !s.dirty {
		return
	}
	count := s.nextFresh - len(s.freed)
	if count < 1 {
		count = 1
	}
	s.posIndex = intintmap.New(int64(count), 0.75)
	s.idIndex = intintmap.New(int64(count), 0.75)
	for idx := 0; idx < s.nextFresh; idx++ {
		if !s.live[idx] {
			continue
		}
		b := &s.arena[idx]
		s.posIndex.Put(packPos(b.Pos), int64(idx))
		s.idIndex.Put(int64(b.ID), int64(idx))
	}
	s.dirty = false
}

// blockAt returns the live block occupying pos, if any.
func (s *store) blockAt(pos Coordinate) (*Block, bool) {
	if !pos.In(s.width, s.height) {
		return nil, false
	}
	s.prepare()
	idx, ok := s.posIndex.Get(packPos(pos))
	if !ok || !s.live[idx] {
		return nil, false
	}
	return &s.arena[idx], true
}

// blockByID returns the live block with the given id.
func (s *store) blockByID(id BlockId) (*Block, bool) {
	if id == noBlock {
		return nil, false
	}
	s.prepare()
	idx, ok := s.idIndex.Get(int64(id))
	if !ok || !s.live[idx] {
		return nil, false
	}
	return &s.arena[idx], true
}

// insert allocates a slot for b and returns a stable pointer into the arena.
// The caller must have already verified the target cell is empty and
// in-bounds.
func (s *store) insert(b Block) *Block {
	var idx int
	if n := len(s.freed); n > 0 {
		idx = s.freed[n-1]
		s.freed = s.freed[:n-1]
	} else {
		idx = s.nextFresh
		s.nextFresh++
	}
	s.arena[idx] = b
	s.live[idx] = true
	s.dirty = true
	return &s.arena[idx]
}

// remove deletes the block at pos, if any, returning it.
func (s *store) remove(pos Coordinate) (Block, bool) {
	if !pos.In(s.width, s.height) {
		return Block{}, false
	}
	s.prepare()
	idx, ok := s.posIndex.Get(packPos(pos))
	if !ok || !s.live[idx] {
		return Block{}, false
	}
	b := s.arena[idx]
	s.live[idx] = false
	s.freed = append(s.freed, idx)
	s.dirty = true
	return b, true
}

// move relocates the block at from to to, both assumed in-bounds and to
// assumed empty; from must hold a live block. Used by piston motion
//, which updates only the Pos field and carries logic state
// unchanged.
func (s *store) move(from, to Coordinate) bool {
	s.prepare()
	idx, ok := s.posIndex.Get(packPos(from))
	if !ok || !s.live[idx] {
		return false
	}
	s.arena[idx].Pos = to
	s.dirty = true
	return true
}

// all iterates every live block. Order is arena slot order, which is
// insertion order modulo slot reuse — callers that need a deterministic
// external order (Query/snapshot callers) should sort by Pos themselves.
func (s *store) all(fn func(*Block)) {
	for idx := 0; idx < s.nextFresh; idx++ {
		if s.live[idx] {
			fn(&s.arena[idx])
		}
	}
}
