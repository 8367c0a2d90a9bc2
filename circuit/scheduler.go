package circuit

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// scheduledEntry is one pending future update (component C2). Priority is
// stored but, not used for ordering: insertion order among
// due entries is the de-facto tie-break.
type scheduledEntry struct {
	pos      Coordinate
	dueTick  int64
	priority int
	payload  uint32
	identity uint64
	seq      uint64
}

// blockIdentity hashes a block's id, kind and rotation with xxhash. A
// scheduled entry fires only if the block at its position still has the
// identity it had when scheduled; entries for an empty cell, or a cell now
// holding a different block, are discarded silently, including the case where
// a block was removed and replaced within the same tick window. A block
// rotated since the entry was scheduled also no longer matches.
func blockIdentity(b *Block) uint64 {
	var buf [10]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(b.ID))
	buf[8] = byte(b.Kind)
	buf[9] = byte(b.Rotation)
	return xxhash.Sum64(buf[:])
}

// scheduler is the ordered queue of future updates (component C2). It holds
// entries in a plain slice and drains them with a one-time snapshot each
// Tick. Duplicate entries for the same cell are permitted; nothing dedups
// against an existing pending entry for the same position.
type scheduler struct {
	clock   int64
	entries []scheduledEntry
	nextSeq uint64
}

func newScheduler() *scheduler {
	return &scheduler{}
}

// schedule enqueues a future update. delayTicks == 0 fires on the next call
// to drain: the entry is appended after the current tick's
// due-entries have already been snapshotted, so it cannot be drained within
// the same Tick call that scheduled it.
func (s *scheduler) schedule(pos Coordinate, delayTicks int64, priority int, payload uint32, identity uint64) {
	if delayTicks < 0 {
		delayTicks = 0
	}
	s.entries = append(s.entries, scheduledEntry{
		pos:      pos,
		dueTick:  s.clock + delayTicks,
		priority: priority,
		payload:  payload,
		identity: identity,
		seq:      s.nextSeq,
	})
	s.nextSeq++
}

// drain advances the clock by one and returns the entries due to fire, in
// insertion order, removing them from the queue (steps 1–3).
func (s *scheduler) drain() []scheduledEntry {
	s.clock++
	due := make([]scheduledEntry, 0, 4)
	remaining := s.entries[:0]
	for _, e := range s.entries {
		if e.dueTick <= s.clock {
			due = append(due, e)
		} else {
			remaining = append(remaining, e)
		}
	}
	s.entries = remaining
	return due
}
