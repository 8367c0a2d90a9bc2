package circuit

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Metrics tracks the counters of one Simulator, in the spirit of the
// teacher's server/world/redstone/metrics.go per-chunk counters, collapsed
// to a single instance since the engine runs one grid on one goroutine
// rather than many concurrent chunk workers.
type Metrics struct {
	// SessionID tags metrics snapshots from this Simulator instance, the way
	// a correlation id tags a service's output; it is not added to log lines
	// and has no effect on simulation behaviour.
	SessionID uuid.UUID

	ticks           atomic.Uint64
	dispatches      atomic.Uint64
	scheduledRuns   atomic.Uint64
	orphanDiscards  atomic.Uint64
	pistonPushes    atomic.Uint64
	pistonOverflows atomic.Uint64
	dispatchAborts  atomic.Uint64
}

// NewMetrics creates an empty metrics registry tagged with a fresh session id.
func NewMetrics() *Metrics {
	return &Metrics{SessionID: uuid.New()}
}

func (m *Metrics) incTicks()           { m.ticks.Add(1) }
func (m *Metrics) incDispatch()        { m.dispatches.Add(1) }
func (m *Metrics) incScheduledRun()    { m.scheduledRuns.Add(1) }
func (m *Metrics) incOrphanDiscard()   { m.orphanDiscards.Add(1) }
func (m *Metrics) incPistonPush()      { m.pistonPushes.Add(1) }
func (m *Metrics) incPistonOverflow()  { m.pistonOverflows.Add(1) }
func (m *Metrics) incDispatchAbort()   { m.dispatchAborts.Add(1) }

// Snapshot is a point-in-time copy of the counters, safe to read and print.
type Snapshot struct {
	SessionID       uuid.UUID
	Ticks           uint64
	Dispatches      uint64
	ScheduledRuns   uint64
	OrphanDiscards  uint64
	PistonPushes    uint64
	PistonOverflows uint64
	DispatchAborts  uint64
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	return Snapshot{
		SessionID:       m.SessionID,
		Ticks:           m.ticks.Load(),
		Dispatches:      m.dispatches.Load(),
		ScheduledRuns:   m.scheduledRuns.Load(),
		OrphanDiscards:  m.orphanDiscards.Load(),
		PistonPushes:    m.pistonPushes.Load(),
		PistonOverflows: m.pistonOverflows.Load(),
		DispatchAborts:  m.dispatchAborts.Load(),
	}
}
