package main

import "github.com/wiregrid/redwire/circuit"

// engine funnels every access to a circuit.Simulator through a single
// owning goroutine, since Simulator itself assumes exactly one logical
// thread of execution.
type engine struct {
	sim  *circuit.Simulator
	jobs chan func(*circuit.Simulator)
}

func newEngine(sim *circuit.Simulator) *engine {
	e := &engine{sim: sim, jobs: make(chan func(*circuit.Simulator))}
	go e.run()
	return e
}

func (e *engine) run() {
	for fn := range e.jobs {
		fn(e.sim)
	}
}

// Exec schedules fn to run on the engine's goroutine and returns a channel
// that closes once fn has returned.
func (e *engine) Exec(fn func(*circuit.Simulator)) <-chan struct{} {
	done := make(chan struct{})
	e.jobs <- func(sim *circuit.Simulator) {
		fn(sim)
		close(done)
	}
	return done
}
