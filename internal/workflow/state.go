package workflow

import "errors"

// State is the acquisition state of one episode or movie.
type State string

const (
	StateMissing             State = "missing"
	StateMonitoringRequested State = "monitoring_requested"
	StateSearchTriggered     State = "search_triggered"
	StateDownloading         State = "downloading"
	StateDownloaded          State = "downloaded"
)

// ErrInvalidTransition is returned for a move the table does not allow.
var ErrInvalidTransition = errors.New("invalid state transition")

// transitions lists the legal moves. The orchestrator drives the first
// two; the acquisition service drives the rest.
var transitions = map[State][]State{
	StateMissing:             {StateMonitoringRequested},
	StateMonitoringRequested: {StateSearchTriggered},
	StateSearchTriggered:     {StateDownloading, StateDownloaded},
	StateDownloading:         {StateDownloaded},
}

// Transition checks that from may move to to.
func Transition(from, to State) error {
	for _, s := range transitions[from] {
		if s == to {
			return nil
		}
	}
	return ErrInvalidTransition
}

// unit tracks one episode or movie through a workflow.
type unit struct {
	id    int64
	state State
	err   error
}

func newUnit(id int64) *unit {
	return &unit{id: id, state: StateMissing}
}

// advance moves the unit to s. An illegal move is a programming error and
// is recorded on the unit rather than panicking.
func (u *unit) advance(s State) {
	if err := Transition(u.state, s); err != nil {
		u.err = err
		return
	}
	u.state = s
}

func (u *unit) fail(err error) {
	u.err = err
}

func (u *unit) result() UnitResult {
	r := UnitResult{ID: u.id, State: u.state}
	if u.err != nil {
		r.Error = u.err.Error()
	}
	return r
}
