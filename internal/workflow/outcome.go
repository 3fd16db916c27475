package workflow

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vmunix/plexdeck/internal/events"
	"github.com/vmunix/plexdeck/internal/upstream"
)

// Status is the terminal result of a workflow.
type Status string

const (
	StatusQueued          Status = "queued"
	StatusPartiallyFailed Status = "partially_failed"
	StatusFailed          Status = "failed"
	StatusNoOp            Status = "noop"
)

// Kind is what a workflow acted on.
type Kind string

const (
	KindEpisode Kind = "episode"
	KindSeason  Kind = "season"
	KindMovie   Kind = "movie"
)

// Target identifies the object of a workflow. SeriesID and Season are set
// for season workflows, ID is the episode or movie id otherwise.
type Target struct {
	ID       int64 `json:"id,omitempty"`
	SeriesID int64 `json:"seriesId,omitempty"`
	Season   *int  `json:"season,omitempty"`
}

// UnitResult is the final state of one episode or movie.
type UnitResult struct {
	ID    int64  `json:"id"`
	State State  `json:"state"`
	Error string `json:"error,omitempty"`
}

// OK reports whether the unit reached SearchTriggered without error.
func (r UnitResult) OK() bool {
	return r.Error == "" && r.State == StateSearchTriggered
}

// Outcome is the tagged result of a download workflow.
type Outcome struct {
	ID      string           `json:"id"`
	Kind    Kind             `json:"kind"`
	Service upstream.Service `json:"service"`
	Target  Target           `json:"target"`
	Status  Status           `json:"status"`
	Reason  string           `json:"reason,omitempty"`
	Units   []UnitResult     `json:"units"`

	err error
}

func newOutcome(kind Kind, svc upstream.Service, target Target) *Outcome {
	return &Outcome{
		ID:      uuid.NewString(),
		Kind:    kind,
		Service: svc,
		Target:  target,
		Units:   []UnitResult{},
	}
}

// failWith marks the whole workflow failed before any unit ran.
func (o *Outcome) failWith(err error) *Outcome {
	o.Status = StatusFailed
	o.Reason = err.Error()
	o.err = err
	return o
}

// Err returns the error that failed the workflow before any unit ran, or
// nil.
func (o *Outcome) Err() error {
	return o.err
}

// settle derives Status from the unit results. A unit left monitored but
// not searched counts as partial progress.
func (o *Outcome) settle() *Outcome {
	ok, progressed := 0, 0
	var firstErr string
	for _, u := range o.Units {
		switch {
		case u.OK():
			ok++
			continue
		case u.State != StateMissing:
			progressed++
		}
		if firstErr == "" {
			firstErr = u.Error
		}
	}
	failed := len(o.Units) - ok
	switch {
	case len(o.Units) == 0:
		o.Status = StatusNoOp
	case failed == 0:
		o.Status = StatusQueued
	case ok == 0 && progressed == 0:
		o.Status = StatusFailed
	default:
		o.Status = StatusPartiallyFailed
	}
	if failed > 0 && o.Reason == "" {
		o.Reason = fmt.Sprintf("%d of %d failed: %s", failed, len(o.Units), firstErr)
	}
	return o
}

func (o *Outcome) eventType() string {
	switch o.Status {
	case StatusQueued:
		return events.EventWorkflowQueued
	case StatusPartiallyFailed:
		return events.EventWorkflowPartial
	case StatusNoOp:
		return events.EventWorkflowNoOp
	default:
		return events.EventWorkflowFailed
	}
}

// Event converts the outcome into its history event.
func (o *Outcome) Event() *events.WorkflowCompleted {
	entity, id := events.EntityEpisode, o.Target.ID
	switch o.Kind {
	case KindSeason:
		entity, id = events.EntitySeason, o.Target.SeriesID
	case KindMovie:
		entity = events.EntityMovie
	}

	units := make([]events.WorkflowUnit, len(o.Units))
	for i, u := range o.Units {
		units[i] = events.WorkflowUnit{ID: u.ID, State: string(u.State), Error: u.Error}
	}
	return &events.WorkflowCompleted{
		BaseEvent: events.NewBaseEvent(o.eventType(), entity, id),
		OutcomeID: o.ID,
		Kind:      string(o.Kind),
		Service:   string(o.Service),
		Season:    o.Target.Season,
		Status:    string(o.Status),
		Reason:    o.Reason,
		Units:     units,
	}
}
