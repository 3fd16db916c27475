package events

// Workflow outcome event types, one per terminal status.
const (
	EventWorkflowQueued  = "workflow.queued"
	EventWorkflowPartial = "workflow.partial"
	EventWorkflowFailed  = "workflow.failed"
	EventWorkflowNoOp    = "workflow.noop"
)

// WorkflowUnit records what happened to a single episode or movie.
type WorkflowUnit struct {
	ID    int64  `json:"id"`
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

// WorkflowCompleted is emitted when a download workflow finishes driving
// the acquisition service. EntityID is the episode, series or movie id.
type WorkflowCompleted struct {
	BaseEvent
	OutcomeID string         `json:"outcome_id"`
	Kind      string         `json:"kind"` // "episode", "season" or "movie"
	Service   string         `json:"service"`
	Season    *int           `json:"season,omitempty"`
	Status    string         `json:"status"`
	Reason    string         `json:"reason,omitempty"`
	Units     []WorkflowUnit `json:"units,omitempty"`
}
