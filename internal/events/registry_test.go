package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_UnmarshalUnknownType(t *testing.T) {
	registry := NewRegistry()

	raw := RawEvent{
		EventType: "unknown.event",
		Payload:   `{}`,
	}

	_, err := registry.Unmarshal(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event type")
}

func TestRegistry_UnmarshalInvalidJSON(t *testing.T) {
	registry := DefaultRegistry()

	raw := RawEvent{
		EventType: EventConfigChanged,
		Payload:   `{not json`,
	}

	_, err := registry.Unmarshal(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal event payload")
}

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()

	eventTypes := []string{
		EventConfigChanged,
		EventWorkflowQueued,
		EventWorkflowPartial,
		EventWorkflowFailed,
		EventWorkflowNoOp,
	}

	for _, eventType := range eventTypes {
		t.Run(eventType, func(t *testing.T) {
			raw := RawEvent{
				EventType: eventType,
				Payload:   `{"type":"` + eventType + `","entity_type":"episode","entity_id":1,"occurred_at":"2024-01-01T00:00:00Z"}`,
			}
			event, err := registry.Unmarshal(raw)
			require.NoError(t, err, "Failed to unmarshal %s", eventType)
			assert.Equal(t, eventType, event.EventType())
		})
	}
}

func TestRegistry_UnmarshalWorkflowPartial(t *testing.T) {
	registry := DefaultRegistry()

	raw := RawEvent{
		EventType: EventWorkflowPartial,
		Payload: `{"type":"workflow.partial","entity_type":"season","entity_id":12,"occurred_at":"2024-01-01T12:00:00Z",` +
			`"outcome_id":"abc","kind":"season","service":"sonarr","season":2,"status":"partially_failed",` +
			`"units":[{"id":101,"state":"search_triggered"},{"id":102,"state":"monitoring_requested","error":"sonarr: POST /api/v3/command: HTTP 500"}]}`,
	}

	event, err := registry.Unmarshal(raw)
	require.NoError(t, err)

	wc, ok := event.(*WorkflowCompleted)
	require.True(t, ok)
	assert.Equal(t, "season", wc.Kind)
	require.NotNil(t, wc.Season)
	assert.Equal(t, 2, *wc.Season)
	require.Len(t, wc.Units, 2)
	assert.Equal(t, int64(102), wc.Units[1].ID)
	assert.Contains(t, wc.Units[1].Error, "HTTP 500")
	assert.Equal(t, int64(12), wc.EntityID())
}
