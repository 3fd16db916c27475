package events

// EventConfigChanged is published after every successful config save.
const EventConfigChanged = "config.changed"

// ConfigChanged carries the new config revision. EntityID is the revision.
type ConfigChanged struct {
	BaseEvent
	Revision int64    `json:"revision"`
	Services []string `json:"services,omitempty"` // services whose connection changed
}

// NewConfigChanged builds a ConfigChanged for revision.
func NewConfigChanged(revision int64, services []string) *ConfigChanged {
	return &ConfigChanged{
		BaseEvent: NewBaseEvent(EventConfigChanged, EntityConfig, revision),
		Revision:  revision,
		Services:  services,
	}
}
