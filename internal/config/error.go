package config

import (
	"fmt"
	"strings"
)

// ConfigError collects what went wrong with a config file. From Load it
// describes fallbacks and the returned config is still usable; from
// Store.Save it means the config was rejected.
type ConfigError struct {
	Path    string   // config file path
	Missing []string // unresolved ${VAR} references
	Errors  []string // decode and validation problems, one per field or section
}

// Error renders a single line suitable for a log attribute.
func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "unset environment variables: "+strings.Join(e.Missing, ", "))
	}
	parts = append(parts, e.Errors...)

	msg := strings.Join(parts, "; ")
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s", e.Path, msg)
	}
	return "config: " + msg
}

// HasErrors reports whether anything was recorded.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
