package config

import "fmt"

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validSchemes = map[string]bool{
	"http": true, "https": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	conns := []struct {
		name string
		conn Connection
	}{
		{"plex", c.Connections.Plex},
		{"sonarr", c.Connections.Sonarr},
		{"radarr", c.Connections.Radarr},
	}
	for _, n := range conns {
		errs = append(errs, n.conn.validate("connections."+n.name)...)
	}

	return errs
}

func (c Connection) validate(prefix string) []string {
	var errs []string
	if c.Scheme != "" && !validSchemes[c.Scheme] {
		errs = append(errs, fmt.Sprintf("%s.scheme: must be http or https, got %q", prefix, c.Scheme))
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Sprintf("%s.port: must be between 1 and 65535, got %d", prefix, c.Port))
	}
	if c.Credential != "" && c.Host == "" {
		errs = append(errs, fmt.Sprintf("%s.host: required when a credential is set", prefix))
	}
	return errs
}
