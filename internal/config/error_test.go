package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  ConfigError
		want string
	}{
		{
			name: "nothing recorded",
			err:  ConfigError{Path: "/etc/plexdeck/config.toml"},
			want: "",
		},
		{
			name: "unset variables",
			err:  ConfigError{Path: "/etc/plexdeck/config.toml", Missing: []string{"PLEX_TOKEN", "SONARR_API_KEY"}},
			want: "config /etc/plexdeck/config.toml: unset environment variables: PLEX_TOKEN, SONARR_API_KEY",
		},
		{
			name: "section fallbacks",
			err: ConfigError{Path: "config.toml", Errors: []string{
				"connections.sonarr: toml: cannot decode string into int (using defaults)",
				"version: 3 is newer than supported 1, loading known fields",
			}},
			want: "config config.toml: connections.sonarr: toml: cannot decode string into int (using defaults); version: 3 is newer than supported 1, loading known fields",
		},
		{
			name: "both without path",
			err:  ConfigError{Missing: []string{"RADARR_API_KEY"}, Errors: []string{"connections.radarr.scheme: must be http or https, got \"ftp\""}},
			want: "config: unset environment variables: RADARR_API_KEY; connections.radarr.scheme: must be http or https, got \"ftp\"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.Equal(t, tt.want != "", tt.err.HasErrors())
		})
	}
}
