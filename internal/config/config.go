// Package config handles the versioned TOML configuration: connection
// parameters for Plex, Sonarr and Radarr, the TMDB key and daemon settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// CurrentVersion is the persisted schema version written by Save.
// Version 0 is the flat {plex, sonarr, radarr} layout with token/api_key.
const CurrentVersion = 1

// Config is the root configuration structure.
type Config struct {
	Version     int               `toml:"version" json:"version"`
	Server      ServerConfig      `toml:"server" json:"server"`
	Database    DatabaseConfig    `toml:"database" json:"database"`
	TMDB        TMDBConfig        `toml:"tmdb" json:"tmdb"`
	Connections ConnectionsConfig `toml:"connections" json:"connections"`
}

type ServerConfig struct {
	Host        string   `toml:"host" json:"host"`
	Port        int      `toml:"port" json:"port"`
	LogLevel    string   `toml:"log_level" json:"log_level"`
	LogFile     string   `toml:"log_file,omitempty" json:"log_file,omitempty"`
	CORSOrigins []string `toml:"cors_origins,omitempty" json:"cors_origins,omitempty"`
}

type DatabaseConfig struct {
	Path string `toml:"path" json:"path"`
}

type TMDBConfig struct {
	APIKey string `toml:"api_key" json:"api_key"`
}

// ConnectionsConfig holds one Connection per external service.
type ConnectionsConfig struct {
	Plex   Connection `toml:"plex" json:"plex"`
	Sonarr Connection `toml:"sonarr" json:"sonarr"`
	Radarr Connection `toml:"radarr" json:"radarr"`
}

// Connection describes how to reach one service. A non-empty Credential
// means the service is configured; it is passed through verbatim.
type Connection struct {
	Host       string `toml:"host" json:"host"`
	Port       int    `toml:"port" json:"port"`
	Scheme     string `toml:"scheme" json:"scheme"`
	Credential string `toml:"credential" json:"credential"`
}

// Configured reports whether a credential is present.
func (c Connection) Configured() bool {
	return c.Credential != ""
}

// Complete reports whether both host and credential are present.
func (c Connection) Complete() bool {
	return c.Host != "" && c.Credential != ""
}

// BaseURL returns scheme://host:port.
func (c Connection) BaseURL() string {
	scheme := c.Scheme
	if scheme == "" {
		scheme = "http"
	}
	if c.Port == 0 {
		return fmt.Sprintf("%s://%s", scheme, c.Host)
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, c.Port)
}

// Default returns the first-run configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Server: ServerConfig{
			Host:     "0.0.0.0",
			Port:     8585,
			LogLevel: "info",
		},
		Database: DatabaseConfig{Path: "./data/plexdeck.db"},
		Connections: ConnectionsConfig{
			Plex:   defaultConnection(32400),
			Sonarr: defaultConnection(8989),
			Radarr: defaultConnection(7878),
		},
	}
}

func defaultConnection(port int) Connection {
	return Connection{Host: "localhost", Port: port, Scheme: "http"}
}

// Clone returns a deep copy that callers may edit freely.
func (c *Config) Clone() *Config {
	out := *c
	if c.Server.CORSOrigins != nil {
		out.Server.CORSOrigins = append([]string(nil), c.Server.CORSOrigins...)
	}
	return &out
}

// Redacted returns a copy with every credential replaced by Mask.
func (c *Config) Redacted() *Config {
	out := c.Clone()
	for _, conn := range []*Connection{&out.Connections.Plex, &out.Connections.Sonarr, &out.Connections.Radarr} {
		if conn.Credential != "" {
			conn.Credential = Mask
		}
	}
	if out.TMDB.APIKey != "" {
		out.TMDB.APIKey = Mask
	}
	return out
}

// Mask stands in for a credential in redacted output. Submitting it back
// unchanged keeps the stored credential.
const Mask = "********"

// Unmask replaces Mask placeholders in c with the credentials from prev.
func (c *Config) Unmask(prev *Config) {
	pairs := []struct{ dst, src *Connection }{
		{&c.Connections.Plex, &prev.Connections.Plex},
		{&c.Connections.Sonarr, &prev.Connections.Sonarr},
		{&c.Connections.Radarr, &prev.Connections.Radarr},
	}
	for _, p := range pairs {
		if p.dst.Credential == Mask {
			p.dst.Credential = p.src.Credential
		}
	}
	if c.TMDB.APIKey == Mask {
		c.TMDB.APIKey = prev.TMDB.APIKey
	}
}

// rawConfig defers decoding of each section so that one malformed section
// degrades to its defaults without discarding the rest.
type rawConfig struct {
	Version     toml.Primitive `toml:"version"`
	Server      toml.Primitive `toml:"server"`
	Database    toml.Primitive `toml:"database"`
	TMDB        toml.Primitive `toml:"tmdb"`
	Connections struct {
		Plex   toml.Primitive `toml:"plex"`
		Sonarr toml.Primitive `toml:"sonarr"`
		Radarr toml.Primitive `toml:"radarr"`
	} `toml:"connections"`

	// version 0 layout
	Plex   toml.Primitive `toml:"plex"`
	Sonarr toml.Primitive `toml:"sonarr"`
	Radarr toml.Primitive `toml:"radarr"`
}

type legacyConnection struct {
	Host   string `toml:"host"`
	Port   int    `toml:"port"`
	Scheme string `toml:"scheme"`
	Token  string `toml:"token"`
	APIKey string `toml:"api_key"`
}

// Load reads the config at path.
//
// Load always returns a usable config. A missing, empty or unparsable file
// yields defaults, and a section that fails to decode keeps its defaults
// while the others load. A non-nil error is a *ConfigError describing what
// fell back; callers log it and carry on.
func Load(path string) (*Config, error) {
	cfg := Default()
	cerr := &ConfigError{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		cerr.Errors = append(cerr.Errors, fmt.Sprintf("reading config: %v", err))
		return cfg, cerr
	}
	if strings.TrimSpace(string(data)) == "" {
		return cfg, nil
	}

	content, missing := substituteEnvVars(string(data))
	cerr.Missing = missing

	var raw rawConfig
	md, err := toml.Decode(content, &raw)
	if err != nil {
		cerr.Errors = append(cerr.Errors, fmt.Sprintf("parsing config: %v", err))
		return cfg, cerr
	}

	version := 0
	if md.IsDefined("version") {
		if err := md.PrimitiveDecode(raw.Version, &version); err != nil {
			cerr.Errors = append(cerr.Errors, fmt.Sprintf("version: %v", err))
		}
	}
	if version > CurrentVersion {
		cerr.Errors = append(cerr.Errors, fmt.Sprintf("version: %d is newer than supported %d, loading known fields", version, CurrentVersion))
	}

	sections := []struct {
		key    []string
		decode func() error
	}{
		{[]string{"server"}, func() error { return decodeInto(md, raw.Server, &cfg.Server) }},
		{[]string{"database"}, func() error { return decodeInto(md, raw.Database, &cfg.Database) }},
		{[]string{"tmdb"}, func() error { return decodeInto(md, raw.TMDB, &cfg.TMDB) }},
		{[]string{"connections", "plex"}, func() error { return decodeInto(md, raw.Connections.Plex, &cfg.Connections.Plex) }},
		{[]string{"connections", "sonarr"}, func() error { return decodeInto(md, raw.Connections.Sonarr, &cfg.Connections.Sonarr) }},
		{[]string{"connections", "radarr"}, func() error { return decodeInto(md, raw.Connections.Radarr, &cfg.Connections.Radarr) }},
	}
	for _, s := range sections {
		if !md.IsDefined(s.key...) {
			continue
		}
		if err := s.decode(); err != nil {
			cerr.Errors = append(cerr.Errors, fmt.Sprintf("%s: %v (using defaults)", strings.Join(s.key, "."), err))
		}
	}

	if version == 0 {
		legacy := []struct {
			key  string
			prim toml.Primitive
			dst  *Connection
		}{
			{"plex", raw.Plex, &cfg.Connections.Plex},
			{"sonarr", raw.Sonarr, &cfg.Connections.Sonarr},
			{"radarr", raw.Radarr, &cfg.Connections.Radarr},
		}
		for _, l := range legacy {
			if !md.IsDefined(l.key) {
				continue
			}
			var lc legacyConnection
			if err := md.PrimitiveDecode(l.prim, &lc); err != nil {
				cerr.Errors = append(cerr.Errors, fmt.Sprintf("%s: %v (using defaults)", l.key, err))
				continue
			}
			migrateLegacy(l.dst, lc)
		}
	}

	applyDefaults(cfg)
	cfg.Version = CurrentVersion

	if cerr.HasErrors() {
		return cfg, cerr
	}
	return cfg, nil
}

// decodeInto decodes prim over dst, leaving dst untouched on failure so a
// partially decoded section never leaks through.
func decodeInto[T any](md toml.MetaData, prim toml.Primitive, dst *T) error {
	tmp := *dst
	if err := md.PrimitiveDecode(prim, &tmp); err != nil {
		return err
	}
	*dst = tmp
	return nil
}

func migrateLegacy(dst *Connection, lc legacyConnection) {
	if lc.Host != "" {
		dst.Host = lc.Host
	}
	if lc.Port != 0 {
		dst.Port = lc.Port
	}
	if lc.Scheme != "" {
		dst.Scheme = lc.Scheme
	}
	switch {
	case lc.Token != "":
		dst.Credential = lc.Token
	case lc.APIKey != "":
		dst.Credential = lc.APIKey
	}
}

// applyDefaults replaces zero values with defaults field by field.
// Credentials are left alone: empty means unconfigured.
func applyDefaults(cfg *Config) {
	def := Default()

	if cfg.Server.Host == "" {
		cfg.Server.Host = def.Server.Host
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = def.Server.LogLevel
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = def.Database.Path
	}

	fill := func(c *Connection, d Connection) {
		if c.Host == "" {
			c.Host = d.Host
		}
		if c.Port == 0 {
			c.Port = d.Port
		}
		if c.Scheme == "" {
			c.Scheme = d.Scheme
		}
	}
	fill(&cfg.Connections.Plex, def.Connections.Plex)
	fill(&cfg.Connections.Sonarr, def.Connections.Sonarr)
	fill(&cfg.Connections.Radarr, def.Connections.Radarr)
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::([-?])([^}]*))?\}`)

// substituteEnvVars expands environment references and returns the names
// (or :? messages) of variables that could not be resolved. Unresolved
// references are left in place.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name, op, arg := parts[1], parts[2], parts[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case "-":
			if !ok || value == "" {
				return arg
			}
			return value
		case "?":
			if !ok || value == "" {
				missing = append(missing, name+": "+arg)
				return match
			}
			return value
		}

		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})
	return out, missing
}
