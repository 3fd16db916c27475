package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/plexdeck/internal/config"
	"github.com/vmunix/plexdeck/internal/upstream"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the daemon's configuration (credentials masked)",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key=value>...",
	Short: "Change configuration values on the daemon",
	Long: `Change configuration values on the daemon and save them.

Keys:
  server.host, server.port, server.log_level, server.log_file
  database.path, tmdb.api_key
  connections.<plex|sonarr|radarr>.<host|port|scheme|credential>

Examples:
  plexdeck config set connections.sonarr.host=nas.local connections.sonarr.credential=abc123
  plexdeck config set server.log_level=debug`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConfigSet,
}

var configTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connections to Plex, Sonarr, Radarr and TMDB",
	Long: `Test connections to every configured service.

Without --file, the daemon tests its saved configuration. With --file, the
given TOML file is sent to the daemon and tested without being saved.`,
	Args: cobra.NoArgs,
	RunE: runConfigTest,
}

var configImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Import a legacy dashboard settings blob",
	Long: `Import the JSON settings blob saved by the old browser dashboard
({"plex": {"host", "port", "token"}, "sonarr": {..., "apiKey"}, ...})
and save it as the daemon's configuration. Use - to read stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigImport,
}

var configCheckCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Validate a local configuration file",
	Long:  "Validates config.toml syntax, required fields, and environment variable substitution without contacting the daemon.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigCheck,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configTestCmd)
	configCmd.AddCommand(configImportCmd)
	configCmd.AddCommand(configCheckCmd)

	configTestCmd.Flags().StringP("file", "f", "", "Test this TOML file instead of the saved config")
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	client := NewClient(serverURL)
	resp, err := client.Config()
	if err != nil {
		return fmt.Errorf("config fetch failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	_, _ = fmt.Printf("Revision %d\n\n", resp.Revision)
	printConfigSummary(os.Stdout, resp.Config)
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	current, err := client.Config()
	if err != nil {
		return fmt.Errorf("config fetch failed: %w", err)
	}

	cfg := current.Config
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", arg)
		}
		if err := setConfigValue(cfg, strings.TrimSpace(key), value); err != nil {
			return err
		}
	}

	saved, err := client.SaveConfig(cfg)
	if err != nil {
		return fmt.Errorf("config save failed: %w", err)
	}

	if jsonOutput {
		printJSON(saved)
		return nil
	}
	fmt.Printf("Saved configuration (revision %d)\n", saved.Revision)
	return nil
}

// setConfigValue applies one dotted key to cfg.
func setConfigValue(cfg *config.Config, key, value string) error {
	parts := strings.Split(strings.ToLower(key), ".")

	if len(parts) == 3 && parts[0] == "connections" {
		var conn *config.Connection
		switch upstream.Service(parts[1]) {
		case upstream.Plex:
			conn = &cfg.Connections.Plex
		case upstream.Sonarr:
			conn = &cfg.Connections.Sonarr
		case upstream.Radarr:
			conn = &cfg.Connections.Radarr
		default:
			return fmt.Errorf("unknown service %q in %s", parts[1], key)
		}
		switch parts[2] {
		case "host":
			conn.Host = value
		case "port":
			port, err := parsePort(key, value)
			if err != nil {
				return err
			}
			conn.Port = port
		case "scheme":
			conn.Scheme = value
		case "credential", "token", "api_key":
			conn.Credential = value
		default:
			return fmt.Errorf("unknown config key %q", key)
		}
		return nil
	}

	switch strings.Join(parts, ".") {
	case "server.host":
		cfg.Server.Host = value
	case "server.port":
		port, err := parsePort(key, value)
		if err != nil {
			return err
		}
		cfg.Server.Port = port
	case "server.log_level":
		cfg.Server.LogLevel = value
	case "server.log_file":
		cfg.Server.LogFile = value
	case "database.path":
		cfg.Database.Path = value
	case "tmdb.api_key":
		cfg.TMDB.APIKey = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func parsePort(key, value string) (int, error) {
	port, err := strconv.Atoi(value)
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("invalid port for %s: %q", key, value)
	}
	return port, nil
}

func runConfigTest(cmd *cobra.Command, _ []string) error {
	var file string
	if cmd != nil {
		file, _ = cmd.Flags().GetString("file")
	}

	var cfg *config.Config
	if file != "" {
		loaded, err := config.Load(file)
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(os.Stdout, configErr)
			return fmt.Errorf("configuration invalid")
		}
		cfg = loaded
	}

	client := NewClient(serverURL)
	resp, err := client.TestConfig(cfg)
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	if failed := printTestResults(os.Stdout, resp); failed > 0 {
		return fmt.Errorf("%d connection(s) failed", failed)
	}
	return nil
}

// printTestResults prints one line per service and returns how many
// configured services failed.
func printTestResults(w io.Writer, resp *TestResponse) int {
	failed := 0
	for _, svc := range allServices {
		res, ok := resp.Results[svc]
		if !ok {
			continue
		}
		switch {
		case res.Success:
			line := "ok"
			if res.Version != "" {
				line += " (v" + res.Version + ")"
			}
			_, _ = fmt.Fprintf(w, "  %-8s %s\n", svc, line)
		case res.Error == "not configured":
			_, _ = fmt.Fprintf(w, "  %-8s not configured\n", svc)
		default:
			failed++
			_, _ = fmt.Fprintf(w, "  %-8s FAILED: %s\n", svc, res.Error)
		}
	}
	return failed
}

func runConfigImport(_ *cobra.Command, args []string) error {
	var in io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	cfg, err := config.ImportLegacy(in)
	if err != nil {
		return err
	}

	// Keep the daemon's own settings; the blob only carries connections.
	client := NewClient(serverURL)
	current, err := client.Config()
	if err != nil {
		return fmt.Errorf("config fetch failed: %w", err)
	}
	merged := current.Config
	merged.Connections = cfg.Connections

	saved, err := client.SaveConfig(merged)
	if err != nil {
		return fmt.Errorf("config save failed: %w", err)
	}

	if jsonOutput {
		printJSON(saved)
		return nil
	}
	fmt.Printf("Imported legacy settings (revision %d)\n", saved.Revision)
	return nil
}

func runConfigCheck(_ *cobra.Command, args []string) error {
	path := "config.toml"
	if len(args) > 0 {
		path = args[0]
	} else if found, err := config.Discover(); err == nil {
		path = found
	}

	fmt.Printf("Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	var configErr *config.ConfigError
	if errors.As(err, &configErr) {
		printConfigErrors(os.Stdout, configErr)
		return fmt.Errorf("configuration invalid")
	}
	if problems := cfg.Validate(); len(problems) > 0 {
		printConfigErrors(os.Stdout, &config.ConfigError{Path: path, Errors: problems})
		return fmt.Errorf("configuration invalid")
	}

	printConfigSummary(os.Stdout, cfg)
	fmt.Println("\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		_, _ = fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			_, _ = fmt.Fprintf(w, "  - %s\n", m)
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		_, _ = fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			_, _ = fmt.Fprintf(w, "  - %s\n", err)
		}
		_, _ = fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	_, _ = fmt.Fprintln(w, "Configuration Summary:")
	_, _ = fmt.Fprintf(w, "  Server:     %s:%d (log: %s)\n", cfg.Server.Host, cfg.Server.Port, cfg.Server.LogLevel)
	_, _ = fmt.Fprintf(w, "  Database:   %s\n", cfg.Database.Path)
	_, _ = fmt.Fprintf(w, "  TMDB:       %s\n", credentialState(cfg.TMDB.APIKey))
	if len(cfg.Server.CORSOrigins) > 0 {
		origins := append([]string(nil), cfg.Server.CORSOrigins...)
		sort.Strings(origins)
		_, _ = fmt.Fprintf(w, "  CORS:       %s\n", strings.Join(origins, ", "))
	}

	_, _ = fmt.Fprintln(w, "\nConnections:")
	conns := []struct {
		name string
		conn config.Connection
	}{
		{"plex", cfg.Connections.Plex},
		{"sonarr", cfg.Connections.Sonarr},
		{"radarr", cfg.Connections.Radarr},
	}
	for _, c := range conns {
		_, _ = fmt.Fprintf(w, "  %-8s %-40s credential: %s\n", c.name, c.conn.BaseURL(), credentialState(c.conn.Credential))
	}
}

func credentialState(s string) string {
	if s == "" {
		return "not set"
	}
	return "set"
}
