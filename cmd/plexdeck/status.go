package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/plexdeck/internal/upstream"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status and configured services",
	Args:  cobra.NoArgs,
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(_ *cobra.Command, _ []string) error {
	client := NewClient(serverURL)
	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}

	printStatus(os.Stdout, serverURL, status)
	return nil
}

var allServices = []upstream.Service{
	upstream.Plex,
	upstream.Sonarr,
	upstream.Radarr,
	upstream.TMDB,
}

func printStatus(w io.Writer, server string, s *StatusResponse) {
	_, _ = fmt.Fprintf(w, "plexdeck v%s | Server: %s | Config revision: %d\n\n", s.Version, server, s.Revision)

	configured := make(map[upstream.Service]bool, len(s.Configured))
	for _, svc := range s.Configured {
		configured[svc] = true
	}

	_, _ = fmt.Fprintln(w, "Services")
	for _, svc := range allServices {
		state := "not configured"
		switch {
		case configured[svc]:
			state = "configured"
		case s.Unavailable[svc] != "":
			state = "unavailable: " + s.Unavailable[svc]
		}
		_, _ = fmt.Fprintf(w, "  %-8s %s\n", svc, state)
	}
}
