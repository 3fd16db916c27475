package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vmunix/plexdeck/internal/workflow"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Monitor and search for episodes, seasons or movies",
	Long: `Ask Sonarr or Radarr to monitor an item and search for it.

IDs are Sonarr/Radarr IDs, as shown by 'plexdeck seasons' and 'plexdeck show'.

Examples:
  plexdeck download episode 1234
  plexdeck download season 42 2
  plexdeck download movie 77`,
}

var downloadEpisodeCmd = &cobra.Command{
	Use:   "episode <episode-id>",
	Short: "Download one episode",
	Args:  cobra.ExactArgs(1),
	RunE:  runDownloadEpisode,
}

var downloadSeasonCmd = &cobra.Command{
	Use:   "season <series-id> <season>",
	Short: "Download every episode of a season",
	Args:  cobra.ExactArgs(2),
	RunE:  runDownloadSeason,
}

var downloadMovieCmd = &cobra.Command{
	Use:   "movie <movie-id>",
	Short: "Download a movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runDownloadMovie,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.AddCommand(downloadEpisodeCmd)
	downloadCmd.AddCommand(downloadSeasonCmd)
	downloadCmd.AddCommand(downloadMovieCmd)
}

func runDownloadEpisode(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	out, err := NewClient(serverURL).DownloadEpisode(id)
	return reportOutcome(out, err)
}

func runDownloadSeason(_ *cobra.Command, args []string) error {
	seriesID, err := parseID(args[0])
	if err != nil {
		return err
	}
	season, err := strconv.Atoi(args[1])
	if err != nil || season < 0 {
		return fmt.Errorf("invalid season: %s", args[1])
	}
	out, err := NewClient(serverURL).DownloadSeason(seriesID, season)
	return reportOutcome(out, err)
}

func runDownloadMovie(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	out, err := NewClient(serverURL).DownloadMovie(id)
	return reportOutcome(out, err)
}

// reportOutcome prints a workflow outcome and turns a failed one into an
// error so the exit status reflects it.
func reportOutcome(out *workflow.Outcome, err error) error {
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	if jsonOutput {
		printJSON(out)
	} else {
		printOutcome(os.Stdout, out)
	}

	if out.Status == workflow.StatusFailed {
		return fmt.Errorf("download failed: %s", out.Reason)
	}
	return nil
}

func printOutcome(w io.Writer, out *workflow.Outcome) {
	switch out.Status {
	case workflow.StatusQueued:
		_, _ = fmt.Fprintf(w, "Search started for %d %s(s) in %s\n", len(out.Units), out.Kind, out.Service)
	case workflow.StatusPartiallyFailed:
		_, _ = fmt.Fprintf(w, "Search started, but some %ss failed in %s\n", out.Kind, out.Service)
	case workflow.StatusNoOp:
		_, _ = fmt.Fprintf(w, "Nothing to do: %s\n", out.Reason)
	case workflow.StatusFailed:
		_, _ = fmt.Fprintf(w, "Failed: %s\n", out.Reason)
	}

	for _, u := range out.Units {
		if u.Error != "" {
			_, _ = fmt.Fprintf(w, "  #%-8d %-20s %s\n", u.ID, u.State, u.Error)
		} else {
			_, _ = fmt.Fprintf(w, "  #%-8d %s\n", u.ID, u.State)
		}
	}
}
