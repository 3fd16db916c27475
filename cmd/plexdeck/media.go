package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/plexdeck/internal/media"
	"github.com/vmunix/plexdeck/internal/reconcile"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a library item and its Sonarr/Radarr counterpart",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowCmd,
}

var seasonsCmd = &cobra.Command{
	Use:   "seasons <id>",
	Short: "Show seasons and episodes of a library show",
	Long: `Show seasons and episodes of a library show, merged with Sonarr.

Episodes are marked:
  P  in the Plex library
  F  file present in Sonarr
  M  monitored
  D  downloading`,
	Args: cobra.ExactArgs(1),
	RunE: runSeasonsCmd,
}

var watchedCmd = &cobra.Command{
	Use:   "watched <id>",
	Short: "Mark a library item watched",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchedCmd,
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(seasonsCmd)
	rootCmd.AddCommand(watchedCmd)

	watchedCmd.Flags().Bool("undo", false, "Mark unwatched instead")
}

func runShowCmd(_ *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	resp, err := client.Media(args[0])
	if err != nil {
		return fmt.Errorf("media fetch failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	printMedia(os.Stdout, resp)
	return nil
}

func printMedia(w io.Writer, m *MediaResponse) {
	it := m.Item
	_, _ = fmt.Fprintf(w, "%s (%s)\n", it.Title, yearString(it.Year))
	_, _ = fmt.Fprintf(w, "  Kind:       %s\n", it.Kind)
	_, _ = fmt.Fprintf(w, "  ID:         %s\n", it.ID)
	if ids := externalIDs(it.ExternalIDs); ids != "" {
		_, _ = fmt.Fprintf(w, "  External:   %s\n", ids)
	}
	if len(it.Genres) > 0 {
		_, _ = fmt.Fprintf(w, "  Genres:     %s\n", strings.Join(it.Genres, ", "))
	}
	if it.Rating > 0 {
		_, _ = fmt.Fprintf(w, "  Rating:     %.1f\n", it.Rating)
	}
	if it.Overview != "" {
		_, _ = fmt.Fprintf(w, "\n  %s\n", truncate(it.Overview, 300))
	}

	_, _ = fmt.Fprintln(w)
	switch {
	case m.Counterpart != nil:
		c := m.Counterpart
		src := joinOr(sourceNames(c.Item.Origins), "acquisition")
		_, _ = fmt.Fprintf(w, "In %s as #%s (matched by %s)\n", src, c.Item.ID, c.By)
		_, _ = fmt.Fprintf(w, "  Monitored:  %s\n", yesNo(c.Item.Monitored))
		_, _ = fmt.Fprintf(w, "  Has file:   %s\n", yesNo(c.Item.HasFile))
		if c.Ambiguous {
			_, _ = fmt.Fprintln(w, "  Note:       several candidates matched; picked the closest")
		}
	case len(m.Failures) == 0:
		_, _ = fmt.Fprintln(w, "Not tracked by Sonarr or Radarr")
	}
	printFailures(w, m.Failures)
}

func externalIDs(ids media.ExternalIDs) string {
	var parts []string
	if ids.TMDB != 0 {
		parts = append(parts, fmt.Sprintf("tmdb:%d", ids.TMDB))
	}
	if ids.TVDB != 0 {
		parts = append(parts, fmt.Sprintf("tvdb:%d", ids.TVDB))
	}
	if ids.IMDB != "" {
		parts = append(parts, "imdb:"+ids.IMDB)
	}
	return strings.Join(parts, " ")
}

func sourceNames(sources []media.Source) []string {
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		switch s {
		case media.SourceTVAcquisition:
			names = append(names, "sonarr")
		case media.SourceMovieAcquisition:
			names = append(names, "radarr")
		case media.SourceMediaServer:
			names = append(names, "plex")
		case media.SourceMetadataSearch:
			names = append(names, "tmdb")
		}
	}
	return names
}

func printFailures(w io.Writer, failures []reconcile.SourceFailure) {
	for _, f := range failures {
		_, _ = fmt.Fprintf(w, "warning: %s unavailable: %s\n", f.Service, f.Message)
	}
}

func runSeasonsCmd(_ *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	resp, err := client.Seasons(args[0])
	if err != nil {
		return fmt.Errorf("seasons fetch failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	printSeasons(os.Stdout, resp)
	return nil
}

func printSeasons(w io.Writer, s *SeasonsResponse) {
	if s.SeriesID != 0 {
		_, _ = fmt.Fprintf(w, "Sonarr series #%d\n\n", s.SeriesID)
	}
	if len(s.Seasons) == 0 {
		_, _ = fmt.Fprintln(w, "No seasons")
	}
	for _, season := range s.Seasons {
		title := season.Title
		if title == "" {
			title = fmt.Sprintf("Season %d", season.Number)
		}
		_, _ = fmt.Fprintf(w, "%s  (%d/%d files, monitored: %s)\n",
			title, season.FileCount, season.EpisodeCount, yesNo(season.Monitored))
		for _, ep := range season.Episodes {
			_, _ = fmt.Fprintf(w, "  %s  S%02dE%02d  %-40s %s\n",
				episodeFlags(ep), ep.SeasonNumber, ep.EpisodeNumber, truncate(ep.Title, 40), acquisitionRef(ep))
		}
		_, _ = fmt.Fprintln(w)
	}
	printFailures(w, s.Failures)
}

func episodeFlags(ep media.Episode) string {
	flag := func(set bool, c byte) byte {
		if set {
			return c
		}
		return '-'
	}
	return string([]byte{
		flag(ep.LibraryID != "", 'P'),
		flag(ep.HasFile, 'F'),
		flag(ep.Monitored, 'M'),
		flag(ep.Downloading, 'D'),
	})
}

func acquisitionRef(ep media.Episode) string {
	if ep.AcquisitionID == 0 {
		return ""
	}
	return fmt.Sprintf("#%d", ep.AcquisitionID)
}

func runWatchedCmd(cmd *cobra.Command, args []string) error {
	undo := false
	if cmd != nil {
		undo, _ = cmd.Flags().GetBool("undo")
	}

	client := NewClient(serverURL)
	if err := client.SetWatched(args[0], !undo); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	if undo {
		fmt.Printf("Marked %s unwatched\n", args[0])
	} else {
		fmt.Printf("Marked %s watched\n", args[0])
	}
	return nil
}
