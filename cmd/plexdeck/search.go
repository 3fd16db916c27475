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

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search Plex, Sonarr, Radarr and TMDB at once",
	Long: `Search every configured source and print one merged, ranked list.

Examples:
  plexdeck search severance
  plexdeck search "the matrix" --scope library
  plexdeck search dune --scope acquisition`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a series to Sonarr or a movie to Radarr",
}

var addSeriesCmd = &cobra.Command{
	Use:   "series <query>",
	Short: "Look up a series in Sonarr and add it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return runAdd(cmd, args, media.SourceTVAcquisition) },
}

var addMovieCmd = &cobra.Command{
	Use:   "movie <query>",
	Short: "Look up a movie in Radarr and add it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return runAdd(cmd, args, media.SourceMovieAcquisition) },
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringP("scope", "s", "", "Sources to search: all, library, acquisition")

	rootCmd.AddCommand(addCmd)
	addCmd.AddCommand(addSeriesCmd)
	addCmd.AddCommand(addMovieCmd)
	for _, c := range []*cobra.Command{addSeriesCmd, addMovieCmd} {
		c.Flags().IntP("profile", "p", 0, "Quality profile ID (see 'plexdeck profiles')")
		c.Flags().StringP("root", "r", "", "Root folder path (see 'plexdeck profiles')")
		c.Flags().Int("pick", 1, "Which lookup result to add, 1-based")
		c.Flags().Bool("search", false, "Search for missing files right away")
		c.Flags().Bool("unmonitored", false, "Add without monitoring")
		_ = c.MarkFlagRequired("profile")
		_ = c.MarkFlagRequired("root")
	}
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	scope := ""
	if cmd != nil {
		scope, _ = cmd.Flags().GetString("scope")
	}

	client := NewClient(serverURL)
	result, err := client.Search(strings.Join(args, " "), scope)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		printJSON(result)
		return nil
	}

	printSearchResults(os.Stdout, result)
	return nil
}

func printSearchResults(w io.Writer, r *reconcile.Result) {
	if len(r.Items) == 0 {
		_, _ = fmt.Fprintln(w, "No results")
	} else {
		_, _ = fmt.Fprintf(w, "Found %d results:\n\n", len(r.Items))
		for i, it := range r.Items {
			_, _ = fmt.Fprintf(w, "  %2d  %-6s %-4s %-44s [%s]\n",
				i+1, it.Kind, yearString(it.Year), truncate(it.Title, 44), strings.Join(sourceNames(it.Origins), ","))
			if status := itemStatus(it); status != "-" {
				_, _ = fmt.Fprintf(w, "      %s\n", status)
			}
		}
	}
	if len(r.Failures) > 0 {
		_, _ = fmt.Fprintln(w)
		printFailures(w, r.Failures)
	}
}

// pickCandidate returns the n-th (1-based) item that came from source.
func pickCandidate(items []media.Item, source media.Source, n int) (media.Item, error) {
	seen := 0
	for _, it := range items {
		if !it.HasOrigin(source) {
			continue
		}
		seen++
		if seen == n {
			return it, nil
		}
	}
	if seen == 0 {
		return media.Item{}, fmt.Errorf("no %s results", strings.Join(sourceNames([]media.Source{source}), ""))
	}
	return media.Item{}, fmt.Errorf("only %d results, cannot pick %d", seen, n)
}

func runAdd(cmd *cobra.Command, args []string, source media.Source) error {
	profile, _ := cmd.Flags().GetInt("profile")
	root, _ := cmd.Flags().GetString("root")
	pick, _ := cmd.Flags().GetInt("pick")
	search, _ := cmd.Flags().GetBool("search")
	unmonitored, _ := cmd.Flags().GetBool("unmonitored")

	client := NewClient(serverURL)
	result, err := client.Search(strings.Join(args, " "), string(reconcile.ScopeAcquisition))
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	item, err := pickCandidate(result.Items, source, pick)
	if err != nil {
		return err
	}

	monitored := !unmonitored
	req := &AddRequest{
		Item:             item,
		QualityProfileID: profile,
		RootFolderPath:   root,
		Monitored:        &monitored,
		Search:           search,
	}

	var added *media.Item
	if source == media.SourceTVAcquisition {
		added, err = client.AddSeries(req)
	} else {
		added, err = client.AddMovie(req)
	}
	if err != nil {
		if isCode(err, "ALREADY_ADDED") {
			return fmt.Errorf("%s is already added", item.Title)
		}
		return fmt.Errorf("add failed: %w", err)
	}

	if jsonOutput {
		printJSON(added)
		return nil
	}
	fmt.Printf("Added %s (%s) as #%s\n", added.Title, yearString(added.Year), added.ID)
	return nil
}
