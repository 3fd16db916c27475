package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/plexdeck/internal/media"
	"github.com/vmunix/plexdeck/internal/plex"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Browse the Plex library",
	Long: `Browse the Plex library.

Examples:
  plexdeck library              # List library sections
  plexdeck library items 1      # List everything in section 1
  plexdeck library recent -n 10 # Ten most recently added items
  plexdeck library ondeck       # Continue watching`,
	Args: cobra.NoArgs,
	RunE: runLibrarySections,
}

var libraryItemsCmd = &cobra.Command{
	Use:   "items <section>",
	Short: "List the items in a library section",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryItems,
}

var libraryRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently added items",
	Args:  cobra.NoArgs,
	RunE:  runLibraryRecent,
}

var libraryOnDeckCmd = &cobra.Command{
	Use:   "ondeck",
	Short: "List in-progress items",
	Args:  cobra.NoArgs,
	RunE:  runLibraryOnDeck,
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryItemsCmd)
	libraryCmd.AddCommand(libraryRecentCmd)
	libraryCmd.AddCommand(libraryOnDeckCmd)

	libraryRecentCmd.Flags().IntP("limit", "n", 20, "Maximum items to show (0 for all)")
	libraryOnDeckCmd.Flags().IntP("limit", "n", 0, "Maximum items to show (0 for all)")
}

func runLibrarySections(_ *cobra.Command, _ []string) error {
	client := NewClient(serverURL)
	resp, err := client.Sections()
	if err != nil {
		return fmt.Errorf("library fetch failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	printSections(os.Stdout, resp.Sections)
	return nil
}

func runLibraryItems(_ *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	resp, err := client.SectionItems(args[0])
	if err != nil {
		return fmt.Errorf("library fetch failed: %w", err)
	}
	return showItems(resp, "Section "+args[0])
}

func runLibraryRecent(cmd *cobra.Command, _ []string) error {
	limit := flagInt(cmd, "limit", 20)
	client := NewClient(serverURL)
	resp, err := client.Recent(limit)
	if err != nil {
		return fmt.Errorf("library fetch failed: %w", err)
	}
	return showItems(resp, "Recently Added")
}

func runLibraryOnDeck(cmd *cobra.Command, _ []string) error {
	limit := flagInt(cmd, "limit", 0)
	client := NewClient(serverURL)
	resp, err := client.OnDeck(limit)
	if err != nil {
		return fmt.Errorf("library fetch failed: %w", err)
	}
	return showItems(resp, "On Deck")
}

func showItems(resp *ItemsResponse, heading string) error {
	if jsonOutput {
		printJSON(resp)
		return nil
	}
	printItems(os.Stdout, heading, resp.Items)
	return nil
}

// flagInt reads an int flag, tolerating a nil command in tests.
func flagInt(cmd *cobra.Command, name string, def int) int {
	if cmd == nil {
		return def
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return def
	}
	return v
}

func printSections(w io.Writer, sections []plex.Section) {
	if len(sections) == 0 {
		_, _ = fmt.Fprintln(w, "No library sections")
		return
	}

	_, _ = fmt.Fprintf(w, "Library Sections (%d):\n\n", len(sections))
	_, _ = fmt.Fprintf(w, "  %-6s %-8s %s\n", "KEY", "TYPE", "TITLE")
	_, _ = fmt.Fprintln(w, "  "+strings.Repeat("-", 50))
	for _, s := range sections {
		_, _ = fmt.Fprintf(w, "  %-6s %-8s %s\n", s.Key, s.Type, s.Title)
	}
}

func printItems(w io.Writer, heading string, items []media.Item) {
	if len(items) == 0 {
		_, _ = fmt.Fprintf(w, "%s: nothing found\n", heading)
		return
	}

	_, _ = fmt.Fprintf(w, "%s (%d):\n\n", heading, len(items))
	_, _ = fmt.Fprintf(w, "  %-8s %-6s %-4s %-44s %s\n", "ID", "KIND", "YEAR", "TITLE", "STATUS")
	_, _ = fmt.Fprintln(w, "  "+strings.Repeat("-", 76))
	for _, it := range items {
		_, _ = fmt.Fprintf(w, "  %-8s %-6s %-4s %-44s %s\n",
			truncate(it.ID, 8), it.Kind, yearString(it.Year), truncate(it.Title, 44), itemStatus(it))
	}
}

func yearString(year int) string {
	if year == 0 {
		return "-"
	}
	return strconv.Itoa(year)
}

// itemStatus summarizes the library and acquisition flags of an item.
func itemStatus(it media.Item) string {
	var flags []string
	if it.InLibrary {
		flags = append(flags, "in library")
	}
	if it.Downloading {
		flags = append(flags, "downloading")
	} else if it.Monitored && !it.HasFile {
		flags = append(flags, "wanted")
	}
	return joinOr(flags, "-")
}
