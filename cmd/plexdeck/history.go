package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past download workflows",
	Args:  cobra.NoArgs,
	RunE:  runHistoryCmd,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringP("kind", "k", "", "Filter by kind (episode, season, movie, config)")
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum entries to show")
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	kind := ""
	if cmd != nil {
		kind, _ = cmd.Flags().GetString("kind")
	}
	limit := flagInt(cmd, "limit", 20)

	client := NewClient(serverURL)
	resp, err := client.History(kind, limit)
	if err != nil {
		return fmt.Errorf("history fetch failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	printHistory(os.Stdout, resp.Items, time.Now())
	return nil
}

func printHistory(w io.Writer, items []HistoryEntry, now time.Time) {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(w, "No history")
		return
	}

	_, _ = fmt.Fprintf(w, "  %-16s %-8s %-7s %-18s %s\n", "WHEN", "KIND", "SERVICE", "TARGET", "RESULT")
	_, _ = fmt.Fprintln(w, "  "+strings.Repeat("-", 76))
	for _, e := range items {
		result := e.Status
		if e.Reason != "" {
			result += ": " + e.Reason
		}
		_, _ = fmt.Fprintf(w, "  %-16s %-8s %-7s %-18s %s\n",
			humanize.RelTime(e.OccurredAt, now, "ago", "from now"), e.Kind, e.Service, historyTarget(e), result)
	}
}

func historyTarget(e HistoryEntry) string {
	switch {
	case e.EntityID == 0:
		return "-"
	case e.Season != nil:
		return fmt.Sprintf("#%d season %d", e.EntityID, *e.Season)
	}
	return fmt.Sprintf("#%d", e.EntityID)
}
