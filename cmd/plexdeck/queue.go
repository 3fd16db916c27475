package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show Sonarr and Radarr download queues",
	Args:  cobra.NoArgs,
	RunE:  runQueueCmd,
}

func init() {
	rootCmd.AddCommand(queueCmd)
	queueCmd.Flags().StringP("service", "s", "", "Only show one service (sonarr, radarr)")
}

func runQueueCmd(cmd *cobra.Command, _ []string) error {
	service := ""
	if cmd != nil {
		service, _ = cmd.Flags().GetString("service")
	}

	client := NewClient(serverURL)
	queue, err := client.Queue()
	if err != nil {
		return fmt.Errorf("queue fetch failed: %w", err)
	}

	if service != "" {
		filtered := make([]QueueItem, 0, len(queue.Items))
		for _, it := range queue.Items {
			if strings.EqualFold(string(it.Service), service) {
				filtered = append(filtered, it)
			}
		}
		queue.Items = filtered
	}

	if jsonOutput {
		printJSON(queue)
		return nil
	}

	printQueue(os.Stdout, queue)
	return nil
}

func printQueue(w io.Writer, q *QueueResponse) {
	if len(q.Items) == 0 {
		_, _ = fmt.Fprintln(w, "No active downloads")
	} else {
		_, _ = fmt.Fprintf(w, "Active Downloads (%d):\n\n", len(q.Items))
		_, _ = fmt.Fprintf(w, "  %-6s %-12s %-40s %-9s %s\n", "SVC", "STATE", "TITLE", "PROGRESS", "SIZE")
		_, _ = fmt.Fprintln(w, "  "+strings.Repeat("-", 86))
		for _, it := range q.Items {
			_, _ = fmt.Fprintf(w, "  %-6s %-12s %-40s %-9s %s\n",
				it.Service, truncate(it.Status, 12), truncate(queueTitle(it), 40),
				fmt.Sprintf("%.0f%%", it.Progress*100), queueSize(it))
		}
	}
	if len(q.Failures) > 0 {
		_, _ = fmt.Fprintln(w)
		printFailures(w, q.Failures)
	}
}

// queueTitle prefers "Series S01E02" or the movie title over the release name.
func queueTitle(it QueueItem) string {
	switch {
	case it.Series != "" && it.Episode > 0:
		return fmt.Sprintf("%s S%02dE%02d", it.Series, it.Season, it.Episode)
	case it.Movie != "":
		return it.Movie
	}
	return it.Title
}

func queueSize(it QueueItem) string {
	if it.Size <= 0 {
		return "-"
	}
	size := humanize.Bytes(uint64(it.Size))
	if it.SizeLeft > 0 {
		return humanize.Bytes(uint64(it.SizeLeft)) + " of " + size + " left"
	}
	return size
}
