package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	serverURL  string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "plexdeck",
	Short: "CLI client for the plexdeck media dashboard",
	Long: `plexdeck - CLI client for the plexdeck media dashboard

Browse your Plex library, search across Plex, Sonarr, Radarr and TMDB,
and trigger downloads through Sonarr and Radarr.

Run 'plexdeckd' to start the server daemon.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8585", "Server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("plexdeck {{.Version}}\n")
}
