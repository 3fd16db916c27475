package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List quality profiles and root folders",
	Args:  cobra.NoArgs,
	RunE:  runProfilesCmd,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfilesCmd(_ *cobra.Command, _ []string) error {
	client := NewClient(serverURL)
	profiles, err := client.Profiles()
	if err != nil {
		return fmt.Errorf("profiles fetch failed: %w", err)
	}
	folders, err := client.RootFolders()
	if err != nil {
		return fmt.Errorf("root folders fetch failed: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]any{
			"profiles":    profiles,
			"rootFolders": folders,
		})
		return nil
	}

	printProfiles(os.Stdout, profiles, folders)
	return nil
}

func printProfiles(w io.Writer, p *ProfilesResponse, f *RootFoldersResponse) {
	for _, svc := range p.Services {
		_, _ = fmt.Fprintf(w, "%s quality profiles:\n", svc.Service)
		for _, prof := range svc.Profiles {
			_, _ = fmt.Fprintf(w, "  %3d  %s\n", prof.ID, prof.Name)
		}
		_, _ = fmt.Fprintln(w)
	}
	for _, svc := range f.Services {
		_, _ = fmt.Fprintf(w, "%s root folders:\n", svc.Service)
		for _, rf := range svc.RootFolders {
			free := "-"
			if rf.FreeSpace > 0 {
				free = humanize.Bytes(uint64(rf.FreeSpace)) + " free"
			}
			_, _ = fmt.Fprintf(w, "  %-40s %s\n", rf.Path, free)
		}
		_, _ = fmt.Fprintln(w)
	}
	printFailures(w, p.Failures)
	printFailures(w, f.Failures)
}
