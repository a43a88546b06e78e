package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"intlex/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var (
	versionFormat   string
	versionShowHash bool
	versionShowDate bool
	versionShowFull bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowHash, "hash", false, "include git commit hash")
	versionCmd.Flags().BoolVar(&versionShowDate, "date", false, "include build timestamp")
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show intlex build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		showHash := versionShowHash || versionShowFull
		showDate := versionShowDate || versionShowFull

		switch strings.ToLower(versionFormat) {
		case "json":
			payload := versionPayload{
				Tool:    "intlex",
				Version: version.Version,
			}
			if showHash {
				payload.GitCommit = version.GitCommit
			}
			if showDate {
				payload.BuildDate = version.BuildDate
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		case "pretty":
			fmt.Printf("intlex %s\n", version.Version)
			if showHash && version.GitCommit != "" {
				fmt.Printf("  commit: %s\n", version.GitCommit)
			}
			if showDate && version.BuildDate != "" {
				fmt.Printf("  built:  %s\n", version.BuildDate)
			}
			return nil
		default:
			return fmt.Errorf("unknown format %q (pretty|json)", versionFormat)
		}
	},
}
