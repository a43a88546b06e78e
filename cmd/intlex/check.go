package main

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>",
	Short: "Validate message descriptors without writing catalogs",
	Long:  `Run the extraction pipeline in validation mode: every diagnostic is reported but no catalog files are produced`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostic output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("disk-cache", false, "enable the persistent extraction cache")
	checkCmd.Flags().StringSlice("module-source", nil, "module specifier providing the markers (overrides manifest)")
	checkCmd.Flags().StringSlice("component-name", nil, "component treated as a message marker (overrides manifest)")
	checkCmd.Flags().StringSlice("function-name", nil, "function treated as a definition marker (overrides manifest)")
	checkCmd.Flags().Bool("require-description", false, "require a description on every message")
}

func runCheck(cmd *cobra.Command, args []string) error {
	return runPipeline(cmd, args[0], false)
}
