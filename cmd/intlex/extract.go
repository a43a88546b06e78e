package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"intlex/internal/ctxlog"
	"intlex/internal/diag"
	"intlex/internal/diagfmt"
	"intlex/internal/driver"
	"intlex/internal/extract"
	"intlex/internal/observ"
	"intlex/internal/source"
)

var extractCmd = &cobra.Command{
	Use:   "extract [flags] <file|directory>",
	Short: "Extract message descriptors into JSON catalogs",
	Long:  `Extract message descriptors from component usages and definition calls in the given file or directory tree, writing one JSON catalog per source file`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().String("format", "pretty", "diagnostic output format (pretty|json)")
	extractCmd.Flags().String("out", "", "catalog output directory (overrides manifest)")
	extractCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	extractCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	extractCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	extractCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	extractCmd.Flags().Bool("disk-cache", false, "enable the persistent extraction cache")
	extractCmd.Flags().StringSlice("module-source", nil, "module specifier providing the markers (overrides manifest)")
	extractCmd.Flags().StringSlice("component-name", nil, "component treated as a message marker (overrides manifest)")
	extractCmd.Flags().StringSlice("function-name", nil, "function treated as a definition marker (overrides manifest)")
	extractCmd.Flags().Bool("require-description", false, "require a description on every message")
}

func runExtract(cmd *cobra.Command, args []string) error {
	return runPipeline(cmd, args[0], true)
}

// pipelineSettings carries everything a run needs, resolved from the
// manifest with flag overrides on top.
type pipelineSettings struct {
	format    string
	withNotes bool
	suggest   bool
	fullPath  bool
	opts      driver.Options
}

func resolveSettings(cmd *cobra.Command, target string, writeCatalogs bool) (*pipelineSettings, error) {
	s := &pipelineSettings{}

	var err error
	if s.format, err = cmd.Flags().GetString("format"); err != nil {
		return nil, fmt.Errorf("failed to get format flag: %w", err)
	}
	if s.format != "pretty" && s.format != "json" {
		return nil, fmt.Errorf("unknown format %q (pretty|json)", s.format)
	}
	if s.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return nil, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if s.suggest, err = cmd.Flags().GetBool("suggest"); err != nil {
		return nil, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if s.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return nil, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if s.opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if s.opts.MaxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	// Manifest first, flags override.
	startDir := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		startDir = filepath.Dir(target)
	}
	manifest, found, err := loadProjectManifest(startDir)
	if err != nil {
		return nil, err
	}
	if found {
		ec := manifest.Config.Extract
		s.opts.Extract = extract.Options{
			ModuleSources:      ec.ModuleSources,
			ComponentNames:     ec.ComponentNames,
			FunctionNames:      ec.FunctionNames,
			RequireDescription: ec.RequireDescription,
		}
		if writeCatalogs && ec.OutDir != "" {
			s.opts.OutDir = filepath.Join(manifest.Root, filepath.FromSlash(ec.OutDir))
		}
	}
	if v, _ := cmd.Flags().GetStringSlice("module-source"); len(v) > 0 {
		s.opts.Extract.ModuleSources = v
	}
	if v, _ := cmd.Flags().GetStringSlice("component-name"); len(v) > 0 {
		s.opts.Extract.ComponentNames = v
	}
	if v, _ := cmd.Flags().GetStringSlice("function-name"); len(v) > 0 {
		s.opts.Extract.FunctionNames = v
	}
	if cmd.Flags().Changed("require-description") {
		s.opts.Extract.RequireDescription, _ = cmd.Flags().GetBool("require-description")
	}
	if writeCatalogs {
		if out, _ := cmd.Flags().GetString("out"); out != "" {
			s.opts.OutDir = out
		}
		if s.opts.OutDir == "" {
			s.opts.OutDir = "lang"
		}
	}

	if enableCache, _ := cmd.Flags().GetBool("disk-cache"); enableCache {
		cache, err := driver.OpenDiskCache("intlex")
		if err != nil {
			return nil, fmt.Errorf("failed to open disk cache: %w", err)
		}
		s.opts.Cache = cache
	}
	return s, nil
}

// runPipeline drives extraction for both extract and check: the only
// difference is whether catalogs are written.
func runPipeline(cmd *cobra.Command, target string, writeCatalogs bool) error {
	colorOn, err := useColor(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	s, err := resolveSettings(cmd, target, writeCatalogs)
	if err != nil {
		return err
	}
	if showTimings {
		s.opts.Timer = observ.NewTimer()
	}
	ctx := ctxlog.WithLogger(cmd.Context(), log)

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", target, err)
	}

	var fileSet *source.FileSet
	var results []driver.FileResult
	if info.IsDir() {
		fileSet, results, err = driver.ExtractDir(ctx, target, s.opts)
	} else {
		var res *driver.FileResult
		fileSet, res, err = driver.ExtractFile(ctx, target, s.opts)
		if res != nil {
			results = []driver.FileResult{*res}
		}
	}
	if err != nil {
		return err
	}

	master := diag.NewBag(s.opts.MaxDiagnostics * max(len(results), 1))
	var messages, failed int
	for i := range results {
		master.Merge(results[i].Bag)
		if results[i].HasErrors() {
			failed++
		} else {
			messages += len(results[i].Messages)
		}
	}
	master.Sort()

	switch s.format {
	case "json":
		jopts := diagfmt.JSONOpts{IncludePositions: true}
		if !s.fullPath {
			jopts.PathMode = diagfmt.PathModeAuto
		} else {
			jopts.PathMode = diagfmt.PathModeAbsolute
		}
		if err := diagfmt.JSON(os.Stdout, master, fileSet, jopts); err != nil {
			return err
		}
	default:
		popts := diagfmt.PrettyOpts{
			Color:     colorOn,
			ShowNotes: s.withNotes,
			ShowFixes: s.suggest,
		}
		if !s.fullPath {
			popts.PathMode = diagfmt.PathModeAuto
		} else {
			popts.PathMode = diagfmt.PathModeAbsolute
		}
		diagfmt.Pretty(os.Stderr, master, fileSet, popts)
	}

	if showTimings && s.opts.Timer != nil {
		fmt.Fprint(os.Stderr, s.opts.Timer.Summary())
	}
	if !quiet && s.format != "json" {
		fmt.Fprintf(os.Stderr, "%d message(s) in %d file(s)\n", messages, len(results)-failed)
	}
	if failed > 0 {
		return fmt.Errorf("extraction failed in %d file(s)", failed)
	}
	return nil
}
