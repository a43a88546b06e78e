// Package driver orchestrates extraction over files and directories:
// discovery, parallel parsing, the disk cache, and catalog output.
package driver

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"intlex/internal/catalog"
	"intlex/internal/ctxlog"
	"intlex/internal/diag"
	"intlex/internal/extract"
	"intlex/internal/observ"
	"intlex/internal/parser"
	"intlex/internal/source"
)

// unitExtensions are the source kinds the extractor understands.
var unitExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"}

// Options configures a driver run.
type Options struct {
	Extract        extract.Options // marker configuration, defaults applied
	MaxDiagnostics int             // per-file diagnostic cap
	Jobs           int             // parallel workers, <=0 means GOMAXPROCS
	OutDir         string          // catalog output root, empty disables writing
	Cache          *DiskCache      // nil disables caching
	Timer          *observ.Timer   // nil disables phase timing
}

// FileResult holds everything extraction produced for one unit.
type FileResult struct {
	Path     string
	FileID   source.FileID
	Bag      *diag.Bag
	Messages []extract.Descriptor
	Cached   bool
}

// HasErrors reports whether this unit failed; failed units produce no
// catalog output.
func (r *FileResult) HasErrors() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

func isUnitPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range unitExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// listUnitFiles returns a sorted list of extractable files under dir,
// skipping dependency trees.
func listUnitFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if name == "node_modules" || (name != "." && strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if isUnitPath(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ExtractFile runs extraction over a single file.
func ExtractFile(ctx context.Context, path string, opts Options) (*source.FileSet, *FileResult, error) {
	fileSet := source.NewFileSetWithBase(filepath.Dir(path))
	opts.Extract = opts.Extract.WithDefaults()

	res := FileResult{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
	fileID, err := fileSet.Load(path)
	if err != nil {
		res.FileID = fileSet.AddVirtual(path, nil)
		res.Bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.ParseFailed,
			Message:  "failed to load file: " + err.Error(),
			Primary:  source.Span{File: res.FileID},
		})
		return fileSet, &res, nil
	}
	res.FileID = fileID
	extractOne(ctx, fileSet.Get(fileID), opts, &res)
	if err := writeCatalog(fileSet.BaseDir(), opts, &res); err != nil {
		return fileSet, &res, err
	}
	return fileSet, &res, nil
}

// ExtractDir runs extraction over every unit under dir in parallel.
// Per-file failures land in the file's Bag; the returned error covers
// discovery and output problems only.
func ExtractDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	log := ctxlog.FromContext(ctx)
	opts.Extract = opts.Extract.WithDefaults()

	var discover int
	if opts.Timer != nil {
		discover = opts.Timer.Begin("discover")
	}
	files, err := listUnitFiles(dir)
	if opts.Timer != nil {
		opts.Timer.End(discover, "")
	}
	if err != nil {
		return nil, nil, err
	}
	log.Debug("discovered units", "dir", dir, "count", len(files))
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	placeholders := make(map[string]source.FileID)
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			placeholders[path] = fileSet.AddVirtual(path, nil)
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var phase int
	if opts.Timer != nil {
		phase = opts.Timer.Begin("extract")
	}

	// Indexes are unique per goroutine, no mutex needed.
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			res := &results[i]
			res.Path = path
			res.Bag = diag.NewBag(opts.MaxDiagnostics)

			if loadErr, hadError := loadErrors[path]; hadError {
				res.FileID = placeholders[path]
				res.Bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.ParseFailed,
					Message:  "failed to load file: " + loadErr.Error(),
					Primary:  source.Span{File: res.FileID},
				})
				return nil
			}

			res.FileID = fileIDs[path]
			extractOne(gctx, fileSet.Get(res.FileID), opts, res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	if opts.Timer != nil {
		opts.Timer.End(phase, "")
	}

	var write int
	if opts.Timer != nil {
		write = opts.Timer.Begin("write")
	}
	for i := range results {
		if err := writeCatalog(dir, opts, &results[i]); err != nil {
			return fileSet, results, err
		}
	}
	if opts.Timer != nil {
		opts.Timer.End(write, "")
	}
	return fileSet, results, nil
}

// extractOne parses and extracts a single loaded file into res. A cache
// hit skips parsing entirely; only clean results are cached.
func extractOne(ctx context.Context, file *source.File, opts Options, res *FileResult) {
	log := ctxlog.FromContext(ctx)

	var key [32]byte
	if opts.Cache != nil {
		key = CacheKey(file.Hash, opts.Extract)
		payload, ok, err := opts.Cache.Get(key)
		if err != nil {
			diag.Warn(diag.BagReporter{Bag: res.Bag}, diag.ExtCacheReadFailed,
				source.Span{File: file.ID}, "cache read failed: "+err.Error())
		} else if ok {
			res.Messages = payload.Messages
			res.Cached = true
			log.Debug("cache hit", "path", file.Path)
			return
		}
	}

	unit, err := parser.Parse(ctx, file)
	if err != nil {
		res.Bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.ParseFailed,
			Message:  "failed to parse file: " + err.Error(),
			Primary:  source.Span{File: file.ID},
		})
		return
	}
	if unit.HasSyntaxErrors() {
		res.Bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.ParseFailed,
			Message:  "file has syntax errors",
			Primary:  source.Span{File: file.ID},
		})
		return
	}

	reporter := diag.BagReporter{Bag: res.Bag}
	e := extract.New(unit, opts.Extract, reporter)
	msgs, err := unit.Walk(e)
	if err != nil {
		var xerr *extract.Error
		if errors.As(err, &xerr) {
			res.Bag.Add(xerr.Diagnostic())
		} else {
			res.Bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.ExtBadMessageSyntax,
				Message:  err.Error(),
				Primary:  source.Span{File: file.ID},
			})
		}
		return
	}
	res.Messages = msgs

	if opts.Cache != nil && res.Bag.Len() == 0 {
		if err := opts.Cache.Put(key, &DiskPayload{
			Schema:   diskCacheSchemaVersion,
			Messages: msgs,
		}); err != nil {
			diag.Warn(reporter, diag.ExtCacheWriteFailed,
				source.Span{File: file.ID}, "cache write failed: "+err.Error())
		}
	}
}

// writeCatalog emits the per-unit catalog. Units with errors are
// suppressed so a broken file never clobbers a good catalog; units with
// no messages produce no artifact.
func writeCatalog(baseDir string, opts Options, res *FileResult) error {
	if opts.OutDir == "" || res.HasErrors() || len(res.Messages) == 0 {
		return nil
	}
	path := catalog.Path(opts.OutDir, baseDir, res.Path)
	if err := catalog.Write(path, res.Messages); err != nil {
		res.Bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.CatWriteFailed,
			Message:  "failed to write catalog: " + err.Error(),
		})
		return err
	}
	return nil
}
