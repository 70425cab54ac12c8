package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"forgelsp/internal/diag"
	"forgelsp/internal/project"
	"forgelsp/internal/source"
	"forgelsp/internal/trace"
)

// skipDirs are never descended into.
var skipDirs = map[string]bool{"node_modules": true, ".git": true, "dist": true}

// ListFiles returns the files under dir accepted by cfg, sorted.
func ListFiles(dir string, cfg project.Config) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && (skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if cfg.Accepts(path) {
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

// DirStats summarises a directory run.
type DirStats struct {
	Files     int
	Failed    int // files that could not be loaded
	CacheHits int64
	Functions int64
}

func (s DirStats) String() string {
	return fmt.Sprintf("files: %d (%d failed), calls: %d, cache hits: %d", s.Files, s.Failed, s.Functions, s.CacheHits)
}

// DiagnoseDir parses every accepted file under dir with up to opts.Jobs
// workers. Results keep the order of ListFiles. Load failures become
// IOLoadFileError diagnostics rather than errors. opts.Events, if set, is
// closed when the run finishes.
func DiagnoseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, DirStats, error) {
	if opts.Events != nil {
		defer close(opts.Events)
	}
	opts.pinRegistry()
	tr := trace.FromContext(ctx)
	root := trace.Begin(tr, trace.ScopeDriver, "diagnose-dir", trace.ParentID(ctx))
	defer root.End(dir)

	var stats DirStats
	files, err := ListFiles(dir, opts.Config)
	if err != nil {
		return nil, nil, stats, err
	}
	stats.Files = len(files)

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, stats, nil
	}

	loadSpan := trace.Begin(tr, trace.ScopePass, "load", root.ID())
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, p := range files {
		opts.emit(Event{File: p, Stage: StageLoad, Status: StatusWorking})
		fileIDs[i], loadErrors[i] = opts.load(fileSet, p)
		if loadErrors[i] != nil {
			// пустой виртуальный файл, чтобы диагностике было на что ссылаться
			fileIDs[i] = fileSet.AddVirtual(p, nil)
			stats.Failed++
			trace.Point(tr, trace.ScopeDriver, "load failed", p)
		}
	}
	loadSpan.End(fmt.Sprintf("%d files", len(files)))

	var regKey Digest
	if opts.Cache != nil && opts.Registry != nil {
		if regKey, err = opts.Registry.Fingerprint(); err != nil {
			return nil, nil, stats, fmt.Errorf("registry fingerprint: %w", err)
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var cacheHits, functions atomic.Int64
	results := make([]FileResult, len(files))
	parseSpan := trace.Begin(tr, trace.ScopePass, "parse", root.ID())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErrors[i] != nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileIDs[i]}, "failed to load file: "+loadErrors[i].Error()))
				results[i] = FileResult{Path: path, FileID: fileIDs[i], Bag: bag}
				opts.emit(Event{File: path, Stage: StageLoad, Status: StatusError, Diagnostics: 1})
				return nil
			}

			file := fileSet.Get(fileIDs[i])
			opts.emit(Event{File: path, Stage: StageParse, Status: StatusWorking})
			fileSpan := trace.Begin(tr, trace.ScopeFile, "file:"+path, parseSpan.ID())

			var key Digest
			if opts.Cache != nil {
				key = CacheKey(Digest(file.Hash), regKey, opts.MaxDepth, opts.isRaw(path))
				var payload DiskPayload
				if hit, _ := opts.Cache.Get(key, &payload); hit {
					bag := diag.NewBag(opts.MaxDiagnostics)
					bag.AddAll(fromPayload(&payload, file.ID))
					results[i] = FileResult{Path: path, FileID: file.ID, Bag: bag, Cached: true, Functions: payload.Functions}
					cacheHits.Add(1)
					functions.Add(int64(payload.Functions))
					fileSpan.End("cached")
					opts.emit(doneEvent(path, bag))
					return nil
				}
			}

			res := parseLoaded(trace.WithSpan(gctx, fileSpan), file, opts, newPhaseTimer(opts.EnableTimings), fileSpan.ID())
			results[i] = *res
			functions.Add(int64(res.Functions))
			if opts.Cache != nil {
				if err := opts.Cache.Put(key, toPayload(res.Result.Diagnostics, res.Functions)); err != nil {
					trace.Point(tr, trace.ScopeDriver, "cache write failed", err.Error())
				}
			}
			fileSpan.End("")
			opts.emit(doneEvent(path, res.Bag))
			return nil
		})
	}
	err = g.Wait()
	stats.CacheHits = cacheHits.Load()
	stats.Functions = functions.Load()
	parseSpan.End(stats.String())
	if err != nil {
		return nil, nil, stats, err
	}
	return fileSet, results, stats, nil
}

func doneEvent(path string, bag *diag.Bag) Event {
	ev := Event{File: path, Stage: StageParse, Status: StatusDone, Diagnostics: bag.Len()}
	if bag.HasErrors() {
		ev.Status = StatusError
	}
	return ev
}
