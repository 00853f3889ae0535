// Package driver orchestrates analysis runs: it discovers snapshot files,
// decodes them in parallel and feeds every candidate class through the rule
// engine against one run-scoped version registry.
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

	"migralint/internal/diag"
	"migralint/internal/registry"
	"migralint/internal/rules"
	"migralint/internal/snapshot"
)

// Options configure an analysis run.
type Options struct {
	// Jobs limits parallel workers; 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics bounds each per-file bag.
	MaxDiagnostics int
	// Config is forwarded to the rule engine.
	Config rules.Config
	// Cache, when non-nil, serves decoded snapshots by content digest.
	Cache *DiskCache
	// Progress, when non-nil, receives per-file events.
	Progress Sink
}

// FileResult holds the outcome for one snapshot file.
type FileResult struct {
	Path    string
	Bag     *diag.Bag
	Classes int
	Passed  int
	Flagged int
	Skipped int
	// LoadErr is set when the snapshot could not be read or decoded; the
	// same condition is also reflected as a SNAP diagnostic in Bag.
	LoadErr error
}

// RunResult aggregates a whole run.
type RunResult struct {
	Files    []FileResult
	Bag      *diag.Bag // merged and sorted
	Registry *registry.VersionRegistry
	Passed   int
	Flagged  int
	Skipped  int
}

// ListSnapshotFiles возвращает отсортированный список всех снапшотов в директории
func ListSnapshotFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, snapshot.Ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckDir validates all snapshot files under dir.
func CheckDir(ctx context.Context, dir string, opts Options) (*RunResult, error) {
	files, err := ListSnapshotFiles(dir)
	if err != nil {
		return nil, err
	}
	return CheckFiles(ctx, files, opts)
}

// CheckFiles validates the given snapshot files concurrently. A fresh
// VersionRegistry is created for the run and shared by all workers, so
// duplicate (id, version) pairs are caught across files; when two classes
// claim the same pair concurrently exactly one of them passes.
func CheckFiles(ctx context.Context, files []string, opts Options) (*RunResult, error) {
	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	progress := Sink(NopSink{})
	if opts.Progress != nil {
		progress = opts.Progress
	}

	run := &RunResult{
		Registry: registry.New(),
	}
	if len(files) == 0 {
		run.Bag = diag.NewBag(maxDiagnostics)
		return run, nil
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				bag := diag.NewBag(maxDiagnostics)
				res := FileResult{Path: path, Bag: bag}

				progress.Send(Event{Path: path, Stage: StageLoad, Status: "loading"})
				snap, err := loadSnapshot(path, opts.Cache)
				if err != nil {
					res.LoadErr = err
					bag.Add(diag.Diagnostic{
						Severity: diag.SevError,
						Code:     snapErrorCode(err),
						Message:  "failed to load snapshot: " + err.Error(),
					})
					results[i] = res
					progress.Send(Event{Path: path, Stage: StageLoad, Status: "failed"})
					return nil
				}

				progress.Send(Event{Path: path, Stage: StageCheck, Status: "checking"})
				res.Classes = len(snap.Classes)
				res.Passed, res.Flagged, res.Skipped = rules.CheckAll(snap.Classes, rules.Options{
					Reporter: diag.BagReporter{Bag: bag},
					Registry: run.Registry,
					Config:   opts.Config,
				})
				results[i] = res

				status := "ok"
				if bag.Len() > 0 {
					status = "flagged"
				}
				progress.Send(Event{Path: path, Stage: StageCheck, Status: status})
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	run.Files = results
	run.Bag = diag.NewBag(maxDiagnostics * len(files))
	for i := range results {
		run.Passed += results[i].Passed
		run.Flagged += results[i].Flagged
		run.Skipped += results[i].Skipped
		run.Bag.Merge(results[i].Bag)
	}
	run.Bag.Sort()
	return run, nil
}

func loadSnapshot(path string, cache *DiskCache) (snapshot.Snapshot, error) {
	if cache == nil {
		return snapshot.Load(path)
	}
	return cache.LoadThrough(path)
}

func snapErrorCode(err error) diag.Code {
	switch {
	case errors.Is(err, snapshot.ErrBadSchema):
		return diag.SnapBadSchema
	case errors.Is(err, snapshot.ErrBadArg):
		return diag.SnapBadArg
	default:
		return diag.SnapBadClass
	}
}
