package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"saxwasm/internal/trace"
)

// DefaultExtensions are the files TokenizeDir picks up.
var DefaultExtensions = []string{".xml", ".html", ".htm", ".xhtml", ".svg", ".jsx", ".tsx", ".vue"}

// ListFiles returns the sorted paths under dir whose extension is in exts
// (case-insensitive). Hidden directories are skipped.
func ListFiles(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	want := make(map[string]bool, len(exts))
	for _, e := range exts {
		want[strings.ToLower(e)] = true
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if want[strings.ToLower(filepath.Ext(path))] {
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

// TokenizeFiles tokenizes every path with up to jobs documents in flight.
// Results keep the order of paths. Each worker owns its engine, so
// documents never share an arena.
func TokenizeFiles(ctx context.Context, paths []string, opts Options, jobs int) ([]*Result, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	for _, p := range paths {
		emit(opts.Progress, Event{File: p, Stage: StageRead, Status: StatusQueued})
	}

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "tokenize_files", "")
	defer span.WithExtra("files", strconv.Itoa(len(paths))).End("")

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Tokenize(gctx, path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// TokenizeDir is ListFiles followed by TokenizeFiles.
func TokenizeDir(ctx context.Context, dir string, exts []string, opts Options, jobs int) ([]*Result, error) {
	files, err := ListFiles(dir, exts)
	if err != nil {
		return nil, err
	}
	return TokenizeFiles(ctx, files, opts, jobs)
}
