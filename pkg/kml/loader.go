package kml

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// LoadOptions controls parallel loading behavior and error handling.
type LoadOptions struct {
	// Workers specifies the number of parallel loader goroutines.
	// If 0, defaults to runtime.NumCPU().
	Workers int

	// SkipErrors causes loading to continue even when individual files fail.
	// Failed files are skipped and errors are collected.
	// When false, the first error cancels loading: files not yet started
	// are skipped and that error is returned alone.
	SkipErrors bool

	// Progress is an optional callback for tracking loading progress.
	// Called after each file is loaded (successfully or with error).
	Progress func(loaded, total int)

	// Parse is passed to ParseFile for every path.
	Parse ParseOptions
}

// DefaultLoadOptions returns load options with sensible defaults.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
		Parse:      DefaultParseOptions(),
	}
}

// LoadFiles parses several KML/KMZ files concurrently.
//
// Files are returned in the order of paths, without the ones that failed.
// With SkipErrors every failure is returned; without it loading stops at the
// first failure and only that error is returned.
//
// Example:
//
//	files, errs := kml.LoadFiles(paths, kml.LoadOptions{
//	    Workers:    8,
//	    SkipErrors: true,
//	    Progress: func(loaded, total int) {
//	        fmt.Printf("\rLoading: %d/%d", loaded, total)
//	    },
//	})
func LoadFiles(paths []string, opts LoadOptions) ([]*File, []error) {
	if len(paths) == 0 {
		return []*File{}, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		mu     sync.Mutex
		loaded int
		errs   []error
	)
	results := make([]*File, len(paths))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			file, err := ParseFile(p, opts.Parse)

			mu.Lock()
			defer mu.Unlock()

			loaded++
			if opts.Progress != nil {
				opts.Progress(loaded, len(paths))
			}

			if err != nil {
				err = fmt.Errorf("%s: %w", p, err)
				if opts.SkipErrors {
					errs = append(errs, err)
					return nil
				}
				return err
			}
			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, []error{err}
	}

	files := make([]*File, 0, len(paths))
	for _, f := range results {
		if f != nil {
			files = append(files, f)
		}
	}
	return files, errs
}
