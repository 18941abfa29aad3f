package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	outline2html "github.com/alnah/go-outline2html"
	"github.com/alnah/go-outline2html/internal/fileutil"
	"github.com/alnah/go-outline2html/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteHTML    = errors.New("failed to write HTML file")
)

// Pool abstracts representation pool operations for testability.
type Pool interface {
	Acquire() *outline2html.Representation
	Release(*outline2html.Representation)
	Size() int
}

// Compile-time interface implementation check.
var _ Pool = (*outline2html.RepresentationPool)(nil)

// conversionParams groups settings shared by every file of a batch.
type conversionParams struct {
	mode   outputFlags
	title  string // Fallback for outlines without a title
	logger *zap.Logger
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// convertBatch exports files concurrently, one Representation per worker.
// Files not yet started when ctx is done fail with ctx.Err().
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r := pool.Acquire()
			defer pool.Release(r)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(r, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile parses one Markdown outline and writes its HTML.
func convertFile(r *outline2html.Representation, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	o, err := r.MarkdownRepresentation().ParseOutline(content)
	if err != nil {
		return fail(err)
	}
	o.Key = f.InputPath
	if abs, err := filepath.Abs(f.InputPath); err == nil {
		o.Key = abs
	}
	if o.Name == "" {
		o.Name = fallbackTitle(f.InputPath, params.title)
	}

	html := renderOutline(r, o, params.mode)

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(html), filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteHTML, err))
	}

	result.Duration = time.Since(start)
	params.logger.Debug("outline exported",
		zap.String("input", f.InputPath),
		zap.String("output", f.OutputPath),
		zap.Int("notes", len(o.Notes)),
		zap.Duration("duration", result.Duration),
	)
	return result
}

// renderOutline picks the representation call for the output mode.
func renderOutline(r *outline2html.Representation, o *outline2html.Outline, mode outputFlags) string {
	standalone := !mode.fragment
	if mode.headerOnly {
		return r.OutlineHeaderToHTML(o, standalone, mode.autolink)
	}
	return r.OutlineToHTML(o, standalone)
}

// fallbackTitle names an outline that has no title heading.
func fallbackTitle(inputPath, title string) string {
	if title != "" {
		return title
	}
	base := filepath.Base(inputPath)
	return base[:len(base)-len(filepath.Ext(base))]
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
