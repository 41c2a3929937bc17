package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	wiki2pdf "github.com/alnah/go-wiki2pdf"
	"github.com/alnah/go-wiki2pdf/internal/pdfinfo"
)

// ConversionResult holds the outcome of a single root page.
type ConversionResult struct {
	PagePath    string
	OutputPath  string
	HTMLPath    string
	Pages       int // wiki pages in the document
	PDFPages    int // 0 when unknown or HTML only
	Diagnostics int
	Err         error
	Duration    time.Duration
}

// convertBatch processes jobs concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, jobs []pageJob, params *conversionParams, logger *slog.Logger) []ConversionResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(jobs))

	results := make([]ConversionResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Converter creation failed, mark remaining jobs as failed
				for idx := range queue {
					results[idx] = ConversionResult{PagePath: jobs[idx].PagePath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{PagePath: jobs[idx].PagePath, Err: ctx.Err()}
					continue
				}
				results[idx] = convertPage(ctx, conv, jobs[idx], params, logger)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// convertPage converts one root page and writes its outputs.
func convertPage(ctx context.Context, conv CLIConverter, job pageJob, params *conversionParams, logger *slog.Logger) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		PagePath:   job.PagePath,
		OutputPath: job.PDFPath,
		HTMLPath:   job.HTMLPath,
	}
	finish := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	res, err := conv.Convert(ctx, wiki2pdf.Input{
		WikiRoot: params.wikiRoot,
		RootPage: job.RootPage,
		Title:    params.title,
		Layout:   params.layout,
		Page:     params.page,
		Footer:   params.footer,
		HTMLOnly: params.htmlOnly,
	})
	if err != nil {
		return finish(err)
	}
	result.Pages = res.Pages
	result.Diagnostics = len(res.Diagnostics)

	if job.HTMLPath != "" {
		if err := writeOutput(job.HTMLPath, res.HTML); err != nil {
			return finish(err)
		}
	}
	if params.htmlOnly {
		result.OutputPath = job.HTMLPath
		return finish(nil)
	}

	if err := writeOutput(job.PDFPath, res.PDF); err != nil {
		return finish(err)
	}

	if n, err := pdfinfo.PageCount(res.PDF); err != nil {
		logger.Debug("PDF page count unavailable", "path", job.PDFPath, "error", err)
	} else {
		result.PDFPages = n
	}
	return finish(nil)
}

// printResults outputs conversion results and returns the failures.
func printResults(results []ConversionResult, quiet, verbose bool, deps *Dependencies) []error {
	var errs []error

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(deps.Stderr, "FAILED %s: %v%s\n", r.PagePath, r.Err, hintFor(r.Err, deps))
			errs = append(errs, fmt.Errorf("%s: %w", r.PagePath, r.Err))
			continue
		}

		if quiet {
			continue
		}

		summary := describeResult(r)
		if verbose {
			fmt.Fprintf(deps.Stdout, "%s -> %s (%s, %v)\n", r.PagePath, r.OutputPath, summary, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(deps.Stdout, "Created %s (%s)\n", r.OutputPath, summary)
		}
		if r.HTMLPath != "" && r.HTMLPath != r.OutputPath {
			fmt.Fprintf(deps.Stdout, "Created %s\n", r.HTMLPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(deps.Stdout, "\n%d succeeded, %d failed\n", len(results)-len(errs), len(errs))
	}

	return errs
}

// describeResult formats page and warning counts, e.g.
// "5 wiki pages, 12 PDF pages, 1 warning".
func describeResult(r ConversionResult) string {
	s := plural(r.Pages, "wiki page")
	if r.PDFPages > 0 {
		s += ", " + plural(r.PDFPages, "PDF page")
	}
	if r.Diagnostics > 0 {
		s += ", " + plural(r.Diagnostics, "warning")
	}
	return s
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
