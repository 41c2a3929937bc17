// Package wiki2pdf turns a Gollum-style markdown wiki into a single PDF.
//
// # Quick Start
//
// Create a converter, convert from a root page, and close when done:
//
//	conv, err := wiki2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, wiki2pdf.Input{
//	    WikiRoot: "./wiki",
//	    RootPage: "Home.md",
//	    Title:    "Team Handbook",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("handbook.pdf", result.PDF, 0644)
//
// # Conversion Pipeline
//
//  1. Crawl: starting from the root page, every reachable page is parsed
//     and placed in a tree where each page sits at its shortest link
//     distance from the root. Pages found again through a shorter path are
//     moved up, together with their subtree.
//  2. Render: pages are written in tree order. Headings are shifted by the
//     page depth, wiki links become in-document anchors, local images are
//     inlined and pages that asked for it get a table of contents.
//  3. Print: the HTML document is printed to PDF by headless Chrome (go-rod).
//
// Broken links and images never fail a conversion. They are rendered inert
// and reported in ConvertResult.Diagnostics.
//
// # Configuration
//
//	conv, err := wiki2pdf.NewConverter(
//	    wiki2pdf.WithTimeout(2 * time.Minute),
//	    wiki2pdf.WithAssetPath("./assets"),    // css/*.css, templates/{header,footer}.html
//	    wiki2pdf.WithLogger(slog.Default()),
//	)
//
// A custom.css file at the wiki root is applied after the asset stylesheets.
//
// # Parallel Processing
//
// For several root pages, use ConverterPool to manage browser instances:
//
//	pool := wiki2pdf.NewConverterPool(wiki2pdf.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
package wiki2pdf
