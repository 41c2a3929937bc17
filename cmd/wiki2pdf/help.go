package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wiki2pdf [flags] <wiki-dir> <page-path> [page-path...]")
	fmt.Fprintln(w, "       wiki2pdf doctor [--json] [wiki-dir]")
	fmt.Fprintln(w, "       wiki2pdf version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a Gollum wiki to PDF, starting from a root page and following")
	fmt.Fprintln(w, "its links. Each page-path yields one document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>            Output PDF file (single page) or directory")
	fmt.Fprintln(w, "  -c, --config <name>            Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>              Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>              PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --html                     Also write the HTML document")
	fmt.Fprintln(w, "      --html-only                Write the HTML document, skip PDF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>                Document title (default wiki2pdf)")
	fmt.Fprintln(w, "      --assets-dir <path>        Directory with css/ and templates/")
	fmt.Fprintln(w, "      --page-break-max-level <n> New PDF page for tree levels <= n (default 1)")
	fmt.Fprintln(w, "      --page-toc-max-level <n>   Page TOCs for tree levels <= n (default 2)")
	fmt.Fprintln(w, "      --highlight-style <s>      Chroma style for code blocks")
	fmt.Fprintln(w, "      --raw-html                 Keep raw HTML found in pages")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>            Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>          Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>               Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Footer:")
	fmt.Fprintln(w, "      --footer-position <s>      Position: left, center, right")
	fmt.Fprintln(w, "      --footer-text <s>          Custom footer text ({date}, {date:long} expand)")
	fmt.Fprintln(w, "      --footer-page-number       Show page numbers")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                    Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                  Show debug logs and the page tree")
	fmt.Fprintln(w, "      --log-level <s>            debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>           pretty, json, text")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  WIKI2PDF_CONFIG, WIKI2PDF_TITLE, WIKI2PDF_ASSETS_DIR, WIKI2PDF_OUTPUT_DIR,")
	fmt.Fprintln(w, "  WIKI2PDF_PAGE_SIZE, WIKI2PDF_TIMEOUT, WIKI2PDF_WORKERS,")
	fmt.Fprintln(w, "  WIKI2PDF_LOG_LEVEL, WIKI2PDF_LOG_FORMAT")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
}
