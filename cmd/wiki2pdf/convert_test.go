package main

// Notes:
// - run is exercised end to end with a mock pool; the real converter pool
//   is covered in pool_test.go without launching a browser.
// - The mock PDF is not a parseable document, so PDF page counts are
//   absent from the summaries checked here.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	wiki2pdf "github.com/alnah/go-wiki2pdf"
	"github.com/alnah/go-wiki2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestRun - Command dispatch and end-to-end conversion
// ---------------------------------------------------------------------------

func TestRun_Version(t *testing.T) {
	t.Parallel()

	te := newTestEnv(nil)
	if code := run(context.Background(), []string{"version"}, te.deps); code != ExitSuccess {
		t.Fatalf("run() = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(te.stdout.String(), "wiki2pdf "+Version) {
		t.Errorf("stdout = %q, want version", te.stdout.String())
	}
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	te := newTestEnv(nil)
	if code := run(context.Background(), []string{"--help"}, te.deps); code != ExitSuccess {
		t.Fatalf("run(--help) = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(te.stderr.String(), "Usage: wiki2pdf") {
		t.Errorf("stderr = %q, want usage", te.stderr.String())
	}
}

func TestRun_UsageErrors(t *testing.T) {
	t.Parallel()

	wikiDir := sampleWiki(t)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no arguments", nil, ExitUsage},
		{"missing page path", []string{wikiDir}, ExitUsage},
		{"unknown flag", []string{"--bogus", wikiDir, "Home.md"}, ExitUsage},
		{"bad timeout", []string{"-t", "soon", wikiDir, "Home.md"}, ExitUsage},
		{"too many workers", []string{"-w", "99", wikiDir, "Home.md"}, ExitUsage},
		{"bad page size", []string{"-p", "a3", wikiDir, "Home.md"}, ExitUsage},
		{"bad level", []string{"--page-toc-max-level", "7", wikiDir, "Home.md"}, ExitUsage},
		{"bad log format", []string{"--log-format", "xml", wikiDir, "Home.md"}, ExitUsage},
		{"output file with two pages", []string{"-o", "out.pdf", wikiDir, "Home.md", "Setup.md"}, ExitUsage},
		{"missing config", []string{"-c", "./missing.yaml", wikiDir, "Home.md"}, ExitUsage},
		{"missing wiki dir", []string{filepath.Join(wikiDir, "nope"), "Home.md"}, ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(nil)
			if code := run(context.Background(), tt.args, te.deps); code != tt.want {
				t.Errorf("run(%v) = %d, want %d (stderr %q)", tt.args, code, tt.want, te.stderr.String())
			}
			if te.newPool != 0 {
				t.Error("pool created despite invalid invocation")
			}
		})
	}
}

func TestRun_ConvertSinglePage(t *testing.T) {
	t.Parallel()

	wikiDir := sampleWiki(t)
	outPath := filepath.Join(t.TempDir(), "docs", "manual.pdf")

	te := newTestEnv(nil)
	code := run(context.Background(), []string{"-o", outPath, "--title", "Manual", wikiDir, "Home.md"}, te.deps)
	if code != ExitSuccess {
		t.Fatalf("run() = %d, want %d (stderr %q)", code, ExitSuccess, te.stderr.String())
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "%PDF-1.4 mock" {
		t.Errorf("PDF content = %q", data)
	}
	if _, err := os.Stat(htmlOutputPath(outPath)); !os.IsNotExist(err) {
		t.Error("HTML written without --html")
	}

	inputs := te.conv.Inputs()
	if len(inputs) != 1 {
		t.Fatalf("Convert() called %d times, want 1", len(inputs))
	}
	in := inputs[0]
	absWiki, _ := filepath.Abs(wikiDir)
	if in.WikiRoot != absWiki {
		t.Errorf("WikiRoot = %q, want %q", in.WikiRoot, absWiki)
	}
	if in.RootPage != "Home.md" {
		t.Errorf("RootPage = %q, want Home.md", in.RootPage)
	}
	if in.Title != "Manual" {
		t.Errorf("Title = %q, want Manual", in.Title)
	}
	if in.Layout == nil || in.Layout.PageBreakMaxLevel != 1 || in.Layout.PageTOCMaxLevel != 2 {
		t.Errorf("Layout = %+v, want defaults {1 2}", in.Layout)
	}
	if in.Page != nil || in.Footer != nil {
		t.Errorf("Page = %+v, Footer = %+v, want nil", in.Page, in.Footer)
	}

	want := "Created " + outPath + " (3 wiki pages, 1 warning)"
	if !strings.Contains(te.stdout.String(), want) {
		t.Errorf("stdout = %q, want %q", te.stdout.String(), want)
	}
	if !te.pool.closed {
		t.Error("pool not closed")
	}
	if te.pool.size != 1 {
		t.Errorf("pool size = %d, want 1 for a single page", te.pool.size)
	}
}

func TestRun_DefaultOutputNextToPage(t *testing.T) {
	t.Parallel()

	wikiDir := sampleWiki(t)
	te := newTestEnv(nil)

	code := run(context.Background(), []string{"-q", wikiDir, filepath.Join("guides", "FAQ.md")}, te.deps)
	if code != ExitSuccess {
		t.Fatalf("run() = %d (stderr %q)", code, te.stderr.String())
	}
	if _, err := os.Stat(filepath.Join(wikiDir, "guides", "FAQ.pdf")); err != nil {
		t.Errorf("PDF not written next to page: %v", err)
	}
	if te.stdout.String() != "" {
		t.Errorf("stdout = %q, want nothing with --quiet", te.stdout.String())
	}
}

func TestRun_HTMLOutputs(t *testing.T) {
	t.Parallel()

	t.Run("html alongside pdf", func(t *testing.T) {
		t.Parallel()

		wikiDir := sampleWiki(t)
		outDir := t.TempDir()
		te := newTestEnv(nil)

		if code := run(context.Background(), []string{"--html", "-o", outDir, wikiDir, "Home.md"}, te.deps); code != ExitSuccess {
			t.Fatalf("run() = %d (stderr %q)", code, te.stderr.String())
		}
		for _, name := range []string{"Home.pdf", "Home.html"} {
			if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
				t.Errorf("%s not written: %v", name, err)
			}
		}
	})

	t.Run("html only", func(t *testing.T) {
		t.Parallel()

		wikiDir := sampleWiki(t)
		outDir := t.TempDir()
		te := newTestEnv(nil)

		if code := run(context.Background(), []string{"--html-only", "-o", outDir, wikiDir, "Home.md"}, te.deps); code != ExitSuccess {
			t.Fatalf("run() = %d (stderr %q)", code, te.stderr.String())
		}
		if _, err := os.Stat(filepath.Join(outDir, "Home.html")); err != nil {
			t.Errorf("HTML not written: %v", err)
		}
		if _, err := os.Stat(filepath.Join(outDir, "Home.pdf")); !os.IsNotExist(err) {
			t.Error("PDF written with --html-only")
		}
		if !te.conv.Inputs()[0].HTMLOnly {
			t.Error("Input.HTMLOnly = false, want true")
		}
	})
}

func TestRun_BatchSummary(t *testing.T) {
	t.Parallel()

	wikiDir := sampleWiki(t)
	outDir := t.TempDir()
	te := newTestEnv(nil)

	code := run(context.Background(), []string{"-w", "2", "-o", outDir, wikiDir, "Home.md", "Setup.md"}, te.deps)
	if code != ExitSuccess {
		t.Fatalf("run() = %d (stderr %q)", code, te.stderr.String())
	}
	if got := len(te.conv.Inputs()); got != 2 {
		t.Errorf("Convert() called %d times, want 2", got)
	}
	if !strings.Contains(te.stdout.String(), "2 succeeded, 0 failed") {
		t.Errorf("stdout = %q, want batch summary", te.stdout.String())
	}
}

func TestRun_ConversionFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		convErr    error
		acquireErr error
		want       int
	}{
		{"browser failure", wiki2pdf.ErrBrowserConnect, nil, ExitBrowser},
		{"unreadable root page", wiki2pdf.ErrRootUnreadable, nil, ExitIO},
		{"converter init failure", nil, errors.Join(ErrConverterInit, wiki2pdf.ErrInvalidAssetPath), ExitUsage},
		{"unexpected failure", errors.New("boom"), nil, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wikiDir := sampleWiki(t)
			te := newTestEnv(nil)
			te.conv.err = tt.convErr
			te.pool.acquireErr = tt.acquireErr

			code := run(context.Background(), []string{"-o", t.TempDir(), wikiDir, "Home.md"}, te.deps)
			if code != tt.want {
				t.Errorf("run() = %d, want %d (stderr %q)", code, tt.want, te.stderr.String())
			}
			if !strings.Contains(te.stderr.String(), "FAILED Home.md") {
				t.Errorf("stderr = %q, want FAILED line", te.stderr.String())
			}
		})
	}
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()

	wikiDir := sampleWiki(t)
	te := newTestEnv(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := run(ctx, []string{"-o", t.TempDir(), wikiDir, "Home.md"}, te.deps)
	if code != ExitGeneral {
		t.Errorf("run() = %d, want %d", code, ExitGeneral)
	}
	if len(te.conv.Inputs()) != 0 {
		t.Error("Convert() called after cancellation")
	}
}

// ---------------------------------------------------------------------------
// TestRun_Precedence - flags > env > config file > defaults
// ---------------------------------------------------------------------------

func TestRun_Precedence(t *testing.T) {
	t.Parallel()

	wikiDir := sampleWiki(t)
	cfgPath := filepath.Join(t.TempDir(), "wiki2pdf.yaml")
	cfgYAML := "title: From File\nlayout:\n  pageBreakMaxLevel: 3\npage:\n  size: legal\nfooter:\n  pageNumber: true\n"
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		name      string
		env       map[string]string
		args      []string
		wantTitle string
		wantSize  string
	}{
		{"file only", nil, []string{"-c", cfgPath}, "From File", "legal"},
		{"env over file", map[string]string{"WIKI2PDF_TITLE": "From Env", "WIKI2PDF_PAGE_SIZE": "a4"}, []string{"-c", cfgPath}, "From Env", "a4"},
		{"flag over env", map[string]string{"WIKI2PDF_TITLE": "From Env"}, []string{"-c", cfgPath, "--title", "From Flag"}, "From Flag", "legal"},
		{"config from env", map[string]string{"WIKI2PDF_CONFIG": cfgPath}, nil, "From File", "legal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(tt.env)
			args := append(append([]string{"-o", t.TempDir()}, tt.args...), wikiDir, "Home.md")
			if code := run(context.Background(), args, te.deps); code != ExitSuccess {
				t.Fatalf("run() = %d (stderr %q)", code, te.stderr.String())
			}

			in := te.conv.Inputs()[0]
			if in.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", in.Title, tt.wantTitle)
			}
			if in.Page == nil || in.Page.Size != tt.wantSize {
				t.Errorf("Page = %+v, want size %q", in.Page, tt.wantSize)
			}
			if in.Layout.PageBreakMaxLevel != 3 {
				t.Errorf("Layout.PageBreakMaxLevel = %d, want 3 from file", in.Layout.PageBreakMaxLevel)
			}
			if in.Footer == nil || !in.Footer.ShowPageNumber {
				t.Errorf("Footer = %+v, want page numbers from file", in.Footer)
			}
		})
	}
}

func TestRun_EnvWarnings(t *testing.T) {
	t.Parallel()

	wikiDir := sampleWiki(t)
	te := newTestEnv(map[string]string{
		"WIKI2PDF_TITEL":   "typo",
		"WIKI2PDF_WORKERS": "many",
	})

	code := run(context.Background(), []string{"--log-format", "text", "-o", t.TempDir(), wikiDir, "Home.md"}, te.deps)
	if code != ExitSuccess {
		t.Fatalf("run() = %d (stderr %q)", code, te.stderr.String())
	}
	stderr := te.stderr.String()
	for _, want := range []string{"WIKI2PDF_TITEL", "WIKI2PDF_WORKERS"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr = %q, want warning about %s", stderr, want)
		}
	}
}

// ---------------------------------------------------------------------------
// Helpers under test
// ---------------------------------------------------------------------------

func TestParseTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"45s", 45 * time.Second, false},
		{"2m", 2 * time.Minute, false},
		{"0s", 0, true},
		{"-5s", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := parseTimeout(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeout) {
					t.Errorf("parseTimeout(%q) error = %v, want ErrInvalidTimeout", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTimeout(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseTimeout(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, wiki2pdf.MaxPoolSize} {
		if err := validateWorkers(n); err != nil {
			t.Errorf("validateWorkers(%d) error = %v", n, err)
		}
	}
	for _, n := range []int{-1, wiki2pdf.MaxPoolSize + 1} {
		if err := validateWorkers(n); !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", n, err)
		}
	}
}

func TestBuildPageSettings(t *testing.T) {
	t.Parallel()

	if got := buildPageSettings(config.PageConfig{}); got != nil {
		t.Errorf("buildPageSettings(empty) = %+v, want nil", got)
	}

	got := buildPageSettings(config.PageConfig{Size: "A4"})
	if got.Size != wiki2pdf.PageSizeA4 || got.Orientation != wiki2pdf.OrientationPortrait || got.Margin != wiki2pdf.DefaultMargin {
		t.Errorf("buildPageSettings(a4) = %+v, want a4 with defaults", got)
	}
}

func TestBuildFooter(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 7, 9, 0, 0, 0, time.UTC)

	got, err := buildFooter(config.FooterConfig{Position: "left"}, now)
	if err != nil || got != nil {
		t.Errorf("buildFooter(position only) = %+v, %v, want nil", got, err)
	}

	got, err = buildFooter(config.FooterConfig{Position: "Center", PageNumber: true}, now)
	if err != nil {
		t.Fatalf("buildFooter() error = %v", err)
	}
	if got.Position != "center" || !got.ShowPageNumber {
		t.Errorf("buildFooter() = %+v, want centered page numbers", got)
	}

	got, err = buildFooter(config.FooterConfig{Text: "Printed {date:long}"}, now)
	if err != nil {
		t.Fatalf("buildFooter(date) error = %v", err)
	}
	if got.Text != "Printed March 7, 2026" {
		t.Errorf("buildFooter(date).Text = %q, want %q", got.Text, "Printed March 7, 2026")
	}

	_, err = buildFooter(config.FooterConfig{Text: "{date:[YYYY}"}, now)
	if !errors.Is(err, config.ErrInvalidValue) {
		t.Errorf("buildFooter(bad date) error = %v, want ErrInvalidValue", err)
	}
}

func TestPlanJobs(t *testing.T) {
	t.Parallel()

	root := sampleWiki(t)

	t.Run("directory output", func(t *testing.T) {
		t.Parallel()

		jobs, err := planJobs(root, []string{"Home.md", filepath.Join("guides", "FAQ.md")}, "out", config.OutputConfig{HTML: true}, false)
		if err != nil {
			t.Fatalf("planJobs() error = %v", err)
		}
		if jobs[0].PDFPath != filepath.Join("out", "Home.pdf") || jobs[0].HTMLPath != filepath.Join("out", "Home.html") {
			t.Errorf("jobs[0] = %+v", jobs[0])
		}
		if jobs[1].PDFPath != filepath.Join("out", "FAQ.pdf") {
			t.Errorf("jobs[1].PDFPath = %q", jobs[1].PDFPath)
		}
	})

	t.Run("config output dir", func(t *testing.T) {
		t.Parallel()

		jobs, err := planJobs(root, []string{"Home.md"}, "", config.OutputConfig{Dir: "pdf"}, false)
		if err != nil {
			t.Fatalf("planJobs() error = %v", err)
		}
		if jobs[0].PDFPath != filepath.Join("pdf", "Home.pdf") || jobs[0].HTMLPath != "" {
			t.Errorf("jobs[0] = %+v", jobs[0])
		}
	})

	t.Run("existing file path is absolute", func(t *testing.T) {
		t.Parallel()

		page := filepath.Join(root, "Setup.md")
		jobs, err := planJobs(root, []string{page}, "", config.OutputConfig{}, true)
		if err != nil {
			t.Fatalf("planJobs() error = %v", err)
		}
		if jobs[0].RootPage != page {
			t.Errorf("RootPage = %q, want %q", jobs[0].RootPage, page)
		}
		if jobs[0].HTMLPath != filepath.Join(root, "Setup.html") {
			t.Errorf("HTMLPath = %q", jobs[0].HTMLPath)
		}
	})

	t.Run("colliding outputs", func(t *testing.T) {
		t.Parallel()

		_, err := planJobs(root, []string{"Home.md", filepath.Join("guides", "Home.md")}, "out", config.OutputConfig{}, false)
		if !errors.Is(err, ErrOutputConflict) {
			t.Errorf("planJobs() error = %v, want ErrOutputConflict", err)
		}
	})
}

func TestDescribeResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		r    ConversionResult
		want string
	}{
		{ConversionResult{Pages: 1}, "1 wiki page"},
		{ConversionResult{Pages: 5, PDFPages: 12}, "5 wiki pages, 12 PDF pages"},
		{ConversionResult{Pages: 2, PDFPages: 1, Diagnostics: 3}, "2 wiki pages, 1 PDF page, 3 warnings"},
	}

	for _, tt := range tests {
		if got := describeResult(tt.r); got != tt.want {
			t.Errorf("describeResult(%+v) = %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestRun_Hints(t *testing.T) {
	t.Parallel()

	t.Run("browser failure", func(t *testing.T) {
		t.Parallel()

		wikiDir := sampleWiki(t)
		te := newTestEnv(nil)
		te.conv.err = wiki2pdf.ErrBrowserConnect

		run(context.Background(), []string{"-o", t.TempDir(), wikiDir, "Home.md"}, te.deps)

		stderr := te.stderr.String()
		if strings.Count(stderr, "ROD_BROWSER_BIN") != 1 {
			t.Errorf("stderr = %q, want one browser hint", stderr)
		}
	})

	t.Run("missing config name", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(nil)
		run(context.Background(), []string{"-c", "wiki2pdf-no-such-config", sampleWiki(t), "Home.md"}, te.deps)

		if !strings.Contains(te.stderr.String(), "hint: use --config") {
			t.Errorf("stderr = %q, want config hint", te.stderr.String())
		}
	})
}
