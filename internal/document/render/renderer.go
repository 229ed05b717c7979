// Package render turns a named HTML template plus a view model into PDF
// bytes. Conversion runs in headless Chromium via rod; renders are capped
// by a semaphore so multi-page compositions cannot exhaust memory.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"math"
	"runtime"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/sync/semaphore"

	"tourdesk/internal/document/viewmodel"
	"tourdesk/internal/pkg/errs"
)

const (
	// A4 in inches for PrintToPDF
	a4WidthIn  = 8.27
	a4HeightIn = 11.69

	MediaTypePDF = "application/pdf"
)

// PDFConverter is the HTML-to-PDF boundary. Production uses Chromium;
// tests substitute a stub.
type PDFConverter interface {
	HTMLToPDF(ctx context.Context, html string) ([]byte, error)
	Close() error
}

// Options configures a Renderer.
type Options struct {
	ThaiFontPaths []string
	// MaxConcurrent caps simultaneous conversions; 0 means ceil(cores*1.5).
	MaxConcurrent int
}

type Renderer struct {
	templates *templateSet
	fonts     *fontRegistry
	converter PDFConverter
	sem       *semaphore.Weighted
	logger    *slog.Logger
	fontPaths []string
}

func NewRenderer(converter PDFConverter, opts Options, logger *slog.Logger) (*Renderer, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	maxConc := opts.MaxConcurrent
	if maxConc <= 0 {
		maxConc = int(math.Ceil(float64(runtime.NumCPU()) * 1.5))
	}

	return &Renderer{
		templates: templates,
		fonts:     newFontRegistry(),
		converter: converter,
		sem:       semaphore.NewWeighted(int64(maxConc)),
		logger:    logger,
		fontPaths: opts.ThaiFontPaths,
	}, nil
}

// Render produces PDF bytes for the named template. Output is identical
// for identical inputs; the generation timestamp inside the view model is
// the only caller-supplied varying field.
func (r *Renderer) Render(ctx context.Context, templateName string, data *viewmodel.Data) ([]byte, string, error) {
	html, err := r.RenderHTML(templateName, data)
	if err != nil {
		return nil, "", err
	}

	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, "", errs.Mark(err, errs.ErrRenderTimeout)
	}
	defer r.sem.Release(1)

	pdf, err := r.converter.HTMLToPDF(ctx, html)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, "", errs.Mark(err, errs.ErrRenderTimeout)
		}
		return nil, "", errs.Mark(err, errs.ErrRenderFailed)
	}
	return pdf, MediaTypePDF, nil
}

// RenderHTML executes the template stage only. Split out so the HTML can
// be served directly (public summary page) and tested without Chromium.
func (r *Renderer) RenderHTML(templateName string, data *viewmodel.Data) (string, error) {
	t, err := r.templates.lookup(templateName)
	if err != nil {
		return "", err
	}

	r.fonts.register(r.fontPaths, r.logger)

	var buf bytes.Buffer
	payload := struct {
		*viewmodel.Data
		FontFaceCSS  template.CSS
		FontFamilies template.CSS
		PageMargin   string
	}{
		Data:         data,
		FontFaceCSS:  r.fonts.css(),
		FontFamilies: r.fonts.fontFamilies(),
		PageMargin:   marginFor(templateName),
	}
	if err := t.Execute(&buf, payload); err != nil {
		return "", errs.Mark(errs.Wrap(err, "executing template "+templateName), errs.ErrRenderFailed)
	}
	return buf.String(), nil
}

func (r *Renderer) Close() error {
	return r.converter.Close()
}

// ---------------------------------------------------------------------------
// Chromium converter

type rodConverter struct {
	browser *rod.Browser
	cleanup func()
}

// NewRodConverter launches a headless Chromium and keeps it for the
// process lifetime. bin overrides the browser binary when non-empty.
func NewRodConverter(bin string) (PDFConverter, error) {
	l := launcher.New().Headless(true).NoSandbox(true)
	if bin != "" {
		l = l.Bin(bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, errs.Wrap(err, "launching browser")
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, errs.Wrap(err, "connecting to browser")
	}

	return &rodConverter{
		browser: browser,
		cleanup: l.Kill,
	}, nil
}

func (c *rodConverter) HTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	page, err := c.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	defer func() { _ = page.Close() }()

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("setting page content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("waiting for page load: %w", err)
	}

	printBackground := true
	preferCSSPageSize := true
	width := a4WidthIn
	height := a4HeightIn
	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   printBackground,
		PreferCSSPageSize: preferCSSPageSize,
		PaperWidth:        &width,
		PaperHeight:       &height,
	})
	if err != nil {
		return nil, fmt.Errorf("printing to PDF: %w", err)
	}
	defer func() { _ = stream.Close() }()

	return io.ReadAll(stream)
}

func (c *rodConverter) Close() error {
	err := c.browser.Close()
	if c.cleanup != nil {
		c.cleanup()
	}
	return err
}
