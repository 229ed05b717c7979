// Package raster converts PDF bytes to PNG images with MuPDF (go-fitz).
// It backs the public PNG endpoint: per-page images and the single long
// image stitched from every page of a multi-page voucher.
package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"math"

	"github.com/gen2brain/go-fitz"

	"tourdesk/internal/pkg/errs"
)

const (
	// DefaultZoom matches PDF_DEFAULT_ZOOM.
	DefaultZoom = 2.0

	// MuPDF's base resolution; zoom scales from here.
	baseDPI = 72.0

	MediaTypePNG = "image/png"
)

var pngEncoder = png.Encoder{CompressionLevel: png.BestCompression}

// ScaleKey converts a zoom factor to the integer percentage used in cache
// keys: round(zoom x 100).
func ScaleKey(zoom float64) int {
	return int(math.Round(zoom * 100))
}

type Converter struct {
	logger *slog.Logger
}

func NewConverter(logger *slog.Logger) *Converter {
	return &Converter{logger: logger}
}

// PageCount returns the number of pages in the PDF.
func (c *Converter) PageCount(pdf []byte) (int, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return 0, errs.Wrap(err, "opening PDF")
	}
	defer doc.Close()
	return doc.NumPage(), nil
}

// PageToPNG rasterizes a single 0-based page at the given zoom.
func (c *Converter) PageToPNG(pdf []byte, pageIndex int, zoom float64) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, errs.Wrap(err, "opening PDF")
	}
	defer doc.Close()

	if pageIndex < 0 || pageIndex >= doc.NumPage() {
		return nil, errs.Mark(errs.New("page index outside document"), errs.ErrPageOutOfRange)
	}

	img, err := c.renderPage(doc, pageIndex, zoom)
	if err != nil {
		return nil, err
	}
	return encodePNG(img)
}

// AllPages rasterizes every page in order. A page that cannot be rendered
// yields empty bytes rather than failing the whole document; callers treat
// empty entries as misses.
func (c *Converter) AllPages(pdf []byte, zoom float64) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, errs.Wrap(err, "opening PDF")
	}
	defer doc.Close()

	out := make([][]byte, doc.NumPage())
	for i := range out {
		img, renderErr := c.renderPage(doc, i, zoom)
		if renderErr != nil {
			c.warnPage(i, renderErr)
			out[i] = []byte{}
			continue
		}
		encoded, encodeErr := encodePNG(img)
		if encodeErr != nil {
			c.warnPage(i, encodeErr)
			out[i] = []byte{}
			continue
		}
		out[i] = encoded
	}
	return out, nil
}

// LongPNG stacks all pages vertically on a white background, horizontally
// centered, with spacingPx between pages. A single-page PDF returns the
// page unchanged.
func (c *Converter) LongPNG(pdf []byte, zoom float64, spacingPx int) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, errs.Wrap(err, "opening PDF")
	}
	defer doc.Close()

	n := doc.NumPage()
	if n == 0 {
		return []byte{}, nil
	}

	pages := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		img, renderErr := c.renderPage(doc, i, zoom)
		if renderErr != nil {
			c.warnPage(i, renderErr)
			continue
		}
		pages = append(pages, img)
	}
	if len(pages) == 0 {
		return []byte{}, nil
	}
	if len(pages) == 1 {
		return encodePNG(pages[0])
	}
	return encodePNG(ComposeLong(pages, spacingPx))
}

// ComposeLong joins page images into one vertical strip: white background,
// each page centered, spacing pixels between consecutive pages. Height is
// sum(page heights) + (n-1)*spacing.
func ComposeLong(pages []image.Image, spacing int) image.Image {
	if spacing < 0 {
		spacing = 0
	}

	width, height := 0, 0
	for _, p := range pages {
		b := p.Bounds()
		if b.Dx() > width {
			width = b.Dx()
		}
		height += b.Dy()
	}
	height += spacing * (len(pages) - 1)

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	y := 0
	for _, p := range pages {
		b := p.Bounds()
		x := (width - b.Dx()) / 2
		target := image.Rect(x, y, x+b.Dx(), y+b.Dy())
		draw.Draw(canvas, target, p, b.Min, draw.Src)
		y += b.Dy() + spacing
	}
	return canvas
}

func (c *Converter) renderPage(doc *fitz.Document, pageIndex int, zoom float64) (image.Image, error) {
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	img, err := doc.ImageDPI(pageIndex, baseDPI*zoom)
	if err != nil {
		return nil, errs.Wrap(err, "rasterizing page")
	}
	return img, nil
}

func (c *Converter) warnPage(pageIndex int, err error) {
	if c.logger != nil {
		c.logger.Warn("page rasterization failed", "page", pageIndex, "error", err)
	}
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := pngEncoder.Encode(&buf, img); err != nil {
		return nil, errs.Wrap(err, "encoding PNG")
	}
	return buf.Bytes(), nil
}
