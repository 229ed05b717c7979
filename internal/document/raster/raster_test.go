//go:build unit

package raster_test

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"tourdesk/internal/document/raster"
	"tourdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makePDF builds a minimal but well-formed PDF with one blank page per
// entry in sizes (width, height in points). The xref table carries real
// byte offsets so strict parsers accept it.
func makePDF(t *testing.T, sizes ...[2]int) []byte {
	t.Helper()

	var buf bytes.Buffer
	offsets := make([]int, 0, len(sizes)+3)
	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := ""
	for i := range sizes {
		kids += fmt.Sprintf("%d 0 R ", 3+i)
	}
	addObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	addObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", kids, len(sizes)))
	for i, size := range sizes {
		addObj(fmt.Sprintf(
			"%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] >>\nendobj\n",
			3+i, size[0], size[1]))
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefStart)
	return buf.Bytes()
}

func pngSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func solidPage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestPageCount(t *testing.T) {
	c := raster.NewConverter(nil)

	n, err := c.PageCount(makePDF(t, [2]int{200, 100}))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = c.PageCount(makePDF(t, [2]int{200, 100}, [2]int{200, 100}))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = c.PageCount([]byte("not a pdf"))
	assert.Error(t, err)
}

func TestPageToPNG(t *testing.T) {
	c := raster.NewConverter(nil)
	pdf := makePDF(t, [2]int{200, 100}, [2]int{200, 100})

	t.Run("pixel size follows zoom", func(t *testing.T) {
		data, err := c.PageToPNG(pdf, 0, 2.0)
		require.NoError(t, err)

		w, h := pngSize(t, data)
		assert.InDelta(t, 400, w, 1)
		assert.InDelta(t, 200, h, 1)
	})

	t.Run("page index outside document", func(t *testing.T) {
		_, err := c.PageToPNG(pdf, 2, 2.0)
		assert.ErrorIs(t, err, errs.ErrPageOutOfRange)

		_, err = c.PageToPNG(pdf, -1, 2.0)
		assert.ErrorIs(t, err, errs.ErrPageOutOfRange)
	})
}

func TestAllPages(t *testing.T) {
	c := raster.NewConverter(nil)
	pdf := makePDF(t, [2]int{200, 100}, [2]int{200, 100})

	pages, err := c.AllPages(pdf, 1.0)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	for i, p := range pages {
		w, h := pngSize(t, p)
		assert.InDelta(t, 200, w, 1, "page %d width", i)
		assert.InDelta(t, 100, h, 1, "page %d height", i)
	}
}

func TestLongPNG(t *testing.T) {
	c := raster.NewConverter(nil)

	t.Run("single page matches the per-page render", func(t *testing.T) {
		pdf := makePDF(t, [2]int{200, 100})

		long, err := c.LongPNG(pdf, 2.0, 8)
		require.NoError(t, err)
		single, err := c.PageToPNG(pdf, 0, 2.0)
		require.NoError(t, err)

		assert.Equal(t, single, long)
	})

	t.Run("two pages stack with spacing", func(t *testing.T) {
		pdf := makePDF(t, [2]int{200, 100}, [2]int{100, 100})

		long, err := c.LongPNG(pdf, 1.0, 8)
		require.NoError(t, err)

		w, h := pngSize(t, long)
		assert.InDelta(t, 200, w, 1)
		assert.InDelta(t, 100+100+8, h, 2)
	})
}

func TestScaleKey(t *testing.T) {
	assert.Equal(t, 200, raster.ScaleKey(2.0))
	assert.Equal(t, 150, raster.ScaleKey(1.5))
	assert.Equal(t, 133, raster.ScaleKey(1.3333))
	// Nearby zooms that round to the same percent share a cache slot.
	assert.Equal(t, raster.ScaleKey(1.999), raster.ScaleKey(2.004))
}

func TestComposeLong(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}

	t.Run("height is pages plus spacing", func(t *testing.T) {
		pages := []image.Image{
			solidPage(100, 40, red),
			solidPage(100, 60, blue),
			solidPage(100, 50, red),
		}
		out := raster.ComposeLong(pages, 10)

		b := out.Bounds()
		assert.Equal(t, 100, b.Dx())
		assert.Equal(t, 40+60+50+2*10, b.Dy())
	})

	t.Run("narrow pages are centered on white", func(t *testing.T) {
		pages := []image.Image{
			solidPage(100, 20, red),
			solidPage(50, 20, blue),
		}
		out := raster.ComposeLong(pages, 0)

		require.Equal(t, 100, out.Bounds().Dx())

		// Second page occupies x 25..74 on its row.
		r, g, bl, _ := out.At(10, 30).RGBA()
		assert.True(t, r > 0xf000 && g > 0xf000 && bl > 0xf000, "margin should be white")

		_, _, bl, _ = out.At(50, 30).RGBA()
		assert.True(t, bl > 0xf000, "centered page pixel should be blue")
	})

	t.Run("spacing band stays white", func(t *testing.T) {
		pages := []image.Image{
			solidPage(10, 10, red),
			solidPage(10, 10, blue),
		}
		out := raster.ComposeLong(pages, 4)

		r, g, b, _ := out.At(5, 12).RGBA()
		assert.True(t, r > 0xf000 && g > 0xf000 && b > 0xf000)
	})

	t.Run("single page keeps its size", func(t *testing.T) {
		out := raster.ComposeLong([]image.Image{solidPage(30, 30, red)}, 8)
		assert.Equal(t, 30, out.Bounds().Dx())
		assert.Equal(t, 30, out.Bounds().Dy())
	})
}
