package render

import (
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Thai text appears on every voucher for Thai-market bookings, so the
// renderer registers a Thai font family once per process. Registration
// failure is not fatal: rendering continues with Latin-only substitution
// and a logged warning.

const thaiFamily = "TourdeskThai"

type fontRegistry struct {
	once     sync.Once
	faceCSS  string
	families string
}

func newFontRegistry() *fontRegistry {
	return &fontRegistry{}
}

// register resolves the configured font paths, keeping the first one that
// exists. It runs once; later calls return the cached CSS.
func (f *fontRegistry) register(paths []string, logger *slog.Logger) {
	f.once.Do(func() {
		f.families = `"Helvetica Neue", Helvetica, Arial, sans-serif`

		for _, p := range paths {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if _, err := os.Stat(p); err != nil {
				continue
			}
			f.faceCSS = fmt.Sprintf(
				"@font-face { font-family: %q; src: url(%q); }\n", thaiFamily, "file://"+p)
			f.families = fmt.Sprintf("%q, %s", thaiFamily, f.families)
			return
		}

		if logger != nil && len(paths) > 0 {
			logger.Warn("no Thai font available, falling back to Latin substitution", "paths", paths)
		}
	})
}

// css and fontFamilies return template.CSS because the registry is the
// only author of these strings. Untyped strings would hit the template
// engine's CSS filter, which rejects url() and quoted family names.
func (f *fontRegistry) css() template.CSS {
	return template.CSS(f.faceCSS)
}

func (f *fontRegistry) fontFamilies() template.CSS {
	return template.CSS(f.families)
}
