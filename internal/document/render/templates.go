package render

import (
	"embed"
	"html/template"

	"tourdesk/internal/pkg/errs"
)

//go:embed templates/*.html
var templateFS embed.FS

// templateFiles is the fixed symbolic-name table. Unknown names fail fast
// with ErrTemplateNotFound; there is no dynamic lookup.
var templateFiles = map[string]string{
	"service_proposal": "templates/service_proposal.html",
	"quote":            "templates/quote.html",
	"tour_voucher":     "templates/tour_voucher.html",
	"public_page":      "templates/public_page.html",
}

// margins are per-template, in millimetres, applied through @page CSS.
var templateMargins = map[string]string{
	"service_proposal": "18mm 15mm 20mm 15mm",
	"quote":            "18mm 15mm 20mm 15mm",
	"tour_voucher":     "12mm 12mm 16mm 12mm",
}

const defaultMargin = "18mm 15mm 20mm 15mm"

type templateSet struct {
	parsed map[string]*template.Template
}

func loadTemplates() (*templateSet, error) {
	ts := &templateSet{parsed: make(map[string]*template.Template, len(templateFiles))}
	for name, file := range templateFiles {
		t, err := template.New("base.html").ParseFS(templateFS, "templates/base.html", file)
		if err != nil {
			return nil, errs.Wrap(err, "parsing template "+name)
		}
		ts.parsed[name] = t
	}
	return ts, nil
}

func (ts *templateSet) lookup(name string) (*template.Template, error) {
	t, ok := ts.parsed[name]
	if !ok {
		return nil, errs.Mark(errs.New("no template named "+name), errs.ErrTemplateNotFound)
	}
	return t, nil
}

func marginFor(name string) string {
	if m, ok := templateMargins[name]; ok {
		return m
	}
	return defaultMargin
}
