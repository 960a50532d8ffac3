// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render paints positioned layout operations into final badge
// documents: PDF bytes for printing and an HTML string for the on-screen
// preview. One badge is always exactly one page; images are registered
// from in-memory readers so no temporary files are written.
package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"badgepress/internal/layout"
	"badgepress/internal/models"
)

// PDF wraps a gofpdf canvas sized for one badge. It doubles as the
// layout.Measurer so truncation uses the exact font metrics the final
// document is painted with.
type PDF struct {
	doc *gofpdf.Fpdf
	tr  func(string) string
}

// NewPDF opens a badge-sized canvas for the given format.
func NewPDF(format models.Format) *PDF {
	w, h := format.CanvasSize()
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	return &PDF{
		doc: doc,
		// Core fonts are cp1252; the translator handles the accented
		// characters in Portuguese labels.
		tr: doc.UnicodeTranslatorFromDescriptor(""),
	}
}

// TextWidth implements layout.Measurer with real gofpdf metrics.
func (p *PDF) TextWidth(text, family string, size float64) float64 {
	p.doc.SetFont(coreFont(family), "", size)
	return p.doc.GetStringWidth(p.tr(text))
}

// Paint executes ops in slice order so later elements occlude earlier
// ones exactly as the layout authored them. A single unpaintable image
// is logged and skipped; painting never aborts the page.
func (p *PDF) Paint(ops []layout.Op) {
	for _, op := range ops {
		switch o := op.(type) {
		case layout.FillRect:
			p.doc.SetFillColor(int(o.Color.R), int(o.Color.G), int(o.Color.B))
			p.doc.SetAlpha(o.Alpha, "Normal")
			p.doc.Rect(o.X, o.Y, o.W, o.H, "F")
			p.doc.SetAlpha(1, "Normal")

		case layout.StrokeRect:
			p.doc.SetDrawColor(int(o.Color.R), int(o.Color.G), int(o.Color.B))
			p.doc.SetLineWidth(o.LineWidth)
			p.doc.Rect(o.X, o.Y, o.W, o.H, "D")

		case layout.Text:
			p.paintText(o)

		case layout.Image:
			p.paintImage(o)
		}
	}
}

func (p *PDF) paintText(o layout.Text) {
	p.doc.SetFont(coreFont(o.Family), "", o.Size)
	p.doc.SetTextColor(int(o.Color.R), int(o.Color.G), int(o.Color.B))

	value := p.tr(o.Value)
	x := o.X
	switch o.Align {
	case layout.AlignCenter:
		x -= p.doc.GetStringWidth(value) / 2
	case layout.AlignRight:
		x -= p.doc.GetStringWidth(value)
	}

	// Op Y is the top of the line; gofpdf positions by baseline.
	baseline := o.Y + o.Size*layout.PtToMM
	p.doc.Text(x, baseline, value)
}

func (p *PDF) paintImage(o layout.Image) {
	// gofpdf rejects 16-bit and interlaced PNGs; normalize everything
	// (including webp logos) to plain 8-bit PNG first.
	png, err := normalizePNG(o.Data)
	if err != nil {
		slog.Warn("image unpaintable, skipping", "ref", o.Ref, "error", err)
		return
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.doc.RegisterImageOptionsReader(o.Ref, opts, bytes.NewReader(png))
	p.doc.ImageOptions(o.Ref, o.X, o.Y, o.W, o.H, false, opts, 0, "")
}

// Bytes finalizes the document.
func (p *PDF) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPDF lays out and paints one badge in one call.
func RenderPDF(theme models.Theme, format models.Format, subj models.BadgeSubject) ([]byte, error) {
	p := NewPDF(format)
	p.Paint(layout.Compose(theme, format, subj, p))
	return p.Bytes()
}

// coreFont maps a configured family onto one of the built-in PDF core
// fonts, which need no font files on the rendering host. Arial maps to
// the metric-compatible Helvetica.
func coreFont(family string) string {
	switch strings.ToLower(family) {
	case "times", "times new roman":
		return "Times"
	case "courier":
		return "Courier"
	default:
		return "Helvetica"
	}
}
