// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package layout turns a theme, a format and one badge subject into an
// ordered list of positioned draw operations. It owns all geometry and
// text truncation; painting is left to the renderers, which execute the
// ops in slice order so later elements occlude earlier ones.
package layout

import "strconv"

// PtToMM converts font points to millimeters.
const PtToMM = 25.4 / 72.0

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses a "#RRGGBB" color. Anything malformed comes back black,
// matching how the original tolerated hand-edited theme rows.
func ParseHex(s string) RGB {
	if len(s) == 7 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return RGB{}
	}
	r, err1 := strconv.ParseUint(s[0:2], 16, 8)
	g, err2 := strconv.ParseUint(s[2:4], 16, 8)
	b, err3 := strconv.ParseUint(s[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return RGB{}
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// Align is the horizontal anchoring of a text op relative to its X.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Op is one positioned draw operation. Coordinates and dimensions are
// millimeters from the top-left corner of the card.
type Op interface {
	isOp()
}

// FillRect paints a filled rectangle with an alpha in [0, 1].
type FillRect struct {
	X, Y, W, H float64
	Color      RGB
	Alpha      float64
}

// StrokeRect paints a rectangle outline.
type StrokeRect struct {
	X, Y, W, H float64
	Color      RGB
	LineWidth  float64
}

// Text paints a single line of text. Y is the top of the line; the
// renderer derives the baseline from the font size.
type Text struct {
	X, Y   float64
	Value  string
	Family string
	Size   float64 // points
	Color  RGB
	Align  Align
}

// Image paints a raster image. Data holds the encoded bytes (PNG, JPEG or
// WebP); Ref is a stable registration key for renderers that cache
// decoded images.
type Image struct {
	X, Y, W, H float64
	Data       []byte
	Ref        string
}

func (FillRect) isOp()   {}
func (StrokeRect) isOp() {}
func (Text) isOp()       {}
func (Image) isOp()      {}

// Measurer reports the rendered width in millimeters of a text run.
// Renderers supply one backed by their real font metrics.
type Measurer interface {
	TextWidth(text, family string, size float64) float64
}
