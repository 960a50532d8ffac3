// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package layout

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"

	"badgepress/internal/models"
)

// borderInset is the fixed inset of the decorative card border.
const borderInset = 1.5

// qrGap separates the QR block from adjacent text.
const qrGap = 2.0

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

// Compose computes the ordered draw operations for one badge. It is a
// pure function of its inputs except for asset lookups: a missing logo
// file or an undecodable QR image degrades that single element, never the
// whole badge.
func Compose(theme models.Theme, format models.Format, subj models.BadgeSubject, m Measurer) []Op {
	theme.Normalize()
	w, h := format.CanvasSize()

	if theme.Design != nil && len(theme.Design.Elements) > 0 {
		return composeDesign(theme, w, h, subj)
	}
	return composeParametric(theme, w, h, subj, m)
}

// composeParametric is the fixed-field strategy: background, border,
// title, name/role/department, dates, QR, logo — in paint order.
func composeParametric(t models.Theme, w, h float64, subj models.BadgeSubject, m Measurer) []Op {
	ops := backgroundOps(t, w, h)

	if t.ShowBorder {
		ops = append(ops, StrokeRect{
			X: borderInset, Y: borderInset,
			W: w - 2*borderInset, H: h - 2*borderInset,
			Color: ParseHex(t.BorderColor), LineWidth: 0.25,
		})
	}

	textColor := ParseHex(t.TextColor)

	// Organization title, centered at the top margin.
	y := t.MarginTop
	ops = append(ops, Text{
		X: w / 2, Y: y,
		Value:  models.FieldOrNA(subj.Organization),
		Family: t.TitleFont.Family, Size: t.TitleFont.Size,
		Color: ParseHex(t.PrimaryColor), Align: AlignCenter,
	})
	y += lineHeight(t.TitleFont) + 1.5

	// Identity block. When the QR sits on the right its column is
	// reserved so text never runs underneath it.
	reserved := 0.0
	if subj.QRImageB64 != "" && t.QRPosition == models.QRRight {
		reserved = t.QRSizeMM + qrGap
	}
	avail := w - t.MarginLeft - t.MarginRight - reserved

	for _, line := range []struct {
		value string
		font  models.FontSpec
	}{
		{models.FieldOrNA(subj.Name), t.NameFont},
		{models.FieldOrNA(subj.Role), t.RoleFont},
		{models.FieldOrNA(subj.Department), t.InfoFont},
	} {
		ops = append(ops, Text{
			X: t.MarginLeft, Y: y,
			Value:  Truncate(line.value, avail, line.font.Family, line.font.Size, m),
			Family: line.font.Family, Size: line.font.Size,
			Color: textColor, Align: AlignLeft,
		})
		y += lineHeight(line.font) + 0.8
	}

	// Issue and expiry dates along the bottom edge.
	dateY := h - t.MarginBottom - lineHeight(t.DateFont)
	ops = append(ops, Text{
		X: t.MarginLeft, Y: dateY,
		Value:  "Emissão: " + models.DateOrNA(subj.IssueDate),
		Family: t.DateFont.Family, Size: t.DateFont.Size,
		Color: textColor, Align: AlignLeft,
	})
	ops = append(ops, Text{
		X: w - t.MarginRight, Y: dateY,
		Value:  "Validade: " + models.DateOrNA(subj.ExpiryDate),
		Family: t.DateFont.Family, Size: t.DateFont.Size,
		Color: textColor, Align: AlignRight,
	})

	if subj.QRImageB64 != "" {
		qrX := qrAnchorX(t, w)
		ops = append(ops, qrOps(subj, qrX, t.MarginTop, t.QRSizeMM, ParseHex(t.BorderColor), t.TitleFont.Family)...)
	}

	if t.ShowLogo {
		ops = append(ops, logoOps(t, w, h, subj.LogoPath)...)
	}

	return ops
}

// backgroundOps paints the card background per the theme's kind. The
// gradient is approximated as two stacked translucent rectangles; the
// op vocabulary has no gradient primitive, matching the original
// renderer's behavior.
func backgroundOps(t models.Theme, w, h float64) []Op {
	alpha := models.ClampOpacity(t.Opacity)

	switch t.BackgroundKind {
	case models.BackgroundGradient:
		return []Op{
			FillRect{X: 0, Y: 0, W: w, H: h / 2, Color: ParseHex(t.BackgroundColor), Alpha: alpha},
			FillRect{X: 0, Y: h / 2, W: w, H: h / 2, Color: ParseHex(t.GradientColor), Alpha: alpha},
		}
	case models.BackgroundImage:
		if data, err := os.ReadFile(t.BackgroundImageURL); err == nil {
			return []Op{Image{X: 0, Y: 0, W: w, H: h, Data: data, Ref: "bg:" + t.BackgroundImageURL}}
		}
		slog.Warn("background image unavailable, falling back to solid fill",
			"path", t.BackgroundImageURL)
		fallthrough
	default:
		return []Op{FillRect{X: 0, Y: 0, W: w, H: h, Color: ParseHex(t.BackgroundColor), Alpha: alpha}}
	}
}

// qrAnchorX returns the left edge of the QR block.
func qrAnchorX(t models.Theme, w float64) float64 {
	switch t.QRPosition {
	case models.QRLeft:
		return t.MarginLeft
	case models.QRCenter:
		return (w - t.QRSizeMM) / 2
	default:
		return w - t.MarginRight - t.QRSizeMM
	}
}

// qrOps decodes the subject's embedded QR raster and positions it. An
// undecodable payload degrades to a bordered "QR" placeholder box.
func qrOps(subj models.BadgeSubject, x, y, size float64, border RGB, family string) []Op {
	data, err := base64.StdEncoding.DecodeString(subj.QRImageB64)
	if err != nil || !bytes.HasPrefix(data, pngMagic) {
		slog.Warn("qr image undecodable, drawing placeholder", "subject", subj.ID, "error", err)
		return []Op{
			StrokeRect{X: x, Y: y, W: size, H: size, Color: border, LineWidth: 0.25},
			Text{
				X: x + size/2, Y: y + size/2 - 4*PtToMM,
				Value: "QR", Family: family, Size: 8,
				Color: border, Align: AlignCenter,
			},
		}
	}
	return []Op{Image{X: x, Y: y, W: size, H: size, Data: data, Ref: "qr:" + subj.ID}}
}

// logoOps places the organization logo if its file exists on the
// rendering host. A missing file is logged and skipped.
func logoOps(t models.Theme, w, h float64, path string) []Op {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("logo file unavailable, skipping", "path", path, "error", err)
		return nil
	}

	size := t.LogoSizeMM
	var x, y float64
	switch t.LogoPosition {
	case models.LogoTopRight:
		x, y = w-t.MarginRight-size, t.MarginTop
	case models.LogoBottomLeft:
		x, y = t.MarginLeft, h-t.MarginBottom-size
	case models.LogoBottomRight:
		x, y = w-t.MarginRight-size, h-t.MarginBottom-size
	case models.LogoCenter:
		x, y = (w-size)/2, (h-size)/2
	default: // top left
		x, y = t.MarginLeft, t.MarginTop
	}

	return []Op{Image{X: x, Y: y, W: size, H: size, Data: data, Ref: "logo:" + path}}
}

// composeDesign is the free-form strategy: the theme's design document
// fully replaces the parametric steps. Elements paint in document order;
// one broken element is skipped, the rest still paint.
func composeDesign(t models.Theme, w, h float64, subj models.BadgeSubject) []Op {
	var ops []Op
	textColor := ParseHex(t.TextColor)

	for i, el := range t.Design.Elements {
		switch e := el.(type) {
		case models.BackgroundElement:
			alpha := e.Opacity
			if alpha == 0 {
				alpha = 1
			}
			ops = append(ops, FillRect{
				X: 0, Y: 0, W: w, H: h,
				Color: ParseHex(e.Color), Alpha: models.ClampOpacity(alpha),
			})

		case models.TextElement:
			value := e.Content
			if v, ok := subj.FieldValue(e.Field); ok {
				value = v
			}
			family, size := e.Family, e.FontSize
			if family == "" {
				family = t.InfoFont.Family
			}
			if size <= 0 {
				size = t.InfoFont.Size
			}
			color := textColor
			if e.Color != "" {
				color = ParseHex(e.Color)
			}
			ops = append(ops, Text{
				X: e.X, Y: e.Y, Value: value,
				Family: family, Size: size, Color: color, Align: AlignLeft,
			})

		case models.ImageElement:
			path := e.Source
			if p, ok := subj.PathValue(e.Field); ok {
				path = p
			}
			if path == "" {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				slog.Warn("design image unavailable, skipping", "path", path, "error", err)
				continue
			}
			ops = append(ops, Image{
				X: e.X, Y: e.Y, W: e.Width, H: e.Height,
				Data: data, Ref: fmt.Sprintf("design:%d:%s", i, path),
			})

		case models.QRElement:
			if subj.QRImageB64 == "" {
				continue
			}
			ops = append(ops, qrOps(subj, e.X, e.Y, e.Size, ParseHex(t.BorderColor), t.InfoFont.Family)...)
		}
	}

	return ops
}

// lineHeight converts a font size into a line advance in millimeters.
func lineHeight(f models.FontSpec) float64 {
	return f.Size * PtToMM * 1.3
}
