// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Extension is the output document type produced for a format.
type Extension string

const (
	ExtensionPDF  Extension = "pdf"
	ExtensionHTML Extension = "html"
	ExtensionPNG  Extension = "png"
	ExtensionSVG  Extension = "svg"
)

// Orientation is the physical orientation of the card.
type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)

// Format is a named physical output specification for a badge.
type Format struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"nome"`
	Extension   Extension   `json:"extensao"`
	Description string      `json:"descricao"`
	WidthMM     float64     `json:"largura"`
	HeightMM    float64     `json:"altura"`
	DPI         int         `json:"dpi"`
	Orientation Orientation `json:"orientacao"`
	Quality     int         `json:"qualidade"`
	Compress    bool        `json:"comprimir"`
	Active      bool        `json:"ativo"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CanvasSize returns the effective page width and height in millimeters,
// swapping the stored dimensions when they disagree with the orientation.
func (f Format) CanvasSize() (w, h float64) {
	w, h = f.WidthMM, f.HeightMM
	switch f.Orientation {
	case OrientationHorizontal:
		if h > w {
			w, h = h, w
		}
	case OrientationVertical:
		if w > h {
			w, h = h, w
		}
	}
	return w, h
}

// DefaultFormat returns the fallback CR80 PDF format used when no row is
// configured.
func DefaultFormat() Format {
	return Format{
		Name:        "CR80 PDF",
		Extension:   ExtensionPDF,
		Description: "Cartão de crédito padrão",
		WidthMM:     85.6,
		HeightMM:    53.98,
		DPI:         300,
		Orientation: OrientationHorizontal,
		Quality:     90,
		Active:      true,
	}
}
