// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the badge domain records: visual themes, output
// formats, the employee projection consumed by the renderer, and the
// optional free-form visual design document stored alongside a theme.
package models

import (
	"time"

	"github.com/google/uuid"
)

// LayoutKind selects the parametric arrangement of badge elements.
type LayoutKind string

const (
	LayoutHorizontal LayoutKind = "horizontal"
	LayoutVertical   LayoutKind = "vertical"
	LayoutCompact    LayoutKind = "compacto"
)

// LogoPosition places the organization logo on the card.
type LogoPosition string

const (
	LogoTopLeft     LogoPosition = "superior_esquerda"
	LogoTopRight    LogoPosition = "superior_direita"
	LogoBottomLeft  LogoPosition = "inferior_esquerda"
	LogoBottomRight LogoPosition = "inferior_direita"
	LogoCenter      LogoPosition = "centro"
)

// QRPosition anchors the QR code horizontally near the top margin.
type QRPosition string

const (
	QRLeft   QRPosition = "esquerda"
	QRRight  QRPosition = "direita"
	QRCenter QRPosition = "centro"
)

// BackgroundKind selects how the card background is painted.
type BackgroundKind string

const (
	BackgroundSolid    BackgroundKind = "solido"
	BackgroundGradient BackgroundKind = "gradiente"
	BackgroundImage    BackgroundKind = "imagem"
)

// FontSpec pairs a font family with a size in points.
type FontSpec struct {
	Family string  `json:"familia"`
	Size   float64 `json:"tamanho"`
}

// Theme is a named bundle of visual styling parameters for a badge.
// All linear measurements are millimeters; font sizes are points.
type Theme struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"nome"`

	PrimaryColor   string `json:"cor_primaria"`
	SecondaryColor string `json:"cor_secundaria"`
	TextColor      string `json:"cor_texto"`
	BorderColor    string `json:"cor_borda"`

	Layout LayoutKind `json:"layout"`

	MarginTop    float64 `json:"margem_superior"`
	MarginBottom float64 `json:"margem_inferior"`
	MarginLeft   float64 `json:"margem_esquerda"`
	MarginRight  float64 `json:"margem_direita"`

	TitleFont FontSpec `json:"fonte_titulo"`
	NameFont  FontSpec `json:"fonte_nome"`
	RoleFont  FontSpec `json:"fonte_cargo"`
	InfoFont  FontSpec `json:"fonte_info"`
	DateFont  FontSpec `json:"fonte_datas"`

	ShowLogo     bool         `json:"mostrar_logo"`
	LogoPosition LogoPosition `json:"posicao_logo"`
	LogoSizeMM   float64      `json:"tamanho_logo"`

	// ShowBorder toggles the decorative whole-card border. The legacy
	// column was named after the QR code but always drew the card border;
	// the field is renamed here, the effect is unchanged.
	ShowBorder bool       `json:"mostrar_borda"`
	QRSizeMM   float64    `json:"tamanho_qr"`
	QRPosition QRPosition `json:"posicao_qr"`

	BackgroundKind     BackgroundKind `json:"fundo_tipo"`
	BackgroundColor    string         `json:"fundo_cor"`
	GradientColor      string         `json:"fundo_cor_gradiente"`
	BackgroundImageURL string         `json:"fundo_imagem_url,omitempty"`
	Opacity            float64        `json:"fundo_opacidade"`

	Active bool            `json:"ativo"`
	Design *DesignDocument `json:"design,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClampOpacity forces the background opacity into [0, 1]. Out-of-range
// values are clamped rather than rejected so imported themes keep working.
func ClampOpacity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Normalize fills zero-valued fields with usable defaults and clamps the
// opacity. Called before a theme is persisted.
func (t *Theme) Normalize() {
	if t.Layout == "" {
		t.Layout = LayoutHorizontal
	}
	if t.QRPosition == "" {
		t.QRPosition = QRRight
	}
	if t.LogoPosition == "" {
		t.LogoPosition = LogoTopLeft
	}
	if t.BackgroundKind == "" {
		t.BackgroundKind = BackgroundSolid
	}
	if t.PrimaryColor == "" {
		t.PrimaryColor = "#1A5276"
	}
	if t.SecondaryColor == "" {
		t.SecondaryColor = "#FFFFFF"
	}
	if t.TextColor == "" {
		t.TextColor = "#212121"
	}
	if t.BorderColor == "" {
		t.BorderColor = "#1A5276"
	}
	if t.BackgroundColor == "" {
		t.BackgroundColor = "#FFFFFF"
	}
	if t.GradientColor == "" {
		t.GradientColor = t.PrimaryColor
	}
	if t.TitleFont.Family == "" {
		t.TitleFont = FontSpec{Family: "Helvetica", Size: 10}
	}
	if t.NameFont.Family == "" {
		t.NameFont = FontSpec{Family: "Helvetica", Size: 12}
	}
	if t.RoleFont.Family == "" {
		t.RoleFont = FontSpec{Family: "Helvetica", Size: 9}
	}
	if t.InfoFont.Family == "" {
		t.InfoFont = FontSpec{Family: "Helvetica", Size: 8}
	}
	if t.DateFont.Family == "" {
		t.DateFont = FontSpec{Family: "Helvetica", Size: 6}
	}
	if t.QRSizeMM <= 0 {
		t.QRSizeMM = 18
	}
	if t.LogoSizeMM <= 0 {
		t.LogoSizeMM = 12
	}
	if t.Opacity == 0 {
		t.Opacity = 1
	}
	t.Opacity = ClampOpacity(t.Opacity)
}

// DefaultTheme returns the fallback theme used when no row is configured.
// Badges must stay printable before any theme has ever been created.
func DefaultTheme() Theme {
	t := Theme{
		Name:         "Padrão",
		MarginTop:    4,
		MarginBottom: 4,
		MarginLeft:   5,
		MarginRight:  5,
		ShowBorder:   true,
		Active:       true,
	}
	t.Normalize()
	return t
}
