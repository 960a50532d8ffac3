// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// reference.go holds the static reference tables served by the
// configuration endpoint. These are industry constants, independent of
// any stored theme or format row, so the configuration UI can populate
// itself even against a completely empty database.

package models

// SizePreset is one industry-standard card size.
type SizePreset struct {
	WidthMM     float64 `json:"largura"`
	HeightMM    float64 `json:"altura"`
	Description string  `json:"descricao"`
}

// SizePresets returns the fixed table of standard card sizes.
func SizePresets() map[string]SizePreset {
	return map[string]SizePreset{
		"CR80":            {WidthMM: 85.6, HeightMM: 53.98, Description: "Cartão de crédito padrão"},
		"CR100":           {WidthMM: 98.5, HeightMM: 67, Description: "Crachá grande"},
		"cartao_visita":   {WidthMM: 90, HeightMM: 50, Description: "Cartão de visita"},
		"cracha_vertical": {WidthMM: 60, HeightMM: 90, Description: "Crachá vertical com cordão"},
		"mini_cartao":     {WidthMM: 70, HeightMM: 40, Description: "Mini cartão"},
	}
}

// LayoutOptions lists the selectable layout kinds.
func LayoutOptions() []LayoutKind {
	return []LayoutKind{LayoutHorizontal, LayoutVertical, LayoutCompact}
}

// FontOptions lists the font families the PDF renderer ships with.
// The core PDF fonts need no external font files on the rendering host.
func FontOptions() []string {
	return []string{"Helvetica", "Times", "Courier", "Arial"}
}

// BackgroundOptions lists the selectable background kinds.
func BackgroundOptions() []BackgroundKind {
	return []BackgroundKind{BackgroundSolid, BackgroundGradient, BackgroundImage}
}

// DefaultValidityDays is the badge validity applied when a request does
// not name an expiry date.
const DefaultValidityDays = 365
