// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"badgepress/internal/models"
)

// Validation limits for theme and format fields.
const (
	maxNameLen        = 150
	maxDescriptionLen = 500
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// validHexColor accepts the #RRGGBB form the renderer understands.
func validHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

func validLayout(s string) bool {
	switch models.LayoutKind(s) {
	case models.LayoutHorizontal, models.LayoutVertical, models.LayoutCompact:
		return true
	}
	return false
}

func validLogoPosition(s string) bool {
	switch models.LogoPosition(s) {
	case models.LogoTopLeft, models.LogoTopRight, models.LogoBottomLeft,
		models.LogoBottomRight, models.LogoCenter:
		return true
	}
	return false
}

func validQRPosition(s string) bool {
	switch models.QRPosition(s) {
	case models.QRLeft, models.QRRight, models.QRCenter:
		return true
	}
	return false
}

func validBackground(s string) bool {
	switch models.BackgroundKind(s) {
	case models.BackgroundSolid, models.BackgroundGradient, models.BackgroundImage:
		return true
	}
	return false
}

func validExtension(s string) bool {
	switch models.Extension(s) {
	case models.ExtensionPDF, models.ExtensionHTML, models.ExtensionPNG, models.ExtensionSVG:
		return true
	}
	return false
}

func validOrientation(s string) bool {
	switch models.Orientation(s) {
	case models.OrientationHorizontal, models.OrientationVertical:
		return true
	}
	return false
}

// validateName checks a required display name. Returns the first problem
// found, or "".
func validateName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "nome é obrigatório"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "nome é muito longo (máximo 150 caracteres)"
	}
	return ""
}

// trimmed returns a pointer to the whitespace-trimmed value, or nil when
// the input pointer is nil.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
