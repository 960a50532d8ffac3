// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Employee is the minimal projection of an HR record that badge rendering
// needs. The full employee lifecycle (hiring, payroll, attendance) lives
// in the surrounding HR system; this service only reads.
type Employee struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"nome"`
	Role         string    `json:"cargo"`
	Department   string    `json:"departamento"`
	PhotoPath    string    `json:"foto,omitempty"`
	Organization string    `json:"organizacao"`
	LogoPath     string    `json:"logo,omitempty"`
	Active       bool      `json:"ativo"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BadgeSubject is the flat field set one render call consumes: employee
// attributes plus the render-time artifacts (QR image, validity window).
// The renderer never mutates it.
type BadgeSubject struct {
	ID           string
	Name         string
	Role         string
	Department   string
	Organization string
	PhotoPath    string
	LogoPath     string

	// QRImageB64 is a base64-encoded PNG. A corrupt value degrades to a
	// placeholder box at layout time.
	QRImageB64 string

	IssueDate  time.Time
	ExpiryDate time.Time
}

// FieldOrNA substitutes the literal placeholder for absent values so a
// half-filled HR record still renders.
func FieldOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// DateOrNA formats a date as YYYY-MM-DD, or the placeholder when unset.
func DateOrNA(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("2006-01-02")
}

// FieldValue resolves a design-document association name against the
// subject. Unknown names return ok=false so the element's literal content
// is used instead.
func (s BadgeSubject) FieldValue(field string) (string, bool) {
	switch field {
	case "id":
		return s.ID, true
	case "nome":
		return FieldOrNA(s.Name), true
	case "cargo":
		return FieldOrNA(s.Role), true
	case "departamento":
		return FieldOrNA(s.Department), true
	case "organizacao":
		return FieldOrNA(s.Organization), true
	case "data_emissao":
		return DateOrNA(s.IssueDate), true
	case "data_validade":
		return DateOrNA(s.ExpiryDate), true
	}
	return "", false
}

// PathValue resolves an image association to a file path.
func (s BadgeSubject) PathValue(field string) (string, bool) {
	switch field {
	case "foto":
		return s.PhotoPath, s.PhotoPath != ""
	case "logo":
		return s.LogoPath, s.LogoPath != ""
	}
	return "", false
}
