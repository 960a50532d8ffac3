// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the database access layer for badge
// configuration: themes, formats, and the employee projection. Stores
// return (nil, nil) for missing rows; callers translate that to 404.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"badgepress/internal/models"
)

const themeColumns = `id, name, primary_color, secondary_color, text_color, border_color,
	layout, margin_top, margin_bottom, margin_left, margin_right,
	title_font_family, title_font_size, name_font_family, name_font_size,
	role_font_family, role_font_size, info_font_family, info_font_size,
	date_font_family, date_font_size,
	show_logo, logo_position, logo_size_mm,
	show_border, qr_size_mm, qr_position,
	background_kind, background_color, gradient_color, background_image_url, opacity,
	active, design, created_at, updated_at`

// ThemeStore handles all theme-related database operations.
type ThemeStore struct {
	db *sql.DB
}

// NewThemeStore creates a ThemeStore with the given database connection.
func NewThemeStore(db *sql.DB) *ThemeStore {
	return &ThemeStore{db: db}
}

// scanTheme reads one theme row. The design blob is parsed leniently: a
// structurally invalid document is treated as absent, never as an error,
// so a broken design can never make its theme unloadable.
func scanTheme(row interface{ Scan(...any) error }) (*models.Theme, error) {
	t := &models.Theme{}
	var design []byte
	err := row.Scan(
		&t.ID, &t.Name, &t.PrimaryColor, &t.SecondaryColor, &t.TextColor, &t.BorderColor,
		&t.Layout, &t.MarginTop, &t.MarginBottom, &t.MarginLeft, &t.MarginRight,
		&t.TitleFont.Family, &t.TitleFont.Size, &t.NameFont.Family, &t.NameFont.Size,
		&t.RoleFont.Family, &t.RoleFont.Size, &t.InfoFont.Family, &t.InfoFont.Size,
		&t.DateFont.Family, &t.DateFont.Size,
		&t.ShowLogo, &t.LogoPosition, &t.LogoSizeMM,
		&t.ShowBorder, &t.QRSizeMM, &t.QRPosition,
		&t.BackgroundKind, &t.BackgroundColor, &t.GradientColor, &t.BackgroundImageURL, &t.Opacity,
		&t.Active, &design, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Design = models.ParseDesign(design)
	return t, nil
}

// List returns all active themes ordered by name.
func (s *ThemeStore) List() ([]models.Theme, error) {
	rows, err := s.db.Query(`SELECT ` + themeColumns + ` FROM themes WHERE active = TRUE ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	defer rows.Close()

	var themes []models.Theme
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return nil, fmt.Errorf("scan theme: %w", err)
		}
		themes = append(themes, *t)
	}
	return themes, rows.Err()
}

// FindByID retrieves one active theme by id. Returns nil if not found.
func (s *ThemeStore) FindByID(id uuid.UUID) (*models.Theme, error) {
	t, err := scanTheme(s.db.QueryRow(
		`SELECT `+themeColumns+` FROM themes WHERE id = $1 AND active = TRUE`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find theme by id: %w", err)
	}
	return t, nil
}

// Create inserts a new theme. The row is normalized first: empty styling
// fields get defaults and the opacity is clamped to [0, 1].
func (s *ThemeStore) Create(t *models.Theme) (*models.Theme, error) {
	t.Normalize()

	design, err := marshalDesign(t.Design)
	if err != nil {
		return nil, fmt.Errorf("create theme: %w", err)
	}

	err = s.db.QueryRow(`
		INSERT INTO themes (
			name, primary_color, secondary_color, text_color, border_color,
			layout, margin_top, margin_bottom, margin_left, margin_right,
			title_font_family, title_font_size, name_font_family, name_font_size,
			role_font_family, role_font_size, info_font_family, info_font_size,
			date_font_family, date_font_size,
			show_logo, logo_position, logo_size_mm,
			show_border, qr_size_mm, qr_position,
			background_kind, background_color, gradient_color, background_image_url, opacity,
			active, design
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31,
			TRUE, $32
		)
		RETURNING id, created_at, updated_at
	`,
		t.Name, t.PrimaryColor, t.SecondaryColor, t.TextColor, t.BorderColor,
		t.Layout, t.MarginTop, t.MarginBottom, t.MarginLeft, t.MarginRight,
		t.TitleFont.Family, t.TitleFont.Size, t.NameFont.Family, t.NameFont.Size,
		t.RoleFont.Family, t.RoleFont.Size, t.InfoFont.Family, t.InfoFont.Size,
		t.DateFont.Family, t.DateFont.Size,
		t.ShowLogo, t.LogoPosition, t.LogoSizeMM,
		t.ShowBorder, t.QRSizeMM, t.QRPosition,
		t.BackgroundKind, t.BackgroundColor, t.GradientColor, t.BackgroundImageURL, t.Opacity,
		design,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create theme: %w", err)
	}

	t.Active = true
	return t, nil
}

// ThemeUpdate carries a partial update: nil fields are left untouched.
// The design document is all-or-nothing — either fully replaced or kept.
type ThemeUpdate struct {
	Name           *string
	PrimaryColor   *string
	SecondaryColor *string
	TextColor      *string
	BorderColor    *string
	Layout         *models.LayoutKind

	MarginTop    *float64
	MarginBottom *float64
	MarginLeft   *float64
	MarginRight  *float64

	TitleFont *models.FontSpec
	NameFont  *models.FontSpec
	RoleFont  *models.FontSpec
	InfoFont  *models.FontSpec
	DateFont  *models.FontSpec

	ShowLogo     *bool
	LogoPosition *models.LogoPosition
	LogoSizeMM   *float64

	ShowBorder *bool
	QRSizeMM   *float64
	QRPosition *models.QRPosition

	BackgroundKind     *models.BackgroundKind
	BackgroundColor    *string
	GradientColor      *string
	BackgroundImageURL *string
	Opacity            *float64

	Design *models.DesignDocument
}

// Apply overlays the provided fields onto an existing theme.
func (u ThemeUpdate) Apply(t *models.Theme) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setFont := func(dst *models.FontSpec, src *models.FontSpec) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&t.Name, u.Name)
	setString(&t.PrimaryColor, u.PrimaryColor)
	setString(&t.SecondaryColor, u.SecondaryColor)
	setString(&t.TextColor, u.TextColor)
	setString(&t.BorderColor, u.BorderColor)
	if u.Layout != nil {
		t.Layout = *u.Layout
	}

	setFloat(&t.MarginTop, u.MarginTop)
	setFloat(&t.MarginBottom, u.MarginBottom)
	setFloat(&t.MarginLeft, u.MarginLeft)
	setFloat(&t.MarginRight, u.MarginRight)

	setFont(&t.TitleFont, u.TitleFont)
	setFont(&t.NameFont, u.NameFont)
	setFont(&t.RoleFont, u.RoleFont)
	setFont(&t.InfoFont, u.InfoFont)
	setFont(&t.DateFont, u.DateFont)

	if u.ShowLogo != nil {
		t.ShowLogo = *u.ShowLogo
	}
	if u.LogoPosition != nil {
		t.LogoPosition = *u.LogoPosition
	}
	setFloat(&t.LogoSizeMM, u.LogoSizeMM)

	if u.ShowBorder != nil {
		t.ShowBorder = *u.ShowBorder
	}
	setFloat(&t.QRSizeMM, u.QRSizeMM)
	if u.QRPosition != nil {
		t.QRPosition = *u.QRPosition
	}

	if u.BackgroundKind != nil {
		t.BackgroundKind = *u.BackgroundKind
	}
	setString(&t.BackgroundColor, u.BackgroundColor)
	setString(&t.GradientColor, u.GradientColor)
	setString(&t.BackgroundImageURL, u.BackgroundImageURL)
	setFloat(&t.Opacity, u.Opacity)

	if u.Design != nil {
		t.Design = u.Design
	}
}

// Update applies a partial update and persists the merged row.
// Concurrent writers racing on the same row follow last-writer-wins.
// Returns nil if the theme does not exist.
func (s *ThemeStore) Update(id uuid.UUID, upd ThemeUpdate) (*models.Theme, error) {
	t, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}

	upd.Apply(t)
	t.Opacity = models.ClampOpacity(t.Opacity)

	design, err := marshalDesign(t.Design)
	if err != nil {
		return nil, fmt.Errorf("update theme: %w", err)
	}

	err = s.db.QueryRow(`
		UPDATE themes SET
			name = $1, primary_color = $2, secondary_color = $3, text_color = $4, border_color = $5,
			layout = $6, margin_top = $7, margin_bottom = $8, margin_left = $9, margin_right = $10,
			title_font_family = $11, title_font_size = $12, name_font_family = $13, name_font_size = $14,
			role_font_family = $15, role_font_size = $16, info_font_family = $17, info_font_size = $18,
			date_font_family = $19, date_font_size = $20,
			show_logo = $21, logo_position = $22, logo_size_mm = $23,
			show_border = $24, qr_size_mm = $25, qr_position = $26,
			background_kind = $27, background_color = $28, gradient_color = $29,
			background_image_url = $30, opacity = $31,
			design = $32, updated_at = NOW()
		WHERE id = $33
		RETURNING updated_at
	`,
		t.Name, t.PrimaryColor, t.SecondaryColor, t.TextColor, t.BorderColor,
		t.Layout, t.MarginTop, t.MarginBottom, t.MarginLeft, t.MarginRight,
		t.TitleFont.Family, t.TitleFont.Size, t.NameFont.Family, t.NameFont.Size,
		t.RoleFont.Family, t.RoleFont.Size, t.InfoFont.Family, t.InfoFont.Size,
		t.DateFont.Family, t.DateFont.Size,
		t.ShowLogo, t.LogoPosition, t.LogoSizeMM,
		t.ShowBorder, t.QRSizeMM, t.QRPosition,
		t.BackgroundKind, t.BackgroundColor, t.GradientColor,
		t.BackgroundImageURL, t.Opacity,
		design, id,
	).Scan(&t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update theme: %w", err)
	}

	return t, nil
}

// Delete removes a theme by id. Already-rendered badges only consumed a
// snapshot of the row, so deletion never invalidates issued documents.
func (s *ThemeStore) Delete(id uuid.UUID) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM themes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete theme: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// Count returns the number of active themes.
func (s *ThemeStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM themes WHERE active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count themes: %w", err)
	}
	return count, nil
}

// marshalDesign serializes an optional design document for storage.
func marshalDesign(d *models.DesignDocument) ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal design: %w", err)
	}
	return raw, nil
}
