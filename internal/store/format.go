// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"badgepress/internal/models"
)

const formatColumns = `id, name, extension, description, width_mm, height_mm,
	dpi, orientation, quality, compress, active, created_at, updated_at`

// FormatStore handles all format-related database operations.
type FormatStore struct {
	db *sql.DB
}

// NewFormatStore creates a FormatStore with the given database connection.
func NewFormatStore(db *sql.DB) *FormatStore {
	return &FormatStore{db: db}
}

func scanFormat(row interface{ Scan(...any) error }) (*models.Format, error) {
	f := &models.Format{}
	err := row.Scan(
		&f.ID, &f.Name, &f.Extension, &f.Description, &f.WidthMM, &f.HeightMM,
		&f.DPI, &f.Orientation, &f.Quality, &f.Compress, &f.Active,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// List returns all active formats ordered by name.
func (s *FormatStore) List() ([]models.Format, error) {
	rows, err := s.db.Query(`SELECT ` + formatColumns + ` FROM formats WHERE active = TRUE ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list formats: %w", err)
	}
	defer rows.Close()

	var formats []models.Format
	for rows.Next() {
		f, err := scanFormat(rows)
		if err != nil {
			return nil, fmt.Errorf("scan format: %w", err)
		}
		formats = append(formats, *f)
	}
	return formats, rows.Err()
}

// FindByID retrieves one active format by id. Returns nil if not found.
func (s *FormatStore) FindByID(id uuid.UUID) (*models.Format, error) {
	f, err := scanFormat(s.db.QueryRow(
		`SELECT `+formatColumns+` FROM formats WHERE id = $1 AND active = TRUE`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find format by id: %w", err)
	}
	return f, nil
}

// Create inserts a new format.
func (s *FormatStore) Create(f *models.Format) (*models.Format, error) {
	if f.DPI <= 0 {
		f.DPI = 300
	}
	if f.Orientation == "" {
		f.Orientation = models.OrientationHorizontal
	}
	if f.Quality == 0 {
		f.Quality = 90
	}

	err := s.db.QueryRow(`
		INSERT INTO formats (name, extension, description, width_mm, height_mm, dpi, orientation, quality, compress, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
		RETURNING id, created_at, updated_at
	`,
		f.Name, f.Extension, f.Description, f.WidthMM, f.HeightMM,
		f.DPI, f.Orientation, f.Quality, f.Compress,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create format: %w", err)
	}

	f.Active = true
	return f, nil
}

// FormatUpdate carries a partial format update: nil fields are kept.
type FormatUpdate struct {
	Name        *string
	Extension   *models.Extension
	Description *string
	WidthMM     *float64
	HeightMM    *float64
	DPI         *int
	Orientation *models.Orientation
	Quality     *int
	Compress    *bool
}

func (u FormatUpdate) Apply(f *models.Format) {
	if u.Name != nil {
		f.Name = *u.Name
	}
	if u.Extension != nil {
		f.Extension = *u.Extension
	}
	if u.Description != nil {
		f.Description = *u.Description
	}
	if u.WidthMM != nil {
		f.WidthMM = *u.WidthMM
	}
	if u.HeightMM != nil {
		f.HeightMM = *u.HeightMM
	}
	if u.DPI != nil {
		f.DPI = *u.DPI
	}
	if u.Orientation != nil {
		f.Orientation = *u.Orientation
	}
	if u.Quality != nil {
		f.Quality = *u.Quality
	}
	if u.Compress != nil {
		f.Compress = *u.Compress
	}
}

// Update applies a partial update and persists the merged row.
// Returns nil if the format does not exist.
func (s *FormatStore) Update(id uuid.UUID, upd FormatUpdate) (*models.Format, error) {
	f, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, nil
	}

	upd.Apply(f)

	err = s.db.QueryRow(`
		UPDATE formats SET
			name = $1, extension = $2, description = $3, width_mm = $4, height_mm = $5,
			dpi = $6, orientation = $7, quality = $8, compress = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at
	`,
		f.Name, f.Extension, f.Description, f.WidthMM, f.HeightMM,
		f.DPI, f.Orientation, f.Quality, f.Compress, id,
	).Scan(&f.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update format: %w", err)
	}

	return f, nil
}

// Delete removes a format by id.
func (s *FormatStore) Delete(id uuid.UUID) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM formats WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete format: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}
