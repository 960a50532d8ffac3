package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// SeedFormats inserts the default output formats, but only when the
// formats table has never held a row. Themes are deliberately NOT
// re-seeded: if an operator deletes every theme, an empty read must stay
// empty — silently resurrecting deleted rows is forbidden.
func SeedFormats(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM formats").Scan(&count); err != nil {
		return fmt.Errorf("seed check formats: %w", err)
	}

	if count > 0 {
		slog.Info("formats already seeded, skipping")
		return nil
	}

	defaults := []struct {
		name, ext, desc, orientation string
		width, height                float64
		dpi, quality                 int
	}{
		{"CR80 PDF", "pdf", "Cartão de crédito padrão", "horizontal", 85.6, 53.98, 300, 90},
		{"CR80 Preview", "html", "Pré-visualização em tela", "horizontal", 85.6, 53.98, 96, 80},
		{"Crachá Vertical", "pdf", "Crachá vertical com cordão", "vertical", 60, 90, 300, 90},
		{"Mini Cartão", "pdf", "Mini cartão", "horizontal", 70, 40, 300, 85},
	}

	for _, f := range defaults {
		_, err := db.Exec(`
			INSERT INTO formats (name, extension, description, width_mm, height_mm, dpi, orientation, quality)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, f.name, f.ext, f.desc, f.width, f.height, f.dpi, f.orientation, f.quality)
		if err != nil {
			return fmt.Errorf("seed insert format %q: %w", f.name, err)
		}
	}

	slog.Info("database seeded with default formats", "count", len(defaults))
	return nil
}

// SeedEmployees populates sample HR records for development. A no-op
// when any employee exists.
func SeedEmployees(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM employees").Scan(&count); err != nil {
		return fmt.Errorf("seed check employees: %w", err)
	}

	if count > 0 {
		slog.Info("employees already seeded, skipping")
		return nil
	}

	samples := []struct {
		name, role, department string
	}{
		{"Maria Silva", "Analista de Sistemas", "Tecnologia da Informação"},
		{"João Pereira", "Coordenador de RH", "Recursos Humanos"},
		{"Ana Costa", "Estagiária", "Financeiro"},
	}

	for _, e := range samples {
		_, err := db.Exec(`
			INSERT INTO employees (name, role, department, organization)
			VALUES ($1, $2, $3, $4)
		`, e.name, e.role, e.department, "Empresa Exemplo")
		if err != nil {
			return fmt.Errorf("seed insert employee %q: %w", e.name, err)
		}
	}

	slog.Info("database seeded with sample employees", "count", len(samples))
	return nil
}
