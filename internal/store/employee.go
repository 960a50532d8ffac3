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

const employeeColumns = `id, name, role, department, photo_path, organization,
	logo_path, active, created_at, updated_at`

// EmployeeStore reads the employee projection the renderer consumes.
// Employee lifecycle management belongs to the surrounding HR system;
// this store never writes.
type EmployeeStore struct {
	db *sql.DB
}

// NewEmployeeStore creates an EmployeeStore with the given connection.
func NewEmployeeStore(db *sql.DB) *EmployeeStore {
	return &EmployeeStore{db: db}
}

func scanEmployee(row interface{ Scan(...any) error }) (*models.Employee, error) {
	e := &models.Employee{}
	err := row.Scan(
		&e.ID, &e.Name, &e.Role, &e.Department, &e.PhotoPath,
		&e.Organization, &e.LogoPath, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// FindByID retrieves one active employee by id. Returns nil if not found.
func (s *EmployeeStore) FindByID(id uuid.UUID) (*models.Employee, error) {
	e, err := scanEmployee(s.db.QueryRow(
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1 AND active = TRUE`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find employee by id: %w", err)
	}
	return e, nil
}

// List returns all active employees ordered by name.
func (s *EmployeeStore) List() ([]models.Employee, error) {
	rows, err := s.db.Query(`SELECT ` + employeeColumns + ` FROM employees WHERE active = TRUE ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}
