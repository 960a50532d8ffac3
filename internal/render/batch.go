// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"badgepress/internal/models"
)

// Batch item statuses.
const (
	StatusGenerated = "gerado"
	StatusError     = "erro"
)

// BatchResult is the outcome of one subject in a batch render.
type BatchResult struct {
	SubjectID string `json:"funcionario_id"`
	Status    string `json:"status"`
	SizeBytes int    `json:"tamanho_bytes,omitempty"`
	Error     string `json:"erro,omitempty"`
}

// SubjectSource resolves a subject id into the renderable projection.
type SubjectSource func(ctx context.Context, id string) (models.BadgeSubject, error)

// RenderBatch renders one badge per id on a worker pool bounded by the
// CPU count. Each subject is fully isolated: a lookup or render failure
// records an error for that id and never aborts its siblings. Results
// come back in request order.
func RenderBatch(ctx context.Context, ids []string, src SubjectSource, theme models.Theme, format models.Format) []BatchResult {
	results := make([]BatchResult, len(ids))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			results[i] = renderOne(ctx, id, src, theme, format)
			return nil
		})
	}
	g.Wait()

	return results
}

func renderOne(ctx context.Context, id string, src SubjectSource, theme models.Theme, format models.Format) BatchResult {
	subj, err := src(ctx, id)
	if err != nil {
		return BatchResult{SubjectID: id, Status: StatusError, Error: err.Error()}
	}

	pdf, err := RenderPDF(theme, format, subj)
	if err != nil {
		return BatchResult{SubjectID: id, Status: StatusError, Error: err.Error()}
	}

	return BatchResult{SubjectID: id, Status: StatusGenerated, SizeBytes: len(pdf)}
}
