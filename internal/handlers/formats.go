// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"badgepress/internal/cache"
	"badgepress/internal/models"
	"badgepress/internal/store"
)

// Formats serves the output-format CRUD endpoints.
type Formats struct {
	store    *store.FormatStore
	cache    *cache.BadgeCache
	validate *validator.Validate
}

func NewFormats(s *store.FormatStore, c *cache.BadgeCache) *Formats {
	return &Formats{store: s, cache: c, validate: validator.New()}
}

// formatPayload is the request body for format create and update.
type formatPayload struct {
	Name        *string  `json:"nome"`
	Extension   *string  `json:"extensao"`
	Description *string  `json:"descricao"`
	WidthMM     *float64 `json:"largura" validate:"omitempty,gt=0"`
	HeightMM    *float64 `json:"altura" validate:"omitempty,gt=0"`
	DPI         *int     `json:"dpi" validate:"omitempty,gt=0"`
	Orientation *string  `json:"orientacao"`
	Quality     *int     `json:"qualidade" validate:"omitempty,gte=1,lte=100"`
	Compress    *bool    `json:"comprimir"`
}

func (p *formatPayload) check() string {
	if p.Extension != nil && !validExtension(*p.Extension) {
		return "extensao inválida (pdf, html, png ou svg)"
	}
	if p.Orientation != nil && !validOrientation(*p.Orientation) {
		return "orientacao inválida (horizontal ou vertical)"
	}
	if p.Description != nil && utf8.RuneCountInString(*p.Description) > maxDescriptionLen {
		return "descricao é muito longa (máximo 500 caracteres)"
	}
	if p.WidthMM != nil && *p.WidthMM <= 0 {
		return "largura deve ser positiva"
	}
	if p.HeightMM != nil && *p.HeightMM <= 0 {
		return "altura deve ser positiva"
	}
	if p.DPI != nil && *p.DPI <= 0 {
		return "dpi deve ser positivo"
	}
	if p.Quality != nil && (*p.Quality < 1 || *p.Quality > 100) {
		return "qualidade deve estar entre 1 e 100"
	}
	return ""
}

func (p *formatPayload) toUpdate() store.FormatUpdate {
	u := store.FormatUpdate{
		Name:        trimmed(p.Name),
		Description: p.Description,
		WidthMM:     p.WidthMM,
		HeightMM:    p.HeightMM,
		DPI:         p.DPI,
		Quality:     p.Quality,
		Compress:    p.Compress,
	}
	if p.Extension != nil {
		v := models.Extension(*p.Extension)
		u.Extension = &v
	}
	if p.Orientation != nil {
		v := models.Orientation(*p.Orientation)
		u.Orientation = &v
	}
	return u
}

func (h *Formats) List(w http.ResponseWriter, r *http.Request) {
	formats, err := h.store.List()
	if err != nil {
		slog.Error("list formats", "error", err)
		writeError(w, http.StatusInternalServerError, "erro ao listar formatos")
		return
	}
	if formats == nil {
		formats = []models.Format{}
	}
	writeJSON(w, http.StatusOK, formats)
}

func (h *Formats) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	format, err := h.store.FindByID(id)
	if err != nil {
		slog.Error("find format", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "erro ao carregar formato")
		return
	}
	if format == nil {
		writeError(w, http.StatusNotFound, "formato não encontrado")
		return
	}
	writeJSON(w, http.StatusOK, format)
}

func (h *Formats) Create(w http.ResponseWriter, r *http.Request) {
	var p formatPayload
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}
	if err := h.validate.Struct(&p); err != nil {
		writeError(w, http.StatusBadRequest, "valores fora do intervalo permitido")
		return
	}
	if p.Name == nil {
		writeError(w, http.StatusBadRequest, "nome é obrigatório")
		return
	}
	if msg := validateName(*p.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if p.WidthMM == nil || p.HeightMM == nil {
		writeError(w, http.StatusBadRequest, "largura e altura são obrigatórias")
		return
	}
	if msg := p.check(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	format := models.Format{Name: strings.TrimSpace(*p.Name)}
	p.toUpdate().Apply(&format)

	created, err := h.store.Create(&format)
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "nome já está em uso")
			return
		}
		slog.Error("create format", "name", format.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "erro ao criar formato")
		return
	}
	h.cache.InvalidateAll(r.Context())
	slog.Info("format created", "id", created.ID, "name", created.Name)
	writeJSON(w, http.StatusCreated, created)
}

func (h *Formats) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	var p formatPayload
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}
	if err := h.validate.Struct(&p); err != nil {
		writeError(w, http.StatusBadRequest, "valores fora do intervalo permitido")
		return
	}
	if p.Name != nil {
		if msg := validateName(*p.Name); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	}
	if msg := p.check(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.store.Update(id, p.toUpdate())
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "nome já está em uso")
			return
		}
		slog.Error("update format", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "erro ao atualizar formato")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "formato não encontrado")
		return
	}
	h.cache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusOK, updated)
}

func (h *Formats) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	deleted, err := h.store.Delete(id)
	if err != nil {
		slog.Error("delete format", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "erro ao remover formato")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "formato não encontrado")
		return
	}
	h.cache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
