// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"badgepress/internal/cache"
	"badgepress/internal/models"
	"badgepress/internal/store"
)

// Themes serves the theme CRUD endpoints. Mutations invalidate the
// rendered-badge cache so stale previews never outlive their theme.
type Themes struct {
	store    *store.ThemeStore
	cache    *cache.BadgeCache
	validate *validator.Validate
}

func NewThemes(s *store.ThemeStore, c *cache.BadgeCache) *Themes {
	return &Themes{store: s, cache: c, validate: validator.New()}
}

// fontPayload mirrors models.FontSpec on the wire.
type fontPayload struct {
	Family string  `json:"familia"`
	Size   float64 `json:"tamanho" validate:"gte=0,lte=200"`
}

// themePayload is the request body for theme create and update. Every
// field is a pointer so updates can distinguish "absent" from "zero".
type themePayload struct {
	Name           *string `json:"nome"`
	PrimaryColor   *string `json:"cor_primaria"`
	SecondaryColor *string `json:"cor_secundaria"`
	TextColor      *string `json:"cor_texto"`
	BorderColor    *string `json:"cor_borda"`
	Layout         *string `json:"layout"`

	MarginTop    *float64 `json:"margem_superior" validate:"omitempty,gte=0"`
	MarginBottom *float64 `json:"margem_inferior" validate:"omitempty,gte=0"`
	MarginLeft   *float64 `json:"margem_esquerda" validate:"omitempty,gte=0"`
	MarginRight  *float64 `json:"margem_direita" validate:"omitempty,gte=0"`

	TitleFont *fontPayload `json:"fonte_titulo"`
	NameFont  *fontPayload `json:"fonte_nome"`
	RoleFont  *fontPayload `json:"fonte_cargo"`
	InfoFont  *fontPayload `json:"fonte_info"`
	DateFont  *fontPayload `json:"fonte_datas"`

	ShowLogo     *bool    `json:"mostrar_logo"`
	LogoPosition *string  `json:"posicao_logo"`
	LogoSizeMM   *float64 `json:"tamanho_logo" validate:"omitempty,gt=0"`

	ShowBorder *bool    `json:"mostrar_borda"`
	QRSizeMM   *float64 `json:"tamanho_qr" validate:"omitempty,gt=0"`
	QRPosition *string  `json:"posicao_qr"`

	BackgroundKind     *string  `json:"fundo_tipo"`
	BackgroundColor    *string  `json:"fundo_cor"`
	GradientColor      *string  `json:"fundo_cor_gradiente"`
	BackgroundImageURL *string  `json:"fundo_imagem_url"`
	Opacity            *float64 `json:"fundo_opacidade"`

	Design *models.DesignDocument `json:"design"`
}

// check validates whatever fields are present and returns the first
// problem found, or "". Out-of-range opacity is not rejected here; the
// store clamps it.
func (p *themePayload) check() string {
	for _, c := range []struct {
		field string
		value *string
	}{
		{"cor_primaria", p.PrimaryColor},
		{"cor_secundaria", p.SecondaryColor},
		{"cor_texto", p.TextColor},
		{"cor_borda", p.BorderColor},
		{"fundo_cor", p.BackgroundColor},
		{"fundo_cor_gradiente", p.GradientColor},
	} {
		if c.value != nil && !validHexColor(*c.value) {
			return c.field + " deve ser uma cor hexadecimal (#RRGGBB)"
		}
	}
	if p.Layout != nil && !validLayout(*p.Layout) {
		return "layout inválido (horizontal, vertical ou compacto)"
	}
	if p.LogoPosition != nil && !validLogoPosition(*p.LogoPosition) {
		return "posicao_logo inválida"
	}
	if p.QRPosition != nil && !validQRPosition(*p.QRPosition) {
		return "posicao_qr inválida (esquerda, direita ou centro)"
	}
	if p.BackgroundKind != nil && !validBackground(*p.BackgroundKind) {
		return "fundo_tipo inválido (solido, gradiente ou imagem)"
	}
	return ""
}

// toUpdate maps the payload onto the store's partial-update shape.
func (p *themePayload) toUpdate() store.ThemeUpdate {
	u := store.ThemeUpdate{
		Name:               trimmed(p.Name),
		PrimaryColor:       p.PrimaryColor,
		SecondaryColor:     p.SecondaryColor,
		TextColor:          p.TextColor,
		BorderColor:        p.BorderColor,
		MarginTop:          p.MarginTop,
		MarginBottom:       p.MarginBottom,
		MarginLeft:         p.MarginLeft,
		MarginRight:        p.MarginRight,
		ShowLogo:           p.ShowLogo,
		LogoSizeMM:         p.LogoSizeMM,
		ShowBorder:         p.ShowBorder,
		QRSizeMM:           p.QRSizeMM,
		BackgroundColor:    p.BackgroundColor,
		GradientColor:      p.GradientColor,
		BackgroundImageURL: p.BackgroundImageURL,
		Opacity:            p.Opacity,
		Design:             p.Design,
	}
	if p.Layout != nil {
		v := models.LayoutKind(*p.Layout)
		u.Layout = &v
	}
	if p.LogoPosition != nil {
		v := models.LogoPosition(*p.LogoPosition)
		u.LogoPosition = &v
	}
	if p.QRPosition != nil {
		v := models.QRPosition(*p.QRPosition)
		u.QRPosition = &v
	}
	if p.BackgroundKind != nil {
		v := models.BackgroundKind(*p.BackgroundKind)
		u.BackgroundKind = &v
	}
	setFont := func(dst **models.FontSpec, src *fontPayload) {
		if src != nil {
			*dst = &models.FontSpec{Family: src.Family, Size: src.Size}
		}
	}
	setFont(&u.TitleFont, p.TitleFont)
	setFont(&u.NameFont, p.NameFont)
	setFont(&u.RoleFont, p.RoleFont)
	setFont(&u.InfoFont, p.InfoFont)
	setFont(&u.DateFont, p.DateFont)
	return u
}

func (h *Themes) List(w http.ResponseWriter, r *http.Request) {
	themes, err := h.store.List()
	if err != nil {
		slog.Error("list themes", "error", err)
		writeError(w, http.StatusInternalServerError, "erro ao listar temas")
		return
	}
	if themes == nil {
		themes = []models.Theme{}
	}
	writeJSON(w, http.StatusOK, themes)
}

func (h *Themes) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	theme, err := h.store.FindByID(id)
	if err != nil {
		slog.Error("find theme", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "erro ao carregar tema")
		return
	}
	if theme == nil {
		writeError(w, http.StatusNotFound, "tema não encontrado")
		return
	}
	writeJSON(w, http.StatusOK, theme)
}

func (h *Themes) Create(w http.ResponseWriter, r *http.Request) {
	var p themePayload
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
	if msg := p.check(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	theme := models.Theme{Name: strings.TrimSpace(*p.Name)}
	p.toUpdate().Apply(&theme)

	created, err := h.store.Create(&theme)
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "nome já está em uso")
			return
		}
		slog.Error("create theme", "name", theme.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "erro ao criar tema")
		return
	}
	h.cache.InvalidateAll(r.Context())
	slog.Info("theme created", "id", created.ID, "name", created.Name)
	writeJSON(w, http.StatusCreated, created)
}

func (h *Themes) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	var p themePayload
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
		slog.Error("update theme", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "erro ao atualizar tema")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "tema não encontrado")
		return
	}
	h.cache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusOK, updated)
}

func (h *Themes) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}
	deleted, err := h.store.Delete(id)
	if err != nil {
		slog.Error("delete theme", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "erro ao remover tema")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "tema não encontrado")
		return
	}
	h.cache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
