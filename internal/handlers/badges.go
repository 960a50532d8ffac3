// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"badgepress/internal/cache"
	"badgepress/internal/models"
	"badgepress/internal/qr"
	"badgepress/internal/render"
	"badgepress/internal/store"
)

const (
	qrPixelSize = 256
	dateLayout  = "2006-01-02"
)

// BadgeOptions carries the deployment knobs of the badge endpoints.
// Zero values fall back to sensible dev defaults.
type BadgeOptions struct {
	ValidityDays int
	VerifyDomain string
	VerifyPort   string
	AssetsDir    string
}

// Badges serves configuration, generation, preview, batch and
// verification. It owns no state beyond its dependencies; every render
// works from a snapshot of theme, format and subject taken per request.
type Badges struct {
	themes    *store.ThemeStore
	formats   *store.FormatStore
	employees *store.EmployeeStore
	builder   *qr.Builder
	cache     *cache.BadgeCache
	validate  *validator.Validate
	opts      BadgeOptions
}

func NewBadges(themes *store.ThemeStore, formats *store.FormatStore, employees *store.EmployeeStore, builder *qr.Builder, c *cache.BadgeCache, opts BadgeOptions) *Badges {
	if opts.ValidityDays <= 0 {
		opts.ValidityDays = models.DefaultValidityDays
	}
	if opts.VerifyDomain == "" {
		opts.VerifyDomain = "localhost"
	}
	if opts.VerifyPort == "" {
		opts.VerifyPort = "8080"
	}
	return &Badges{
		themes:    themes,
		formats:   formats,
		employees: employees,
		builder:   builder,
		cache:     c,
		validate:  validator.New(),
		opts:      opts,
	}
}

// configurationResponse is the aggregate the badge editor UI boots from.
type configurationResponse struct {
	Themes          []models.Theme               `json:"temas_disponiveis"`
	Formats         []models.Format              `json:"formatos_saida"`
	SizePresets     map[string]models.SizePreset `json:"medidas_padrao"`
	LayoutOptions   []models.LayoutKind          `json:"opcoes_layout"`
	FontOptions     []string                     `json:"opcoes_fonte"`
	BackgroundKinds []models.BackgroundKind      `json:"opcoes_fundo"`
	ValidityDays    int                          `json:"validade_padrao_dias"`
}

// Configuration always answers 200. A broken or empty backing store
// degrades to empty lists so the editor UI still opens.
func (h *Badges) Configuration(w http.ResponseWriter, r *http.Request) {
	themes, err := h.themes.List()
	if err != nil {
		slog.Warn("configuration: themes unavailable", "error", err)
		themes = nil
	}
	if themes == nil {
		themes = []models.Theme{}
	}
	formats, err := h.formats.List()
	if err != nil {
		slog.Warn("configuration: formats unavailable", "error", err)
		formats = nil
	}
	if formats == nil {
		formats = []models.Format{}
	}
	writeJSON(w, http.StatusOK, configurationResponse{
		Themes:          themes,
		Formats:         formats,
		SizePresets:     models.SizePresets(),
		LayoutOptions:   models.LayoutOptions(),
		FontOptions:     models.FontOptions(),
		BackgroundKinds: models.BackgroundOptions(),
		ValidityDays:    h.opts.ValidityDays,
	})
}

type generateRequest struct {
	EmployeeID string `json:"funcionario_id" validate:"required,uuid"`
	IncludeQR  bool   `json:"incluir_qr"`
	ExpiryDate string `json:"data_validade"`
	ThemeID    string `json:"tema_id" validate:"omitempty,uuid"`
	FormatID   string `json:"formato_id" validate:"omitempty,uuid"`
}

// Generate renders one badge and streams it back as a PDF attachment or
// an HTML document, depending on the resolved format's extension.
func (h *Badges) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "funcionario_id, tema_id e formato_id devem ser UUIDs")
		return
	}

	emp, ok := h.lookupEmployee(w, req.EmployeeID)
	if !ok {
		return
	}
	theme, ok := h.resolveTheme(w, req.ThemeID)
	if !ok {
		return
	}
	format, ok := h.resolveFormat(w, req.FormatID)
	if !ok {
		return
	}

	subj, err := h.subject(emp, req.IncludeQR, req.ExpiryDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "data_validade inválida (use AAAA-MM-DD)")
		return
	}

	switch format.Extension {
	case models.ExtensionHTML:
		doc, err := render.RenderHTML(theme, format, subj)
		if err != nil {
			slog.Error("render html badge", "employee", subj.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "falha ao gerar o crachá")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, doc)
	default:
		doc, err := render.RenderPDF(theme, format, subj)
		if err != nil {
			slog.Error("render pdf badge", "employee", subj.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "falha ao gerar o crachá")
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=cracha-%s.pdf", subj.ID))
		w.Write(doc)
	}
	slog.Info("badge generated",
		"employee", subj.ID,
		"theme", theme.Name,
		"format", format.Name,
	)
}

// Preview returns the HTML approximation of an employee's badge using
// the default theme and format unless tema_id/formato_id query
// parameters say otherwise. Responses are served from Valkey when warm.
func (h *Badges) Preview(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.lookupEmployee(w, chi.URLParam(r, "funcionarioID"))
	if !ok {
		return
	}
	theme, ok := h.resolveTheme(w, r.URL.Query().Get("tema_id"))
	if !ok {
		return
	}
	format, ok := h.resolveFormat(w, r.URL.Query().Get("formato_id"))
	if !ok {
		return
	}

	key := cache.Key(emp.ID.String(), cacheID(theme.ID), cacheID(format.ID), "html")
	if doc, hit := h.cache.Get(r.Context(), key); hit {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(doc)
		return
	}

	subj, err := h.subject(emp, true, "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "falha ao gerar a pré-visualização")
		return
	}
	doc, err := render.RenderHTML(theme, format, subj)
	if err != nil {
		slog.Error("render preview", "employee", subj.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "falha ao gerar a pré-visualização")
		return
	}
	h.cache.Set(r.Context(), key, []byte(doc))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, doc)
}

type batchOptions struct {
	ThemeID   string `json:"tema_id" validate:"omitempty,uuid"`
	FormatID  string `json:"formato_id" validate:"omitempty,uuid"`
	IncludeQR bool   `json:"incluir_qr"`
}

type batchRequest struct {
	EmployeeIDs []string     `json:"funcionario_ids" validate:"required,min=1,dive,uuid"`
	Options     batchOptions `json:"opcoes"`
}

type batchResponse struct {
	Generated int                  `json:"passes_gerados"`
	Requested int                  `json:"total_solicitados"`
	Succeeded []render.BatchResult `json:"sucessos"`
	Failed    []render.BatchResult `json:"erros"`
}

// Batch renders badges for many employees concurrently and reports a
// per-item outcome. One bad employee never aborts the siblings.
func (h *Badges) Batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "funcionario_ids deve ser uma lista de UUIDs não vazia")
		return
	}
	theme, ok := h.resolveTheme(w, req.Options.ThemeID)
	if !ok {
		return
	}
	format, ok := h.resolveFormat(w, req.Options.FormatID)
	if !ok {
		return
	}

	src := func(ctx context.Context, id string) (models.BadgeSubject, error) {
		uid, err := uuid.Parse(id)
		if err != nil {
			return models.BadgeSubject{}, fmt.Errorf("id inválido")
		}
		emp, err := h.employees.FindByID(uid)
		if err != nil {
			// Full detail stays in the log; the per-item error is
			// client-visible.
			slog.Error("batch: find employee", "id", id, "error", err)
			return models.BadgeSubject{}, fmt.Errorf("erro ao carregar funcionário")
		}
		if emp == nil {
			return models.BadgeSubject{}, fmt.Errorf("funcionário não encontrado")
		}
		return h.subject(emp, req.Options.IncludeQR, "")
	}

	results := render.RenderBatch(r.Context(), req.EmployeeIDs, src, theme, format)
	succeeded := []render.BatchResult{}
	failed := []render.BatchResult{}
	for _, res := range results {
		if res.Status == render.StatusGenerated {
			succeeded = append(succeeded, res)
		} else {
			failed = append(failed, res)
		}
	}
	slog.Info("batch generated",
		"requested", len(req.EmployeeIDs),
		"succeeded", len(succeeded),
	)
	writeJSON(w, http.StatusOK, batchResponse{
		Generated: len(succeeded),
		Requested: len(req.EmployeeIDs),
		Succeeded: succeeded,
		Failed:    failed,
	})
}

// VerificationQR returns a PNG QR code encoding the scan-to-verify URL
// for one employee. Printing this next to the badge lets reception scan
// and confirm the holder against the live employee record.
func (h *Badges) VerificationQR(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.lookupEmployee(w, chi.URLParam(r, "funcionarioID"))
	if !ok {
		return
	}
	sig := h.builder.Signature(emp.Name)
	url := h.builder.VerificationURL(emp.ID.String(), sig, h.opts.VerifyDomain, h.opts.VerifyPort)
	png, err := qr.EncodePNG(url, qrPixelSize)
	if err != nil {
		slog.Error("encode verification qr", "employee", emp.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "falha ao gerar o código QR")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// verifyResponse is the public answer of the scan-to-verify flow. It
// exposes only what is printed on the badge anyway.
type verifyResponse struct {
	Valid    bool          `json:"valido"`
	Employee verifySubject `json:"funcionario"`
}

type verifySubject struct {
	ID           string `json:"id"`
	Name         string `json:"nome"`
	Role         string `json:"cargo"`
	Department   string `json:"departamento"`
	Organization string `json:"organizacao"`
}

// Verify answers the QR scan: recompute the signature for the badge
// holder and compare. A mismatch is an authorization failure, not an
// internal error.
func (h *Badges) Verify(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("id")
	sig := r.URL.Query().Get("assinatura")
	if rawID == "" || sig == "" {
		writeError(w, http.StatusBadRequest, "id e assinatura são obrigatórios")
		return
	}
	emp, ok := h.lookupEmployee(w, rawID)
	if !ok {
		return
	}
	if !h.builder.Verify(emp.Name, sig) {
		writeError(w, http.StatusForbidden, "assinatura inválida")
		return
	}
	writeJSON(w, http.StatusOK, verifyResponse{
		Valid: true,
		Employee: verifySubject{
			ID:           emp.ID.String(),
			Name:         emp.Name,
			Role:         emp.Role,
			Department:   emp.Department,
			Organization: emp.Organization,
		},
	})
}

// lookupEmployee resolves an employee id, writing the error response
// itself when the id is malformed or unknown.
func (h *Badges) lookupEmployee(w http.ResponseWriter, rawID string) (*models.Employee, bool) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "funcionario_id inválido")
		return nil, false
	}
	emp, err := h.employees.FindByID(id)
	if err != nil {
		slog.Error("find employee", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "erro ao carregar funcionário")
		return nil, false
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "funcionário não encontrado")
		return nil, false
	}
	return emp, true
}

// resolveTheme loads the requested theme, or the built-in default when
// no id was given.
func (h *Badges) resolveTheme(w http.ResponseWriter, rawID string) (models.Theme, bool) {
	if rawID == "" {
		return models.DefaultTheme(), true
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "tema_id inválido")
		return models.Theme{}, false
	}
	theme, err := h.themes.FindByID(id)
	if err != nil {
		slog.Error("find theme", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "erro ao carregar tema")
		return models.Theme{}, false
	}
	if theme == nil {
		writeError(w, http.StatusNotFound, "tema não encontrado")
		return models.Theme{}, false
	}
	return *theme, true
}

func (h *Badges) resolveFormat(w http.ResponseWriter, rawID string) (models.Format, bool) {
	if rawID == "" {
		return models.DefaultFormat(), true
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "formato_id inválido")
		return models.Format{}, false
	}
	format, err := h.formats.FindByID(id)
	if err != nil {
		slog.Error("find format", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "erro ao carregar formato")
		return models.Format{}, false
	}
	if format == nil {
		writeError(w, http.StatusNotFound, "formato não encontrado")
		return models.Format{}, false
	}
	return *format, true
}

// subject projects an employee row into the flat field set one render
// consumes, generating the QR image when asked. A failing QR encoder is
// logged and leaves the badge without a code rather than failing it.
func (h *Badges) subject(emp *models.Employee, includeQR bool, expiry string) (models.BadgeSubject, error) {
	issue := time.Now()
	expires := issue.AddDate(0, 0, h.opts.ValidityDays)
	if expiry != "" {
		parsed, err := time.Parse(dateLayout, expiry)
		if err != nil {
			return models.BadgeSubject{}, fmt.Errorf("parse data_validade: %w", err)
		}
		expires = parsed
	}

	subj := models.BadgeSubject{
		ID:           emp.ID.String(),
		Name:         emp.Name,
		Role:         emp.Role,
		Department:   emp.Department,
		Organization: emp.Organization,
		PhotoPath:    h.assetPath(emp.PhotoPath),
		LogoPath:     h.assetPath(emp.LogoPath),
		IssueDate:    issue,
		ExpiryDate:   expires,
	}
	if includeQR {
		b64, err := qr.EncodeBase64(h.builder.BadgePayload(subj), qrPixelSize)
		if err != nil {
			slog.Warn("qr encode failed", "employee", subj.ID, "error", err)
		} else {
			subj.QRImageB64 = b64
		}
	}
	return subj, nil
}

// assetPath anchors relative photo/logo paths under the configured
// assets directory.
func (h *Badges) assetPath(p string) string {
	if p == "" || h.opts.AssetsDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(h.opts.AssetsDir, p)
}

// cacheID collapses the default (zero) theme or format id into a stable
// cache key segment.
func cacheID(id uuid.UUID) string {
	if id == uuid.Nil {
		return "default"
	}
	return id.String()
}
