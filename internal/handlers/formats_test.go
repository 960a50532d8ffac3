package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"badgepress/internal/models"
	"badgepress/internal/store"
)

func formatsRouter(h *Formats) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/crachas/formats", h.List)
	r.Post("/api/crachas/formats", h.Create)
	r.Get("/api/crachas/formats/{id}", h.Get)
	r.Put("/api/crachas/formats/{id}", h.Update)
	r.Delete("/api/crachas/formats/{id}", h.Delete)
	return r
}

func TestFormatCreateValidation(t *testing.T) {
	h := NewFormats(store.NewFormatStore(deadDB(t)), nil)
	r := formatsRouter(h)

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"largura": 85.6, "altura": 53.98}`},
		{"missing dimensions", `{"nome": "Formato"}`},
		{"zero width", `{"nome": "Formato", "largura": 0, "altura": 50}`},
		{"negative height", `{"nome": "Formato", "largura": 85, "altura": -1}`},
		{"quality too high", `{"nome": "Formato", "largura": 85, "altura": 50, "qualidade": 101}`},
		{"quality zero", `{"nome": "Formato", "largura": 85, "altura": 50, "qualidade": 0}`},
		{"bad extension", `{"nome": "Formato", "largura": 85, "altura": 50, "extensao": "jpg"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/crachas/formats", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400 (body %s)", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestFormatImageExtensionsIntegration(t *testing.T) {
	// png and svg are storable output types alongside pdf and html.
	db := testDB(t)
	h := NewFormats(store.NewFormatStore(db), nil)
	r := formatsRouter(h)

	for _, ext := range []string{"png", "svg"} {
		t.Run(ext, func(t *testing.T) {
			body, _ := json.Marshal(map[string]any{
				"nome":     "Formato " + ext + " " + t.Name(),
				"extensao": ext,
				"largura":  85.6,
				"altura":   53.98,
			})
			req := httptest.NewRequest(http.MethodPost, "/api/crachas/formats", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			if rr.Code != http.StatusCreated {
				t.Fatalf("create status: got %d, body %s", rr.Code, rr.Body.String())
			}
			var created models.Format
			if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
				t.Fatalf("unmarshal created: %v", err)
			}
			if string(created.Extension) != ext {
				t.Errorf("extension: got %q, want %q", created.Extension, ext)
			}
			t.Cleanup(func() { h.store.Delete(created.ID) })
		})
	}
}

func TestFormatCRUDIntegration(t *testing.T) {
	db := testDB(t)
	h := NewFormats(store.NewFormatStore(db), nil)
	r := formatsRouter(h)

	body, _ := json.Marshal(map[string]any{
		"nome":     "Formato Handler " + t.Name(),
		"extensao": "html",
		"largura":  90.0,
		"altura":   50.0,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/crachas/formats", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var created models.Format
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal created: %v", err)
	}
	if created.Extension != models.ExtensionHTML || created.WidthMM != 90.0 {
		t.Errorf("created format: %+v", created)
	}
	// Store-side defaults fill in what the request omitted.
	if created.DPI != 300 || created.Quality != 90 {
		t.Errorf("defaults: dpi=%d quality=%d", created.DPI, created.Quality)
	}
	t.Cleanup(func() { h.store.Delete(created.ID) })

	// Partial update keeps unnamed fields.
	req = httptest.NewRequest(http.MethodPut, "/api/crachas/formats/"+created.ID.String(),
		strings.NewReader(`{"qualidade": 75}`))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("update status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var updated models.Format
	if err := json.Unmarshal(rr.Body.Bytes(), &updated); err != nil {
		t.Fatalf("unmarshal updated: %v", err)
	}
	if updated.Quality != 75 || updated.WidthMM != 90.0 || updated.Extension != models.ExtensionHTML {
		t.Errorf("updated format: %+v", updated)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/crachas/formats/"+created.ID.String(), nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status: got %d", rr.Code)
	}
}
