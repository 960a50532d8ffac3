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

func themesRouter(h *Themes) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/crachas/themes", h.List)
	r.Post("/api/crachas/themes", h.Create)
	r.Get("/api/crachas/themes/{id}", h.Get)
	r.Put("/api/crachas/themes/{id}", h.Update)
	r.Delete("/api/crachas/themes/{id}", h.Delete)
	return r
}

func TestThemeCreateValidation(t *testing.T) {
	h := NewThemes(store.NewThemeStore(deadDB(t)), nil)
	r := themesRouter(h)

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"cor_primaria": "#1A5276"}`},
		{"blank name", `{"nome": "   "}`},
		{"bad color", `{"nome": "Tema", "cor_primaria": "azul"}`},
		{"bad layout", `{"nome": "Tema", "layout": "diagonal"}`},
		{"bad background", `{"nome": "Tema", "fundo_tipo": "listrado"}`},
		{"negative margin", `{"nome": "Tema", "margem_superior": -5}`},
		{"malformed body", `{nope`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/crachas/themes", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400 (body %s)", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestThemeCRUDIntegration(t *testing.T) {
	db := testDB(t)
	h := NewThemes(store.NewThemeStore(db), nil)
	r := themesRouter(h)

	name := "Tema Handler " + t.Name()

	// Create.
	body, _ := json.Marshal(map[string]any{
		"nome":            name,
		"cor_primaria":    "#2E86C1",
		"layout":          "vertical",
		"fundo_tipo":      "gradiente",
		"fundo_opacidade": 2.5, // clamped, not rejected
	})
	req := httptest.NewRequest(http.MethodPost, "/api/crachas/themes", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var created models.Theme
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal created: %v", err)
	}
	if created.PrimaryColor != "#2E86C1" || created.Layout != models.LayoutVertical {
		t.Errorf("created theme: %+v", created)
	}
	if created.Opacity != 1.0 {
		t.Errorf("opacity: got %v, want clamped 1.0", created.Opacity)
	}
	t.Cleanup(func() { h.store.Delete(created.ID) })

	// Get.
	req = httptest.NewRequest(http.MethodGet, "/api/crachas/themes/"+created.ID.String(), nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("get status: got %d", rr.Code)
	}

	// Partial update: only the primary color changes.
	req = httptest.NewRequest(http.MethodPut, "/api/crachas/themes/"+created.ID.String(),
		strings.NewReader(`{"cor_primaria": "#C0392B"}`))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("update status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var updated models.Theme
	if err := json.Unmarshal(rr.Body.Bytes(), &updated); err != nil {
		t.Fatalf("unmarshal updated: %v", err)
	}
	if updated.PrimaryColor != "#C0392B" {
		t.Errorf("primary color: got %q", updated.PrimaryColor)
	}
	if updated.Name != name || updated.Layout != models.LayoutVertical {
		t.Errorf("untouched fields changed: %+v", updated)
	}

	// Delete, then the id is gone.
	req = httptest.NewRequest(http.MethodDelete, "/api/crachas/themes/"+created.ID.String(), nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status: got %d", rr.Code)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/crachas/themes/"+created.ID.String(), nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("get after delete: got %d, want 404", rr.Code)
	}
}

func TestThemeDuplicateNameIntegration(t *testing.T) {
	// The active-theme name is unique; a collision is a client error,
	// not an internal one.
	db := testDB(t)
	h := NewThemes(store.NewThemeStore(db), nil)
	r := themesRouter(h)

	name := "Tema Duplicado " + t.Name()
	body := `{"nome": "` + name + `"}`

	req := httptest.NewRequest(http.MethodPost, "/api/crachas/themes", strings.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("first create: got %d, body %s", rr.Code, rr.Body.String())
	}
	var created models.Theme
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal created: %v", err)
	}
	t.Cleanup(func() { h.store.Delete(created.ID) })

	req = httptest.NewRequest(http.MethodPost, "/api/crachas/themes", strings.NewReader(body))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusConflict {
		t.Fatalf("duplicate create: got %d, want 409 (body %s)", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "nome") {
		t.Errorf("error should name the field, body: %s", rr.Body.String())
	}
}

func TestThemeUnknownID(t *testing.T) {
	db := testDB(t)
	h := NewThemes(store.NewThemeStore(db), nil)
	r := themesRouter(h)

	missing := "00000000-0000-0000-0000-000000000001"

	for _, tc := range []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/crachas/themes/" + missing, ""},
		{http.MethodPut, "/api/crachas/themes/" + missing, `{"nome": "X"}`},
		{http.MethodDelete, "/api/crachas/themes/" + missing, ""},
	} {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusNotFound {
			t.Errorf("%s %s: got %d, want 404", tc.method, tc.path, rr.Code)
		}
	}
}
