package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diewo77/docrender/internal/config"
	"github.com/diewo77/docrender/internal/db"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (http.Handler, *observer.ObservedLogs) {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Seed(conn); err != nil {
		t.Fatalf("seed: %v", err)
	}
	cfg := &config.Config{Render: config.RenderConfig{
		LogoTimeout:   time.Second,
		LogoMaxBytes:  1 << 20,
		GradientBands: 12,
		PageSize:      "A4",
	}}
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)
	return New(conn, NewRouterConfig(conn, cfg, log), log), logs
}

func TestHealthz(t *testing.T) {
	h, logs := newTestApp(t)
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		// sqlite Exec("SELECT 1") always OK; ensure status code
		t.Fatalf("expected 200 got %d", w.Code)
	}
	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one access log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/healthz" || fields["status"] != int64(http.StatusOK) {
		t.Errorf("access log fields = %v", fields)
	}
}

func TestRenderRoute(t *testing.T) {
	h, logs := newTestApp(t)
	body := `{"document":{"kind":"delivery_note","number":"BL-12","issue_date":"2025-03-14T00:00:00Z",
		"party":{"name":"Karim Benali"},"items":[{"label":"Chaise","quantity":4,"unit_price":1500,"total":6000}]}}`
	r := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF")
	}
	if logs.FilterMessage("document rendered").Len() != 1 {
		t.Error("render should be logged")
	}
}

func TestRenderIgnoresServerFileLogo(t *testing.T) {
	h, logs := newTestApp(t)
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "private.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	body := `{"document":{"kind":"invoice","number":"FAC-1","issue_date":"2025-03-14",
		"party":{"name":"Karim Benali"},"items":[{"label":"Chaise","quantity":1,"unit_price":10,"total":10}]},
		"design":{"logo_url":"` + path + `"}}`
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	if bytes.Contains(w.Body.Bytes(), []byte("/Subtype /Image")) {
		t.Error("a server file named in the request must not be embedded")
	}
	if logs.FilterMessage("logo unavailable, using initials badge").Len() != 1 {
		t.Error("the refused logo should be logged")
	}
}

func TestErrorsFollowRequestLanguage(t *testing.T) {
	h, _ := newTestApp(t)
	tests := []struct {
		name   string
		target string
		accept string
		want   string
	}{
		{"default french", "/documents/x/pdf", "", "Identifiant invalide"},
		{"accept language", "/documents/x/pdf", "en-US,en;q=0.9", "Invalid identifier"},
		{"query wins", "/documents/x/pdf?lang=fr", "en", "Identifiant invalide"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				r.Header.Set("Accept-Language", tt.accept)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d", w.Code)
			}
			var body struct {
				Error   string `json:"error"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != "invalid_id" || body.Message != tt.want {
				t.Errorf("got %+v, want message %q", body, tt.want)
			}
		})
	}
}

func TestTenantHeaderScopesSettings(t *testing.T) {
	h, _ := newTestApp(t)

	r := httptest.NewRequest(http.MethodPut, "/company", strings.NewReader(`{"name":"Atelier Nord"}`))
	r.Header.Set("X-Tenant-ID", "3")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}

	for tenantID, want := range map[string]string{"3": "Atelier Nord", "": "Ma Société"} {
		r := httptest.NewRequest(http.MethodGet, "/company", nil)
		if tenantID != "" {
			r.Header.Set("X-Tenant-ID", tenantID)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		var body struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Name != want {
			t.Errorf("tenant %q: name = %q, want %q", tenantID, body.Name, want)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	h, _ := newTestApp(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/invoices", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
