package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/docrender/internal/db"
	"github.com/diewo77/docrender/internal/pdf"
	"github.com/diewo77/docrender/internal/services"
	"github.com/diewo77/docrender/internal/tenant"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(d); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Seed(d); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return d
}

func newRenderHandler(t *testing.T, conn *gorm.DB) *RenderHandler {
	t.Helper()
	log := zap.NewNop()
	render := services.NewRenderService(pdf.NewFPDF(), nil, log, services.WithGradientBands(8))
	return NewRenderHandler(render, services.NewDocumentService(conn), services.NewDesignService(conn), log)
}

// request builds a request for the default tenant.
func request(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(tenant.WithID(req.Context(), db.DefaultTenant))
}

const invoiceJSON = `{
	"kind": "invoice",
	"number": "FAC/2025-01",
	"issue_date": "2025-03-14T00:00:00Z",
	"party": {"name": "Karim Benali"},
	"issuer": {"name": "Boutique Zahra", "company": "Boutique Zahra"},
	"items": [
		{"label": "Chaise", "quantity": 4, "unit_price": 1500, "total": 6000},
		{"label": "Bureau", "quantity": 2, "unit_price": 3600, "discount": 200, "total": 7000}
	],
	"subtotal": 13000,
	"tax_rate": 20,
	"tax_amount": 2600,
	"grand_total": 15600
}`

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return body
}
