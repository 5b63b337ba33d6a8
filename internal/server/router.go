package server

import (
	"net/http"
	"time"

	"github.com/diewo77/docrender/internal/db"
	"github.com/diewo77/docrender/internal/httpx"
	"github.com/diewo77/docrender/internal/i18n"
	"github.com/diewo77/docrender/internal/tenant"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New returns the application handler with every route and the global
// middleware configured.
func New(conn *gorm.DB, rc *RouterConfig, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		// Lightweight DB check; details stay in the logs.
		if err := conn.WithContext(r.Context()).Exec("SELECT 1").Error; err != nil {
			log.Warn("health check failed", zap.Error(err))
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Rendering
	rh := rc.RenderHandler
	mux.HandleFunc("POST /render", rh.Render)
	mux.HandleFunc("POST /render/preview", rh.Preview)
	mux.HandleFunc("POST /render/themes", rh.Themes)
	mux.HandleFunc("GET /documents/{id}/pdf", rh.DocumentPDF)

	// Settings
	mux.HandleFunc("GET /design-settings", rc.DesignHandler.Get)
	mux.HandleFunc("PUT /design-settings", rc.DesignHandler.Update)
	mux.HandleFunc("GET /company", rc.CompanyHandler.Get)
	mux.HandleFunc("PUT /company", rc.CompanyHandler.Update)

	// Input contracts
	mux.HandleFunc("GET /schema/document", rc.SchemaHandler.Document)
	mux.HandleFunc("GET /schema/design", rc.SchemaHandler.Design)

	return withLogging(log, withLanguage(tenant.Middleware(db.DefaultTenant)(mux)))
}

// withLanguage picks the response language from ?lang or Accept-Language.
func withLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		if q := r.URL.Query().Get("lang"); q != "" {
			lang = i18n.DetectLanguage(q)
		}
		next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// withLogging adds request logging middleware.
func withLogging(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
