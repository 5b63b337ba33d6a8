package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/diewo77/docrender/internal/document"
	"github.com/diewo77/docrender/internal/httpx"
	"github.com/diewo77/docrender/internal/services"
	"github.com/diewo77/docrender/internal/tenant"
	"github.com/diewo77/docrender/internal/theme"
	"github.com/diewo77/docrender/internal/validation"
	"go.uber.org/zap"
)

const (
	// maxBodyBytes leaves room for designs carrying a data URL logo.
	maxBodyBytes = 8 << 20
	// maxThemeDesigns bounds POST /render/themes; each design may fetch a logo.
	maxThemeDesigns = 8
)

type RenderHandler struct {
	render  *services.RenderService
	docs    *services.DocumentService
	designs *services.DesignService
	log     *zap.Logger
}

func NewRenderHandler(render *services.RenderService, docs *services.DocumentService, designs *services.DesignService, log *zap.Logger) *RenderHandler {
	return &RenderHandler{render: render, docs: docs, designs: designs, log: log}
}

type renderRequest struct {
	Document document.Data `json:"document"`
	// Design overrides the tenant's active design.
	Design *theme.DesignSettings `json:"design,omitempty"`
}

type themesRequest struct {
	Document document.Data          `json:"document"`
	Designs  []theme.DesignSettings `json:"designs"`
}

// Render handles POST /render and answers with the PDF of the posted document.
func (h *RenderHandler) Render(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !decode(w, r, &req) || !validDocument(w, r, req.Document) {
		return
	}
	ds, ok := h.design(w, r, req.Design)
	if !ok {
		return
	}
	doc, err := h.render.Render(r.Context(), req.Document, ds)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	httpx.PDF(w, services.FileName(req.Document), doc.Bytes())
}

// Preview handles POST /render/preview and answers with the draw instructions.
func (h *RenderHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !decode(w, r, &req) || !validDocument(w, r, req.Document) {
		return
	}
	ds, ok := h.design(w, r, req.Design)
	if !ok {
		return
	}
	res, err := h.render.Preview(r.Context(), req.Document, ds)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

// Themes handles POST /render/themes, rendering one document with several designs.
func (h *RenderHandler) Themes(w http.ResponseWriter, r *http.Request) {
	var req themesRequest
	if !decode(w, r, &req) || !validDocument(w, r, req.Document) {
		return
	}
	if len(req.Designs) == 0 {
		httpx.Error(w, r, http.StatusUnprocessableEntity, "validation_failed", validation.Violations{"designs": "required"})
		return
	}
	if len(req.Designs) > maxThemeDesigns {
		httpx.Error(w, r, http.StatusUnprocessableEntity, "validation_failed", validation.Violations{"designs": "out_of_range"})
		return
	}
	previews, err := h.render.PreviewThemes(r.Context(), req.Document, req.Designs)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"themes": previews})
}

// DocumentPDF handles GET /documents/{id}/pdf, rendering a stored document with the tenant's design.
func (h *RenderHandler) DocumentPDF(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := tenant.FromContext(r.Context())
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		httpx.Error(w, r, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	data, err := h.docs.Load(r.Context(), tenantID, uint(id))
	if errors.Is(err, services.ErrDocumentNotFound) {
		httpx.Error(w, r, http.StatusNotFound, "document_not_found", nil)
		return
	}
	if err != nil {
		h.log.Error("load document", zap.Uint64("id", id), zap.Error(err))
		httpx.Error(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	ds, ok := h.design(w, r, nil)
	if !ok {
		return
	}
	doc, err := h.render.Render(r.Context(), data, ds)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	httpx.PDF(w, services.FileName(data), doc.Bytes())
}

func (h *RenderHandler) design(w http.ResponseWriter, r *http.Request, override *theme.DesignSettings) (theme.DesignSettings, bool) {
	if override != nil {
		return *override, true
	}
	tenantID, _ := tenant.FromContext(r.Context())
	d, err := h.designs.Active(r.Context(), tenantID)
	if err != nil {
		h.log.Error("load design", zap.Uint("tenant", tenantID), zap.Error(err))
		httpx.Error(w, r, http.StatusInternalServerError, "internal_error", nil)
		return theme.DesignSettings{}, false
	}
	return d.ToSettings(), true
}

func (h *RenderHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, document.ErrUnknownKind) {
		httpx.Error(w, r, http.StatusBadRequest, "unknown_document_kind", nil)
		return
	}
	h.log.Error("render", zap.Error(err))
	httpx.Error(w, r, http.StatusInternalServerError, "render_failed", nil)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func validDocument(w http.ResponseWriter, r *http.Request, d document.Data) bool {
	v := validation.Document(d)
	if v.Empty() {
		return true
	}
	if _, ok := v["kind"]; ok {
		httpx.Error(w, r, http.StatusBadRequest, "unknown_document_kind", map[string]string{"kind": string(d.Kind)})
		return false
	}
	httpx.Error(w, r, http.StatusUnprocessableEntity, "validation_failed", v)
	return false
}
