package handlers

import (
	"net/http"

	"github.com/diewo77/docrender/internal/httpx"
	"github.com/diewo77/docrender/internal/services"
	"github.com/diewo77/docrender/internal/tenant"
	"github.com/diewo77/docrender/internal/theme"
	"github.com/diewo77/docrender/internal/validation"
	"go.uber.org/zap"
)

type DesignHandler struct {
	designs *services.DesignService
	log     *zap.Logger
}

func NewDesignHandler(designs *services.DesignService, log *zap.Logger) *DesignHandler {
	return &DesignHandler{designs: designs, log: log}
}

// Get handles GET /design-settings.
func (h *DesignHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := tenant.FromContext(r.Context())
	d, err := h.designs.Active(r.Context(), tenantID)
	if err != nil {
		h.log.Error("load design", zap.Uint("tenant", tenantID), zap.Error(err))
		httpx.Error(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}

// Update handles PUT /design-settings. Replaces the tenant's design. Colors are not
// rejected here; malformed ones fall back to their default when rendering.
func (h *DesignHandler) Update(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := tenant.FromContext(r.Context())
	var ds theme.DesignSettings
	if !decode(w, r, &ds) {
		return
	}
	v := validation.Violations{}
	validation.RangeFloat("validity_days", float64(ds.ValidityDays), 0, 3650, v)
	if !v.Empty() {
		httpx.Error(w, r, http.StatusUnprocessableEntity, "validation_failed", v)
		return
	}
	d, err := h.designs.Save(r.Context(), tenantID, ds)
	if err != nil {
		h.log.Error("save design", zap.Uint("tenant", tenantID), zap.Error(err))
		httpx.Error(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}
