package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/docrender/internal/httpx"
	"github.com/diewo77/docrender/internal/models"
	"github.com/diewo77/docrender/internal/tenant"
	"github.com/diewo77/docrender/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompanyHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCompanyHandler(db *gorm.DB, log *zap.Logger) *CompanyHandler {
	return &CompanyHandler{db: db, log: log}
}

type companyRequest struct {
	Name          string `json:"name"`
	ContactName   string `json:"contact_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
	ICE           string `json:"ice"`
	TradeRegister string `json:"trade_register"`
}

// Get handles GET /company: the issuer printed on the tenant's documents.
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := tenant.FromContext(r.Context())
	var settings models.CompanySettings
	err := h.db.WithContext(r.Context()).Where("tenant_id = ?", tenantID).First(&settings).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		h.log.Error("load company", zap.Uint("tenant", tenantID), zap.Error(err))
		httpx.Error(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	// If not found, an empty record is returned
	settings.TenantID = tenantID
	httpx.JSON(w, http.StatusOK, settings)
}

// Update handles PUT /company.
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := tenant.FromContext(r.Context())

	var req companyRequest
	if !decode(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	if !v.Empty() {
		httpx.Error(w, r, http.StatusUnprocessableEntity, "validation_failed", v)
		return
	}

	var settings models.CompanySettings
	err := h.db.WithContext(r.Context()).Where("tenant_id = ?", tenantID).First(&settings).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		h.log.Error("load company", zap.Uint("tenant", tenantID), zap.Error(err))
		httpx.Error(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}

	settings.TenantID = tenantID
	settings.Name = req.Name
	settings.ContactName = req.ContactName
	settings.Email = req.Email
	settings.Phone = req.Phone
	settings.Address = req.Address
	settings.City = req.City
	settings.PostalCode = req.PostalCode
	settings.Country = req.Country
	settings.ICE = req.ICE
	settings.TradeRegister = req.TradeRegister

	if err := h.db.WithContext(r.Context()).Save(&settings).Error; err != nil {
		h.log.Error("save company", zap.Uint("tenant", tenantID), zap.Error(err))
		httpx.Error(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, settings)
}
