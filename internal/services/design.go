package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/diewo77/docrender/internal/db"
	"github.com/diewo77/docrender/internal/models"
	"github.com/diewo77/docrender/internal/theme"
	"gorm.io/gorm"
)

// DesignService stores the active design of each tenant.
type DesignService struct {
	db *gorm.DB
}

func NewDesignService(db *gorm.DB) *DesignService {
	return &DesignService{db: db}
}

// Active returns the tenant's design, or the default design when none has
// been saved yet.
func (s *DesignService) Active(ctx context.Context, tenantID uint) (models.DesignSetting, error) {
	var d models.DesignSetting
	err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.DefaultDesign(tenantID), nil
	}
	if err != nil {
		return models.DesignSetting{}, fmt.Errorf("load design: %w", err)
	}
	return d, nil
}

// Save replaces the tenant's design with ds.
func (s *DesignService) Save(ctx context.Context, tenantID uint, ds theme.DesignSettings) (models.DesignSetting, error) {
	var d models.DesignSetting
	err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&d).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DesignSetting{}, fmt.Errorf("load design: %w", err)
	}
	d.TenantID = tenantID
	d.Apply(ds)
	if err := s.db.WithContext(ctx).Save(&d).Error; err != nil {
		return models.DesignSetting{}, fmt.Errorf("save design: %w", err)
	}
	return d, nil
}
