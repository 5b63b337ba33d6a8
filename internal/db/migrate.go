package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/diewo77/docrender/internal/config"
	"github.com/diewo77/docrender/internal/models"
	"github.com/diewo77/docrender/internal/theme"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectAttempts = 5

// Connect opens the configured database. Postgres connections are retried to
// give the server time to start.
func Connect(cfg config.DatabaseConfig, dev bool, log *zap.Logger) (*gorm.DB, error) {
	level := logger.Silent
	if dev {
		level = logger.Warn
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(level)}

	if cfg.Driver == "sqlite" {
		log.Info("opening sqlite database", zap.String("path", cfg.Path))
		db, err := gorm.Open(sqlite.Open(cfg.Path), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, nil
	}

	log.Info("connecting to database",
		zap.String("host", cfg.Host), zap.Int("port", cfg.Port),
		zap.String("dbname", cfg.DBName), zap.String("user", cfg.User))
	var db *gorm.DB
	var err error
	for i := 0; i < connectAttempts; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gcfg)
		if err == nil {
			break
		}
		log.Warn("database connection failed, retrying", zap.Int("attempt", i+1), zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.CompanySettings{},
		&models.DesignSetting{},
		&models.Document{},
		&models.DocumentItem{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// DefaultTenant owns the seeded company and design.
const DefaultTenant uint = 1

// Seed creates the default company and design of DefaultTenant when missing.
// It is idempotent.
func Seed(db *gorm.DB) error {
	var company models.CompanySettings
	err := db.Where("tenant_id = ?", DefaultTenant).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		company = models.CompanySettings{TenantID: DefaultTenant, Name: "Ma Société", City: "Casablanca", Country: "Maroc"}
		err = db.Create(&company).Error
	}
	if err != nil {
		return fmt.Errorf("seed company: %w", err)
	}

	var design models.DesignSetting
	err = db.Where("tenant_id = ?", DefaultTenant).First(&design).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		design = DefaultDesign(DefaultTenant)
		err = db.Create(&design).Error
	}
	if err != nil {
		return fmt.Errorf("seed design: %w", err)
	}
	return nil
}

// DefaultDesign is the design a tenant starts with.
func DefaultDesign(tenantID uint) models.DesignSetting {
	on := true
	return models.DesignSetting{
		TenantID:         tenantID,
		Name:             "Classique",
		PrimaryColor:     theme.DefaultPrimary,
		SecondaryColor:   theme.DefaultSecondary,
		AccentColor:      theme.DefaultAccent,
		TextColor:        theme.DefaultText,
		HeaderTextColor:  theme.DefaultHeaderText,
		SectionTextColor: theme.DefaultSectionText,
		BackgroundColor:  theme.DefaultBackground,
		HeaderStyle:      "gradient",
		LogoPosition:     "left",
		LogoSize:         "medium",
		FontFamily:       "helvetica",
		FontSize:         "normal",
		BorderRadius:     "rounded",
		ShowValidity:     &on,
		ShowTerms:        &on,
		ShowPaymentBox:   &on,
		ValidityDays:     theme.DefaultValidityDays,
	}
}
