// Package server wires services and handlers into the HTTP API.
package server

import (
	"github.com/diewo77/docrender/internal/config"
	"github.com/diewo77/docrender/internal/handlers"
	"github.com/diewo77/docrender/internal/pdf"
	"github.com/diewo77/docrender/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RouterConfig holds the configured handlers and services of the application.
type RouterConfig struct {
	RenderHandler  *handlers.RenderHandler
	DesignHandler  *handlers.DesignHandler
	CompanyHandler *handlers.CompanyHandler
	SchemaHandler  *handlers.SchemaHandler

	RenderService *services.RenderService
}

// NewRouterConfig creates a fully configured router setup.
func NewRouterConfig(db *gorm.DB, cfg *config.Config, log *zap.Logger) *RouterConfig {
	painter := pdf.NewFPDF()
	if cfg.Render.PageSize != "" {
		painter.PageSize = cfg.Render.PageSize
	}
	logos := pdf.NewLogoLoader(cfg.Render.LogoTimeout, cfg.Render.LogoMaxBytes, log.Named("logo"),
		pdf.WithLocalDir(cfg.Render.LogoDir),
	)

	renderService := services.NewRenderService(painter, logos, log.Named("render"),
		services.WithGradientBands(cfg.Render.GradientBands),
		services.WithOutputDir(cfg.Render.OutputDir),
	)
	documentService := services.NewDocumentService(db)
	designService := services.NewDesignService(db)

	return &RouterConfig{
		RenderHandler:  handlers.NewRenderHandler(renderService, documentService, designService, log),
		DesignHandler:  handlers.NewDesignHandler(designService, log),
		CompanyHandler: handlers.NewCompanyHandler(db, log),
		SchemaHandler:  handlers.NewSchemaHandler(),
		RenderService:  renderService,
	}
}
