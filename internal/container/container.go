package container

import (
	"fmt"

	"eantienda/adapters/barcode"
	"eantienda/adapters/excel"
	"eantienda/adapters/pdf"
	"eantienda/app"
	"eantienda/domain/codes"
	"eantienda/internal/config"
	"eantienda/internal/session"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Adapters
	Codec    *excel.Codec
	Renderer *barcode.EAN13Renderer
	Surfaces pdf.Factory

	// Services
	Labels    *app.LabelService
	Inventory *app.InventoryService
	Codes     *app.CodesService

	// Per-browser state, only used by the web server
	Sessions *session.Manager
}

// New wires adapters and services from the configuration
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config:   cfg,
		Codec:    excel.NewCodec(excel.DefaultExcelConfig()),
		Renderer: barcode.NewEAN13Renderer(barcode.DefaultOptions()),
		Surfaces: pdf.Factory{},
	}

	c.Labels = app.NewLabelService(c.Renderer, c.Surfaces)
	c.Inventory = app.NewInventoryService(c.Codec, c.Labels, app.InventoryOptions{
		Prefix:       cfg.EAN.Prefix,
		MaxSelection: cfg.Labels.MaxSelection,
		Sheet:        cfg.Layouts.Labels,
	})
	c.Codes = app.NewCodesService(c.Codec, c.Labels,
		codes.NewSampler(cfg.Codes.Length, cfg.Codes.MaxAttempts),
		app.CodesOptions{
			MaxPerBatch: cfg.Codes.MaxPerBatch,
			Card:        cfg.Layouts.Cards,
		})
	c.Sessions = session.NewManager(cfg.Session.TTL)

	return c, nil
}
