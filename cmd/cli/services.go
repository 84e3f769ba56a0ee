package main

import (
	"os"
	"path/filepath"

	"eantienda/app"
	"eantienda/domain/inventory"
	"eantienda/internal/config"
	"eantienda/internal/container"
	"eantienda/internal/errors"
)

// services wires the same application services the web server uses
type services struct {
	cfg       *config.Config
	inventory *app.InventoryService
	codes     *app.CodesService
}

func newServices() (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	c, err := container.New(cfg)
	if err != nil {
		return nil, err
	}
	return &services{cfg: cfg, inventory: c.Inventory, codes: c.Codes}, nil
}

func (s *services) loadInventory(path string) (*inventory.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}
	defer f.Close()

	table := inventory.NewTable()
	if _, err := s.inventory.Import(table, f, filepath.Base(path)); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *services) loadHistory(path string) (*app.CodeBook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}
	defer f.Close()

	book := app.NewCodeBook()
	if _, err := s.codes.ImportHistory(book, f, filepath.Base(path)); err != nil {
		return nil, err
	}
	return book, nil
}

func writeFile(path string, file *app.File) error {
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
