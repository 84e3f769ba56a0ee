package app

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"eantienda/domain/ean"
	"eantienda/domain/inventory"
	"eantienda/domain/layout"
	"eantienda/internal"
	"eantienda/internal/errors"
	"eantienda/ports"
)

// InventoryOptions configures an InventoryService
type InventoryOptions struct {
	Prefix       string
	MaxSelection int
	Sheet        layout.Sheet
}

// ImportResult summarises an inventory upload. Legacy counts rows whose
// identifier is not a 13 digit code.
type ImportResult struct {
	Source  string `json:"source"`
	Rows    int    `json:"rows"`
	Dropped int    `json:"dropped"`
	Legacy  int    `json:"legacy"`
}

// InventoryService runs the inventory commands against a session's table
type InventoryService struct {
	codec  ports.TableCodec
	labels *LabelService
	opts   InventoryOptions
	now    Clock
	logger *internal.Logger
}

// NewInventoryService creates an inventory service
func NewInventoryService(codec ports.TableCodec, labels *LabelService, opts InventoryOptions) *InventoryService {
	if opts.Prefix == "" {
		opts.Prefix = ean.DefaultPrefix
	}
	if opts.MaxSelection <= 0 {
		opts.MaxSelection = 10
	}
	return &InventoryService{
		codec:  codec,
		labels: labels,
		opts:   opts,
		now:    time.Now,
		logger: internal.DefaultLogger.WithComponent("InventoryService"),
	}
}

// WithClock replaces the clock used for export file names
func (s *InventoryService) WithClock(now Clock) *InventoryService {
	s.now = now
	return s
}

// Prefix returns the identifier prefix new products are numbered under
func (s *InventoryService) Prefix() string {
	return s.opts.Prefix
}

// MaxSelection returns how many products may be printed at once
func (s *InventoryService) MaxSelection() int {
	return s.opts.MaxSelection
}

// Import replaces the table with the rows of an uploaded file. The table is
// untouched when the file cannot be read.
func (s *InventoryService) Import(table *inventory.Table, src io.Reader, filename string) (*ImportResult, error) {
	rows, err := s.codec.ReadInventory(src, filename)
	if err != nil {
		return nil, err
	}
	dropped := table.Replace(rows, filename)
	if dropped > 0 {
		s.logger.Warn("Dropped %d repeated product names from %s", dropped, filename)
	}
	legacy := table.Legacy()
	if legacy > 0 {
		s.logger.Warn("%d products in %s keep a legacy identifier", legacy, filename)
	}
	s.logger.Info("Imported %d products from %s", table.Len(), filename)
	return &ImportResult{Source: filename, Rows: table.Len(), Dropped: dropped, Legacy: legacy}, nil
}

// Suggest proposes the next free identifier for the table
func (s *InventoryService) Suggest(table *inventory.Table) (string, error) {
	return table.Suggest(s.opts.Prefix)
}

// AddProduct appends a product. An empty code takes the suggested identifier.
func (s *InventoryService) AddProduct(table *inventory.Table, name, code string) (*inventory.Row, error) {
	if !table.Loaded() {
		return nil, errors.ValidationError("upload an inventory file before adding products")
	}
	code = strings.TrimSpace(code)
	if code == "" {
		suggestion, err := s.Suggest(table)
		if err != nil {
			return nil, err
		}
		code = suggestion
	}
	row, err := table.Add(name, code)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Added product %q with EAN %s", row.Product, row.EAN)
	return &row, nil
}

// Export writes the table in the format of the file it came from, named
// after that file and today's date.
func (s *InventoryService) Export(table *inventory.Table) (*File, error) {
	if !table.Loaded() {
		return nil, errors.ValidationError("there is no inventory to export")
	}
	name := datedName(table.SourceName(), DefaultInventoryName, s.now())

	var buf bytes.Buffer
	if err := s.codec.WriteInventory(&buf, name, table.Rows()); err != nil {
		return nil, errors.Wrap(err, "failed to export inventory")
	}
	return &File{Name: name, ContentType: contentTypeFor(name), Data: buf.Bytes()}, nil
}

// RenderLabels prints a label sheet for each selected product.
func (s *InventoryService) RenderLabels(table *inventory.Table, products []string) (*File, []RenderFailure, error) {
	items, err := s.selection(table, products)
	if err != nil {
		return nil, nil, err
	}
	data, failures, err := s.labels.RenderSheets(items, s.opts.Sheet)
	if err != nil {
		return nil, failures, err
	}
	return &File{Name: LabelsPDFName, ContentType: ContentTypePDF, Data: data}, failures, nil
}

func (s *InventoryService) selection(table *inventory.Table, products []string) ([]LabelItem, error) {
	seen := make(map[string]struct{}, len(products))
	items := make([]LabelItem, 0, len(products))
	for _, name := range products {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		row, ok := table.Lookup(name)
		if !ok {
			return nil, errors.InvalidInput(fmt.Sprintf("product %q is not in the inventory", name))
		}
		items = append(items, LabelItem{Code: row.EAN, Caption: row.Product})
	}

	switch {
	case len(items) == 0:
		return nil, errors.ValidationError("select at least one product to print")
	case len(items) > s.opts.MaxSelection:
		return nil, errors.ValidationError(fmt.Sprintf("select at most %d products", s.opts.MaxSelection))
	}
	return items, nil
}
