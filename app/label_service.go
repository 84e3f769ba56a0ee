package app

import (
	"bytes"
	"fmt"

	"eantienda/domain/layout"
	"eantienda/internal"
	"eantienda/internal/errors"
	"eantienda/ports"
)

// LabelItem is one product to print: the identifier encoded in the symbol
// and the caption printed below it.
type LabelItem struct {
	Code    string
	Caption string
}

// RenderFailure describes a label that was skipped.
type RenderFailure struct {
	Caption string `json:"product"`
	Code    string `json:"ean"`
	Reason  string `json:"reason"`
}

// LabelService draws label sheets and code cards onto page surfaces
type LabelService struct {
	renderer ports.SymbolRenderer
	surfaces ports.SurfaceFactory
	logger   *internal.Logger
}

// NewLabelService creates a label service
func NewLabelService(renderer ports.SymbolRenderer, surfaces ports.SurfaceFactory) *LabelService {
	return &LabelService{
		renderer: renderer,
		surfaces: surfaces,
		logger:   internal.DefaultLogger.WithComponent("LabelService"),
	}
}

// RenderSheets prints one full sheet per item, the same label in every cell.
// Items whose symbol cannot be drawn are reported and skipped; an error is
// returned only when nothing could be printed.
func (s *LabelService) RenderSheets(items []LabelItem, sheet layout.Sheet) ([]byte, []RenderFailure, error) {
	if len(items) == 0 {
		return nil, nil, errors.ValidationError("select at least one product to print")
	}
	if err := sheet.Validate(); err != nil {
		return nil, nil, err
	}

	surface, err := s.surfaces.NewSurface(sheet.Page)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open label document")
	}

	var failures []RenderFailure
	pages := 0
	for i, item := range items {
		if err := s.drawSheet(surface, sheet, fmt.Sprintf("symbol-%d", i), item); err != nil {
			if !errors.HasCode(err, errors.CodeRenderFailure) {
				return nil, nil, err
			}
			s.logger.Warn("Skipping label for %q (%s): %v", item.Caption, item.Code, err)
			failures = append(failures, RenderFailure{Caption: item.Caption, Code: item.Code, Reason: err.Error()})
			continue
		}
		pages++
	}

	if pages == 0 {
		return nil, failures, errors.Newf(errors.CodeRenderFailure, "none of the %d selected labels could be rendered", len(items))
	}

	var buf bytes.Buffer
	if err := surface.Output(&buf); err != nil {
		return nil, failures, err
	}
	s.logger.Info("Rendered %d label sheets (%d skipped, %d bytes)", pages, len(failures), buf.Len())
	return buf.Bytes(), failures, nil
}

// drawSheet renders the symbol once and places it in every tile of a new page.
// Nothing is added to the surface when the symbol cannot be produced.
func (s *LabelService) drawSheet(surface ports.PageSurface, sheet layout.Sheet, name string, item LabelItem) error {
	img, err := s.renderer.Render(item.Code)
	if err != nil {
		return errors.RenderFailure(item.Caption, err)
	}
	bounds := img.Bounds()
	tiles, err := sheet.Tiles(float64(bounds.Dx()), float64(bounds.Dy()))
	if err != nil {
		return errors.RenderFailure(item.Caption, err)
	}
	if err := surface.RegisterImage(name, img); err != nil {
		return errors.RenderFailure(item.Caption, err)
	}

	surface.AddPage()
	for _, tile := range tiles {
		if err := surface.PlaceImage(name, tile.Symbol); err != nil {
			return errors.Wrapf(err, "failed to place label %s", item.Caption)
		}
		surface.DrawCenteredText(tile.CaptionX, tile.CaptionY, sheet.CaptionFontSize, item.Caption)
	}
	return nil
}

// RenderCodeCards prints each code alone on its own card-sized page.
func (s *LabelService) RenderCodeCards(codes []string, card layout.Card) ([]byte, error) {
	if len(codes) == 0 {
		return nil, errors.ValidationError("there are no codes to print")
	}
	if err := card.Validate(); err != nil {
		return nil, err
	}

	surface, err := s.surfaces.NewSurface(card.Page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open code document")
	}
	for _, code := range codes {
		surface.AddPage()
		surface.DrawText(card.TextX, card.TextY, card.FontSize, code)
	}

	var buf bytes.Buffer
	if err := surface.Output(&buf); err != nil {
		return nil, err
	}
	s.logger.Info("Rendered %d code cards", len(codes))
	return buf.Bytes(), nil
}
