package ports

import (
	"image"
	"io"

	"eantienda/domain/layout"
)

// SymbolRenderer turns an identifier into a scannable symbol image
type SymbolRenderer interface {
	// Render draws the symbol for code at its natural pixel size
	Render(code string) (image.Image, error)
}

// PageSurface is a page-formatted document that labels are drawn onto.
// Coordinates are millimetres from the top-left corner of the current page.
type PageSurface interface {
	// AddPage starts a new page; drawing before the first AddPage is invalid
	AddPage()

	// RegisterImage stores img under name so it can be placed many times
	RegisterImage(name string, img image.Image) error

	// PlaceImage draws a registered image stretched to r
	PlaceImage(name string, r layout.Rect) error

	// DrawText writes text with its baseline starting at (x, y)
	DrawText(x, y, fontSize float64, text string)

	// DrawCenteredText writes text centred on cx with its baseline at y
	DrawCenteredText(cx, y, fontSize float64, text string)

	// Output serializes the finished document
	Output(w io.Writer) error
}

// SurfaceFactory opens an empty document whose pages have the given size
type SurfaceFactory interface {
	NewSurface(page layout.Size) (PageSurface, error)
}
