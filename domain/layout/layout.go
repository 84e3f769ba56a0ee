// Package layout computes where label tiles land on a printed page.
// All measures are millimetres with the origin at the top-left corner of the page.
package layout

import (
	"fmt"

	"eantienda/internal/errors"
)

const (
	pointMM = 25.4 / 72
	// Helvetica cap height as a fraction of the font size
	capHeight = 0.718
)

// Size is a width/height pair.
type Size struct {
	W float64 `yaml:"w" json:"w"`
	H float64 `yaml:"h" json:"h"`
}

// Grid is the number of tiles across and down a page.
type Grid struct {
	Columns int `yaml:"columns" json:"columns"`
	Rows    int `yaml:"rows" json:"rows"`
}

// Cells returns the number of tiles on one page.
func (g Grid) Cells() int {
	return g.Columns * g.Rows
}

// Margins offsets the grid from the top-left corner of the page.
type Margins struct {
	Left float64 `yaml:"left" json:"left"`
	Top  float64 `yaml:"top" json:"top"`
}

// Inset is the blank space kept inside each cell around the symbol.
type Inset struct {
	Horizontal float64 `yaml:"horizontal" json:"horizontal"`
	Vertical   float64 `yaml:"vertical" json:"vertical"`
}

// Rect is an axis-aligned box.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether the interiors of r and o intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Within reports whether r lies inside a page of the given size.
func (r Rect) Within(page Size) bool {
	const eps = 1e-9
	return r.X >= -eps && r.Y >= -eps && r.X+r.W <= page.W+eps && r.Y+r.H <= page.H+eps
}

// Tile is the placement of one repeated label.
type Tile struct {
	Column int
	Row    int
	Cell   Rect
	Symbol Rect
	// CaptionX is the horizontal centre of the caption. CaptionY is its
	// baseline, placed so capitals start CaptionGap below the symbol.
	CaptionX float64
	CaptionY float64
}

// Sheet describes a grid of identical cells on a fixed-size page.
type Sheet struct {
	Name            string  `yaml:"name" json:"name"`
	Page            Size    `yaml:"page" json:"page"`
	Grid            Grid    `yaml:"grid" json:"grid"`
	Cell            Size    `yaml:"cell" json:"cell"`
	Margins         Margins `yaml:"margins" json:"margins"`
	Inset           Inset   `yaml:"inset" json:"inset"`
	CaptionHeight   float64 `yaml:"caption_height" json:"caption_height"`
	CaptionGap      float64 `yaml:"caption_gap" json:"caption_gap"`
	CaptionFontSize float64 `yaml:"caption_font_size" json:"caption_font_size"`
}

// Validate checks that every dimension is usable and the grid fits on the page.
func (s Sheet) Validate() error {
	switch {
	case s.Page.W <= 0 || s.Page.H <= 0:
		return errors.ValidationError(fmt.Sprintf("sheet %s: page size must be positive", s.Name))
	case s.Grid.Columns <= 0 || s.Grid.Rows <= 0:
		return errors.ValidationError(fmt.Sprintf("sheet %s: grid must have at least one column and one row", s.Name))
	case s.Cell.W <= 0 || s.Cell.H <= 0:
		return errors.ValidationError(fmt.Sprintf("sheet %s: cell size must be positive", s.Name))
	case s.Margins.Left < 0 || s.Margins.Top < 0 || s.Inset.Horizontal < 0 || s.Inset.Vertical < 0 || s.CaptionHeight < 0 || s.CaptionGap < 0:
		return errors.ValidationError(fmt.Sprintf("sheet %s: margins and insets cannot be negative", s.Name))
	}

	maxW, maxH := s.SymbolBox()
	if maxW <= 0 || maxH <= 0 {
		return errors.ValidationError(fmt.Sprintf("sheet %s: insets leave no room for the symbol", s.Name))
	}

	usedW := s.Margins.Left + float64(s.Grid.Columns)*s.Cell.W
	usedH := s.Margins.Top + float64(s.Grid.Rows)*s.Cell.H
	if usedW > s.Page.W+1e-9 || usedH > s.Page.H+1e-9 {
		return errors.ValidationError(fmt.Sprintf("sheet %s: a %dx%d grid of %.1fx%.1f cells does not fit a %.1fx%.1f page",
			s.Name, s.Grid.Columns, s.Grid.Rows, s.Cell.W, s.Cell.H, s.Page.W, s.Page.H))
	}
	return nil
}

// SymbolBox is the largest area a symbol may take inside one cell.
func (s Sheet) SymbolBox() (float64, float64) {
	return s.Cell.W - 2*s.Inset.Horizontal, s.Cell.H - 2*s.Inset.Vertical - s.CaptionHeight
}

// CaptionAscent is the height of a capital letter of the caption font in mm.
func (s Sheet) CaptionAscent() float64 {
	return s.CaptionFontSize * pointMM * capHeight
}

// Fit scales a symbol of natural size nw x nh into the symbol box keeping its aspect ratio.
func (s Sheet) Fit(nw, nh float64) (float64, float64, error) {
	if nw <= 0 || nh <= 0 {
		return 0, 0, errors.ValidationError("symbol size must be positive")
	}
	maxW, maxH := s.SymbolBox()
	scale := min(maxW/nw, maxH/nh)
	return nw * scale, nh * scale, nil
}

// CellAt returns the cell at column col and row row.
func (s Sheet) CellAt(col, row int) Rect {
	return Rect{
		X: s.Margins.Left + float64(col)*s.Cell.W,
		Y: s.Margins.Top + float64(row)*s.Cell.H,
		W: s.Cell.W,
		H: s.Cell.H,
	}
}

// Tiles places a symbol of natural size nw x nh in every cell of the grid, row by row.
func (s Sheet) Tiles(nw, nh float64) ([]Tile, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	w, h, err := s.Fit(nw, nh)
	if err != nil {
		return nil, err
	}

	tiles := make([]Tile, 0, s.Grid.Cells())
	for row := 0; row < s.Grid.Rows; row++ {
		for col := 0; col < s.Grid.Columns; col++ {
			cell := s.CellAt(col, row)
			symbol := Rect{
				X: cell.X + (cell.W-w)/2,
				Y: cell.Y + s.Inset.Vertical,
				W: w,
				H: h,
			}
			tiles = append(tiles, Tile{
				Column:   col,
				Row:      row,
				Cell:     cell,
				Symbol:   symbol,
				CaptionX: cell.X + cell.W/2,
				CaptionY: symbol.Y + symbol.H + s.CaptionGap + s.CaptionAscent(),
			})
		}
	}
	return tiles, nil
}

// Card describes a one-code-per-page layout where only text is drawn.
type Card struct {
	Name     string  `yaml:"name" json:"name"`
	Page     Size    `yaml:"page" json:"page"`
	TextX    float64 `yaml:"text_x" json:"text_x"`
	TextY    float64 `yaml:"text_y" json:"text_y"`
	FontSize float64 `yaml:"font_size" json:"font_size"`
}

// Validate checks the card page and that the text origin lies on it.
func (c Card) Validate() error {
	if c.Page.W <= 0 || c.Page.H <= 0 {
		return errors.ValidationError(fmt.Sprintf("card %s: page size must be positive", c.Name))
	}
	if c.TextX < 0 || c.TextY < 0 || c.TextX > c.Page.W || c.TextY > c.Page.H {
		return errors.ValidationError(fmt.Sprintf("card %s: text origin lies outside the page", c.Name))
	}
	if c.FontSize <= 0 {
		return errors.ValidationError(fmt.Sprintf("card %s: font size must be positive", c.Name))
	}
	return nil
}
