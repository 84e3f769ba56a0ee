// Package barcode renders EAN-13 symbols as raster images.
//
// Digits are encoded exactly as given: codes imported from older inventories
// keep whatever check digit they were printed with.
package barcode

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	bc "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/utils"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"eantienda/domain/ean"
	"eantienda/internal/errors"
	"eantienda/ports"
)

// modules in an EAN-13 symbol: 3 + 6*7 + 5 + 6*7 + 3
const symbolModules = 95

var (
	startGuard  = []bool{true, false, true}
	middleGuard = []bool{false, true, false, true, false}
	endGuard    = startGuard

	// L (odd parity) patterns; G and R patterns are derived from them.
	leftOdd = [10]string{
		"0001101", "0011001", "0010011", "0111101", "0100011",
		"0110001", "0101111", "0111011", "0110111", "0001011",
	}

	// parity of the six left digits, selected by the leading digit
	firstDigitParity = [10]string{
		"LLLLLL", "LLGLGG", "LLGGLG", "LLGGGL", "LGLLGG",
		"LGGLLG", "LGGGLL", "LGLGLG", "LGLGGL", "LGGLGL",
	}
)

// Options controls the raster size of a rendered symbol.
type Options struct {
	ModuleWidth int // pixels per module
	BarHeight   int // pixels
	QuietZone   int // modules left blank on each side
	TextGap     int // pixels between bars and digits
	ShowDigits  bool
}

// DefaultOptions mirrors the printed label proportions: thin modules and tall bars.
func DefaultOptions() Options {
	return Options{
		ModuleWidth: 3,
		BarHeight:   110,
		QuietZone:   9,
		TextGap:     4,
		ShowDigits:  true,
	}
}

// EAN13Renderer implements ports.SymbolRenderer.
type EAN13Renderer struct {
	opts Options
	face font.Face
}

// NewEAN13Renderer creates a renderer; zero option fields fall back to defaults.
func NewEAN13Renderer(opts Options) *EAN13Renderer {
	def := DefaultOptions()
	if opts.ModuleWidth <= 0 {
		opts.ModuleWidth = def.ModuleWidth
	}
	if opts.BarHeight <= 0 {
		opts.BarHeight = def.BarHeight
	}
	if opts.QuietZone < 0 {
		opts.QuietZone = def.QuietZone
	}
	if opts.TextGap < 0 {
		opts.TextGap = def.TextGap
	}
	return &EAN13Renderer{opts: opts, face: basicfont.Face7x13}
}

var _ ports.SymbolRenderer = (*EAN13Renderer)(nil)

// Encode builds the 95-module bar pattern for a 13-digit code.
func Encode(code string) (bc.Barcode, error) {
	if !ean.IsWellFormed(code) {
		return nil, errors.ValidationError(fmt.Sprintf("cannot encode %q: EAN-13 needs %d digits", code, ean.Length))
	}

	bits := utils.NewBitList(symbolModules)
	bits.AddBit(startGuard...)

	parity := firstDigitParity[code[0]-'0']
	for i := 1; i <= 6; i++ {
		pattern := leftOdd[code[i]-'0']
		if parity[i-1] == 'G' {
			addPattern(bits, pattern, true, true)
		} else {
			addPattern(bits, pattern, false, false)
		}
	}

	bits.AddBit(middleGuard...)

	for i := 7; i < ean.Length; i++ {
		// R patterns are the complement of L
		addPattern(bits, leftOdd[code[i]-'0'], true, false)
	}

	bits.AddBit(endGuard...)
	return utils.New1DCode(bc.TypeEAN13, code, bits), nil
}

// addPattern appends a 7-module pattern, optionally inverted and/or mirrored.
func addPattern(bits *utils.BitList, pattern string, invert, reverse bool) {
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if reverse {
			c = pattern[len(pattern)-1-i]
		}
		bits.AddBit((c == '1') != invert)
	}
}

// Render draws the bars with quiet zones and, when enabled, the digits underneath.
func (r *EAN13Renderer) Render(code string) (image.Image, error) {
	symbol, err := Encode(code)
	if err != nil {
		return nil, err
	}

	barsWidth := symbolModules * r.opts.ModuleWidth
	scaled, err := bc.Scale(symbol, barsWidth, r.opts.BarHeight)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scale symbol for %s", code)
	}

	quiet := r.opts.QuietZone * r.opts.ModuleWidth
	height := r.opts.BarHeight
	if r.opts.ShowDigits {
		height += r.opts.TextGap + r.face.Metrics().Height.Ceil()
	}

	img := image.NewGray(image.Rect(0, 0, barsWidth+2*quiet, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(quiet, 0, quiet+barsWidth, r.opts.BarHeight), scaled, scaled.Bounds().Min, draw.Src)

	if r.opts.ShowDigits {
		r.drawDigits(img, code, quiet+barsWidth/2)
	}
	return img, nil
}

func (r *EAN13Renderer) drawDigits(img draw.Image, code string, centerX int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: r.face,
	}
	width := d.MeasureString(code)
	baseline := r.opts.BarHeight + r.opts.TextGap + r.face.Metrics().Ascent.Ceil()
	d.Dot = fixed.Point26_6{
		X: fixed.I(centerX) - width/2,
		Y: fixed.I(baseline),
	}
	d.DrawString(code)
}
