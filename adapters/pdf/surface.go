// Package pdf draws label pages with fpdf.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/go-pdf/fpdf"

	"eantienda/domain/layout"
	"eantienda/internal/errors"
	"eantienda/ports"
)

const fontFamily = "Helvetica"

// Factory opens fpdf documents.
type Factory struct{}

var _ ports.SurfaceFactory = Factory{}

// NewSurface opens a document in millimetres with pages of the given size.
func (Factory) NewSurface(page layout.Size) (ports.PageSurface, error) {
	return NewSurface(page)
}

// Surface implements ports.PageSurface on top of a single fpdf document.
type Surface struct {
	doc       *fpdf.Fpdf
	translate func(string) string
	images    map[string]bool
}

var _ ports.PageSurface = (*Surface)(nil)

// NewSurface creates an empty document without automatic margins or page breaks.
func NewSurface(page layout.Size) (*Surface, error) {
	if page.W <= 0 || page.H <= 0 {
		return nil, errors.ValidationError("page size must be positive")
	}

	// fpdf takes the portrait size and swaps it for landscape documents.
	orientation := "P"
	size := fpdf.SizeType{Wd: page.W, Ht: page.H}
	if page.W > page.H {
		orientation = "L"
		size = fpdf.SizeType{Wd: page.H, Ht: page.W}
	}
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		Size:           size,
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreator("eantienda", true)

	return &Surface{
		doc:       doc,
		translate: doc.UnicodeTranslatorFromDescriptor(""),
		images:    make(map[string]bool),
	}, nil
}

func (s *Surface) AddPage() {
	s.doc.AddPage()
}

// RegisterImage embeds img once as a PNG; later placements reuse the same object.
func (s *Surface) RegisterImage(name string, img image.Image) error {
	if s.images[name] {
		return nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return errors.Wrapf(err, "failed to encode image %s", name)
	}
	s.doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, &buf)
	if err := s.doc.Error(); err != nil {
		s.doc.ClearError()
		return errors.Wrapf(err, "failed to register image %s", name)
	}
	s.images[name] = true
	return nil
}

func (s *Surface) PlaceImage(name string, r layout.Rect) error {
	if !s.images[name] {
		return errors.NotFound(fmt.Sprintf("image %s", name))
	}
	s.doc.ImageOptions(name, r.X, r.Y, r.W, r.H, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return s.doc.Error()
}

func (s *Surface) DrawText(x, y, fontSize float64, text string) {
	s.doc.SetFont(fontFamily, "B", fontSize)
	s.doc.Text(x, y, s.translate(text))
}

func (s *Surface) DrawCenteredText(cx, y, fontSize float64, text string) {
	s.doc.SetFont(fontFamily, "B", fontSize)
	encoded := s.translate(text)
	s.doc.Text(cx-s.doc.GetStringWidth(encoded)/2, y, encoded)
}

// PageCount returns the number of pages added so far.
func (s *Surface) PageCount() int {
	return s.doc.PageCount()
}

func (s *Surface) Output(w io.Writer) error {
	if err := s.doc.Output(w); err != nil {
		return errors.Wrap(err, "failed to write PDF document")
	}
	return nil
}
