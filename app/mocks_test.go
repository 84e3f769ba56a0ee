package app

import (
	"fmt"
	"image"
	"io"

	"eantienda/domain/layout"
	"eantienda/ports"

	"github.com/stretchr/testify/mock"
)

// MockSymbolRenderer returns whatever image or error the test configures per code
type MockSymbolRenderer struct {
	mock.Mock
}

func (m *MockSymbolRenderer) Render(code string) (image.Image, error) {
	args := m.Called(code)
	if img := args.Get(0); img != nil {
		return img.(image.Image), args.Error(1)
	}
	return nil, args.Error(1)
}

type placement struct {
	page int
	name string
	rect layout.Rect
}

type caption struct {
	page     int
	x, y     float64
	fontSize float64
	text     string
}

// recordingSurface keeps every drawing call so tests can inspect the layout
type recordingSurface struct {
	page       layout.Size
	pages      int
	images     map[string]image.Image
	placements []placement
	captions   []caption
	texts      []caption
}

func (s *recordingSurface) AddPage() { s.pages++ }

func (s *recordingSurface) RegisterImage(name string, img image.Image) error {
	if s.images == nil {
		s.images = make(map[string]image.Image)
	}
	s.images[name] = img
	return nil
}

func (s *recordingSurface) PlaceImage(name string, r layout.Rect) error {
	if _, ok := s.images[name]; !ok {
		return fmt.Errorf("image %s not registered", name)
	}
	s.placements = append(s.placements, placement{page: s.pages, name: name, rect: r})
	return nil
}

func (s *recordingSurface) DrawText(x, y, fontSize float64, text string) {
	s.texts = append(s.texts, caption{page: s.pages, x: x, y: y, fontSize: fontSize, text: text})
}

func (s *recordingSurface) DrawCenteredText(cx, y, fontSize float64, text string) {
	s.captions = append(s.captions, caption{page: s.pages, x: cx, y: y, fontSize: fontSize, text: text})
}

func (s *recordingSurface) Output(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%%PDF-fake pages=%d", s.pages)
	return err
}

type recordingFactory struct {
	surfaces []*recordingSurface
}

func (f *recordingFactory) NewSurface(page layout.Size) (ports.PageSurface, error) {
	s := &recordingSurface{page: page}
	f.surfaces = append(f.surfaces, s)
	return s, nil
}

func (f *recordingFactory) last() *recordingSurface {
	return f.surfaces[len(f.surfaces)-1]
}

func symbolImage() image.Image {
	return image.NewGray(image.Rect(0, 0, 339, 127))
}
