package app

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"eantienda/adapters/excel"
	"eantienda/adapters/pdf"
	"eantienda/domain/codes"
	"eantienda/domain/layout"
	"eantienda/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCodesService(factory *recordingFactory, length, maxAttempts int) *CodesService {
	labels := NewLabelService(new(MockSymbolRenderer), factory)
	sampler := codes.NewSamplerWithRand(length, maxAttempts, rand.New(rand.NewPCG(7, 11)))
	return NewCodesService(excel.NewCodec(excel.DefaultExcelConfig()), labels, sampler, CodesOptions{
		MaxPerBatch: 50,
		Card:        layout.Envelope(),
	}).WithClock(fixedClock)
}

func TestGenerateRequiresHistory(t *testing.T) {
	service := newCodesService(&recordingFactory{}, 8, 10000)
	book := NewCodeBook()

	_, err := service.Generate(book, 5, "")
	assert.True(t, errors.HasCode(err, errors.CodeValidationError))

	_, err = service.ExportHistory(book)
	assert.True(t, errors.HasCode(err, errors.CodeValidationError))

	_, err = service.RenderLastBatch(book)
	assert.True(t, errors.HasCode(err, errors.CodeValidationError))
}

func TestGenerateAppendsToHistory(t *testing.T) {
	factory := &recordingFactory{}
	service := newCodesService(factory, 8, 10000)
	book := NewCodeBook()

	n, err := service.ImportHistory(book, strings.NewReader("Codigo_Unico\nAB12CD34\nAB12CD34\n\n"), "historial.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	batch, err := service.Generate(book, 5, " vip ")
	require.NoError(t, err)
	require.Len(t, batch, 5)
	for _, code := range batch {
		assert.Len(t, code, 8)
		assert.True(t, strings.HasPrefix(code, "VIP"), code)
	}
	assert.Equal(t, 6, book.History.Len())
	assert.Equal(t, batch, book.LastBatch)

	second, err := service.Generate(book, 10, "")
	require.NoError(t, err)
	for _, code := range second {
		assert.NotContains(t, batch, code)
		assert.NotEqual(t, "AB12CD34", code)
	}
	assert.Equal(t, 16, book.History.Len())

	file, err := service.RenderLastBatch(book)
	require.NoError(t, err)
	assert.Equal(t, CodeCardsPDFName, file.Name)
	assert.Equal(t, 10, factory.last().pages, "only the last batch is printed")
}

func TestGenerateRejectsBadRequests(t *testing.T) {
	service := newCodesService(&recordingFactory{}, 8, 10000)
	book := NewCodeBook()
	_, err := service.ImportHistory(book, strings.NewReader("code\nAB12CD34\n"), "h.csv")
	require.NoError(t, err)

	tests := []struct {
		name   string
		count  int
		prefix string
	}{
		{"zero", 0, ""},
		{"negative", -3, ""},
		{"above batch limit", 51, ""},
		{"long prefix", 1, "ABCDE"},
		{"symbols in prefix", 1, "A-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Generate(book, tt.count, tt.prefix)
			assert.True(t, errors.HasCode(err, errors.CodeValidationError))
			assert.Equal(t, 1, book.History.Len())
		})
	}
}

func TestGenerateExhaustedLeavesHistoryUntouched(t *testing.T) {
	service := newCodesService(&recordingFactory{}, 4, 500)
	book := NewCodeBook()
	_, err := service.ImportHistory(book, strings.NewReader("code\nABC1\n"), "h.csv")
	require.NoError(t, err)

	// ABC + one character leaves 35 free codes
	_, err = service.Generate(book, 36, "ABC")
	assert.True(t, errors.HasCode(err, errors.CodeGenerationExhausted))
	assert.Equal(t, 1, book.History.Len())
	assert.Empty(t, book.LastBatch)
}

func TestExportHistoryName(t *testing.T) {
	service := newCodesService(&recordingFactory{}, 8, 10000)
	book := NewCodeBook()
	_, err := service.ImportHistory(book, strings.NewReader("Codigo\nAB12CD34\n"), "codigos.csv")
	require.NoError(t, err)
	batch, err := service.Generate(book, 2, "")
	require.NoError(t, err)

	file, err := service.ExportHistory(book)
	require.NoError(t, err)
	assert.Equal(t, "codigos_actualizado_20261015_093005.csv", file.Name)
	assert.Equal(t, "Codigo_Unico\nAB12CD34\n"+batch[0]+"\n"+batch[1]+"\n", string(file.Data))
}

func TestImportHistoryResetsLastBatch(t *testing.T) {
	service := newCodesService(&recordingFactory{}, 8, 10000)
	book := NewCodeBook()
	_, err := service.ImportHistory(book, strings.NewReader("code\nAB12CD34\n"), "h.csv")
	require.NoError(t, err)
	_, err = service.Generate(book, 3, "")
	require.NoError(t, err)

	_, err = service.ImportHistory(book, strings.NewReader("code\nZZ99ZZ99\n"), "other.csv")
	require.NoError(t, err)
	assert.Empty(t, book.LastBatch)
	assert.Equal(t, "other.csv", book.Source)
	assert.Equal(t, []string{"ZZ99ZZ99"}, book.History.Codes())
}

func TestCodesEndToEnd(t *testing.T) {
	labels := NewLabelService(new(MockSymbolRenderer), pdf.Factory{})
	service := NewCodesService(excel.NewCodec(excel.DefaultExcelConfig()), labels, codes.NewSampler(8, 10000), CodesOptions{
		MaxPerBatch: 1000,
		Card:        layout.Envelope(),
	}).WithClock(fixedClock)
	book := NewCodeBook()

	var upload bytes.Buffer
	require.NoError(t, excel.NewDataWriter().WriteHistory(&upload, "codigos_unicos_historial.xlsx", []string{"AB12CD34"}))
	_, err := service.ImportHistory(book, &upload, "codigos_unicos_historial.xlsx")
	require.NoError(t, err)

	_, err = service.Generate(book, 20, "")
	require.NoError(t, err)

	file, err := service.RenderLastBatch(book)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF-")))

	export, err := service.ExportHistory(book)
	require.NoError(t, err)
	assert.Equal(t, "codigos_unicos_historial_actualizado_20261015_093005.xlsx", export.Name)

	back, err := excel.NewCodec(excel.DefaultExcelConfig()).ReadHistory(bytes.NewReader(export.Data), export.Name)
	require.NoError(t, err)
	assert.Equal(t, book.History.Codes(), back)
}
