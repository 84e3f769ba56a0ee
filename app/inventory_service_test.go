package app

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"eantienda/adapters/barcode"
	"eantienda/adapters/excel"
	"eantienda/adapters/pdf"
	"eantienda/domain/inventory"
	"eantienda/domain/layout"
	"eantienda/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 15, 9, 30, 5, 0, time.UTC)
}

func newInventoryService(factory *recordingFactory, renderer *MockSymbolRenderer) *InventoryService {
	labels := NewLabelService(renderer, factory)
	return NewInventoryService(excel.NewCodec(excel.DefaultExcelConfig()), labels, InventoryOptions{
		Prefix:       "84370000",
		MaxSelection: 3,
		Sheet:        layout.A4Grid(),
	}).WithClock(fixedClock)
}

func importCSV(t *testing.T, service *InventoryService, table *inventory.Table, data string) *ImportResult {
	t.Helper()
	result, err := service.Import(table, strings.NewReader(data), "tienda.csv")
	require.NoError(t, err)
	return result
}

func TestImportReplacesTable(t *testing.T) {
	service := newInventoryService(&recordingFactory{}, new(MockSymbolRenderer))
	table := inventory.NewTable()

	result := importCSV(t, service, table, "Producto,EAN\nShirt Red - M,8437000000013\nShirt Red - M,8437000000020\nHat,8437000000037\n")
	assert.Equal(t, &ImportResult{Source: "tienda.csv", Rows: 2, Dropped: 1}, result)
	row, ok := table.Lookup("Shirt Red - M")
	require.True(t, ok)
	assert.Equal(t, "8437000000013", row.EAN, "first occurrence wins")

	_, err := service.Import(table, strings.NewReader("Nombre\nx\n"), "otra.csv")
	assert.True(t, errors.HasCode(err, errors.CodeValidationError))
	assert.Equal(t, 2, table.Len(), "a failed import leaves the table untouched")
	assert.Equal(t, "tienda.csv", table.SourceName())
}

func TestAddProductUsesSuggestion(t *testing.T) {
	service := newInventoryService(&recordingFactory{}, new(MockSymbolRenderer))
	table := inventory.NewTable()

	_, err := service.AddProduct(table, "Shirt", "")
	assert.True(t, errors.HasCode(err, errors.CodeValidationError), "adding requires an imported inventory")

	importCSV(t, service, table, "Producto,EAN\nShirt Red - M,8437000000013\n")

	suggestion, err := service.Suggest(table)
	require.NoError(t, err)
	assert.Equal(t, "8437000000020", suggestion)

	row, err := service.AddProduct(table, "Shirt Red - L", "  ")
	require.NoError(t, err)
	assert.Equal(t, inventory.Row{Product: "Shirt Red - L", EAN: "8437000000020"}, *row)

	_, err = service.AddProduct(table, "Hat", "0437000000017")
	assert.True(t, errors.HasCode(err, errors.CodeValidationError), "typed codes need a correct check digit")

	row, err = service.AddProduct(table, "Hat", "0437000000011")
	require.NoError(t, err)
	assert.Equal(t, "0437000000011", row.EAN)

	_, err = service.AddProduct(table, "Shirt Red - L", "")
	assert.True(t, errors.HasCode(err, errors.CodeValidationError))
	_, err = service.AddProduct(table, "Other", "8437000000013")
	assert.True(t, errors.HasCode(err, errors.CodeValidationError))
	assert.Equal(t, 3, table.Len())
}

func TestExportNamesFileAfterSource(t *testing.T) {
	service := newInventoryService(&recordingFactory{}, new(MockSymbolRenderer))
	table := inventory.NewTable()

	_, err := service.Export(table)
	assert.True(t, errors.HasCode(err, errors.CodeValidationError))

	importCSV(t, service, table, "Producto,EAN\nShirt Red - M,8437000000013\n")
	file, err := service.Export(table)
	require.NoError(t, err)
	assert.Equal(t, "tienda_20261015.csv", file.Name)
	assert.Equal(t, ContentTypeCSV, file.ContentType)
	assert.Equal(t, "Producto,EAN\nShirt Red - M,8437000000013\n", string(file.Data))
}

func TestRenderLabelsSelection(t *testing.T) {
	renderer := new(MockSymbolRenderer)
	renderer.On("Render", "8437000000013").Return(symbolImage(), nil)
	factory := &recordingFactory{}
	service := newInventoryService(factory, renderer)
	table := inventory.NewTable()
	importCSV(t, service, table, "Producto,EAN\nA,8437000000013\nB,8437000000020\nC,8437000000037\nD,8437000000044\n")

	file, failures, err := service.RenderLabels(table, []string{"A", "A"})
	require.NoError(t, err)
	assert.Empty(t, failures)
	assert.Equal(t, LabelsPDFName, file.Name)
	assert.Equal(t, 1, factory.last().pages, "repeated selections print once")

	_, _, err = service.RenderLabels(table, nil)
	assert.True(t, errors.HasCode(err, errors.CodeValidationError))

	_, _, err = service.RenderLabels(table, []string{"A", "B", "C", "D"})
	assert.True(t, errors.HasCode(err, errors.CodeValidationError), "selection above the limit")

	_, _, err = service.RenderLabels(table, []string{"Z"})
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))
}

func TestImportKeepsLegacyRows(t *testing.T) {
	renderer := new(MockSymbolRenderer)
	service := newInventoryService(&recordingFactory{}, renderer)
	table := inventory.NewTable()

	result := importCSV(t, service, table, "Producto,EAN\nShirt Red - M,8437000000013\nOld Hat,LEGACY-7\nScarf,\n")
	assert.Equal(t, &ImportResult{Source: "tienda.csv", Rows: 3, Legacy: 2}, result)

	row, err := service.AddProduct(table, "Shirt Red - L", "")
	require.NoError(t, err)
	assert.Equal(t, "8437000000020", row.EAN)
}

// A legacy row reaches the real barcode renderer and is reported on its own,
// while the valid row still prints.
func TestRenderLabelsReportsLegacyRows(t *testing.T) {
	labels := NewLabelService(barcode.NewEAN13Renderer(barcode.DefaultOptions()), pdf.Factory{})
	service := NewInventoryService(excel.NewCodec(excel.DefaultExcelConfig()), labels, InventoryOptions{
		Prefix:       "84370000",
		MaxSelection: 10,
		Sheet:        layout.A4Grid(),
	}).WithClock(fixedClock)
	table := inventory.NewTable()
	importCSV(t, service, table, "Producto,EAN\nShirt Red - M,8437000000013\nOld Hat,LEGACY-7\n")

	file, failures, err := service.RenderLabels(table, []string{"Shirt Red - M", "Old Hat"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF-")))
	require.Len(t, failures, 1)
	assert.Equal(t, "Old Hat", failures[0].Caption)
	assert.Equal(t, "LEGACY-7", failures[0].Code)

	_, failures, err = service.RenderLabels(table, []string{"Old Hat"})
	assert.True(t, errors.HasCode(err, errors.CodeRenderFailure))
	assert.Len(t, failures, 1)
}

// The whole inventory flow with the real spreadsheet, barcode and PDF adapters.
func TestInventoryEndToEnd(t *testing.T) {
	labels := NewLabelService(barcode.NewEAN13Renderer(barcode.DefaultOptions()), pdf.Factory{})
	service := NewInventoryService(excel.NewCodec(excel.DefaultExcelConfig()), labels, InventoryOptions{
		Prefix:       "84370000",
		MaxSelection: 10,
		Sheet:        layout.A4Grid(),
	}).WithClock(fixedClock)
	table := inventory.NewTable()

	var upload bytes.Buffer
	require.NoError(t, excel.NewDataWriter().WriteInventory(&upload, "inventario.xlsx", []inventory.Row{
		{Product: "Shirt Red - M", EAN: "8437000000013"},
	}))
	_, err := service.Import(table, &upload, "inventario.xlsx")
	require.NoError(t, err)

	row, err := service.AddProduct(table, "Shirt Red - L", "")
	require.NoError(t, err)
	assert.Equal(t, "8437000000020", row.EAN)

	file, failures, err := service.RenderLabels(table, []string{"Shirt Red - M", "Shirt Red - L"})
	require.NoError(t, err)
	assert.Empty(t, failures)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF-")))

	export, err := service.Export(table)
	require.NoError(t, err)
	assert.Equal(t, "inventario_20261015.xlsx", export.Name)
	assert.Equal(t, ContentTypeXLSX, export.ContentType)

	back, err := excel.NewCodec(excel.DefaultExcelConfig()).ReadInventory(bytes.NewReader(export.Data), export.Name)
	require.NoError(t, err)
	assert.Equal(t, table.Rows(), back)
}
