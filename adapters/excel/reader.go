package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"eantienda/domain/ean"
	"eantienda/domain/inventory"
	"eantienda/internal/errors"
	"eantienda/ports"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV uploads
type DataReader struct {
	config ExcelConfig
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ExcelConfig) *DataReader {
	return &DataReader{config: config}
}

var (
	_ ports.InventoryReader = (*DataReader)(nil)
	_ ports.HistoryReader   = (*DataReader)(nil)
)

// fileType maps a file name to the supported formats
func fileType(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return fileTypeXLSX, nil
	case ".csv":
		return fileTypeCSV, nil
	default:
		return "", errors.ValidationError(fmt.Sprintf("unsupported file type %q: only Excel (.xlsx) and CSV (.csv) files are allowed", filepath.Ext(filename)))
	}
}

// ReadData reads the first sheet of r into structured format
func (r *DataReader) ReadData(src io.Reader, filename string) (*TableData, error) {
	kind, err := fileType(filename)
	if err != nil {
		return nil, err
	}
	log.Printf("[DataReader] Starting to read %s file: %s", kind, filename)

	var rows [][]string
	switch kind {
	case fileTypeCSV:
		rows, err = r.readCSVRows(src)
	default:
		rows, err = r.readExcelRows(src)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.ValidationError("the file is empty")
	}
	if r.config.MaxRows > 0 && len(rows)-1 > r.config.MaxRows {
		return nil, errors.ValidationError(fmt.Sprintf("the file has %d rows, the limit is %d", len(rows)-1, r.config.MaxRows))
	}
	return r.processRows(rows, kind), nil
}

// readExcelRows reads every row of the first sheet regardless of its name
func (r *DataReader) readExcelRows(src io.Reader) ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.WithCode(errors.CodeValidationError, fmt.Errorf("failed to open Excel file: %w", err))
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.ValidationError("the workbook has no sheets")
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.WithCode(errors.CodeValidationError, fmt.Errorf("failed to read sheet %s: %w", sheet, err))
	}
	log.Printf("[DataReader] Sheet %q read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// readCSVRows reads CSV data, tolerating ragged rows
func (r *DataReader) readCSVRows(src io.Reader) ([][]string, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WithCode(errors.CodeValidationError, fmt.Errorf("failed to read CSV file: %w", err))
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

// processRows converts raw string rows into TableData format
func (r *DataReader) processRows(rows [][]string, kind string) *TableData {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	var dataRows []RawRowData
	for i := 1; i < len(rows); i++ {
		rowData := make(RawRowData)
		blank := true
		for j, cell := range rows[i] {
			if j < len(headers) && headers[j] != "" {
				value := strings.TrimSpace(cell)
				rowData[headers[j]] = value
				if value != "" {
					blank = false
				}
			}
		}
		if !blank {
			dataRows = append(dataRows, rowData)
		}
	}

	log.Printf("[DataReader] %s file processed (%d columns, %d rows)", strings.ToUpper(kind), len(headers), len(dataRows))
	return &TableData{Headers: headers, Rows: dataRows}
}

// findColumn returns the first header matching one of aliases, case-insensitively
func findColumn(headers []string, aliases []string) (string, bool) {
	for _, header := range headers {
		lower := strings.ToLower(header)
		for _, alias := range aliases {
			if lower == alias {
				return header, true
			}
		}
	}
	return "", false
}

// ReadInventory imports the product table. Both the product and EAN columns
// are required. Numeric identifiers are normalised to 13 digits; rows whose
// identifier is still not an EAN-13 are kept as legacy codes.
func (r *DataReader) ReadInventory(src io.Reader, filename string) ([]inventory.Row, error) {
	data, err := r.ReadData(src, filename)
	if err != nil {
		return nil, err
	}

	productCol, okProduct := findColumn(data.Headers, r.config.ProductHeaders)
	eanCol, okEAN := findColumn(data.Headers, r.config.EANHeaders)
	if !okProduct || !okEAN {
		return nil, errors.ValidationError(fmt.Sprintf("the file must contain the columns '%s' and '%s'", inventory.ProductColumn, inventory.EANColumn))
	}

	rows := make([]inventory.Row, 0, len(data.Rows))
	for i, raw := range data.Rows {
		product := raw[productCol]
		if product == "" {
			log.Printf("[DataReader] Skipping row %d without product name", i+2)
			continue
		}
		code := NormalizeEAN(raw[eanCol])
		if !ean.IsWellFormed(code) {
			log.Printf("[DataReader] Row %d (%s): keeping legacy EAN %q, it is not a %d digit number", i+2, product, raw[eanCol], ean.Length)
		}
		rows = append(rows, inventory.Row{Product: product, EAN: code})
	}
	return rows, nil
}

// NormalizeEAN undoes spreadsheet number formatting: a trailing ".0",
// exponent notation and dropped leading zeros. Text codes are only trimmed.
func NormalizeEAN(raw string) string {
	value := strings.TrimSpace(raw)
	if strings.ContainsAny(value, "eE") {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			value = strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	value = strings.TrimSuffix(value, ".0")
	if value != "" && len(value) < ean.Length && isDigits(value) {
		value = strings.Repeat("0", ean.Length-len(value)) + value
	}
	return value
}

func isDigits(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) < 0
}

// ReadHistory imports issued codes from the recognised code column, or the
// first column when no header matches.
func (r *DataReader) ReadHistory(src io.Reader, filename string) ([]string, error) {
	data, err := r.ReadData(src, filename)
	if err != nil {
		return nil, err
	}

	column, ok := findColumn(data.Headers, r.config.HistoryHeaders)
	if !ok {
		if len(data.Headers) == 0 || data.Headers[0] == "" {
			return nil, errors.ValidationError("the file must contain at least one column")
		}
		column = data.Headers[0]
		log.Printf("[DataReader] No recognised code column, using first column %q", column)
	}

	codes := make([]string, 0, len(data.Rows))
	for _, raw := range data.Rows {
		if code := raw[column]; code != "" {
			codes = append(codes, code)
		}
	}
	return codes, nil
}
