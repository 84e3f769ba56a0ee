package excel

import (
	"encoding/csv"
	"fmt"
	"io"

	"eantienda/domain/inventory"
	"eantienda/internal/errors"
	"eantienda/ports"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// DataWriter serializes tables to Excel or CSV, chosen by file extension
type DataWriter struct{}

// NewDataWriter creates a writer
func NewDataWriter() *DataWriter {
	return &DataWriter{}
}

var _ ports.TableWriter = (*DataWriter)(nil)

// WriteInventory writes the product table with Producto/EAN headers
func (w *DataWriter) WriteInventory(dst io.Writer, filename string, rows []inventory.Row) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{row.Product, row.EAN})
	}
	return w.write(dst, filename, []string{inventory.ProductColumn, inventory.EANColumn}, records)
}

// WriteHistory writes issued codes in a single Codigo_Unico column
func (w *DataWriter) WriteHistory(dst io.Writer, filename string, codes []string) error {
	records := make([][]string, 0, len(codes))
	for _, code := range codes {
		records = append(records, []string{code})
	}
	return w.write(dst, filename, []string{HistoryColumn}, records)
}

func (w *DataWriter) write(dst io.Writer, filename string, headers []string, records [][]string) error {
	kind, err := fileType(filename)
	if err != nil {
		return err
	}
	if kind == fileTypeCSV {
		return writeCSV(dst, headers, records)
	}
	return writeExcel(dst, headers, records)
}

func writeCSV(dst io.Writer, headers []string, records [][]string) error {
	cw := csv.NewWriter(dst)
	if err := cw.Write(headers); err != nil {
		return errors.Wrap(err, "failed to write CSV header")
	}
	if err := cw.WriteAll(records); err != nil {
		return errors.Wrap(err, "failed to write CSV rows")
	}
	return nil
}

// writeExcel stores every value as text so identifiers keep their leading zeros
func writeExcel(dst io.Writer, headers []string, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellStr(sheetName, cell, h); err != nil {
			return errors.Wrapf(err, "failed to write header %s", h)
		}
	}

	for r, record := range records {
		rowIdx := r + 2
		for c, v := range record {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err := f.SetCellStr(sheetName, cell, v); err != nil {
				return errors.Wrapf(err, "failed to write cell %s", cell)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "B", 24); err != nil {
		return errors.Wrap(err, "failed to size columns")
	}
	if _, err := f.WriteTo(dst); err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to write workbook (%d rows)", len(records)))
	}
	return nil
}

// Codec reads and writes tables with one shared configuration
type Codec struct {
	*DataReader
	*DataWriter
}

var _ ports.TableCodec = (*Codec)(nil)

// NewCodec creates a codec for the given header aliases
func NewCodec(config ExcelConfig) *Codec {
	return &Codec{DataReader: NewDataReader(config), DataWriter: NewDataWriter()}
}
