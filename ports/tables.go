package ports

import (
	"io"

	"eantienda/domain/inventory"
)

// InventoryReader parses an uploaded product spreadsheet
type InventoryReader interface {
	// ReadInventory decodes rows; filename selects the format by extension
	ReadInventory(r io.Reader, filename string) ([]inventory.Row, error)
}

// HistoryReader parses an uploaded file of previously issued codes
type HistoryReader interface {
	ReadHistory(r io.Reader, filename string) ([]string, error)
}

// TableWriter serializes tables back to the format named by filename
type TableWriter interface {
	WriteInventory(w io.Writer, filename string, rows []inventory.Row) error
	WriteHistory(w io.Writer, filename string, codes []string) error
}

// TableCodec is implemented by adapters that both read and write tables
type TableCodec interface {
	InventoryReader
	HistoryReader
	TableWriter
}
