// Package inventory holds the product table a user works on during a session.
package inventory

import (
	"fmt"
	"strings"

	"eantienda/domain/ean"
	"eantienda/internal/errors"
)

// Column headers used when the table is written back to a spreadsheet.
const (
	ProductColumn = "Producto"
	EANColumn     = "EAN"
)

// Row is one product and its identifier.
type Row struct {
	Product string `json:"product"`
	EAN     string `json:"ean"`
}

// Table is the in-memory product table of one session. It is not safe for
// concurrent use; callers isolate one table per session.
type Table struct {
	rows       []Row
	byProduct  map[string]int
	byEAN      map[string]int
	sourceName string
	loaded     bool
}

// NewTable returns an empty table that has not been loaded from a file yet.
func NewTable() *Table {
	return &Table{
		byProduct: make(map[string]int),
		byEAN:     make(map[string]int),
	}
}

// Replace swaps the whole table for imported rows. When a product name
// repeats, the first row wins. Rows with legacy or blank identifiers are kept
// as they are. It returns how many rows were dropped.
func (t *Table) Replace(rows []Row, sourceName string) int {
	kept := make([]Row, 0, len(rows))
	byProduct := make(map[string]int, len(rows))
	byEAN := make(map[string]int, len(rows))

	dropped := 0
	for _, row := range rows {
		if _, dup := byProduct[row.Product]; dup {
			dropped++
			continue
		}
		byProduct[row.Product] = len(kept)
		if _, seen := byEAN[row.EAN]; !seen && row.EAN != "" {
			byEAN[row.EAN] = len(kept)
		}
		kept = append(kept, row)
	}

	t.rows = kept
	t.byProduct = byProduct
	t.byEAN = byEAN
	t.sourceName = sourceName
	t.loaded = true
	return dropped
}

// Add appends a product after checking it against the current rows. A code
// typed by hand must carry a correct check digit. The table is left untouched
// when any check fails.
func (t *Table) Add(product, code string) (Row, error) {
	product = strings.TrimSpace(product)
	code = strings.TrimSpace(code)

	if product == "" {
		return Row{}, errors.ValidationError("the product name is required")
	}
	if err := ean.Validate(code); err != nil {
		return Row{}, err
	}
	if _, dup := t.byProduct[product]; dup {
		return Row{}, errors.ValidationError(fmt.Sprintf("product %q already exists in the inventory", product))
	}
	if i, dup := t.byEAN[code]; dup {
		return Row{}, errors.ValidationError(fmt.Sprintf("EAN %s is already assigned to %q", code, t.rows[i].Product))
	}

	row := Row{Product: product, EAN: code}
	t.byProduct[product] = len(t.rows)
	t.byEAN[code] = len(t.rows)
	t.rows = append(t.rows, row)
	return row, nil
}

// Suggest proposes the next free identifier under prefix.
func (t *Table) Suggest(prefix string) (string, error) {
	return ean.Next(t.Codes(), prefix)
}

// Lookup finds the row for a product name.
func (t *Table) Lookup(product string) (Row, bool) {
	i, ok := t.byProduct[product]
	if !ok {
		return Row{}, false
	}
	return t.rows[i], true
}

// Rows returns a copy of the rows in table order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Names returns the product names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.rows))
	for i, row := range t.rows {
		names[i] = row.Product
	}
	return names
}

// Codes returns the identifiers in table order.
func (t *Table) Codes() []string {
	codes := make([]string, len(t.rows))
	for i, row := range t.rows {
		codes[i] = row.EAN
	}
	return codes
}

// Legacy counts the rows whose identifier is not a well-formed EAN-13.
func (t *Table) Legacy() int {
	n := 0
	for _, row := range t.rows {
		if !ean.IsWellFormed(row.EAN) {
			n++
		}
	}
	return n
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// SourceName is the name of the last imported file, empty before any import.
func (t *Table) SourceName() string {
	return t.sourceName
}

// Loaded reports whether a file has been imported into the table.
func (t *Table) Loaded() bool {
	return t.loaded
}
