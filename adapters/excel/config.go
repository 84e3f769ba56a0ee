package excel

// ExcelConfig holds the header aliases recognised when importing spreadsheets
type ExcelConfig struct {
	ProductHeaders []string `json:"product_headers"`
	EANHeaders     []string `json:"ean_headers"`
	HistoryHeaders []string `json:"history_headers"`
	MaxRows        int      `json:"max_rows"`
}

// DefaultExcelConfig returns the aliases used by the store's spreadsheets.
// Matching is case-insensitive on trimmed header text.
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		ProductHeaders: []string{"producto"},
		EANHeaders:     []string{"ean", "codigo ean-13", "código ean-13"},
		HistoryHeaders: []string{"codigo_unico", "codigo unico", "codigo", "code"},
		MaxRows:        100000,
	}
}
