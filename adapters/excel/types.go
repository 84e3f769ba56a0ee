package excel

// RawRowData represents a row of raw spreadsheet data keyed by header
type RawRowData map[string]string

// TableData represents the first sheet of an uploaded file
type TableData struct {
	Headers []string     // Column headers, trimmed
	Rows    []RawRowData // Data rows
}

// HistoryColumn is the header written for issued ticket codes
const HistoryColumn = "Codigo_Unico"

const (
	fileTypeXLSX = "xlsx"
	fileTypeCSV  = "csv"
)
