package app

import (
	"path/filepath"
	"strings"
	"time"
)

// Download names and defaults used when a table has no source file yet.
const (
	DefaultInventoryName = "inventario.xlsx"
	DefaultHistoryName   = "codigos_unicos_historial.xlsx"
	LabelsPDFName        = "etiquetas.pdf"
	CodeCardsPDFName     = "codigos_unicos_entradas.pdf"
)

// Content types for the files handed back to the user.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypePDF  = "application/pdf"
)

// File is a generated document ready to be downloaded or written to disk.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Clock returns the current time; services take one so file names are reproducible in tests.
type Clock func() time.Time

// datedName turns "inventario.xlsx" into "inventario_20261015.xlsx".
func datedName(source, fallback string, now time.Time) string {
	stem, ext := splitName(source, fallback)
	return stem + "_" + now.Format("20060102") + ext
}

// updatedName turns "historial.xlsx" into "historial_actualizado_20261015_093000.xlsx".
func updatedName(source, fallback string, now time.Time) string {
	stem, ext := splitName(source, fallback)
	return stem + "_actualizado_" + now.Format("20060102_150405") + ext
}

func splitName(source, fallback string) (string, string) {
	name := filepath.Base(strings.TrimSpace(source))
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = fallback
	}
	ext := filepath.Ext(name)
	if ext == "" {
		ext = filepath.Ext(fallback)
	}
	return strings.TrimSuffix(name, filepath.Ext(name)), ext
}

func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return ContentTypeCSV
	case ".pdf":
		return ContentTypePDF
	default:
		return ContentTypeXLSX
	}
}
