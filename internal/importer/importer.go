// Package importer provides CSV and Excel import functionality for cut lists.
// It supports automatic delimiter detection, flexible column mapping,
// case-insensitive header recognition (English and French), unit-suffixed
// numbers, and quantity expansion into individual pieces.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/BoardCut/internal/model"
)

// DefaultThickness is used for rows that leave the thickness empty.
const DefaultThickness = 16.0

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Pieces   []model.Piece
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name      int
	Width     int
	Height    int
	Thickness int
	Quantity  int
}

// positionalMapping is the layout of a cut list without a recognised header:
// name, width, (unused), height, thickness, quantity.
var positionalMapping = ColumnMapping{
	Name:      0,
	Width:     1,
	Height:    3,
	Thickness: 4,
	Quantity:  5,
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":      {"name", "label", "part", "part name", "description", "desc", "piece", "item", "nom", "désignation", "designation"},
	"width":     {"width", "w", "length", "len", "largeur", "longueur", "dim1", "dimension 1"},
	"height":    {"height", "h", "depth", "d", "hauteur", "profondeur", "dim2", "dimension 2"},
	"thickness": {"thickness", "thick", "t", "épaisseur", "epaisseur", "ep", "ép"},
	"quantity":  {"quantity", "qty", "count", "num", "amount", "pcs", "pieces", "quantité", "quantite", "qté", "qte"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Name:      -1,
		Width:     -1,
		Height:    -1,
		Thickness: -1,
		Quantity:  -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		role := roleFor(normalized)
		if role == "" {
			continue
		}
		isHeader = true
		switch role {
		case "name":
			setOnce(&mapping.Name, i)
		case "width":
			setOnce(&mapping.Width, i)
		case "height":
			setOnce(&mapping.Height, i)
		case "thickness":
			setOnce(&mapping.Thickness, i)
		case "quantity":
			setOnce(&mapping.Quantity, i)
		}
	}

	if !isHeader {
		return positionalMapping, false
	}
	return mapping, true
}

func roleFor(normalized string) string {
	for role, aliases := range headerAliases {
		for _, alias := range aliases {
			if normalized == alias {
				return role
			}
		}
	}
	return ""
}

func setOnce(dst *int, i int) {
	if *dst == -1 {
		*dst = i
	}
}

// nonNumeric matches everything that is not part of a plain decimal number.
var nonNumeric = regexp.MustCompile(`[^\d.]`)

// ParseNumber extracts a positive decimal from a cell such as "600", "600mm",
// "18 mm" or "12,5". It returns false if no number remains.
func ParseNumber(s string) (float64, bool) {
	cleaned := nonNumeric.ReplaceAllString(strings.ReplaceAll(s, ",", "."), "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ExpandQuantity returns qty independent pieces. When qty > 1 each copy is
// named "Name (i/qty)".
func ExpandQuantity(name string, w, h, thickness float64, qty int) []model.Piece {
	if qty <= 1 {
		return []model.Piece{model.NewPiece(name, w, h, thickness)}
	}
	pieces := make([]model.Piece, 0, qty)
	for i := 0; i < qty; i++ {
		pieces = append(pieces, model.NewPiece(fmt.Sprintf("%s (%d/%d)", name, i+1, qty), w, h, thickness))
	}
	return pieces
}

// copySuffix matches the " (i/n)" suffix added by ExpandQuantity.
var copySuffix = regexp.MustCompile(` \((\d+)/(\d+)\)$`)

// BaseName strips the copy suffix added by ExpandQuantity and returns the
// original name together with the quantity it was expanded from.
func BaseName(name string) (string, int) {
	m := copySuffix.FindStringSubmatch(name)
	if m == nil {
		return name, 1
	}
	qty, err := strconv.Atoi(m[2])
	if err != nil {
		return name, 1
	}
	return strings.TrimSuffix(name, m[0]), qty
}

// parseRow extracts the pieces described by one row using the given column mapping.
// Returns the pieces, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, pieceCount int) ([]model.Piece, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Piece %d", pieceCount+1)
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return nil, fmt.Sprintf("%s: Missing width value", rowLabel), ""
	}
	width, ok := ParseNumber(widthStr)
	if !ok {
		return nil, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), ""
	}

	heightStr := getCell(row, mapping.Height)
	if heightStr == "" {
		return nil, fmt.Sprintf("%s: Missing height value", rowLabel), ""
	}
	height, ok := ParseNumber(heightStr)
	if !ok {
		return nil, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr), ""
	}

	var warning string
	thickness := DefaultThickness
	if thickStr := getCell(row, mapping.Thickness); thickStr != "" {
		t, ok := ParseNumber(thickStr)
		if ok {
			thickness = t
		} else {
			warning = fmt.Sprintf("%s: Invalid thickness '%s', defaulting to %g mm", rowLabel, thickStr, DefaultThickness)
		}
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		q, ok := ParseNumber(qtyStr)
		if !ok || q != math.Trunc(q) {
			return nil, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
		qty = int(q)
	}

	if width <= 0 || height <= 0 || thickness <= 0 || qty <= 0 {
		return nil, fmt.Sprintf("%s: Width, height, thickness, and quantity must be positive", rowLabel), ""
	}

	return ExpandQuantity(name, width, height, thickness, qty), "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Import dispatches on the file extension: .xlsx/.xlsm/.xls go to ImportExcel,
// .csv/.tsv/.txt to ImportCSV.
func Import(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path)
	case ".csv", ".tsv", ".txt":
		return ImportCSV(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported file type '%s'", filepath.Ext(path))}}
	}
}

// ImportCSV imports pieces from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports pieces from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports pieces from an Excel workbook.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into pieces.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
		if mapping.Thickness == -1 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("No thickness column, assuming %g mm", DefaultThickness))
		}
	} else if _, ok := ParseNumber(getCell(rows[0], mapping.Width)); !ok {
		// Unrecognised header: skip it but keep the positional mapping
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	rowCount := 0
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		pieces, errMsg, warning := parseRow(row, mapping, rowLabel, rowCount)
		rowCount++

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Pieces = append(result.Pieces, pieces...)
	}

	return result
}
