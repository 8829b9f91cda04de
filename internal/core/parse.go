package core

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Upload column headers, matched case-insensitively.
const (
	ColSupplierID        = "Supplier_ID"
	ColSupplierName      = "Supplier_Name"
	ColContactName       = "Contact_Name"
	ColContactPhone      = "Contact_Phone"
	ColContactEmail      = "Contact_Email"
	ColAddress           = "Address"
	ColCity              = "City"
	ColState             = "State"
	ColPostalCode        = "Postal_Code"
	ColCountry           = "Country"
	ColTaxIdentification = "Tax_Identification"
)

// HeaderIndex maps lowercased column names to their position in a row.
type HeaderIndex map[string]int

// MakeHeaderIndex builds a HeaderIndex from a header row.
// Duplicate names keep the first occurrence.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if key == "" {
			continue
		}
		if _, seen := idx[key]; !seen {
			idx[key] = i
		}
	}
	return idx
}

// Get returns the cell for column name, or "" when the column is absent or
// the row is short.
func (h HeaderIndex) Get(row []string, name string) string {
	i, ok := h[strings.ToLower(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// DroppedRow identifies a data row discarded by the identifier filter.
type DroppedRow struct {
	Line int
	Raw  string
}

// ParseSuppliers reads a header-led CSV stream and returns one record per data
// row with a non-zero Supplier_ID, in file order. Text fields are bound as-is;
// trimming and postal code coercion are left to NormalizeRecord.
func ParseSuppliers(r io.Reader) ([]SupplierRecord, error) {
	records, _, err := parseSuppliers(r)
	return records, err
}

func parseSuppliers(r io.Reader) ([]SupplierRecord, []DroppedRow, error) {
	if r == nil {
		return nil, nil, ErrNoFile
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, nil, ErrEmptyUpload
	}
	if !utf8.Valid(data) {
		return nil, nil, ErrEncoding
	}
	data = trimQuotedPadding(data)

	// Input is already valid UTF-8, so the BOM decoder only strips the mark.
	src := transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(transform.Nop))

	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrEmptyUpload
	}
	if err != nil {
		return nil, nil, malformed(err)
	}
	idx := MakeHeaderIndex(header)

	var (
		records []SupplierRecord
		dropped []DroppedRow
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, malformed(err)
		}

		rec := bindRecord(idx, row)
		if rec.SupplierID == 0 {
			line, _ := cr.FieldPos(0)
			dropped = append(dropped, DroppedRow{Line: line, Raw: idx.Get(row, ColSupplierID)})
			continue
		}
		records = append(records, rec)
	}

	return records, dropped, nil
}

func bindRecord(idx HeaderIndex, row []string) SupplierRecord {
	return SupplierRecord{
		SupplierID:        parseSupplierID(idx.Get(row, ColSupplierID)),
		SupplierName:      idx.Get(row, ColSupplierName),
		ContactName:       idx.Get(row, ColContactName),
		ContactPhone:      idx.Get(row, ColContactPhone),
		ContactEmail:      idx.Get(row, ColContactEmail),
		Address:           idx.Get(row, ColAddress),
		City:              idx.Get(row, ColCity),
		State:             idx.Get(row, ColState),
		PostalCode:        idx.Get(row, ColPostalCode),
		Country:           idx.Get(row, ColCountry),
		TaxIdentification: idx.Get(row, ColTaxIdentification),
	}
}

var utf8BOM = []byte("\xef\xbb\xbf")

// trimQuotedPadding drops spaces and tabs between a closing quote and the
// next delimiter or line end, which encoding/csv rejects as a bare quote.
// Quoted content and line breaks are left untouched, so FieldPos line
// numbers still match the upload.
func trimQuotedPadding(data []byte) []byte {
	out := make([]byte, 0, len(data))
	i := 0
	if bytes.HasPrefix(data, utf8BOM) {
		out = append(out, utf8BOM...)
		i = len(utf8BOM)
	}

	fieldStart, quoted := true, false
	for ; i < len(data); i++ {
		c := data[i]
		out = append(out, c)

		if quoted {
			if c != '"' {
				continue
			}
			if i+1 < len(data) && data[i+1] == '"' {
				out = append(out, '"')
				i++
				continue
			}
			quoted = false
			j := i + 1
			for j < len(data) && (data[j] == ' ' || data[j] == '\t') {
				j++
			}
			if j == len(data) || data[j] == ',' || data[j] == '\n' || data[j] == '\r' {
				i = j - 1
			}
			continue
		}

		switch c {
		case ',', '\n', '\r':
			fieldStart = true
		case ' ', '\t':
		case '"':
			quoted = fieldStart
			fieldStart = false
		default:
			fieldStart = false
		}
	}
	return out
}

// parseSupplierID maps anything that is not a 32-bit integer to zero.
func parseSupplierID(s string) int32 {
	n, err := strconv.ParseInt(CleanCell(s), 10, 32)
	if err != nil {
		return 0
	}
	return int32(n)
}

func malformed(err error) error {
	return fmt.Errorf("%w: %w", ErrMalformedCSV, err)
}
