package core

// serialize.go turns an import batch into the single parameter bound to the
// bulk import procedure. Two encodings are supported:
//
//   - array: one escaped CSV line per record, bound as text[]. The procedure
//     re-splits each line, so every field that could break the split is
//     quote-wrapped.
//   - table: one composite value per record, bound as an array of the
//     registered row type.
//
// Both keep the batch order: slot i of the payload is record i.

import (
	"fmt"
	"strconv"
	"strings"
)

// Bulk strategies.
const (
	StrategyArray = "array"
	StrategyTable = "table"
)

// DefaultMaxLineBytes is the largest array element the import procedure
// accepts.
const DefaultMaxLineBytes = 4000

// Payload is a serialized batch ready to bind as one statement parameter.
type Payload struct {
	Value any
	Rows  int
}

// BatchSerializer encodes a batch for the bulk import procedure.
type BatchSerializer interface {
	Kind() string
	Serialize(records []SupplierRecord) (Payload, error)
	// Cast is the SQL type the parameter is cast to, e.g. "text[]".
	Cast() string
}

// NewSerializer returns the serializer for kind.
// rowType is the composite type name used by the table strategy.
func NewSerializer(kind string, maxLineBytes int, rowType string) (BatchSerializer, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case StrategyArray, "":
		return NewArraySerializer(maxLineBytes), nil
	case StrategyTable:
		if rowType == "" {
			return nil, fmt.Errorf("table strategy requires a row type")
		}
		return &TableSerializer{RowType: rowType}, nil
	default:
		return nil, fmt.Errorf("unknown bulk strategy %q", kind)
	}
}

// ArraySerializer encodes each record as one delimited line.
type ArraySerializer struct {
	MaxLineBytes int
}

// NewArraySerializer returns an ArraySerializer capped at maxLineBytes, or at
// DefaultMaxLineBytes when maxLineBytes is not positive.
func NewArraySerializer(maxLineBytes int) *ArraySerializer {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}
	return &ArraySerializer{MaxLineBytes: maxLineBytes}
}

func (s *ArraySerializer) Kind() string { return StrategyArray }

func (s *ArraySerializer) Cast() string { return "text[]" }

// Serialize fails with ErrRecordTooLarge on the first line over the cap.
// Lines are never truncated.
func (s *ArraySerializer) Serialize(records []SupplierRecord) (Payload, error) {
	lines := make([]string, 0, len(records))
	for i := range records {
		line := EncodeLine(&records[i])
		if len(line) > s.MaxLineBytes {
			return Payload{}, tooLargeError(records[i].SupplierID, len(line), s.MaxLineBytes)
		}
		lines = append(lines, line)
	}
	return Payload{Value: lines, Rows: len(lines)}, nil
}

// EncodeLine renders r as one CSV line in column order: id, name, contact,
// phone, email, address, city, state, postal code, country, tax id.
func EncodeLine(r *SupplierRecord) string {
	fields := [...]string{
		strconv.FormatInt(int64(r.SupplierID), 10),
		r.SupplierName,
		r.ContactName,
		r.ContactPhone,
		r.ContactEmail,
		r.Address,
		r.City,
		r.State,
		r.PostalCode,
		r.Country,
		r.TaxIdentification,
	}

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(EscapeField(f))
	}
	return b.String()
}

// EscapeField quotes s when it contains a comma, quote or line break,
// doubling any inner quotes. Other values are returned unchanged.
func EscapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\r\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// SupplierRow mirrors the store's composite row type. Field order must match
// the type definition.
type SupplierRow struct {
	SupplierID        int32
	SupplierName      string
	ContactName       string
	ContactPhone      string
	ContactEmail      string
	Address           string
	City              string
	State             string
	PostalCode        string
	Country           string
	TaxIdentification string
}

// TableSerializer encodes each record as a SupplierRow.
type TableSerializer struct {
	RowType string
}

func (s *TableSerializer) Kind() string { return StrategyTable }

func (s *TableSerializer) Cast() string { return QuoteIdentifier(s.RowType) + "[]" }

func (s *TableSerializer) Serialize(records []SupplierRecord) (Payload, error) {
	rows := make([]SupplierRow, len(records))
	for i, r := range records {
		rows[i] = SupplierRow(r)
	}
	return Payload{Value: rows, Rows: len(rows)}, nil
}
