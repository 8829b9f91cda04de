package core

import (
	"strconv"
	"strings"
)

// PostalCodeFallback replaces any postal code that does not parse as a
// non-negative integer.
const PostalCodeFallback = "0"

// Correction records a value the normalizer replaced instead of rejecting.
type Correction struct {
	Field       string
	Original    string
	Replacement string
}

// CleanCell trims whitespace, a leading UTF-8 BOM and NUL bytes from a raw
// CSV cell or header.
func CleanCell(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(s)
}

// NormalizeText trims surrounding whitespace. The zero value stays "".
func NormalizeText(s string) string {
	return strings.TrimSpace(s)
}

// NormalizePostalCode returns the canonical decimal form of raw and true, or
// PostalCodeFallback and false when raw is empty, non-numeric, negative or
// outside the 32-bit range.
func NormalizePostalCode(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return PostalCodeFallback, false
	}

	n, err := strconv.ParseInt(trimmed, 10, 32)
	if err != nil || n < 0 {
		return PostalCodeFallback, false
	}

	return strconv.FormatInt(n, 10), true
}

// NormalizeRecord trims every text field of r in place and coerces the postal
// code. It never fails; substitutions are returned for the caller to log.
func NormalizeRecord(r *SupplierRecord) []Correction {
	r.SupplierName = NormalizeText(r.SupplierName)
	r.ContactName = NormalizeText(r.ContactName)
	r.ContactPhone = NormalizeText(r.ContactPhone)
	r.ContactEmail = NormalizeText(r.ContactEmail)
	r.Address = NormalizeText(r.Address)
	r.City = NormalizeText(r.City)
	r.State = NormalizeText(r.State)
	r.Country = NormalizeText(r.Country)
	r.TaxIdentification = NormalizeText(r.TaxIdentification)

	postal, ok := NormalizePostalCode(r.PostalCode)
	if ok {
		r.PostalCode = postal
		return nil
	}

	c := Correction{Field: "Postal_Code", Original: r.PostalCode, Replacement: postal}
	r.PostalCode = postal
	return []Correction{c}
}

// postalCodeInt returns the integer form of a normalized postal code.
func postalCodeInt(normalized string) int32 {
	n, err := strconv.ParseInt(normalized, 10, 32)
	if err != nil {
		return 0
	}
	return int32(n)
}
