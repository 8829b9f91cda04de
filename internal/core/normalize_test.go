package core

import "testing"

// ============================================================================
// CleanCell / NormalizeText Tests
// ============================================================================

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Supplier_ID", "Supplier_ID"},
		{"surrounding whitespace", "  City \t", "City"},
		{"leading BOM", "\ufeffSupplier_ID", "Supplier_ID"},
		{"NUL bytes", "Ci\x00ty", "City"},
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeText_Idempotent(t *testing.T) {
	inputs := []string{"", "  ", " Acme, Inc. ", "a\tb", "\n x \n"}

	for _, in := range inputs {
		once := NormalizeText(in)
		if twice := NormalizeText(once); twice != once {
			t.Errorf("NormalizeText not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

// ============================================================================
// NormalizePostalCode Tests
// ============================================================================

func TestNormalizePostalCode(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"plain digits", "12345", "12345", true},
		{"surrounding whitespace", " 123 ", "123", true},
		{"leading zeros", "007", "7", true},
		{"zero", "0", "0", true},
		{"explicit plus", "+42", "42", true},
		{"empty", "", "0", false},
		{"whitespace only", "   ", "0", false},
		{"letters", "SW1A 1AA", "0", false},
		{"zip plus four", "12345-6789", "0", false},
		{"decimal", "12.5", "0", false},
		{"negative", "-5", "0", false},
		{"overflows int32", "99999999999", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizePostalCode(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NormalizePostalCode(%q) = (%q, %v), want (%q, %v)",
					tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizeRecord(t *testing.T) {
	r := SupplierRecord{
		SupplierID:   1,
		SupplierName: "  Acme, Inc.  ",
		City:         " Springfield",
		PostalCode:   "",
		Country:      "US ",
	}

	corrections := NormalizeRecord(&r)

	if r.SupplierName != "Acme, Inc." {
		t.Errorf("SupplierName = %q", r.SupplierName)
	}
	if r.City != "Springfield" || r.Country != "US" {
		t.Errorf("City/Country not trimmed: %q / %q", r.City, r.Country)
	}
	if r.PostalCode != "0" {
		t.Errorf("PostalCode = %q, want 0", r.PostalCode)
	}
	if len(corrections) != 1 {
		t.Fatalf("got %d corrections, want 1", len(corrections))
	}
	want := Correction{Field: "Postal_Code", Original: "", Replacement: "0"}
	if corrections[0] != want {
		t.Errorf("correction = %+v, want %+v", corrections[0], want)
	}
}

func TestNormalizeRecord_ValidPostalCodeNoCorrection(t *testing.T) {
	r := SupplierRecord{SupplierID: 2, PostalCode: " 00501 "}

	if corrections := NormalizeRecord(&r); len(corrections) != 0 {
		t.Errorf("unexpected corrections: %+v", corrections)
	}
	if r.PostalCode != "501" {
		t.Errorf("PostalCode = %q, want 501", r.PostalCode)
	}
}
