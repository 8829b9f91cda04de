package core

import (
	"encoding/csv"
	"errors"
	"strings"
	"testing"
)

func TestEscapeField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Acme", "Acme"},
		{"empty", "", ""},
		{"comma", "Acme, Inc.", `"Acme, Inc."`},
		{"quote", `Say "hi"`, `"Say ""hi"""`},
		{"newline", "line1\nline2", "\"line1\nline2\""},
		{"carriage return", "a\rb", "\"a\rb\""},
		{"leading space kept", " x", " x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeField(tt.input); got != tt.want {
				t.Errorf("EscapeField(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEncodeLine_RoundTrip(t *testing.T) {
	rec := SupplierRecord{
		SupplierID:        42,
		SupplierName:      "Acme, Inc.",
		ContactName:       `Jane "JD" Doe`,
		ContactPhone:      "555-0100",
		ContactEmail:      "jane@acme.test",
		Address:           "1 Main St\nSuite 2",
		City:              "Springfield",
		State:             "IL",
		PostalCode:        "0",
		Country:           "US",
		TaxIdentification: "TX,1",
	}

	line := EncodeLine(&rec)

	fields, err := csv.NewReader(strings.NewReader(line)).Read()
	if err != nil {
		t.Fatalf("re-split failed: %v", err)
	}

	want := []string{
		"42", "Acme, Inc.", `Jane "JD" Doe`, "555-0100", "jane@acme.test",
		"1 Main St\nSuite 2", "Springfield", "IL", "0", "US", "TX,1",
	}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d: %q", len(fields), len(want), fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("field %d = %q, want %q", i, fields[i], want[i])
		}
	}
}

func TestArraySerializer_Serialize(t *testing.T) {
	s := NewArraySerializer(0)
	if s.MaxLineBytes != DefaultMaxLineBytes {
		t.Fatalf("MaxLineBytes = %d, want default", s.MaxLineBytes)
	}

	records := []SupplierRecord{
		{SupplierID: 1, SupplierName: "Acme, Inc.", PostalCode: "0"},
		{SupplierID: 2, SupplierName: "Beta", PostalCode: "123"},
	}

	p, err := s.Serialize(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Rows != 2 {
		t.Errorf("Rows = %d, want 2", p.Rows)
	}

	lines, ok := p.Value.([]string)
	if !ok {
		t.Fatalf("Value is %T, want []string", p.Value)
	}
	if lines[0] != `1,"Acme, Inc.",,,,,,,0,,` {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != `2,Beta,,,,,,,123,,` {
		t.Errorf("line 1 = %q", lines[1])
	}
	if s.Cast() != "text[]" {
		t.Errorf("Cast = %q", s.Cast())
	}
}

func TestArraySerializer_RecordTooLarge(t *testing.T) {
	s := NewArraySerializer(32)
	records := []SupplierRecord{
		{SupplierID: 1, SupplierName: "short"},
		{SupplierID: 9, Address: strings.Repeat("x", 64)},
	}

	_, err := s.Serialize(records)
	if !errors.Is(err, ErrRecordTooLarge) {
		t.Fatalf("error = %v, want ErrRecordTooLarge", err)
	}
	if !strings.Contains(err.Error(), "supplier 9") {
		t.Errorf("error should name supplier 9: %v", err)
	}
}

func TestTableSerializer_Serialize(t *testing.T) {
	s := &TableSerializer{RowType: "public.supplier_row"}
	records := []SupplierRecord{
		{SupplierID: 1, SupplierName: "Acme", PostalCode: "0"},
		{SupplierID: 2, SupplierName: "Beta", PostalCode: "77"},
	}

	p, err := s.Serialize(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, ok := p.Value.([]SupplierRow)
	if !ok {
		t.Fatalf("Value is %T, want []SupplierRow", p.Value)
	}
	if p.Rows != 2 || rows[1].SupplierID != 2 || rows[1].PostalCode != "77" {
		t.Errorf("unexpected rows: %+v", rows)
	}
	if got := s.Cast(); got != `"public"."supplier_row"[]` {
		t.Errorf("Cast = %q", got)
	}
}

func TestNewSerializer(t *testing.T) {
	tests := []struct {
		kind     string
		wantKind string
		wantErr  bool
	}{
		{"array", StrategyArray, false},
		{"", StrategyArray, false},
		{" TABLE ", StrategyTable, false},
		{"bulkcopy", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			s, err := NewSerializer(tt.kind, 4000, "supplier_row")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Kind() != tt.wantKind {
				t.Errorf("Kind = %q, want %q", s.Kind(), tt.wantKind)
			}
		})
	}
}
