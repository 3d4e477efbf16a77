package ingestion

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDashToNull(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"", "", false},
		{"   ", "", false},
		{"-", "", false},
		{" - ", "", false},
		{"ст. Ангарск", "ст. Ангарск", true},
		{" x ", "x", true},
		{"--", "--", true}, // only a lone dash is the sentinel
	}
	for _, tc := range cases {
		got, ok := dashToNull(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("dashToNull(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestToDecimal_TableDriven(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		null    bool
		wantErr bool
	}{
		{name: "empty is null", in: "", null: true},
		{name: "dash is null", in: " - ", null: true},
		{name: "plain", in: "123.45", want: "123.45"},
		{name: "comma separator", in: "123,45", want: "123.45"},
		{name: "grouped digits with comma", in: "1 234,500000", want: "1234.500000"},
		{name: "negative", in: "-2,5", want: "-2.5"},
		{name: "integer cell", in: "6500", want: "6500"},
		{name: "garbage", in: "н/д", wantErr: true},
		{name: "two separators", in: "1,2,3", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := toDecimal(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrBadValue) {
					t.Fatalf("want ErrBadValue, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.null {
				if got.Valid {
					t.Fatalf("want null, got %v", got.Decimal)
				}
				return
			}
			want := decimal.RequireFromString(tc.want)
			if !got.Valid || !got.Decimal.Equal(want) {
				t.Fatalf("got %v (valid=%v), want %v", got.Decimal, got.Valid, want)
			}
		})
	}
}

// TestToDecimal_ExactDigits pins the no-float-round-trip property: the parsed
// value must carry the exact printed digits.
func TestToDecimal_ExactDigits(t *testing.T) {
	got, err := toDecimal("1 234,500000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Decimal.String() != "1234.5" || got.Decimal.Exponent() != -6 {
		t.Fatalf("digits not preserved: %v exp=%d", got.Decimal, got.Decimal.Exponent())
	}
	if !got.Decimal.Equal(decimal.New(1234500000, -6)) {
		t.Fatalf("value drifted: %v", got.Decimal)
	}
}

func TestToCount_TableDriven(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    int64
		null    bool
		wantErr bool
	}{
		{name: "empty is null", in: "", null: true},
		{name: "dash is null", in: "-", null: true},
		{name: "plain", in: "42", want: 42},
		{name: "grouped digits", in: "1 500", want: 1500},
		{name: "zero", in: "0", want: 0},
		{name: "negative rejected", in: "-5", wantErr: true},
		{name: "decimal rejected", in: "1,5", wantErr: true},
		{name: "garbage", in: "abc", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := toCount(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrBadValue) {
					t.Fatalf("want ErrBadValue, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.null {
				if got.Valid {
					t.Fatalf("want null, got %d", got.Int64)
				}
				return
			}
			if !got.Valid || got.Int64 != tc.want {
				t.Fatalf("got (%d, %v), want %d", got.Int64, got.Valid, tc.want)
			}
		})
	}
}

// dataRow builds a full 15-cell report row in source column order.
func dataRow(cells ...string) []string {
	row := make([]string, 15)
	copy(row, cells)
	return row
}

func TestReportRow_Snapshot(t *testing.T) {
	date := time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC)
	g := Grid{dataRow(
		"1",
		"A100ANG060F",
		"Бензин (АИ-100-К5), ст. Ангарск",
		"ст. Ангарск",
		"60,000000",
		"4 200 000,00",
		"-",
		"-",
		"70 000",
		"70 000",
		"70 000",
		"70 000",
		"-",
		"-",
		"1",
	)}

	s, err := newReportRow(g, 0).Snapshot(date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.InstrumentCode != "A100ANG060F" {
		t.Fatalf("code=%q", s.InstrumentCode)
	}
	if s.Product != "Бензин (АИ-100-К5)" {
		t.Fatalf("product=%q, want text before first comma", s.Product)
	}
	if !s.Date.Equal(date) {
		t.Fatalf("date=%v", s.Date)
	}
	if !s.DeliveryBasis.Valid || s.DeliveryBasis.String != "ст. Ангарск" {
		t.Fatalf("delivery_basis=%+v", s.DeliveryBasis)
	}
	if !s.ContractsVolumeEI.Valid || !s.ContractsVolumeEI.Decimal.Equal(decimal.RequireFromString("60")) {
		t.Fatalf("contracts_volume_ei=%+v", s.ContractsVolumeEI)
	}
	if !s.ContractsVolumeRub.Valid || !s.ContractsVolumeRub.Decimal.Equal(decimal.RequireFromString("4200000")) {
		t.Fatalf("contracts_volume_rub=%+v", s.ContractsVolumeRub)
	}
	if s.MarketChangeRub.Valid || s.MarketChangePct.Valid || s.BestOffer.Valid || s.BestBid.Valid {
		t.Fatalf("dash cells must be null: %+v", s)
	}
	if !s.MinPrice.Valid || !s.MinPrice.Decimal.Equal(decimal.RequireFromString("70000")) {
		t.Fatalf("min_price=%+v", s.MinPrice)
	}
	if !s.ContractsCount.Valid || s.ContractsCount.Int64 != 1 {
		t.Fatalf("contracts_count=%+v", s.ContractsCount)
	}
}

func TestReportRow_Snapshot_NameWithoutComma(t *testing.T) {
	g := Grid{dataRow("1", "CODE", "Нефть сырая", "", "", "", "", "", "", "", "", "", "", "", "")}
	s, err := newReportRow(g, 0).Snapshot(time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Product != "Нефть сырая" {
		t.Fatalf("product=%q, want whole name when there is no comma", s.Product)
	}
}

func TestReportRow_Snapshot_MissingKey(t *testing.T) {
	date := time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		row  []string
		date time.Time
	}{
		{name: "dash code", row: dataRow("1", "-", "Name"), date: date},
		{name: "empty name", row: dataRow("1", "CODE", ""), date: date},
		{name: "zero date", row: dataRow("1", "CODE", "Name"), date: time.Time{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newReportRow(Grid{tc.row}, 0).Snapshot(tc.date)
			if !errors.Is(err, ErrMissingKey) {
				t.Fatalf("want ErrMissingKey, got %v", err)
			}
		})
	}
}

func TestReportRow_Snapshot_BadCellNamesField(t *testing.T) {
	g := Grid{dataRow("1", "CODE", "Name", "", "abc")}
	_, err := newReportRow(g, 0).Snapshot(time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrBadValue) {
		t.Fatalf("want ErrBadValue, got %v", err)
	}
	if err == nil || err.Error() == "" || !errors.Is(err, ErrBadValue) {
		t.Fatalf("error must identify the field: %v", err)
	}
}
