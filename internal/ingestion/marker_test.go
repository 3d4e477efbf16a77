package ingestion

import (
	"errors"
	"testing"
)

// gridWithColB builds a grid whose column B holds the given values.
func gridWithColB(values ...string) Grid {
	g := make(Grid, 0, len(values))
	for _, v := range values {
		g = append(g, []string{"", v})
	}
	return g
}

func TestLocateMarker_TableDriven(t *testing.T) {
	g := gridWithColB("x", "  Итого:  ", "итого:", "total", "итоговая строка")

	cases := []struct {
		name    string
		marker  string
		opt     LocateOptions
		want    int
		wantErr bool
	}{
		{name: "exact with trim and case fold", marker: "Итого:", opt: LocateOptions{Column: 1}, want: 1},
		{name: "start index skips earlier match", marker: "Итого:", opt: LocateOptions{Column: 1, StartIndex: 2}, want: 2},
		{name: "contains matches substring", marker: "итог", opt: LocateOptions{Column: 1, Contains: true}, want: 1},
		{name: "exact does not match substring", marker: "итог", opt: LocateOptions{Column: 1}, wantErr: true},
		{name: "never appears", marker: "ничего", opt: LocateOptions{Column: 1}, wantErr: true},
		{name: "start index past all matches", marker: "Итого:", opt: LocateOptions{Column: 1, StartIndex: 3}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LocateMarker(g, tc.marker, tc.opt)
			if tc.wantErr {
				if !errors.Is(err, ErrMarkerNotFound) {
					t.Fatalf("want ErrMarkerNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("index=%d, want %d", got, tc.want)
			}
		})
	}
}

func TestLocateMarker_ShortRowsTolerated(t *testing.T) {
	g := Grid{
		nil,            // empty row in the file
		{"only col A"}, // no column B at all
		{"", "Итого:"},
	}
	got, err := LocateMarker(g, "итого:", LocateOptions{Column: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2 {
		t.Fatalf("index=%d, want 2", got)
	}
}

func TestDataRegion(t *testing.T) {
	// Header marker at index 10, totals at index 20: region is [14, 20).
	g := make(Grid, 25)
	for i := range g {
		g[i] = []string{"", ""}
	}
	g[10] = []string{"", "Единица измерения: Метрическая тонна"}
	g[20] = []string{"", "Итого:"}

	start, end, err := DataRegion(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start != 14 || end != 20 {
		t.Fatalf("region [%d, %d), want [14, 20)", start, end)
	}
}

func TestDataRegion_MissingMarkers(t *testing.T) {
	empty := gridWithColB("a", "b", "c")
	if _, _, err := DataRegion(empty); !errors.Is(err, ErrMarkerNotFound) {
		t.Fatalf("want ErrMarkerNotFound for missing header, got %v", err)
	}

	// Header present but no totals line after the offset.
	g := make(Grid, 8)
	for i := range g {
		g[i] = []string{"", ""}
	}
	g[0] = []string{"", "единица измерения: метрическая тонна"}
	if _, _, err := DataRegion(g); !errors.Is(err, ErrMarkerNotFound) {
		t.Fatalf("want ErrMarkerNotFound for missing totals, got %v", err)
	}
}

func TestGrid_Cell(t *testing.T) {
	g := Grid{{"a", "b"}}
	if g.Cell(0, 1) != "b" {
		t.Fatalf("cell lookup failed")
	}
	if g.Cell(5, 0) != "" || g.Cell(0, 5) != "" || g.Cell(-1, -1) != "" {
		t.Fatalf("out-of-range lookups must return empty string")
	}
	if g.Row(3) != nil {
		t.Fatalf("out-of-range row must be nil")
	}
}
