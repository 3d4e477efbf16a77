package ingestion

import (
	"fmt"

	"github.com/extrame/xls"
)

// Grid is a rectangular view of one worksheet: Grid[row][col] is the cell
// text, "" for cells the file leaves empty. Row 0 is real data, not a header.
type Grid [][]string

// Cell returns the cell text at (row, col), or "" when the coordinates fall
// outside the grid. Report rows are ragged in the source file, so lookups
// must be tolerant.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Row returns the cells of one row, or nil when the index is out of range.
func (g Grid) Row(row int) []string {
	if row < 0 || row >= len(g) {
		return nil
	}
	return g[row]
}

// LoadWorkbookGrid opens a legacy binary .xls file and materializes its first
// sheet as a Grid. The exchange publishes reports in the old BIFF format, so
// this goes through the xls reader rather than an xlsx one.
func LoadWorkbookGrid(path string) (Grid, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	grid := make(Grid, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		last := row.LastCol()
		cells := make([]string, last)
		for c := row.FirstCol(); c < last; c++ {
			cells[c] = row.Col(c)
		}
		grid = append(grid, cells)
	}
	return grid, nil
}
