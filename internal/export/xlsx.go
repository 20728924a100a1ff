package export

import (
	"fmt"

	"github.com/san-kum/radar/internal/radar"
	"github.com/xuri/excelize/v2"
)

// Sheet is the worksheet holding exported chart data.
const Sheet = "Sheet1"

// Workbook lays data out as a name/value table with a native radar chart
// next to it. The caller owns the returned file.
func Workbook(title string, data []radar.DataPoint, maxValue int) (*excelize.File, error) {
	f := excelize.NewFile()

	rows := [][]any{{"Name", "Value"}}
	for _, p := range data {
		rows = append(rows, []any{p.Name, p.Value})
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				_ = f.Close()
				return nil, err
			}
			if err := f.SetCellValue(Sheet, cell, v); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("set %s: %w", cell, err)
			}
		}
	}

	if len(data) == 0 {
		return f, nil
	}

	last := len(data) + 1
	upper := float64(maxValue)
	lower := 0.0
	chart := &excelize.Chart{
		Type: excelize.Radar,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", Sheet),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", Sheet, last),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", Sheet, last),
		}},
		Title:  []excelize.RichTextRun{{Text: title}},
		YAxis:  excelize.ChartAxis{Maximum: &upper, Minimum: &lower},
		Legend: excelize.ChartLegend{Position: "none"},
	}
	if err := f.AddChart(Sheet, "D2", chart); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("add radar chart: %w", err)
	}
	return f, nil
}

// SaveXLSX writes Workbook output to path.
func SaveXLSX(path, title string, data []radar.DataPoint, maxValue int) error {
	f, err := Workbook(title, data, maxValue)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
