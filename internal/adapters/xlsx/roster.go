// Package xlsx renders an employee roster as an Excel workbook.
package xlsx

import (
	"context"
	"io"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/brunotome93/white-flywire-exercise/internal/domain"
)

// SheetName is the only sheet of the workbook.
const SheetName = "Roster"

var headings = []any{"ID", "Name", "Position", "Hire Date", "Status", "Direct Reports"}

// Exporter implements ports.RosterExporter.
type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *Exporter) Extension() string { return "xlsx" }

// Export writes a workbook with a header row and one row per employee. The
// title goes into the document properties.
func (e *Exporter) Export(ctx context.Context, title string, employees []domain.Employee, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return errors.Wrap(err, "rename sheet")
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: title, Creator: "Employee Records"}); err != nil {
		return errors.Wrap(err, "doc props")
	}

	if err := f.SetSheetRow(SheetName, "A1", &headings); err != nil {
		return errors.Wrap(err, "header row")
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1E1E1E"}, Pattern: 1},
	})
	if err != nil {
		return errors.Wrap(err, "header style")
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headings))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return errors.Wrap(err, "apply header style")
	}

	for i, emp := range employees {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "cell name")
		}
		row := []any{
			emp.ID,
			emp.Name,
			emp.Position,
			emp.HireDate.ServiceString(),
			emp.Status(),
			joinIDs(emp.DirectReports),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return errors.Wrapf(err, "row %d", i+2)
		}
	}

	for col, width := range map[string]float64{"A": 8, "B": 28, "C": 24, "D": 12, "E": 10, "F": 18} {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return errors.Wrap(err, "column width")
		}
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return errors.Wrap(err, "freeze header")
	}
	if len(employees) > 0 {
		ref := "A1:" + lastCol + strconv.Itoa(len(employees)+1)
		if err := f.AutoFilter(SheetName, ref, nil); err != nil {
			return errors.Wrap(err, "auto filter")
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "write xlsx")
	}
	return nil
}
