// Package pdf renders an employee roster as a printable PDF.
// The roster is a single table, one row per employee, repeated header bar
// and column headings on every page.
package pdf

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-pdf/fpdf"

	"github.com/brunotome93/white-flywire-exercise/internal/domain"
)

// Exporter implements ports.RosterExporter.
type Exporter struct {
	now func() time.Time
}

// New returns an exporter stamping documents with the current time.
func New() *Exporter {
	return &Exporter{now: time.Now}
}

func (e *Exporter) ContentType() string { return "application/pdf" }
func (e *Exporter) Extension() string   { return "pdf" }

type column struct {
	title string
	frac  float64
	align string
}

var columns = []column{
	{"ID", 0.10, "R"},
	{"Name", 0.30, "L"},
	{"Position", 0.26, "L"},
	{"Hire Date", 0.16, "C"},
	{"Status", 0.18, "C"},
}

// Export writes the roster to w.
func (e *Exporter) Export(ctx context.Context, title string, employees []domain.Employee, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("{nb}")
	pdf.SetTitle(title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	marginL, marginT, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR
	widths := make([]float64, len(columns))
	for i, c := range columns {
		widths[i] = contentW * c.frac
	}

	pdf.SetHeaderFunc(func() {
		// ── Header bar ───────────────────────────────────────────────────────
		pdf.SetFillColor(30, 30, 30)
		pdf.Rect(marginL, marginT, contentW, 10, "F")
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetXY(marginL+2, marginT+1.5)
		pdf.CellFormat(contentW*0.7, 7, tr(title), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 7, "Page "+strconv.Itoa(pdf.PageNo())+" of {nb}", "", 1, "R", false, 0, "")

		// ── Column headings ──────────────────────────────────────────────────
		pdf.SetXY(marginL, marginT+13)
		pdf.SetFillColor(240, 240, 240)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "B", 8.5)
		for i, c := range columns {
			pdf.CellFormat(widths[i], 7, c.title, "1", 0, c.align, true, 0, "")
		}
		pdf.Ln(7)
	})

	stamp := e.now().Format("01/02/2006 15:04")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont("Helvetica", "I", 7.5)
		pdf.SetTextColor(130, 130, 130)
		pdf.CellFormat(contentW/2, 5, "Generated by Employee Records", "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW/2, 5, fmt.Sprintf("%d employees | %s", len(employees), stamp), "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()

	rowH := 6.5
	if len(employees) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentW, rowH, "No employees to show.", "1", 1, "C", false, 0, "")
	}
	for i, emp := range employees {
		// Alternating row background
		if i%2 == 0 {
			pdf.SetFillColor(250, 250, 250)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		if emp.Active {
			pdf.SetFont("Helvetica", "", 8.5)
		} else {
			pdf.SetFont("Helvetica", "I", 8.5)
		}
		cells := []string{
			strconv.Itoa(emp.ID),
			tr(emp.Name),
			tr(emp.Position),
			emp.HireDate.ServiceString(),
			emp.Status(),
		}
		for j, c := range columns {
			ln := 0
			if j == len(columns)-1 {
				ln = 1
			}
			pdf.CellFormat(widths[j], rowH, cells[j], "1", ln, c.align, true, 0, "")
		}
	}

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "write pdf")
	}
	return nil
}
