package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// US Letter geometry in points.
const (
	pageWidth    = 612.0
	pageHeight   = 792.0
	marginLeft   = 50.0
	marginRight  = 50.0
	marginTop    = 50.0
	marginBottom = 50.0
	usableWidth  = pageWidth - marginLeft - marginRight
)

// Vertical advances in points. Rows use a fixed pitch and page breaks are
// decided against conservative fixed heights, so a row or section header is
// never split across pages.
const (
	titleAdvance      = 24.0
	subtitleAdvance   = 20.0
	ruleAdvance       = 16.0
	headerAdvance     = 16.0
	headerRuleAdvance = 8.0
	sectionAdvance    = 18.0
	rowAdvance        = 16.0
	sectionGap        = 8.0
	rowNeeded         = 18.0
	sectionNeeded     = 30.0
)

// pdfWriter tracks a top-down cursor over an fpdf document.
type pdfWriter struct {
	doc     *fpdf.Fpdf
	cursorY float64
}

func newPDFWriter() *pdfWriter {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetAutoPageBreak(false, 0)
	w := &pdfWriter{doc: doc}
	w.beginPage()
	return w
}

func (w *pdfWriter) beginPage() {
	w.doc.AddPage()
	w.cursorY = marginTop
}

func (w *pdfWriter) checkPageBreak(needed float64) {
	if w.cursorY+needed > pageHeight-marginBottom {
		w.beginPage()
	}
}

func (w *pdfWriter) setFont(size float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	w.doc.SetFont("Helvetica", style, size)
}

// textLeft draws with the glyph top at the cursor, so the baseline sits one
// font size below it.
func (w *pdfWriter) textLeft(text string, x, fontSize float64, bold bool) {
	w.setFont(fontSize, bold)
	w.doc.Text(x, w.cursorY+fontSize, text)
}

func (w *pdfWriter) textRight(text string, rightEdge, fontSize float64, bold bool) {
	w.setFont(fontSize, bold)
	w.doc.Text(rightEdge-w.doc.GetStringWidth(text), w.cursorY+fontSize, text)
}

func (w *pdfWriter) rule(y float64) {
	w.doc.SetDrawColor(179, 179, 179)
	w.doc.SetLineWidth(0.5)
	w.doc.Line(marginLeft, y, pageWidth-marginRight, y)
}

// generatePDF renders the report to a paginated US Letter document: title,
// subtitle, right-aligned column headers over a label column taking half the
// usable width, then sections of rows with total rows set bold, indentation
// removed, and a rule drawn beneath.
func generatePDF(report *domain.Report) ([]byte, error) {
	w := newPDFWriter()

	columnCount := len(report.ColumnHeaders)
	if columnCount < 1 {
		columnCount = 1
	}
	labelWidth := usableWidth * 0.5
	valueColumnWidth := (usableWidth - labelWidth) / float64(columnCount)
	columnRightEdge := func(i int) float64 {
		return marginLeft + labelWidth + float64(i+1)*valueColumnWidth
	}

	w.textLeft(report.Title, marginLeft, 18, true)
	w.cursorY += titleAdvance

	w.textLeft(report.Subtitle, marginLeft, 11, false)
	w.cursorY += subtitleAdvance

	w.rule(w.cursorY)
	w.cursorY += ruleAdvance

	w.textLeft("Account", marginLeft, 9, true)
	for i, header := range report.ColumnHeaders {
		w.textRight(header, columnRightEdge(i)-4, 9, true)
	}
	w.cursorY += headerAdvance

	w.rule(w.cursorY)
	w.cursorY += headerRuleAdvance

	for _, section := range report.Sections {
		w.checkPageBreak(sectionNeeded)

		if section.Title != "" {
			w.textLeft(section.Title, marginLeft, 11, true)
			w.cursorY += sectionAdvance
		}

		for _, row := range section.Rows {
			w.checkPageBreak(rowNeeded)

			indent := 10.0
			if row.IsTotal {
				indent = 0
			}
			w.textLeft(row.Label, marginLeft+indent, 10, row.IsTotal)
			for i, value := range row.Values {
				w.textRight(formatCurrency(value), columnRightEdge(i)-4, 10, row.IsTotal)
			}
			w.cursorY += rowAdvance

			if row.IsTotal {
				w.rule(w.cursorY - 4)
				w.cursorY += 4
			}
		}

		w.cursorY += sectionGap
	}

	var buf bytes.Buffer
	if err := w.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
