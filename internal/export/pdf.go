// Package export renders a report as a PDF data collection sheet.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/jask/taxsheet/internal/report"
)

const (
	DocumentTitle = "Income Tax Return Data Collection Sheet"

	lineHeight  = 6.0
	tableLine   = 4.5
	labelWidth  = 60.0
	pageMargin  = 15.0
	cellPadding = 1.0
)

type PDFOptions struct {
	PracticeName string
	TaxYearEnd   string
	Creator      string
}

type writer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// WritePDF renders rep as an A4 document to w.
func WritePDF(w io.Writer, rep report.Report, opts PDFOptions) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(DocumentTitle, true)
	pdf.SetAuthor(opts.PracticeName, true)
	if opts.Creator != "" {
		pdf.SetCreator(opts.Creator, true)
	}
	pdf.AliasNbPages("")

	wr := writer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	wr.header(rep, opts)
	for _, card := range rep.Cards {
		wr.card(card)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func (w writer) header(rep report.Report, opts PDFOptions) {
	pdf := w.pdf
	if opts.PracticeName != "" {
		pdf.SetFont("Helvetica", "B", 20)
		pdf.CellFormat(0, 10, w.tr(strings.ToUpper(opts.PracticeName)), "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, lineHeight, DocumentTitle, "", 1, "L", false, 0, "")
	if opts.TaxYearEnd != "" {
		pdf.CellFormat(0, lineHeight, w.tr("Year Ended "+opts.TaxYearEnd), "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 9)
	meta := "Prepared " + rep.TakenAt.Format("2 January 2006 15:04")
	if rep.Taxpayer != "" {
		meta = rep.Taxpayer + " - " + meta
	}
	pdf.CellFormat(0, lineHeight, w.tr(meta), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (w writer) card(c report.Card) {
	pdf := w.pdf
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, w.tr(c.Title), "B", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range c.Items {
		pdf.CellFormat(labelWidth, lineHeight, w.tr(it.Label), "", 0, "L", false, 0, "")
		pdf.MultiCell(0, lineHeight, w.tr(it.Value), "", "L", false)
	}
	if c.Note != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, lineHeight, w.tr(c.Note), "", "L", false)
	}
	if c.Table != nil && len(c.Table.Rows) > 0 {
		if len(c.Items) > 0 {
			pdf.Ln(2)
		}
		w.table(*c.Table)
	}
	pdf.Ln(6)
}

func (w writer) table(t report.Table) {
	pdf := w.pdf
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(t.Headers))

	size := 9.0
	if len(t.Headers) > 6 {
		size = 7
	}
	pdf.SetFont("Helvetica", "B", size)
	pdf.SetFillColor(230, 230, 230)
	w.row(t.Headers, colW, true)
	pdf.SetFont("Helvetica", "", size)
	for _, r := range t.Rows {
		w.row(r, colW, false)
	}
}

// row draws one bordered table row, wrapping each cell and breaking the
// page before the row when it would not fit.
func (w writer) row(cells []string, colW float64, fill bool) {
	pdf := w.pdf
	left, _, _, bottom := pdf.GetMargins()
	_, pageH := pdf.GetPageSize()

	wrapped := make([][]string, len(cells))
	lines := 1
	for i, cell := range cells {
		wrapped[i] = pdf.SplitText(w.tr(cell), colW-2*cellPadding)
		lines = max(lines, len(wrapped[i]))
	}
	height := float64(lines)*tableLine + cellPadding

	if pdf.GetY()+height > pageH-bottom {
		pdf.AddPage()
	}
	y := pdf.GetY()
	style := "D"
	if fill {
		style = "FD"
	}
	for i, cellLines := range wrapped {
		x := left + float64(i)*colW
		pdf.Rect(x, y, colW, height, style)
		for j, line := range cellLines {
			pdf.SetXY(x+cellPadding, y+cellPadding/2+float64(j)*tableLine)
			pdf.CellFormat(colW-2*cellPadding, tableLine, line, "", 0, "L", false, 0, "")
		}
	}
	pdf.SetXY(left, y+height)
}
