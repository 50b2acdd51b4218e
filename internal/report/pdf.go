package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/vfg2006/salesvision-api/internal/analytics"
)

const (
	pdfMargin       = 15.0
	pdfBottomMargin = 20.0
	pdfRowHeight    = 7.0
)

type rgb struct{ R, G, B int }

var (
	purpleHeader = rgb{139, 92, 246}
	purpleStripe = rgb{245, 243, 255}
	greenHeader  = rgb{16, 185, 129}
	greenStripe  = rgb{236, 253, 245}
	textGray     = rgb{100, 100, 100}
)

type pdfTable struct {
	headers []string
	widths  []float64
	aligns  []string
	rows    [][]string
	header  rgb
	stripe  rgb
}

type pdfDocument struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func buildPDF(data *reportData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfBottomMargin)
	pdf.AliasNbPages("")

	doc := &pdfDocument{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(textGray.R, textGray.G, textGray.B)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(purpleHeader.R, purpleHeader.G, purpleHeader.B)
	pdf.CellFormat(0, 12, doc.tr(reportTitle), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(textGray.R, textGray.G, textGray.B)
	pdf.CellFormat(0, 6, doc.tr("Generated: "+data.GeneratedAt.Format("January 2, 2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	doc.section("Executive Summary")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	for _, line := range []string{
		"Total sales: " + formatMoney(data.Summary.TotalSales),
		"Records: " + strconv.Itoa(data.Summary.TotalOrders),
		"Average per sale: " + formatMoney(data.Summary.AvgOrderValue),
	} {
		pdf.CellFormat(0, 7, doc.tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	top := pdfTable{
		headers: []string{"#", "Product", "Total"},
		widths:  []float64{15, 115, 50},
		aligns:  []string{"C", "L", "R"},
		header:  purpleHeader,
		stripe:  purpleStripe,
	}
	for i, item := range data.TopProducts {
		top.rows = append(top.rows, []string{strconv.Itoa(i + 1), item.Name, formatMoney(item.Value)})
	}
	doc.section("Top 5 Products")
	doc.table(top)
	pdf.Ln(8)

	categories := pdfTable{
		headers: []string{"Category", "Total", "%"},
		widths:  []float64{100, 50, 30},
		aligns:  []string{"L", "R", "R"},
		header:  greenHeader,
		stripe:  greenStripe,
	}
	for _, item := range data.Categories {
		share := analytics.Share(item.Value, data.Summary.TotalSales)
		categories.rows = append(categories.rows, []string{item.Name, formatMoney(item.Value), share.StringFixed(1) + "%"})
	}
	doc.section("Sales by Category")
	doc.table(categories)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("erro ao gerar o PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func (d *pdfDocument) section(title string) {
	d.ensureSpace(12 + pdfRowHeight*2)
	d.pdf.SetFont("Helvetica", "B", 14)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.CellFormat(0, 10, d.tr(title), "", 1, "L", false, 0, "")
}

// table desenha a tabela com linhas zebradas e repete o cabeçalho a cada nova página
func (d *pdfDocument) table(t pdfTable) {
	d.tableHeader(t)

	d.pdf.SetFont("Helvetica", "", 10)
	for i, row := range t.rows {
		if d.ensureSpace(pdfRowHeight) {
			d.tableHeader(t)
			d.pdf.SetFont("Helvetica", "", 10)
		}

		fill := i%2 == 1
		d.pdf.SetFillColor(t.stripe.R, t.stripe.G, t.stripe.B)
		d.pdf.SetTextColor(0, 0, 0)
		for col, value := range row {
			text := d.fit(d.tr(value), t.widths[col]-2)
			d.pdf.CellFormat(t.widths[col], pdfRowHeight, text, "", 0, t.aligns[col], fill, 0, "")
		}
		d.pdf.Ln(-1)
	}
}

func (d *pdfDocument) tableHeader(t pdfTable) {
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.SetFillColor(t.header.R, t.header.G, t.header.B)
	d.pdf.SetTextColor(255, 255, 255)
	for col, header := range t.headers {
		d.pdf.CellFormat(t.widths[col], pdfRowHeight+1, d.tr(header), "", 0, t.aligns[col], true, 0, "")
	}
	d.pdf.Ln(-1)
}

// ensureSpace abre uma nova página quando height não cabe antes da margem inferior.
// Retorna true quando a página foi trocada.
func (d *pdfDocument) ensureSpace(height float64) bool {
	_, pageHeight := d.pdf.GetPageSize()
	if d.pdf.GetY()+height <= pageHeight-pdfBottomMargin {
		return false
	}
	d.pdf.AddPage()
	return true
}

// fit corta o texto para caber na largura da célula
func (d *pdfDocument) fit(text string, width float64) string {
	if d.pdf.GetStringWidth(text) <= width {
		return text
	}

	// o texto já está traduzido para cp1252, um byte por caractere
	cut := []byte(text)
	for len(cut) > 0 && d.pdf.GetStringWidth(string(cut)+"...") > width {
		cut = cut[:len(cut)-1]
	}
	return string(cut) + "..."
}
