package report

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/vfg2006/salesvision-api/internal/analytics"
	"github.com/vfg2006/salesvision-api/internal/domain"
)

// Ordem fixa das planilhas do relatório
const (
	SheetSummary     = "Summary"
	SheetData        = "Data"
	SheetSalespeople = "Salespeople"
	SheetRegions     = "Regions"
	SheetTemporal    = "Temporal"
	SheetProducts    = "Products"
)

var SheetOrder = []string{SheetSummary, SheetData, SheetSalespeople, SheetRegions, SheetTemporal, SheetProducts}

const totalLabel = "TOTAL"

var moneyFormat = `"$"#,##0.00`

type workbookStyles struct {
	title   int
	header  int
	money   int
	percent int
	bold    int
}

// sheetWriter escreve linhas sequenciais e guarda o primeiro erro
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (w *sheetWriter) write(values ...any) int {
	w.row++
	if w.err != nil {
		return w.row
	}

	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		w.err = err
		return w.row
	}
	w.err = w.f.SetSheetRow(w.sheet, cell, &values)
	return w.row
}

func (w *sheetWriter) blank() {
	w.row++
}

// style aplica o estilo às colunas [fromCol, toCol] (1-based) das linhas [fromRow, toRow]
func (w *sheetWriter) style(fromCol, fromRow, toCol, toRow, styleID int) {
	if w.err != nil || toRow < fromRow {
		return
	}

	start, err := excelize.CoordinatesToCellName(fromCol, fromRow)
	if err != nil {
		w.err = err
		return
	}
	end, err := excelize.CoordinatesToCellName(toCol, toRow)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, start, end, styleID)
}

func (w *sheetWriter) widths(widths ...float64) {
	for i, width := range widths {
		if w.err != nil {
			return
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			w.err = err
			return
		}
		w.err = w.f.SetColWidth(w.sheet, col, col, width)
	}
}

func money(value decimal.Decimal) float64 {
	return value.InexactFloat64()
}

// fraction converte a participação percentual para o formato de célula 0.0%
func fraction(value, total decimal.Decimal) float64 {
	return analytics.Share(value, total).Div(decimal.NewFromInt(100)).InexactFloat64()
}

func buildWorkbook(data *reportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return nil, fmt.Errorf("erro ao criar a planilha %s: %w", SheetSummary, err)
	}
	for _, name := range SheetOrder[1:] {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("erro ao criar a planilha %s: %w", name, err)
		}
	}

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return nil, err
	}

	writers := []func(*excelize.File, *reportData, workbookStyles) error{
		writeSummarySheet,
		writeDataSheet,
		writeSalespeopleSheet,
		writeRegionsSheet,
		writeTemporalSheet,
		writeProductsSheet,
	}
	for _, write := range writers {
		if err := write(f, data, styles); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gravar a planilha: %w", err)
	}

	return buf.Bytes(), nil
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	var styles workbookStyles
	var err error

	if styles.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "8B5CF6"},
	}); err != nil {
		return styles, fmt.Errorf("erro ao criar estilo: %w", err)
	}
	if styles.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"8B5CF6"}, Pattern: 1},
	}); err != nil {
		return styles, fmt.Errorf("erro ao criar estilo: %w", err)
	}
	if styles.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFormat}); err != nil {
		return styles, fmt.Errorf("erro ao criar estilo: %w", err)
	}
	if styles.percent, err = f.NewStyle(&excelize.Style{NumFmt: 10}); err != nil {
		return styles, fmt.Errorf("erro ao criar estilo: %w", err)
	}
	if styles.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return styles, fmt.Errorf("erro ao criar estilo: %w", err)
	}

	return styles, nil
}

func writeSummarySheet(f *excelize.File, data *reportData, styles workbookStyles) error {
	w := &sheetWriter{f: f, sheet: SheetSummary}

	title := w.write(reportTitle)
	w.style(1, title, 1, title, styles.title)
	w.write("Generated", data.GeneratedAt.Format("Monday, January 2, 2006 15:04"))
	w.blank()

	section := w.write("Executive Summary")
	w.style(1, section, 1, section, styles.bold)
	header := w.write("Metric", "Value")
	w.style(1, header, 2, header, styles.header)
	totalRow := w.write("Total sales", money(data.Summary.TotalSales))
	w.write("Records", data.Summary.TotalOrders)
	avgRow := w.write("Average per sale", money(data.Summary.AvgOrderValue))
	w.write("Distinct products", data.Summary.TotalProducts)
	w.style(2, totalRow, 2, totalRow, styles.money)
	w.style(2, avgRow, 2, avgRow, styles.money)
	w.blank()

	section = w.write("Top 5 Products")
	w.style(1, section, 1, section, styles.bold)
	header = w.write("Product", "Total sales")
	w.style(1, header, 2, header, styles.header)
	for _, item := range data.TopProducts {
		w.write(item.Name, money(item.Value))
	}
	w.style(2, header+1, 2, w.row, styles.money)
	w.blank()

	section = w.write("Sales by Category")
	w.style(1, section, 1, section, styles.bold)
	header = w.write("Category", "Total sales", "% of total")
	w.style(1, header, 3, header, styles.header)
	for _, item := range data.Categories {
		w.write(item.Name, money(item.Value), fraction(item.Value, data.Summary.TotalSales))
	}
	w.style(2, header+1, 2, w.row, styles.money)
	w.style(3, header+1, 3, w.row, styles.percent)

	w.widths(35, 25, 15)
	return sheetError(SheetSummary, w.err)
}

func writeDataSheet(f *excelize.File, data *reportData, styles workbookStyles) error {
	w := &sheetWriter{f: f, sheet: SheetData}

	header := w.write("Date", "Product", "Category", "Quantity", "Unit price", "Total", "Region", "Salesperson")
	w.style(1, header, 8, header, styles.header)

	for _, sale := range data.Sales {
		w.write(
			sale.EffectiveDate(),
			productName(sale),
			orDefault(sale.Category, missingValue),
			sale.Quantity,
			money(sale.UnitPrice),
			money(sale.TotalAmount),
			orDefault(sale.Region, missingValue),
			orDefault(sale.Salesperson, missingValue),
		)
	}
	lastDataRow := w.row

	w.blank()
	totals := w.write(
		totalLabel,
		fmt.Sprintf("%d records", len(data.Sales)),
		"",
		analytics.TotalQuantity(data.Sales),
		"",
		money(analytics.TotalAmount(data.Sales)),
	)

	w.style(5, header+1, 6, lastDataRow, styles.money)
	w.style(1, totals, 8, totals, styles.bold)
	w.style(6, totals, 6, totals, styles.money)

	w.widths(12, 30, 15, 10, 12, 12, 12, 20)
	return sheetError(SheetData, w.err)
}

func writeSalespeopleSheet(f *excelize.File, data *reportData, styles workbookStyles) error {
	w := &sheetWriter{f: f, sheet: SheetSalespeople}

	stats := groupStats(data.Sales, func(sale domain.Sale) string {
		return orDefault(sale.Salesperson, domain.UnassignedBucket)
	})
	sortByTotalDesc(stats)

	header := w.write("Salesperson", "Sales", "Total", "Average")
	w.style(1, header, 4, header, styles.header)
	for _, stat := range stats {
		w.write(stat.Name, stat.Count, money(stat.Total), money(analytics.Average(stat.Total, stat.Count)))
	}
	w.style(3, header+1, 4, w.row, styles.money)

	w.widths(25, 12, 15, 15)
	return sheetError(SheetSalespeople, w.err)
}

func writeRegionsSheet(f *excelize.File, data *reportData, styles workbookStyles) error {
	w := &sheetWriter{f: f, sheet: SheetRegions}

	stats := groupStats(data.Sales, func(sale domain.Sale) string {
		return orDefault(sale.Region, domain.UnassignedBucket)
	})
	sortByTotalDesc(stats)

	header := w.write("Region", "Sales", "Total", "% of total")
	w.style(1, header, 4, header, styles.header)
	for _, stat := range stats {
		w.write(stat.Name, stat.Count, money(stat.Total), fraction(stat.Total, data.Summary.TotalSales))
	}
	w.style(3, header+1, 3, w.row, styles.money)
	w.style(4, header+1, 4, w.row, styles.percent)

	w.widths(20, 12, 15, 12)
	return sheetError(SheetRegions, w.err)
}

func writeTemporalSheet(f *excelize.File, data *reportData, styles workbookStyles) error {
	w := &sheetWriter{f: f, sheet: SheetTemporal}

	days := groupStats(data.Sales, func(sale domain.Sale) string {
		return sale.EffectiveDate()
	})
	sortByName(days)

	best, worst := days[0], days[0]
	for _, day := range days[1:] {
		if day.Total.GreaterThan(best.Total) {
			best = day
		}
		if day.Total.LessThan(worst.Total) {
			worst = day
		}
	}

	bestRow := w.write("Best day", best.Name, money(best.Total))
	worstRow := w.write("Worst day", worst.Name, money(worst.Total))
	w.write("Days with sales", len(days))
	avgRow := w.write("Average per day", "", money(analytics.Average(data.Summary.TotalSales, len(days))))
	w.style(1, bestRow, 1, avgRow, styles.bold)
	w.style(3, bestRow, 3, worstRow, styles.money)
	w.style(3, avgRow, 3, avgRow, styles.money)
	w.blank()

	header := w.write("Date", "Transactions", "Total", "% of total")
	w.style(1, header, 4, header, styles.header)
	for _, day := range days {
		w.write(day.Name, day.Count, money(day.Total), fraction(day.Total, data.Summary.TotalSales))
	}
	w.style(3, header+1, 3, w.row, styles.money)
	w.style(4, header+1, 4, w.row, styles.percent)

	w.widths(20, 15, 15, 12)
	return sheetError(SheetTemporal, w.err)
}

func writeProductsSheet(f *excelize.File, data *reportData, styles workbookStyles) error {
	w := &sheetWriter{f: f, sheet: SheetProducts}

	stats := groupStats(data.Sales, productName)
	sortByTotalDesc(stats)

	w.write("Distinct products", len(stats))
	w.blank()

	header := w.write("Product", "Category", "Units", "Total sales", "Average price", "Rank")
	w.style(1, header, 6, header, styles.header)
	for i, stat := range stats {
		w.write(stat.Name, stat.Category, stat.Units, money(stat.Total), money(analytics.Average(stat.Total, stat.Units)), i+1)
	}
	w.style(4, header+1, 5, w.row, styles.money)

	w.widths(30, 15, 10, 12, 12, 8)
	return sheetError(SheetProducts, w.err)
}

func sheetError(sheet string, err error) error {
	if err != nil {
		return fmt.Errorf("erro ao preencher a planilha %s: %w", sheet, err)
	}
	return nil
}
