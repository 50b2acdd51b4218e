package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type DateRange string

const (
	DateRangeAll    DateRange = "all"
	DateRange7Days  DateRange = "7days"
	DateRange30Days DateRange = "30days"
	DateRange90Days DateRange = "90days"

	CategoryAll = "all"
)

// Days retorna a janela em dias do período; 0 para "all"
func (d DateRange) Days() int {
	switch d {
	case DateRange7Days:
		return 7
	case DateRange30Days:
		return 30
	case DateRange90Days:
		return 90
	default:
		return 0
	}
}

// ParseDateRange aceita o valor vazio como "all"
func ParseDateRange(value string) (DateRange, error) {
	switch DateRange(value) {
	case "", DateRangeAll:
		return DateRangeAll, nil
	case DateRange7Days, DateRange30Days, DateRange90Days:
		return DateRange(value), nil
	default:
		return "", fmt.Errorf("período inválido: %q", value)
	}
}

type FilterSpec struct {
	DateRange DateRange `json:"date_range"`
	Category  string    `json:"category"`
}

// DefaultFilter não filtra nada
func DefaultFilter() FilterSpec {
	return FilterSpec{DateRange: DateRangeAll, Category: CategoryAll}
}

type SalesSummary struct {
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalOrders   int             `json:"total_orders"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
	TotalProducts int             `json:"total_products"`
}

// BreakdownItem é uma soma de total_amount agrupada por uma dimensão
type BreakdownItem struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color,omitempty"`
}

type DailyTotal struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

type RecentSale struct {
	ID      int             `json:"id"`
	Product string          `json:"product"`
	Amount  decimal.Decimal `json:"amount"`
	Date    string          `json:"date"`
}

// Dashboard reúne todas as visões derivadas de um conjunto filtrado
type Dashboard struct {
	Filters         FilterSpec      `json:"filters"`
	Summary         SalesSummary    `json:"summary"`
	Categories      []string        `json:"categories"`
	SalesByCategory []BreakdownItem `json:"sales_by_category"`
	SalesByRegion   []BreakdownItem `json:"sales_by_region"`
	TopProducts     []BreakdownItem `json:"top_products"`
	SalesByDate     []DailyTotal    `json:"sales_by_date"`
	RecentSales     []RecentSale    `json:"recent_sales"`
}

// ReportSummary acompanha a tela de relatórios antes da exportação
type ReportSummary struct {
	Filters     FilterSpec   `json:"filters"`
	Summary     SalesSummary `json:"summary"`
	RecordCount int          `json:"record_count"`
}
