package analytics

import (
	"time"

	"github.com/vfg2006/salesvision-api/internal/domain"
)

const RecentSalesLimit = 5

// RecentSales devolve as primeiras vendas do conjunto na ordem recebida
func RecentSales(sales []domain.Sale, limit int) []domain.RecentSale {
	if limit > len(sales) || limit < 0 {
		limit = len(sales)
	}

	recent := make([]domain.RecentSale, 0, limit)
	for i, sale := range sales[:limit] {
		recent = append(recent, domain.RecentSale{
			ID:      i,
			Product: productName(sale),
			Amount:  sale.TotalAmount,
			Date:    sale.EffectiveDate(),
		})
	}
	return recent
}

// BuildDashboard filtra as vendas e calcula todas as visões. A lista de
// categorias vem do conjunto completo para alimentar o seletor.
func BuildDashboard(sales []domain.Sale, spec domain.FilterSpec, now time.Time) domain.Dashboard {
	filtered := ApplyFilter(sales, spec, now)

	return domain.Dashboard{
		Filters:         spec,
		Summary:         Summarize(filtered),
		Categories:      Categories(sales),
		SalesByCategory: SalesByCategory(filtered),
		SalesByRegion:   SalesByRegion(filtered),
		TopProducts:     TopProducts(filtered, TopProductsLimit),
		SalesByDate:     SalesByDate(filtered),
		RecentSales:     RecentSales(filtered, RecentSalesLimit),
	}
}
