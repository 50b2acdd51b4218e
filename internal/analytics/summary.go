package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/vfg2006/salesvision-api/internal/domain"
)

// Summarize calcula os totais do conjunto; o ticket médio é zero quando não há vendas
func Summarize(sales []domain.Sale) domain.SalesSummary {
	total := TotalAmount(sales)

	products := make(map[string]struct{}, len(sales))
	for _, sale := range sales {
		products[sale.ProductName] = struct{}{}
	}

	return domain.SalesSummary{
		TotalSales:    total,
		TotalOrders:   len(sales),
		AvgOrderValue: Average(total, len(sales)),
		TotalProducts: len(products),
	}
}

func TotalAmount(sales []domain.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.TotalAmount)
	}
	return total
}

func TotalQuantity(sales []domain.Sale) int {
	total := 0
	for _, sale := range sales {
		total += sale.Quantity
	}
	return total
}

// Average arredonda para centavos e devolve zero para count <= 0
func Average(total decimal.Decimal, count int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count))).Round(2)
}

// Share devolve a participação percentual de value em total, com duas casas
func Share(value, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return value.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
}
