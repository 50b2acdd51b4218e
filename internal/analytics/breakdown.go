package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vfg2006/salesvision-api/internal/domain"
)

// Palette é a sequência de cores dos gráficos, atribuída pela posição do grupo
var Palette = []string{"#8b5cf6", "#10b981", "#f59e0b", "#ef4444", "#3b82f6", "#ec4899"}

const TopProductsLimit = 5

// groupSum acumula total_amount por chave preservando a ordem da primeira ocorrência.
// Vendas cuja chave retorna false são ignoradas.
func groupSum(sales []domain.Sale, key func(domain.Sale) (string, bool)) []domain.BreakdownItem {
	index := make(map[string]int)
	items := make([]domain.BreakdownItem, 0)

	for _, sale := range sales {
		name, ok := key(sale)
		if !ok {
			continue
		}

		pos, exists := index[name]
		if !exists {
			pos = len(items)
			index[name] = pos
			items = append(items, domain.BreakdownItem{Name: name, Value: decimal.Zero})
		}
		items[pos].Value = items[pos].Value.Add(sale.TotalAmount)
	}

	return items
}

func colorize(items []domain.BreakdownItem) []domain.BreakdownItem {
	for i := range items {
		items[i].Color = Palette[i%len(Palette)]
	}
	return items
}

// SalesByCategory agrupa vendas sem categoria em "uncategorized"
func SalesByCategory(sales []domain.Sale) []domain.BreakdownItem {
	return colorize(groupSum(sales, func(sale domain.Sale) (string, bool) {
		if sale.Category == nil {
			return domain.UncategorizedCategory, true
		}
		return *sale.Category, true
	}))
}

// SalesByRegion ignora vendas sem região
func SalesByRegion(sales []domain.Sale) []domain.BreakdownItem {
	return colorize(groupSum(sales, func(sale domain.Sale) (string, bool) {
		if sale.Region == nil {
			return "", false
		}
		return *sale.Region, true
	}))
}

func SalesByProduct(sales []domain.Sale) []domain.BreakdownItem {
	return groupSum(sales, func(sale domain.Sale) (string, bool) {
		return productName(sale), true
	})
}

// TopProducts ordena por total decrescente; empates mantêm a ordem da primeira ocorrência
func TopProducts(sales []domain.Sale, limit int) []domain.BreakdownItem {
	items := SalesByProduct(sales)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value.GreaterThan(items[j].Value)
	})

	if limit >= 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// SalesByDate soma por data efetiva em ordem lexicográfica crescente
func SalesByDate(sales []domain.Sale) []domain.DailyTotal {
	groups := groupSum(sales, func(sale domain.Sale) (string, bool) {
		return sale.EffectiveDate(), true
	})

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})

	daily := make([]domain.DailyTotal, 0, len(groups))
	for _, group := range groups {
		daily = append(daily, domain.DailyTotal{Date: group.Name, Total: group.Value})
	}
	return daily
}

// Categories lista as categorias distintas na ordem em que aparecem
func Categories(sales []domain.Sale) []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, sale := range sales {
		if sale.Category == nil {
			continue
		}
		if _, ok := seen[*sale.Category]; ok {
			continue
		}
		seen[*sale.Category] = struct{}{}
		categories = append(categories, *sale.Category)
	}
	return categories
}

func productName(sale domain.Sale) string {
	if sale.ProductName == "" {
		return domain.UnnamedProduct
	}
	return sale.ProductName
}
