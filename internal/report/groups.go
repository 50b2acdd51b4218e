package report

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vfg2006/salesvision-api/internal/domain"
)

const missingValue = "-"

var moneyPrinter = message.NewPrinter(language.English)

// groupStat acumula contagem, unidades e total de um grupo de vendas
type groupStat struct {
	Name     string
	Count    int
	Units    int
	Total    decimal.Decimal
	Category string
}

func groupStats(sales []domain.Sale, key func(domain.Sale) string) []*groupStat {
	index := make(map[string]*groupStat)
	stats := make([]*groupStat, 0)

	for _, sale := range sales {
		name := key(sale)
		stat, ok := index[name]
		if !ok {
			stat = &groupStat{Name: name, Total: decimal.Zero, Category: orDefault(sale.Category, missingValue)}
			index[name] = stat
			stats = append(stats, stat)
		}

		units := sale.Quantity
		if units == 0 {
			units = 1
		}

		stat.Count++
		stat.Units += units
		stat.Total = stat.Total.Add(sale.TotalAmount)
	}

	return stats
}

func sortByTotalDesc(stats []*groupStat) {
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Total.GreaterThan(stats[j].Total)
	})
}

func orDefault(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}

func productName(sale domain.Sale) string {
	if sale.ProductName == "" {
		return domain.UnnamedProduct
	}
	return sale.ProductName
}

// formatMoney formata como $1,234.56; o sinal vem antes do símbolo
func formatMoney(value decimal.Decimal) string {
	amount := moneyPrinter.Sprintf("$%.2f", value.Abs().Round(2).InexactFloat64())
	if value.Round(2).IsNegative() {
		return "-" + amount
	}
	return amount
}

// sortByName ordena lexicograficamente, o que equivale à ordem cronológica para datas YYYY-MM-DD
func sortByName(stats []*groupStat) {
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Name < stats[j].Name
	})
}
