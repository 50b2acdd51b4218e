package analytics

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/salesvision-api/internal/domain"
)

var referenceNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string {
	return &s
}

func sale(date, product string, category, region *string, total string) domain.Sale {
	return domain.Sale{
		Date:        date,
		ProductName: product,
		Category:    category,
		Region:      region,
		Quantity:    1,
		TotalAmount: decimal.RequireFromString(total),
		CreatedAt:   referenceNow,
	}
}

func sampleSales() []domain.Sale {
	return []domain.Sale{
		sale("2024-06-12", "Widget", strPtr("Tools"), strPtr("North"), "100.10"),
		sale("2024-06-07", "Gadget", nil, nil, "50.20"),
		sale("2024-06-12", "Widget", strPtr("Tools"), strPtr("South"), "25.05"),
		sale("2024-04-01", "Gizmo", strPtr("Toys"), strPtr("North"), "10"),
		sale("not-a-date", "Doohickey", strPtr("Toys"), nil, "7.5"),
	}
}

func TestApplyFilter(t *testing.T) {
	sales := sampleSales()

	tests := []struct {
		name     string
		spec     domain.FilterSpec
		validate func(t *testing.T, result []domain.Sale)
	}{
		{
			name: "Sem filtros mantém tudo na ordem original",
			spec: domain.DefaultFilter(),
			validate: func(t *testing.T, result []domain.Sale) {
				assert.Equal(t, sales, result)
			},
		},
		{
			name: "Últimos 7 dias exclui venda de 8 dias atrás e inclui de 3 dias atrás",
			spec: domain.FilterSpec{DateRange: domain.DateRange7Days, Category: domain.CategoryAll},
			validate: func(t *testing.T, result []domain.Sale) {
				require.Len(t, result, 2)
				assert.Equal(t, "2024-06-12", result[0].Date)
				assert.Equal(t, "2024-06-12", result[1].Date)
			},
		},
		{
			name: "Últimos 30 dias ignora data ilegível",
			spec: domain.FilterSpec{DateRange: domain.DateRange30Days, Category: domain.CategoryAll},
			validate: func(t *testing.T, result []domain.Sale) {
				assert.Len(t, result, 3)
			},
		},
		{
			name: "Filtro de categoria não casa categoria nula",
			spec: domain.FilterSpec{DateRange: domain.DateRangeAll, Category: "Toys"},
			validate: func(t *testing.T, result []domain.Sale) {
				require.Len(t, result, 2)
				assert.Equal(t, "Gizmo", result[0].ProductName)
				assert.Equal(t, "Doohickey", result[1].ProductName)
			},
		},
		{
			name: "Período e categoria combinados com E",
			spec: domain.FilterSpec{DateRange: domain.DateRange90Days, Category: "Toys"},
			validate: func(t *testing.T, result []domain.Sale) {
				require.Len(t, result, 1)
				assert.Equal(t, "Gizmo", result[0].ProductName)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, ApplyFilter(sales, tt.spec, referenceNow))
		})
	}
}

func TestApplyFilter_UsesCreatedAtWhenDateIsEmpty(t *testing.T) {
	recent := sale("", "Widget", nil, nil, "1")
	recent.CreatedAt = referenceNow.AddDate(0, 0, -2)
	old := sale("", "Gadget", nil, nil, "1")
	old.CreatedAt = referenceNow.AddDate(0, 0, -20)

	result := ApplyFilter([]domain.Sale{recent, old}, domain.FilterSpec{DateRange: domain.DateRange7Days}, referenceNow)

	require.Len(t, result, 1)
	assert.Equal(t, "Widget", result[0].ProductName)
}

func TestApplyFilter_PeriodoEmHorasCorridasNaTrocaDeHorario(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// Meio-dia de 31/03/2024 em Berlim, já em horário de verão (10h UTC)
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, berlin)
	// Sete dias corridos antes; pelo calendário local seria 11h UTC
	cutoff := time.Date(2024, 3, 24, 10, 0, 0, 0, time.UTC)

	inside := sale("", "Widget", nil, nil, "1")
	inside.CreatedAt = cutoff.Add(30 * time.Minute)
	outside := sale("", "Gadget", nil, nil, "1")
	outside.CreatedAt = cutoff.Add(-time.Minute)

	result := ApplyFilter([]domain.Sale{inside, outside}, domain.FilterSpec{DateRange: domain.DateRange7Days}, now)

	require.Len(t, result, 1)
	assert.Equal(t, "Widget", result[0].ProductName)
}

func TestApplyFilter_Idempotent(t *testing.T) {
	spec := domain.FilterSpec{DateRange: domain.DateRange30Days, Category: "Tools"}

	once := ApplyFilter(sampleSales(), spec, referenceNow)
	twice := ApplyFilter(once, spec, referenceNow)

	assert.Equal(t, once, twice)
}

func TestSummarize(t *testing.T) {
	t.Run("Soma igual à soma bruta sem filtros", func(t *testing.T) {
		sales := sampleSales()
		summary := Summarize(ApplyFilter(sales, domain.DefaultFilter(), referenceNow))

		assert.Equal(t, "192.85", summary.TotalSales.StringFixed(2))
		assert.Equal(t, 5, summary.TotalOrders)
		assert.Equal(t, "38.57", summary.AvgOrderValue.StringFixed(2))
		assert.Equal(t, 4, summary.TotalProducts)
	})

	t.Run("Conjunto vazio", func(t *testing.T) {
		summary := Summarize(nil)

		assert.True(t, summary.TotalSales.IsZero())
		assert.Equal(t, 0, summary.TotalOrders)
		assert.True(t, summary.AvgOrderValue.IsZero())
		assert.Equal(t, 0, summary.TotalProducts)
	})

	t.Run("Produtos distintos diferenciam maiúsculas", func(t *testing.T) {
		summary := Summarize([]domain.Sale{
			sale("2024-01-01", "widget", nil, nil, "1"),
			sale("2024-01-01", "Widget", nil, nil, "1"),
		})
		assert.Equal(t, 2, summary.TotalProducts)
	})
}

func TestBreakdowns(t *testing.T) {
	sales := sampleSales()

	t.Run("Categoria agrupa nulos em uncategorized", func(t *testing.T) {
		items := SalesByCategory(sales)

		require.Len(t, items, 3)
		assert.Equal(t, "Tools", items[0].Name)
		assert.Equal(t, "125.15", items[0].Value.StringFixed(2))
		assert.Equal(t, domain.UncategorizedCategory, items[1].Name)
		assert.Equal(t, "Toys", items[2].Name)
		assert.Equal(t, "17.50", items[2].Value.StringFixed(2))
		assert.Equal(t, Palette[0], items[0].Color)
		assert.Equal(t, Palette[2], items[2].Color)
	})

	t.Run("Região exclui nulos", func(t *testing.T) {
		items := SalesByRegion(sales)

		require.Len(t, items, 2)
		assert.Equal(t, "North", items[0].Name)
		assert.Equal(t, "110.10", items[0].Value.StringFixed(2))
		assert.Equal(t, "South", items[1].Name)
	})

	t.Run("Cores seguem a paleta em ciclo", func(t *testing.T) {
		many := make([]domain.Sale, 0, 8)
		for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
			many = append(many, sale("2024-01-01", "p", strPtr(name), nil, "1"))
		}

		items := SalesByCategory(many)
		require.Len(t, items, 8)
		assert.Equal(t, Palette[0], items[6].Color)
		assert.Equal(t, Palette[1], items[7].Color)
	})

	t.Run("Datas em ordem crescente", func(t *testing.T) {
		daily := SalesByDate(sales)

		require.Len(t, daily, 4)
		assert.Equal(t, "2024-04-01", daily[0].Date)
		assert.Equal(t, "2024-06-07", daily[1].Date)
		assert.Equal(t, "2024-06-12", daily[2].Date)
		assert.Equal(t, "125.15", daily[2].Total.StringFixed(2))
		assert.Equal(t, "not-a-date", daily[3].Date)
	})

	t.Run("Categorias distintas na ordem de aparição", func(t *testing.T) {
		assert.Equal(t, []string{"Tools", "Toys"}, Categories(sales))
	})
}

func TestTopProducts(t *testing.T) {
	sales := []domain.Sale{
		sale("2024-01-01", "A", nil, nil, "10"),
		sale("2024-01-01", "B", nil, nil, "30"),
		sale("2024-01-01", "C", nil, nil, "10"),
		sale("2024-01-01", "D", nil, nil, "5"),
		sale("2024-01-01", "E", nil, nil, "10"),
		sale("2024-01-01", "F", nil, nil, "10"),
		sale("2024-01-01", "", nil, nil, "1"),
	}

	top := TopProducts(sales, TopProductsLimit)

	require.Len(t, top, 5)
	names := make([]string, 0, len(top))
	for _, item := range top {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"B", "A", "C", "E", "F"}, names)

	all := TopProducts(sales, len(sales))
	assert.Equal(t, domain.UnnamedProduct, all[len(all)-1].Name)
}

func TestBuildDashboard(t *testing.T) {
	sales := sampleSales()
	spec := domain.FilterSpec{DateRange: domain.DateRangeAll, Category: "Tools"}

	dashboard := BuildDashboard(sales, spec, referenceNow)

	assert.Equal(t, spec, dashboard.Filters)
	assert.Equal(t, 2, dashboard.Summary.TotalOrders)
	assert.Equal(t, []string{"Tools", "Toys"}, dashboard.Categories)
	require.Len(t, dashboard.RecentSales, 2)
	assert.Equal(t, 0, dashboard.RecentSales[0].ID)
	assert.Equal(t, "Widget", dashboard.RecentSales[0].Product)
	assert.Equal(t, "100.10", dashboard.RecentSales[0].Amount.StringFixed(2))
	require.Len(t, dashboard.TopProducts, 1)
	assert.Equal(t, "125.15", dashboard.TopProducts[0].Value.StringFixed(2))
}

func TestShareAndAverage(t *testing.T) {
	assert.True(t, Share(decimal.NewFromInt(5), decimal.Zero).IsZero())
	assert.Equal(t, "25.00", Share(decimal.NewFromInt(25), decimal.NewFromInt(100)).StringFixed(2))
	assert.True(t, Average(decimal.NewFromInt(10), 0).IsZero())
	assert.Equal(t, "3.33", Average(decimal.NewFromInt(10), 3).StringFixed(2))
}
