package ingest

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vfg2006/salesvision-api/internal/domain"
)

// Aliases aceitos para cada campo, em ordem de precedência. A comparação
// diferencia maiúsculas de minúsculas.
var (
	DateAliases        = []string{"date", "fecha", "Date", "Fecha"}
	ProductNameAliases = []string{"product_name", "producto", "Producto", "product", "Product"}
	CategoryAliases    = []string{"category", "categoria", "Categoria", "Category"}
	QuantityAliases    = []string{"quantity", "cantidad", "Cantidad", "Quantity"}
	UnitPriceAliases   = []string{"unit_price", "precio", "Precio", "price", "Price"}
	TotalAmountAliases = []string{"total_amount", "total", "Total", "amount", "Amount"}
	RegionAliases      = []string{"region", "Region"}
	SalespersonAliases = []string{"salesperson", "vendedor", "Vendedor", "seller", "Seller"}
)

const defaultQuantity = 1

type Normalizer struct {
	now func() time.Time
}

// NewNormalizer recebe o relógio usado para a data de ingestão; nil usa time.Now
func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

// Normalize converte uma linha bruta em uma venda canônica. Nunca falha:
// valores ausentes ou inválidos recebem o valor padrão do campo.
func (n *Normalizer) Normalize(row RawRow, uploadedBy string) domain.Sale {
	sale := domain.Sale{
		ProductName: domain.UnnamedProduct,
		Quantity:    defaultQuantity,
		UnitPrice:   decimal.Zero,
		TotalAmount: decimal.Zero,
		UploadedBy:  uploadedBy,
	}

	if text, ok := resolveText(row, DateAliases); ok {
		sale.Date = text
	} else {
		sale.Date = n.now().UTC().Format(time.DateOnly)
	}

	if text, ok := resolveText(row, ProductNameAliases); ok {
		sale.ProductName = text
	}

	sale.Category = resolveOptional(row, CategoryAliases)
	sale.Region = resolveOptional(row, RegionAliases)
	sale.Salesperson = resolveOptional(row, SalespersonAliases)

	if value, ok := resolve(row, QuantityAliases); ok {
		sale.Quantity = toQuantity(value)
	}
	if value, ok := resolve(row, UnitPriceAliases); ok {
		sale.UnitPrice = toDecimal(value)
	}
	if value, ok := resolve(row, TotalAmountAliases); ok {
		sale.TotalAmount = toDecimal(value)
	}

	return sale
}

// NormalizeAll preserva a ordem das linhas do arquivo
func (n *Normalizer) NormalizeAll(rows []RawRow, uploadedBy string) []domain.Sale {
	sales := make([]domain.Sale, 0, len(rows))
	for _, row := range rows {
		sales = append(sales, n.Normalize(row, uploadedBy))
	}
	return sales
}

// resolve devolve o valor do primeiro alias presente na linha, mesmo que vazio
func resolve(row RawRow, aliases []string) (RawValue, bool) {
	for _, alias := range aliases {
		if value, ok := row[alias]; ok {
			return value, true
		}
	}
	return RawValue{}, false
}

func resolveText(row RawRow, aliases []string) (string, bool) {
	value, ok := resolve(row, aliases)
	if !ok {
		return "", false
	}

	text, ok := value.Text()
	if !ok || strings.TrimSpace(text) == "" {
		return "", false
	}

	return text, true
}

func resolveOptional(row RawRow, aliases []string) *string {
	text, ok := resolveText(row, aliases)
	if !ok {
		return nil
	}
	return &text
}
