// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	UnnamedProduct        = "unnamed"
	UncategorizedCategory = "uncategorized"
	UnassignedBucket      = "unassigned"
)

// Sale é o registro canônico de uma venda, já normalizado
type Sale struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"` // Formato canônico: YYYY-MM-DD
	ProductName string          `json:"product_name"`
	Category    *string         `json:"category"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Region      *string         `json:"region"`
	Salesperson *string         `json:"salesperson"`
	UploadedBy  string          `json:"uploaded_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EffectiveDate retorna a data usada para agrupar a venda: o campo date ou,
// na ausência dele, o dia de criação em UTC.
func (s Sale) EffectiveDate() string {
	if s.Date != "" {
		return s.Date
	}
	return s.CreatedAt.UTC().Format(time.DateOnly)
}
