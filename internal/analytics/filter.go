// Package analytics calcula as métricas do dashboard e dos relatórios a partir
// das vendas já carregadas. Todas as funções são puras.
package analytics

import (
	"time"

	"github.com/vfg2006/salesvision-api/internal/domain"
)

// Formatos aceitos para a data informada no arquivo. Datas sem fuso são tratadas como UTC.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.RFC3339Nano,
	time.DateTime,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// ApplyFilter devolve as vendas que atendem ao período E à categoria, mantendo a ordem original
func ApplyFilter(sales []domain.Sale, spec domain.FilterSpec, now time.Time) []domain.Sale {
	var cutoff time.Time
	days := spec.DateRange.Days()
	if days > 0 {
		// Períodos são múltiplos exatos de 24h, inclusive na troca de horário de verão
		cutoff = now.Add(-time.Duration(days) * 24 * time.Hour)
	}

	filtered := make([]domain.Sale, 0, len(sales))
	for _, sale := range sales {
		if days > 0 {
			effective, ok := EffectiveTime(sale)
			if !ok || effective.Before(cutoff) {
				continue
			}
		}

		if spec.Category != "" && spec.Category != domain.CategoryAll {
			if sale.Category == nil || *sale.Category != spec.Category {
				continue
			}
		}

		filtered = append(filtered, sale)
	}

	return filtered
}

// EffectiveTime interpreta a data da venda ou, sem ela, o instante de criação.
// Retorna false quando a data não pode ser interpretada.
func EffectiveTime(sale domain.Sale) (time.Time, bool) {
	if sale.Date == "" {
		return sale.CreatedAt, !sale.CreatedAt.IsZero()
	}
	return ParseDate(sale.Date)
}

func ParseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
