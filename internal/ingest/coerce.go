package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	leadingDecimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	leadingInteger = regexp.MustCompile(`^[+-]?\d+`)
	thousandsGroup = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d+)?$`)

	// Maior valor que cabe em NUMERIC(14,2)
	maxMoney = decimal.RequireFromString("999999999999.99")
)

// toDecimal aceita o prefixo numérico do texto ("12.5kg" vira 12.5).
// Valores negativos, ilegíveis ou acima de maxMoney viram zero.
func toDecimal(value RawValue) decimal.Decimal {
	var amount decimal.Decimal

	switch value.Kind {
	case KindNumber:
		if math.IsNaN(value.Num) || math.IsInf(value.Num, 0) {
			return decimal.Zero
		}
		amount = decimal.NewFromFloat(value.Num)
	case KindString:
		prefix := leadingDecimal.FindString(cleanNumber(value.Str))
		if prefix == "" {
			return decimal.Zero
		}
		parsed, err := decimal.NewFromString(prefix)
		if err != nil {
			return decimal.Zero
		}
		amount = parsed
	default:
		return decimal.Zero
	}

	if amount.IsNegative() || amount.GreaterThan(maxMoney) {
		return decimal.Zero
	}
	return amount
}

// toQuantity trunca números e aceita o prefixo inteiro do texto.
// Valores negativos, ilegíveis ou acima de MaxInt32 viram 1.
func toQuantity(value RawValue) int {
	switch value.Kind {
	case KindNumber:
		if math.IsNaN(value.Num) || math.IsInf(value.Num, 0) || value.Num < 0 || value.Num > math.MaxInt32 {
			return defaultQuantity
		}
		return int(math.Trunc(value.Num))
	case KindString:
		prefix := leadingInteger.FindString(strings.TrimSpace(value.Str))
		if prefix == "" {
			return defaultQuantity
		}
		quantity, err := strconv.Atoi(prefix)
		if err != nil || quantity < 0 || quantity > math.MaxInt32 {
			return defaultQuantity
		}
		return quantity
	default:
		return defaultQuantity
	}
}

// cleanNumber remove símbolo de moeda e separador de milhar no formato 1,234.56
func cleanNumber(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimLeft(text, "$€£ ")
	if thousandsGroup.MatchString(text) {
		text = strings.ReplaceAll(text, ",", "")
	}
	return text
}
