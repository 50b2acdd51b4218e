package ingest

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		value    RawValue
		expected string
	}{
		{name: "Número simples", value: Number(150.25), expected: "150.25"},
		{name: "Texto com moeda e milhar", value: String("$1,234.56"), expected: "1234.56"},
		{name: "Prefixo numérico do texto", value: String("12.5kg"), expected: "12.5"},
		{name: "Negativo vira zero", value: String("-10"), expected: "0"},
		{name: "Texto ilegível vira zero", value: String("abc"), expected: "0"},
		{name: "NaN vira zero", value: Number(math.NaN()), expected: "0"},
		{name: "Maior valor aceito", value: String("999999999999.99"), expected: "999999999999.99"},
		{name: "Texto acima do limite da coluna vira zero", value: String("1e15"), expected: "0"},
		{name: "Número acima do limite da coluna vira zero", value: Number(1e15), expected: "0"},
		{name: "Nulo vira zero", value: Null(), expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toDecimal(tt.value)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "esperado %s, obtido %s", tt.expected, got)
		})
	}
}

func TestToQuantity(t *testing.T) {
	tests := []struct {
		name     string
		value    RawValue
		expected int
	}{
		{name: "Número é truncado", value: Number(3.9), expected: 3},
		{name: "Prefixo inteiro do texto", value: String("7 unidades"), expected: 7},
		{name: "Negativo vira 1", value: String("-2"), expected: 1},
		{name: "Maior inteiro de 32 bits", value: String("2147483647"), expected: math.MaxInt32},
		{name: "Texto acima de 32 bits vira 1", value: String("3000000000"), expected: 1},
		{name: "Número acima de 32 bits vira 1", value: Number(3e9), expected: 1},
		{name: "Texto ilegível vira 1", value: String("muitos"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, toQuantity(tt.value))
		})
	}
}
