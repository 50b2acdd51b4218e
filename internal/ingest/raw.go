// Package ingest lê planilhas e CSVs enviados pelos usuários e normaliza
// cada linha em um registro de venda canônico.
package ingest

import "strconv"

type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
)

// RawValue é o valor de uma célula tal como veio do arquivo
type RawValue struct {
	Kind Kind
	Str  string
	Num  float64
}

func String(s string) RawValue {
	return RawValue{Kind: KindString, Str: s}
}

func Number(f float64) RawValue {
	return RawValue{Kind: KindNumber, Num: f}
}

func Null() RawValue {
	return RawValue{Kind: KindNull}
}

// Any converte o valor para exibição na pré-visualização
func (v RawValue) Any() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	default:
		return nil
	}
}

// Text retorna a representação textual do valor; false para null
func (v RawValue) Text() (string, bool) {
	switch v.Kind {
	case KindString:
		return v.Str, true
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64), true
	default:
		return "", false
	}
}

// RawRow mapeia o cabeçalho da coluna para o valor da célula
type RawRow map[string]RawValue

// Table é o conteúdo de um arquivo lido: cabeçalhos na ordem original e as linhas de dados
type Table struct {
	Headers []string
	Rows    []RawRow
}

// Preview devolve até limit linhas prontas para serialização
func (t *Table) Preview(limit int) []map[string]any {
	if limit > len(t.Rows) || limit < 0 {
		limit = len(t.Rows)
	}

	preview := make([]map[string]any, 0, limit)
	for _, row := range t.Rows[:limit] {
		item := make(map[string]any, len(row))
		for key, value := range row {
			item[key] = value.Any()
		}
		preview = append(preview, item)
	}

	return preview
}
