package ingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	MIMETypeCSV  = "text/csv"
	MIMETypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMETypeXLS  = "application/vnd.ms-excel"
)

type FileKind int

const (
	FileKindCSV FileKind = iota + 1
	FileKindSpreadsheet
)

// DetectKind identifica o tipo do arquivo pela extensão ou pelo content type
func DetectKind(filename, contentType string) (FileKind, error) {
	name := strings.ToLower(filename)
	contentType = strings.TrimSpace(strings.Split(contentType, ";")[0])

	switch {
	case strings.HasSuffix(name, ".csv") || contentType == MIMETypeCSV:
		return FileKindCSV, nil
	case strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xls") ||
		contentType == MIMETypeXLSX || contentType == MIMETypeXLS:
		return FileKindSpreadsheet, nil
	default:
		return 0, ErrUnsupportedFileType
	}
}

// ReadFile lê o arquivo inteiro e devolve a tabela de linhas brutas.
// A primeira linha é sempre o cabeçalho.
func ReadFile(filename, contentType string, r io.Reader) (*Table, error) {
	kind, err := DetectKind(filename, contentType)
	if err != nil {
		return nil, err
	}

	var table *Table
	switch kind {
	case FileKindCSV:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
		}
		table = ParseCSV(string(data))
	case FileKindSpreadsheet:
		table, err = ReadSpreadsheet(r)
		if err != nil {
			return nil, err
		}
	}

	if len(table.Rows) == 0 {
		return nil, ErrEmptyFile
	}

	logrus.WithFields(logrus.Fields{
		"filename": filename,
		"headers":  len(table.Headers),
		"rows":     len(table.Rows),
	}).Debug("ingest: arquivo lido")

	return table, nil
}

// ParseCSV faz a leitura simples de CSV separado por vírgulas. Aspas são apenas
// removidas; não há tratamento de campos com vírgula ou aspas escapadas.
func ParseCSV(text string) *Table {
	text = strings.TrimPrefix(text, "\ufeff")

	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	table := &Table{Rows: []RawRow{}}
	if len(lines) < 2 {
		return table
	}

	table.Headers = splitCSVLine(lines[0])
	for _, line := range lines[1:] {
		values := splitCSVLine(line)
		row := make(RawRow, len(table.Headers))
		for i, header := range table.Headers {
			value := ""
			if i < len(values) {
				value = values[i]
			}
			row[header] = String(value)
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

func splitCSVLine(line string) []string {
	fields := strings.Split(line, ",")
	for i, field := range fields {
		fields[i] = strings.ReplaceAll(strings.TrimSpace(field), `"`, "")
	}
	return fields
}

// ReadSpreadsheet lê a primeira planilha de um arquivo XLSX. Células vazias
// não aparecem na linha. O formato de exibição é ignorado: números chegam
// como Number e datas como texto AAAA-MM-DD.
func ReadSpreadsheet(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: o arquivo não contém planilhas", ErrUnreadableFile)
	}

	sheet := sheets[0]
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	table := &Table{Rows: []RawRow{}}
	if len(rows) == 0 {
		return table, nil
	}

	table.Headers = make([]string, len(rows[0]))
	for i, header := range rows[0] {
		if strings.TrimSpace(header) == "" {
			header = columnName(i)
		}
		table.Headers[i] = header
	}

	for rowIdx, cells := range rows[1:] {
		row := make(RawRow)
		for i, cell := range cells {
			if cell == "" {
				continue
			}
			header := columnName(i)
			if i < len(table.Headers) {
				header = table.Headers[i]
			}
			// rows[1:] começa na linha 2 da planilha
			row[header] = cellValue(f, sheet, i+1, rowIdx+2, cell)
		}
		if len(row) > 0 {
			table.Rows = append(table.Rows, row)
		}
	}

	return table, nil
}

// cellValue converte o valor bruto da célula conforme o tipo gravado no arquivo
func cellValue(f *excelize.File, sheet string, col, rowNum int, raw string) RawValue {
	ref, err := excelize.CoordinatesToCellName(col, rowNum)
	if err != nil {
		return String(raw)
	}

	cellType, err := f.GetCellType(sheet, ref)
	if err != nil {
		return String(raw)
	}

	// Números sem o atributo t aparecem como CellTypeUnset
	if cellType != excelize.CellTypeNumber && cellType != excelize.CellTypeUnset {
		return String(raw)
	}

	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return String(raw)
	}

	if isDateStyled(f, sheet, ref) {
		if date, err := excelize.ExcelDateToTime(num, false); err == nil {
			return String(date.Format(time.DateOnly))
		}
	}

	return Number(num)
}

// isDateStyled indica se o formato numérico da célula exibe uma data
func isDateStyled(f *excelize.File, sheet, ref string) bool {
	styleID, err := f.GetCellStyle(sheet, ref)
	if err != nil || styleID == 0 {
		return false
	}

	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}

	switch style.NumFmt {
	case 14, 15, 16, 17, 22:
		return true
	}

	if style.CustomNumFmt == nil {
		return false
	}
	return strings.ContainsAny(strings.ToLower(stripLiterals(*style.CustomNumFmt)), "dy")
}

// stripLiterals remove de um formato numérico os textos entre aspas e os
// trechos entre colchetes, como [$AUD] ou [Red]
func stripLiterals(format string) string {
	var b strings.Builder
	quoted, bracketed := false, false
	for _, c := range format {
		switch {
		case c == '"' && !bracketed:
			quoted = !quoted
		case c == '[' && !quoted:
			bracketed = true
		case c == ']' && bracketed:
			bracketed = false
		case !quoted && !bracketed:
			b.WriteRune(c)
		}
	}
	return b.String()
}

func columnName(index int) string {
	return fmt.Sprintf("col%d", index+1)
}
