package reporting

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/vfg2006/salesvision-api/internal/report"
	errorcodes "github.com/vfg2006/salesvision-api/pkg/apiErrors"
)

var ErrListSales = errors.New("erro ao consultar as vendas")

// ReportError é um erro com contexto adicional para dashboard e relatórios
type ReportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ReportError) Unwrap() error {
	return e.Err
}

func NewReportError(err error, code string, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func fromExportError(err error) *ReportError {
	if errors.Is(err, report.ErrNothingToExport) {
		return NewReportError(err, errorcodes.ErrNothingToExport, "Nenhuma venda corresponde aos filtros selecionados")
	}
	return NewReportError(err, errorcodes.ErrExportFailed, "")
}
