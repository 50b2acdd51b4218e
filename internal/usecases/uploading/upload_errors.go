package uploading

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/vfg2006/salesvision-api/internal/ingest"
	errorcodes "github.com/vfg2006/salesvision-api/pkg/apiErrors"
)

var (
	ErrPersistSales    = errors.New("erro ao gravar as vendas")
	ErrGenerateFileKey = errors.New("erro ao gerar a chave do arquivo")
)

// UploadError é um erro com contexto adicional para importações
type UploadError struct {
	Err      error  // Erro base
	Code     string // Código de erro para API
	Filename string // Arquivo envolvido
	Details  string // Detalhes adicionais
}

// Error implementa a interface error
func (e *UploadError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *UploadError) Unwrap() error {
	return e.Err
}

func NewUploadError(err error, code string, filename string, details string) *UploadError {
	return &UploadError{
		Err:      err,
		Code:     code,
		Filename: filename,
		Details:  details,
	}
}

// fromReadError traduz os erros de leitura para o código de API correspondente
func fromReadError(err error, filename string) *UploadError {
	switch {
	case errors.Is(err, ingest.ErrUnsupportedFileType):
		return NewUploadError(err, errorcodes.ErrUnsupportedFileType, filename, "Envie um arquivo .csv ou .xlsx")
	case errors.Is(err, ingest.ErrEmptyFile):
		return NewUploadError(err, errorcodes.ErrEmptyFile, filename, "O arquivo não contém linhas de dados")
	case errors.Is(err, ingest.ErrUnreadableFile):
		return NewUploadError(err, errorcodes.ErrUnreadableFile, filename, "")
	default:
		return NewUploadError(err, errorcodes.ErrInternalServer, filename, "")
	}
}
