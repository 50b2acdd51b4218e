package ingest

import "errors"

// Erros de leitura de arquivo. Todos acontecem antes de qualquer normalização.
var (
	ErrUnsupportedFileType = errors.New("tipo de arquivo não suportado, envie um Excel (.xlsx) ou CSV")
	ErrUnreadableFile      = errors.New("erro ao ler o arquivo")
	ErrEmptyFile           = errors.New("o arquivo não contém dados")
)
