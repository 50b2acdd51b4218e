package domain

import "time"

type UploadStatus string

const (
	UploadStatusPending    UploadStatus = "pending"
	UploadStatusProcessing UploadStatus = "processing"
	UploadStatusCompleted  UploadStatus = "completed"
	UploadStatusError      UploadStatus = "error"
)

// Upload é o registro de auditoria de um lote importado. Só é escrito, nunca lido de volta.
type Upload struct {
	ID            string       `json:"id"`
	Filename      string       `json:"filename"`
	FilePath      string       `json:"file_path"`
	RowsProcessed *int         `json:"rows_processed"`
	Status        UploadStatus `json:"status"`
	UploadedBy    string       `json:"uploaded_by"`
	CreatedAt     time.Time    `json:"created_at"`
}

// UploadPreview é o resultado da leitura de um arquivo antes da confirmação
type UploadPreview struct {
	Filename  string           `json:"filename"`
	Headers   []string         `json:"headers"`
	Rows      []map[string]any `json:"rows"`
	TotalRows int              `json:"total_rows"`
}

// UploadResult é devolvido depois de um lote persistido com sucesso
type UploadResult struct {
	UploadID      string `json:"upload_id"`
	Filename      string `json:"filename"`
	RowsProcessed int    `json:"rows_processed"`
}
