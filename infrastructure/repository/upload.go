package repository

//go:generate mockgen -source=upload.go -destination=mocks/upload.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/salesvision-api/infrastructure/database/postgres"
	"github.com/vfg2006/salesvision-api/internal/domain"
)

const uploadsTable = "uploads"

type UploadRepository interface {
	InsertUpload(ctx context.Context, upload *domain.Upload) error
}

type uploadRepository struct {
	conn *postgres.Connection
}

func NewUploadRepository(conn *postgres.Connection) UploadRepository {
	return &uploadRepository{
		conn: conn,
	}
}

// InsertUpload grava o registro de auditoria e preenche ID e CreatedAt
func (r *uploadRepository) InsertUpload(ctx context.Context, upload *domain.Upload) error {
	query, args, err := squirrel.
		Insert(uploadsTable).
		Columns("filename", "file_path", "rows_processed", "status", "uploaded_by").
		Values(upload.Filename, upload.FilePath, upload.RowsProcessed, upload.Status, upload.UploadedBy).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&upload.ID, &upload.CreatedAt); err != nil {
		return fmt.Errorf("erro ao inserir upload: %w", err)
	}

	return nil
}
