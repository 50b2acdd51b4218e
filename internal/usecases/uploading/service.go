package uploading

//go:generate mockgen -source=service.go -destination=mocks/uploader.go -package=mocks

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/vfg2006/salesvision-api/infrastructure/events"
	"github.com/vfg2006/salesvision-api/infrastructure/repository"
	"github.com/vfg2006/salesvision-api/internal/config"
	"github.com/vfg2006/salesvision-api/internal/domain"
	"github.com/vfg2006/salesvision-api/internal/ingest"
	errorcodes "github.com/vfg2006/salesvision-api/pkg/apiErrors"
	"github.com/vfg2006/salesvision-api/pkg/log"
	"github.com/vfg2006/salesvision-api/pkg/utils"
)

const uploadsDir = "uploads"

type Uploader interface {
	Preview(filename, contentType string, r io.Reader) (*domain.UploadPreview, error)
	Upload(ctx context.Context, userID, filename, contentType string, r io.Reader) (*domain.UploadResult, error)
}

type Service struct {
	saleRepo    repository.SaleRepository
	uploadRepo  repository.UploadRepository
	publisher   events.Publisher
	normalizer  *ingest.Normalizer
	previewRows int
	now         func() time.Time
	generateID  func() (string, error)
}

func NewService(
	saleRepo repository.SaleRepository,
	uploadRepo repository.UploadRepository,
	publisher events.Publisher,
	cfg config.Upload,
) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}

	return &Service{
		saleRepo:    saleRepo,
		uploadRepo:  uploadRepo,
		publisher:   publisher,
		normalizer:  ingest.NewNormalizer(time.Now),
		previewRows: cfg.PreviewRows,
		now:         time.Now,
		generateID:  utils.GenerateID,
	}
}

// Preview lê o arquivo sem gravar nada e devolve as primeiras linhas brutas
func (s *Service) Preview(filename, contentType string, r io.Reader) (*domain.UploadPreview, error) {
	table, err := ingest.ReadFile(filename, contentType, r)
	if err != nil {
		return nil, fromReadError(err, filename)
	}

	return &domain.UploadPreview{
		Filename:  filename,
		Headers:   table.Headers,
		Rows:      table.Preview(s.previewRows),
		TotalRows: len(table.Rows),
	}, nil
}

// Upload lê, normaliza e grava o lote inteiro em uma transação.
// Falhas na auditoria e na publicação do evento não desfazem as vendas já gravadas.
func (s *Service) Upload(ctx context.Context, userID, filename, contentType string, r io.Reader) (*domain.UploadResult, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{"user_id": userID, "filename": filename})

	table, err := ingest.ReadFile(filename, contentType, r)
	if err != nil {
		return nil, fromReadError(err, filename)
	}

	sales := s.normalizer.NormalizeAll(table.Rows, userID)

	if err := s.saleRepo.InsertSales(ctx, sales); err != nil {
		logger.WithError(err).Error("Erro ao gravar o lote de vendas")
		return nil, NewUploadError(errors.Wrap(ErrPersistSales, err.Error()), errorcodes.ErrDatabaseOperation, filename, "")
	}

	logger.Infof("%d vendas importadas", len(sales))

	result := &domain.UploadResult{
		Filename:      filename,
		RowsProcessed: len(sales),
	}

	upload, err := s.recordUpload(ctx, userID, filename, len(sales))
	if err != nil {
		logger.WithError(err).Warn("Vendas gravadas, mas o registro de auditoria falhou")
	} else {
		result.UploadID = upload.ID
	}

	event := events.UploadCompletedEvent{
		UploadID:      result.UploadID,
		Filename:      filename,
		RowsProcessed: result.RowsProcessed,
		UploadedBy:    userID,
		Timestamp:     s.now().UTC(),
	}
	if err := s.publisher.PublishUploadCompleted(ctx, event); err != nil {
		logger.WithError(err).Warn("Erro ao publicar o evento de importação")
	}

	return result, nil
}

func (s *Service) recordUpload(ctx context.Context, userID, filename string, rows int) (*domain.Upload, error) {
	key, err := s.generateID()
	if err != nil {
		return nil, errors.Wrap(ErrGenerateFileKey, err.Error())
	}

	upload := &domain.Upload{
		Filename:      filename,
		FilePath:      uploadsDir + "/" + key + "_" + filename,
		RowsProcessed: &rows,
		Status:        domain.UploadStatusCompleted,
		UploadedBy:    userID,
	}

	if err := s.uploadRepo.InsertUpload(ctx, upload); err != nil {
		return nil, errors.Wrap(err, "erro ao registrar a importação")
	}

	return upload, nil
}
