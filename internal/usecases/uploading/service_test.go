package uploading

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/salesvision-api/infrastructure/events"
	eventmocks "github.com/vfg2006/salesvision-api/infrastructure/events/mocks"
	"github.com/vfg2006/salesvision-api/infrastructure/repository/mocks"
	"github.com/vfg2006/salesvision-api/internal/config"
	"github.com/vfg2006/salesvision-api/internal/domain"
	"github.com/vfg2006/salesvision-api/internal/ingest"
	errorcodes "github.com/vfg2006/salesvision-api/pkg/apiErrors"
)

const (
	testUserID = "7f9c2f64-3c1e-4d43-9a53-2d1b0f3c8a11"
	salesCSV   = "date,product,Total,cantidad\n2024-01-05,Widget,150.50,2\n2024-01-06,Gadget,20,\n"
)

var fixedNow = time.Date(2024, 1, 7, 10, 0, 0, 0, time.UTC)

type serviceMocks struct {
	saleRepo   *mocks.MockSaleRepository
	uploadRepo *mocks.MockUploadRepository
	publisher  *eventmocks.MockPublisher
}

func newTestService(ctrl *gomock.Controller) (*Service, serviceMocks) {
	m := serviceMocks{
		saleRepo:   mocks.NewMockSaleRepository(ctrl),
		uploadRepo: mocks.NewMockUploadRepository(ctrl),
		publisher:  eventmocks.NewMockPublisher(ctrl),
	}

	service := NewService(m.saleRepo, m.uploadRepo, m.publisher, config.Upload{PreviewRows: 1})
	service.now = func() time.Time { return fixedNow }
	service.normalizer = ingest.NewNormalizer(func() time.Time { return fixedNow })
	service.generateID = func() (string, error) { return "AbC123", nil }

	return service, m
}

func assertUploadCode(t *testing.T, err error, sentinel error, code string) {
	t.Helper()

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)

	var uploadErr *UploadError
	require.True(t, errors.As(err, &uploadErr))
	assert.Equal(t, code, uploadErr.Code)
}

func TestService_Preview(t *testing.T) {
	ctrl := gomock.NewController(t)
	service, _ := newTestService(ctrl)

	t.Run("Mostra cabeçalhos, primeiras linhas e total", func(t *testing.T) {
		preview, err := service.Preview("vendas.csv", "text/csv", strings.NewReader(salesCSV))
		require.NoError(t, err)

		assert.Equal(t, "vendas.csv", preview.Filename)
		assert.Equal(t, []string{"date", "product", "Total", "cantidad"}, preview.Headers)
		assert.Equal(t, 2, preview.TotalRows)
		require.Len(t, preview.Rows, 1)
		assert.Equal(t, "Widget", preview.Rows[0]["product"])
	})

	t.Run("Arquivo com apenas cabeçalho", func(t *testing.T) {
		_, err := service.Preview("vendas.csv", "", strings.NewReader("date,product\n"))
		assertUploadCode(t, err, ingest.ErrEmptyFile, errorcodes.ErrEmptyFile)
	})

	t.Run("Planilha corrompida", func(t *testing.T) {
		_, err := service.Preview("vendas.xlsx", "", strings.NewReader("isto não é um zip"))
		assertUploadCode(t, err, ingest.ErrUnreadableFile, errorcodes.ErrUnreadableFile)
	})
}

func TestService_Upload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		setup    func(m serviceMocks)
		validate func(t *testing.T, result *domain.UploadResult, err error)
	}{
		{
			name:     "Lote gravado, auditado e publicado",
			filename: "vendas.csv",
			content:  salesCSV,
			setup: func(m serviceMocks) {
				gomock.InOrder(
					m.saleRepo.EXPECT().InsertSales(gomock.Any(), gomock.Any()).DoAndReturn(
						func(_ context.Context, sales []domain.Sale) error {
							require.Len(t, sales, 2)
							assert.Equal(t, "Widget", sales[0].ProductName)
							assert.Equal(t, "150.5", sales[0].TotalAmount.String())
							assert.Equal(t, 2, sales[0].Quantity)
							assert.Equal(t, 1, sales[1].Quantity)
							assert.Equal(t, testUserID, sales[1].UploadedBy)
							return nil
						}),
					m.uploadRepo.EXPECT().InsertUpload(gomock.Any(), gomock.Any()).DoAndReturn(
						func(_ context.Context, upload *domain.Upload) error {
							assert.Equal(t, "uploads/AbC123_vendas.csv", upload.FilePath)
							assert.Equal(t, domain.UploadStatusCompleted, upload.Status)
							require.NotNil(t, upload.RowsProcessed)
							assert.Equal(t, 2, *upload.RowsProcessed)
							upload.ID = "upload-1"
							return nil
						}),
					m.publisher.EXPECT().PublishUploadCompleted(gomock.Any(), events.UploadCompletedEvent{
						UploadID:      "upload-1",
						Filename:      "vendas.csv",
						RowsProcessed: 2,
						UploadedBy:    testUserID,
						Timestamp:     fixedNow,
					}).Return(nil),
				)
			},
			validate: func(t *testing.T, result *domain.UploadResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, &domain.UploadResult{UploadID: "upload-1", Filename: "vendas.csv", RowsProcessed: 2}, result)
			},
		},
		{
			name:     "Arquivo .txt não chega ao repositório",
			filename: "vendas.txt",
			content:  salesCSV,
			setup:    func(m serviceMocks) {},
			validate: func(t *testing.T, result *domain.UploadResult, err error) {
				assertUploadCode(t, err, ingest.ErrUnsupportedFileType, errorcodes.ErrUnsupportedFileType)
				assert.Nil(t, result)
			},
		},
		{
			name:     "Falha ao gravar vendas não gera auditoria nem evento",
			filename: "vendas.csv",
			content:  salesCSV,
			setup: func(m serviceMocks) {
				m.saleRepo.EXPECT().InsertSales(gomock.Any(), gomock.Any()).Return(errors.New("deadlock detected"))
			},
			validate: func(t *testing.T, result *domain.UploadResult, err error) {
				assertUploadCode(t, err, ErrPersistSales, errorcodes.ErrDatabaseOperation)
				assert.Contains(t, err.Error(), "deadlock detected")
				assert.Nil(t, result)
			},
		},
		{
			name:     "Falha na auditoria não desfaz o upload",
			filename: "vendas.csv",
			content:  salesCSV,
			setup: func(m serviceMocks) {
				m.saleRepo.EXPECT().InsertSales(gomock.Any(), gomock.Any()).Return(nil)
				m.uploadRepo.EXPECT().InsertUpload(gomock.Any(), gomock.Any()).Return(errors.New("uploads table missing"))
				m.publisher.EXPECT().PublishUploadCompleted(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, event events.UploadCompletedEvent) error {
						assert.Empty(t, event.UploadID)
						return nil
					})
			},
			validate: func(t *testing.T, result *domain.UploadResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 2, result.RowsProcessed)
				assert.Empty(t, result.UploadID)
			},
		},
		{
			name:     "Falha na publicação apenas gera log",
			filename: "vendas.csv",
			content:  salesCSV,
			setup: func(m serviceMocks) {
				m.saleRepo.EXPECT().InsertSales(gomock.Any(), gomock.Any()).Return(nil)
				m.uploadRepo.EXPECT().InsertUpload(gomock.Any(), gomock.Any()).Return(nil)
				m.publisher.EXPECT().PublishUploadCompleted(gomock.Any(), gomock.Any()).Return(errors.New("channel closed"))
			},
			validate: func(t *testing.T, result *domain.UploadResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 2, result.RowsProcessed)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service, m := newTestService(ctrl)
			tt.setup(m)

			result, err := service.Upload(context.Background(), testUserID, tt.filename, "", strings.NewReader(tt.content))

			tt.validate(t, result, err)
		})
	}
}

func TestNewService_SemPublisher(t *testing.T) {
	service := NewService(nil, nil, nil, config.Upload{})
	assert.Equal(t, events.NoopPublisher{}, service.publisher)
}
