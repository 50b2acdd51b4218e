package reporting

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/salesvision-api/infrastructure/repository"
	"github.com/vfg2006/salesvision-api/infrastructure/repository/mocks"
	"github.com/vfg2006/salesvision-api/internal/domain"
	"github.com/vfg2006/salesvision-api/internal/report"
	errorcodes "github.com/vfg2006/salesvision-api/pkg/apiErrors"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string {
	return &s
}

func storedSales() []domain.Sale {
	return []domain.Sale{
		{ID: "s-1", Date: "2024-06-12", ProductName: "Widget", Category: strPtr("Tools"), Quantity: 2, TotalAmount: decimal.RequireFromString("100.10"), Region: strPtr("North")},
		{ID: "s-2", Date: "2024-06-07", ProductName: "Gadget", Quantity: 1, TotalAmount: decimal.RequireFromString("50.20")},
		{ID: "s-3", Date: "2024-04-01", ProductName: "Gizmo", Category: strPtr("Toys"), Quantity: 1, TotalAmount: decimal.NewFromInt(10)},
	}
}

func newTestService(ctrl *gomock.Controller) (*Service, *mocks.MockSaleRepository) {
	saleRepo := mocks.NewMockSaleRepository(ctrl)
	service := NewService(saleRepo, report.NewExporter(func() time.Time { return fixedNow }))
	service.now = func() time.Time { return fixedNow }
	return service, saleRepo
}

func assertReportCode(t *testing.T, err error, sentinel error, code string) {
	t.Helper()

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)

	var reportErr *ReportError
	require.True(t, errors.As(err, &reportErr))
	assert.Equal(t, code, reportErr.Code)
}

func TestService_GetDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	service, saleRepo := newTestService(ctrl)

	saleRepo.EXPECT().ListSales(gomock.Any(), repository.OrderByCreatedAt, repository.SortDesc).Return(storedSales(), nil)

	dashboard, err := service.GetDashboard(context.Background(), domain.FilterSpec{DateRange: domain.DateRange30Days, Category: domain.CategoryAll})
	require.NoError(t, err)

	assert.Equal(t, 2, dashboard.Summary.TotalOrders)
	assert.Equal(t, "150.3", dashboard.Summary.TotalSales.String())
	assert.Equal(t, []string{"Tools", "Toys"}, dashboard.Categories)
	require.Len(t, dashboard.RecentSales, 2)
	assert.Equal(t, "Widget", dashboard.RecentSales[0].Product)
}

func TestService_GetReportSummary(t *testing.T) {
	tests := []struct {
		name     string
		filter   domain.FilterSpec
		setup    func(saleRepo *mocks.MockSaleRepository)
		validate func(t *testing.T, summary *domain.ReportSummary, err error)
	}{
		{
			name:   "Resumo filtrado por categoria",
			filter: domain.FilterSpec{DateRange: domain.DateRangeAll, Category: "Toys"},
			setup: func(saleRepo *mocks.MockSaleRepository) {
				saleRepo.EXPECT().ListSales(gomock.Any(), repository.OrderByDate, repository.SortDesc).Return(storedSales(), nil)
			},
			validate: func(t *testing.T, summary *domain.ReportSummary, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, summary.RecordCount)
				assert.Equal(t, "10", summary.Summary.TotalSales.String())
				assert.Equal(t, "Toys", summary.Filters.Category)
			},
		},
		{
			name:   "Erro no banco",
			filter: domain.DefaultFilter(),
			setup: func(saleRepo *mocks.MockSaleRepository) {
				saleRepo.EXPECT().ListSales(gomock.Any(), repository.OrderByDate, repository.SortDesc).Return(nil, errors.New("timeout"))
			},
			validate: func(t *testing.T, summary *domain.ReportSummary, err error) {
				assertReportCode(t, err, ErrListSales, errorcodes.ErrDatabaseOperation)
				assert.Nil(t, summary)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service, saleRepo := newTestService(ctrl)
			tt.setup(saleRepo)

			summary, err := service.GetReportSummary(context.Background(), tt.filter)

			tt.validate(t, summary, err)
		})
	}
}

func TestService_ExportReport(t *testing.T) {
	t.Run("PDF do conjunto filtrado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, saleRepo := newTestService(ctrl)
		saleRepo.EXPECT().ListSales(gomock.Any(), repository.OrderByDate, repository.SortDesc).Return(storedSales(), nil)

		artifact, err := service.ExportReport(context.Background(), report.KindPDF, domain.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, "salesvision_report_2024-06-15.pdf", artifact.Filename)
		assert.True(t, bytes.HasPrefix(artifact.Content, []byte("%PDF")))
	})

	t.Run("Filtro sem resultados recusa a exportação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, saleRepo := newTestService(ctrl)
		saleRepo.EXPECT().ListSales(gomock.Any(), repository.OrderByDate, repository.SortDesc).Return(storedSales(), nil)

		artifact, err := service.ExportReport(context.Background(), report.KindWorkbook, domain.FilterSpec{DateRange: domain.DateRange7Days, Category: "Toys"})
		assertReportCode(t, err, report.ErrNothingToExport, errorcodes.ErrNothingToExport)
		assert.Nil(t, artifact)
	})

	t.Run("Formato desconhecido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, saleRepo := newTestService(ctrl)
		saleRepo.EXPECT().ListSales(gomock.Any(), repository.OrderByDate, repository.SortDesc).Return(storedSales(), nil)

		_, err := service.ExportReport(context.Background(), report.Kind("docx"), domain.DefaultFilter())
		assertReportCode(t, err, report.ErrExportFailed, errorcodes.ErrExportFailed)
	})
}

func TestService_ExportSales_ReaproveitaConsulta(t *testing.T) {
	ctrl := gomock.NewController(t)
	service, saleRepo := newTestService(ctrl)
	saleRepo.EXPECT().ListSales(gomock.Any(), repository.OrderByDate, repository.SortDesc).Return(storedSales(), nil).Times(1)

	filtered, err := service.FilteredSales(context.Background(), domain.FilterSpec{DateRange: domain.DateRange30Days, Category: domain.CategoryAll})
	require.NoError(t, err)
	require.Len(t, filtered, 2)

	pdf, err := service.ExportSales(context.Background(), report.KindPDF, filtered)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf.Content, []byte("%PDF")))

	workbook, err := service.ExportSales(context.Background(), report.KindWorkbook, filtered)
	require.NoError(t, err)
	assert.Equal(t, "SalesVision_Report_2024-06-15.xlsx", workbook.Filename)

	_, err = service.ExportSales(context.Background(), report.KindPDF, nil)
	assertReportCode(t, err, report.ErrNothingToExport, errorcodes.ErrNothingToExport)
}
