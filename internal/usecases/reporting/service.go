package reporting

//go:generate mockgen -source=service.go -destination=mocks/reporter.go -package=mocks

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/vfg2006/salesvision-api/infrastructure/repository"
	"github.com/vfg2006/salesvision-api/internal/analytics"
	"github.com/vfg2006/salesvision-api/internal/domain"
	"github.com/vfg2006/salesvision-api/internal/report"
	errorcodes "github.com/vfg2006/salesvision-api/pkg/apiErrors"
	"github.com/vfg2006/salesvision-api/pkg/log"
)

type Reporter interface {
	GetDashboard(ctx context.Context, filter domain.FilterSpec) (*domain.Dashboard, error)
	GetReportSummary(ctx context.Context, filter domain.FilterSpec) (*domain.ReportSummary, error)
	ExportReport(ctx context.Context, kind report.Kind, filter domain.FilterSpec) (*report.Artifact, error)
	// FilteredSales e ExportSales permitem gerar vários formatos com uma única leitura
	FilteredSales(ctx context.Context, filter domain.FilterSpec) ([]domain.Sale, error)
	ExportSales(ctx context.Context, kind report.Kind, sales []domain.Sale) (*report.Artifact, error)
}

type Service struct {
	saleRepo repository.SaleRepository
	exporter *report.Exporter
	now      func() time.Time
}

func NewService(saleRepo repository.SaleRepository, exporter *report.Exporter) *Service {
	if exporter == nil {
		exporter = report.NewExporter(nil)
	}

	return &Service{
		saleRepo: saleRepo,
		exporter: exporter,
		now:      time.Now,
	}
}

// GetDashboard recalcula todas as visões a partir das vendas mais recentes primeiro
func (s *Service) GetDashboard(ctx context.Context, filter domain.FilterSpec) (*domain.Dashboard, error) {
	sales, err := s.listSales(ctx, repository.OrderByCreatedAt)
	if err != nil {
		return nil, err
	}

	dashboard := analytics.BuildDashboard(sales, filter, s.now())
	return &dashboard, nil
}

func (s *Service) GetReportSummary(ctx context.Context, filter domain.FilterSpec) (*domain.ReportSummary, error) {
	filtered, err := s.FilteredSales(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &domain.ReportSummary{
		Filters:     filter,
		Summary:     analytics.Summarize(filtered),
		RecordCount: len(filtered),
	}, nil
}

func (s *Service) ExportReport(ctx context.Context, kind report.Kind, filter domain.FilterSpec) (*report.Artifact, error) {
	filtered, err := s.FilteredSales(ctx, filter)
	if err != nil {
		return nil, err
	}

	return s.ExportSales(ctx, kind, filtered)
}

// ExportSales gera o arquivo a partir de vendas já filtradas
func (s *Service) ExportSales(ctx context.Context, kind report.Kind, sales []domain.Sale) (*report.Artifact, error) {
	artifact, err := s.exporter.Export(kind, sales)
	if err != nil {
		return nil, fromExportError(err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"format":  kind,
		"records": len(sales),
	}).Infof("Relatório %s gerado", artifact.Filename)

	return artifact, nil
}

// FilteredSales lista as vendas por data, mais recentes primeiro, e aplica o filtro
func (s *Service) FilteredSales(ctx context.Context, filter domain.FilterSpec) ([]domain.Sale, error) {
	sales, err := s.listSales(ctx, repository.OrderByDate)
	if err != nil {
		return nil, err
	}
	return analytics.ApplyFilter(sales, filter, s.now()), nil
}

func (s *Service) listSales(ctx context.Context, orderBy repository.SaleOrderBy) ([]domain.Sale, error) {
	sales, err := s.saleRepo.ListSales(ctx, orderBy, repository.SortDesc)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao consultar vendas")
		return nil, NewReportError(errors.Wrap(ErrListSales, err.Error()), errorcodes.ErrDatabaseOperation, "")
	}
	return sales, nil
}
