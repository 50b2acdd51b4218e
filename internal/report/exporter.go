// Package report gera os relatórios exportáveis (PDF e XLSX) a partir das vendas filtradas.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/salesvision-api/internal/analytics"
	"github.com/vfg2006/salesvision-api/internal/domain"
)

var (
	ErrNothingToExport = errors.New("não há dados para exportar")
	ErrExportFailed    = errors.New("erro ao gerar o relatório")
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	reportTitle = "SalesVision - Sales Report"
)

type Kind string

const (
	KindPDF      Kind = "pdf"
	KindWorkbook Kind = "xlsx"
)

// Artifact é um arquivo pronto para download
type Artifact struct {
	Filename    string
	ContentType string
	Content     []byte
}

type Exporter struct {
	now func() time.Time
}

func NewExporter(now func() time.Time) *Exporter {
	if now == nil {
		now = time.Now
	}
	return &Exporter{now: now}
}

// reportData concentra as métricas compartilhadas pelos dois formatos
type reportData struct {
	GeneratedAt time.Time
	Sales       []domain.Sale
	Summary     domain.SalesSummary
	TopProducts []domain.BreakdownItem
	Categories  []domain.BreakdownItem
}

func (e *Exporter) prepare(sales []domain.Sale) (*reportData, error) {
	if len(sales) == 0 {
		return nil, ErrNothingToExport
	}

	return &reportData{
		GeneratedAt: e.now(),
		Sales:       sales,
		Summary:     analytics.Summarize(sales),
		TopProducts: analytics.TopProducts(sales, analytics.TopProductsLimit),
		Categories:  analytics.SalesByCategory(sales),
	}, nil
}

// Export gera o artefato do tipo pedido
func (e *Exporter) Export(kind Kind, sales []domain.Sale) (*Artifact, error) {
	switch kind {
	case KindPDF:
		return e.ExportPDF(sales)
	case KindWorkbook:
		return e.ExportWorkbook(sales)
	default:
		return nil, fmt.Errorf("%w: formato desconhecido %q", ErrExportFailed, kind)
	}
}

func (e *Exporter) ExportPDF(sales []domain.Sale) (*Artifact, error) {
	data, err := e.prepare(sales)
	if err != nil {
		return nil, err
	}

	content, err := safeBuild(KindPDF, func() ([]byte, error) {
		return buildPDF(data)
	})
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Filename:    fmt.Sprintf("salesvision_report_%s.pdf", data.GeneratedAt.UTC().Format(time.DateOnly)),
		ContentType: ContentTypePDF,
		Content:     content,
	}, nil
}

func (e *Exporter) ExportWorkbook(sales []domain.Sale) (*Artifact, error) {
	data, err := e.prepare(sales)
	if err != nil {
		return nil, err
	}

	content, err := safeBuild(KindWorkbook, func() ([]byte, error) {
		return buildWorkbook(data)
	})
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Filename:    fmt.Sprintf("SalesVision_Report_%s.xlsx", data.GeneratedAt.UTC().Format(time.DateOnly)),
		ContentType: ContentTypeXLSX,
		Content:     content,
	}, nil
}

// safeBuild isola falhas de um formato, inclusive panics da biblioteca de geração
func safeBuild(kind Kind, build func() ([]byte, error)) (content []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("format", kind).Errorf("report: panic ao gerar relatório: %v", r)
			content, err = nil, fmt.Errorf("%w: %v", ErrExportFailed, r)
		}
	}()

	content, err = build()
	if err != nil {
		logrus.WithField("format", kind).WithError(err).Error("report: erro ao gerar relatório")
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	return content, nil
}
