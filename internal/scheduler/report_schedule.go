// Package scheduler contém os serviços agendados da aplicação
package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vfg2006/salesvision-api/internal/config"
	"github.com/vfg2006/salesvision-api/internal/domain"
	"github.com/vfg2006/salesvision-api/internal/report"
	"github.com/vfg2006/salesvision-api/internal/usecases/reporting"
)

type ReportScheduleConfig struct {
	CronSchedule string
	SyncEnabled  bool
	OutputDir    string
}

// ReportScheduleService gera periodicamente o PDF e a planilha com todas as vendas
type ReportScheduleService struct {
	scheduler           *gocron.Scheduler
	reporter            reporting.Reporter
	config              ReportScheduleConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastFiles           []string
	lastError           string
}

func NewReportScheduleService(reporter reporting.Reporter, cfg *config.Config) *ReportScheduleService {
	scheduleConfig := ReportScheduleConfig{
		CronSchedule: cfg.ReportSchedule.CronSchedule, // Default: segundas às 7h
		SyncEnabled:  cfg.ReportSchedule.Enabled,      // Default: desabilitado
		OutputDir:    cfg.ReportSchedule.OutputDir,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": scheduleConfig.CronSchedule,
		"output_dir":    scheduleConfig.OutputDir,
	}).Info("Configuração do agendador de relatórios carregada")

	return &ReportScheduleService{
		scheduler: gocron.NewScheduler(time.Local),
		reporter:  reporter,
		config:    scheduleConfig,
	}
}

func (s *ReportScheduleService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de relatórios desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de relatórios")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.GenerateReports(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na geração agendada de relatórios")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar geração de relatórios: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// GenerateReports lê as vendas uma vez e exporta os dois formatos sem filtro, em
// paralelo. A falha de um formato não impede a gravação do outro.
func (s *ReportScheduleService) GenerateReports(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Geração de relatórios já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	files, err := s.exportAll(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastFiles = files
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	s.syncMutex.Unlock()

	return err
}

func (s *ReportScheduleService) exportAll(ctx context.Context) ([]string, error) {
	if err := os.MkdirAll(s.config.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("erro ao criar diretório de relatórios: %w", err)
	}

	sales, err := s.reporter.FilteredSales(ctx, domain.DefaultFilter())
	if err != nil {
		logrus.WithError(err).Error("Erro ao consultar vendas para os relatórios agendados")
		return nil, err
	}

	var (
		files   []string
		filesMu sync.Mutex
		// Sem WithContext: um formato com erro não cancela o outro
		g errgroup.Group
	)
	for _, kind := range []report.Kind{report.KindPDF, report.KindWorkbook} {
		g.Go(func() error {
			path, err := s.exportOne(ctx, kind, sales)
			if err != nil {
				return err
			}

			filesMu.Lock()
			files = append(files, path)
			filesMu.Unlock()
			return nil
		})
	}

	err = g.Wait()
	return files, err
}

func (s *ReportScheduleService) exportOne(ctx context.Context, kind report.Kind, sales []domain.Sale) (string, error) {
	artifact, err := s.reporter.ExportSales(ctx, kind, sales)
	if err != nil {
		logrus.WithError(err).WithField("format", kind).Error("Erro ao gerar relatório agendado")
		return "", err
	}

	path := filepath.Join(s.config.OutputDir, artifact.Filename)
	if err := os.WriteFile(path, artifact.Content, 0o644); err != nil {
		logrus.WithError(err).WithField("path", path).Error("Erro ao gravar relatório agendado")
		return "", err
	}

	logrus.WithField("path", path).Info("Relatório agendado gravado")
	return path, nil
}

// TriggerManualSync inicia manualmente a geração de relatórios
func (s *ReportScheduleService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Geração de relatórios já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando geração manual de relatórios")
	go func() {
		if err := s.GenerateReports(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na geração manual de relatórios")
		}
	}()

	return true
}

// GetStatus retorna o status atual do agendador
func (s *ReportScheduleService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"output_dir":             s.config.OutputDir,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_files":             s.lastFiles,
		"last_error":             s.lastError,
	}
}
