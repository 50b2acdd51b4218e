package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/salesvision-api/infrastructure/database/postgres"
	"github.com/vfg2006/salesvision-api/infrastructure/events"
	"github.com/vfg2006/salesvision-api/infrastructure/repository"
	"github.com/vfg2006/salesvision-api/internal/api"
	"github.com/vfg2006/salesvision-api/internal/config"
	"github.com/vfg2006/salesvision-api/internal/report"
	"github.com/vfg2006/salesvision-api/internal/scheduler"
	"github.com/vfg2006/salesvision-api/internal/usecases/authenticating"
	"github.com/vfg2006/salesvision-api/internal/usecases/reporting"
	"github.com/vfg2006/salesvision-api/internal/usecases/uploading"
	"github.com/vfg2006/salesvision-api/pkg/log"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, ok := log.Setup(cfg.App.LogLevel)
	if !ok {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.Migrate {
		if err := postgres.RunMigrations(pgConn); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações")
		}
	}

	userRepo := repository.NewUserRepository(pgConn)
	saleRepo := repository.NewSaleRepository(pgConn)
	uploadRepo := repository.NewUploadRepository(pgConn)

	publisher, err := events.NewPublisher(cfg.Events)
	if err != nil {
		// Sem broker a importação continua funcionando, só não avisa ninguém
		logrus.WithError(err).Warn("Erro ao conectar ao broker de eventos, seguindo sem publicação")
		publisher = events.NoopPublisher{}
	}
	defer publisher.Close()

	authenticator := authenticating.NewService(userRepo, cfg.Auth)
	uploader := uploading.NewService(saleRepo, uploadRepo, publisher, cfg.Upload)
	reporter := reporting.NewService(saleRepo, report.NewExporter(nil))

	reportScheduleService := scheduler.NewReportScheduleService(reporter, cfg)
	if err := reportScheduleService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de relatórios")
	} else {
		logrus.Info("Agendador de relatórios iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		pgConn,
		authenticator,
		uploader,
		reporter,
		reportScheduleService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger ajusta o diretório de trabalho para achar o .env e aplica o formato padrão
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	log.Setup(logrus.InfoLevel.String())
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
