// Script de preparação do banco: aplica as migrações e, opcionalmente,
// cadastra o primeiro administrador.
//
//	go run ./infrastructure/migration/script -admin-email=admin@empresa.com
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/salesvision-api/infrastructure/database/postgres"
	"github.com/vfg2006/salesvision-api/infrastructure/repository"
	"github.com/vfg2006/salesvision-api/internal/config"
	"github.com/vfg2006/salesvision-api/internal/domain"
	"github.com/vfg2006/salesvision-api/internal/usecases/authenticating"
	"github.com/vfg2006/salesvision-api/pkg/log"
)

const generatedPasswordLength = 16

func setupLogger() {
	log.Setup(os.Getenv("LOG_LEVEL"))
	logrus.Info("Iniciando script de migração...")
}

func main() {
	setupLogger()

	adminEmail := flag.String("admin-email", os.Getenv("SEED_ADMIN_EMAIL"), "e-mail do administrador inicial")
	adminPassword := flag.String("admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "senha do administrador; gerada quando vazia")
	adminName := flag.String("admin-name", "", "nome completo do administrador")
	skipMigrations := flag.Bool("skip-migrations", false, "não aplica as migrações")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	startTime := time.Now()

	if !*skipMigrations {
		if err := postgres.RunMigrations(conn); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações")
		}
	}

	if *adminEmail != "" {
		seedAdmin(ctx, authenticating.NewService(repository.NewUserRepository(conn), cfg.Auth), *adminEmail, *adminPassword, *adminName)
	}

	logrus.Infof("Script concluído em %v", time.Since(startTime))
}

func seedAdmin(ctx context.Context, service authenticating.Authenticator, email, password, name string) {
	generated := false
	if password == "" {
		var err error
		password, err = authenticating.GenerateStrongPassword(generatedPasswordLength)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao gerar senha do administrador")
		}
		generated = true
	}

	req := domain.SignUpRequest{Email: email, Password: password}
	if name != "" {
		req.FullName = &name
	}

	user, err := service.CreateUser(ctx, req, domain.RoleAdmin)
	if err != nil {
		if errors.Is(err, authenticating.ErrUserAlreadyExists) {
			logrus.WithError(err).Warn("Administrador não cadastrado")
			return
		}
		logrus.WithError(err).Fatal("Erro ao cadastrar administrador")
	}

	fields := logrus.Fields{"user_id": user.ID, "email": user.Email}
	if generated {
		fields["password"] = password
	}
	logrus.WithFields(fields).Info("Administrador cadastrado")
}
