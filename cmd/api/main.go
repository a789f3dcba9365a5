package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-ledger-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-ledger-api/infrastructure/repository"
	"github.com/vfg2006/campaign-ledger-api/internal/api"
	"github.com/vfg2006/campaign-ledger-api/internal/config"
	"github.com/vfg2006/campaign-ledger-api/internal/scheduler"
	"github.com/vfg2006/campaign-ledger-api/internal/usecases/dispatching"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	campaignRepo := repository.NewCampaignRepository(pgConn)
	eventRepo := repository.NewEventRepository(pgConn)
	metricRepo := repository.NewMetricRepository(pgConn)
	patternRepo := repository.NewPatternRepository(pgConn)
	assetRepo := repository.NewAssetRepository(pgConn)
	snapshotRepo := repository.NewReportSnapshotRepository(pgConn)

	dispatchService := dispatching.NewService(
		campaignRepo,
		eventRepo,
		metricRepo,
		patternRepo,
		assetRepo,
		cfg,
	)

	// Agendador de snapshots periódicos de relatório
	snapshotService := scheduler.NewReportSnapshotService(
		campaignRepo,
		metricRepo,
		patternRepo,
		snapshotRepo,
		cfg,
	)

	if err := snapshotService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshots de relatório")
	}

	server, err := api.New(cfg, dispatchService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
