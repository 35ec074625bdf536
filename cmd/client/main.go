package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/trip-keeper/internal/adapter"
	"github.com/MKhiriev/trip-keeper/internal/client"
	"github.com/MKhiriev/trip-keeper/internal/config"
	"github.com/MKhiriev/trip-keeper/internal/crypto"
	"github.com/MKhiriev/trip-keeper/internal/fieldcodec"
	"github.com/MKhiriev/trip-keeper/internal/keys"
	"github.com/MKhiriev/trip-keeper/internal/keystore"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/internal/service"
	"github.com/MKhiriev/trip-keeper/internal/tui"
	"github.com/MKhiriev/trip-keeper/internal/workers"
	"github.com/MKhiriev/trip-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.BuildInfo{Version: buildVersion, Date: buildDate, Commit: buildCommit}
	fmt.Println(buildInfo)

	log := logger.NewClientLogger("trip-keeper-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, buildInfo, log); err != nil {
		log.Error().Err(err).Msg("client run error")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.ClientConfig, buildInfo models.BuildInfo, log *logger.Logger) error {
	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		return fmt.Errorf("create server adapter: %w", err)
	}

	keyStore, closeKeyStore, err := keystore.NewSQLiteKeyStore(ctx, cfg.Storage.KeysDSN, log)
	if err != nil {
		return fmt.Errorf("open key store: %w", err)
	}
	defer func() {
		if err := closeKeyStore(); err != nil {
			log.Err(err).Msg("close key store")
		}
	}()

	codec := crypto.NewSymmetricCodec()
	keyManager := keys.NewManager(codec, keyStore, keys.NewDocumentRemote(serverAdapter), log)
	services := service.NewClientServices(serverAdapter, keyManager, fieldcodec.New(codec), cfg.Sync, log)

	ui, err := tui.New(services, buildInfo, log)
	if err != nil {
		return fmt.Errorf("create ui: %w", err)
	}

	ws := workers.NewWorkers(workers.NewKeyShareWorker(services.KeyJob, cfg.Sync.KeyShareInterval))

	app, err := client.NewApp(ui, ws, serverAdapter, log)
	if err != nil {
		return fmt.Errorf("init client app: %w", err)
	}

	return app.Run(ctx)
}
