package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/hazadus/mpreview/internal/backup"
	"github.com/hazadus/mpreview/internal/browser"
	"github.com/hazadus/mpreview/internal/config"
	"github.com/hazadus/mpreview/internal/data"
	"github.com/hazadus/mpreview/internal/logging"
	"github.com/hazadus/mpreview/internal/playback"
	"github.com/hazadus/mpreview/internal/player"
	"github.com/hazadus/mpreview/internal/s3"
	"github.com/hazadus/mpreview/internal/search"
	"github.com/hazadus/mpreview/internal/widget"
)

const (
	defaultConfigPath = "~/.mpreview/config.yaml"
)

// Application состояние CLI: конфигурация, хранилище, плеер и виджет
type Application struct {
	Config *config.Config
	Store  data.Store
	Player *player.Player
	Widget *widget.Widget

	// newBackupStorage создает хранилище резервных копий
	newBackupStorage func() (backup.Storage, error)
}

// NewApplication открывает хранилище и собирает виджет по конфигурации
func NewApplication(ctx context.Context, cfg *config.Config) (*Application, error) {
	store, err := data.Open(cfg.StoreBackend, cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия хранилища: %w", err)
	}

	p := player.NewPlayer()
	app := newApplication(ctx, cfg, store, p, browser.NewSystemOpener())
	app.Player = p
	return app, nil
}

// newApplication собирает приложение из готовых зависимостей
func newApplication(ctx context.Context, cfg *config.Config, store data.Store, engine playback.Engine, opener browser.Opener) *Application {
	client := search.NewClient(search.ProviderFromConfig(ctx, cfg))

	app := &Application{
		Config: cfg,
		Store:  store,
		Widget: widget.New(widget.Options{
			Search:  client,
			Engine:  engine,
			Store:   store,
			Opener:  opener,
			Backend: cfg.BaseURL,
		}),
	}
	app.newBackupStorage = app.s3Storage
	return app
}

func (app *Application) s3Storage() (backup.Storage, error) {
	return s3.NewBucket(&s3.Config{
		Region:     app.Config.AwsRegion,
		AccessKey:  app.Config.AwsAccessKey,
		SecretKey:  app.Config.AwsSecretKey,
		Endpoint:   app.Config.AwsEndpoint,
		BucketName: app.Config.AwsBucketName,
	})
}

// Close освобождает плеер и хранилище
func (app *Application) Close() error {
	if app.Player != nil {
		_ = app.Player.Close()
	}
	return app.Store.Close()
}

func main() {
	cfg, err := config.LoadConfig(defaultConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка настройки логирования: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApplication(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		_ = closeLog()
		os.Exit(1)
	}

	log.WithField("component", "main").Debugf("хранилище: %s (%s)", cfg.DataPath, cfg.StoreBackend)

	rootCmd := app.createRootCommand(ctx)
	err = rootCmd.Execute()
	_ = app.Close()
	_ = closeLog()
	if err != nil {
		os.Exit(1)
	}
}
