package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/hazadus/tracktime/internal/config"
	"github.com/hazadus/tracktime/internal/data"
	"github.com/hazadus/tracktime/internal/s3"
	"github.com/hazadus/tracktime/internal/youtube"
)

const defaultConfigPath = "~/.tracktime"

var errStorageNotConfigured = errors.New("хранилище S3 не настроено: укажите aws_bucket_name и aws_region")

// storageClient загружает и удаляет объекты в хранилище
type storageClient interface {
	UploadFile(ctx context.Context, body io.Reader, key, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}

// Application хранит состояние приложения, общее для всех команд
type Application struct {
	Config *config.Config
	Data   *data.AppData
	Logger zerolog.Logger

	storage storageClient    // Создается при первом обращении
	videos  *youtube.Fetcher // Создается при первом обращении
}

// NewApplication загружает конфигурацию и библиотеку треков
func NewApplication(configPath string) (*Application, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	logger := newLogger(os.Stderr, cfg.LogLevel)

	appData := data.NewAppData()
	if err := appData.LoadData(cfg.DataFile); err != nil {
		return nil, fmt.Errorf("ошибка загрузки данных: %w", err)
	}
	logger.Debug().
		Str("data_file", cfg.DataFile).
		Int("tracks", len(appData.Tracks)).
		Msg("Библиотека загружена")

	return &Application{
		Config: cfg,
		Data:   appData,
		Logger: logger,
	}, nil
}

// newLogger создает логгер для вывода в консоль с указанным уровнем
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}

// SaveData сохраняет библиотеку в файл данных
func (app *Application) SaveData() error {
	if err := app.Data.SaveData(app.Config.DataFile); err != nil {
		return err
	}
	app.Logger.Debug().Str("data_file", app.Config.DataFile).Msg("Библиотека сохранена")
	return nil
}

// Storage возвращает клиент S3, созданный по настройкам приложения
func (app *Application) Storage() (storageClient, error) {
	if app.storage != nil {
		return app.storage, nil
	}
	if !app.Config.HasStorage() {
		return nil, errStorageNotConfigured
	}

	uploader, err := s3.NewUploader(&s3.Config{
		Region:     app.Config.AwsRegion,
		AccessKey:  app.Config.AwsAccessKey,
		SecretKey:  app.Config.AwsSecretKey,
		Endpoint:   app.Config.AwsEndpoint,
		BucketName: app.Config.AwsBucketName,
	}, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания S3 клиента: %w", err)
	}
	app.storage = uploader
	return app.storage, nil
}

// Videos возвращает клиент для получения сведений о видео YouTube
func (app *Application) Videos() *youtube.Fetcher {
	if app.videos == nil {
		app.videos = youtube.NewFetcher(app.Logger)
	}
	return app.videos
}

func main() {
	app, err := NewApplication(defaultConfigPath)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.createRootCommand(ctx).ExecuteContext(ctx); err != nil {
		app.Logger.Debug().Err(err).Msg("Команда завершилась с ошибкой")
		stop()
		os.Exit(1)
	}
}
