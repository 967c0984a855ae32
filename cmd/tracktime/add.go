package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazadus/tracktime/internal/clock"
	"github.com/hazadus/tracktime/internal/metadata"
	"github.com/hazadus/tracktime/internal/uploader"
	"github.com/hazadus/tracktime/internal/utils"
)

// createAddCommand создает команду add с привязкой к экземпляру приложения
func (app *Application) createAddCommand(ctx context.Context) *cobra.Command {
	var upload bool

	cmd := &cobra.Command{
		Use:   "add [file path]",
		Short: "Add an mp3 file to the library",
		Long:  `Read tags and length of an mp3 file and add it to the library. With --upload the file is also copied to S3 storage.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Загрузка больших файлов может занимать время
			addCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
			defer cancel()
			return app.addTrack(addCtx, args[0], upload)
		},
	}
	cmd.Flags().BoolVar(&upload, "upload", false, "also upload the file to S3 storage")

	return cmd
}

func (app *Application) addTrack(ctx context.Context, filePath string, upload bool) error {
	var store uploader.ObjectUploader
	if upload {
		storage, err := app.Storage()
		if err != nil {
			return err
		}
		store = storage
	}

	service := uploader.NewService(
		metadata.NewExtractor(app.Logger),
		store,
		app.Config.TracksPrefix,
		app.Data,
		app.Logger,
	)

	var progress func(int64)
	if upload {
		fmt.Printf("📤 Загружаем файл в S3: %s\n", filePath)
		fmt.Printf("   Бакет: %s\n", app.Config.AwsBucketName)
		fmt.Printf("   Ключ: %s\n", service.Key(filePath))
		progress = uploadProgressPrinter(filePath)
	}

	result, err := service.AddFile(ctx, filePath, upload, progress)
	if err != nil {
		return fmt.Errorf("ошибка добавления трека: %w", err)
	}
	if upload {
		fmt.Printf("\n✅ Файл загружен: %s\n", result.URL)
	}

	if err := app.SaveData(); err != nil {
		// Без записи в библиотеке загруженный объект никто не найдет и не удалит
		if discardErr := service.Discard(ctx, result); discardErr != nil {
			fmt.Printf("⚠️  Не удалось удалить загруженный файл: %v\n", discardErr)
		}
		return fmt.Errorf("ошибка сохранения данных: %w", err)
	}

	fmt.Printf("📦 Трек #%d добавлен: %s [%s]\n", result.Track.ID, result.Track.Name(), result.Track.Clock())
	fmt.Printf("⏱️  Общая продолжительность библиотеки: %s\n", clock.Format(app.Data.TotalLength()))
	return nil
}

// uploadProgressPrinter возвращает функцию, выводящую прогресс загрузки
func uploadProgressPrinter(filePath string) func(int64) {
	info, err := os.Stat(filePath)
	if err != nil || info.Size() == 0 {
		return nil
	}
	size := info.Size()

	startTime := time.Now()
	return func(bytesRead int64) {
		elapsed := time.Since(startTime)
		percentage := float64(bytesRead) / float64(size) * 100

		var speed float64
		if seconds := elapsed.Seconds(); seconds > 0 {
			speed = float64(bytesRead) / seconds
		}

		var remaining time.Duration
		if speed > 0 {
			remaining = time.Duration(float64(size-bytesRead) / speed * float64(time.Second))
		}

		fmt.Printf("\r📊 Прогресс: %.1f%% | Скорость: %s/s | Прошло: %s | Осталось: %s",
			percentage,
			utils.FormatFileSize(int64(speed)),
			clock.FormatDuration(elapsed),
			clock.FormatDuration(remaining))
	}
}
