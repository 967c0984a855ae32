package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hazadus/tracktime/internal/chapters"
)

// createChaptersCommand создает команду chapters
func (app *Application) createChaptersCommand(ctx context.Context) *cobra.Command {
	var uploadName string

	cmd := &cobra.Command{
		Use:   "chapters",
		Short: "Print chapter timestamps for the library",
		Long: `Print one "timestamp Artist - Title" line per track, where each timestamp is the sum
of the lengths of the previous tracks. Paste the list into a video description of a mix.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.printChapters(ctx, uploadName)
		},
	}
	cmd.Flags().StringVar(&uploadName, "upload", "", "publish the list to S3 under this name")

	return cmd
}

func (app *Application) printChapters(ctx context.Context, uploadName string) error {
	list := chapters.Build(app.Data.Tracks)
	if len(list) == 0 {
		fmt.Println("📚 Библиотека пуста. Добавьте треки с помощью команды 'add'.")
		return nil
	}

	if err := chapters.Render(os.Stdout, list); err != nil {
		return fmt.Errorf("ошибка вывода таймкодов: %w", err)
	}

	if uploadName == "" {
		return nil
	}

	storage, err := app.Storage()
	if err != nil {
		return err
	}
	publisher := chapters.NewPublisher(storage, app.Config.ChaptersPrefix)
	url, err := publisher.Publish(ctx, uploadName, list)
	if err != nil {
		return err
	}

	fmt.Printf("\n✅ Таймкоды опубликованы: %s\n", url)
	return nil
}
