package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazadus/tracktime/internal/clock"
)

// createYouTubeCommand создает команду youtube
func (app *Application) createYouTubeCommand(ctx context.Context) *cobra.Command {
	var add bool

	cmd := &cobra.Command{
		Use:   "youtube [URL]",
		Short: "Show the length of a YouTube video",
		Long:  `Look up a YouTube video by URL or ID and print its title, author and length. With --add the video is added to the library.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			lookupCtx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()
			return app.lookupVideo(lookupCtx, args[0], add)
		},
	}
	cmd.Flags().BoolVar(&add, "add", false, "add the video to the library")

	return cmd
}

func (app *Application) lookupVideo(ctx context.Context, url string, add bool) error {
	video, err := app.Videos().Lookup(ctx, url)
	if err != nil {
		return err
	}

	fmt.Printf("📺 %s\n", video.Title)
	fmt.Printf("   Автор: %s\n", video.Author)
	fmt.Printf("   Продолжительность: %s\n", video.Clock())

	if !add {
		return nil
	}

	id := app.Data.AddTrack(video.Track())
	if err := app.SaveData(); err != nil {
		return fmt.Errorf("ошибка сохранения данных: %w", err)
	}

	fmt.Printf("📦 Видео добавлено в библиотеку как трек #%d\n", id)
	fmt.Printf("⏱️  Общая продолжительность библиотеки: %s\n", clock.Format(app.Data.TotalLength()))
	return nil
}
