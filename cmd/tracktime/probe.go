package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/tracktime/internal/clock"
	"github.com/hazadus/tracktime/internal/metadata"
	"github.com/hazadus/tracktime/internal/utils"
)

// createProbeCommand создает команду probe
func (app *Application) createProbeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "probe [file path...]",
		Short: "Show tags and length of mp3 files",
		Long:  `Read tags and decode mp3 files to print artist, title and length without adding them to the library.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.probeFiles(args)
		},
	}
}

func (app *Application) probeFiles(paths []string) error {
	extractor := metadata.NewExtractor(app.Logger)

	total := 0
	for _, path := range paths {
		probe, err := extractor.Probe(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		track := probe.Track()
		total += track.Length

		fmt.Printf("🎵 %s\n", path)
		fmt.Printf("   Исполнитель: %s\n", track.Artist)
		fmt.Printf("   Название: %s\n", track.Title)
		fmt.Printf("   Альбом: %s\n", track.Album)
		fmt.Printf("   Продолжительность: %s\n", track.Clock())
		fmt.Printf("   Размер: %s\n", utils.FormatFileSize(track.FileSize))
	}

	if len(paths) > 1 {
		fmt.Printf("\n⏱️  Общая продолжительность: %s\n", clock.Format(total))
	}
	return nil
}
