package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/tracktime/internal/clock"
	"github.com/hazadus/tracktime/internal/track"
	"github.com/hazadus/tracktime/internal/utils"
)

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tracks from the library",
		Long:  `Display all tracks stored in the library with their start offsets, lengths and the total length.`,
		Run: func(_ *cobra.Command, _ []string) {
			app.listTracks()
		},
	}
}

func (app *Application) listTracks() {
	if len(app.Data.Tracks) == 0 {
		fmt.Println("📚 Библиотека пуста. Добавьте треки с помощью команды 'add'.")
		return
	}

	manager := track.NewManager(app.Data)

	fmt.Printf("📚 Найдено треков: %d\n\n", len(app.Data.Tracks))

	fmt.Printf("%-4s %-28s %-28s %-18s %9s %9s %10s\n",
		"ID", "Исполнитель", "Название", "Альбом", "Начало", "Длина", "Размер")
	fmt.Println(strings.Repeat("-", 112))

	for _, entry := range manager.Entries() {
		t := entry.Track
		fmt.Printf("%-4d %-28s %-28s %-18s %9s %9s %10s\n",
			t.ID,
			utils.TruncateString(t.Artist, 28),
			utils.TruncateString(t.Title, 28),
			utils.TruncateString(t.Album, 18),
			clock.Format(entry.Start),
			t.Clock(),
			utils.FormatFileSize(t.FileSize))
	}

	fmt.Println()
	fmt.Printf("⏱️  Общая продолжительность: %s\n", manager.TotalClock())
	fmt.Println("💡 Используйте 'tracktime play [ID]' для воспроизведения трека")
}
