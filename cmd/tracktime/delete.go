package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// createDeleteCommand создает команду delete с привязкой к экземпляру приложения
func (app *Application) createDeleteCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a track by ID",
		Long:  `Delete a track from the library by its ID. A copy uploaded to S3 is removed as well.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("неверный ID '%s': ID должен быть числом", args[0])
			}
			return app.deleteTrack(ctx, id)
		},
	}
}

func (app *Application) deleteTrack(ctx context.Context, id int) error {
	track, err := app.Data.TrackByID(id)
	if err != nil {
		return err
	}

	fmt.Printf("🗑️  Удаляем трек: %s [%s]\n", track.Name(), track.Clock())

	if track.RemoteKey != "" {
		if err := app.deleteRemote(ctx, track.RemoteKey); err != nil {
			// Трек все равно удаляется из библиотеки
			fmt.Printf("⚠️  Предупреждение: не удалось удалить файл из S3: %v\n", err)
		} else {
			fmt.Println("✅ Файл удален из S3")
		}
	}

	if err := app.Data.DeleteTrackByID(id); err != nil {
		return fmt.Errorf("ошибка удаления трека из данных: %w", err)
	}
	if err := app.SaveData(); err != nil {
		return fmt.Errorf("ошибка сохранения данных: %w", err)
	}

	fmt.Println("✅ Трек удален из библиотеки")
	return nil
}

func (app *Application) deleteRemote(ctx context.Context, key string) error {
	storage, err := app.Storage()
	if err != nil {
		return err
	}
	return storage.DeleteFile(ctx, key)
}
