package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hazadus/tracktime/internal/tui"
)

const tuiLogFile = "tracktime-tui.log"

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch interactive terminal user interface for browsing, editing and playing tracks.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.launchTUI()
		},
	}
}

func (app *Application) launchTUI() error {
	// Вывод в терминал мешает полноэкранному интерфейсу, поэтому пишем лог в файл
	logPath := filepath.Join(os.TempDir(), tuiLogFile)
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("ошибка открытия файла журнала: %w", err)
	}
	defer logFile.Close()

	logger := app.Logger.Output(logFile)
	consoleLogger := app.Logger
	app.Logger = logger
	defer func() { app.Logger = consoleLogger }()

	logger.Info().Str("data_file", app.Config.DataFile).Msg("Запуск TUI")

	if err := tui.NewApp(app.Data, app.SaveData, logger).Run(); err != nil {
		return fmt.Errorf("ошибка TUI: %w", err)
	}
	return nil
}
