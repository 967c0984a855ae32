// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/hazadus/tracktime/internal/data"
	"github.com/hazadus/tracktime/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	appData  *data.AppData
	saveFunc func() error
	logger   zerolog.Logger
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(appData *data.AppData, saveFunc func() error, logger zerolog.Logger) *App {
	return &App{
		appData:  appData,
		saveFunc: saveFunc,
		logger:   logger,
	}
}

// Run запускает TUI приложение
func (tuiApp *App) Run() error {
	model := app.NewMainModel(tuiApp.appData, tuiApp.saveFunc, tuiApp.logger)
	defer model.Close()

	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
