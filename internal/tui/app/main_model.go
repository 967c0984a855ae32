// Package app содержит основную логику TUI приложения
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/hazadus/tracktime/internal/data"
	"github.com/hazadus/tracktime/internal/player"
	"github.com/hazadus/tracktime/internal/tui/editor"
	tuiPlayer "github.com/hazadus/tracktime/internal/tui/player"
	"github.com/hazadus/tracktime/internal/tui/tracklist"
)

// ScreenType определяет тип текущего экрана
type ScreenType int

const (
	// TracklistScreen - экран списка треков
	TracklistScreen ScreenType = iota
	// PlayerScreen - экран плеера
	PlayerScreen
	// EditorScreen - экран редактирования
	EditorScreen
)

// MainModel представляет главную модель TUI
type MainModel struct {
	appData        *data.AppData
	currentScreen  ScreenType
	tracklistModel *tracklist.Model
	playerModel    *tuiPlayer.Model
	editorModel    *editor.Model
	globalPlayer   *player.Player // Один плеер на все время работы TUI
	saveFunc       func() error
	logger         zerolog.Logger
}

// NewMainModel создает новую главную модель
func NewMainModel(appData *data.AppData, saveFunc func() error, logger zerolog.Logger) *MainModel {
	return &MainModel{
		appData:        appData,
		currentScreen:  TracklistScreen,
		tracklistModel: tracklist.NewModel(appData),
		globalPlayer:   player.NewPlayer(logger),
		saveFunc:       saveFunc,
		logger:         logger.With().Str("component", "tui").Logger(),
	}
}

// Init инициализирует модель
func (m *MainModel) Init() tea.Cmd {
	return m.tracklistModel.Init()
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.globalPlayer.Stop()
			return m, tea.Quit
		}

	case tracklist.TrackSelectedMsg:
		m.logger.Debug().Int("track_id", msg.Track.ID).Msg("Выбран трек для воспроизведения")
		m.currentScreen = PlayerScreen
		m.playerModel = tuiPlayer.NewModel(msg.Track, m.globalPlayer)
		return m, m.playerModel.Init()

	case tracklist.TrackEditMsg:
		m.logger.Debug().Int("track_id", msg.Track.ID).Msg("Выбран трек для редактирования")
		m.currentScreen = EditorScreen
		m.editorModel = editor.NewModel(m.appData, msg.Track, m.saveFunc)
		return m, m.editorModel.Init()

	case tuiPlayer.GoBackMsg:
		m.currentScreen = TracklistScreen
		m.playerModel = nil
		return m, nil

	case editor.GoBackMsg:
		m.currentScreen = TracklistScreen
		m.editorModel = nil
		m.tracklistModel.RefreshData()
		return m, nil

	case editor.TrackSavedMsg:
		m.logger.Info().Int("track_id", msg.Track.ID).Int("length", msg.Track.Length).Msg("Трек обновлен")
		m.tracklistModel.RefreshData()
		return m, nil
	}

	return m, m.updateActive(msg)
}

// updateActive передает сообщение модели текущего экрана
func (m *MainModel) updateActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch m.currentScreen {
	case TracklistScreen:
		m.tracklistModel, cmd = m.tracklistModel.Update(msg)

	case PlayerScreen:
		if m.playerModel != nil {
			var updated tea.Model
			updated, cmd = m.playerModel.Update(msg)
			if playerModel, ok := updated.(*tuiPlayer.Model); ok {
				m.playerModel = playerModel
			}
		}

	case EditorScreen:
		if m.editorModel != nil {
			m.editorModel, cmd = m.editorModel.Update(msg)
		}
	}

	return cmd
}

// View отображает интерфейс
func (m *MainModel) View() string {
	switch m.currentScreen {
	case TracklistScreen:
		return m.tracklistModel.View()

	case PlayerScreen:
		if m.playerModel != nil {
			return m.playerModel.View()
		}
		return "Ошибка: модель плеера не инициализирована"

	case EditorScreen:
		if m.editorModel != nil {
			return m.editorModel.View()
		}
		return "Ошибка: модель редактора не инициализирована"

	default:
		return "Неизвестный экран"
	}
}

// Close закрывает ресурсы главной модели
func (m *MainModel) Close() {
	if err := m.globalPlayer.Close(); err != nil {
		m.logger.Warn().Err(err).Msg("Ошибка закрытия плеера")
	}
}
