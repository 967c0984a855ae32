// Package player содержит модель экрана воспроизведения для TUI
package player

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/tracktime/internal/data"
	"github.com/hazadus/tracktime/internal/player"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0000ff")).
			MarginBottom(1)

	trackInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1).
			MarginBottom(1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff0000")).
			Bold(true)
)

// GoBackMsg отправляется для возврата к списку треков
type GoBackMsg struct{}

// ProgressMsg содержит обновления прогресса воспроизведения
type ProgressMsg struct {
	Status player.Status
}

// PlaybackStartedMsg отправляется после успешного запуска воспроизведения
type PlaybackStartedMsg struct{}

// PlaybackFinishedMsg отправляется при завершении воспроизведения
type PlaybackFinishedMsg struct{}

// PlaybackErrorMsg отправляется при ошибке воспроизведения
type PlaybackErrorMsg struct {
	Error error
}

// Model представляет модель экрана воспроизведения
type Model struct {
	track       data.Track
	player      *player.Player
	progressBar progress.Model
	status      player.Status
	isPlaying   bool
	error       error
	width       int
	height      int
}

// NewModel создает модель экрана для трека, используя общий плеер приложения
func NewModel(track data.Track, p *player.Player) *Model {
	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40

	return &Model{
		track:       track,
		player:      p,
		progressBar: prog,
		status:      player.Status{Total: lengthOf(track)},
	}
}

// Init инициализирует модель и запускает воспроизведение
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.startPlayback(),
		m.listenForProgress(),
	)
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progressBar.Width = min(60, msg.Width-10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			m.player.Stop()
			return m, func() tea.Msg { return GoBackMsg{} }

		case " ":
			m.player.Pause()
			m.isPlaying = m.player.IsPlaying()
			return m, nil
		}

	case PlaybackStartedMsg:
		m.isPlaying = true
		return m, nil

	case ProgressMsg:
		m.status = msg.Status
		m.isPlaying = msg.Status.IsPlaying
		return m, tea.Batch(
			m.progressBar.SetPercent(msg.Status.Percent()),
			m.listenForProgress(),
		)

	case PlaybackFinishedMsg:
		m.isPlaying = false
		return m, func() tea.Msg { return GoBackMsg{} }

	case PlaybackErrorMsg:
		m.error = msg.Error
		m.isPlaying = false
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progressBar.Update(msg)
		m.progressBar = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

// View отображает модель
func (m *Model) View() string {
	if m.error != nil {
		return fmt.Sprintf(
			"%s\n\n%s\n\n%s",
			titleStyle.Render("❌ Ошибка воспроизведения"),
			errorStyle.Render(m.error.Error()),
			controlsStyle.Render("Нажмите 'q' или 'esc' для возврата"),
		)
	}

	title := titleStyle.Render("🎵 Воспроизведение")

	trackInfo := trackInfoStyle.Render(fmt.Sprintf(
		"🎤 %s\n🎵 %s\n💿 %s\n⏱️ %s",
		m.track.Artist,
		m.track.Title,
		m.track.Album,
		m.track.Clock(),
	))

	statusIcon := "⏸️"
	if m.isPlaying {
		statusIcon = "▶️"
	}
	statusText := statusStyle.Render(fmt.Sprintf("%s %s", statusIcon, formatStatus(m.isPlaying)))

	controls := controlsStyle.Render("Пробел: пауза/воспроизведение • q/esc: назад к списку")

	return fmt.Sprintf(
		"%s\n\n%s\n\n%s\n\n%s\n%s\n\n%s",
		title,
		trackInfo,
		statusText,
		m.progressBar.View(),
		m.status.String(),
		controls,
	)
}

// startPlayback запускает воспроизведение трека
func (m *Model) startPlayback() tea.Cmd {
	track := m.track
	return func() tea.Msg {
		if err := m.player.Play(&track); err != nil {
			return PlaybackErrorMsg{Error: err}
		}
		return PlaybackStartedMsg{}
	}
}

// listenForProgress ждет очередного обновления от плеера
func (m *Model) listenForProgress() tea.Cmd {
	return func() tea.Msg {
		select {
		case status, ok := <-m.player.Progress():
			if !ok {
				return PlaybackFinishedMsg{}
			}
			return ProgressMsg{Status: status}
		case <-m.player.Done():
			return PlaybackFinishedMsg{}
		}
	}
}

func formatStatus(isPlaying bool) string {
	if isPlaying {
		return "Воспроизведение"
	}
	return "Пауза"
}

// lengthOf возвращает длительность трека из библиотеки
func lengthOf(track data.Track) time.Duration {
	if track.Length <= 0 {
		return 0
	}
	return time.Duration(track.Length) * time.Second
}
