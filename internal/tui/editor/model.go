// Package editor содержит модель экрана редактирования трека для TUI
package editor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/tracktime/internal/clock"
	"github.com/hazadus/tracktime/internal/data"
	"github.com/hazadus/tracktime/internal/track"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Margin(1, 0)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(15)
	previewStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Margin(1, 0)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Margin(1, 0)
)

// TrackSavedMsg отправляется когда трек успешно сохранен
type TrackSavedMsg struct {
	Track data.Track
}

// GoBackMsg отправляется при выходе из редактора
type GoBackMsg struct{}

// fieldType определяет тип поля для редактирования
type fieldType int

const (
	artistField fieldType = iota
	titleField
	albumField
	lengthField
	numFields
)

var labels = [numFields]string{"Исполнитель:", "Название:", "Альбом:", "Секунды:"}

// Model представляет модель экрана редактирования трека
type Model struct {
	trackManager  *track.Manager
	originalTrack data.Track
	inputs        []textinput.Model
	focusIndex    int
	err           string
	success       string
	saveFunc      func() error
}

// NewModel создает новую модель редактора трека
func NewModel(appData *data.AppData, trackToEdit data.Track, saveFunc func() error) *Model {
	inputs := make([]textinput.Model, numFields)
	values := [numFields]string{
		trackToEdit.Artist,
		trackToEdit.Title,
		trackToEdit.Album,
		strconv.Itoa(trackToEdit.Length),
	}
	placeholders := [numFields]string{
		"Введите исполнителя",
		"Введите название трека",
		"Введите название альбома",
		"Длительность в секундах",
	}

	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = placeholders[i]
		inputs[i].SetValue(values[i])
		inputs[i].PromptStyle = blurredStyle
		inputs[i].TextStyle = blurredStyle
	}
	inputs[lengthField].CharLimit = 9
	inputs[artistField].Focus()
	inputs[artistField].PromptStyle = focusedStyle
	inputs[artistField].TextStyle = focusedStyle

	return &Model{
		trackManager:  track.NewManager(appData),
		originalTrack: trackToEdit,
		inputs:        inputs,
		saveFunc:      saveFunc,
	}
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return GoBackMsg{} }

		case "ctrl+s":
			return m, m.saveTrack()

		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			// Enter на кнопке сохранения
			if s == "enter" && m.focusIndex == len(m.inputs) {
				return m, m.saveTrack()
			}

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}
			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			return m, m.updateFocus()
		}

	case tea.WindowSizeMsg:
		for i := range m.inputs {
			m.inputs[i].Width = msg.Width - 20
		}
		return m, nil
	}

	if m.focusIndex < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateFocus() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		if i == m.focusIndex {
			cmds[i] = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle
			continue
		}
		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = blurredStyle
		m.inputs[i].TextStyle = blurredStyle
	}
	return tea.Batch(cmds...)
}

// parseLength разбирает количество секунд из поля длительности
func (m *Model) parseLength() (int, error) {
	length, err := strconv.Atoi(strings.TrimSpace(m.inputs[lengthField].Value()))
	if err != nil || length < 0 {
		return 0, fmt.Errorf("длительность должна быть неотрицательным целым числом секунд")
	}
	return length, nil
}

// saveTrack проверяет поля, сохраняет трек и возвращает команду возврата к списку
func (m *Model) saveTrack() tea.Cmd {
	m.success = ""

	artist := strings.TrimSpace(m.inputs[artistField].Value())
	title := strings.TrimSpace(m.inputs[titleField].Value())
	if title == "" {
		m.err = "Поле 'Название' не может быть пустым"
		return nil
	}

	length, err := m.parseLength()
	if err != nil {
		m.err = err.Error()
		return nil
	}

	updated := m.originalTrack
	updated.Artist = artist
	updated.Title = title
	updated.Album = strings.TrimSpace(m.inputs[albumField].Value())
	updated.Length = length

	if err := m.trackManager.Update(updated); err != nil {
		m.err = fmt.Sprintf("Ошибка обновления трека: %v", err)
		return nil
	}
	if m.saveFunc != nil {
		if err := m.saveFunc(); err != nil {
			m.err = fmt.Sprintf("Ошибка сохранения в файл: %v", err)
			return nil
		}
	}

	m.err = ""
	m.success = "Трек сохранен: " + updated.Clock()
	return tea.Batch(
		func() tea.Msg { return TrackSavedMsg{Track: updated} },
		tea.Tick(time.Second, func(time.Time) tea.Msg { return GoBackMsg{} }),
	)
}

// lengthPreview показывает введенную длительность в формате часов
func (m *Model) lengthPreview() string {
	length, err := m.parseLength()
	if err != nil {
		return "--:--"
	}
	return clock.Format(length)
}

// View отображает модель
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Редактирование трека #%d", m.originalTrack.ID)))
	b.WriteString("\n\n")

	for i, input := range m.inputs {
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString(" ")
		b.WriteString(input.View())
		if fieldType(i) == lengthField {
			b.WriteString("  ")
			b.WriteString(previewStyle.Render(m.lengthPreview()))
		}
		b.WriteString("\n\n")
	}

	saveButton := blurredStyle.Render("[ Сохранить ]")
	if m.focusIndex == len(m.inputs) {
		saveButton = focusedStyle.Render("[ Сохранить ]")
	}
	b.WriteString(saveButton)
	b.WriteString("\n\n")

	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}
	if m.success != "" {
		b.WriteString(successStyle.Render(m.success))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("Tab/Enter: следующее поле • Shift+Tab: предыдущее • Ctrl+S: сохранить • Esc: отмена"))
	return b.String()
}
