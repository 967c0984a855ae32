// Package tracklist содержит модель экрана списка треков для TUI
package tracklist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/tracktime/internal/clock"
	"github.com/hazadus/tracktime/internal/data"
	"github.com/hazadus/tracktime/internal/track"
	"github.com/hazadus/tracktime/internal/utils"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
	quitTextStyle     = lipgloss.NewStyle().Margin(1, 0, 2, 4)
)

// TrackSelectedMsg отправляется при выборе трека для воспроизведения
type TrackSelectedMsg struct {
	Track data.Track
}

// TrackEditMsg отправляется при выборе трека для редактирования
type TrackEditMsg struct {
	Track data.Track
}

// trackItem реализует интерфейс list.Item для трека
type trackItem struct {
	entry track.Entry
}

func (i trackItem) FilterValue() string {
	return i.entry.Track.Artist + " " + i.entry.Track.Title
}

// row форматирует строку таблицы: ID | Исполнитель | Название | Начало | Длительность
func (i trackItem) row() string {
	return fmt.Sprintf("%-4d %-20s %-40s %9s %9s",
		i.entry.Track.ID,
		utils.TruncateString(i.entry.Track.Artist, 20),
		utils.TruncateString(i.entry.Track.Title, 40),
		clock.Format(i.entry.Start),
		i.entry.Track.Clock())
}

// trackItemDelegate реализует отображение элементов списка
type trackItemDelegate struct{}

func (d trackItemDelegate) Height() int                             { return 1 }
func (d trackItemDelegate) Spacing() int                            { return 0 }
func (d trackItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d trackItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(trackItem)
	if !ok {
		return
	}

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(i.row()))
}

// Model представляет модель экрана списка треков
type Model struct {
	list         list.Model
	trackManager *track.Manager
	quitting     bool
}

// NewModel создает новую модель списка треков
func NewModel(appData *data.AppData) *Model {
	trackManager := track.NewManager(appData)

	l := list.New(buildItems(trackManager), trackItemDelegate{}, 0, 0)
	l.Title = listTitle(trackManager)
	l.SetShowStatusBar(false)
	l.SetShowTitle(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	return &Model{
		list:         l,
		trackManager: trackManager,
	}
}

func buildItems(trackManager *track.Manager) []list.Item {
	entries := trackManager.Entries()
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = trackItem{entry: e}
	}
	return items
}

func listTitle(trackManager *track.Manager) string {
	return fmt.Sprintf("Треки • всего %s", trackManager.TotalClock())
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// RefreshData обновляет данные модели без пересоздания
func (m *Model) RefreshData() {
	m.list.Title = listTitle(m.trackManager)
	m.list.SetItems(buildItems(m.trackManager))
}

// selectedTrack возвращает выбранный в списке трек
func (m *Model) selectedTrack() (data.Track, bool) {
	item, ok := m.list.SelectedItem().(trackItem)
	if !ok {
		return data.Track{}, false
	}
	return item.entry.Track, true
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4) // Оставляем место для справки
		return m, nil

	case tea.KeyMsg:
		// Во время ввода фильтра клавиши обрабатывает список
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if t, ok := m.selectedTrack(); ok {
				return m, func() tea.Msg { return TrackSelectedMsg{Track: t} }
			}

		case "e":
			if t, ok := m.selectedTrack(); ok {
				return m, func() tea.Msg { return TrackEditMsg{Track: t} }
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View отображает модель
func (m *Model) View() string {
	if m.quitting {
		return quitTextStyle.Render("До свидания!")
	}

	extraHelp := helpStyle.Render("Enter: воспроизвести • e: редактировать • q: выход")
	return m.list.View() + "\n" + extraHelp
}
