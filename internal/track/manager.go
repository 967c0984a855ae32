// Package track содержит логику управления треками
package track

import (
	"github.com/hazadus/tracktime/internal/chapters"
	"github.com/hazadus/tracktime/internal/clock"
	"github.com/hazadus/tracktime/internal/data"
)

// Entry трек вместе с его смещением от начала сборника
type Entry struct {
	Track data.Track
	Start int
}

// Manager управляет треками в приложении
type Manager struct {
	appData *data.AppData
}

// NewManager создает новый экземпляр Manager
func NewManager(appData *data.AppData) *Manager {
	return &Manager{
		appData: appData,
	}
}

// ListTracks возвращает список всех треков
func (m *Manager) ListTracks() []data.Track {
	return m.appData.Tracks
}

// Entries возвращает треки со смещениями начала
func (m *Manager) Entries() []Entry {
	built := chapters.Build(m.appData.Tracks)
	entries := make([]Entry, len(built))
	for i, c := range built {
		entries[i] = Entry{Track: c.Track, Start: c.Start}
	}
	return entries
}

// TotalClock возвращает общую длительность библиотеки
func (m *Manager) TotalClock() string {
	return clock.Format(m.appData.TotalLength())
}

// Update сохраняет изменения трека в библиотеке
func (m *Manager) Update(t data.Track) error {
	return m.appData.UpdateTrack(t)
}
