// Package data хранит библиотеку треков в YAML файле
package data

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazadus/tracktime/internal/clock"
)

// ErrTrackNotFound возвращается, если трек с указанным ID отсутствует в библиотеке
var ErrTrackNotFound = errors.New("трек не найден")

// Track описывает трек библиотеки
type Track struct {
	ID        int    `yaml:"id"`
	Artist    string `yaml:"artist"`
	Title     string `yaml:"title"`
	Album     string `yaml:"album"`
	Length    int    `yaml:"length"`               // Длина трека в секундах
	FileSize  int64  `yaml:"file_size"`            // Размер файла в байтах
	Path      string `yaml:"path"`                 // Путь к локальному mp3 файлу
	SourceURL string `yaml:"source_url"`           // Адрес источника, например видео на YouTube
	RemoteKey string `yaml:"remote_key,omitempty"` // Ключ копии файла в S3
}

// Name возвращает строку вида "Исполнитель - Название"
func (t Track) Name() string {
	switch {
	case t.Artist == "":
		return t.Title
	case t.Title == "":
		return t.Artist
	default:
		return t.Artist + " - " + t.Title
	}
}

// Clock возвращает длительность трека в формате MM:SS или HH:MM:SS
func (t Track) Clock() string {
	if t.Length <= 0 {
		return "N/A"
	}
	return clock.Format(t.Length)
}

// AppData библиотека треков
type AppData struct {
	Tracks []Track `yaml:"tracks"`
}

// NewAppData создает пустую библиотеку
func NewAppData() *AppData {
	return &AppData{
		Tracks: make([]Track, 0),
	}
}

// LoadData загружает библиотеку из файла. Отсутствующий или пустой файл дает пустую библиотеку.
func (d *AppData) LoadData(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			*d = *NewAppData()
			return nil
		}
		return fmt.Errorf("ошибка чтения файла данных: %w", err)
	}
	if len(data) == 0 {
		*d = *NewAppData()
		return nil
	}

	loaded := NewAppData()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("ошибка разбора данных: %w", err)
	}
	*d = *loaded
	return nil
}

// SaveData сохраняет библиотеку в файл
func (d *AppData) SaveData(path string) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("ошибка сериализации данных: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла данных: %w", err)
	}
	return nil
}

// AddTrack добавляет трек, назначая ему ID на единицу больше максимального.
// Возвращает назначенный ID.
func (d *AppData) AddTrack(track Track) int {
	maxID := 0
	for _, t := range d.Tracks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	track.ID = maxID + 1
	d.Tracks = append(d.Tracks, track)
	return track.ID
}

// TrackByID возвращает трек по ID
func (d *AppData) TrackByID(id int) (*Track, error) {
	for i := range d.Tracks {
		if d.Tracks[i].ID == id {
			return &d.Tracks[i], nil
		}
	}
	return nil, fmt.Errorf("трек с ID %d: %w", id, ErrTrackNotFound)
}

// DeleteTrackByID удаляет трек по ID
func (d *AppData) DeleteTrackByID(id int) error {
	for i := range d.Tracks {
		if d.Tracks[i].ID == id {
			d.Tracks = append(d.Tracks[:i], d.Tracks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("трек с ID %d: %w", id, ErrTrackNotFound)
}

// UpdateTrack заменяет трек с тем же ID
func (d *AppData) UpdateTrack(track Track) error {
	existing, err := d.TrackByID(track.ID)
	if err != nil {
		return err
	}
	*existing = track
	return nil
}

// TotalLength возвращает суммарную длительность всех треков в секундах
func (d *AppData) TotalLength() int {
	total := 0
	for _, t := range d.Tracks {
		if t.Length > 0 {
			total += t.Length
		}
	}
	return total
}
