// Package chapters строит список таймкодов для сборника треков,
// как в описании видео: "00:00 Исполнитель - Название".
package chapters

import (
	"fmt"
	"io"
	"strings"

	"github.com/hazadus/tracktime/internal/clock"
	"github.com/hazadus/tracktime/internal/data"
)

// Chapter глава сборника
type Chapter struct {
	Start int // Смещение начала главы в секундах
	Track data.Track
}

// Timestamp возвращает время начала главы
func (c Chapter) Timestamp() string {
	return clock.Format(c.Start)
}

// String возвращает строку таймкода
func (c Chapter) String() string {
	return c.Timestamp() + " " + c.Track.Name()
}

// Build строит главы: каждая начинается там, где закончились предыдущие треки
func Build(tracks []data.Track) []Chapter {
	result := make([]Chapter, 0, len(tracks))
	offset := 0
	for _, t := range tracks {
		result = append(result, Chapter{Start: offset, Track: t})
		if t.Length > 0 {
			offset += t.Length
		}
	}
	return result
}

// Render записывает таймкоды в w, по одному на строку
func Render(w io.Writer, chapters []Chapter) error {
	for _, c := range chapters {
		if _, err := fmt.Fprintln(w, c.String()); err != nil {
			return fmt.Errorf("ошибка записи таймкодов: %w", err)
		}
	}
	return nil
}

// RenderString возвращает таймкоды одной строкой
func RenderString(chapters []Chapter) string {
	var sb strings.Builder
	_ = Render(&sb, chapters)
	return sb.String()
}
