// Package metadata извлекает теги и длительность из mp3 файлов
package metadata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep/mp3"
	"github.com/rs/zerolog"

	"github.com/hazadus/tracktime/internal/data"
)

// UnknownArtist подставляется, если исполнителя не удалось определить
const UnknownArtist = "Unknown Artist"

// TrackMetadata хранит метаданные трека
type TrackMetadata struct {
	Artist string
	Title  string
	Album  string
}

// Probe результат анализа mp3 файла
type Probe struct {
	Path     string
	Metadata TrackMetadata
	Size     int64
	Duration time.Duration
}

// Track превращает результат анализа в трек библиотеки
func (p *Probe) Track() data.Track {
	return data.Track{
		Artist:   p.Metadata.Artist,
		Title:    p.Metadata.Title,
		Album:    p.Metadata.Album,
		Length:   int(p.Duration / time.Second),
		FileSize: p.Size,
		Path:     p.Path,
	}
}

// Extractor извлекает метаданные из аудио файлов
type Extractor struct {
	logger zerolog.Logger
}

// NewExtractor создает новый экстрактор метаданных
func NewExtractor(logger zerolog.Logger) *Extractor {
	return &Extractor{logger: logger.With().Str("component", "metadata").Logger()}
}

// ExtractFromReader извлекает теги из reader. Пустые поля заполняются из имени файла.
func (e *Extractor) ExtractFromReader(reader io.ReadSeeker, source string) TrackMetadata {
	fallback := metadataFromFileName(source)

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return fallback
	}

	tags, err := tag.ReadFrom(reader)
	if err != nil {
		e.logger.Debug().Err(err).Str("source", source).Msg("теги не найдены, используем имя файла")
		return fallback
	}

	result := TrackMetadata{
		Artist: strings.TrimSpace(tags.Artist()),
		Title:  strings.TrimSpace(tags.Title()),
		Album:  strings.TrimSpace(tags.Album()),
	}
	if result.Title == "" {
		result.Title = fallback.Title
		if result.Artist == "" {
			result.Artist = fallback.Artist
		}
	}
	if result.Artist == "" {
		result.Artist = UnknownArtist
	}
	return result
}

// ExtractFromFile извлекает метаданные из файла
func (e *Extractor) ExtractFromFile(filePath string) TrackMetadata {
	file, err := os.Open(filePath)
	if err != nil {
		return metadataFromFileName(filePath)
	}
	defer file.Close()

	return e.ExtractFromReader(file, filePath)
}

// GetDuration получает длительность MP3 файла
func (e *Extractor) GetDuration(filePath string) (time.Duration, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("ошибка открытия файла: %w", err)
	}

	// Декодер закрывает файл вместе с собой
	streamer, format, err := mp3.Decode(file)
	if err != nil {
		file.Close()
		return 0, fmt.Errorf("ошибка декодирования MP3: %w", err)
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

// Probe получает метаданные, размер и длительность файла
func (e *Extractor) Probe(filePath string) (*Probe, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения информации о файле: %w", err)
	}

	duration, err := e.GetDuration(filePath)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения длительности: %w", err)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		absPath = filePath
	}

	probe := &Probe{
		Path:     absPath,
		Metadata: e.ExtractFromFile(filePath),
		Size:     fileInfo.Size(),
		Duration: duration,
	}
	e.logger.Debug().
		Str("path", absPath).
		Dur("duration", duration).
		Int64("size", probe.Size).
		Msg("файл проанализирован")
	return probe, nil
}

// metadataFromFileName разбирает имя файла вида "Artist - Title"
func metadataFromFileName(source string) TrackMetadata {
	fileName := filepath.Base(source)
	nameWithoutExt := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	parts := strings.Split(nameWithoutExt, " - ")
	if len(parts) >= 2 {
		return TrackMetadata{
			Artist: strings.TrimSpace(parts[0]),
			Title:  strings.TrimSpace(strings.Join(parts[1:], " - ")),
		}
	}

	return TrackMetadata{
		Artist: UnknownArtist,
		Title:  nameWithoutExt,
	}
}
