// Package uploader добавляет mp3 файлы в библиотеку и при необходимости копирует их в S3
package uploader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hazadus/tracktime/internal/data"
	"github.com/hazadus/tracktime/internal/metadata"
)

const audioContentType = "audio/mpeg"

// Prober анализирует mp3 файл
type Prober interface {
	Probe(filePath string) (*metadata.Probe, error)
}

// ObjectUploader загружает объекты в хранилище и удаляет их
type ObjectUploader interface {
	UploadFile(ctx context.Context, body io.Reader, key, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}

// Service управляет добавлением файлов в библиотеку
type Service struct {
	prober   Prober
	uploader ObjectUploader // nil, если хранилище не настроено
	prefix   string
	appData  *data.AppData
	logger   zerolog.Logger
}

// NewService создает новый сервис. uploader может быть nil,
// тогда загрузка в хранилище недоступна.
func NewService(prober Prober, uploader ObjectUploader, prefix string, appData *data.AppData, logger zerolog.Logger) *Service {
	return &Service{
		prober:   prober,
		uploader: uploader,
		prefix:   prefix,
		appData:  appData,
		logger:   logger.With().Str("component", "uploader").Logger(),
	}
}

// Result содержит результат добавления файла
type Result struct {
	Track data.Track
	URL   string // Пусто, если файл не загружался в хранилище
}

// AddFile анализирует файл и добавляет его в библиотеку.
// Если upload установлен, файл также загружается в хранилище,
// а progress получает количество прочитанных байт.
func (s *Service) AddFile(ctx context.Context, filePath string, upload bool, progress func(int64)) (*Result, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("файл не найден: %s", filePath)
	}
	if upload && s.uploader == nil {
		return nil, fmt.Errorf("хранилище S3 не настроено")
	}

	probe, err := s.prober.Probe(filePath)
	if err != nil {
		return nil, fmt.Errorf("ошибка анализа файла: %w", err)
	}
	track := probe.Track()

	result := &Result{}
	if upload {
		key := s.Key(filePath)
		url, err := s.uploadFile(ctx, probe.Path, key, probe.Size, progress)
		if err != nil {
			return nil, err
		}
		track.RemoteKey = key
		track.SourceURL = url
		result.URL = url
	}

	track.ID = s.appData.AddTrack(track)
	result.Track = track

	s.logger.Info().
		Int("track_id", track.ID).
		Int("length", track.Length).
		Str("remote_key", track.RemoteKey).
		Msg("Трек добавлен в библиотеку")
	return result, nil
}

// Discard отменяет результат AddFile, если библиотеку не удалось сохранить:
// убирает трек из библиотеки и удаляет загруженный объект из хранилища
func (s *Service) Discard(ctx context.Context, result *Result) error {
	if err := s.appData.DeleteTrackByID(result.Track.ID); err != nil {
		s.logger.Warn().Err(err).Int("track_id", result.Track.ID).Msg("трек уже отсутствует в библиотеке")
	}

	key := result.Track.RemoteKey
	if key == "" || s.uploader == nil {
		return nil
	}
	if err := s.uploader.DeleteFile(ctx, key); err != nil {
		return fmt.Errorf("ошибка удаления %s из S3: %w", key, err)
	}
	s.logger.Info().Str("remote_key", key).Msg("Загруженный файл удален")
	return nil
}

func (s *Service) uploadFile(ctx context.Context, filePath, key string, size int64, progress func(int64)) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if progress != nil {
		reader = &ProgressReader{
			Reader:     file,
			Size:       size,
			OnProgress: progress,
		}
	}

	url, err := s.uploader.UploadFile(ctx, reader, key, audioContentType)
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки в S3: %w", err)
	}
	return url, nil
}

// Key возвращает ключ объекта для файла
func (s *Service) Key(filePath string) string {
	return path.Join(s.prefix, getFileNameWithoutExt(filePath)+".mp3")
}

// ProgressReader структура для отслеживания прогресса чтения
type ProgressReader struct {
	io.Reader
	Size       int64
	OnProgress func(int64)
	bytesRead  int64
}

func (pr *ProgressReader) Read(p []byte) (n int, err error) {
	n, err = pr.Reader.Read(p)
	pr.bytesRead += int64(n)
	if pr.OnProgress != nil {
		pr.OnProgress(pr.bytesRead)
	}
	return n, err
}

// getFileNameWithoutExt возвращает имя файла без расширения
func getFileNameWithoutExt(filePath string) string {
	fileName := filepath.Base(filePath)
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
