// Package youtube получает длительность и название видео с YouTube
package youtube

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/rs/zerolog"

	"github.com/hazadus/tracktime/internal/clock"
	"github.com/hazadus/tracktime/internal/data"
)

var (
	// Паттерны для различных форматов YouTube URL
	videoIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`(?:youtube\.com/embed/)([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`(?:youtube\.com/v/)([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`(?:youtube\.com/shorts/)([a-zA-Z0-9_-]{11})`),
	}
	bareVideoID = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// VideoClient часть клиента YouTube, нужная для получения сведений о видео
type VideoClient interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
}

// Video сведения о видео
type Video struct {
	ID       string
	Title    string
	Author   string
	Duration time.Duration
}

// Clock возвращает длительность видео в формате MM:SS или HH:MM:SS
func (v *Video) Clock() string {
	return clock.FormatDuration(v.Duration)
}

// Track превращает видео в трек библиотеки
func (v *Video) Track() data.Track {
	return data.Track{
		Artist:    v.Author,
		Title:     v.Title,
		Length:    int(v.Duration / time.Second),
		SourceURL: "https://www.youtube.com/watch?v=" + v.ID,
	}
}

// Fetcher получает сведения о видео
type Fetcher struct {
	client VideoClient
	logger zerolog.Logger
}

// NewFetcher создает Fetcher с клиентом YouTube по умолчанию
func NewFetcher(logger zerolog.Logger) *Fetcher {
	return NewFetcherWithClient(&youtube.Client{}, logger)
}

// NewFetcherWithClient создает Fetcher поверх переданного клиента
func NewFetcherWithClient(client VideoClient, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		logger: logger.With().Str("component", "youtube").Logger(),
	}
}

// Lookup получает сведения о видео по URL или ID
func (f *Fetcher) Lookup(ctx context.Context, url string) (*Video, error) {
	videoID, err := ExtractVideoID(url)
	if err != nil {
		return nil, fmt.Errorf("ошибка извлечения ID видео: %w", err)
	}

	f.logger.Debug().Str("video_id", videoID).Msg("запрашиваем сведения о видео")

	video, err := f.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения информации о видео %s: %w", videoID, err)
	}

	return &Video{
		ID:       videoID,
		Title:    video.Title,
		Author:   video.Author,
		Duration: video.Duration,
	}, nil
}

// ExtractVideoID извлекает ID видео из различных форматов YouTube URL
func ExtractVideoID(url string) (string, error) {
	for _, re := range videoIDPatterns {
		if matches := re.FindStringSubmatch(url); len(matches) > 1 {
			return matches[1], nil
		}
	}

	if bareVideoID.MatchString(url) {
		return url, nil
	}

	return "", fmt.Errorf("не удалось извлечь ID видео из URL: %s", url)
}
