package player

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gopxl/beep/mp3"
	"github.com/rs/zerolog"

	"github.com/hazadus/tracktime/internal/data"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{Status{}, "00:00 / 00:00"},
		{Status{Current: 65 * time.Second, Total: 205 * time.Second}, "01:05 / 03:25"},
		{Status{Current: 59*time.Minute + 59*time.Second + 900*time.Millisecond, Total: 2 * time.Hour}, "59:59 / 02:00:00"},
	}

	for _, test := range tests {
		if got := test.status.String(); got != test.expected {
			t.Errorf("Status.String() = %s; expected %s", got, test.expected)
		}
	}
}

func TestStatusPercent(t *testing.T) {
	tests := []struct {
		status   Status
		expected float64
	}{
		{Status{Current: time.Second}, 0},
		{Status{Current: 30 * time.Second, Total: time.Minute}, 0.5},
		{Status{Current: 2 * time.Minute, Total: time.Minute}, 1},
	}

	for _, test := range tests {
		if got := test.status.Percent(); got != test.expected {
			t.Errorf("Status.Percent() = %v; expected %v", got, test.expected)
		}
	}
}

func TestPlayWithoutSource(t *testing.T) {
	player := NewPlayer(zerolog.Nop())
	defer player.Close()

	err := player.Play(&data.Track{ID: 3, Title: "Nowhere"})
	if err == nil || !strings.Contains(err.Error(), "нет ни пути к файлу, ни ссылки") {
		t.Errorf("Неожиданная ошибка: %v", err)
	}
	if player.CurrentTrack() != nil {
		t.Error("Трек не должен устанавливаться при ошибке")
	}
}

func TestPlayVideoPage(t *testing.T) {
	player := NewPlayer(zerolog.Nop())
	defer player.Close()

	err := player.Play(&data.Track{ID: 4, SourceURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"})
	if err == nil || !strings.Contains(err.Error(), "страницу видео") {
		t.Errorf("Неожиданная ошибка: %v", err)
	}
}

func TestPlayStreamHTTPError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	player := NewPlayer(zerolog.Nop())
	defer player.Close()

	err := player.Play(&data.Track{ID: 5, SourceURL: server.URL + "/tracks/missing.mp3"})
	if err == nil || !strings.Contains(err.Error(), "ошибка открытия потока") || !strings.Contains(err.Error(), "404") {
		t.Errorf("Неожиданная ошибка: %v", err)
	}
	if player.IsPlaying() {
		t.Error("Плеер не должен воспроизводить при ошибке потока")
	}
}

func TestPlayInvalidStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not an mp3"))
	}))
	defer server.Close()

	player := NewPlayer(zerolog.Nop())
	defer player.Close()

	err := player.Play(&data.Track{ID: 6, SourceURL: server.URL + "/broken.mp3"})
	if err == nil || !strings.Contains(err.Error(), "ошибка декодирования MP3") {
		t.Errorf("Неожиданная ошибка: %v", err)
	}
}

// newFixtureServer раздает testdata/silence.mp3 и считает запросы
func newFixtureServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	fixture, err := os.ReadFile(filepath.Join("testdata", "silence.mp3"))
	if err != nil {
		t.Fatalf("Ошибка чтения тестового MP3: %v", err)
	}

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(fixture)
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func TestOpenSourceStreamsMissingFile(t *testing.T) {
	server, requests := newFixtureServer(t)

	track := &data.Track{
		ID:        7,
		Path:      filepath.Join(t.TempDir(), "moved.mp3"),
		SourceURL: server.URL + "/tracks/silence.mp3",
		RemoteKey: "tracks/silence.mp3",
	}

	source, origin, err := openSource(context.Background(), track)
	if err != nil {
		t.Fatalf("Ошибка открытия потока: %v", err)
	}
	if origin != track.SourceURL {
		t.Errorf("Ожидался источник %s, получено %s", track.SourceURL, origin)
	}

	streamer, format, err := mp3.Decode(source)
	if err != nil {
		t.Fatalf("Ошибка декодирования потока: %v", err)
	}
	defer streamer.Close()

	if format.SampleRate != 44100 {
		t.Errorf("Ожидалась частота 44100, получено %d", format.SampleRate)
	}

	samples := make([][2]float64, 1152)
	n, ok := streamer.Stream(samples)
	if !ok || n == 0 {
		t.Fatalf("Ожидались сэмплы из потока, получено n=%d ok=%v", n, ok)
	}

	status := Status{Current: format.SampleRate.D(streamer.Position()), Total: time.Duration(track.Length) * time.Second}
	if got := status.String(); got != "00:00 / 00:00" {
		t.Errorf("Неожиданный статус потока: %s", got)
	}
	if requests.Load() != 1 {
		t.Errorf("Ожидался 1 запрос к серверу, получено %d", requests.Load())
	}
}

func TestOpenSourcePrefersLocalFile(t *testing.T) {
	server, requests := newFixtureServer(t)

	fixture, err := filepath.Abs(filepath.Join("testdata", "silence.mp3"))
	if err != nil {
		t.Fatalf("Ошибка получения пути: %v", err)
	}

	source, origin, err := openSource(context.Background(), &data.Track{ID: 8, Path: fixture, SourceURL: server.URL})
	if err != nil {
		t.Fatalf("Ошибка открытия файла: %v", err)
	}
	defer source.Close()

	if origin != fixture {
		t.Errorf("Ожидался локальный файл, получено %s", origin)
	}
	if requests.Load() != 0 {
		t.Error("Сервер не должен запрашиваться при наличии локального файла")
	}
}

func TestOpenSourceCancelledContext(t *testing.T) {
	server, _ := newFixtureServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := openSource(ctx, &data.Track{ID: 9, SourceURL: server.URL})
	if err == nil || !errors.Is(err, context.Canceled) {
		t.Errorf("Ожидалась ошибка отмены, получено: %v", err)
	}
}

func TestPlayNonExistentFile(t *testing.T) {
	player := NewPlayer(zerolog.Nop())
	defer player.Close()

	err := player.Play(&data.Track{ID: 1, Path: "/non/existent/test.mp3"})
	if err == nil || !strings.Contains(err.Error(), "ошибка открытия файла") {
		t.Errorf("Неожиданная ошибка: %v", err)
	}
}

func TestPlayInvalidMP3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.mp3")
	if err := os.WriteFile(path, []byte("not an mp3"), 0644); err != nil {
		t.Fatalf("Ошибка создания тестового файла: %v", err)
	}

	player := NewPlayer(zerolog.Nop())
	defer player.Close()

	err := player.Play(&data.Track{ID: 1, Path: path})
	if err == nil || !strings.Contains(err.Error(), "ошибка декодирования MP3") {
		t.Errorf("Неожиданная ошибка: %v", err)
	}
	if player.IsPlaying() {
		t.Error("Плеер не должен воспроизводить при ошибке декодирования")
	}
}

func TestPauseAndStopWithoutPlayback(t *testing.T) {
	player := NewPlayer(zerolog.Nop())
	defer player.Close()

	player.Pause()
	if player.IsPlaying() {
		t.Error("Плеер не должен воспроизводить после паузы без трека")
	}

	player.Stop()
	if player.IsPlaying() || player.CurrentTrack() != nil {
		t.Error("Состояние должно быть сброшено после остановки")
	}
}

func TestPlayerChannels(t *testing.T) {
	player := NewPlayer(zerolog.Nop())

	select {
	case <-player.Progress():
		t.Error("Канал прогресса не должен содержать данных изначально")
	case <-player.Done():
		t.Error("Канал завершения не должен содержать данных изначально")
	default:
	}

	if err := player.Close(); err != nil {
		t.Fatalf("Ошибка закрытия плеера: %v", err)
	}
	// Повторное закрытие безопасно
	if err := player.Close(); err != nil {
		t.Fatalf("Ошибка повторного закрытия плеера: %v", err)
	}

	if _, ok := <-player.Progress(); ok {
		t.Error("Канал прогресса должен быть закрыт после Close")
	}
	if _, ok := <-player.Done(); ok {
		t.Error("Канал завершения должен быть закрыт после Close")
	}
}

func TestPlayAfterClose(t *testing.T) {
	player := NewPlayer(zerolog.Nop())
	player.Close()

	if err := player.Play(&data.Track{ID: 1, Path: "/tmp/a.mp3"}); !errors.Is(err, ErrClosed) {
		t.Errorf("Ожидалась ошибка ErrClosed, получено: %v", err)
	}
}
