package uploader

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hazadus/tracktime/internal/data"
	"github.com/hazadus/tracktime/internal/metadata"
)

// mockProber мок для анализа файлов
type mockProber struct {
	probeFunc func(filePath string) (*metadata.Probe, error)
}

func (m *mockProber) Probe(filePath string) (*metadata.Probe, error) {
	return m.probeFunc(filePath)
}

// mockUploader мок для загрузки в хранилище
type mockUploader struct {
	uploadFunc func(ctx context.Context, body io.Reader, key, contentType string) (string, error)
	deleteFunc func(ctx context.Context, key string) error
}

func (m *mockUploader) UploadFile(ctx context.Context, body io.Reader, key, contentType string) (string, error) {
	return m.uploadFunc(ctx, body, key, contentType)
}

func (m *mockUploader) DeleteFile(ctx context.Context, key string) error {
	if m.deleteFunc == nil {
		return nil
	}
	return m.deleteFunc(ctx, key)
}

// createTestFile создает временный файл с указанным содержимым
func createTestFile(t *testing.T, name, content string) string {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		t.Fatalf("Ошибка создания тестового файла: %v", err)
	}
	return filePath
}

func probeFor(length time.Duration) *mockProber {
	return &mockProber{
		probeFunc: func(filePath string) (*metadata.Probe, error) {
			return &metadata.Probe{
				Path:     filePath,
				Metadata: metadata.TrackMetadata{Artist: "Test Artist", Title: "Test Title", Album: "Test Album"},
				Size:     17,
				Duration: length,
			}, nil
		},
	}
}

func TestAddFileWithoutUpload(t *testing.T) {
	filePath := createTestFile(t, "song.mp3", "fake mp3 content")
	appData := data.NewAppData()

	service := NewService(probeFor(3725*time.Second+400*time.Millisecond), nil, "tracks/", appData, zerolog.Nop())

	result, err := service.AddFile(context.Background(), filePath, false, nil)
	if err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}

	if result.URL != "" {
		t.Errorf("Не ожидался URL без загрузки, получено %s", result.URL)
	}
	if result.Track.ID != 1 {
		t.Errorf("Ожидался ID 1, получено %d", result.Track.ID)
	}
	if result.Track.Clock() != "01:02:05" {
		t.Errorf("Ожидалась длительность 01:02:05, получено %s", result.Track.Clock())
	}
	if len(appData.Tracks) != 1 || appData.Tracks[0].Path != filePath {
		t.Errorf("Трек не добавлен в библиотеку: %+v", appData.Tracks)
	}
}

func TestAddFileWithUpload(t *testing.T) {
	filePath := createTestFile(t, "My Song.mp3", "fake mp3 content")
	appData := data.NewAppData()

	var uploadedKey, uploadedType, uploadedBody string
	uploader := &mockUploader{
		uploadFunc: func(_ context.Context, body io.Reader, key, contentType string) (string, error) {
			content, err := io.ReadAll(body)
			if err != nil {
				return "", err
			}
			uploadedKey, uploadedType, uploadedBody = key, contentType, string(content)
			return "https://bucket.s3.amazonaws.com/" + key, nil
		},
	}

	var lastProgress int64
	service := NewService(probeFor(200*time.Second), uploader, "tracks/", appData, zerolog.Nop())
	result, err := service.AddFile(context.Background(), filePath, true, func(n int64) { lastProgress = n })
	if err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}

	if uploadedKey != "tracks/My Song.mp3" {
		t.Errorf("Неожиданный ключ: %s", uploadedKey)
	}
	if uploadedType != "audio/mpeg" {
		t.Errorf("Неожиданный Content-Type: %s", uploadedType)
	}
	if uploadedBody != "fake mp3 content" {
		t.Errorf("Неожиданное содержимое: %s", uploadedBody)
	}
	if lastProgress != int64(len("fake mp3 content")) {
		t.Errorf("Ожидался прогресс %d, получено %d", len("fake mp3 content"), lastProgress)
	}
	if result.Track.RemoteKey != uploadedKey || result.Track.SourceURL != result.URL {
		t.Errorf("Трек не содержит данных о загрузке: %+v", result.Track)
	}
}

func TestAddFileErrors(t *testing.T) {
	existing := createTestFile(t, "song.mp3", "content")

	tests := []struct {
		name     string
		filePath string
		upload   bool
		prober   Prober
		uploader ObjectUploader
		errText  string
	}{
		{
			name:     "MissingFile",
			filePath: filepath.Join(t.TempDir(), "missing.mp3"),
			prober:   probeFor(time.Second),
			errText:  "файл не найден",
		},
		{
			name:     "UploadWithoutStorage",
			filePath: existing,
			upload:   true,
			prober:   probeFor(time.Second),
			errText:  "хранилище S3 не настроено",
		},
		{
			name:     "ProbeError",
			filePath: existing,
			prober: &mockProber{probeFunc: func(string) (*metadata.Probe, error) {
				return nil, errors.New("not an mp3")
			}},
			errText: "ошибка анализа файла",
		},
		{
			name:     "UploadError",
			filePath: existing,
			upload:   true,
			prober:   probeFor(time.Second),
			uploader: &mockUploader{uploadFunc: func(context.Context, io.Reader, string, string) (string, error) {
				return "", errors.New("access denied")
			}},
			errText: "ошибка загрузки в S3",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			appData := data.NewAppData()
			service := NewService(test.prober, test.uploader, "tracks/", appData, zerolog.Nop())

			_, err := service.AddFile(context.Background(), test.filePath, test.upload, nil)
			if err == nil || !strings.Contains(err.Error(), test.errText) {
				t.Errorf("Ожидалась ошибка %q, получено: %v", test.errText, err)
			}
			if len(appData.Tracks) != 0 {
				t.Error("При ошибке трек не должен добавляться")
			}
		})
	}
}

func TestDiscardUploadedTrack(t *testing.T) {
	filePath := createTestFile(t, "Orphan.mp3", "fake mp3 content")
	appData := data.NewAppData()
	appData.AddTrack(data.Track{Title: "Existing", Length: 10})

	var deleted []string
	uploader := &mockUploader{
		uploadFunc: func(_ context.Context, body io.Reader, key, _ string) (string, error) {
			return "https://bucket.s3.amazonaws.com/" + key, nil
		},
		deleteFunc: func(_ context.Context, key string) error {
			deleted = append(deleted, key)
			return nil
		},
	}

	service := NewService(probeFor(time.Minute), uploader, "tracks/", appData, zerolog.Nop())
	result, err := service.AddFile(context.Background(), filePath, true, nil)
	if err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}

	if err := service.Discard(context.Background(), result); err != nil {
		t.Fatalf("Ошибка отмены добавления: %v", err)
	}

	if len(deleted) != 1 || deleted[0] != "tracks/Orphan.mp3" {
		t.Errorf("Ожидалось удаление tracks/Orphan.mp3, удалено: %v", deleted)
	}
	if len(appData.Tracks) != 1 || appData.Tracks[0].Title != "Existing" {
		t.Errorf("В библиотеке должен остаться только прежний трек: %+v", appData.Tracks)
	}
}

func TestDiscardLocalTrack(t *testing.T) {
	filePath := createTestFile(t, "local.mp3", "content")
	appData := data.NewAppData()

	uploader := &mockUploader{deleteFunc: func(context.Context, string) error {
		t.Error("Локальный трек не должен удаляться из хранилища")
		return nil
	}}

	service := NewService(probeFor(time.Second), uploader, "tracks/", appData, zerolog.Nop())
	result, err := service.AddFile(context.Background(), filePath, false, nil)
	if err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}

	if err := service.Discard(context.Background(), result); err != nil {
		t.Fatalf("Ошибка отмены добавления: %v", err)
	}
	if len(appData.Tracks) != 0 {
		t.Error("Трек должен быть удален из библиотеки")
	}
}

func TestDiscardDeleteError(t *testing.T) {
	appData := data.NewAppData()
	id := appData.AddTrack(data.Track{Title: "Uploaded", RemoteKey: "tracks/a.mp3"})

	uploader := &mockUploader{deleteFunc: func(context.Context, string) error {
		return errors.New("access denied")
	}}
	service := NewService(nil, uploader, "tracks/", appData, zerolog.Nop())

	err := service.Discard(context.Background(), &Result{Track: data.Track{ID: id, RemoteKey: "tracks/a.mp3"}})
	if err == nil || !strings.Contains(err.Error(), "ошибка удаления tracks/a.mp3") {
		t.Errorf("Неожиданная ошибка: %v", err)
	}
	if len(appData.Tracks) != 0 {
		t.Error("Трек должен быть удален из библиотеки даже при ошибке хранилища")
	}
}

func TestKey(t *testing.T) {
	service := NewService(nil, nil, "tracks/", data.NewAppData(), zerolog.Nop())

	testCases := []struct {
		filePath string
		expected string
	}{
		{"/music/song.mp3", "tracks/song.mp3"},
		{"relative/Mix 01.MP3", "tracks/Mix 01.mp3"},
		{"noext", "tracks/noext.mp3"},
	}

	for _, tc := range testCases {
		if got := service.Key(tc.filePath); got != tc.expected {
			t.Errorf("Key(%s) = %s; expected %s", tc.filePath, got, tc.expected)
		}
	}
}

// TestProgressReader тестирует отслеживание прогресса чтения
func TestProgressReader(t *testing.T) {
	testData := "test content for progress tracking"

	var progressBytes int64
	progressReader := &ProgressReader{
		Reader:     strings.NewReader(testData),
		Size:       int64(len(testData)),
		OnProgress: func(bytesRead int64) { progressBytes = bytesRead },
	}

	buffer := make([]byte, 10)
	for {
		_, err := progressReader.Read(buffer)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Неожиданная ошибка при чтении: %v", err)
		}
	}

	if progressBytes != int64(len(testData)) {
		t.Errorf("Ожидалось байт в callback: %d, получено: %d", len(testData), progressBytes)
	}
}
