package data

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestAddTrackAssignsIDs(t *testing.T) {
	appData := NewAppData()

	if id := appData.AddTrack(Track{Artist: "Artist 1", Title: "Title 1"}); id != 1 {
		t.Errorf("Ожидался ID: 1, получено: %d", id)
	}
	if id := appData.AddTrack(Track{Artist: "Artist 2", Title: "Title 2"}); id != 2 {
		t.Errorf("Ожидался ID: 2, получено: %d", id)
	}

	// После удаления ID не переиспользуется, пока остается трек с большим ID
	if err := appData.DeleteTrackByID(1); err != nil {
		t.Fatalf("Ошибка при удалении трека: %v", err)
	}
	if id := appData.AddTrack(Track{Title: "Title 3"}); id != 3 {
		t.Errorf("Ожидался ID: 3, получено: %d", id)
	}
}

func TestTrackByID(t *testing.T) {
	appData := NewAppData()
	appData.AddTrack(Track{Artist: "Artist", Title: "Title", Length: 180})

	track, err := appData.TrackByID(1)
	if err != nil {
		t.Fatalf("Ошибка поиска трека: %v", err)
	}
	if track.Title != "Title" {
		t.Errorf("Ожидался Title: Title, получено: %s", track.Title)
	}

	_, err = appData.TrackByID(42)
	if !errors.Is(err, ErrTrackNotFound) {
		t.Errorf("Ожидалась ошибка ErrTrackNotFound, получено: %v", err)
	}
}

func TestDeleteTrackByID(t *testing.T) {
	appData := NewAppData()
	appData.AddTrack(Track{Artist: "Artist 1"})
	appData.AddTrack(Track{Artist: "Artist 2"})

	if err := appData.DeleteTrackByID(1); err != nil {
		t.Fatalf("Ошибка при удалении трека: %v", err)
	}
	if len(appData.Tracks) != 1 || appData.Tracks[0].Artist != "Artist 2" {
		t.Errorf("Неожиданное содержимое библиотеки после удаления: %+v", appData.Tracks)
	}

	if err := appData.DeleteTrackByID(1); !errors.Is(err, ErrTrackNotFound) {
		t.Errorf("Ожидалась ошибка ErrTrackNotFound при повторном удалении, получено: %v", err)
	}
}

func TestUpdateTrack(t *testing.T) {
	appData := NewAppData()
	id := appData.AddTrack(Track{Artist: "Old", Length: 10})

	err := appData.UpdateTrack(Track{ID: id, Artist: "New", Length: 200})
	if err != nil {
		t.Fatalf("Ошибка обновления трека: %v", err)
	}
	if appData.Tracks[0].Artist != "New" || appData.Tracks[0].Length != 200 {
		t.Errorf("Трек не обновлен: %+v", appData.Tracks[0])
	}

	if err := appData.UpdateTrack(Track{ID: 99}); !errors.Is(err, ErrTrackNotFound) {
		t.Errorf("Ожидалась ошибка ErrTrackNotFound, получено: %v", err)
	}
}

func TestTotalLength(t *testing.T) {
	appData := NewAppData()
	appData.AddTrack(Track{Length: 180})
	appData.AddTrack(Track{Length: 0})
	appData.AddTrack(Track{Length: 3600})

	if total := appData.TotalLength(); total != 3780 {
		t.Errorf("Ожидалась суммарная длительность 3780, получено: %d", total)
	}
}

func TestTrackClockAndName(t *testing.T) {
	tests := []struct {
		track         Track
		expectedClock string
		expectedName  string
	}{
		{Track{Artist: "A", Title: "B", Length: 65}, "01:05", "A - B"},
		{Track{Title: "B", Length: 3661}, "01:01:01", "B"},
		{Track{Artist: "A"}, "N/A", "A"},
	}

	for _, test := range tests {
		if got := test.track.Clock(); got != test.expectedClock {
			t.Errorf("Clock() = %s; expected %s", got, test.expectedClock)
		}
		if got := test.track.Name(); got != test.expectedName {
			t.Errorf("Name() = %s; expected %s", got, test.expectedName)
		}
	}
}

func TestSaveAndLoadData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")

	appData := NewAppData()
	appData.AddTrack(Track{
		Artist:    "Test Artist",
		Title:     "Test Title",
		Album:     "Test Album",
		Length:    180,
		FileSize:  1024000,
		Path:      "/music/test.mp3",
		SourceURL: "https://example.com/source",
	})
	if err := appData.SaveData(path); err != nil {
		t.Fatalf("Ошибка сохранения данных: %v", err)
	}

	loaded := NewAppData()
	if err := loaded.LoadData(path); err != nil {
		t.Fatalf("Ошибка загрузки данных: %v", err)
	}
	if len(loaded.Tracks) != 1 {
		t.Fatalf("Ожидался 1 трек, получено %d", len(loaded.Tracks))
	}
	if loaded.Tracks[0] != appData.Tracks[0] {
		t.Errorf("Загруженный трек отличается: %+v != %+v", loaded.Tracks[0], appData.Tracks[0])
	}
}

func TestLoadDataMissingAndEmptyFile(t *testing.T) {
	dir := t.TempDir()

	appData := &AppData{Tracks: []Track{{ID: 7}}}
	if err := appData.LoadData(filepath.Join(dir, "missing.yaml")); err != nil {
		t.Fatalf("Отсутствующий файл не должен быть ошибкой: %v", err)
	}
	if len(appData.Tracks) != 0 {
		t.Errorf("Ожидалась пустая библиотека, получено %d треков", len(appData.Tracks))
	}

	emptyPath := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(emptyPath, nil, 0644); err != nil {
		t.Fatalf("Ошибка записи файла: %v", err)
	}
	if err := appData.LoadData(emptyPath); err != nil {
		t.Fatalf("Пустой файл не должен быть ошибкой: %v", err)
	}
}

func TestLoadDataInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("tracks: [unclosed"), 0644); err != nil {
		t.Fatalf("Ошибка записи файла: %v", err)
	}

	appData := NewAppData()
	if err := appData.LoadData(path); err == nil {
		t.Error("Ожидалась ошибка при разборе некорректного YAML")
	}
}
