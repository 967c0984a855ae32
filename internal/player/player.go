// Package player содержит компоненты для управления воспроизведением аудио
package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/hazadus/tracktime/internal/clock"
	"github.com/hazadus/tracktime/internal/data"
	"github.com/hazadus/tracktime/internal/streaming"
)

// ErrClosed возвращается при попытке воспроизведения после Close
var ErrClosed = errors.New("плеер закрыт")

// Status представляет текущий статус плеера
type Status struct {
	Current   time.Duration // Текущая позиция
	Total     time.Duration // Общая продолжительность
	IsPlaying bool          // Воспроизводится ли трек
}

// String возвращает позицию в виде "MM:SS / MM:SS"
func (s Status) String() string {
	return clock.FormatDuration(s.Current) + " / " + clock.FormatDuration(s.Total)
}

// Percent возвращает долю воспроизведенного от 0 до 1
func (s Status) Percent() float64 {
	if s.Total <= 0 {
		return 0
	}
	p := float64(s.Current) / float64(s.Total)
	if p > 1 {
		return 1
	}
	return p
}

// Player управляет воспроизведением треков
type Player struct {
	progressChan chan Status
	doneChan     chan bool

	mutex        sync.RWMutex
	closed       bool
	isPaused     bool
	sampleRate   beep.SampleRate // Частота, с которой инициализирован speaker
	currentTrack *data.Track
	stopMonitor  context.CancelFunc

	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl

	logger zerolog.Logger
}

// NewPlayer создает новый экземпляр плеера
func NewPlayer(logger zerolog.Logger) *Player {
	return &Player{
		progressChan: make(chan Status, 1),
		doneChan:     make(chan bool, 1),
		logger:       logger.With().Str("component", "player").Logger(),
	}
}

// Progress возвращает канал для получения обновлений прогресса
func (p *Player) Progress() <-chan Status {
	return p.progressChan
}

// Done возвращает канал, в который приходит сигнал о завершении воспроизведения
func (p *Player) Done() <-chan bool {
	return p.doneChan
}

// Play начинает воспроизведение трека: локального файла или потока по SourceURL
func (p *Player) Play(track *data.Track) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.closed {
		return ErrClosed
	}

	p.stopInternal()

	ctx, cancel := context.WithCancel(context.Background())

	source, origin, err := openSource(ctx, track)
	if err != nil {
		cancel()
		return err
	}

	streamer, format, err := mp3.Decode(source)
	if err != nil {
		source.Close()
		cancel()
		return fmt.Errorf("ошибка декодирования MP3: %w", err)
	}

	// Инициализируем speaker только один раз
	if p.sampleRate == 0 {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/5)); err != nil {
			streamer.Close()
			cancel()
			return fmt.Errorf("ошибка инициализации динамиков: %w", err)
		}
		p.sampleRate = format.SampleRate
	}

	var output beep.Streamer = streamer
	if format.SampleRate != p.sampleRate {
		output = beep.Resample(4, format.SampleRate, p.sampleRate, streamer)
	}

	p.streamer = streamer
	p.ctrl = &beep.Ctrl{Streamer: output}
	p.isPaused = false
	p.currentTrack = track
	// Отмена останавливает мониторинг и обрывает загрузку потока
	p.stopMonitor = cancel

	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		select {
		case p.doneChan <- true:
		default:
		}
	})))

	go p.monitorProgress(ctx, format, track)

	p.logger.Debug().Int("track_id", track.ID).Str("source", origin).Msg("воспроизведение начато")
	return nil
}

// openSource открывает локальный файл трека, а если его нет, то поток по SourceURL
func openSource(ctx context.Context, track *data.Track) (io.ReadCloser, string, error) {
	if track.Path != "" {
		file, err := os.Open(track.Path)
		if err == nil {
			return file, track.Path, nil
		}
		if track.SourceURL == "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("ошибка открытия файла: %w", err)
		}
	}

	switch {
	case track.SourceURL == "":
		return nil, "", fmt.Errorf("у трека с ID %d нет ни пути к файлу, ни ссылки на источник", track.ID)
	case streaming.IsVideoPage(track.SourceURL):
		return nil, "", fmt.Errorf("трек с ID %d ссылается на страницу видео, а не на аудиофайл: %s", track.ID, track.SourceURL)
	case !streaming.IsRemote(track.SourceURL):
		return nil, "", fmt.Errorf("неподдерживаемая ссылка на источник: %s", track.SourceURL)
	}

	reader, err := streaming.NewReader(ctx, track.SourceURL, streaming.DefaultBufferSize)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка открытия потока: %w", err)
	}
	return reader, track.SourceURL, nil
}

// Pause приостанавливает или возобновляет воспроизведение
func (p *Player) Pause() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.ctrl != nil {
		speaker.Lock()
		p.isPaused = !p.isPaused
		p.ctrl.Paused = p.isPaused
		speaker.Unlock()
	}
}

// Stop останавливает воспроизведение
func (p *Player) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.stopInternal()
}

// stopInternal внутренний метод остановки (должен вызываться под мьютексом)
func (p *Player) stopInternal() {
	if p.stopMonitor != nil {
		p.stopMonitor()
		p.stopMonitor = nil
	}

	if p.ctrl != nil {
		speaker.Clear()
		p.ctrl = nil
	}

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}

	p.currentTrack = nil
	p.isPaused = false
}

// Close закрывает плеер и освобождает ресурсы
func (p *Player) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.closed {
		return nil
	}
	p.stopInternal()
	p.closed = true
	close(p.progressChan)
	close(p.doneChan)
	return nil
}

// IsPlaying возвращает true, если трек воспроизводится
func (p *Player) IsPlaying() bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.ctrl != nil && !p.isPaused
}

// CurrentTrack возвращает информацию о текущем треке
func (p *Player) CurrentTrack() *data.Track {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.currentTrack
}

// monitorProgress раз в секунду отправляет статус воспроизведения
func (p *Player) monitorProgress(ctx context.Context, format beep.Format, track *data.Track) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.mutex.RLock()
			if p.closed || p.streamer == nil {
				p.mutex.RUnlock()
				return
			}

			speaker.Lock()
			current := format.SampleRate.D(p.streamer.Position())
			total := format.SampleRate.D(p.streamer.Len())
			paused := p.isPaused
			speaker.Unlock()

			// Длина из библиотеки точнее для файлов с переменным битрейтом,
			// а у потока без возможности перемотки длина неизвестна
			if track.Length > 0 {
				total = time.Duration(track.Length) * time.Second
			} else if total < 0 {
				total = 0
			}

			select {
			case p.progressChan <- Status{Current: current, Total: total, IsPlaying: !paused}:
			default:
				// Если канал заблокирован, пропускаем обновление
			}
			p.mutex.RUnlock()
		}
	}
}
