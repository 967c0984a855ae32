package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hazadus/tracktime/internal/player"
)

// createPlayCommand создает команду play с привязкой к экземпляру приложения
func (app *Application) createPlayCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "play [trackid]",
		Short: "Play a track by its ID",
		Long: `Play a library track, showing the position as mm:ss or hh:mm:ss.
The local mp3 file is used when present, otherwise the track is streamed from its source URL.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			trackID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("неверный ID трека: %s", args[0])
			}
			return app.playByID(ctx, trackID)
		},
	}
}

// setRawMode переключает терминал в режим чтения одиночных клавиш и обратно
func setRawMode(enabled bool) {
	args := []string{"echo", "icanon"}
	if enabled {
		args = []string{"-echo", "-icanon"}
	}
	cmd := exec.Command("stty", args...)
	cmd.Stdin = os.Stdin
	_ = cmd.Run() // Без stty управление с клавиатуры недоступно, воспроизведение продолжается
}

func (app *Application) playByID(ctx context.Context, trackID int) error {
	track, err := app.Data.TrackByID(trackID)
	if err != nil {
		return fmt.Errorf("ошибка поиска трека: %w", err)
	}

	p := player.NewPlayer(app.Logger)
	defer p.Close()

	if err := p.Play(track); err != nil {
		return fmt.Errorf("ошибка запуска воспроизведения: %w", err)
	}

	fmt.Printf("🎵 Сейчас играет:\n")
	fmt.Printf("   ID: %d\n", track.ID)
	fmt.Printf("   Исполнитель: %s\n", track.Artist)
	fmt.Printf("   Название: %s\n", track.Title)
	fmt.Printf("   Альбом: %s\n", track.Album)
	fmt.Printf("   Продолжительность: %s\n", track.Clock())
	fmt.Println()
	fmt.Printf("🎮 [Пробел] - пауза/воспроизведение, [Ctrl+C] - остановить и выйти\n\n")

	setRawMode(true)
	defer setRawMode(false)

	done := make(chan struct{})
	defer close(done)
	go forwardKeys(os.Stdin, p, done)

	for {
		select {
		case status, ok := <-p.Progress():
			if !ok {
				return nil
			}
			displayProgress(status)
		case <-p.Done():
			fmt.Println("\n✅ Воспроизведение завершено")
			return nil
		case <-ctx.Done():
			fmt.Println("\n⏹️  Воспроизведение остановлено")
			p.Stop()
			return nil
		}
	}
}

// pauser переключает паузу воспроизведения
type pauser interface {
	Pause()
}

// forwardKeys переключает паузу по пробелу или Enter, пока не закрыт done.
// Чтение из stdin нельзя прервать: после закрытия done горутина выходит
// на следующем нажатии или вместе с процессом, не трогая закрытый плеер
func forwardKeys(r io.Reader, p pauser, done <-chan struct{}) {
	buffer := make([]byte, 1)
	for {
		if _, err := r.Read(buffer); err != nil {
			return
		}
		select {
		case <-done:
			return
		default:
		}
		if buffer[0] == ' ' || buffer[0] == '\n' || buffer[0] == '\r' {
			p.Pause()
		}
	}
}

// displayProgress выводит строку прогресса воспроизведения
func displayProgress(status player.Status) {
	icon := "▶️ "
	if !status.IsPlaying {
		icon = "⏸️ "
	}
	fmt.Printf("\r\033[K%s %s | %.1f%%", icon, status.String(), status.Percent()*100)
}
