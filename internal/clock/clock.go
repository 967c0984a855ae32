// Package clock форматирует длительности в виде часов: "mm:ss" или "hh:mm:ss".
//
// Это единственное место в приложении, где длительность превращается в строку.
// Длительность трека, позиция воспроизведения и таймкоды глав выводятся через Format.
package clock

import (
	"fmt"
	"time"
)

// Split раскладывает количество секунд на часы, минуты и секунды.
// Отрицательные значения приводятся к нулю.
func Split(seconds int) (hours, minutes, secs int) {
	if seconds < 0 {
		seconds = 0
	}
	totalMinutes := seconds / 60
	return totalMinutes / 60, totalMinutes % 60, seconds % 60
}

// Format форматирует количество секунд в формат MM:SS, а при длительности
// от часа и больше в HH:MM:SS. Часы дополняются нулём только до двух цифр:
// 360000 секунд дают "100:00:00".
func Format(seconds int) string {
	hours, minutes, secs := Split(seconds)
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// FormatDuration форматирует time.Duration, отбрасывая доли секунды
func FormatDuration(d time.Duration) string {
	return Format(int(d / time.Second))
}
