package chapters

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
)

const contentType = "text/plain; charset=utf-8"

var unsafeKeyChars = regexp.MustCompile(`[<>:"\\|?*\s]+`)

// ObjectUploader загружает объект в хранилище и возвращает его URL
type ObjectUploader interface {
	UploadFile(ctx context.Context, body io.Reader, key, contentType string) (string, error)
}

// Publisher публикует таймкоды в объектное хранилище
type Publisher struct {
	uploader ObjectUploader
	prefix   string
}

// NewPublisher создает публикатор, сохраняющий объекты с префиксом prefix
func NewPublisher(uploader ObjectUploader, prefix string) *Publisher {
	return &Publisher{uploader: uploader, prefix: prefix}
}

// Publish загружает таймкоды под именем name и возвращает URL объекта
func (p *Publisher) Publish(ctx context.Context, name string, chapters []Chapter) (string, error) {
	if len(chapters) == 0 {
		return "", fmt.Errorf("нет глав для публикации")
	}

	key := p.Key(name)
	url, err := p.uploader.UploadFile(ctx, strings.NewReader(RenderString(chapters)), key, contentType)
	if err != nil {
		return "", fmt.Errorf("ошибка публикации таймкодов %s: %w", key, err)
	}
	return url, nil
}

// Key возвращает ключ объекта для имени name. Ключ всегда лежит
// непосредственно под префиксом: от пути остается только последний элемент
func (p *Publisher) Key(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, ".txt")
	name = unsafeKeyChars.ReplaceAllString(name, "_")
	name = path.Base(path.Clean("/" + name))
	name = strings.Trim(name, "_./")
	if name == "" {
		name = "chapters"
	}
	return path.Join(p.prefix, name+".txt")
}
