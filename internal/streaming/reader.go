// Package streaming содержит компоненты для потокового воспроизведения треков по HTTP
package streaming

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBufferSize размер буфера чтения потока
const DefaultBufferSize = 256 * 1024

// Reader представляет буферизованный поток трека, загружаемого по HTTP
type Reader struct {
	reader *bufio.Reader
	resp   *http.Response
}

// Общий клиент без таймаута на все тело ответа: трек читается в темпе воспроизведения
var client = &http.Client{
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		IdleConnTimeout:       300 * time.Second,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		ExpectContinueTimeout: 1 * time.Second,
	},
}

// IsRemote проверяет, что адрес можно открыть как HTTP-поток
func IsRemote(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// IsVideoPage возвращает true для ссылок на страницы YouTube, которые не являются аудиофайлом
func IsVideoPage(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	return host == "youtube.com" || host == "m.youtube.com" || host == "youtu.be"
}

// NewReader открывает поток по адресу. Запрос прерывается при отмене ctx
func NewReader(ctx context.Context, rawURL string, bufferSize int) (*Reader, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	// Сжатие мешает декодеру читать поток по мере загрузки
	req.Header.Set("Accept-Encoding", "identity")
	req.Header.Set("Range", "bytes=0-")
	req.Header.Set("User-Agent", "tracktime/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		resp.Body.Close()
		return nil, fmt.Errorf("ошибка HTTP: %s", resp.Status)
	}

	return &Reader{
		reader: bufio.NewReaderSize(resp.Body, bufferSize),
		resp:   resp,
	}, nil
}

// Read реализует интерфейс io.Reader
func (r *Reader) Read(p []byte) (int, error) {
	return r.reader.Read(p)
}

// Size возвращает размер потока из заголовков ответа или -1, если он неизвестен
func (r *Reader) Size() int64 {
	return r.resp.ContentLength
}

// Close закрывает соединение
func (r *Reader) Close() error {
	return r.resp.Body.Close()
}
