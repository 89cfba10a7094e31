// Package streaming открывает фрагменты треков как буферизованные HTTP-потоки
package streaming

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// DefaultBufferSize размер буфера потока; фрагменты короткие, хватает 256KB
const DefaultBufferSize = 256 * 1024

// Opener открывает потоки фрагментов через общий HTTP клиент
type Opener struct {
	client     *http.Client
	bufferSize int
}

// NewOpener создает Opener с транспортом для длительного потокового чтения
func NewOpener() *Opener {
	return NewOpenerWithClient(&http.Client{
		// Общего таймаута нет, только таймауты соединения
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
	}, DefaultBufferSize)
}

// NewOpenerWithClient создает Opener поверх готового клиента
func NewOpenerWithClient(client *http.Client, bufferSize int) *Opener {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Opener{client: client, bufferSize: bufferSize}
}

// Reader буферизованный поток фрагмента
type Reader struct {
	reader *bufio.Reader
	resp   *http.Response
}

// Open выполняет запрос и возвращает поток тела ответа
func (o *Opener) Open(ctx context.Context, url string) (*Reader, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Accept-Encoding", "identity") // Сжатие мешает декодеру
	req.Header.Set("Range", "bytes=0-")
	req.Header.Set("User-Agent", "mpreview/1.0")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		resp.Body.Close()
		return nil, fmt.Errorf("ошибка HTTP: %s", resp.Status)
	}

	return &Reader{
		reader: bufio.NewReaderSize(resp.Body, o.bufferSize),
		resp:   resp,
	}, nil
}

// Read реализует интерфейс io.Reader
func (r *Reader) Read(p []byte) (int, error) {
	return r.reader.Read(p)
}

// Close закрывает соединение
func (r *Reader) Close() error {
	return r.resp.Body.Close()
}

// StatusText текстовое описание состояния потока по числу зависаний
func StatusText(stuckCount int) string {
	switch {
	case stuckCount == 0:
		return "Воспроизведение"
	case stuckCount <= 3:
		return "Буферизация..."
	case stuckCount <= 5:
		return "Медленная загрузка"
	default:
		return "Возможная проблема с соединением"
	}
}
