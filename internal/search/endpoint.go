package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/hazadus/mpreview/internal/track"
)

// RequestError ответ сервиса с кодом, отличным от 2xx
type RequestError struct {
	StatusCode int
	Body       string
}

// DefaultFailureText текст сбоя, когда подробностей нет
const DefaultFailureText = "search failed"

func (e *RequestError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return DefaultFailureText
}

// FailureText текст сбоя поиска для строки статуса
func FailureText(err error) string {
	if err == nil || err.Error() == "" {
		return DefaultFailureText
	}
	return err.Error()
}

// rawTrack элемент ответа сервиса поиска
type rawTrack struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Artists     []string  `json:"artists"`
	Album       *rawAlbum `json:"album"`
	PreviewURL  *string   `json:"preview_url"`
	ExternalURL *string   `json:"external_url"`
}

type rawAlbum struct {
	Images []track.Image `json:"images"`
}

type rawResponse struct {
	Tracks []rawTrack `json:"tracks"`
}

// EndpointProvider ищет через GET {base}/api/search?q=...
type EndpointProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewEndpointProvider создает провайдера для указанного базового URL
func NewEndpointProvider(baseURL string, timeout time.Duration) *EndpointProvider {
	return &EndpointProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name имя провайдера для сообщений
func (p *EndpointProvider) Name() string {
	return p.baseURL
}

// SearchTracks выполняет один запрос и приводит ответ к единой модели
func (p *EndpointProvider) SearchTracks(ctx context.Context, query string) ([]track.Track, error) {
	endpoint := p.baseURL + "/api/search?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("User-Agent", "mpreview/1.0")

	logger := log.WithFields(log.Fields{
		"component":  "search",
		"request_id": requestID,
		"query":      query,
	})
	logger.Debug("запрос к сервису поиска")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		logger.Debugf("сервис ответил %s", resp.Status)
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var payload rawResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("ошибка разбора ответа: %w", err)
	}

	tracks := make([]track.Track, 0, len(payload.Tracks))
	for _, raw := range payload.Tracks {
		tracks = append(tracks, raw.toTrack())
	}
	logger.Debugf("получено треков: %d", len(tracks))
	return tracks, nil
}

// toTrack переименовывает поля и подставляет пустые значения по умолчанию
func (r rawTrack) toTrack() track.Track {
	t := track.Track{
		ID:      r.ID,
		Name:    r.Name,
		Artists: r.Artists,
	}
	if t.Artists == nil {
		t.Artists = []string{}
	}
	if r.Album != nil {
		t.Album = track.Album{Images: r.Album.Images}
	}
	if r.PreviewURL != nil {
		t.PreviewURL = *r.PreviewURL
	}
	if r.ExternalURL != nil {
		t.ExternalURL = *r.ExternalURL
	}
	return t
}
