// Package search выполняет поиск треков через удаленный сервис
// с подменой на встроенный набор при отсутствии сервиса или ошибке
package search

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/hazadus/mpreview/internal/track"
)

// ErrEmptyQuery пустой запрос, поиск не выполняется
var ErrEmptyQuery = errors.New("введите поисковый запрос")

// Provider удаленный источник треков
type Provider interface {
	SearchTracks(ctx context.Context, query string) ([]track.Track, error)
	Name() string
}

// Result результат одного поиска
type Result struct {
	Query  string
	Tracks []track.Track
	// Mock поиск выполнен по встроенному набору, т.к. сервис не настроен
	Mock bool
	// Fallback встроенный набор подставлен из-за ошибки
	Fallback bool
	// Failure причина ошибки запроса при Fallback
	Failure error
}

// Client выполняет поиск. Без провайдера работает по встроенному набору.
type Client struct {
	provider Provider
}

// NewClient создает клиента; provider может быть nil
func NewClient(provider Provider) *Client {
	return &Client{provider: provider}
}

// Configured сообщает, настроен ли удаленный сервис
func (c *Client) Configured() bool {
	return c.provider != nil
}

// ProviderName имя удаленного сервиса или пустая строка
func (c *Client) ProviderName() string {
	if c.provider == nil {
		return ""
	}
	return c.provider.Name()
}

// NormalizeQuery обрезает пробелы и отклоняет пустой запрос
func NormalizeQuery(query string) (string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", ErrEmptyQuery
	}
	return q, nil
}

// Search выполняет один поиск. Ошибка возвращается только для пустого запроса:
// сбой удаленного сервиса отражается в Result.Failure, а треки подменяются встроенным набором.
func (c *Client) Search(ctx context.Context, query string) (Result, error) {
	q, err := NormalizeQuery(query)
	if err != nil {
		return Result{}, err
	}

	if c.provider == nil {
		return Result{Query: q, Tracks: track.FilterFallback(q), Mock: true}, nil
	}

	tracks, err := c.provider.SearchTracks(ctx, q)
	if err != nil {
		log.WithFields(log.Fields{
			"component": "search",
			"query":     q,
		}).Warnf("поиск через %s не удался, подставлен встроенный набор: %v", c.provider.Name(), err)
		return Result{Query: q, Tracks: track.Fallback(), Fallback: true, Failure: err}, nil
	}

	if tracks == nil {
		tracks = []track.Track{}
	}
	return Result{Query: q, Tracks: tracks}, nil
}
