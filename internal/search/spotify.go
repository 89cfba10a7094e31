package search

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	spotifyclient "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/hazadus/mpreview/internal/track"
)

const spotifySearchLimit = 20

// SpotifyProvider ищет треки напрямую через Spotify Web API
type SpotifyProvider struct {
	client *spotifyclient.Client
}

// NewSpotifyProvider создает провайдера с авторизацией client credentials.
// Токен запрашивается лениво при первом поиске и обновляется автоматически.
func NewSpotifyProvider(ctx context.Context, clientID, clientSecret string) *SpotifyProvider {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	return NewSpotifyProviderWithClient(spotifyclient.New(config.Client(ctx)))
}

// NewSpotifyProviderWithClient оборачивает готовый клиент Spotify
func NewSpotifyProviderWithClient(client *spotifyclient.Client) *SpotifyProvider {
	return &SpotifyProvider{client: client}
}

// Name имя провайдера для сообщений
func (p *SpotifyProvider) Name() string {
	return "Spotify"
}

// SearchTracks выполняет поиск треков и приводит их к единой модели
func (p *SpotifyProvider) SearchTracks(ctx context.Context, query string) ([]track.Track, error) {
	results, err := p.client.Search(ctx, query, spotifyclient.SearchTypeTrack, spotifyclient.Limit(spotifySearchLimit))
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска Spotify: %w", err)
	}

	tracks := []track.Track{}
	if results == nil || results.Tracks == nil {
		return tracks, nil
	}

	for _, ft := range results.Tracks.Tracks {
		artists := make([]string, 0, len(ft.Artists))
		for _, artist := range ft.Artists {
			artists = append(artists, artist.Name)
		}

		images := make([]track.Image, 0, len(ft.Album.Images))
		for _, img := range ft.Album.Images {
			images = append(images, track.Image{URL: img.URL})
		}

		tracks = append(tracks, track.Track{
			ID:          string(ft.ID),
			Name:        ft.Name,
			Artists:     artists,
			Album:       track.Album{Images: images},
			PreviewURL:  ft.PreviewURL,
			ExternalURL: ft.ExternalURLs["spotify"],
		})
	}

	log.WithFields(log.Fields{
		"component": "search",
		"query":     query,
	}).Debugf("Spotify вернул треков: %d", len(tracks))
	return tracks, nil
}
