package search

import (
	"context"
	"time"

	"github.com/hazadus/mpreview/internal/config"
)

// ProviderFromConfig выбирает удаленный источник по конфигурации.
// Возвращает nil, если ни сервис, ни Spotify не настроены.
func ProviderFromConfig(ctx context.Context, cfg *config.Config) Provider {
	if cfg.SpotifyEnabled() {
		return NewSpotifyProvider(ctx, cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	}
	if cfg.BaseURL != "" {
		return NewEndpointProvider(cfg.BaseURL, time.Duration(cfg.SearchTimeoutSeconds)*time.Second)
	}
	return nil
}
