// Package view превращает набор треков в сетку карточек
package view

import (
	"strings"

	"github.com/hazadus/mpreview/internal/track"
)

// NoResults текст заглушки для пустой сетки
const NoResults = "No results"

const (
	labelPlay  = "Play"
	labelPause = "Pause"

	glyphFavorite = "★"
	glyphPlain    = "☆"
)

// Mode режим отображения
type Mode int

const (
	// ModeAll все треки текущего набора
	ModeAll Mode = iota
	// ModeFavorites только избранные
	ModeFavorites
)

func (m Mode) String() string {
	if m == ModeFavorites {
		return "favorites"
	}
	return "all"
}

// Card карточка одного трека. Title и Artists экранированы для разметки,
// PlainTitle и PlainArtists выводятся в терминал как есть.
type Card struct {
	ID           string
	Title        string
	Artists      string
	PlainTitle   string
	PlainArtists string
	CoverURL     string
	PlayLabel    string
	CanPlay      bool
	Playing      bool
	Favorite     bool
	FavGlyph     string
	ExternalURL  string
	YouTubeURL   string
}

// Grid полностью заменяемая сетка: либо заглушка, либо карточки
type Grid struct {
	Placeholder string
	Cards       []Card
}

// Empty сообщает, что вместо карточек показывается заглушка
func (g Grid) Empty() bool {
	return len(g.Cards) == 0
}

// Favorites проверка принадлежности к избранному
type Favorites interface {
	Contains(id string) bool
}

// Render строит сетку в порядке треков
func Render(tracks []track.Track, playingID string, favs Favorites) Grid {
	if len(tracks) == 0 {
		return Grid{Placeholder: NoResults}
	}

	cards := make([]Card, 0, len(tracks))
	for _, t := range tracks {
		playing := playingID != "" && t.ID == playingID
		favorite := favs != nil && favs.Contains(t.ID)

		artists := strings.Join(t.Artists, ", ")
		card := Card{
			ID:           t.ID,
			Title:        EscapeHTML(t.Name),
			Artists:      EscapeHTML(artists),
			PlainTitle:   t.Name,
			PlainArtists: artists,
			CoverURL:     t.CoverURL(),
			PlayLabel:    labelPlay,
			CanPlay:      t.HasPreview(),
			Playing:      playing,
			Favorite:     favorite,
			FavGlyph:     glyphPlain,
			ExternalURL:  t.ExternalLink(),
			YouTubeURL:   t.YouTubeLink(),
		}
		if playing {
			card.PlayLabel = labelPause
		}
		if favorite {
			card.FavGlyph = glyphFavorite
		}
		cards = append(cards, card)
	}

	return Grid{Cards: cards}
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeHTML экранирует только &, < и >; кавычки остаются как есть
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// FavoriteTracks отбирает избранные треки из текущего набора. Если ни один
// не найден, но избранное не пусто, возвращает заглушки по идентификаторам.
func FavoriteTracks(current []track.Track, ids []string) []track.Track {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	var filtered []track.Track
	for _, t := range current {
		if _, ok := set[t.ID]; ok {
			filtered = append(filtered, t)
		}
	}

	if len(filtered) == 0 && len(ids) > 0 {
		for _, id := range ids {
			filtered = append(filtered, track.Placeholder(id))
		}
	}

	return filtered
}
