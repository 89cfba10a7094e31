// Package track содержит единую модель трека и текущий набор результатов
package track

import (
	"net/url"
	"strings"
)

// PlaceholderCover обложка по умолчанию
const PlaceholderCover = "https://via.placeholder.com/160"

const (
	externalSearchBase = "https://open.spotify.com/search/"
	youtubeSearchBase  = "https://www.youtube.com/results?search_query="
)

// Image изображение альбома
type Image struct {
	URL string `json:"url" yaml:"url"`
}

// Album структурированные данные альбома из ответа поиска
type Album struct {
	Images []Image `json:"images,omitempty" yaml:"images,omitempty"`
}

// Track единая запись трека, не зависящая от схемы удаленного сервиса.
// ID уникален только в пределах одного набора результатов.
type Track struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Artists       []string `json:"artists" yaml:"artists"`
	Album         Album    `json:"album" yaml:"album,omitempty"`
	AlbumImageURL string   `json:"albumImageUrl,omitempty" yaml:"album_image_url,omitempty"`
	PreviewURL    string   `json:"previewUrl,omitempty" yaml:"preview_url,omitempty"`
	ExternalURL   string   `json:"externalUrl,omitempty" yaml:"external_url,omitempty"`
}

// HasPreview сообщает, доступен ли фрагмент для воспроизведения
func (t Track) HasPreview() bool {
	return t.PreviewURL != ""
}

// CoverURL выбирает обложку: изображение альбома, плоский URL, заглушка
func (t Track) CoverURL() string {
	if len(t.Album.Images) > 0 && t.Album.Images[0].URL != "" {
		return t.Album.Images[0].URL
	}
	if t.AlbumImageURL != "" {
		return t.AlbumImageURL
	}
	return PlaceholderCover
}

// FirstArtist возвращает первого исполнителя или пустую строку
func (t Track) FirstArtist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0]
}

// ExternalLink возвращает ссылку на сервис прослушивания.
// Без external_url строится поиск по названию и первому исполнителю.
func (t Track) ExternalLink() string {
	if t.ExternalURL != "" {
		return t.ExternalURL
	}
	return externalSearchBase + encodeURIComponent(t.Name+" "+t.FirstArtist())
}

// YouTubeLink возвращает ссылку на поиск YouTube по названию и всем исполнителям
func (t Track) YouTubeLink() string {
	return youtubeSearchBase + encodeURIComponent(t.Name+" "+strings.Join(t.Artists, " "))
}

// Placeholder синтезирует запись избранного без метаданных
func Placeholder(id string) Track {
	return Track{
		ID:      id,
		Name:    "Favorite (id:" + id + ")",
		Artists: []string{},
	}
}

// encodeURIComponent кодирует строку целиком как компонент URL (пробел -> %20)
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
