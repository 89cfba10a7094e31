package track

import "strings"

var fallbackTracks = []Track{
	{
		ID:            "m1",
		Name:          "SoundHelix Example",
		Artists:       []string{"SoundHelix"},
		AlbumImageURL: "https://via.placeholder.com/160",
		PreviewURL:    "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3",
	},
	{
		ID:            "m2",
		Name:          "Acoustic Loop",
		Artists:       []string{"Demo Artist"},
		AlbumImageURL: "https://via.placeholder.com/160/FFB6C1",
		PreviewURL:    "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-2.mp3",
	},
}

// Fallback возвращает копию встроенного набора треков
func Fallback() []Track {
	tracks := make([]Track, len(fallbackTracks))
	for i, t := range fallbackTracks {
		t.Artists = append([]string(nil), t.Artists...)
		tracks[i] = t
	}
	return tracks
}

// FilterFallback отбирает треки встроенного набора, у которых
// "название + исполнители" содержит запрос без учета регистра
func FilterFallback(query string) []Track {
	q := strings.ToLower(query)
	result := make([]Track, 0, len(fallbackTracks))
	for _, t := range Fallback() {
		haystack := strings.ToLower(t.Name + strings.Join(t.Artists, " "))
		if strings.Contains(haystack, q) {
			result = append(result, t)
		}
	}
	return result
}
