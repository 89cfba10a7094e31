package track

import (
	"strings"
	"testing"
)

func TestCoverURL(t *testing.T) {
	tests := []struct {
		name     string
		track    Track
		expected string
	}{
		{
			name: "album image wins",
			track: Track{
				Album:         Album{Images: []Image{{URL: "https://img/album.jpg"}}},
				AlbumImageURL: "https://img/flat.jpg",
			},
			expected: "https://img/album.jpg",
		},
		{
			name:     "flat image",
			track:    Track{AlbumImageURL: "https://img/flat.jpg"},
			expected: "https://img/flat.jpg",
		},
		{
			name:     "empty album images",
			track:    Track{Album: Album{Images: []Image{}}},
			expected: PlaceholderCover,
		},
		{
			name:     "placeholder",
			track:    Track{},
			expected: PlaceholderCover,
		},
	}

	for _, test := range tests {
		if got := test.track.CoverURL(); got != test.expected {
			t.Errorf("%s: CoverURL() = %s, ожидалось %s", test.name, got, test.expected)
		}
	}
}

func TestExternalLink(t *testing.T) {
	withURL := Track{Name: "Song", Artists: []string{"A"}, ExternalURL: "https://open.spotify.com/track/1"}
	if got := withURL.ExternalLink(); got != "https://open.spotify.com/track/1" {
		t.Errorf("Ожидалась исходная ссылка, получено: %s", got)
	}

	synthesized := Track{Name: "Acoustic Loop", Artists: []string{"Demo Artist", "Other"}}
	expected := "https://open.spotify.com/search/Acoustic%20Loop%20Demo%20Artist"
	if got := synthesized.ExternalLink(); got != expected {
		t.Errorf("ExternalLink() = %s, ожидалось %s", got, expected)
	}

	noArtists := Track{Name: "Solo"}
	if got := noArtists.ExternalLink(); got != "https://open.spotify.com/search/Solo%20" {
		t.Errorf("ExternalLink() без исполнителей = %s", got)
	}
}

func TestYouTubeLink(t *testing.T) {
	tr := Track{Name: "Rock & Roll", Artists: []string{"A", "B"}}
	expected := "https://www.youtube.com/results?search_query=Rock%20%26%20Roll%20A%20B"
	if got := tr.YouTubeLink(); got != expected {
		t.Errorf("YouTubeLink() = %s, ожидалось %s", got, expected)
	}
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder("abc")
	if p.Name != "Favorite (id:abc)" {
		t.Errorf("Неожиданное имя заглушки: %s", p.Name)
	}
	if p.HasPreview() {
		t.Error("У заглушки не должно быть фрагмента")
	}
	if p.Artists == nil || len(p.Artists) != 0 {
		t.Errorf("Ожидался пустой список исполнителей, получено: %v", p.Artists)
	}
}

func TestFilterFallback(t *testing.T) {
	result := FilterFallback("acoustic")

	var names []string
	for _, tr := range result {
		names = append(names, tr.Name)
	}
	joined := strings.Join(names, ",")

	if !strings.Contains(joined, "Acoustic Loop") {
		t.Errorf("Результат должен содержать Acoustic Loop: %v", names)
	}
	if strings.Contains(joined, "SoundHelix Example") {
		t.Errorf("Результат не должен содержать SoundHelix Example: %v", names)
	}
}

func TestFilterFallbackMatchesArtistsCaseInsensitive(t *testing.T) {
	if got := FilterFallback("SOUNDHELIX"); len(got) != 1 || got[0].ID != "m1" {
		t.Errorf("Ожидался m1 по имени исполнителя, получено: %v", got)
	}
	if got := FilterFallback("demo artist"); len(got) != 1 || got[0].ID != "m2" {
		t.Errorf("Ожидался m2 по исполнителю, получено: %v", got)
	}
	if got := FilterFallback("nothing-matches"); len(got) != 0 {
		t.Errorf("Ожидался пустой результат, получено: %v", got)
	}
}

func TestFallbackReturnsCopy(t *testing.T) {
	first := Fallback()
	first[0].Name = "mutated"
	first[0].Artists[0] = "mutated"

	second := Fallback()
	if second[0].Name != "SoundHelix Example" || second[0].Artists[0] != "SoundHelix" {
		t.Error("Fallback должен возвращать независимую копию")
	}
}

func TestManager(t *testing.T) {
	manager := NewManager(Fallback())

	if len(manager.ListTracks()) != 2 {
		t.Fatalf("Ожидалось 2 трека, получено %d", len(manager.ListTracks()))
	}

	if tr, ok := manager.TrackByID("m2"); !ok || tr.Name != "Acoustic Loop" {
		t.Errorf("TrackByID(m2) = %v, %v", tr, ok)
	}
	if _, ok := manager.TrackByID("missing"); ok {
		t.Error("Отсутствующий трек не должен находиться")
	}

	filtered := manager.Filter(func(tr Track) bool { return tr.ID == "m1" })
	if len(filtered) != 1 || filtered[0].ID != "m1" {
		t.Errorf("Filter вернул %v", filtered)
	}

	manager.SetTracks(nil)
	if len(manager.ListTracks()) != 0 {
		t.Errorf("После замены ожидался пустой набор, получено %d", len(manager.ListTracks()))
	}
}
