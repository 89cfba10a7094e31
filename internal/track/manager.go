package track

// Manager управляет текущим набором результатов
type Manager struct {
	tracks []Track
}

// NewManager создает новый экземпляр Manager с начальным набором
func NewManager(initial []Track) *Manager {
	m := &Manager{}
	m.SetTracks(initial)
	return m
}

// SetTracks заменяет набор результатов целиком
func (m *Manager) SetTracks(tracks []Track) {
	m.tracks = append([]Track(nil), tracks...)
}

// ListTracks возвращает список всех треков
func (m *Manager) ListTracks() []Track {
	return m.tracks
}

// TrackByID возвращает трек текущего набора по ID
func (m *Manager) TrackByID(id string) (Track, bool) {
	for _, t := range m.tracks {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}

// Filter возвращает треки, для которых keep вернул true, сохраняя порядок
func (m *Manager) Filter(keep func(Track) bool) []Track {
	result := make([]Track, 0, len(m.tracks))
	for _, t := range m.tracks {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}
