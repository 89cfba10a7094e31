// Package widget объединяет поиск, воспроизведение, избранное и тему
// в одно состояние приложения. Все изменения выполняются из одного цикла событий.
package widget

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/hazadus/mpreview/internal/browser"
	"github.com/hazadus/mpreview/internal/data"
	"github.com/hazadus/mpreview/internal/favorites"
	"github.com/hazadus/mpreview/internal/playback"
	"github.com/hazadus/mpreview/internal/search"
	"github.com/hazadus/mpreview/internal/theme"
	"github.com/hazadus/mpreview/internal/track"
	"github.com/hazadus/mpreview/internal/view"
)

// Строки статуса
const (
	StatusMockNotice   = "Not connected to backend: using mock data. Set base_url for live previews."
	StatusConnected    = "Connected to backend: "
	StatusEmptyQuery   = "Enter a search query."
	StatusSearching    = "Searching..."
	StatusMockMode     = "Mock mode (set base_url to enable live search)."
	StatusNoTracks     = "No tracks found."
	StatusErrorPrefix  = "Error: "
	StatusNoPreview    = "Preview unavailable for this track, try YouTube."
	StatusBlocked      = "Playback blocked, press play again."
	StatusFavorites    = "Favorites"
	StatusStoreFailure = "Could not save: "
	StatusOpenFailure  = "Could not open link: "
)

// ErrUnknownTrack трека нет среди отображаемых
var ErrUnknownTrack = errors.New("трек не найден")

// Options зависимости виджета
type Options struct {
	Search *search.Client
	Engine playback.Engine
	Store  data.Store
	Opener browser.Opener
	// Backend подпись сервиса для строки статуса
	Backend string
}

// Widget явное состояние приложения
type Widget struct {
	search    *search.Client
	playback  *playback.Controller
	favorites *favorites.Store
	kv        data.Store
	tracks    *track.Manager
	opener    browser.Opener

	mode   view.Mode
	theme  theme.Theme
	status string
}

// New создает виджет со встроенным набором треков
func New(opts Options) *Widget {
	client := opts.Search
	if client == nil {
		client = search.NewClient(nil)
	}
	opener := opts.Opener
	if opener == nil {
		opener = browser.NewSystemOpener()
	}

	w := &Widget{
		search:    client,
		playback:  playback.NewController(opts.Engine),
		favorites: favorites.Load(opts.Store),
		kv:        opts.Store,
		tracks:    track.NewManager(track.Fallback()),
		opener:    opener,
		mode:      view.ModeAll,
		theme:     theme.Load(opts.Store),
	}

	if client.Configured() {
		backend := opts.Backend
		if backend == "" {
			backend = client.ProviderName()
		}
		w.status = StatusConnected + backend
	} else {
		w.status = StatusMockNotice
	}

	return w
}

// Status текущая строка статуса
func (w *Widget) Status() string { return w.status }

// Mode текущий режим отображения
func (w *Widget) Mode() view.Mode { return w.mode }

// Theme текущая тема
func (w *Widget) Theme() theme.Theme { return w.theme }

// PlayingID идентификатор играющего трека
func (w *Widget) PlayingID() string { return w.playback.PlayingID() }

// FavoriteIDs избранные идентификаторы в порядке добавления
func (w *Widget) FavoriteIDs() []string { return w.favorites.IDs() }

// Tracks текущий набор результатов
func (w *Widget) Tracks() []track.Track { return w.tracks.ListTracks() }

// BeginSearch проверяет запрос и выставляет статус поиска
func (w *Widget) BeginSearch(query string) (string, error) {
	q, err := search.NormalizeQuery(query)
	if err != nil {
		w.status = StatusEmptyQuery
		return "", err
	}
	w.status = StatusSearching
	return q, nil
}

// Fetch выполняет запрос, не изменяя состояние; безопасен вне цикла событий
func (w *Widget) Fetch(ctx context.Context, query string) (search.Result, error) {
	return w.search.Search(ctx, query)
}

// ApplySearch заменяет набор результатов. Результаты применяются в порядке
// поступления: последний примененный поиск побеждает.
func (w *Widget) ApplySearch(res search.Result) {
	w.tracks.SetTracks(res.Tracks)
	w.mode = view.ModeAll

	switch {
	case res.Fallback:
		w.status = StatusErrorPrefix + search.FailureText(res.Failure)
	case res.Mock:
		w.status = StatusMockMode
	case len(res.Tracks) == 0:
		w.status = StatusNoTracks
	default:
		w.status = ""
	}

	log.WithFields(log.Fields{
		"component": "widget",
		"query":     res.Query,
	}).Debugf("применен результат поиска: %d треков", len(res.Tracks))
}

// Search синхронно выполняет весь цикл поиска
func (w *Widget) Search(ctx context.Context, query string) error {
	q, err := w.BeginSearch(query)
	if err != nil {
		return err
	}
	res, err := w.Fetch(ctx, q)
	if err != nil {
		return err
	}
	w.ApplySearch(res)
	return nil
}

// DisplayedTracks треки текущего режима отображения
func (w *Widget) DisplayedTracks() []track.Track {
	if w.mode == view.ModeFavorites {
		return view.FavoriteTracks(w.tracks.ListTracks(), w.favorites.IDs())
	}
	return w.tracks.ListTracks()
}

// Grid полностью перестроенная сетка текущего режима
func (w *Widget) Grid() view.Grid {
	return view.Render(w.DisplayedTracks(), w.playback.PlayingID(), w.favorites)
}

func (w *Widget) lookup(id string) (track.Track, error) {
	for _, t := range w.DisplayedTracks() {
		if t.ID == id {
			return t, nil
		}
	}
	return track.Track{}, fmt.Errorf("%w: %s", ErrUnknownTrack, id)
}

// TogglePlay переключает воспроизведение трека. При Started вызывающий
// запускает движок через StartPlayback.
func (w *Widget) TogglePlay(id string) (playback.Transition, error) {
	t, err := w.lookup(id)
	if err != nil {
		return playback.Unchanged, err
	}

	transition, err := w.playback.Toggle(t)
	if errors.Is(err, playback.ErrPreviewUnavailable) {
		w.status = StatusNoPreview
	}
	return transition, err
}

// PlaybackTicket билет последнего запуска; берется сразу после TogglePlay
func (w *Widget) PlaybackTicket() playback.Ticket {
	return w.playback.Ticket()
}

// StartPlayback запускает движок по билету; состояние виджета не меняется,
// поэтому вызов допустим вне цикла событий. Запуск, устаревший из-за
// паузы или смены трека, ничего не воспроизводит.
func (w *Widget) StartPlayback(ctx context.Context, ticket playback.Ticket) error {
	return w.playback.Start(ctx, ticket)
}

// PlaybackFailed отражает отказ запуска в статусе; id не откатывается
func (w *Widget) PlaybackFailed(err error) {
	if err == nil {
		return
	}
	w.status = StatusBlocked
}

// PlaybackEnded обрабатывает окончание трека
func (w *Widget) PlaybackEnded() {
	w.playback.Ended()
}

// ToggleFavorite добавляет или удаляет трек из избранного.
// При ошибке сохранения избранное остается прежним.
func (w *Widget) ToggleFavorite(id string) error {
	if _, err := w.favorites.Toggle(id); err != nil {
		w.status = StatusStoreFailure + err.Error()
		return err
	}
	return nil
}

// IsFavorite проверяет принадлежность к избранному
func (w *Widget) IsFavorite(id string) bool {
	return w.favorites.Contains(id)
}

// ShowFavorites переключает на избранное
func (w *Widget) ShowFavorites() {
	w.mode = view.ModeFavorites
	w.status = StatusFavorites
}

// ShowAll переключает на весь набор
func (w *Widget) ShowAll() {
	w.mode = view.ModeAll
	w.status = ""
}

// ToggleTheme переключает и сохраняет тему
func (w *Widget) ToggleTheme() (theme.Theme, error) {
	t, err := theme.Toggle(w.kv)
	if err != nil {
		w.status = StatusStoreFailure + err.Error()
		return w.theme, err
	}
	w.theme = t
	return t, nil
}

// OpenExternal открывает страницу трека или поиск по названию и исполнителю
func (w *Widget) OpenExternal(id string) error {
	t, err := w.lookup(id)
	if err != nil {
		return err
	}
	return w.open(t.ExternalLink())
}

// OpenYouTube открывает поиск трека на YouTube
func (w *Widget) OpenYouTube(id string) error {
	t, err := w.lookup(id)
	if err != nil {
		return err
	}
	return w.open(t.YouTubeLink())
}

func (w *Widget) open(url string) error {
	if err := w.opener.Open(url); err != nil {
		w.status = StatusOpenFailure + err.Error()
		return err
	}
	return nil
}
