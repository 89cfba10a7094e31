// Package playback хранит идентификатор играющего трека и управляет
// единственным аудиоэлементом
package playback

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/hazadus/mpreview/internal/track"
)

var (
	// ErrPreviewUnavailable у трека нет фрагмента
	ErrPreviewUnavailable = errors.New("preview unavailable")
	// ErrPlaybackBlocked окружение отказало в запуске воспроизведения
	ErrPlaybackBlocked = errors.New("playback blocked")
)

// Engine аудиоэлемент: один источник, воспроизведение и пауза.
// SetSource и Pause выдают новое поколение источника; Play с устаревшим
// поколением ничего не воспроизводит и возвращает nil.
type Engine interface {
	SetSource(url string) uint64
	Play(ctx context.Context, generation uint64) error
	Pause()
}

// Transition результат переключения
type Transition int

const (
	// Unchanged состояние не изменилось
	Unchanged Transition = iota
	// Started трек стал играющим
	Started
	// Stopped играющий трек остановлен
	Stopped
)

func (t Transition) String() string {
	switch t {
	case Started:
		return "started"
	case Stopped:
		return "stopped"
	default:
		return "unchanged"
	}
}

// Ticket привязывает отложенный запуск к переключению, которое его выдало
type Ticket struct {
	id         string
	generation uint64
}

// ID трек, для которого выдан билет
func (t Ticket) ID() string {
	return t.id
}

// Controller владеет идентификатором играющего трека
type Controller struct {
	engine    Engine
	playingID string
	ticket    Ticket
}

// NewController создает контроллер поверх движка
func NewController(engine Engine) *Controller {
	return &Controller{engine: engine}
}

// PlayingID идентификатор играющего трека, пустая строка если ничего не играет
func (c *Controller) PlayingID() string {
	return c.playingID
}

// IsPlaying сообщает, играет ли трек с данным id
func (c *Controller) IsPlaying(id string) bool {
	return c.playingID != "" && c.playingID == id
}

// Toggle переключает воспроизведение трека. При Started вызывающий
// должен запустить движок через Start.
func (c *Controller) Toggle(t track.Track) (Transition, error) {
	if !t.HasPreview() {
		return Unchanged, ErrPreviewUnavailable
	}

	if c.IsPlaying(t.ID) {
		c.engine.Pause()
		c.playingID = ""
		return Stopped, nil
	}

	generation := c.engine.SetSource(t.PreviewURL)
	// Идентификатор выставляется до запуска и не откатывается при отказе
	c.playingID = t.ID
	c.ticket = Ticket{id: t.ID, generation: generation}
	return Started, nil
}

// Ticket билет последнего Started; берется в том же цикле событий, что и Toggle
func (c *Controller) Ticket() Ticket {
	return c.ticket
}

// Start запускает движок по билету. Если после выдачи билета трек
// поставили на паузу или сменили, движок ничего не воспроизводит.
// Start не читает состояние контроллера и допустим из другой горутины.
func (c *Controller) Start(ctx context.Context, ticket Ticket) error {
	if err := c.engine.Play(ctx, ticket.generation); err != nil {
		log.WithField("component", "playback").Warnf("запуск отклонен: %v", err)
		return fmt.Errorf("%w: %v", ErrPlaybackBlocked, err)
	}
	return nil
}

// Ended обрабатывает естественное окончание трека
func (c *Controller) Ended() {
	c.playingID = ""
}
