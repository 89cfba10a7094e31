// Package player содержит единственный аудиоэлемент виджета: один источник,
// воспроизведение/пауза и сигнал окончания трека
package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	log "github.com/sirupsen/logrus"

	"github.com/hazadus/mpreview/internal/streaming"
)

// ErrNoSource источник не задан
var ErrNoSource = errors.New("источник воспроизведения не задан")

// Status представляет текущий статус плеера
type Status struct {
	Current    time.Duration // Текущая позиция
	Total      time.Duration // Общая продолжительность
	IsPlaying  bool
	StuckCount int // Счетчик тиков без движения позиции
}

// Player управляет воспроизведением фрагментов. Новый источник
// всегда заменяет предыдущий, поэтому одновременно звучит не больше одного.
type Player struct {
	progressChan chan Status
	endedChan    chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	mutex  sync.RWMutex
	opener *streaming.Opener

	isInitialized bool
	sampleRate    beep.SampleRate
	source        string
	generation    uint64 // Растет при каждой смене источника, паузе и остановке

	streamer     beep.StreamSeekCloser
	ctrl         *beep.Ctrl
	streamReader *streaming.Reader
}

// NewPlayer создает новый экземпляр плеера
func NewPlayer() *Player {
	return NewPlayerWithOpener(streaming.NewOpener())
}

// NewPlayerWithOpener создает плеер с заданным источником потоков
func NewPlayerWithOpener(opener *streaming.Opener) *Player {
	ctx, cancel := context.WithCancel(context.Background())
	return &Player{
		progressChan: make(chan Status, 1),
		endedChan:    make(chan struct{}, 1),
		ctx:          ctx,
		cancel:       cancel,
		opener:       opener,
	}
}

// Progress возвращает канал обновлений прогресса
func (p *Player) Progress() <-chan Status {
	return p.progressChan
}

// Ended возвращает канал сигналов естественного окончания трека
func (p *Player) Ended() <-chan struct{} {
	return p.endedChan
}

// SetSource останавливает текущее воспроизведение, задает новый источник
// и возвращает его поколение для Play
func (p *Player) SetSource(url string) uint64 {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.stopInternal()
	p.source = url
	return p.generation
}

// Play запускает источник заданного поколения с начала. Если источник
// успели сменить, поставить на паузу или остановить, Play ничего не
// воспроизводит и возвращает nil. Сеть и декодер работают без блокировки,
// поэтому SetSource и Pause не ждут загрузки.
func (p *Player) Play(ctx context.Context, generation uint64) error {
	p.mutex.Lock()
	if generation != p.generation {
		p.mutex.Unlock()
		return nil
	}
	source := p.source
	p.mutex.Unlock()

	if source == "" {
		return ErrNoSource
	}

	streamReader, err := p.opener.Open(ctx, source)
	if err != nil {
		return fmt.Errorf("ошибка создания потокового ридера: %w", err)
	}

	if p.stale(generation) {
		streamReader.Close()
		return nil
	}

	streamer, format, err := mp3.Decode(streamReader)
	if err != nil {
		streamReader.Close()
		return fmt.Errorf("ошибка декодирования MP3: %w", err)
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if generation != p.generation {
		streamer.Close()
		streamReader.Close()
		log.WithField("component", "player").Debugf("запуск устарел: %s", source)
		return nil
	}

	// Повторный запуск того же поколения заменяет текущий поток
	p.releaseStream()

	// speaker инициализируется один раз, остальные частоты пересэмплируются
	if !p.isInitialized {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/5)); err != nil {
			streamer.Close()
			streamReader.Close()
			return fmt.Errorf("ошибка инициализации динамиков: %w", err)
		}
		p.isInitialized = true
		p.sampleRate = format.SampleRate
	}

	p.streamReader = streamReader
	p.streamer = streamer

	var output beep.Streamer = streamer
	if format.SampleRate != p.sampleRate {
		output = beep.Resample(4, format.SampleRate, p.sampleRate, streamer)
	}

	p.ctrl = &beep.Ctrl{Streamer: output, Paused: false}

	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		// Вызывается из горутины speaker: только неблокирующий сигнал
		select {
		case p.endedChan <- struct{}{}:
		default:
		}
	})))

	log.WithField("component", "player").Debugf("воспроизведение: %s", source)
	go p.monitorProgress(p.ctrl, streamer, format)

	return nil
}

// stale сообщает, что поколение сменилось
func (p *Player) stale(generation uint64) bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return generation != p.generation
}

// Pause приостанавливает воспроизведение и отменяет ожидающий запуск;
// источник сохраняется
func (p *Player) Pause() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.generation++
	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = true
		speaker.Unlock()
	}
}

// Stop останавливает воспроизведение и освобождает поток
func (p *Player) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.stopInternal()
}

// stopInternal внутренний метод остановки (должен вызываться под мьютексом)
func (p *Player) stopInternal() {
	p.generation++
	p.releaseStream()
}

// releaseStream закрывает текущий поток (должен вызываться под мьютексом)
func (p *Player) releaseStream() {
	if p.ctrl != nil {
		speaker.Clear()
		p.ctrl = nil
	}

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}

	if p.streamReader != nil {
		p.streamReader.Close()
		p.streamReader = nil
	}
}

// Close закрывает плеер и освобождает ресурсы
func (p *Player) Close() error {
	p.cancel()
	p.Stop()
	return nil
}

// monitorProgress раз в секунду отправляет статус, пока ctrl активен
func (p *Player) monitorProgress(ctrl *beep.Ctrl, streamer beep.StreamSeekCloser, format beep.Format) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	lastPosition := time.Duration(-1)
	stuckCount := 0

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.mutex.RLock()
			if p.ctrl != ctrl {
				p.mutex.RUnlock()
				return
			}

			speaker.Lock()
			current := format.SampleRate.D(streamer.Position())
			total := format.SampleRate.D(streamer.Len())
			paused := ctrl.Paused
			speaker.Unlock()
			p.mutex.RUnlock()

			if !paused && current == lastPosition {
				stuckCount++
			} else {
				stuckCount = 0
			}
			lastPosition = current

			select {
			case p.progressChan <- Status{
				Current:    current,
				Total:      total,
				IsPlaying:  !paused,
				StuckCount: stuckCount,
			}:
			default:
				// Если канал заблокирован, пропускаем обновление
			}
		}
	}
}
