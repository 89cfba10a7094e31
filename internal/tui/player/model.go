// Package player содержит строку "сейчас играет" с прогрессом воспроизведения
package player

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/mpreview/internal/player"
	"github.com/hazadus/mpreview/internal/streaming"
	"github.com/hazadus/mpreview/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// Source источник событий аудиоэлемента
type Source interface {
	Progress() <-chan player.Status
	Ended() <-chan struct{}
}

// ProgressMsg содержит обновления прогресса воспроизведения
type ProgressMsg struct {
	Status player.Status
}

// EndedMsg отправляется при естественном окончании трека
type EndedMsg struct{}

// Model строка текущего воспроизведения
type Model struct {
	title       string
	progressBar progress.Model
	status      player.Status
	active      bool
	paused      bool
}

// NewModel создает пустую строку воспроизведения
func NewModel() *Model {
	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40

	return &Model{progressBar: prog}
}

// Listen ждет следующее событие аудиоэлемента
func Listen(src Source) tea.Cmd {
	return func() tea.Msg {
		select {
		case status := <-src.Progress():
			return ProgressMsg{Status: status}
		case <-src.Ended():
			return EndedMsg{}
		}
	}
}

// Start показывает новый трек
func (m *Model) Start(title string) {
	m.title = title
	m.status = player.Status{}
	m.active = true
	m.paused = false
}

// Pause отмечает паузу
func (m *Model) Pause() {
	m.paused = true
}

// Clear скрывает строку
func (m *Model) Clear() {
	m.title = ""
	m.status = player.Status{}
	m.active = false
	m.paused = false
}

// Active сообщает, показывается ли трек
func (m *Model) Active() bool {
	return m.active
}

// SetWidth обновляет ширину прогресс-бара
func (m *Model) SetWidth(width int) {
	m.progressBar.Width = min(60, width-30)
	if m.progressBar.Width < 10 {
		m.progressBar.Width = 10
	}
}

// Update обрабатывает прогресс и кадры анимации
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressMsg:
		m.status = msg.Status

		// Вычисляем прогресс в процентах
		var percent float64
		if msg.Status.Total > 0 {
			percent = float64(msg.Status.Current) / float64(msg.Status.Total)
		}
		return m, m.progressBar.SetPercent(percent)

	case progress.FrameMsg:
		progressModel, cmd := m.progressBar.Update(msg)
		m.progressBar = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

// View отображает строку
func (m *Model) View() string {
	if !m.active {
		return ""
	}

	icon := "▶"
	state := streaming.StatusText(m.status.StuckCount)
	if m.paused {
		icon = "⏸"
		state = "Пауза"
	}

	return fmt.Sprintf("%s %s  %s  %s / %s  %s",
		icon,
		titleStyle.Render(utils.TruncateString(m.title, 40)),
		m.progressBar.View(),
		utils.FormatDuration(m.status.Current),
		utils.FormatDuration(m.status.Total),
		infoStyle.Render(state),
	)
}
