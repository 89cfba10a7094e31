// Package app содержит основную логику TUI приложения
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/hazadus/mpreview/internal/playback"
	"github.com/hazadus/mpreview/internal/search"
	"github.com/hazadus/mpreview/internal/theme"
	tuiPlayer "github.com/hazadus/mpreview/internal/tui/player"
	"github.com/hazadus/mpreview/internal/tui/tracklist"
	"github.com/hazadus/mpreview/internal/view"
	"github.com/hazadus/mpreview/internal/widget"
)

const helpText = "/: поиск • enter/пробел: play/pause • o: открыть • y: YouTube • f: избранное • F: избранные • a: все • t: тема • q: выход"

// SearchResultMsg результат поиска, выполненного вне цикла событий
type SearchResultMsg struct {
	Result search.Result
	Err    error
}

// PlaybackStartedMsg результат запуска воспроизведения
type PlaybackStartedMsg struct {
	Err error
}

// MainModel представляет главную модель TUI
type MainModel struct {
	ctx       context.Context
	widget    *widget.Widget
	source    tuiPlayer.Source
	input     textinput.Model
	searching bool
	cards     *tracklist.Model
	footer    *tuiPlayer.Model
	styles    styles
	width     int
	height    int
}

// NewMainModel создает новую главную модель. source может быть nil,
// тогда события аудиоэлемента не отслеживаются.
func NewMainModel(ctx context.Context, w *widget.Widget, source tuiPlayer.Source) *MainModel {
	input := textinput.New()
	input.Placeholder = "Название трека или исполнитель"
	input.CharLimit = 200
	input.Width = 50
	input.Prompt = "🔎 "

	m := &MainModel{
		ctx:    ctx,
		widget: w,
		source: source,
		input:  input,
		cards:  tracklist.NewModel(),
		footer: tuiPlayer.NewModel(),
	}
	m.refresh()
	return m
}

// Init инициализирует модель
func (m *MainModel) Init() tea.Cmd {
	return m.listen()
}

func (m *MainModel) listen() tea.Cmd {
	if m.source == nil {
		return nil
	}
	return tuiPlayer.Listen(m.source)
}

// refresh полностью перестраивает сетку из состояния виджета
func (m *MainModel) refresh() {
	dark := m.widget.Theme() == theme.Dark
	m.styles = newStyles(dark)
	m.cards.SetDark(dark)
	m.cards.SetGrid(m.widget.Grid())
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Оставляем место для заголовка, поиска, статуса, плеера и справки
		m.cards.SetSize(msg.Width, max(3, msg.Height-9))
		m.footer.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)

	case SearchResultMsg:
		if msg.Err != nil {
			log.WithField("component", "tui").Debugf("поиск не выполнен: %v", msg.Err)
			return m, nil
		}
		m.widget.ApplySearch(msg.Result)
		m.refresh()
		return m, nil

	case PlaybackStartedMsg:
		if msg.Err != nil {
			m.widget.PlaybackFailed(msg.Err)
			m.refresh()
		}
		return m, nil

	case tuiPlayer.EndedMsg:
		m.widget.PlaybackEnded()
		m.footer.Clear()
		m.refresh()
		return m, m.listen()

	case tuiPlayer.ProgressMsg:
		var cmd tea.Cmd
		m.footer, cmd = m.footer.Update(msg)
		return m, tea.Batch(cmd, m.listen())
	}

	// Кадры анимации прогресс-бара
	var cmd tea.Cmd
	m.footer, cmd = m.footer.Update(msg)
	return m, cmd
}

func (m *MainModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.input.Blur()
		return m, nil

	case "enter":
		q, err := m.widget.BeginSearch(m.input.Value())
		if err != nil {
			return m, nil
		}
		m.searching = false
		m.input.Blur()
		return m, m.fetch(q)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// fetch выполняет поиск вне цикла событий; поиски не отменяются
// и применяются в порядке поступления
func (m *MainModel) fetch(q string) tea.Cmd {
	w := m.widget
	ctx := m.ctx
	return func() tea.Msg {
		res, err := w.Fetch(ctx, q)
		return SearchResultMsg{Result: res, Err: err}
	}
}

func (m *MainModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.searching = true
		return m, m.input.Focus()

	case "enter", " ":
		return m, m.togglePlay()

	case "o", "y":
		if card, ok := m.cards.Selected(); ok {
			if msg.String() == "o" {
				_ = m.widget.OpenExternal(card.ID)
			} else {
				_ = m.widget.OpenYouTube(card.ID)
			}
		}
		return m, nil

	case "f":
		// Клавиша избранного не передается списку
		if card, ok := m.cards.Selected(); ok {
			_ = m.widget.ToggleFavorite(card.ID)
			m.refresh()
		}
		return m, nil

	case "F":
		m.widget.ShowFavorites()
		m.refresh()
		return m, nil

	case "a":
		m.widget.ShowAll()
		m.refresh()
		return m, nil

	case "t":
		_, _ = m.widget.ToggleTheme()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.cards, cmd = m.cards.Update(msg)
	return m, cmd
}

func (m *MainModel) togglePlay() tea.Cmd {
	card, ok := m.cards.Selected()
	if !ok {
		return nil
	}

	transition, err := m.widget.TogglePlay(card.ID)
	m.refresh()
	if err != nil {
		if !errors.Is(err, playback.ErrPreviewUnavailable) {
			log.WithField("component", "tui").Warnf("переключение воспроизведения: %v", err)
		}
		return nil
	}

	switch transition {
	case playback.Started:
		m.footer.Start(card.PlainTitle)
		w := m.widget
		ctx := m.ctx
		// Билет берется здесь: пауза до выполнения команды отменит запуск
		ticket := w.PlaybackTicket()
		return func() tea.Msg {
			return PlaybackStartedMsg{Err: w.StartPlayback(ctx, ticket)}
		}
	case playback.Stopped:
		m.footer.Pause()
	}
	return nil
}

// View отображает интерфейс
func (m *MainModel) View() string {
	var b strings.Builder

	mode := "Все треки"
	if m.widget.Mode() == view.ModeFavorites {
		mode = "Избранное"
	}
	header := fmt.Sprintf("mpreview • %s • тема: %s (t)", mode, m.widget.Theme().ToggleLabel())
	b.WriteString(m.styles.header.Render(header))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.cards.View())
	b.WriteString("\n")

	if footer := m.footer.View(); footer != "" {
		b.WriteString("\n")
		b.WriteString(footer)
		b.WriteString("\n")
	}

	if status := m.widget.Status(); status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.status.Render(status))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render(helpText))

	return m.styles.frame.Render(b.String())
}

type styles struct {
	frame  lipgloss.Style
	header lipgloss.Style
	status lipgloss.Style
	help   lipgloss.Style
}

func newStyles(dark bool) styles {
	if dark {
		return styles{
			frame:  lipgloss.NewStyle().Foreground(lipgloss.Color("#eeeeee")),
			header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffb86c")),
			status: lipgloss.NewStyle().Foreground(lipgloss.Color("#8be9fd")),
			help:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4")),
		}
	}
	return styles{
		frame:  lipgloss.NewStyle(),
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0000ff")),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")),
		help:   lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}
