// Package tracklist содержит модель списка карточек треков для TUI
package tracklist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/mpreview/internal/utils"
	"github.com/hazadus/mpreview/internal/view"
)

// Styles оформление списка для одной темы
type Styles struct {
	Item     lipgloss.Style
	Selected lipgloss.Style
	Disabled lipgloss.Style
	Notice   lipgloss.Style
}

// LightStyles оформление светлой темы
func LightStyles() Styles {
	return Styles{
		Item:     lipgloss.NewStyle().PaddingLeft(4),
		Selected: lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170")),
		Disabled: lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("#999999")),
		Notice:   lipgloss.NewStyle().Margin(1, 0, 1, 4).Foreground(lipgloss.Color("#666666")),
	}
}

// DarkStyles оформление темной темы
func DarkStyles() Styles {
	return Styles{
		Item:     lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("#dddddd")),
		Selected: lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("#ffb86c")),
		Disabled: lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("#555555")),
		Notice:   lipgloss.NewStyle().Margin(1, 0, 1, 4).Foreground(lipgloss.Color("#aaaaaa")),
	}
}

// cardItem реализует интерфейс list.Item для карточки
type cardItem struct {
	card view.Card
}

func (i cardItem) FilterValue() string {
	return i.card.PlainTitle + " " + i.card.PlainArtists
}

// cardDelegate отображает карточку одной строкой
type cardDelegate struct {
	styles *Styles
}

func (d cardDelegate) Height() int                             { return 1 }
func (d cardDelegate) Spacing() int                            { return 0 }
func (d cardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d cardDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(cardItem)
	if !ok {
		return
	}

	fmt.Fprint(w, d.render(i.card, index == m.Index()))
}

func (d cardDelegate) render(c view.Card, selected bool) string {
	// Play/Pause | Название | Исполнители | Избранное
	label := c.PlayLabel
	if !c.CanPlay {
		label = "—"
	}
	str := fmt.Sprintf("%-6s %-40s %-30s %s",
		label,
		utils.TruncateString(c.PlainTitle, 40),
		utils.TruncateString(c.PlainArtists, 30),
		c.FavGlyph)

	switch {
	case selected:
		return d.styles.Selected.Render("> " + str)
	case !c.CanPlay:
		return d.styles.Disabled.Render(str)
	default:
		return d.styles.Item.Render(str)
	}
}

// Model список карточек текущей сетки
type Model struct {
	list        list.Model
	styles      *Styles
	placeholder string
}

// NewModel создает пустой список
func NewModel() *Model {
	styles := LightStyles()

	l := list.New(nil, cardDelegate{styles: &styles}, 0, 0)
	l.Title = "Треки"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = lipgloss.NewStyle().MarginLeft(2)
	l.Styles.PaginationStyle = list.DefaultStyles().PaginationStyle.PaddingLeft(4)

	return &Model{list: l, styles: &styles}
}

// SetGrid полностью заменяет содержимое списка, сохраняя позицию курсора
func (m *Model) SetGrid(g view.Grid) {
	m.placeholder = g.Placeholder

	items := make([]list.Item, len(g.Cards))
	for i, c := range g.Cards {
		items[i] = cardItem{card: c}
	}

	index := m.list.Index()
	m.list.SetItems(items)
	if index >= len(items) {
		index = len(items) - 1
	}
	if index >= 0 {
		m.list.Select(index)
	}
}

// SetDark переключает оформление; делегат читает стили по указателю
func (m *Model) SetDark(dark bool) {
	if dark {
		*m.styles = DarkStyles()
	} else {
		*m.styles = LightStyles()
	}
}

// Selected выбранная карточка
func (m *Model) Selected() (view.Card, bool) {
	item, ok := m.list.SelectedItem().(cardItem)
	if !ok {
		return view.Card{}, false
	}
	return item.card, true
}

// Len количество карточек
func (m *Model) Len() int {
	return len(m.list.Items())
}

// SetSize задает размеры списка
func (m *Model) SetSize(width, height int) {
	m.list.SetWidth(width)
	m.list.SetHeight(height)
}

// Update передает сообщения навигации списку
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View отображает список или заглушку
func (m *Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.styles.Notice.Render(m.placeholder)
	}
	return strings.TrimRight(m.list.View(), "\n")
}
