// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/mpreview/internal/tui/app"
	tuiPlayer "github.com/hazadus/mpreview/internal/tui/player"
	"github.com/hazadus/mpreview/internal/widget"
)

// App представляет основное TUI приложение
type App struct {
	widget *widget.Widget
	source tuiPlayer.Source
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(w *widget.Widget, source tuiPlayer.Source) *App {
	return &App{
		widget: w,
		source: source,
	}
}

// Model возвращает главную модель для запуска в программе Bubble Tea
func (tuiApp *App) Model(ctx context.Context) *app.MainModel {
	return app.NewMainModel(ctx, tuiApp.widget, tuiApp.source)
}

// Run запускает TUI приложение
func (tuiApp *App) Run(ctx context.Context) error {
	p := tea.NewProgram(tuiApp.Model(ctx), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
