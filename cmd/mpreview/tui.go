package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hazadus/mpreview/internal/tui"
	tuiPlayer "github.com/hazadus/mpreview/internal/tui/player"
)

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch the interactive terminal widget: search, previews, favorites and theme.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			var source tuiPlayer.Source
			if app.Player != nil {
				source = app.Player
			}
			return tui.NewApp(app.Widget, source).Run(ctx)
		},
	}
}
