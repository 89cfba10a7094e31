package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/mpreview/internal/theme"
)

// createThemeCommand создает команду theme с привязкой к экземпляру приложения
func (app *Application) createThemeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "theme",
		Short: "Toggle dark/light theme",
		Long:  `Toggle between the dark and light theme. The choice is kept between sessions.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := app.Widget.ToggleTheme()
			if err != nil {
				return fmt.Errorf("ошибка сохранения темы: %w", err)
			}
			name := "светлая"
			if t == theme.Dark {
				name = "темная"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🎨 Тема: %s\n", name)
			return nil
		},
	}
}
