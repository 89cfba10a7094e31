package main

import (
	"context"

	"github.com/spf13/cobra"
)

// createRootCommand создает корневую команду с настроенными подкомандами
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "mpreview",
		Short:        "Search tracks and listen to short previews",
		Long:         `Search for music, play short previews, keep favorites and open tracks on streaming services.`,
		SilenceUsage: true,
	}

	// Добавляем команды, передавая в них экземпляр приложения и контекст
	rootCmd.AddCommand(app.createSearchCommand(ctx))
	rootCmd.AddCommand(app.createPreviewCommand(ctx))
	rootCmd.AddCommand(app.createFavCommand())
	rootCmd.AddCommand(app.createFavsCommand())
	rootCmd.AddCommand(app.createThemeCommand())
	rootCmd.AddCommand(app.createExportCommand(ctx))
	rootCmd.AddCommand(app.createBackupCommand(ctx))
	rootCmd.AddCommand(app.createTUICommand(ctx))

	return rootCmd
}
