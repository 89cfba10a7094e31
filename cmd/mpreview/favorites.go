package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// createFavCommand создает команду fav с привязкой к экземпляру приложения
func (app *Application) createFavCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fav [id]",
		Short: "Toggle a track id in favorites",
		Long:  `Add a track id to favorites, or remove it if it is already there.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.toggleFavorite(cmd.OutOrStdout(), args[0])
		},
	}
}

// createFavsCommand создает команду favs с привязкой к экземпляру приложения
func (app *Application) createFavsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "favs",
		Short: "List favorite track ids",
		Long:  `Display favorite track ids in the order they were added.`,
		Run: func(cmd *cobra.Command, _ []string) {
			app.listFavorites(cmd.OutOrStdout())
		},
	}
}

func (app *Application) toggleFavorite(out io.Writer, id string) error {
	if err := app.Widget.ToggleFavorite(id); err != nil {
		return fmt.Errorf("ошибка сохранения избранного: %w", err)
	}

	if app.Widget.IsFavorite(id) {
		fmt.Fprintf(out, "★ %s добавлен в избранное\n", id)
	} else {
		fmt.Fprintf(out, "☆ %s удален из избранного\n", id)
	}
	return nil
}

func (app *Application) listFavorites(out io.Writer) {
	ids := app.Widget.FavoriteIDs()
	if len(ids) == 0 {
		fmt.Fprintln(out, "⭐ Избранное пусто. Добавьте трек командой 'fav'.")
		return
	}

	fmt.Fprintf(out, "⭐ Избранных треков: %d\n\n", len(ids))
	for i, id := range ids {
		fmt.Fprintf(out, "%3d. %s\n", i+1, id)
	}
}
