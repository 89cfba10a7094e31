package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/mpreview/internal/utils"
	"github.com/hazadus/mpreview/internal/view"
)

// createSearchCommand создает команду search с привязкой к экземпляру приложения
func (app *Application) createSearchCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query...]",
		Short: "Search tracks and print result cards",
		Long:  `Search tracks through the configured backend (or the built-in set) and print the result cards.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.search(ctx, cmd.OutOrStdout(), strings.Join(args, " "))
		},
	}
}

func (app *Application) search(ctx context.Context, out io.Writer, query string) error {
	err := app.Widget.Search(ctx, query)
	if status := app.Widget.Status(); status != "" {
		fmt.Fprintf(out, "ℹ️  %s\n\n", status)
	}
	if err != nil {
		return err
	}

	printGrid(out, app.Widget.Grid())
	return nil
}

// printGrid выводит карточки таблицей
func printGrid(out io.Writer, g view.Grid) {
	if g.Empty() {
		fmt.Fprintln(out, g.Placeholder)
		return
	}

	// Выводим заголовок таблицы
	fmt.Fprintf(out, "%-24s %-6s %-40s %-30s %s\n", "ID", "", "Название", "Исполнители", "")
	fmt.Fprintln(out, strings.Repeat("-", 110))

	for _, c := range g.Cards {
		label := c.PlayLabel
		if !c.CanPlay {
			label = "—"
		}
		fmt.Fprintf(out, "%-24s %-6s %-40s %-30s %s\n",
			utils.TruncateString(c.ID, 24),
			label,
			utils.TruncateString(c.PlainTitle, 40),
			utils.TruncateString(c.PlainArtists, 30),
			c.FavGlyph)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "💡 Используйте 'mpreview preview [запрос]' для прослушивания и 'mpreview fav [ID]' для избранного")
}
