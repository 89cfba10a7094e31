package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/mpreview/internal/theme"
)

// createExportCommand создает команду export с привязкой к экземпляру приложения
func (app *Application) createExportCommand(ctx context.Context) *cobra.Command {
	var outputPath string
	var favoritesOnly bool

	cmd := &cobra.Command{
		Use:   "export [query...]",
		Short: "Render the result grid as HTML",
		Long:  `Search (when a query is given) and render the result grid as HTML markup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				if err := app.Widget.Search(ctx, strings.Join(args, " ")); err != nil {
					return err
				}
			}
			if favoritesOnly {
				app.Widget.ShowFavorites()
			}

			if outputPath == "" {
				return app.exportHTML(cmd.OutOrStdout())
			}

			file, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("ошибка создания файла: %w", err)
			}
			defer file.Close()

			if err := app.exportHTML(file); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Сетка сохранена: %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (stdout by default)")
	cmd.Flags().BoolVar(&favoritesOnly, "favorites", false, "export only favorites")

	return cmd
}

func (app *Application) exportHTML(w io.Writer) error {
	return app.Widget.Grid().WriteHTML(w, app.Widget.Theme() == theme.Dark)
}
