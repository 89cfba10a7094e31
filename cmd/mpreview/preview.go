package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/mpreview/internal/playback"
	"github.com/hazadus/mpreview/internal/player"
	"github.com/hazadus/mpreview/internal/streaming"
	"github.com/hazadus/mpreview/internal/utils"
	"github.com/hazadus/mpreview/internal/view"
)

// ErrNothingToPlay среди результатов нет трека с фрагментом
var ErrNothingToPlay = errors.New("нет треков с доступным фрагментом")

// createPreviewCommand создает команду preview с привязкой к экземпляру приложения
func (app *Application) createPreviewCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "preview [query...]",
		Short: "Search and play the first available preview",
		Long:  `Search tracks and stream the preview of the first result that has one.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.preview(ctx, cmd.OutOrStdout(), strings.Join(args, " "))
		},
	}
}

// firstPlayable первая карточка с доступным фрагментом
func firstPlayable(g view.Grid) (view.Card, error) {
	for _, c := range g.Cards {
		if c.CanPlay {
			return c, nil
		}
	}
	return view.Card{}, ErrNothingToPlay
}

// enableRawMode включает режим raw для терминала (без буферизации и echo)
func enableRawMode() {
	cmd := exec.Command("stty", "-echo", "-icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run() // Игнорируем ошибку, так как это не критично для работы плеера
}

// disableRawMode восстанавливает нормальный режим терминала
func disableRawMode() {
	cmd := exec.Command("stty", "echo", "icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run() // Игнорируем ошибку, так как это не критично для работы плеера
}

// readKeys читает одиночные символы без ожидания Enter
func readKeys(keys chan<- byte) {
	buffer := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buffer); err != nil {
			close(keys)
			return
		}
		keys <- buffer[0]
	}
}

func (app *Application) preview(ctx context.Context, out io.Writer, query string) error {
	if err := app.Widget.Search(ctx, query); err != nil {
		return err
	}
	if status := app.Widget.Status(); status != "" {
		fmt.Fprintf(out, "ℹ️  %s\n", status)
	}

	card, err := firstPlayable(app.Widget.Grid())
	if err != nil {
		return err
	}
	if app.Player == nil {
		return errors.New("аудиоэлемент недоступен")
	}

	fmt.Fprintf(out, "🎵 Сейчас играет:\n")
	fmt.Fprintf(out, "   ID: %s\n", card.ID)
	fmt.Fprintf(out, "   Название: %s\n", card.PlainTitle)
	fmt.Fprintf(out, "   Исполнители: %s\n", card.PlainArtists)
	fmt.Fprintln(out)

	if err := app.togglePreview(ctx, out, card.ID); err != nil {
		return err
	}

	fmt.Fprintf(out, "🎮 Управление:\n")
	fmt.Fprintf(out, "   [Пробел] - пауза/воспроизведение\n")
	fmt.Fprintf(out, "   [Ctrl+C] - остановить и выйти\n")
	fmt.Fprintln(out)

	// Включаем raw режим для чтения одиночных клавиш
	enableRawMode()
	defer disableRawMode()

	keys := make(chan byte)
	go readKeys(keys)

	// Главный цикл обработки событий
	for {
		select {
		case status := <-app.Player.Progress():
			displayProgress(out, status)

		case <-app.Player.Ended():
			app.Widget.PlaybackEnded()
			fmt.Fprintln(out, "\n✅ Фрагмент проигран до конца")
			return nil

		case key, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			// Пробел или Enter
			if key == ' ' || key == '\n' || key == '\r' {
				if err := app.togglePreview(ctx, out, card.ID); err != nil {
					return err
				}
			}

		case <-ctx.Done():
			fmt.Fprintln(out, "\n⏹️  Воспроизведение остановлено")
			app.Player.Stop()
			return nil
		}
	}
}

// togglePreview переключает фрагмент. Повторный запуск начинает его с начала.
func (app *Application) togglePreview(ctx context.Context, out io.Writer, id string) error {
	transition, err := app.Widget.TogglePlay(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\r\033[K") // Очищаем текущую строку
	if transition == playback.Stopped {
		fmt.Fprintf(out, "⏸️  Пауза\n")
		return nil
	}

	if err := app.Widget.StartPlayback(ctx, app.Widget.PlaybackTicket()); err != nil {
		app.Widget.PlaybackFailed(err)
		return fmt.Errorf("%s: %w", app.Widget.Status(), err)
	}
	fmt.Fprintf(out, "▶️  Воспроизведение\n")
	return nil
}

// displayProgress отображает прогресс воспроизведения
func displayProgress(out io.Writer, status player.Status) {
	var progress string
	if status.Total > 0 {
		percent := float64(status.Current) / float64(status.Total) * 100
		progress = fmt.Sprintf("%.1f%%", percent)
	} else {
		progress = "??%"
	}

	statusIcon := "⏱️"
	statusText := streaming.StatusText(status.StuckCount)
	if !status.IsPlaying {
		statusIcon = "⏸️"
		statusText = "На паузе"
	} else if status.StuckCount > 3 {
		statusIcon = "⚠️"
	}

	fmt.Fprintf(out, "\r%s  %s | %s / %s | Статус: %s",
		statusIcon,
		progress,
		utils.FormatDuration(status.Current),
		utils.FormatDuration(status.Total),
		statusText)
}
