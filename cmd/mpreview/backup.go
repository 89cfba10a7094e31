package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hazadus/mpreview/internal/backup"
	"github.com/hazadus/mpreview/internal/data"
)

// ErrBackupDisabled бакет не задан в конфигурации
var ErrBackupDisabled = errors.New("резервное копирование не настроено: укажите aws_bucket_name")

// createBackupCommand создает команду backup с подкомандами push, pull и remove
func (app *Application) createBackupCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up favorites and settings to S3",
		Long:  `Copy the data file with favorites and theme to S3-compatible storage and back.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "push",
		Short: "Upload the data file to S3",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.backupPush(ctx, cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "pull",
		Short: "Replace the data file with the copy from S3",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.backupPull(ctx, cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove",
		Short: "Delete the copy from S3",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.backupRemove(ctx, cmd.OutOrStdout())
		},
	})

	return cmd
}

func (app *Application) backupService() (*backup.Service, error) {
	if !app.Config.BackupEnabled() {
		return nil, ErrBackupDisabled
	}

	storage, err := app.newBackupStorage()
	if err != nil {
		return nil, err
	}

	service := backup.NewService(storage, app.Config.DataPath)
	if fileStore, ok := app.Store.(*data.FileStore); ok {
		service.WithReloader(fileStore)
	}
	return service, nil
}

func (app *Application) backupPush(ctx context.Context, out io.Writer) error {
	service, err := app.backupService()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "📤 Загружаем %s в S3 (бакет %s)\n", app.Config.DataPath, app.Config.AwsBucketName)
	result, err := service.Push(ctx, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✅ Копия сохранена: %s (%s)\n", result.URL, backup.FormatFileSize(result.Size))
	return nil
}

func (app *Application) backupPull(ctx context.Context, out io.Writer) error {
	service, err := app.backupService()
	if err != nil {
		return err
	}

	result, err := service.Pull(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "📥 Восстановлено из %s: %s\n", result.Key, backup.FormatFileSize(result.Size))
	return nil
}

func (app *Application) backupRemove(ctx context.Context, out io.Writer) error {
	service, err := app.backupService()
	if err != nil {
		return err
	}

	if err := service.Remove(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "🗑️  Копия %s удалена\n", service.Key())
	return nil
}
