// Package backup копирует файл данных виджета в S3 и обратно
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// KeyPrefix префикс ключей резервных копий в бакете
const KeyPrefix = "mpreview/"

// ErrNoDataFile локальный файл данных еще не создан
var ErrNoDataFile = errors.New("файл данных не найден")

// Storage удаленное хранилище резервных копий
type Storage interface {
	UploadFile(ctx context.Context, reader io.Reader, key string) (string, error)
	DownloadFile(ctx context.Context, w io.WriterAt, key string) (int64, error)
	DeleteFile(ctx context.Context, key string) error
}

// Reloader хранилище, которое перечитывает файл после восстановления
type Reloader interface {
	Reload() error
}

// Service управляет резервными копиями одного файла данных
type Service struct {
	storage  Storage
	path     string
	key      string
	reloader Reloader
}

// NewService создает сервис для файла данных по пути path
func NewService(storage Storage, path string) *Service {
	return &Service{
		storage: storage,
		path:    path,
		key:     KeyPrefix + filepath.Base(path),
	}
}

// WithReloader задает хранилище, перечитываемое после Pull
func (s *Service) WithReloader(r Reloader) *Service {
	s.reloader = r
	return s
}

// Key ключ резервной копии в бакете
func (s *Service) Key() string {
	return s.key
}

// Result результат операции
type Result struct {
	URL  string
	Key  string
	Size int64
}

// Push загружает файл данных в хранилище
func (s *Service) Push(ctx context.Context, progressCallback func(int64)) (*Result, error) {
	info, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNoDataFile, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения информации о файле: %w", err)
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	// Создаем reader с отслеживанием прогресса
	var reader io.Reader = file
	if progressCallback != nil {
		reader = &ProgressReader{
			Reader:     file,
			Size:       info.Size(),
			OnProgress: progressCallback,
		}
	}

	url, err := s.storage.UploadFile(ctx, reader, s.key)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки в S3: %w", err)
	}

	return &Result{URL: url, Key: s.key, Size: info.Size()}, nil
}

// Pull заменяет локальный файл данных резервной копией.
// Файл пишется во временный и переименовывается только после успешного скачивания.
func (s *Service) Pull(ctx context.Context) (*Result, error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории данных: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".pull-*")
	if err != nil {
		return nil, fmt.Errorf("ошибка создания временного файла: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	n, err := s.storage.DownloadFile(ctx, tmp, s.key)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка скачивания из S3: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return nil, fmt.Errorf("ошибка замены файла данных: %w", err)
	}

	if s.reloader != nil {
		if err := s.reloader.Reload(); err != nil {
			return nil, fmt.Errorf("ошибка перечитывания данных: %w", err)
		}
	}

	return &Result{Key: s.key, Size: n}, nil
}

// Remove удаляет резервную копию из хранилища
func (s *Service) Remove(ctx context.Context) error {
	if err := s.storage.DeleteFile(ctx, s.key); err != nil {
		return fmt.Errorf("ошибка удаления резервной копии: %w", err)
	}
	return nil
}

// ProgressReader структура для отслеживания прогресса чтения
type ProgressReader struct {
	io.Reader
	Size       int64
	OnProgress func(int64)
	bytesRead  int64
}

func (pr *ProgressReader) Read(p []byte) (n int, err error) {
	n, err = pr.Reader.Read(p)
	pr.bytesRead += int64(n)
	if pr.OnProgress != nil {
		pr.OnProgress(pr.bytesRead)
	}
	return n, err
}

// FormatFileSize форматирует размер файла в читаемом виде
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
