// Package data содержит постоянное хранилище ключ-значение виджета
package data

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Ключи хранилища
const (
	FavoritesKey = "mp_favs"
	ThemeKey     = "mp_theme"
)

// Store постоянное хранилище строковых значений по ключу
type Store interface {
	// Get возвращает значение и признак его наличия
	Get(key string) (string, bool, error)
	// Set записывает значение целиком
	Set(key, value string) error
	// Delete удаляет ключ; отсутствующий ключ не считается ошибкой
	Delete(key string) error
	Close() error
}

// AppData содержимое YAML-файла данных
type AppData struct {
	Values map[string]string `yaml:"values"`
}

// NewAppData создает новую структуру AppData
func NewAppData() *AppData {
	return &AppData{
		Values: make(map[string]string),
	}
}

// LoadData загружает данные из файла
func (d *AppData) LoadData(filePath string) error {
	path, err := expandHome(filePath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Если файл не найден, инициализируем пустыми данными
		if os.IsNotExist(err) {
			*d = *NewAppData()
			return nil
		}
		return fmt.Errorf("ошибка чтения файла данных: %w", err)
	}
	if len(data) == 0 {
		*d = *NewAppData()
		return nil
	}
	fresh := NewAppData()
	if err := yaml.Unmarshal(data, fresh); err != nil {
		return fmt.Errorf("ошибка разбора данных: %w", err)
	}
	if fresh.Values == nil {
		fresh.Values = make(map[string]string)
	}
	*d = *fresh
	return nil
}

// SaveData сохраняет данные в файл
func (d *AppData) SaveData(filePath string) error {
	path, err := expandHome(filePath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("ошибка создания директории данных: %w", err)
	}

	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("ошибка сериализации данных: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла данных: %w", err)
	}
	return nil
}

// FileStore хранилище поверх YAML-файла. Каждая запись переписывает файл целиком.
type FileStore struct {
	mu       sync.Mutex
	filePath string
	data     *AppData
}

// OpenFileStore открывает (или создает при первой записи) файл данных
func OpenFileStore(filePath string) (*FileStore, error) {
	d := NewAppData()
	if err := d.LoadData(filePath); err != nil {
		return nil, err
	}
	return &FileStore{filePath: filePath, data: d}, nil
}

// Path возвращает путь к файлу данных
func (s *FileStore) Path() string {
	return s.filePath
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data.Values[key]
	return v, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Values[key] = value
	return s.data.SaveData(s.filePath)
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.Values[key]; !ok {
		return nil
	}
	delete(s.data.Values, key)
	return s.data.SaveData(s.filePath)
}

// Reload перечитывает файл с диска (после восстановления из резервной копии)
func (s *FileStore) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.LoadData(s.filePath)
}

func (s *FileStore) Close() error {
	return nil
}

// MemoryStore хранилище в памяти, без сохранения между запусками
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore создает пустое хранилище в памяти
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Open открывает хранилище выбранного бэкенда
func Open(backend, filePath string) (Store, error) {
	switch backend {
	case "", "yaml":
		store, err := OpenFileStore(filePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "sqlite":
		store, err := OpenSQLiteStore(filePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("неизвестный бэкенд хранилища: %s", backend)
	}
}

func expandHome(filePath string) (string, error) {
	if !strings.HasPrefix(filePath, "~") {
		return filePath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return strings.Replace(filePath, "~", home, 1), nil
}
