// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Поставщики поиска
const (
	ProviderEndpoint = "endpoint"
	ProviderSpotify  = "spotify"
)

// Бэкенды хранилища ключ-значение
const (
	StoreYAML   = "yaml"
	StoreSQLite = "sqlite"
)

const defaultSearchTimeout = 15

// Config структура для хранения конфигурации приложения
type Config struct {
	BaseURL              string `yaml:"base_url"`
	SearchProvider       string `yaml:"search_provider"`
	SpotifyClientID      string `yaml:"spotify_client_id"`
	SpotifyClientSecret  string `yaml:"spotify_client_secret"`
	SearchTimeoutSeconds int    `yaml:"search_timeout_seconds"`
	StoreBackend         string `yaml:"store_backend"`
	DataPath             string `yaml:"data_path"`
	LogFile              string `yaml:"log_file"`
	LogLevel             string `yaml:"log_level"`
	AwsBucketName        string `yaml:"aws_bucket_name"`
	AwsAccessKey         string `yaml:"aws_access_key"`
	AwsSecretKey         string `yaml:"aws_secret_key"`
	AwsRegion            string `yaml:"aws_region"`
	AwsEndpoint          string `yaml:"aws_endpoint"`
}

// LoadConfig загружает конфигурацию приложения из указанного файла.
// Отсутствующий файл не считается ошибкой: виджет работает на значениях по умолчанию.
func LoadConfig(filePath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := strings.Replace(filePath, "~", home, 1)

	config := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	}

	// .env рядом с бинарником необязателен
	_ = godotenv.Load()
	config.applyEnv()

	// Устанавливаем значения по умолчанию, если они не заданы
	config.applyDefaults(filepath.Dir(path))

	// Раскрываем тильду в путях
	config.DataPath = strings.Replace(config.DataPath, "~", home, 1)
	config.LogFile = strings.Replace(config.LogFile, "~", home, 1)

	return config, nil
}

// applyEnv переопределяет значения из файла переменными окружения
func (c *Config) applyEnv() {
	if v := os.Getenv("MPREVIEW_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("MPREVIEW_SEARCH_PROVIDER"); v != "" {
		c.SearchProvider = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_ID"); v != "" {
		c.SpotifyClientID = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_SECRET"); v != "" {
		c.SpotifyClientSecret = v
	}
	if v := os.Getenv("MPREVIEW_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("MPREVIEW_SEARCH_TIMEOUT"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			c.SearchTimeoutSeconds = seconds
		}
	}
}

func (c *Config) applyDefaults(dir string) {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.SearchProvider == "" {
		c.SearchProvider = ProviderEndpoint
	}
	if c.SearchTimeoutSeconds <= 0 {
		c.SearchTimeoutSeconds = defaultSearchTimeout
	}
	if c.StoreBackend == "" {
		c.StoreBackend = StoreYAML
	}
	if c.DataPath == "" {
		name := "data.yaml"
		if c.StoreBackend == StoreSQLite {
			name = "data.db"
		}
		c.DataPath = filepath.Join(dir, name)
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(dir, "mpreview.log")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// SpotifyEnabled сообщает, выбран ли Spotify и заданы ли ключи клиента
func (c *Config) SpotifyEnabled() bool {
	return c.SearchProvider == ProviderSpotify && c.SpotifyClientID != "" && c.SpotifyClientSecret != ""
}

// BackupEnabled сообщает, настроен ли бакет для резервных копий
func (c *Config) BackupEnabled() bool {
	return c.AwsBucketName != ""
}
