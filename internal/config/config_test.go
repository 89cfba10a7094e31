package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// clearEnv изолирует тест от переменных окружения разработчика
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MPREVIEW_BASE_URL",
		"MPREVIEW_SEARCH_PROVIDER",
		"SPOTIFY_CLIENT_ID",
		"SPOTIFY_CLIENT_SECRET",
		"MPREVIEW_LOG_LEVEL",
		"MPREVIEW_SEARCH_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	clearEnv(t)

	// Создаем временный файл конфигурации
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	testConfig := Config{
		BaseURL:              "https://abcd1234.ngrok.io/",
		SearchProvider:       ProviderEndpoint,
		SearchTimeoutSeconds: 5,
		StoreBackend:         StoreSQLite,
		DataPath:             filepath.Join(tempDir, "favs.db"),
		LogLevel:             "debug",
		AwsBucketName:        "test-bucket",
		AwsRegion:            "us-east-1",
	}

	data, err := yaml.Marshal(testConfig)
	if err != nil {
		t.Fatalf("Ошибка сериализации конфигурации: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		t.Fatalf("Ошибка записи файла конфигурации: %v", err)
	}

	loaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Завершающий слеш должен быть отрезан
	if loaded.BaseURL != "https://abcd1234.ngrok.io" {
		t.Errorf("Ожидался BaseURL без слеша, получено: %s", loaded.BaseURL)
	}
	if loaded.SearchTimeoutSeconds != 5 {
		t.Errorf("Ожидался таймаут 5, получено: %d", loaded.SearchTimeoutSeconds)
	}
	if loaded.StoreBackend != StoreSQLite {
		t.Errorf("Ожидался бэкенд %s, получено: %s", StoreSQLite, loaded.StoreBackend)
	}
	if loaded.DataPath != testConfig.DataPath {
		t.Errorf("Ожидался DataPath: %s, получено: %s", testConfig.DataPath, loaded.DataPath)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("Ожидался LogLevel: debug, получено: %s", loaded.LogLevel)
	}
	if !loaded.BackupEnabled() {
		t.Error("Резервное копирование должно быть включено при заданном бакете")
	}
}

func TestDefaultConfig(t *testing.T) {
	clearEnv(t)

	// Файла нет - используются значения по умолчанию
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "missing.yaml")

	loaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Отсутствующий файл не должен быть ошибкой: %v", err)
	}

	if loaded.BaseURL != "" {
		t.Errorf("Ожидался пустой BaseURL, получено: %s", loaded.BaseURL)
	}
	if loaded.SearchProvider != ProviderEndpoint {
		t.Errorf("Ожидался поставщик %s, получено: %s", ProviderEndpoint, loaded.SearchProvider)
	}
	if loaded.SearchTimeoutSeconds != defaultSearchTimeout {
		t.Errorf("Ожидался таймаут %d, получено: %d", defaultSearchTimeout, loaded.SearchTimeoutSeconds)
	}
	if loaded.StoreBackend != StoreYAML {
		t.Errorf("Ожидался бэкенд %s, получено: %s", StoreYAML, loaded.StoreBackend)
	}
	if loaded.DataPath != filepath.Join(tempDir, "data.yaml") {
		t.Errorf("Неожиданный DataPath: %s", loaded.DataPath)
	}
	if loaded.LogFile != filepath.Join(tempDir, "mpreview.log") {
		t.Errorf("Неожиданный LogFile: %s", loaded.LogFile)
	}
	if loaded.SpotifyEnabled() {
		t.Error("Spotify не должен быть включен без ключей")
	}
	if loaded.BackupEnabled() {
		t.Error("Резервное копирование не должно быть включено без бакета")
	}
}

func TestSQLiteDefaultDataPath(t *testing.T) {
	clearEnv(t)

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("store_backend: sqlite\n"), 0644); err != nil {
		t.Fatalf("Ошибка записи файла конфигурации: %v", err)
	}

	loaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	if loaded.DataPath != filepath.Join(tempDir, "data.db") {
		t.Errorf("Неожиданный DataPath для sqlite: %s", loaded.DataPath)
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MPREVIEW_BASE_URL", "https://env.example.com")
	t.Setenv("MPREVIEW_SEARCH_PROVIDER", ProviderSpotify)
	t.Setenv("SPOTIFY_CLIENT_ID", "id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "secret")
	t.Setenv("MPREVIEW_SEARCH_TIMEOUT", "3")

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("base_url: https://file.example.com\n"), 0644); err != nil {
		t.Fatalf("Ошибка записи файла конфигурации: %v", err)
	}

	loaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	if loaded.BaseURL != "https://env.example.com" {
		t.Errorf("Переменная окружения должна переопределять файл, получено: %s", loaded.BaseURL)
	}
	if !loaded.SpotifyEnabled() {
		t.Error("Spotify должен быть включен")
	}
	if loaded.SearchTimeoutSeconds != 3 {
		t.Errorf("Ожидался таймаут 3, получено: %d", loaded.SearchTimeoutSeconds)
	}
}

func TestInvalidYAML(t *testing.T) {
	clearEnv(t)

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "broken.yaml")
	if err := os.WriteFile(configPath, []byte("base_url: [unclosed\n"), 0644); err != nil {
		t.Fatalf("Ошибка записи файла конфигурации: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("Ожидалась ошибка для некорректного YAML")
	}
}
