package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/hazadus/mpreview/internal/backup"
	"github.com/hazadus/mpreview/internal/config"
	"github.com/hazadus/mpreview/internal/data"
	"github.com/hazadus/mpreview/internal/widget"
)

type mockEngine struct {
	source string
}

func (m *mockEngine) SetSource(url string) uint64 {
	m.source = url
	return 1
}

func (m *mockEngine) Play(context.Context, uint64) error { return nil }
func (m *mockEngine) Pause()                             {}

type mockOpener struct {
	opened []string
}

func (m *mockOpener) Open(url string) error {
	m.opened = append(m.opened, url)
	return nil
}

// mockStorage хранит объекты в памяти вместо S3
type mockStorage struct {
	objects map[string][]byte
	err     error
}

func newMockStorage() *mockStorage {
	return &mockStorage{objects: make(map[string][]byte)}
}

func (m *mockStorage) UploadFile(_ context.Context, r io.Reader, key string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.objects[key] = body
	return "https://s3.example.com/bucket/" + key, nil
}

func (m *mockStorage) DownloadFile(_ context.Context, w io.WriterAt, key string) (int64, error) {
	body, ok := m.objects[key]
	if !ok {
		return 0, errors.New("NoSuchKey")
	}
	n, err := w.WriteAt(body, 0)
	return int64(n), err
}

func (m *mockStorage) DeleteFile(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

// createTestApplication создает приложение без сети, звука и браузера
func createTestApplication(t *testing.T, cfg *config.Config) *Application {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	if cfg.DataPath == "" {
		cfg.DataPath = filepath.Join(t.TempDir(), "data.yaml")
	}
	return newApplication(context.Background(), cfg, data.NewMemoryStore(), &mockEngine{}, &mockOpener{})
}

// runCommand выполняет команду с аргументами и возвращает ее вывод
func runCommand(t *testing.T, app *Application, args ...string) (string, error) {
	t.Helper()
	root := app.createRootCommand(context.Background())

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func TestRootCommandListsSubcommands(t *testing.T) {
	app := createTestApplication(t, nil)
	root := app.createRootCommand(context.Background())

	for _, name := range []string{"search", "preview", "fav", "favs", "theme", "export", "backup", "tui"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("Команда %s не зарегистрирована: %v", name, err)
		}
	}
}

func TestCmdSearchMockMode(t *testing.T) {
	app := createTestApplication(t, nil)

	output, err := runCommand(t, app, "search", "acoustic")
	if err != nil {
		t.Fatalf("Ошибка выполнения команды search: %v", err)
	}

	if !strings.Contains(output, widget.StatusMockMode) {
		t.Errorf("Ожидался статус mock режима, получено:\n%s", output)
	}
	if !strings.Contains(output, "Acoustic Loop") || !strings.Contains(output, "m2") {
		t.Errorf("Ожидалась карточка Acoustic Loop, получено:\n%s", output)
	}
	if strings.Contains(output, "SoundHelix Example") {
		t.Errorf("Неподходящий трек не должен выводиться:\n%s", output)
	}
}

func TestCmdSearchNoMatches(t *testing.T) {
	app := createTestApplication(t, nil)

	output, err := runCommand(t, app, "search", "zzz")
	if err != nil {
		t.Fatalf("Ошибка выполнения команды search: %v", err)
	}
	if !strings.Contains(output, "No results") {
		t.Errorf("Ожидалась заглушка пустой сетки, получено:\n%s", output)
	}
}

func TestCmdSearchEmptyQuery(t *testing.T) {
	app := createTestApplication(t, nil)

	output, err := runCommand(t, app, "search", "   ")
	if err == nil {
		t.Fatal("Ожидалась ошибка для пустого запроса")
	}
	if !strings.Contains(output, widget.StatusEmptyQuery) {
		t.Errorf("Ожидался статус пустого запроса, получено:\n%s", output)
	}
}

func TestCmdFavAndFavs(t *testing.T) {
	app := createTestApplication(t, nil)

	output, err := runCommand(t, app, "favs")
	if err != nil {
		t.Fatalf("Ошибка выполнения команды favs: %v", err)
	}
	if !strings.Contains(output, "Избранное пусто") {
		t.Errorf("Ожидалось сообщение о пустом избранном, получено:\n%s", output)
	}

	output, err = runCommand(t, app, "fav", "m2")
	if err != nil {
		t.Fatalf("Ошибка выполнения команды fav: %v", err)
	}
	if !strings.Contains(output, "★ m2 добавлен") {
		t.Errorf("Ожидалось добавление в избранное, получено:\n%s", output)
	}

	if _, err := runCommand(t, app, "fav", "x9"); err != nil {
		t.Fatalf("Ошибка выполнения команды fav: %v", err)
	}

	output, _ = runCommand(t, app, "favs")
	if !strings.Contains(output, "Избранных треков: 2") {
		t.Errorf("Ожидалось 2 избранных трека, получено:\n%s", output)
	}
	if strings.Index(output, "m2") > strings.Index(output, "x9") {
		t.Errorf("Порядок добавления нарушен:\n%s", output)
	}

	output, _ = runCommand(t, app, "fav", "m2")
	if !strings.Contains(output, "☆ m2 удален") {
		t.Errorf("Ожидалось удаление из избранного, получено:\n%s", output)
	}
}

func TestCmdTheme(t *testing.T) {
	app := createTestApplication(t, nil)

	output, err := runCommand(t, app, "theme")
	if err != nil {
		t.Fatalf("Ошибка выполнения команды theme: %v", err)
	}
	if !strings.Contains(output, "темная") {
		t.Errorf("Ожидалось включение темной темы, получено:\n%s", output)
	}

	output, _ = runCommand(t, app, "theme")
	if !strings.Contains(output, "светлая") {
		t.Errorf("Ожидалось возвращение светлой темы, получено:\n%s", output)
	}
}

func TestCmdExportHTML(t *testing.T) {
	app := createTestApplication(t, nil)

	output, err := runCommand(t, app, "export")
	if err != nil {
		t.Fatalf("Ошибка выполнения команды export: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(output))
	if err != nil {
		t.Fatalf("Ошибка разбора HTML: %v", err)
	}
	if n := doc.Find(".card").Length(); n != 2 {
		t.Errorf("Ожидалось 2 карточки встроенного набора, получено %d", n)
	}
}

func TestCmdExportFavoritesToFile(t *testing.T) {
	app := createTestApplication(t, nil)
	if _, err := runCommand(t, app, "fav", "m1"); err != nil {
		t.Fatalf("Ошибка выполнения команды fav: %v", err)
	}

	path := filepath.Join(t.TempDir(), "grid.html")
	output, err := runCommand(t, app, "export", "--favorites", "-o", path)
	if err != nil {
		t.Fatalf("Ошибка выполнения команды export: %v", err)
	}
	if !strings.Contains(output, path) {
		t.Errorf("Ожидался путь к файлу в выводе, получено:\n%s", output)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Файл не создан: %v", err)
	}
	defer file.Close()

	doc, err := goquery.NewDocumentFromReader(file)
	if err != nil {
		t.Fatalf("Ошибка разбора HTML: %v", err)
	}
	cards := doc.Find(".card")
	if cards.Length() != 1 {
		t.Fatalf("Ожидалась 1 избранная карточка, получено %d", cards.Length())
	}
	if id, _ := cards.Attr("data-id"); id != "m1" {
		t.Errorf("Ожидалась карточка m1, получено %s", id)
	}
}

func TestCmdPreviewNothingToPlay(t *testing.T) {
	app := createTestApplication(t, nil)

	_, err := runCommand(t, app, "preview", "zzz")
	if !errors.Is(err, ErrNothingToPlay) {
		t.Errorf("Ожидалась ErrNothingToPlay, получено: %v", err)
	}
}

func TestCmdPreviewWithoutPlayer(t *testing.T) {
	app := createTestApplication(t, nil)

	_, err := runCommand(t, app, "preview", "acoustic")
	if err == nil || !strings.Contains(err.Error(), "аудиоэлемент") {
		t.Errorf("Ожидалась ошибка отсутствующего плеера, получено: %v", err)
	}
	if app.Widget.PlayingID() != "" {
		t.Errorf("Воспроизведение не должно начинаться, играет %q", app.Widget.PlayingID())
	}
}

func TestCmdBackupNotConfigured(t *testing.T) {
	app := createTestApplication(t, nil)

	for _, sub := range []string{"push", "pull", "remove"} {
		_, err := runCommand(t, app, "backup", sub)
		if !errors.Is(err, ErrBackupDisabled) {
			t.Errorf("backup %s: ожидалась ErrBackupDisabled, получено: %v", sub, err)
		}
	}
}

func TestCmdBackupPushPullRemove(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "data.yaml")
	if err := os.WriteFile(dataPath, []byte("settings:\n  theme: dark\n"), 0644); err != nil {
		t.Fatalf("Ошибка записи файла данных: %v", err)
	}

	app := createTestApplication(t, &config.Config{AwsBucketName: "bucket", DataPath: dataPath})
	storage := newMockStorage()
	app.newBackupStorage = func() (backup.Storage, error) { return storage, nil }

	output, err := runCommand(t, app, "backup", "push")
	if err != nil {
		t.Fatalf("Ошибка выполнения backup push: %v", err)
	}
	if !strings.Contains(output, "https://s3.example.com/bucket/mpreview/data.yaml") {
		t.Errorf("Ожидалась ссылка на копию, получено:\n%s", output)
	}
	if _, ok := storage.objects["mpreview/data.yaml"]; !ok {
		t.Fatal("Копия не загружена в хранилище")
	}

	// Портим локальный файл и восстанавливаем копию
	if err := os.WriteFile(dataPath, []byte("broken"), 0644); err != nil {
		t.Fatalf("Ошибка записи файла данных: %v", err)
	}
	if _, err := runCommand(t, app, "backup", "pull"); err != nil {
		t.Fatalf("Ошибка выполнения backup pull: %v", err)
	}
	restored, err := os.ReadFile(dataPath)
	if err != nil {
		t.Fatalf("Ошибка чтения файла данных: %v", err)
	}
	if !strings.Contains(string(restored), "theme: dark") {
		t.Errorf("Файл данных не восстановлен: %q", restored)
	}

	if _, err := runCommand(t, app, "backup", "remove"); err != nil {
		t.Fatalf("Ошибка выполнения backup remove: %v", err)
	}
	if len(storage.objects) != 0 {
		t.Errorf("Копия должна быть удалена, осталось %d объектов", len(storage.objects))
	}
}

func TestCmdBackupStorageError(t *testing.T) {
	app := createTestApplication(t, &config.Config{AwsBucketName: "bucket"})
	app.newBackupStorage = func() (backup.Storage, error) { return nil, errors.New("no credentials") }

	_, err := runCommand(t, app, "backup", "push")
	if err == nil || !strings.Contains(err.Error(), "no credentials") {
		t.Errorf("Ожидалась ошибка создания хранилища, получено: %v", err)
	}
}
