package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestConfigureWritesFields(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, "debug")
	defer Configure(os.Stderr, "info")

	log.WithField("component", "search").Debug("fallback substituted")

	output := buf.String()
	if !strings.Contains(output, "fallback substituted") {
		t.Errorf("Лог не содержит сообщение: %q", output)
	}
	if !strings.Contains(output, "search") {
		t.Errorf("Лог не содержит поле component: %q", output)
	}
}

func TestConfigureInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, "not-a-level")
	defer Configure(os.Stderr, "info")

	if log.GetLevel() != log.InfoLevel {
		t.Errorf("Ожидался уровень info, получено: %s", log.GetLevel())
	}
}

func TestSetupCreatesFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "mpreview.log")

	closeFn, err := Setup(logPath, "info")
	if err != nil {
		t.Fatalf("Ошибка настройки логов: %v", err)
	}
	log.Info("hello")
	if err := closeFn(); err != nil {
		t.Fatalf("Ошибка закрытия файла логов: %v", err)
	}
	Configure(os.Stderr, "info")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Ошибка чтения файла логов: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("Файл логов не содержит запись: %q", string(data))
	}
}
