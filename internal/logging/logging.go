// Package logging настраивает логирование приложения.
// Stdout принадлежит TUI, поэтому логи пишутся в файл.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	nested "github.com/antonfisher/nested-logrus-formatter"
	log "github.com/sirupsen/logrus"
)

// Setup направляет стандартный логгер logrus в файл и возвращает функцию закрытия
func Setup(filePath, level string) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории логов: %w", err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла логов: %w", err)
	}

	Configure(file, level)
	return file.Close, nil
}

// Configure задает вывод, формат и уровень стандартного логгера
func Configure(out io.Writer, level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	log.SetOutput(out)
	log.SetLevel(lvl)
	log.SetFormatter(&nested.Formatter{
		HideKeys:        false,
		NoColors:        true,
		TimestampFormat: "2006-01-02 15:04:05",
		FieldsOrder:     []string{"component", "request_id", "query"},
	})
}
