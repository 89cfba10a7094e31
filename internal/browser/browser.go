// Package browser открывает внешние ссылки в браузере системы
package browser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	pkgbrowser "github.com/pkg/browser"
)

// ErrEmptyURL ссылка не задана
var ErrEmptyURL = errors.New("пустая ссылка")

// Opener открывает ссылку в новом окне браузера
type Opener interface {
	Open(url string) error
}

// OpenFunc открывает ссылку средствами платформы
type OpenFunc func(url string) error

// SystemOpener открывает ссылки браузером по умолчанию
type SystemOpener struct {
	open OpenFunc
}

// NewSystemOpener создает Opener поверх pkg/browser. Вывод запускаемых
// команд отбрасывается: терминал занят интерфейсом.
func NewSystemOpener() *SystemOpener {
	pkgbrowser.Stdout = io.Discard
	pkgbrowser.Stderr = io.Discard
	return &SystemOpener{open: pkgbrowser.OpenURL}
}

// NewSystemOpenerWithFunc создает Opener с заданным способом открытия
func NewSystemOpenerWithFunc(open OpenFunc) *SystemOpener {
	return &SystemOpener{open: open}
}

// Open открывает ссылку
func (o *SystemOpener) Open(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return ErrEmptyURL
	}

	if err := o.open(url); err != nil {
		return fmt.Errorf("ошибка открытия ссылки: %w", err)
	}
	return nil
}
