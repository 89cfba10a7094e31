package browser

import (
	"errors"
	"io"
	"testing"

	pkgbrowser "github.com/pkg/browser"
)

func TestOpenPassesTrimmedURL(t *testing.T) {
	var got []string
	opener := NewSystemOpenerWithFunc(func(url string) error {
		got = append(got, url)
		return nil
	})

	if err := opener.Open(" https://example.com "); err != nil {
		t.Errorf("Неожиданная ошибка: %v", err)
	}
	if len(got) != 1 || got[0] != "https://example.com" {
		t.Errorf("Ожидалась одна обрезанная ссылка, получено %q", got)
	}
}

func TestOpenErrors(t *testing.T) {
	called := false
	opener := NewSystemOpenerWithFunc(func(string) error {
		called = true
		return errors.New("xdg-open: not found")
	})

	if err := opener.Open("   "); !errors.Is(err, ErrEmptyURL) {
		t.Errorf("Ожидалась ErrEmptyURL, получено: %v", err)
	}
	if called {
		t.Error("Пустая ссылка не должна запускать браузер")
	}

	err := opener.Open("https://example.com")
	if err == nil || err.Error() != "ошибка открытия ссылки: xdg-open: not found" {
		t.Errorf("Ожидалась обернутая ошибка запуска, получено: %v", err)
	}
}

func TestNewSystemOpenerSilencesOutput(t *testing.T) {
	opener := NewSystemOpener()

	if opener.open == nil {
		t.Fatal("Способ открытия не задан")
	}
	if pkgbrowser.Stdout != io.Discard || pkgbrowser.Stderr != io.Discard {
		t.Error("Вывод команд браузера должен отбрасываться")
	}
}
