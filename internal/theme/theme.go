// Package theme хранит выбор темной или светлой темы
package theme

import (
	"fmt"

	"github.com/hazadus/mpreview/internal/data"
)

// Theme тема оформления
type Theme string

const (
	// Light тема по умолчанию, ключ отсутствует
	Light Theme = ""
	// Dark хранится как литерал "dark"
	Dark Theme = "dark"
)

// Load читает тему; любое значение кроме "dark" означает светлую тему
func Load(kv data.Store) Theme {
	v, ok, err := kv.Get(data.ThemeKey)
	if err != nil || !ok || v != string(Dark) {
		return Light
	}
	return Dark
}

// Toggle переключает тему и сохраняет результат
func Toggle(kv data.Store) (Theme, error) {
	if Load(kv) == Dark {
		if err := kv.Delete(data.ThemeKey); err != nil {
			return Dark, fmt.Errorf("ошибка сброса темы: %w", err)
		}
		return Light, nil
	}
	if err := kv.Set(data.ThemeKey, string(Dark)); err != nil {
		return Light, fmt.Errorf("ошибка сохранения темы: %w", err)
	}
	return Dark, nil
}

// ToggleLabel подпись переключателя: предлагает противоположную тему
func (t Theme) ToggleLabel() string {
	if t == Dark {
		return "Light"
	}
	return "Dark"
}
