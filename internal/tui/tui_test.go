package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/hazadus/mpreview/internal/data"
	"github.com/hazadus/mpreview/internal/widget"
)

type mockEngine struct{}

func (mockEngine) SetSource(string) uint64            { return 0 }
func (mockEngine) Play(context.Context, uint64) error { return nil }
func (mockEngine) Pause()                             {}

func TestNewApp(t *testing.T) {
	w := widget.New(widget.Options{Engine: mockEngine{}, Store: data.NewMemoryStore()})
	app := NewApp(w, nil)

	model := app.Model(context.Background())
	if model == nil {
		t.Fatal("Model returned nil")
	}
	if !strings.Contains(model.View(), widget.StatusMockNotice) {
		t.Error("Ожидалось уведомление о mock режиме в главной модели")
	}
}
