package view

import (
	"fmt"
	"html/template"
	"io"
)

// Title и Artists уже экранированы узким набором правил, поэтому вставляются
// как template.HTML; URL экранирует сам html/template
var gridTemplate = template.Must(template.New("grid").Funcs(template.FuncMap{
	"raw": func(s string) template.HTML { return template.HTML(s) },
}).Parse(`<div class="grid{{if .Dark}} dark{{end}}">
{{- if .Grid.Empty}}
  <div class="notice">{{.Grid.Placeholder}}</div>
{{- else}}{{range .Grid.Cards}}
  <div class="card" data-id="{{.ID}}">
    <img src="{{.CoverURL}}" alt="">
    <div class="title">{{raw .Title}}</div>
    <div class="artists">{{raw .Artists}}</div>
    <div class="actions">
      <button class="play" data-id="{{.ID}}"{{if not .CanPlay}} disabled{{end}}>{{.PlayLabel}}</button>
      <a class="open" href="{{.ExternalURL}}" target="_blank" rel="noopener">Open</a>
      <a class="youtube" href="{{.YouTubeURL}}" target="_blank" rel="noopener">YouTube</a>
      <button class="fav" data-id="{{.ID}}">{{.FavGlyph}}</button>
    </div>
  </div>
{{- end}}{{end}}
</div>
`))

// WriteHTML выводит разметку сетки
func (g Grid) WriteHTML(w io.Writer, dark bool) error {
	data := struct {
		Grid Grid
		Dark bool
	}{Grid: g, Dark: dark}

	if err := gridTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("ошибка отрисовки HTML: %w", err)
	}
	return nil
}
