// Package display turns structured game messages into terminal text.
package display

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-mudengine/internal/game"
)

const barWidth = 20

var templateFuncs = func() template.FuncMap {
	f := sprig.TxtFuncMap()
	f["capitalize"] = game.Capitalize
	f["formatList"] = game.FormatList
	f["bar"] = fullBar
	f["parts"] = formatParts
	return f
}()

var templates = map[string]*template.Template{
	game.LocationDescription{}.Kind(): parse(`{{ .Name }}
{{ .Description }}
{{- with .Living }}
{{ formatList . | capitalize }} {{ if eq (len .) 1 }}is{{ else }}are{{ end }} here.{{ end }}
{{- with .Objects }}
You see {{ formatList . }}.{{ end }}
{{- with .Exits }}
Exits: {{ range $i, $e := . }}{{ if $i }}, {{ end }}{{ $e.Direction }}{{ if $e.Closed }} (closed){{ end }}{{ end }}
{{- else }}
There are no obvious exits.{{ end }}`),

	game.EntityDescription{}.Kind(): parse(`{{ .Name | capitalize }}
{{- with .Description }}
{{ . }}{{ end }}
{{- range .Attributes }}
  {{ . }}{{ end }}`),

	game.HelpDescription{}.Kind(): parse(`You can:
{{- range .Formats }}
  {{ . }}{{ end }}`),

	game.StatsDescription{}.Kind(): parse(`Attributes:
{{- range .Attributes }}
  {{ printf "%-14s %5.1f" .Name .Value }}{{ end }}
Skills:
{{- range .Skills }}
  {{ printf "%-14s %5.1f" .Name .Value }}{{ end }}`),

	game.VitalsDescription{}.Kind(): parse(`Health    {{ bar .Health }}
Satiety   {{ bar .Satiety }}
Hydration {{ bar .Hydration }}
Energy    {{ bar .Energy }}`),

	game.ValueChangeDescription{}.Kind(): parse(`{{ .Message }}
{{ printf "%s" .ValueType | capitalize }} {{ bar .NewValue }}`),

	game.WornItemsDescription{}.Kind(): parse(`{{ if .Items }}You are wearing:
{{- range .Items }}
  {{ .Name }} ({{ parts .BodyParts }}){{ end }}
{{- else }}You aren't wearing anything.{{ end }}`),

	game.InventoryDescription{}.Kind(): parse(`{{ if .Items }}You are carrying:
{{- range .Items }}
  {{ . }}{{ end }}
{{- else }}You aren't carrying anything.{{ end }}
Weight: {{ printf "%.1f" .TotalWeight }}{{ if .MaxWeight }}/{{ printf "%.1f" .MaxWeight }}{{ end }} kg`),

	game.PlayersDescription{}.Kind(): parse(`Players:
{{- range .Players }}
  {{ .Name }}{{ if .IsSelf }} (you){{ end }}{{ if .IsAfk }} [afk]{{ else if .HasQueuedAction }} [ready]{{ end }}{{ end }}`),
}

func parse(text string) *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).Parse(text))
}

// Render formats m for a terminal.
func Render(m game.GameMessage) string {
	switch msg := m.(type) {
	case game.Message:
		return Wrap(msg.Text)
	case game.ErrorMessage:
		return Wrap(msg.Text)
	case game.MapDescription:
		return renderMap(msg)
	case game.VitalChangeDescription:
		return Wrap(renderVitalChange(msg))
	}

	tmpl, ok := templates[m.Kind()]
	if !ok {
		slog.Warn("no template for message", "kind", m.Kind())
		return ""
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, m); err != nil {
		slog.Error("rendering message", "kind", m.Kind(), "error", err)
		return ""
	}
	return Wrap(buf.String())
}

func renderVitalChange(m game.VitalChangeDescription) string {
	if m.Visualization == game.VisualizationAbbreviated {
		return fmt.Sprintf("%s %s", m.Message, bar(m.NewValue, barWidth/2))
	}
	return fmt.Sprintf("%s\n%s %s", m.Message, game.Capitalize(m.Vital.String()), fullBar(m.NewValue))
}

// bar draws v as a gauge width characters wide.
func bar(v game.ConstrainedValue, width int) string {
	filled := int(v.Fraction()*float64(width) + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func fullBar(v game.ConstrainedValue) string {
	return fmt.Sprintf("%s %.0f/%.0f", bar(v, barWidth), v.Get(), v.Max())
}

func formatParts(parts []game.BodyPart) string {
	names := make([]string, len(parts))
	for i, p := range parts {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
