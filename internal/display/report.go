// Package display renders world snapshots as plain text reports for the
// console.
package display

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-grim/internal/snapshot"
)

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

const worldReport = `{{- with .CurrentSet -}}
set: {{ .SetFile }} ({{ .VariableName }}){{ with .DisplayName }} "{{ . }}"{{ end }}{{ with .Selection }} setup {{ .Index }}{{ with .Label }} {{ . }}{{ end }}{{ end }}
{{- else -}}
set: <none>
{{- end }}
loaded: {{ if .LoadedSets }}{{ join ", " .LoadedSets }}{{ else }}<none>{{ end }}
selected: {{ with .SelectedActor }}{{ . }}{{ else }}<none>{{ end }}
paused: {{ ternary "yes" "no" .Paused.Active }}
`

const actorsReport = `actors:
{{- range $id, $a := .Actors }}
  #{{ $a.Handle }} {{ $id }} {{ quote $a.Name }}{{ with $a.CurrentSet }} in {{ . }}{{ end }}{{ with $a.Position }} at {{ . }}{{ end }}{{ with $a.Costume }} costume {{ . }}{{ end }}{{ if $a.Speaking }} speaking{{ end }}
{{- else }} <none>{{ end }}
`

const objectsReport = `objects:
{{- range .Objects }}
  #{{ .Handle }} {{ .Name }}{{ with .StringName }} "{{ . }}"{{ end }}{{ if not .Visible }} hidden{{ end }}{{ if not .Touchable }} untouchable{{ end }}
{{- else }} <none>{{ end }}
hotlist: {{ if .HotlistHandles }}{{ range $i, $h := .HotlistHandles }}{{ if $i }}, {{ end }}#{{ $h }}{{ end }}{{ else }}<none>{{ end }}
`

const scriptsReport = `scripts:
{{- range .Scripts }}
  #{{ .Handle }} {{ .Label }} {{ .State }} yields={{ .Yields }}
{{- else }} <none>{{ end }}
`

const sceneReport = `cut scenes:
{{- range .CutScenes }}
  {{ default "<unnamed>" .Label }}{{ if .Flags }} [{{ join ", " .Flags }}]{{ end }}{{ if .Suppressed }} suppressed{{ end }}
{{- else }} <none>{{ end }}
overrides: {{ if .Overrides }}{{ join ", " .Overrides }}{{ else }}<none>{{ end }}
commentary: {{ with .Commentary }}{{ default "<unnamed>" .Label }} {{ ternary "active" "suppressed" .Active }}{{ else }}<none>{{ end }}
dialog: {{ with .Dialog }}{{ .ActorLabel }}: {{ .Line }}{{ else }}<none>{{ end }}
open menus:{{ $open := false }}{{ range $name, $m := .Menus }}{{ if $m.Visible }}{{ $open = true }} {{ $name }}{{ if $m.AutoFreeze }} (auto freeze){{ end }}{{ end }}{{ end }}{{ if not $open }} <none>{{ end }}
`

const audioReport = `music: {{ with .Music.Current }}{{ .Name }}{{ else }}<none>{{ end }}{{ if .Music.Paused }} paused{{ end }}
queued: {{ len .Music.Queued }}
sfx:
{{- range .Sfx.Active }}
  {{ .Handle }} {{ .Cue }} vol={{ .Volume }} pan={{ .Pan }}
{{- else }} <none>{{ end }}
`

const eventsReport = `events:
{{- range $i, $e := .Events }}
  {{ $i }} {{ $e }}
{{- else }} <none>{{ end }}
`

var reports = map[string]string{
	"world":   worldReport,
	"actors":  actorsReport,
	"objects": objectsReport,
	"scripts": scriptsReport,
	"scene":   sceneReport,
	"audio":   audioReport,
	"events":  eventsReport,
}

// ReportNames lists the built in reports in sorted order.
func ReportNames() []string {
	return slices.Sorted(maps.Keys(reports))
}

// ExpandTemplate expands a template string using the provided data.
func ExpandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// Report renders the named report against doc and wraps it to width.
func Report(name string, doc *snapshot.Document, width int) (string, error) {
	tmpl, ok := reports[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("unknown report %q (have %s)", name, strings.Join(ReportNames(), ", "))
	}
	out, err := ExpandTemplate(tmpl, doc)
	if err != nil {
		return "", fmt.Errorf("rendering %s report: %w", name, err)
	}
	return Wrap(out, width), nil
}
