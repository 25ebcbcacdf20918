package meter

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/Masterminds/sprig"
)

const reportTemplate = `{{ .Title | upper }}
{{ repeat (len .Title) "=" }}
frame rate: {{ .FrameRate }} Hz
samples:    {{ .Levels.Samples }}
duration:   {{ .Duration }}
{{- range $i, $name := list "left" "right" }}
{{ $name | printf "%-5s" }}       peak {{ index $.Levels.Peak $i }} dBFS, rms {{ index $.Levels.RMS $i }} dBFS
{{- end }}
{{- if gt .Levels.Clipped 0 }}
clipped:    {{ .Levels.Clipped }} values at full scale
{{- end }}
`

var report = template.Must(template.New("report").Funcs(sprig.TxtFuncMap()).Parse(reportTemplate))

// Report writes a human readable summary of the levels.
func Report(w io.Writer, title string, frameRate int, levels Levels) error {
	var duration time.Duration
	if frameRate > 0 {
		duration = time.Duration(levels.Samples) * time.Second / time.Duration(frameRate)
	}
	data := struct {
		Title     string
		FrameRate int
		Duration  time.Duration
		Levels    Levels
	}{title, frameRate, duration, levels}
	if err := report.Execute(w, data); err != nil {
		return fmt.Errorf("could not render report: %w", err)
	}
	return nil
}

func formatDecibel(d Decibel) string {
	return fmt.Sprintf("%.1f", float32(d))
}
