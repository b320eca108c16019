package public

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"strconv"

	"github.com/langowen/calibrator/internal/calibrator/render"
	"github.com/langowen/calibrator/internal/calibrator/service"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Currency Converter (Frankfurter)</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2em auto; }
label { display: inline-block; width: 180px; }
input[type=text] { width: 160px; margin: 4px 0; }
textarea { width: 100%; height: 10em; font-family: monospace; }
.error { border: 1px solid #c00; background: #fee; padding: 8px; margin: 8px 0; }
.error h3 { margin: 0 0 4px 0; }
</style>
</head>
<body>
<form method="post">
<label for="amount">Amount</label><input type="text" id="amount" name="amount" value="{{.Form.Amount}}"><br>
<label for="base">Base (e.g., USD, INR)</label><input type="text" id="base" name="base" value="{{.Form.Base}}"><br>
<label for="target">Target (e.g., USD, INR)</label><input type="text" id="target" name="target" value="{{.Form.Target}}"><br>
<label for="days">History days</label><input type="text" id="days" name="days" value="{{.Form.Days}}"><br>
<input type="hidden" name="output" value="{{.Output}}">
<p>
<button type="submit" formaction="/convert">Convert &amp; Plot</button>
<button type="submit" formaction="/clear">Clear Output</button>
</p>
</form>
{{if .Error}}<div class="error"><h3>{{.Error.Title}}</h3><pre>{{.Error.Message}}</pre></div>{{end}}
<label for="output">Output</label>
<textarea id="output" readonly>{{.Output}}</textarea>
{{if .ChartsSrc}}<iframe title="Charts" src="{{.ChartsSrc}}" style="width: 100%; height: 1500px; border: 0;"></iframe>{{end}}
</body>
</html>
`))

type formValues struct {
	Amount string
	Base   string
	Target string
	Days   string
}

var defaultForm = formValues{Amount: "100", Base: "INR", Target: "USD", Days: "30"}

type pageError struct {
	Title   string
	Message string
}

type pageData struct {
	Form      formValues
	Output    string
	Error     *pageError
	ChartsSrc template.URL
}

func (s *Server) defaultForm() formValues {
	form := defaultForm
	if s.cfg != nil && s.cfg.History.DefaultDays > 0 {
		form.Days = strconv.Itoa(s.cfg.History.DefaultDays)
	}
	return form
}

// chartsSource renders the report's charts into a data URL so the page shows exactly
// the charts of the run that produced the text.
func chartsSource(report *service.Report) (template.URL, error) {
	var buf bytes.Buffer
	if err := render.Charts(&buf, chartsTitle(report), report.Charts); err != nil {
		return "", err
	}

	return template.URL("data:text/html;charset=utf-8;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

func chartsTitle(report *service.Report) string {
	return report.Conversion.Base.String() + " → " + report.Conversion.Target.String()
}
