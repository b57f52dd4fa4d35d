package format

import (
	"errors"
	"html/template"
	"io"
	"regexp"
	"strings"

	"github.com/hectorherrerafullstack/astroApi/client"
)

// MaxAspects is how many top aspects ToHTML renders.
const MaxAspects = 3

var boldRe = regexp.MustCompile(`\*\*(.*?)\*\*`)

// FormatText escapes text and then converts **bold** to <strong> and newlines
// to <br>. No other markdown is recognised.
func FormatText(text string) template.HTML {
	s := template.HTMLEscapeString(text)
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = strings.ReplaceAll(s, "\n", "<br>")
	return template.HTML(s) //nolint:gosec // input escaped above
}

const horoscopeTmpl = `<div class="daily-horoscope">
  <h2>Your horoscope for {{.Date}}</h2>
  <p class="ascendant">Ascendant: {{.Ascendant}}</p>
  <section class="aspects">
    <h3>Key aspects of the day</h3>
    <ul>
{{- range .Aspects}}
      <li class="aspect {{.Quality}}">
        <span class="aspect-icon">{{.Icon}}</span>
        <strong>{{.Text}}</strong> - {{.Description}}
        <br>
        <small>Orb: {{.Orb}}° | {{if .Applying}}applying{{else}}separating{{end}}</small>
      </li>
{{- end}}
    </ul>
  </section>
  <section class="houses">
    <h3>Activated life areas</h3>
    <ul>
{{- range .Houses}}
      <li class="house">
        <strong>House {{.Number}}{{with .Name}} ({{.}}){{end}}</strong>
        <br>
        <small>Activated by: {{.Planets}}</small>
      </li>
{{- end}}
    </ul>
  </section>
  <section class="interpretation">
    <h3>Interpretation</h3>
    <div class="summary">{{.Summary}}</div>
  </section>
  <section class="advice">
    <h3>Advice of the day</h3>
    <p class="advice-text">{{.Advice}}</p>
  </section>
</div>
`

const errorTmpl = `<div class="error">
  <h3>Could not get horoscope</h3>
  <p>{{.}}</p>
</div>
`

var (
	horoscopePage = template.Must(template.New("horoscope").Parse(horoscopeTmpl))
	errorPage     = template.Must(template.New("error").Parse(errorTmpl))
)

type horoscopeView struct {
	Date      string
	Ascendant string
	Aspects   []FormattedAspect
	Houses    []FormattedHouse
	Summary   template.HTML
	Advice    template.HTML
}

func newHoroscopeView(h *client.DailyHoroscope) horoscopeView {
	top := h.TopAspects
	if len(top) > MaxAspects {
		top = top[:MaxAspects]
	}
	v := horoscopeView{
		Date:      h.Date,
		Ascendant: h.NatalAscendant,
		Aspects:   make([]FormattedAspect, 0, len(top)),
		Houses:    make([]FormattedHouse, 0, len(h.HousesActivated)),
		Summary:   FormatText(h.Interpretation.Summary),
		Advice:    FormatText(h.Interpretation.Advice),
	}
	for _, a := range top {
		v.Aspects = append(v.Aspects, FormatAspect(a))
	}
	for _, hs := range h.HousesActivated {
		v.Houses = append(v.Houses, FormatHouse(hs))
	}
	return v
}

// WriteHTML renders h to w. Only the first MaxAspects aspects are shown, in
// the order the service returned them; every activated house is shown.
func WriteHTML(w io.Writer, h *client.DailyHoroscope) error {
	if h == nil {
		return errors.New("format: nil horoscope")
	}
	return horoscopePage.Execute(w, newHoroscopeView(h))
}

// ToHTML is WriteHTML into a string.
func ToHTML(h *client.DailyHoroscope) (string, error) {
	var b strings.Builder
	if err := WriteHTML(&b, h); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ErrorHTML renders err as a visible error block. A nil error renders
// nothing.
func ErrorHTML(err error) string {
	if err == nil {
		return ""
	}
	var b strings.Builder
	if execErr := errorPage.Execute(&b, err.Error()); execErr != nil {
		return template.HTMLEscapeString(err.Error())
	}
	return b.String()
}
