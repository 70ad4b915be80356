package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/gorilla/csrf"

	"booking-wizard/internal/booking"
	"booking-wizard/internal/calendar"
	"booking-wizard/internal/catalog"
	"booking-wizard/internal/model"
	"booking-wizard/internal/scheduler"
)

//go:embed templates/*.html
var templateFS embed.FS

type renderer struct {
	tpl *template.Template
}

func newRenderer() (*renderer, error) {
	funcs := template.FuncMap{
		"renderMarkdown": catalog.RenderMarkdown,
		"longDate":       calendar.FormatLong,
		"shortDate":      calendar.FormatShort,
		"weekday":        calendar.WeekdayLabel,
		"day":            func(d civil.Date) int { return d.Day },
		"iso":            func(d civil.Date) string { return d.String() },
		"fieldError":     func(fe booking.FieldErrors, f string) string { return fe[booking.Field(f)] },
	}
	tpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &renderer{tpl: tpl}, nil
}

// pageData is what every template receives.
type pageData struct {
	Page      *scheduler.Page
	Host      model.Profile
	Events    []model.EventType
	Views     []calendar.Option
	Timezone  string
	CSRFField template.HTML
	Error     string
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, code int, page *scheduler.Page, msg string) {
	cat := s.svc.Catalog()
	data := pageData{
		Page:      page,
		Host:      cat.Profile(),
		Events:    cat.Events(),
		Views:     calendar.Options(page.View),
		Timezone:  s.svc.TimezoneLabel(),
		CSRFField: csrf.TemplateField(r),
		Error:     msg,
	}
	var buf bytes.Buffer
	if err := s.pages.tpl.Execute(&buf, data); err != nil {
		s.internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	buf.WriteTo(w)
}
