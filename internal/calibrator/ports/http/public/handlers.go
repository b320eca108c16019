package public

import (
	"log/slog"
	"math"
	"net/http"

	"github.com/langowen/calibrator/internal/calibrator/render"
	"github.com/langowen/calibrator/internal/calibrator/service"
	"github.com/langowen/calibrator/internal/entities"
	"github.com/pkg/errors"
)

type ConvertResponse struct {
	Amount        float64     `json:"amount"`
	Base          string      `json:"base"`
	Target        string      `json:"target"`
	Converted     float64     `json:"converted"`
	Rate          *float64    `json:"rate"`
	Average       float64     `json:"average"`
	Days          int         `json:"days"`
	TodayIncluded bool        `json:"today_included"`
	History       []RateEntry `json:"history"`
	Text          string      `json:"text"`
}

type RateEntry struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, pageData{Form: s.defaultForm()})
}

// Convert runs the pipeline for the submitted form. On failure the previous output is
// carried over untouched and only the error banner changes.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid form", err.Error())
		return
	}

	form := readForm(r)
	previous := r.PostForm.Get("output")

	report, err := s.service.Calibrate(r.Context(), toInput(form))
	if err != nil {
		s.renderPage(w, StatusFor(err), pageData{
			Form:   form,
			Output: previous,
			Error:  dialogFor(err),
		})
		return
	}

	src, err := chartsSource(report)
	if err != nil {
		slog.Error("Failed to render charts", "error", err)
	}

	s.renderPage(w, http.StatusOK, pageData{
		Form:      form,
		Output:    report.Text,
		ChartsSrc: src,
	})
}

func (s *Server) Clear(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid form", err.Error())
		return
	}

	s.renderPage(w, http.StatusOK, pageData{Form: readForm(r)})
}

func (s *Server) Charts(w http.ResponseWriter, r *http.Request) {
	form := readQuery(r)

	report, err := s.service.Calibrate(r.Context(), toInput(form))
	if err != nil {
		d := dialogFor(err)
		RespondWithError(w, StatusFor(err), d.Title, d.Message)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.Charts(w, chartsTitle(report), report.Charts); err != nil {
		slog.Error("Failed to render charts", "error", err)
	}
}

func (s *Server) ConvertJSON(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.Calibrate(r.Context(), toInput(readQuery(r)))
	if err != nil {
		RespondWithJSON(w, StatusFor(err), map[string]string{
			"error":   dialogFor(err).Title,
			"message": err.Error(),
		})
		return
	}

	RespondWithJSON(w, http.StatusOK, newConvertResponse(report))
}

func (s *Server) renderPage(w http.ResponseWriter, code int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)

	if err := pageTmpl.Execute(w, data); err != nil {
		slog.Error("Failed to render page", "error", err)
	}
}

func newConvertResponse(report *service.Report) ConvertResponse {
	conv := report.Conversion

	resp := ConvertResponse{
		Amount:        conv.Amount,
		Base:          conv.Base.String(),
		Target:        conv.Target.String(),
		Converted:     conv.Converted,
		Average:       report.Average,
		Days:          report.Request.Days,
		TodayIncluded: report.TodayIncluded,
		History:       make([]RateEntry, len(report.Series)),
		Text:          report.Text,
	}

	if !math.IsNaN(conv.Rate) {
		rate := conv.Rate
		resp.Rate = &rate
	}

	for i, p := range report.Series {
		resp.History[i] = RateEntry{Date: p.Date.Format(entities.DateLayout), Rate: p.Rate}
	}

	return resp
}

func readForm(r *http.Request) formValues {
	return formValues{
		Amount: r.PostForm.Get("amount"),
		Base:   r.PostForm.Get("base"),
		Target: r.PostForm.Get("target"),
		Days:   r.PostForm.Get("days"),
	}
}

func readQuery(r *http.Request) formValues {
	q := r.URL.Query()
	return formValues{
		Amount: q.Get("amount"),
		Base:   q.Get("base"),
		Target: q.Get("target"),
		Days:   q.Get("days"),
	}
}

func toInput(f formValues) service.Input {
	return service.Input{Amount: f.Amount, Base: f.Base, Target: f.Target, Days: f.Days}
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, entities.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrNetwork):
		return http.StatusBadGateway
	case errors.Is(err, entities.ErrData):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func dialogFor(err error) *pageError {
	if errors.Is(err, entities.ErrNetwork) {
		return &pageError{
			Title:   "Network Error",
			Message: "Error while fetching rates.\n\nDetails:\n" + errors.Cause(err).Error(),
		}
	}

	return &pageError{Title: "Error", Message: errors.Cause(err).Error()}
}
