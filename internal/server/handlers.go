package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/deltafood/delta/internal/contact"
	siteerrors "github.com/deltafood/delta/internal/errors"
	"github.com/deltafood/delta/internal/ui"
	"github.com/deltafood/delta/internal/version"
)

// SectionInfo describes a registered section in the /sections listing.
type SectionInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Path        string `json:"path"`
}

// HealthResponse is the /healthz body.
type HealthResponse struct {
	Status          string    `json:"status"`
	Version         string    `json:"version"`
	Sections        int       `json:"sections"`
	Sessions        int       `json:"sessions"`
	ContentLoadedAt time.Time `json:"content_loaded_at"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) newView() ui.View {
	v := ui.NewView(s.store.Catalog(), s.config.Carousel.WidePageSize)
	v.Live = true
	return v
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	templ.Handler(ui.Page(s.newView(), s.sections)).ServeHTTP(w, r)
}

func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	all := s.sections.All()
	out := make([]SectionInfo, 0, len(all))
	for _, sec := range all {
		out = append(out, SectionInfo{
			Name:        sec.Name,
			Description: sec.Description,
			Path:        "/sections/" + sec.Name,
		})
	}
	s.writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	sec, ok := s.sections.Get(name)
	if !ok {
		err := siteerrors.NewValidationError("name", siteerrors.CodeUnknownSection, "unknown section "+name)
		s.writeError(w, r, http.StatusNotFound, err)
		return
	}
	templ.Handler(ui.Fragment(s.newView(), sec)).ServeHTTP(w, r)
}

// handleContact is the form fallback for browsers without the live
// connection. It answers with the full page showing the outcome.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, http.StatusBadRequest,
			siteerrors.NewValidationError("", siteerrors.CodeInvalidPayload, "malformed form body"))
		return
	}
	form := contact.Form{
		Name:    r.PostFormValue(contact.FieldName),
		Phone:   r.PostFormValue(contact.FieldPhone),
		Email:   r.PostFormValue(contact.FieldEmail),
		Message: r.PostFormValue(contact.FieldMessage),
	}

	ctl := &contact.Controller{}
	status := http.StatusOK
	if err := ctl.Submit(form); err != nil {
		status = http.StatusUnprocessableEntity
	} else {
		id, err := s.submitter.Submit(r.Context(), form)
		ctl.Resolve(err)
		if err != nil {
			s.logger.Warn(r.Context(), err, "Contact submission failed")
			status = http.StatusBadGateway
		} else {
			s.logger.Info(r.Context(), "Contact submission accepted", "submission_id", id)
		}
	}

	v := s.newView()
	v.Contact = ctl
	templ.Handler(ui.Page(v, s.sections), templ.WithStatus(status)).ServeHTTP(w, r)
}

func (s *Server) handleNewsletter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, http.StatusBadRequest,
			siteerrors.NewValidationError("", siteerrors.CodeInvalidPayload, "malformed form body"))
		return
	}

	n := &contact.Newsletter{}
	status := http.StatusOK
	if err := n.Subscribe(r.PostFormValue(contact.FieldEmail)); err != nil {
		status = http.StatusUnprocessableEntity
	}

	v := s.newView()
	v.Newsletter = n
	templ.Handler(ui.Page(v, s.sections), templ.WithStatus(status)).ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:          "ok",
		Version:         version.Get().Short(),
		Sections:        s.sections.Count(),
		Sessions:        s.live.Count(),
		ContentLoadedAt: s.store.LoadedAt(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn(r.Context(), err, "Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	body := errorResponse{Code: "ERR_INTERNAL", Message: err.Error()}
	var siteErr *siteerrors.SiteError
	if errors.As(err, &siteErr) {
		body.Code = siteErr.Code
		body.Message = siteErr.Message
	}
	s.writeJSON(w, r, status, body)
}
