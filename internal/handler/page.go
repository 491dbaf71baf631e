package handler

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/starfolio/internal/contact"
	"github.com/starfolio/internal/model"
)

// FormCookieName identifies a visitor's form across requests.
const FormCookieName = "contact_form"

type formRegistry interface {
	Get(id string) *contact.Form
	Release(id string)
}

// Link is an entry in the contact information or social sections.
type Link struct {
	Label string
	Value string
	Href  string
}

// Profile is the owner's public contact details shown beside the form.
type Profile struct {
	Name    string
	Contact []Link
	Social  []Link
}

type pageData struct {
	Profile Profile
	Values  model.Submission
	Status  contact.Status
}

// PageHandler renders the contact section and handles form posts.
type PageHandler struct {
	logger        *slog.Logger
	forms         formRegistry
	templates     *template.Template
	profile       Profile
	secureCookies bool
}

func NewPageHandler(logger *slog.Logger, forms formRegistry, tmpl *template.Template, profile Profile, secureCookies bool) *PageHandler {
	return &PageHandler{logger: logger, forms: forms, templates: tmpl, profile: profile, secureCookies: secureCookies}
}

// Form renders an empty contact form.
func (h *PageHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.formID(w, r)
	h.render(w, http.StatusOK, pageData{Profile: h.profile})
}

// Submit delivers the posted form and re-renders it with the outcome.
func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	sub := model.SubmissionFromFields(map[string]string{
		model.FieldFromName: r.PostFormValue(model.FieldFromName),
		model.FieldReplyTo:  r.PostFormValue(model.FieldReplyTo),
		model.FieldSubject:  r.PostFormValue(model.FieldSubject),
		model.FieldMessage:  r.PostFormValue(model.FieldMessage),
	})

	id := h.formID(w, r)
	form := h.forms.Get(id)

	// The delivery outlives a dropped connection, as a browser-side send would.
	ctx := context.WithoutCancel(r.Context())
	status, err := form.Submit(ctx, sub)

	code := http.StatusOK
	switch {
	case errors.Is(err, contact.ErrSubmitting):
		code = http.StatusConflict
	case err != nil:
		h.logger.Error("page: submission failed", "err", err)
		code = http.StatusUnprocessableEntity
	}

	values := form.Values()
	if !errors.Is(err, contact.ErrSubmitting) {
		h.forms.Release(id)
	} else {
		values = sub
	}

	h.render(w, code, pageData{Profile: h.profile, Values: values, Status: status})
}

// formID returns the visitor's form id, issuing a new cookie when absent.
func (h *PageHandler) formID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(FormCookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     FormCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return id
}

func (h *PageHandler) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.ExecuteTemplate(w, "contact.html", data); err != nil {
		h.logger.Error("page: template error", "err", err)
	}
}
