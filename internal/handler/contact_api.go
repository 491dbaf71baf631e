package handler

import (
	"log/slog"
	"net/http"
)

const (
	receivedMessage   = "Message received! I'll get back to you soon."
	apiFailureMessage = "Failed to send message. Please try again or contact me directly via email."
)

// ContactAPIHandler serves the fallback endpoint. It logs what it receives and
// acknowledges it; nothing is stored or mailed.
type ContactAPIHandler struct {
	BaseHandler
}

func NewContactAPIHandler(logger *slog.Logger) *ContactAPIHandler {
	return &ContactAPIHandler{BaseHandler: BaseHandler{Logger: logger}}
}

// Submit accepts any single JSON value. Objects are the normal case, but
// arrays and scalars are acknowledged too.
func (h *ContactAPIHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body any
	if err := h.readJSON(w, r, &body); err != nil {
		h.logError(r, err)
		h.reply(w, r, http.StatusInternalServerError, false, apiFailureMessage)
		return
	}

	h.Logger.Info("contact api: submission received", "body", body)
	h.reply(w, r, http.StatusOK, true, receivedMessage)
}

func (h *ContactAPIHandler) reply(w http.ResponseWriter, r *http.Request, status int, success bool, message string) {
	if err := h.writeJSON(w, status, envelope{"success": success, "message": message}); err != nil {
		h.logError(r, err)
	}
}
