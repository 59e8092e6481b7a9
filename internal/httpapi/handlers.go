package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/intl"
)

type handlers struct {
	formatter    *intl.Formatter
	logger       *slog.Logger
	maxBodyBytes int64
}

type formatRequest struct {
	Pattern *string        `json:"pattern"`
	Values  map[string]any `json:"values"`
	Locale  string         `json:"locale"`
}

type formatResponse struct {
	Result string `json:"result"`
}

type normalizeRequest struct {
	Pattern *string `json:"pattern"`
}

type token struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
}

type normalizeResponse struct {
	Pattern string  `json:"pattern"`
	Tokens  []token `json:"tokens"`
}

func (h *handlers) format(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Pattern == nil {
		writeError(w, http.StatusBadRequest, "bad_request", "pattern is required", 0)
		return
	}

	locale := req.Locale
	if locale == "" {
		locale = acceptLanguage(r)
	}

	out, err := h.formatter.Format(locale, *req.Pattern, req.Values)
	if err != nil {
		h.formatError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formatResponse{Result: out})
}

func (h *handlers) normalize(w http.ResponseWriter, r *http.Request) {
	var req normalizeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Pattern == nil {
		writeError(w, http.StatusBadRequest, "bad_request", "pattern is required", 0)
		return
	}

	n := intl.Normalize(*req.Pattern)
	resp := normalizeResponse{Pattern: n.Pattern, Tokens: make([]token, 0, n.Tokens.Len())}
	for i, name := range n.Tokens.Names() {
		resp.Tokens = append(resp.Tokens, token{Name: name, Index: i})
	}
	writeJSON(w, http.StatusOK, resp)
}

// decode reads a JSON body. Numbers are kept as json.Number so large
// integers reach the engine intact.
func (h *handlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "bad_request", "request body too large", 0)
			return false
		}
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error(), 0)
		return false
	}
	return true
}

func (h *handlers) formatError(w http.ResponseWriter, r *http.Request, err error) {
	var fe *intl.Error
	switch {
	case errors.As(err, &fe) && errors.Is(err, intl.ErrCannotInstantiateFormatter):
		writeError(w, http.StatusUnprocessableEntity, "cannot_instantiate_formatter", fe.Message, fe.Code)
	case errors.As(err, &fe) && errors.Is(err, intl.ErrCannotFormat):
		writeError(w, http.StatusUnprocessableEntity, "cannot_format", fe.Message, fe.Code)
	default:
		h.logger.ErrorContext(r.Context(), "format failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "internal", "internal error", 0)
	}
}

// acceptLanguage returns the preferred tag from Accept-Language, or "".
func acceptLanguage(r *http.Request) string {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return ""
	}
	return tags[0].String()
}
