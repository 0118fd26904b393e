package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/raysh454/caselookup/internal/fetcher"
	"github.com/raysh454/caselookup/internal/logging"
	"github.com/raysh454/caselookup/internal/model"
	"github.com/raysh454/caselookup/internal/utils"
)

// validationError is a client mistake; it maps to 400 and is raised before
// any outbound request.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func invalid(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

// locatorFromBody accepts either {"url": ...} or
// {"case_type", "case_number", "filing_year"} and returns a validated
// locator. When url is present it wins.
func (s *Server) locatorFromBody(raw []byte) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return "", invalid("request body must be a JSON object")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", invalid("request body must be a JSON object")
	}

	if rawURL, ok := fields["url"]; ok {
		var u string
		if err := json.Unmarshal(rawURL, &u); err != nil {
			return "", invalid("url must be a string")
		}
		loc, err := utils.ParseLocator(u)
		if err != nil {
			return "", invalid("invalid url: %v", err)
		}
		return loc.String(), nil
	}

	_, hasType := fields["case_type"]
	_, hasNumber := fields["case_number"]
	_, hasYear := fields["filing_year"]
	if !hasType && !hasNumber && !hasYear {
		return "", invalid("url or case_type, case_number and filing_year are required")
	}

	var q model.CaseQuery
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"case_type", &q.CaseType},
		{"case_number", &q.CaseNumber},
		{"filing_year", &q.FilingYear},
	} {
		v, ok := fields[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			return "", invalid("%s must be a string", f.key)
		}
	}
	if err := q.Validate(); err != nil {
		return "", invalid("%v", err)
	}

	loc, err := utils.BuildCaseLocator(s.cfg.CaseURLTemplate, q)
	if err != nil {
		// A broken template is our fault, not the caller's.
		return "", fmt.Errorf("build case locator: %w", err)
	}
	return loc, nil
}

// handleLookup godoc
// @Summary      Look up a case
// @Description  Fetches the court's case status page and extracts parties, dates and order links. Accepts either a direct url or the case form fields.
// @Tags         lookups
// @Accept       json
// @Produce      json
// @Param        body  body      LookupBody  true  "url, or case_type + case_number + filing_year"
// @Success      200   {object}  model.CaseRecord
// @Failure      400   {object}  model.ErrorResponse
// @Failure      502   {object}  model.ErrorResponse
// @Router       /fetch [post]
// @Router       /fetch-case [post]
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "request body too large or unreadable")
		return
	}

	locator, err := s.locatorFromBody(body)
	if err != nil {
		var ve *validationError
		if errors.As(err, &ve) {
			s.logger.Warn("rejected lookup request",
				logging.Field{Key: "request_id", Value: reqID},
				logging.Field{Key: "reason", Value: ve.msg})
			writeError(w, http.StatusBadRequest, ve.msg)
			return
		}
		s.logger.Error("building locator", logging.Field{Key: "error", Value: err})
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	rec, err := s.fetcher.FetchCase(r.Context(), locator)
	if err != nil {
		status, msg := lookupFailure(err)
		s.logger.Warn("lookup failed",
			logging.Field{Key: "request_id", Value: reqID},
			logging.Field{Key: "url", Value: locator},
			logging.Field{Key: "error", Value: err})
		writeError(w, status, msg)
		return
	}

	s.logger.Info("lookup succeeded",
		logging.Field{Key: "request_id", Value: reqID},
		logging.Field{Key: "url", Value: locator},
		logging.Field{Key: "orders", Value: len(rec.Orders)})
	writeJSON(w, http.StatusOK, rec)
}

// lookupFailure maps a FetchCase error to a status and a user-facing message.
func lookupFailure(err error) (int, string) {
	var le *fetcher.LookupError
	if errors.As(err, &le) {
		return http.StatusBadGateway, le.Message
	}
	return http.StatusInternalServerError, "internal error"
}

// handleHealth godoc
// @Summary  Liveness check
// @Tags     meta
// @Produce  json
// @Success  200  {object}  HealthResponse
// @Router   /healthz [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
