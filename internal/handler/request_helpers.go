package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/osse101/SlotHouse_Go/internal/logger"
)

type ctxKey string

const userIDKey ctxKey = "authenticatedUserID"

// WithUserID stores the authenticated user on the request context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user, if any
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// requireUserID writes a 401 when the request carries no authenticated user.
// If ok is false, the HTTP response has already been written and the handler should return.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := UserIDFromContext(r.Context())
	if !ok {
		id = strings.TrimSpace(r.Header.Get(HeaderUserID))
		ok = id != ""
	}
	if !ok {
		logger.FromContext(r.Context()).Warn("Missing user identity", "path", r.URL.Path)
		respondError(w, http.StatusUnauthorized, ErrMsgMissingUserID)
		return "", false
	}
	return id, true
}

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req PlayRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Play"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		log.Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// getPagination reads the limit and offset query parameters.
// Missing values become 0 so the service applies its defaults.
func getPagination(w http.ResponseWriter, r *http.Request) (limit, offset int, ok bool) {
	limit, ok = getQueryInt(w, r, "limit", ErrMsgInvalidLimit)
	if !ok {
		return 0, 0, false
	}
	offset, ok = getQueryInt(w, r, "offset", ErrMsgInvalidOffset)
	if !ok {
		return 0, 0, false
	}
	return limit, offset, true
}

func getQueryInt(w http.ResponseWriter, r *http.Request, key, errMsg string) (int, bool) {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return 0, true
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		respondError(w, http.StatusBadRequest, errMsg)
		return 0, false
	}
	return val, true
}

// idempotencyKey reads the optional Idempotency-Key header
func idempotencyKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	key := strings.TrimSpace(r.Header.Get(HeaderIdempotencyKey))
	if len(key) > MaxIdempotencyKeyLength || strings.IndexFunc(key, func(c rune) bool { return !unicode.IsPrint(c) }) >= 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidIdempotencyKey)
		return "", false
	}
	return key, true
}
