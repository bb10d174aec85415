package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/warden/internal/rbac/service"
	"github.com/aussiebroadwan/warden/pkg/httpx"
	"github.com/aussiebroadwan/warden/pkg/slogx"
	"github.com/aussiebroadwan/warden/pkg/wardensdk"
)

var kindStatus = map[service.Kind]int{
	service.KindNotFound:     http.StatusNotFound,
	service.KindConflict:     http.StatusConflict,
	service.KindUnauthorized: http.StatusUnauthorized,
	service.KindForbidden:    http.StatusForbidden,
	service.KindValidation:   http.StatusBadRequest,
}

// writeError maps a service failure onto the error envelope. Anything that is
// not a domain error is logged and hidden behind server_error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *service.Error
	if !errors.As(err, &domainErr) {
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, wardensdk.ErrorResponse{
			Error:   "server_error",
			Message: "internal server error",
		})
		return
	}

	body := wardensdk.ErrorResponse{Error: domainErr.Code, Message: domainErr.Message}

	var locked *service.LockedOutError
	if errors.As(err, &locked) {
		body.RemainingLockoutSeconds = locked.RemainingSeconds()
		w.Header().Set("Retry-After", strconv.FormatInt(body.RemainingLockoutSeconds, 10))
	}

	var invalid *service.ValidationError
	if errors.As(err, &invalid) {
		body.Details = invalid.Fields
	}

	status, ok := kindStatus[domainErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	httpx.WriteJSON(w, status, body)
}

// writeBadJSON answers a body DecodeJSON rejected.
func writeBadJSON(w http.ResponseWriter, err error) {
	httpx.WriteJSON(w, http.StatusBadRequest, wardensdk.ErrorResponse{
		Error:   "invalid_json",
		Message: err.Error(),
	})
}
