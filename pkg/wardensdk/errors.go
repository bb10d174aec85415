package wardensdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response decoded from ErrorResponse.
type APIError struct {
	StatusCode int
	ErrorResponse
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("warden: %d %s", e.StatusCode, e.ErrorResponse.Error)
	}
	return fmt.Sprintf("warden: %d %s: %s", e.StatusCode, e.ErrorResponse.Error, e.Message)
}

// Code returns the machine readable error code, e.g. "account_locked".
func (e *APIError) Code() string { return e.ErrorResponse.Error }

func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, &apiErr.ErrorResponse); err != nil || apiErr.ErrorResponse.Error == "" {
		apiErr.ErrorResponse = ErrorResponse{
			Error:   strings.ReplaceAll(strings.ToLower(http.StatusText(resp.StatusCode)), " ", "_"),
			Message: strings.TrimSpace(string(body)),
		}
	}
	return apiErr
}
