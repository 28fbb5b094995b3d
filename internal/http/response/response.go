package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"crewline/internal/common"
)

func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// Error maps a service error to its HTTP status. Business-rule failures go
// back to the caller as-is; internal failures are logged and masked.
func Error(w http.ResponseWriter, err error) {
	var typed *common.Error
	if !errors.As(err, &typed) {
		typed = common.NewError(common.CodeInternal, "internal error", err)
	}
	if typed.Code == common.CodeInternal {
		log.Error().Err(err).Msg("request failed")
		JSON(w, http.StatusInternalServerError, &common.Error{Code: common.CodeInternal, Message: "internal error"})
		return
	}
	JSON(w, statusFor(typed.Code), typed)
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
