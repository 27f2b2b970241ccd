package errorhandler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/hotelbook/booking-api/internal/pkg/logger"
	"github.com/hotelbook/booking-api/internal/pkg/response"
)

// HandleError logs the failure and sends a formatted error response.
func HandleError(ctx context.Context, w http.ResponseWriter, status int, code, message string, err error) {
	event := logger.FromContext(ctx).Error().
		Str("request_id", middleware.GetReqID(ctx)).
		Str("error_code", code).
		Int("status_code", status)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(message)

	response.Error(w, status, code, message)
}

// HandleInternal logs err and sends a generic 500.
func HandleInternal(ctx context.Context, w http.ResponseWriter, err error) {
	logger.FromContext(ctx).Error().
		Str("request_id", middleware.GetReqID(ctx)).
		Err(err).
		Msg("Unhandled request error")
	response.InternalError(w)
}

// LogValidationError logs validation errors with details
func LogValidationError(ctx context.Context, fieldErrors map[string]string) {
	errJSON, _ := json.Marshal(fieldErrors)
	logger.FromContext(ctx).Warn().
		Str("request_id", middleware.GetReqID(ctx)).
		RawJSON("validation_errors", errJSON).
		Msg("Validation error")
}

// LogExternalServiceError logs errors from external collaborators (brokers, mail, database).
func LogExternalServiceError(ctx context.Context, service string, err error) {
	logger.FromContext(ctx).Error().
		Str("request_id", middleware.GetReqID(ctx)).
		Str("external_service", service).
		Err(err).
		Msg("External service error")
}
