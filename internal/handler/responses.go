package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bunchesapp/bunches-go/internal/domain"
	"github.com/bunchesapp/bunches-go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, the body is all we can drop
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped
// status/message pair for it. opName names the operation for the log line.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error(opName+" failed", "error", err)
	statusCode, userMsg := mapServiceErrorToUserMessage(err)
	respondError(w, statusCode, userMsg)
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	// Recipe messages
	ErrMsgRecipeNotFoundError   = "Recipe not found"
	ErrMsgRecipeNotDeletedError = "Only recipes in Recently Deleted can be removed permanently"

	// Folder messages
	ErrMsgFolderNotFoundError  = "Folder not found"
	ErrMsgFolderExistsError    = "A folder with that name already exists"
	ErrMsgFolderNameEmptyError = "Folder name cannot be empty"
	ErrMsgFolderReservedError  = "That folder is built in and cannot be changed"

	// Selection messages
	ErrMsgEmptySelectionError = "Nothing to do - the selection is empty"

	// Grocery messages
	ErrMsgGroceryItemNotFoundError = "Grocery item not found"

	// Undo messages
	ErrMsgNothingToUndoError = "Nothing to undo"

	// Share messages
	ErrMsgUnsupportedVersionError = "This share code needs a newer version of the app"
	ErrMsgMalformedPayloadError   = "That does not look like a valid share code"
	ErrMsgUnknownPayloadTypeError = "Unrecognized share code type"

	// Extraction messages
	ErrMsgNoURLFoundError       = "No link found in that text"
	ErrMsgExtractionFailedError = "Could not extract a recipe from that link"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
// This function converts internal service errors to appropriate HTTP status codes and messages
// that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	// Check for specific domain errors
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound):
		return http.StatusNotFound, ErrMsgRecipeNotFoundError
	case errors.Is(err, domain.ErrRecipeNotDeleted):
		return http.StatusBadRequest, ErrMsgRecipeNotDeletedError
	case errors.Is(err, domain.ErrFolderNotFound):
		return http.StatusNotFound, ErrMsgFolderNotFoundError
	case errors.Is(err, domain.ErrFolderExists):
		return http.StatusConflict, ErrMsgFolderExistsError
	case errors.Is(err, domain.ErrFolderNameEmpty):
		return http.StatusBadRequest, ErrMsgFolderNameEmptyError
	case errors.Is(err, domain.ErrFolderReserved):
		return http.StatusBadRequest, ErrMsgFolderReservedError
	case errors.Is(err, domain.ErrEmptySelection):
		return http.StatusBadRequest, ErrMsgEmptySelectionError
	case errors.Is(err, domain.ErrGroceryItemNotFound):
		return http.StatusNotFound, ErrMsgGroceryItemNotFoundError
	case errors.Is(err, domain.ErrNothingToUndo):
		return http.StatusBadRequest, ErrMsgNothingToUndoError
	case errors.Is(err, domain.ErrUnsupportedVersion):
		return http.StatusBadRequest, ErrMsgUnsupportedVersionError
	case errors.Is(err, domain.ErrMalformedPayload):
		return http.StatusBadRequest, ErrMsgMalformedPayloadError
	case errors.Is(err, domain.ErrUnknownPayloadType):
		return http.StatusBadRequest, ErrMsgUnknownPayloadTypeError
	case errors.Is(err, domain.ErrNoURLFound):
		return http.StatusBadRequest, ErrMsgNoURLFoundError
	case errors.Is(err, domain.ErrExtractionFailed):
		return http.StatusBadGateway, ErrMsgExtractionFailedError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	// Surface short error messages as-is so tests and fakes stay readable
	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
