package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Recipe errors
	ErrMsgRecipeNotFound   = "recipe not found"
	ErrMsgRecipeNotDeleted = "recipe is not in the trash"

	// Folder errors
	ErrMsgFolderNotFound  = "folder not found"
	ErrMsgFolderExists    = "folder already exists"
	ErrMsgFolderNameEmpty = "folder name is empty"
	ErrMsgFolderReserved  = "folder name is reserved"

	// Selection errors
	ErrMsgEmptySelection = "selection is empty"

	// Grocery errors
	ErrMsgGroceryItemNotFound = "grocery item not found"

	// Undo errors
	ErrMsgNothingToUndo = "nothing to undo"

	// Exchange payload errors
	ErrMsgUnsupportedVersion = "unsupported payload version"
	ErrMsgMalformedPayload   = "malformed payload"
	ErrMsgUnknownPayloadType = "unknown payload type"

	// Extraction errors
	ErrMsgNoURLFound       = "no url found in text"
	ErrMsgExtractionFailed = "extraction failed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Recipe errors
	ErrRecipeNotFound   = errors.New(ErrMsgRecipeNotFound)
	ErrRecipeNotDeleted = errors.New(ErrMsgRecipeNotDeleted)

	// Folder errors
	ErrFolderNotFound  = errors.New(ErrMsgFolderNotFound)
	ErrFolderExists    = errors.New(ErrMsgFolderExists)
	ErrFolderNameEmpty = errors.New(ErrMsgFolderNameEmpty)
	ErrFolderReserved  = errors.New(ErrMsgFolderReserved)

	// Selection errors
	ErrEmptySelection = errors.New(ErrMsgEmptySelection)

	// Grocery errors
	ErrGroceryItemNotFound = errors.New(ErrMsgGroceryItemNotFound)

	// Undo errors
	ErrNothingToUndo = errors.New(ErrMsgNothingToUndo)

	// Exchange payload errors
	ErrUnsupportedVersion = errors.New(ErrMsgUnsupportedVersion)
	ErrMalformedPayload   = errors.New(ErrMsgMalformedPayload)
	ErrUnknownPayloadType = errors.New(ErrMsgUnknownPayloadType)

	// Extraction errors
	ErrNoURLFound       = errors.New(ErrMsgNoURLFound)
	ErrExtractionFailed = errors.New(ErrMsgExtractionFailed)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
