package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Path parameter error messages
	ErrMsgMissingRecipeID      = "Missing recipe id"
	ErrMsgMissingGroceryItemID = "Missing grocery item id"

	// Share error messages
	ErrMsgExportTargetRequired = "Provide a recipeId or a folder to export"
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	// Recipe messages
	MsgRecipeSavedSuccess     = "Recipe saved"
	MsgRecipeUpdatedSuccess   = "Recipe updated"
	MsgRecipeExtractedSuccess = "Recipe extracted and saved"
	MsgRecipeDeletedSuccess   = "Recipe moved to Recently Deleted"
	MsgRecipeRestoredSuccess  = "Recipe restored"
	MsgRecipePurgedSuccess    = "Recipe permanently removed"
	MsgRecipeMovedSuccess     = "Recipe moved"
	MsgTrashEmptiedSuccess    = "Recently Deleted emptied"

	// Folder messages
	MsgFolderCreatedSuccess = "Folder created"
	MsgFolderRenamedSuccess = "Folder renamed"
	MsgFolderDeletedSuccess = "Folder deleted"

	// Grocery messages
	MsgGroceryItemsAddedSuccess = "Items added to grocery list"
	MsgGroceryItemRemoved       = "Item removed"

	// Share messages
	MsgRecipeImportedSuccess   = "Recipe imported"
	MsgCookbookImportedSuccess = "Cookbook imported"
)

// Undo action labels pushed with grocery mutations. The label doubles as the
// metric-friendly kind and feeds the undo.performed event payload.
const (
	UndoKindGroceryAdd          = "grocery.add"
	UndoKindGroceryToggle       = "grocery.toggle"
	UndoKindGroceryRemove       = "grocery.remove"
	UndoKindGroceryClearChecked = "grocery.clear_checked"
	UndoKindGroceryClearAll     = "grocery.clear_all"
)
