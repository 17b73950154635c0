package handler

import (
	"net/http"

	"github.com/bunchesapp/bunches-go/internal/domain"
	"github.com/bunchesapp/bunches-go/internal/event"
	"github.com/bunchesapp/bunches-go/internal/extract"
	"github.com/bunchesapp/bunches-go/internal/logger"
	"github.com/bunchesapp/bunches-go/internal/recipe"
)

// RecipeHandler handles recipe HTTP endpoints
type RecipeHandler struct {
	store     recipe.Store
	extractor extract.Service
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(store recipe.Store, extractor extract.Service) *RecipeHandler {
	return &RecipeHandler{
		store:     store,
		extractor: extractor,
	}
}

// RecipePayload is the request body for saving or updating a recipe
type RecipePayload struct {
	Title        string                    `json:"title" validate:"required,notblank,max=200"`
	Ingredients  domain.IngredientSections `json:"ingredients"`
	Instructions []string                  `json:"instructions"`
	PrepTime     string                    `json:"prepTime"`
	CookTime     string                    `json:"cookTime"`
	TotalTime    string                    `json:"totalTime"`
	Servings     string                    `json:"servings"`
	SourceURL    string                    `json:"sourceUrl" validate:"omitempty,url"`
	Folder       string                    `json:"folder"`
	IsFavorite   bool                      `json:"isFavorite"`
}

func (p RecipePayload) toRecipe() domain.Recipe {
	return domain.Recipe{
		Title:        p.Title,
		Ingredients:  p.Ingredients,
		Instructions: p.Instructions,
		PrepTime:     p.PrepTime,
		CookTime:     p.CookTime,
		TotalTime:    p.TotalTime,
		Servings:     p.Servings,
		SourceURL:    p.SourceURL,
		Folder:       p.Folder,
		IsFavorite:   p.IsFavorite,
	}
}

// ExtractRecipeRequest is the request body for URL extraction
type ExtractRecipeRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// BulkDeleteRequest is the request body for deleting several recipes at once
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// MoveRecipeRequest is the request body for moving a recipe between folders
type MoveRecipeRequest struct {
	Folder string `json:"folder" validate:"required,notblank"`
}

// RecipeListResponse is the response for the filtered recipe list
type RecipeListResponse struct {
	Folder  string          `json:"folder"`
	Recipes []domain.Recipe `json:"recipes"`
	Counts  map[string]int  `json:"counts"`
}

// RecipeResponse is the response wrapping a single recipe
type RecipeResponse struct {
	Message string        `json:"message"`
	Recipe  domain.Recipe `json:"recipe"`
}

// CountResponse is the response for operations that report how many
// recipes they touched
type CountResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// HandleListRecipes returns the recipes visible in a folder plus per-folder counts.
// The folder query parameter defaults to "All Recipes".
func (h *RecipeHandler) HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	folder := GetOptionalQueryParam(r, "folder", domain.FolderAllRecipes)

	recipes, err := h.store.FilteredRecipes(r.Context(), folder)
	if err != nil {
		respondServiceError(w, r, "List recipes", err)
		return
	}

	counts, err := h.store.FolderCounts(r.Context())
	if err != nil {
		respondServiceError(w, r, "List recipes", err)
		return
	}

	respondJSON(w, http.StatusOK, RecipeListResponse{
		Folder:  folder,
		Recipes: recipes,
		Counts:  counts,
	})
}

// HandleSaveRecipe saves a manually entered recipe
func (h *RecipeHandler) HandleSaveRecipe(w http.ResponseWriter, r *http.Request) {
	var req RecipePayload
	if err := DecodeAndValidateRequest(r, w, &req, "Save recipe"); err != nil {
		return
	}

	saved, err := h.store.Save(r.Context(), req.toRecipe(), event.RecipeSourceManual)
	if err != nil {
		respondServiceError(w, r, "Save recipe", err)
		return
	}

	respondJSON(w, http.StatusCreated, RecipeResponse{
		Message: MsgRecipeSavedSuccess,
		Recipe:  saved,
	})
}

// HandleUpdateRecipe replaces an existing recipe's editable fields
func (h *RecipeHandler) HandleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathID(r, w, ErrMsgMissingRecipeID)
	if !ok {
		return
	}

	var req RecipePayload
	if err := DecodeAndValidateRequest(r, w, &req, "Update recipe"); err != nil {
		return
	}

	current, err := h.store.Recipe(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Update recipe", err)
		return
	}

	updated := req.toRecipe()
	updated.ID = current.ID
	updated.DeletedAt = current.DeletedAt
	updated.ExtractedAt = current.ExtractedAt
	if updated.Folder == "" {
		updated.Folder = current.Folder
	}

	if err := h.store.Update(r.Context(), updated); err != nil {
		respondServiceError(w, r, "Update recipe", err)
		return
	}

	respondJSON(w, http.StatusOK, RecipeResponse{
		Message: MsgRecipeUpdatedSuccess,
		Recipe:  updated,
	})
}

// HandleExtractRecipe extracts a recipe from a URL and saves it. Nothing is
// persisted when extraction fails.
func (h *RecipeHandler) HandleExtractRecipe(w http.ResponseWriter, r *http.Request) {
	var req ExtractRecipeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Extract recipe"); err != nil {
		return
	}

	extraction, err := h.extractor.Extract(r.Context(), req.URL)
	if err != nil {
		respondServiceError(w, r, "Extract recipe", err)
		return
	}

	saved, err := h.store.Save(r.Context(), extract.ToRecipe(extraction, req.URL), event.RecipeSourceExtracted)
	if err != nil {
		respondServiceError(w, r, "Extract recipe", err)
		return
	}

	logger.FromContext(r.Context()).Info("Recipe extracted and saved",
		"recipe_id", saved.ID,
		"url", req.URL)

	respondJSON(w, http.StatusCreated, RecipeResponse{
		Message: MsgRecipeExtractedSuccess,
		Recipe:  saved,
	})
}

// HandleDeleteRecipe moves a recipe to Recently Deleted
func (h *RecipeHandler) HandleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathID(r, w, ErrMsgMissingRecipeID)
	if !ok {
		return
	}

	if err := h.store.SoftDelete(r.Context(), id); err != nil {
		respondServiceError(w, r, "Delete recipe", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRecipeDeletedSuccess})
}

// HandleRestoreRecipe brings a recipe back from Recently Deleted
func (h *RecipeHandler) HandleRestoreRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathID(r, w, ErrMsgMissingRecipeID)
	if !ok {
		return
	}

	if err := h.store.Restore(r.Context(), id); err != nil {
		respondServiceError(w, r, "Restore recipe", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRecipeRestoredSuccess})
}

// HandleToggleFavorite flips a recipe's favorite flag and returns the recipe
func (h *RecipeHandler) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathID(r, w, ErrMsgMissingRecipeID)
	if !ok {
		return
	}

	updated, err := h.store.ToggleFavorite(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Toggle favorite", err)
		return
	}

	respondJSON(w, http.StatusOK, RecipeResponse{
		Message: MsgRecipeUpdatedSuccess,
		Recipe:  updated,
	})
}

// HandleMoveRecipe files a recipe under a different folder
func (h *RecipeHandler) HandleMoveRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathID(r, w, ErrMsgMissingRecipeID)
	if !ok {
		return
	}

	var req MoveRecipeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Move recipe"); err != nil {
		return
	}

	if err := h.store.MoveToFolder(r.Context(), id, req.Folder); err != nil {
		respondServiceError(w, r, "Move recipe", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRecipeMovedSuccess})
}

// HandleBulkDelete tombstones every live recipe in the id list
func (h *RecipeHandler) HandleBulkDelete(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Bulk delete"); err != nil {
		return
	}

	count, err := h.store.BulkDelete(r.Context(), req.IDs)
	if err != nil {
		respondServiceError(w, r, "Bulk delete", err)
		return
	}

	respondJSON(w, http.StatusOK, CountResponse{
		Message: MsgRecipeDeletedSuccess,
		Count:   count,
	})
}

// HandlePermanentlyDelete removes a tombstoned recipe for good
func (h *RecipeHandler) HandlePermanentlyDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathID(r, w, ErrMsgMissingRecipeID)
	if !ok {
		return
	}

	if err := h.store.PermanentlyDelete(r.Context(), id); err != nil {
		respondServiceError(w, r, "Permanently delete recipe", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRecipePurgedSuccess})
}

// HandleEmptyTrash permanently removes everything in Recently Deleted
func (h *RecipeHandler) HandleEmptyTrash(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.EmptyTrash(r.Context())
	if err != nil {
		respondServiceError(w, r, "Empty trash", err)
		return
	}

	respondJSON(w, http.StatusOK, CountResponse{
		Message: MsgTrashEmptiedSuccess,
		Count:   count,
	})
}
