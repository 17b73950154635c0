package handler

import (
	"net/http"

	"github.com/bunchesapp/bunches-go/internal/recipe"
)

// FolderHandler handles folder HTTP endpoints
type FolderHandler struct {
	store recipe.Store
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(store recipe.Store) *FolderHandler {
	return &FolderHandler{store: store}
}

// AddFolderRequest is the request body for creating a folder
type AddFolderRequest struct {
	Name string `json:"name" validate:"required,notblank,max=80"`
}

// RenameFolderRequest is the request body for renaming a folder
type RenameFolderRequest struct {
	From string `json:"from" validate:"required,notblank"`
	To   string `json:"to" validate:"required,notblank,max=80"`
}

// DeleteFolderRequest is the request body for deleting a folder
type DeleteFolderRequest struct {
	Name string `json:"name" validate:"required,notblank"`
}

// FolderListResponse is the response for the folder listing
type FolderListResponse struct {
	Folders []string       `json:"folders"`
	Counts  map[string]int `json:"counts"`
}

// HandleListFolders returns the registered custom folders plus recipe counts
// for every view, built-in views included
func (h *FolderHandler) HandleListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.store.Folders(r.Context())
	if err != nil {
		respondServiceError(w, r, "List folders", err)
		return
	}

	counts, err := h.store.FolderCounts(r.Context())
	if err != nil {
		respondServiceError(w, r, "List folders", err)
		return
	}

	respondJSON(w, http.StatusOK, FolderListResponse{
		Folders: folders,
		Counts:  counts,
	})
}

// HandleAddFolder registers a new custom folder
func (h *FolderHandler) HandleAddFolder(w http.ResponseWriter, r *http.Request) {
	var req AddFolderRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add folder"); err != nil {
		return
	}

	if err := h.store.AddFolder(r.Context(), req.Name); err != nil {
		respondServiceError(w, r, "Add folder", err)
		return
	}

	respondJSON(w, http.StatusCreated, SuccessResponse{Message: MsgFolderCreatedSuccess})
}

// HandleRenameFolder renames a custom folder and refiles its recipes
func (h *FolderHandler) HandleRenameFolder(w http.ResponseWriter, r *http.Request) {
	var req RenameFolderRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Rename folder"); err != nil {
		return
	}

	if err := h.store.RenameFolder(r.Context(), req.From, req.To); err != nil {
		respondServiceError(w, r, "Rename folder", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgFolderRenamedSuccess})
}

// HandleDeleteFolder removes a custom folder; its recipes fall back to All Recipes
func (h *FolderHandler) HandleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	var req DeleteFolderRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Delete folder"); err != nil {
		return
	}

	moved, err := h.store.DeleteFolder(r.Context(), req.Name)
	if err != nil {
		respondServiceError(w, r, "Delete folder", err)
		return
	}

	respondJSON(w, http.StatusOK, CountResponse{
		Message: MsgFolderDeletedSuccess,
		Count:   moved,
	})
}
