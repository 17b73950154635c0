package handler

import (
	"errors"
	"net/http"

	"github.com/bunchesapp/bunches-go/internal/domain"
	"github.com/bunchesapp/bunches-go/internal/event"
	"github.com/bunchesapp/bunches-go/internal/exchange"
	"github.com/bunchesapp/bunches-go/internal/extract"
	"github.com/bunchesapp/bunches-go/internal/logger"
	"github.com/bunchesapp/bunches-go/internal/metrics"
	"github.com/bunchesapp/bunches-go/internal/recipe"
)

// ImportTypeExtracted marks imports that fell through share decoding to URL
// extraction
const ImportTypeExtracted = "extracted"

// ShareHandler handles share code export and import
type ShareHandler struct {
	store     recipe.Store
	extractor extract.Service
}

// NewShareHandler creates a new share handler
func NewShareHandler(store recipe.Store, extractor extract.Service) *ShareHandler {
	return &ShareHandler{
		store:     store,
		extractor: extractor,
	}
}

// ExportRequest asks for a share code for one recipe or a whole folder
type ExportRequest struct {
	RecipeID string `json:"recipeId"`
	Folder   string `json:"folder"`
}

// ExportResponse carries the generated share code
type ExportResponse struct {
	Code  string `json:"code"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// ImportRequest carries pasted share text. The payload may be a share code, a
// raw envelope, or free text containing a recipe URL.
type ImportRequest struct {
	Payload string `json:"payload" validate:"required,notblank"`
}

// ImportResponse reports what an import produced
type ImportResponse struct {
	Message  string          `json:"message"`
	Type     string          `json:"type"`
	Folder   string          `json:"folder,omitempty"`
	Imported int             `json:"imported"`
	Recipes  []domain.Recipe `json:"recipes"`
}

// HandleExport encodes one recipe or a folder's recipes into a share code
func (h *ShareHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Export share code"); err != nil {
		return
	}
	if req.RecipeID == "" && req.Folder == "" {
		respondError(w, http.StatusBadRequest, ErrMsgExportTargetRequired)
		return
	}

	if req.RecipeID != "" {
		rec, err := h.store.Recipe(r.Context(), req.RecipeID)
		if err != nil {
			respondServiceError(w, r, "Export share code", err)
			return
		}

		code, err := exchange.EncodeRecipe(rec)
		if err != nil {
			respondServiceError(w, r, "Export share code", err)
			return
		}

		metrics.ExchangeEncodes.WithLabelValues(exchange.TypeRecipe).Inc()
		respondJSON(w, http.StatusOK, ExportResponse{
			Code:  code,
			Type:  exchange.TypeRecipe,
			Count: 1,
		})
		return
	}

	recipes, err := h.store.FilteredRecipes(r.Context(), req.Folder)
	if err != nil {
		respondServiceError(w, r, "Export share code", err)
		return
	}
	if len(recipes) == 0 {
		respondServiceError(w, r, "Export share code", domain.ErrEmptySelection)
		return
	}

	code, err := exchange.EncodeCookbook(req.Folder, recipes)
	if err != nil {
		respondServiceError(w, r, "Export share code", err)
		return
	}

	metrics.ExchangeEncodes.WithLabelValues(exchange.TypeCookbook).Inc()
	respondJSON(w, http.StatusOK, ExportResponse{
		Code:  code,
		Type:  exchange.TypeCookbook,
		Count: len(recipes),
	})
}

// HandleImport decodes pasted share text and saves what it contains. Payloads
// that are not share codes fall through to URL extraction, so pasting an
// article link also works.
func (h *ShareHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Import share code"); err != nil {
		return
	}

	decoded, err := exchange.Decode(req.Payload)
	if err != nil {
		h.importFallback(w, r, req.Payload, err)
		return
	}

	switch decoded.Type {
	case exchange.TypeRecipe:
		h.importRecipe(w, r, decoded.Recipe)
	case exchange.TypeCookbook:
		h.importCookbook(w, r, decoded.Name, decoded.Recipes)
	default:
		// Decode only returns the two known types; anything else is a bug
		respondServiceError(w, r, "Import share code", domain.ErrUnknownPayloadType)
	}
}

// importRecipe saves a single shared recipe, refiling it under All Recipes
// when its folder is not registered here
func (h *ShareHandler) importRecipe(w http.ResponseWriter, r *http.Request, rec domain.Recipe) {
	target, err := h.reconcileFolder(r, rec.Folder)
	if err != nil {
		respondServiceError(w, r, "Import share code", err)
		return
	}
	rec.Folder = target

	saved, err := h.store.Save(r.Context(), rec, event.RecipeSourceImported)
	if err != nil {
		respondServiceError(w, r, "Import share code", err)
		return
	}

	logger.FromContext(r.Context()).Info("Recipe imported",
		"recipe_id", saved.ID,
		"folder", saved.Folder)

	respondJSON(w, http.StatusCreated, ImportResponse{
		Message:  MsgRecipeImportedSuccess,
		Type:     exchange.TypeRecipe,
		Folder:   saved.Folder,
		Imported: 1,
		Recipes:  []domain.Recipe{saved},
	})
}

// importCookbook recreates the cookbook's folder (unless the name is reserved
// or blank) and files every shared recipe under it
func (h *ShareHandler) importCookbook(w http.ResponseWriter, r *http.Request, name string, recipes []domain.Recipe) {
	target := domain.FolderAllRecipes
	if name != "" && !domain.IsReservedFolder(name) {
		if err := h.store.AddFolder(r.Context(), name); err != nil && !errors.Is(err, domain.ErrFolderExists) {
			respondServiceError(w, r, "Import share code", err)
			return
		}
		target = name
	}

	saved := make([]domain.Recipe, 0, len(recipes))
	for _, rec := range recipes {
		rec.Folder = target
		s, err := h.store.Save(r.Context(), rec, event.RecipeSourceImported)
		if err != nil {
			respondServiceError(w, r, "Import share code", err)
			return
		}
		saved = append(saved, s)
	}

	logger.FromContext(r.Context()).Info("Cookbook imported",
		"folder", target,
		"count", len(saved))

	respondJSON(w, http.StatusCreated, ImportResponse{
		Message:  MsgCookbookImportedSuccess,
		Type:     exchange.TypeCookbook,
		Folder:   target,
		Imported: len(saved),
		Recipes:  saved,
	})
}

// importFallback handles payloads that failed share decoding. Malformed text
// gets one more chance as a URL to extract; version and type errors mean the
// text really was a share code, so they surface directly.
func (h *ShareHandler) importFallback(w http.ResponseWriter, r *http.Request, payload string, decodeErr error) {
	if !errors.Is(decodeErr, domain.ErrMalformedPayload) {
		metrics.ExchangeDecodeFailures.WithLabelValues(decodeFailureReason(decodeErr)).Inc()
		respondServiceError(w, r, "Import share code", decodeErr)
		return
	}

	url, urlErr := extract.FirstURL(payload)
	if urlErr != nil {
		metrics.ExchangeDecodeFailures.WithLabelValues(metrics.DecodeFailureMalformed).Inc()
		respondServiceError(w, r, "Import share code", decodeErr)
		return
	}

	extraction, err := h.extractor.Extract(r.Context(), url)
	if err != nil {
		respondServiceError(w, r, "Import share code", err)
		return
	}

	saved, err := h.store.Save(r.Context(), extract.ToRecipe(extraction, url), event.RecipeSourceExtracted)
	if err != nil {
		respondServiceError(w, r, "Import share code", err)
		return
	}

	logger.FromContext(r.Context()).Info("Import fell through to extraction",
		"recipe_id", saved.ID,
		"url", url)

	respondJSON(w, http.StatusCreated, ImportResponse{
		Message:  MsgRecipeImportedSuccess,
		Type:     ImportTypeExtracted,
		Folder:   saved.Folder,
		Imported: 1,
		Recipes:  []domain.Recipe{saved},
	})
}

// reconcileFolder maps an imported recipe's folder onto this device's
// registry. Unknown folders become All Recipes rather than silently creating
// folders the user never made.
func (h *ShareHandler) reconcileFolder(r *http.Request, folder string) (string, error) {
	if folder == "" || folder == domain.FolderAllRecipes {
		return domain.FolderAllRecipes, nil
	}

	registered, err := h.store.Folders(r.Context())
	if err != nil {
		return "", err
	}
	for _, name := range registered {
		if name == folder {
			return folder, nil
		}
	}
	return domain.FolderAllRecipes, nil
}

// decodeFailureReason buckets decode errors for the failure counter
func decodeFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnsupportedVersion):
		return metrics.DecodeFailureUnsupportedVersion
	case errors.Is(err, domain.ErrUnknownPayloadType):
		return metrics.DecodeFailureUnknownType
	default:
		return metrics.DecodeFailureMalformed
	}
}
