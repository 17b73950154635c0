package handler

import (
	"net/http"

	"github.com/bunchesapp/bunches-go/internal/undo"
)

// UndoHandler exposes the undo affordance over HTTP
type UndoHandler struct {
	stack *undo.Stack
}

// NewUndoHandler creates a new undo handler
func NewUndoHandler(stack *undo.Stack) *UndoHandler {
	return &UndoHandler{stack: stack}
}

// UndoStateResponse describes the current undo affordance
type UndoStateResponse struct {
	Visible     bool   `json:"visible"`
	Depth       int    `json:"depth"`
	Description string `json:"description,omitempty"`
}

// UndoPerformedResponse is the response after a successful undo
type UndoPerformedResponse struct {
	Message string `json:"message"`
	Visible bool   `json:"visible"`
	Depth   int    `json:"depth"`
}

// HandleGetState reports whether the affordance is showing and what the next
// undo would revert
func (h *UndoHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	resp := UndoStateResponse{
		Visible: h.stack.Visible(),
		Depth:   h.stack.Len(),
	}
	if desc, ok := h.stack.Peek(); ok {
		resp.Description = desc
	}

	respondJSON(w, http.StatusOK, resp)
}

// HandlePerformUndo reverts the newest recorded action
func (h *UndoHandler) HandlePerformUndo(w http.ResponseWriter, r *http.Request) {
	desc, _ := h.stack.Peek()

	if err := h.stack.PerformUndo(r.Context()); err != nil {
		respondServiceError(w, r, "Undo", err)
		return
	}

	respondJSON(w, http.StatusOK, UndoPerformedResponse{
		Message: "Undid: " + desc,
		Visible: h.stack.Visible(),
		Depth:   h.stack.Len(),
	})
}
