package feedback

import (
	"encoding/json"
	"fmt"
	"net/http"

	"bachaboard/internal/common"
)

type Handler struct {
	feedbackSvc FeedbackService
}

func NewHandler(feedbackSvc FeedbackService) *Handler {
	return &Handler{feedbackSvc: feedbackSvc}
}

type submitRequest struct {
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Category string `json:"category"`
}

// Submit handles POST /api/feedback
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, fmt.Errorf("%w: not authenticated", common.ErrUnauthorized))
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, fmt.Errorf("%w: malformed request body", common.ErrInvalidArgument))
		return
	}

	if err := h.feedbackSvc.Submit(r.Context(), userID, req.Subject, req.Message, req.Category); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteMessage(w, "Thank you for your feedback!")
}

// ListOwn handles GET /api/feedback
func (h *Handler) ListOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, fmt.Errorf("%w: not authenticated", common.ErrUnauthorized))
		return
	}

	entries, err := h.feedbackSvc.ListOwn(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, entries)
}
