package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/memo-api/internal/api/shared"
	"github.com/phrazzld/memo-api/internal/domain"
	"github.com/phrazzld/memo-api/internal/service"
)

// dateLayout is the format accepted by the start_date/end_date filters.
const dateLayout = "2006-01-02"

// CreateMemoRequest represents the request body for creating a new memo
type CreateMemoRequest struct {
	Text    string  `json:"text"               validate:"required,min=1"`
	GroupID *string `json:"group_id,omitempty" validate:"omitempty,uuid"`
}

// UpdateMemoRequest represents the request body for replacing a memo's
// text. Updates are full replacements; tags are always recomputed from
// the new text.
type UpdateMemoRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// MemoResponse represents the response data for a memo
type MemoResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Tags      []string  `json:"tags"`
	GroupID   *string   `json:"group_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagsResponse represents the response data for the tag listing
type TagsResponse struct {
	Tags []string `json:"tags"`
}

// MemoHandler handles memo- and tag-related HTTP requests
type MemoHandler struct {
	memoService service.MemoService
	logger      *slog.Logger
}

// NewMemoHandler creates a new MemoHandler
func NewMemoHandler(memoService service.MemoService, log *slog.Logger) *MemoHandler {
	if log == nil {
		log = slog.Default()
	}
	return &MemoHandler{
		memoService: memoService,
		logger:      log.With(slog.String("component", "memo_handler")),
	}
}

// CreateMemo handles POST /api/memos requests
func (h *MemoHandler) CreateMemo(w http.ResponseWriter, r *http.Request) {
	var req CreateMemoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	var groupID *uuid.UUID
	if req.GroupID != nil {
		id, err := uuid.Parse(*req.GroupID)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid group ID")
			return
		}
		groupID = &id
	}

	memo, err := h.memoService.CreateMemo(r.Context(), req.Text, groupID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, memoToResponse(memo))
}

// GetMemo handles GET /api/memos/{id} requests
func (h *MemoHandler) GetMemo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "Invalid memo ID")
	if !ok {
		return
	}

	memo, err := h.memoService.GetMemo(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, memoToResponse(memo))
}

// UpdateMemo handles PUT /api/memos/{id} requests
func (h *MemoHandler) UpdateMemo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "Invalid memo ID")
	if !ok {
		return
	}

	var req UpdateMemoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	memo, err := h.memoService.UpdateMemo(r.Context(), id, req.Text)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, memoToResponse(memo))
}

// DeleteMemo handles DELETE /api/memos/{id} requests
func (h *MemoHandler) DeleteMemo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "Invalid memo ID")
	if !ok {
		return
	}

	if err := h.memoService.DeleteMemo(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMemos handles GET /api/memos requests. The result set can be
// narrowed with exactly one of the tag, start_date/end_date, or group_id
// query parameters.
func (h *MemoHandler) ListMemos(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var memos []*domain.Memo
	var err error

	switch {
	case query.Get("tag") != "":
		memos, err = h.memoService.ListMemosByTag(r.Context(), query.Get("tag"))

	case query.Get("start_date") != "" || query.Get("end_date") != "":
		start, parseErr := time.Parse(dateLayout, query.Get("start_date"))
		if parseErr != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"Invalid start_date, expected YYYY-MM-DD")
			return
		}
		end, parseErr := time.Parse(dateLayout, query.Get("end_date"))
		if parseErr != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"Invalid end_date, expected YYYY-MM-DD")
			return
		}
		memos, err = h.memoService.ListMemosByDateRange(r.Context(), start, end)

	case query.Get("group_id") != "":
		groupID, parseErr := uuid.Parse(query.Get("group_id"))
		if parseErr != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid group ID")
			return
		}
		memos, err = h.memoService.ListMemosByGroup(r.Context(), groupID)

	default:
		memos, err = h.memoService.ListMemos(r.Context())
	}

	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, memosToResponse(memos))
}

// ListTags handles GET /api/tags requests
func (h *MemoHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.memoService.ListTags(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TagsResponse{Tags: tags})
}

// parseIDParam parses the named chi URL parameter as a UUID, writing a
// 400 response and returning ok=false when it is malformed.
func parseIDParam(
	w http.ResponseWriter,
	r *http.Request,
	name, message string,
) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, message)
		return uuid.Nil, false
	}
	return id, true
}

// memoToResponse converts a domain.Memo to a MemoResponse
func memoToResponse(memo *domain.Memo) MemoResponse {
	resp := MemoResponse{
		ID:        memo.ID.String(),
		Text:      memo.Text,
		Tags:      memo.Tags,
		CreatedAt: memo.CreatedAt,
		UpdatedAt: memo.UpdatedAt,
	}
	if memo.GroupID != nil {
		groupID := memo.GroupID.String()
		resp.GroupID = &groupID
	}
	return resp
}

// memosToResponse converts a slice of domain memos to responses.
func memosToResponse(memos []*domain.Memo) []MemoResponse {
	responses := make([]MemoResponse, 0, len(memos))
	for _, memo := range memos {
		responses = append(responses, memoToResponse(memo))
	}
	return responses
}
