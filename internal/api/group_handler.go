package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/memo-api/internal/api/shared"
	"github.com/phrazzld/memo-api/internal/domain"
	"github.com/phrazzld/memo-api/internal/service"
)

// CreateGroupRequest represents the request body for creating a group
type CreateGroupRequest struct {
	Name        string `json:"name"        validate:"required,min=1"`
	Description string `json:"description" validate:"required,min=1"`
}

// UpdateGroupRequest represents the request body for patching a group.
// Both fields are optional, but at least one must be present; a field
// supplied as an empty string is rejected.
type UpdateGroupRequest struct {
	Name        *string `json:"name,omitempty"        validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
}

// GroupMemoRequest represents the request body for creating or replacing
// a memo inside a group.
type GroupMemoRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// GroupResponse represents the response data for a group
type GroupResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MemoCount   int       `json:"memo_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GroupHandler handles group-related HTTP requests, including the
// group-scoped memo sub-resource
type GroupHandler struct {
	groupService service.GroupService
	logger       *slog.Logger
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupService service.GroupService, log *slog.Logger) *GroupHandler {
	if log == nil {
		log = slog.Default()
	}
	return &GroupHandler{
		groupService: groupService,
		logger:       log.With(slog.String("component", "group_handler")),
	}
}

// CreateGroup handles POST /api/groups requests
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	group, err := h.groupService.CreateGroup(r.Context(), req.Name, req.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, groupToResponse(group))
}

// GetGroup handles GET /api/groups/{id} requests
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "Invalid group ID")
	if !ok {
		return
	}

	group, err := h.groupService.GetGroup(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, groupToResponse(group))
}

// ListGroups handles GET /api/groups requests
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.ListGroups(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]GroupResponse, 0, len(groups))
	for _, group := range groups {
		responses = append(responses, groupToResponse(group))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// UpdateGroup handles PATCH /api/groups/{id} requests
func (h *GroupHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "Invalid group ID")
	if !ok {
		return
	}

	var req UpdateGroupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	group, err := h.groupService.UpdateGroup(r.Context(), id, req.Name, req.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, groupToResponse(group))
}

// DeleteGroup handles DELETE /api/groups/{id} requests. Member memos are
// removed along with the group.
func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "Invalid group ID")
	if !ok {
		return
	}

	if err := h.groupService.DeleteGroup(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddGroupMemo handles POST /api/groups/{id}/memos requests
func (h *GroupHandler) AddGroupMemo(w http.ResponseWriter, r *http.Request) {
	groupID, ok := parseIDParam(w, r, "id", "Invalid group ID")
	if !ok {
		return
	}

	var req GroupMemoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	memo, err := h.groupService.AddMemoToGroup(r.Context(), groupID, req.Text)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, memoToResponse(memo))
}

// ListGroupMemos handles GET /api/groups/{id}/memos requests
func (h *GroupHandler) ListGroupMemos(w http.ResponseWriter, r *http.Request) {
	groupID, ok := parseIDParam(w, r, "id", "Invalid group ID")
	if !ok {
		return
	}

	memos, err := h.groupService.ListGroupMemos(r.Context(), groupID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, memosToResponse(memos))
}

// UpdateGroupMemo handles PUT /api/groups/{id}/memos/{memoID} requests
func (h *GroupHandler) UpdateGroupMemo(w http.ResponseWriter, r *http.Request) {
	groupID, ok := parseIDParam(w, r, "id", "Invalid group ID")
	if !ok {
		return
	}
	memoID, ok := parseIDParam(w, r, "memoID", "Invalid memo ID")
	if !ok {
		return
	}

	var req GroupMemoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	memo, err := h.groupService.UpdateGroupMemo(r.Context(), groupID, memoID, req.Text)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, memoToResponse(memo))
}

// RemoveGroupMemo handles DELETE /api/groups/{id}/memos/{memoID} requests
func (h *GroupHandler) RemoveGroupMemo(w http.ResponseWriter, r *http.Request) {
	groupID, ok := parseIDParam(w, r, "id", "Invalid group ID")
	if !ok {
		return
	}
	memoID, ok := parseIDParam(w, r, "memoID", "Invalid memo ID")
	if !ok {
		return
	}

	if err := h.groupService.RemoveGroupMemo(r.Context(), groupID, memoID); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// groupToResponse converts a domain.Group to a GroupResponse
func groupToResponse(group *domain.Group) GroupResponse {
	return GroupResponse{
		ID:          group.ID.String(),
		Name:        group.Name,
		Description: group.Description,
		MemoCount:   group.MemoCount,
		CreatedAt:   group.CreatedAt,
		UpdatedAt:   group.UpdatedAt,
	}
}
