package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mercato/mercato/application/port/inbound"
	"github.com/mercato/mercato/domain/entity"
	"github.com/mercato/mercato/infrastructure/http/middleware"
	"github.com/mercato/mercato/infrastructure/http/response"
	"github.com/mercato/mercato/infrastructure/http/validator"
	"github.com/mercato/mercato/infrastructure/service/logger"
)

type UserHandler struct {
	userUseCase inbound.UserUseCase
	logger      logger.Logger
}

func NewUserHandler(userUseCase inbound.UserUseCase, log logger.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      log,
	}
}

// List is admin-only. Pagination uses skip/limit with a hard cap so a
// single request cannot pull the whole table.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := inbound.ListUsersRequest{
		Skip:   parseIntParam(query.Get("skip"), 0),
		Limit:  clampLimit(parseIntParam(query.Get("limit"), 20)),
		Role:   query.Get("role"),
		Search: query.Get("search"),
	}

	if raw := query.Get("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			response.UnprocessableEntity(w, "is_active must be true or false")
			return
		}
		req.IsActive = &active
	}

	if req.Role != "" {
		if _, ok := entity.ParseRole(req.Role); !ok {
			response.UnprocessableEntity(w, "Unknown role")
			return
		}
	}

	users, err := h.userUseCase.List(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved", users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.userUseCase.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "User retrieved", user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h.applyUpdate(w, r, id)
}

// UpdateMe lets any authenticated account edit its own profile without
// knowing its numeric ID.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	actor := middleware.IdentityFrom(r.Context())
	if actor == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}
	h.applyUpdate(w, r, actor.ID)
}

func (h *UserHandler) applyUpdate(w http.ResponseWriter, r *http.Request, targetID int64) {
	actor := middleware.IdentityFrom(r.Context())
	if actor == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req inbound.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.Email != nil && !validator.ValidateEmail(*req.Email) {
		response.UnprocessableEntity(w, "Invalid email address")
		return
	}
	if req.Username != nil && !validator.ValidateUsername(*req.Username) {
		response.UnprocessableEntity(w, "Username must be 3-50 characters (letters, digits, '_', '.', '-')")
		return
	}
	if req.FullName != nil && !validator.ValidateFullName(*req.FullName) {
		response.UnprocessableEntity(w, "Full name must be 2-100 characters")
		return
	}
	if req.Password != nil && !validator.ValidatePassword(*req.Password) {
		response.UnprocessableEntity(w, "Password must be 6-100 characters")
		return
	}

	user, err := h.userUseCase.Update(r.Context(), targetID, actor, req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "User updated", user)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	role, ok := entity.ParseRole(req.Role)
	if !ok {
		response.UnprocessableEntity(w, "Unknown role")
		return
	}

	user, err := h.userUseCase.UpdateRole(r.Context(), id, role)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Role updated", user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	actor := middleware.IdentityFrom(r.Context())
	if actor == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.userUseCase.Delete(r.Context(), id, actor); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "User deactivated", nil)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.IdentityFrom(r.Context())
	if user == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if !validator.ValidateRequired(req.CurrentPassword) {
		response.UnprocessableEntity(w, "Current password is required")
		return
	}
	if !validator.ValidatePassword(req.NewPassword) {
		response.UnprocessableEntity(w, "New password must be 6-100 characters")
		return
	}

	if err := h.userUseCase.ChangePassword(r.Context(), user, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Password changed", nil)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid id")
		return 0, false
	}
	return id, true
}

func parseIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}
