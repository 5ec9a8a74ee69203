package user

import (
	"encoding/json"
	"fmt"
	"net/http"

	"bachaboard/internal/common"
	"bachaboard/internal/dbmysql"
)

// Handler wires the auth and user endpoints to the service layer
type Handler struct {
	userService UserService
}

func NewHandler(userService UserService) *Handler {
	return &Handler{userService: userService}
}

type registerRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Theme       string `json:"theme"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID          uint64  `json:"id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	Theme       string  `json:"theme"`
	AvatarURL   *string `json:"avatar_url"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        userResponse `json:"user"`
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Theme       *string `json:"theme"`
	AvatarURL   *string `json:"avatar_url"`
}

func toUserResponse(u *dbmysql.User) userResponse {
	return userResponse{
		ID:          u.UserID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Theme:       u.Theme,
		AvatarURL:   u.AvatarURL,
	}
}

// Register handles POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, fmt.Errorf("%w: malformed request body", common.ErrInvalidArgument))
		return
	}

	user, err := h.userService.RegisterUser(r.Context(), req.Username, req.Password, req.DisplayName, req.Theme)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// Login handles POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, fmt.Errorf("%w: malformed request body", common.ErrInvalidArgument))
		return
	}

	user, token, err := h.userService.LoginUser(r.Context(), req.Username, req.Password)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserResponse(user),
	})
}

// Me handles GET /api/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, fmt.Errorf("%w: not authenticated", common.ErrUnauthorized))
		return
	}

	user, err := h.userService.ResolveUser(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// ListUsers handles GET /api/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, fmt.Errorf("%w: not authenticated", common.ErrUnauthorized))
		return
	}

	profiles, err := h.userService.ListProfiles(r.Context(), viewerID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, profiles)
}

// GetUser handles GET /api/users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, fmt.Errorf("%w: not authenticated", common.ErrUnauthorized))
		return
	}

	targetID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, err)
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), viewerID, targetID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, profile)
}

// UpdateMe handles PUT /api/users/me
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, fmt.Errorf("%w: not authenticated", common.ErrUnauthorized))
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, fmt.Errorf("%w: malformed request body", common.ErrInvalidArgument))
		return
	}

	if err := h.userService.UpdateProfile(r.Context(), userID, req.DisplayName, req.Theme, req.AvatarURL); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteMessage(w, "Profile updated successfully")
}

// ToggleFollow handles POST /api/users/{id}/follow
func (h *Handler) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, fmt.Errorf("%w: not authenticated", common.ErrUnauthorized))
		return
	}

	targetID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, err)
		return
	}

	message, err := h.userService.ToggleFollow(r.Context(), userID, targetID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteMessage(w, message)
}
