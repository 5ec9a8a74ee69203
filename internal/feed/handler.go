package feed

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"bachaboard/internal/common"
	"bachaboard/internal/media"
)

// maxUploadBytes bounds multipart image uploads (10 MiB)
const maxUploadBytes = 10 << 20

// Handler wires the post, reaction, comment, upload and drawing
// endpoints to the feed service and the media gateway.
type Handler struct {
	feedSvc FeedUsecase
	gateway media.Gateway
}

func NewHandler(feedSvc FeedUsecase, gateway media.Gateway) *Handler {
	return &Handler{feedSvc: feedSvc, gateway: gateway}
}

type createPostRequest struct {
	PostType    string  `json:"post_type"`
	Content     *string `json:"content"`
	MediaURL    *string `json:"media_url"`
	DrawingData *string `json:"drawing_data"`
}

type commentRequest struct {
	Content string `json:"content"`
}

type reactionRequest struct {
	Emoji string `json:"emoji"`
}

type saveDrawingRequest struct {
	DrawingData string `json:"drawing_data"` // canvas state, stored opaquely
	ImageData   string `json:"image_data"`   // base64 encoded PNG
}

// GetFeed handles GET /api/posts/feed?skip&limit
func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, fmt.Errorf("%w: not authenticated", common.ErrUnauthorized))
		return
	}

	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 20)

	posts, err := h.feedSvc.ComposeFeed(r.Context(), viewerID, skip, limit)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, posts)
}

// CreatePost handles POST /api/posts
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	authorID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, fmt.Errorf("%w: not authenticated", common.ErrUnauthorized))
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, fmt.Errorf("%w: malformed request body", common.ErrInvalidArgument))
		return
	}

	postID, err := h.feedSvc.CreatePost(r.Context(), authorID, req.PostType, req.Content, req.MediaURL, req.DrawingData)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"id":      postID,
		"message": "Post created successfully",
	})
}

// GetPost handles GET /api/posts/{id}
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, fmt.Errorf("%w: not authenticated", common.ErrUnauthorized))
		return
	}

	postID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, err)
		return
	}

	post, err := h.feedSvc.ComposeSinglePost(r.Context(), postID, viewerID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, post)
}

// DeletePost handles DELETE /api/posts/{id}
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, fmt.Errorf("%w: not authenticated", common.ErrUnauthorized))
		return
	}

	postID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, err)
		return
	}

	if err := h.feedSvc.DeletePost(r.Context(), postID, requesterID); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteMessage(w, "Post deleted successfully")
}

// AddComment handles POST /api/posts/{id}/comment
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	authorID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, fmt.Errorf("%w: not authenticated", common.ErrUnauthorized))
		return
	}

	postID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, err)
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, fmt.Errorf("%w: malformed request body", common.ErrInvalidArgument))
		return
	}

	if _, err := h.feedSvc.AddComment(r.Context(), postID, authorID, req.Content); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteMessage(w, "Comment added successfully")
}

// React handles POST /api/posts/{id}/react
func (h *Handler) React(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, fmt.Errorf("%w: not authenticated", common.ErrUnauthorized))
		return
	}

	postID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, err)
		return
	}

	var req reactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, fmt.Errorf("%w: malformed request body", common.ErrInvalidArgument))
		return
	}

	message, err := h.feedSvc.ReactToPost(r.Context(), postID, userID, req.Emoji)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteMessage(w, message)
}

// ListComments handles GET /api/posts/{id}/comments
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	if _, ok := common.UserIDFromContext(r.Context()); !ok {
		common.WriteError(w, fmt.Errorf("%w: not authenticated", common.ErrUnauthorized))
		return
	}

	postID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, err)
		return
	}

	comments, err := h.feedSvc.ListComments(r.Context(), postID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, comments)
}

// UploadImage handles POST /api/posts/upload-image, delegating the blob
// to the media gateway and returning the durable URL.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, fmt.Errorf("%w: not authenticated", common.ErrUnauthorized))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		common.WriteError(w, fmt.Errorf("%w: invalid multipart payload", common.ErrInvalidArgument))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		common.WriteError(w, fmt.Errorf("%w: file field is required", common.ErrInvalidArgument))
		return
	}
	defer file.Close()

	url, err := h.gateway.StoreImage(r.Context(), "posts", userID, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}

// SaveDrawing handles POST /api/drawings/save: decode the rendered canvas
// image, store it through the media gateway and echo back the canvas
// state so the client can keep editing later.
func (h *Handler) SaveDrawing(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, fmt.Errorf("%w: not authenticated", common.ErrUnauthorized))
		return
	}

	var req saveDrawingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, fmt.Errorf("%w: malformed request body", common.ErrInvalidArgument))
		return
	}

	// accept both bare base64 and data-URL form ("data:image/png;base64,...")
	imageData := req.ImageData
	if idx := strings.IndexByte(imageData, ','); idx >= 0 {
		imageData = imageData[idx+1:]
	}

	decoded, err := base64.StdEncoding.DecodeString(imageData)
	if err != nil {
		common.WriteError(w, fmt.Errorf("%w: failed to save drawing: %v", common.ErrInvalidArgument, err))
		return
	}

	filename := fmt.Sprintf("drawing_%d.png", userID)
	url, err := h.gateway.StoreImage(r.Context(), "drawings", userID, filename, "image/png", bytes.NewReader(decoded))
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{
		"image_url":    url,
		"drawing_data": req.DrawingData,
	})
}

// AutoSaveDrawing handles POST /api/drawings/auto-save. In-progress canvas
// state is kept client-side; the endpoint just acknowledges.
func (h *Handler) AutoSaveDrawing(w http.ResponseWriter, r *http.Request) {
	if _, ok := common.UserIDFromContext(r.Context()); !ok {
		common.WriteError(w, fmt.Errorf("%w: not authenticated", common.ErrUnauthorized))
		return
	}

	common.WriteMessage(w, "Drawing auto-saved")
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
