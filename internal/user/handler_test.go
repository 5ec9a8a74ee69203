package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bachaboard/internal/common"
	"bachaboard/internal/dbmysql"
)

func authedRequest(method, target string, body string, userID uint64) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(common.ContextWithUser(req.Context(), userID, "tester"))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestHandler_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSvc := NewMockUserService(ctrl)
	h := NewHandler(mockSvc)

	t.Run("happy path", func(t *testing.T) {
		mockSvc.EXPECT().RegisterUser(gomock.Any(), "alice", "secret123", "Alice", "neutral").
			Return(&dbmysql.User{UserID: 1, Username: "alice", DisplayName: "Alice", Theme: "neutral"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			strings.NewReader(`{"username":"alice","password":"secret123","display_name":"Alice","theme":"neutral"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, float64(1), body["id"])
		assert.Equal(t, "alice", body["username"])
	})

	t.Run("duplicate becomes 409 with detail body", func(t *testing.T) {
		mockSvc.EXPECT().RegisterUser(gomock.Any(), "bob", "secret123", "Bob", "").
			Return(nil, common.ErrConflict)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			strings.NewReader(`{"username":"bob","password":"secret123","display_name":"Bob"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		body := decodeBody(t, rec)
		assert.NotEmpty(t, body["detail"])
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{not json`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSvc := NewMockUserService(ctrl)
	h := NewHandler(mockSvc)

	t.Run("returns bearer token with embedded user", func(t *testing.T) {
		mockSvc.EXPECT().LoginUser(gomock.Any(), "alice", "secret123").
			Return(&dbmysql.User{UserID: 1, Username: "alice", DisplayName: "Alice"}, "tok123", nil)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"username":"alice","password":"secret123"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "tok123", body["access_token"])
		assert.Equal(t, "bearer", body["token_type"])
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "alice", user["username"])
	})

	t.Run("bad credentials are a 401", func(t *testing.T) {
		mockSvc.EXPECT().LoginUser(gomock.Any(), "alice", "wrong").
			Return(nil, "", common.ErrUnauthorized)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"username":"alice","password":"wrong"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSvc := NewMockUserService(ctrl)
	h := NewHandler(mockSvc)

	t.Run("resolves the context identity", func(t *testing.T) {
		mockSvc.EXPECT().ResolveUser(gomock.Any(), uint64(7)).
			Return(&dbmysql.User{UserID: 7, Username: "tester", DisplayName: "Tester"}, nil)

		rec := httptest.NewRecorder()
		h.Me(rec, authedRequest(http.MethodGet, "/api/auth/me", "", 7))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, float64(7), body["id"])
	})

	t.Run("no identity in context", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Me(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_ToggleFollow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSvc := NewMockUserService(ctrl)
	h := NewHandler(mockSvc)

	t.Run("relays the toggle message", func(t *testing.T) {
		mockSvc.EXPECT().ToggleFollow(gomock.Any(), uint64(1), uint64(2)).
			Return("Now following Bob", nil)

		req := mux.SetURLVars(authedRequest(http.MethodPost, "/api/users/2/follow", "", 1), map[string]string{"id": "2"})
		rec := httptest.NewRecorder()
		h.ToggleFollow(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Now following Bob", body["message"])
	})

	t.Run("self follow is a 400", func(t *testing.T) {
		mockSvc.EXPECT().ToggleFollow(gomock.Any(), uint64(1), uint64(1)).
			Return("", common.ErrInvalidArgument)

		req := mux.SetURLVars(authedRequest(http.MethodPost, "/api/users/1/follow", "", 1), map[string]string{"id": "1"})
		rec := httptest.NewRecorder()
		h.ToggleFollow(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_UpdateMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSvc := NewMockUserService(ctrl)
	h := NewHandler(mockSvc)

	mockSvc.EXPECT().UpdateProfile(gomock.Any(), uint64(3), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uint64, displayName, theme, avatarURL *string) error {
			require.NotNil(t, displayName)
			assert.Equal(t, "New Name", *displayName)
			require.NotNil(t, theme)
			assert.Equal(t, "pokemon", *theme)
			assert.Nil(t, avatarURL)
			return nil
		})

	rec := httptest.NewRecorder()
	h.UpdateMe(rec, authedRequest(http.MethodPut, "/api/users/me",
		`{"display_name":"New Name","theme":"pokemon"}`, 3))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Profile updated successfully", body["message"])
}
