package user

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Dmc0125/task-app/internal/middleware"
	"github.com/Dmc0125/task-app/internal/session"
)

const testUserID = 42

type fakeStore struct {
	profiles map[int64]*Profile
}

func (s *fakeStore) DefaultProfile(_ context.Context, userID int64) (*Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

type failingStore struct{}

func (failingStore) DefaultProfile(context.Context, int64) (*Profile, error) {
	return nil, errors.New("connection refused")
}

func testRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	codec := session.NewCodec("test-signature-key")

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.RequireAuth(codec))
	NewHandler(store).RegisterRoutes(api)
	return r
}

func doGet(router *gin.Engine, authenticated bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/user", nil)
	if authenticated {
		codec := session.NewCodec("test-signature-key")
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: codec.Issue(testUserID)})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetUser(t *testing.T) {
	avatar := "https://cdn.example.com/a.png"
	store := &fakeStore{profiles: map[int64]*Profile{
		testUserID: {ProviderType: "discord", Username: "octo", Avatar: &avatar},
	}}

	rec := doGet(testRouter(store), true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"success": true,
		"data": {
			"provider_type": "discord",
			"username": "octo",
			"avatar": "https://cdn.example.com/a.png"
		}
	}`, rec.Body.String())
}

func TestGetUser_NoAvatar(t *testing.T) {
	store := &fakeStore{profiles: map[int64]*Profile{
		testUserID: {ProviderType: "google", Username: ""},
	}}

	rec := doGet(testRouter(store), true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"success": true,
		"data": {"provider_type": "google", "username": "", "avatar": null}
	}`, rec.Body.String())
}

func TestGetUser_Unauthenticated(t *testing.T) {
	rec := doGet(testRouter(&fakeStore{}), false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Not authenticated"}`, rec.Body.String())
}

func TestGetUser_MissingProfileIsServerError(t *testing.T) {
	rec := doGet(testRouter(&fakeStore{profiles: map[int64]*Profile{}}), true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Unknown error"}`, rec.Body.String())
}

func TestGetUser_StoreFailure(t *testing.T) {
	rec := doGet(testRouter(failingStore{}), true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Unknown error"}`, rec.Body.String())
}
