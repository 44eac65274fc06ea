package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/config"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/response"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/repository"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/service"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/testutil"
)

func setupUserHandler(t *testing.T) (*UserHandler, *testContext, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	userService := service.NewUserService(repository.NewUserRepository(db), nil, &config.Config{})
	handler := NewUserHandler(userService)

	ctx := &testContext{DB: db}

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return handler, ctx, cleanup
}

func TestUserHandler_GetProfile(t *testing.T) {
	handler, ctx, cleanup := setupUserHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB, testutil.WithKarma(42))

	router := gin.New()
	router.GET("/user/profile", mockAuth(user.ID), handler.GetProfile)

	req := httptest.NewRequest("GET", "/user/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, user.Username, data["username"])
	assert.Equal(t, float64(42), data["karma"])
	assert.Equal(t, *user.Email, data["email"])
}

func TestUserHandler_GetPublicProfile(t *testing.T) {
	handler, ctx, cleanup := setupUserHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	router := gin.New()
	router.GET("/users/:id", handler.GetPublicProfile)

	req := httptest.NewRequest("GET", fmt.Sprintf("/users/%d", user.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusOK, w.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, user.Username, data["username"])
	// Public profile should not expose the email address
	_, hasEmail := data["email"]
	assert.False(t, hasEmail)
}

func TestUserHandler_GetPublicProfile_InvalidID(t *testing.T) {
	handler, _, cleanup := setupUserHandler(t)
	defer cleanup()

	router := gin.New()
	router.GET("/users/:id", handler.GetPublicProfile)

	req := httptest.NewRequest("GET", "/users/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestUserHandler_GetPublicProfile_NotFound(t *testing.T) {
	handler, _, cleanup := setupUserHandler(t)
	defer cleanup()

	router := gin.New()
	router.GET("/users/:id", handler.GetPublicProfile)

	req := httptest.NewRequest("GET", "/users/99999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	handler, ctx, cleanup := setupUserHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	router := gin.New()
	router.PUT("/user/profile", mockAuth(user.ID), handler.UpdateProfile)

	newBio := "Practicing English every day"
	w := performRequest(router, "PUT", "/user/profile", map[string]interface{}{
		"bio": newBio,
	})

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, newBio, data["bio"])
}

func TestUserHandler_UpdateProfile_UsernameTaken(t *testing.T) {
	handler, ctx, cleanup := setupUserHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	other := testutil.TestUser(t, ctx.DB)

	router := gin.New()
	router.PUT("/user/profile", mockAuth(user.ID), handler.UpdateProfile)

	w := performRequest(router, "PUT", "/user/profile", map[string]interface{}{
		"username": other.Username,
	})

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestUserHandler_UploadAvatar_MissingFile(t *testing.T) {
	handler, ctx, cleanup := setupUserHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	router := gin.New()
	router.POST("/user/avatar", mockAuth(user.ID), handler.UploadAvatar)

	req := httptest.NewRequest("POST", "/user/avatar", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestUserHandler_UploadAvatar_InvalidContentType(t *testing.T) {
	handler, ctx, cleanup := setupUserHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	router := gin.New()
	router.POST("/user/avatar", mockAuth(user.ID), handler.UploadAvatar)

	body, contentType := multipartFile(t, "avatar.txt", []byte("plain text"))
	req := httptest.NewRequest("POST", "/user/avatar", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeParamError, resp.Code)
}
