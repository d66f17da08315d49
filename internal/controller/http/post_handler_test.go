package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"swarmpost/internal/entity"
	"swarmpost/internal/repo"
	"swarmpost/internal/usecase"
	"swarmpost/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostUseCase is a mock implementation of usecase.PostUseCase
type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) CreatePost(ctx context.Context, id, title, content string, image *multipart.FileHeader) (*entity.Post, error) {
	args := m.Called(ctx, id, title, content, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetPost(id string) (*entity.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) ListPosts() ([]*entity.Post, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) UpdatePost(id string, title, content *string) (*entity.Post, error) {
	args := m.Called(id, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) DeletePost(id string) (*entity.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

var _ usecase.PostUseCase = (*MockPostUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCreatePost(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", handler.CreatePost)

	mockUseCase.On("CreatePost", mock.Anything, "", "Hello", "World", (*multipart.FileHeader)(nil)).
		Return(&entity.Post{ID: "post-123", Title: "Hello", Content: "World"}, nil)

	body, contentType := multipartBody(t, map[string]string{"title": "Hello", "content": "World"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", body)
	req.Header.Set("Content-Type", contentType)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response entity.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "post-123", response.ID)

	mockUseCase.AssertExpectations(t)
}

func TestCreatePost_Conflict(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", handler.CreatePost)

	mockUseCase.On("CreatePost", mock.Anything, "post-123", "", "", (*multipart.FileHeader)(nil)).
		Return(nil, repo.ErrPostExists)

	body, contentType := multipartBody(t, map[string]string{"id": "post-123"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", body)
	req.Header.Set("Content-Type", contentType)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetPost(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/:id", handler.GetPost)

	mockUseCase.On("GetPost", "post-123").
		Return(&entity.Post{ID: "post-123", Title: "Hello"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-123", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello")
}

func TestGetPost_NotFound(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/:id", handler.GetPost)

	mockUseCase.On("GetPost", "nope").Return(nil, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/nope", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPosts(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts", handler.ListPosts)

	mockUseCase.On("ListPosts").Return([]*entity.Post{
		{ID: "a", Title: "one"},
		{ID: "b", Title: "two"},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Posts []*entity.Post `json:"posts"`
		Count int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Count)
	assert.Len(t, response.Posts, 2)
}

func TestUpdatePost(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/posts/:id", handler.UpdatePost)

	content := "Updated"
	mockUseCase.On("UpdatePost", "post-123", (*string)(nil), &content).
		Return(&entity.Post{ID: "post-123", Content: "Updated"}, nil)

	payload, _ := json.Marshal(map[string]string{"content": "Updated"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/posts/post-123", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Updated")
}

func TestUpdatePost_NotFound(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/posts/:id", handler.UpdatePost)

	mockUseCase.On("UpdatePost", "nope", mock.Anything, mock.Anything).Return(nil, nil)

	payload, _ := json.Marshal(map[string]string{"content": "x"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/posts/nope", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePost(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.DELETE("/posts/:id", handler.DeletePost)

	mockUseCase.On("DeletePost", "post-123").
		Return(&entity.Post{ID: "post-123"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/posts/post-123", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "post-123")
}

func TestDeletePost_NotFound(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.DELETE("/posts/:id", handler.DeletePost)

	mockUseCase.On("DeletePost", "nope").Return(nil, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/posts/nope", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
