package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/postforge/postforge/internal/models"
	"github.com/postforge/postforge/internal/service"
	"github.com/postforge/postforge/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPostService struct {
	createErr error
	post      *models.Post
	items     []*transfer.PostListItem
}

func (s *stubPostService) Create(ctx context.Context, userID int64, draft *transfer.PostDraft) (*models.Post, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.post, nil
}

func (s *stubPostService) List(ctx context.Context, userID int64) ([]*transfer.PostListItem, error) {
	return s.items, nil
}

func (s *stubPostService) PostInfo(ctx context.Context, postID, userID int64) (*models.Post, error) {
	if s.post == nil {
		return nil, service.ErrPostNotFound
	}
	return s.post, nil
}

func (s *stubPostService) Update(ctx context.Context, postID, userID int64, update *transfer.PostUpdate) (*models.Post, error) {
	if s.post == nil {
		return nil, service.ErrPostNotFound
	}
	return s.post, nil
}

func (s *stubPostService) Duplicate(ctx context.Context, postID, userID int64) (*models.Post, error) {
	if s.post == nil {
		return nil, service.ErrPostNotFound
	}
	return s.post, nil
}

func (s *stubPostService) Remove(ctx context.Context, postID, userID int64) error {
	if s.post == nil {
		return service.ErrPostNotFound
	}
	return nil
}

func newTestApp(svc service.PostService) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "1")
		return c.Next()
	})

	h := NewPostHandler(svc)
	app.Get("/api/posts", h.ListPosts)
	app.Post("/api/posts/create", h.CreatePost)
	app.Post("/api/posts/update", h.UpdatePost)
	app.Post("/api/posts/duplicate", h.DuplicatePost)
	app.Post("/api/posts/remove", h.RemovePost)
	return app
}

func TestCreatePost_ReturnsCreatedPost(t *testing.T) {
	svc := &stubPostService{post: &models.Post{ID: 3, Title: "T", Content: "C"}}
	app := newTestApp(svc)

	body, _ := json.Marshal(transfer.PostDraft{Title: "T", Content: "C", Platform: "twitter", PostType: "news"})
	req := httptest.NewRequest("POST", "/api/posts/create", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, int64(3), created.ID)
}

func TestCreatePost_ValidationErrorsKeyedByField(t *testing.T) {
	svc := &stubPostService{
		createErr: &service.ValidationError{Fields: map[string]string{
			"title":    "title is required",
			"platform": "platform must be instagram, twitter or facebook",
		}},
	}
	app := newTestApp(svc)

	req := httptest.NewRequest("POST", "/api/posts/create", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var payload struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Contains(t, payload.Errors, "title")
	assert.Contains(t, payload.Errors, "platform")
}

func TestListPosts_ReturnsItems(t *testing.T) {
	svc := &stubPostService{items: []*transfer.PostListItem{
		{ID: 1, Title: "A", FormattedStatus: "Rascunho", FormattedPlatform: "Twitter"},
	}}
	app := newTestApp(svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/posts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), `"formatted_status":"Rascunho"`)
}

func TestPostDetail_UnknownPostIs404(t *testing.T) {
	app := newTestApp(&stubPostService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/posts?id=42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRemovePost_NotFound(t *testing.T) {
	app := newTestApp(&stubPostService{})

	resp, err := app.Test(httptest.NewRequest("POST", "/api/posts/remove?id=42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDuplicatePost_Created(t *testing.T) {
	svc := &stubPostService{post: &models.Post{ID: 9, Title: "T (Cópia)", Status: models.PostStatusDraft}}
	app := newTestApp(svc)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/posts/duplicate?id=3", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var dup models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dup))
	assert.Equal(t, "T (Cópia)", dup.Title)
	assert.Equal(t, models.PostStatusDraft, dup.Status)
}
