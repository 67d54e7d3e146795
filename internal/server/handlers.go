// Package server provides the HTTP handlers and server setup for the blog API.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"blogapi/internal/core"
	"blogapi/internal/posts"
)

// Handler holds the HTTP handlers
type Handler struct {
	store posts.Store
}

// NewHandler creates a new handler backed by the given store
func NewHandler(store posts.Store) *Handler {
	return &Handler{store: store}
}

// postResponse is the external shape of a post: exactly these five fields,
// with the author rendered as a single display string.
type postResponse struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Author  string    `json:"author"`
	Content string    `json:"content"`
	Created time.Time `json:"created"`
}

func toResponse(p *core.Post) postResponse {
	return postResponse{
		ID:      p.ID,
		Title:   p.Title,
		Author:  p.Author.Display(),
		Content: p.Content,
		Created: p.Created,
	}
}

// ListPosts handles GET /posts
func (h *Handler) ListPosts(c echo.Context) error {
	all, err := h.store.List(c.Request().Context())
	if err != nil {
		return handleError(c, core.NewInternalError("failed to list posts", err))
	}

	// Always an array, never null, even when the store is empty.
	result := make([]postResponse, 0, len(all))
	for _, p := range all {
		result = append(result, toResponse(p))
	}
	return c.JSON(http.StatusOK, result)
}

// CreatePost handles POST /posts
func (h *Handler) CreatePost(c echo.Context) error {
	var input core.PostInput
	if err := c.Bind(&input); err != nil {
		return handleError(c, core.NewInvalidRequestError("invalid request body: "+err.Error(), err))
	}
	if err := input.Validate(); err != nil {
		return handleError(c, err)
	}

	post, err := h.store.Insert(c.Request().Context(), input)
	if err != nil {
		return handleError(c, core.NewInternalError("failed to create post", err))
	}
	return c.JSON(http.StatusCreated, toResponse(post))
}

// UpdatePost handles PUT /posts/:id
func (h *Handler) UpdatePost(c echo.Context) error {
	id := c.Param("id")

	var update core.PostUpdate
	if err := c.Bind(&update); err != nil {
		return handleError(c, core.NewInvalidRequestError("invalid request body: "+err.Error(), err))
	}
	if err := update.Validate(); err != nil {
		return handleError(c, err)
	}

	matched, err := h.store.Update(c.Request().Context(), id, update)
	if err != nil {
		return handleError(c, core.NewInternalError("failed to update post", err))
	}
	if !matched {
		return handleError(c, core.NewNotFoundError("post not found: "+id))
	}
	return c.NoContent(http.StatusNoContent)
}

// DeletePost handles DELETE /posts/:id
func (h *Handler) DeletePost(c echo.Context) error {
	id := c.Param("id")

	deleted, err := h.store.Delete(c.Request().Context(), id)
	if err != nil {
		return handleError(c, core.NewInternalError("failed to delete post", err))
	}
	if !deleted {
		return handleError(c, core.NewNotFoundError("post not found: "+id))
	}
	return c.NoContent(http.StatusNoContent)
}

// Health handles GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleError converts domain errors to appropriate HTTP responses
func handleError(c echo.Context, err error) error {
	var apiErr *core.APIError
	if errors.As(err, &apiErr) {
		return c.JSON(apiErr.HTTPStatusCode(), apiErr.ToJSON())
	}

	// Fallback for unexpected errors
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error": map[string]interface{}{
			"type":    "internal_error",
			"message": "an unexpected error occurred",
		},
	})
}
