package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// legacyFeedFlag gates the unpaginated response skin kept for the
// animated-grid client. When enabled and the request carries no
// pagination or filter parameters, GET /api/posts returns a bare array.
const legacyFeedFlag = "legacy_feed"

// GetPosts handles GET /api/posts?page=&limit=&search=&category=
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	in := parseListQuery(c)

	bareRequest := c.Query("page") == "" && c.Query("limit") == "" &&
		in.Search == "" && in.Category == ""
	if bareRequest && s.featureFlags.Enabled(legacyFeedFlag, c.IP()) {
		posts, err := s.postService.ListRecent(ctx)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(posts)
	}

	result, err := s.postService.ListPosts(ctx, in)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()
	id := c.Params("id")

	post, err := s.postService.GetPost(ctx, id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	id := c.Params("id")

	// Pointer fields distinguish "omitted" from "set to empty".
	var req struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		Category *string `json:"category"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		ID:       id,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id. Deletion reports success even
// when the record was already absent.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	id := c.Params("id")

	if err := s.postService.DeletePost(ctx, id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}
