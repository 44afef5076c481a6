package server

import (
	"errors"

	"devconnector/internal/middleware"
	"devconnector/internal/models"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Text string `json:"text" validate:"required" msg:"Text is required"`
}

// CreatePost handles POST /api/posts. The author's current name and avatar
// are snapshotted onto the post.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := middleware.AuthenticatedUser(c)

	var req postRequest
	if !s.bindBody(c, &req) {
		return nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	post := &models.Post{
		UserID: userID,
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(post)
}

// ListPosts handles GET /api/posts, most recent first.
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.posts.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id.
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.loadPost(c)
	if post == nil {
		return err
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id. Only the author may delete.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := middleware.AuthenticatedUser(c)

	post, err := s.loadPost(c)
	if post == nil {
		return err
	}

	if !post.OwnedBy(userID) {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewForbiddenError("User not authorized"))
	}

	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"msg": "Post removed"})
}

// LikePost handles PUT /api/posts/like/:id. A user may like a post at most
// once.
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := middleware.AuthenticatedUser(c)

	post, err := s.loadPost(c)
	if post == nil {
		return err
	}

	if post.LikedBy(userID) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewBadRequestError("Post already liked"))
	}

	post.AddLike(userID)
	if err := s.posts.Save(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(post.Likes)
}

// UnlikePost handles PUT /api/posts/unlike/:id.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := middleware.AuthenticatedUser(c)

	post, err := s.loadPost(c)
	if post == nil {
		return err
	}

	if !post.LikedBy(userID) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewBadRequestError("Post hasn't been liked"))
	}

	post.RemoveLike(userID)
	if err := s.posts.Save(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(post.Likes)
}

// loadPost resolves the :id route param to a post, writing the error
// response on failure. Callers return the error whenever the post is nil.
func (s *Server) loadPost(c *fiber.Ctx) (*models.Post, error) {
	postID, err := s.parseObjectID(c, "id", "Post not found")
	if err != nil {
		return nil, models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	post, err := s.posts.GetByID(c.Context(), postID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil, models.RespondWithError(c, fiber.StatusNotFound, appErr)
		}
		return nil, models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return post, nil
}
