package server

import (
	"time"

	"devconnector/internal/middleware"
	"devconnector/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateComment handles POST /api/posts/comment/:id and returns the post's
// full comment list, newest first.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := middleware.AuthenticatedUser(c)

	var req postRequest
	if !s.bindBody(c, &req) {
		return nil
	}

	post, err := s.loadPost(c)
	if post == nil {
		return err
	}

	user, uerr := s.users.GetByID(ctx, userID)
	if uerr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, uerr)
	}

	post.AddComment(models.Comment{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
		Date:   time.Now().UTC(),
	})
	if err := s.posts.Save(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(post.Comments)
}

// DeleteComment handles DELETE /api/posts/comment/:id/:comment_id. The
// comment is addressed by its own id, and only its author may remove it.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := middleware.AuthenticatedUser(c)

	commentID, err := s.parseObjectID(c, "comment_id", "Comment does not exist")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	post, perr := s.loadPost(c)
	if post == nil {
		return perr
	}

	comment := post.FindComment(commentID)
	if comment == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Comment does not exist"))
	}
	if !comment.AuthoredBy(userID) {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewForbiddenError("User not authorized"))
	}

	post.RemoveComment(commentID)
	if err := s.posts.Save(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(post.Comments)
}
