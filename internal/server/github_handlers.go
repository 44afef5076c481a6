package server

import (
	"errors"

	"devconnector/internal/github"
	"devconnector/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GithubRepos handles GET /api/profile/github/:username, proxying the user's
// five most recent public repositories.
func (s *Server) GithubRepos(c *fiber.Ctx) error {
	username := c.Params("username")

	repos, err := s.github.Repos(c.Context(), username)
	if err != nil {
		if errors.Is(err, github.ErrNoProfile) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("No Github profile found"))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	c.Type("json")
	return c.Send(repos)
}
