package server

import (
	"devconnector/internal/avatar"
	"devconnector/internal/middleware"
	"devconnector/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required" msg:"Name is required"`
	Email    string `json:"email" validate:"required,email" msg:"Please include a valid email address."`
	Password string `json:"password" validate:"required,min=6" msg:"Please enter a password with 6 or more characters."`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"Please include a valid email address."`
	Password string `json:"password" validate:"required" msg:"Password is required."`
}

// Register handles POST /api/users.
func (s *Server) Register(c *fiber.Ctx) error {
	ctx := c.Context()

	var req registerRequest
	if !s.bindBody(c, &req) {
		return nil
	}

	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("User already exists"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Avatar:   avatar.URL(req.Email),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeValidation {
			// lost the uniqueness race against a concurrent registration
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"token": token})
}

// Login handles POST /api/auth. Unknown email and wrong password answer with
// the same message on purpose.
func (s *Server) Login(c *fiber.Ctx) error {
	ctx := c.Context()

	var req loginRequest
	if !s.bindBody(c, &req) {
		return nil
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidCredentialsError())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidCredentialsError())
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"token": token})
}

// CurrentUser handles GET /api/auth, returning the authenticated user with
// the password hash omitted.
func (s *Server) CurrentUser(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := middleware.AuthenticatedUser(c)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(user)
}
