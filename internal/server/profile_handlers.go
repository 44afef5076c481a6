package server

import (
	"time"

	"devconnector/internal/middleware"
	"devconnector/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type profileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status" validate:"required" msg:"Status is required"`
	Skills         string `json:"skills"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

type experienceRequest struct {
	Title       string     `json:"title" validate:"required" msg:"Title is required"`
	Company     string     `json:"company" validate:"required" msg:"Company is required"`
	Location    string     `json:"location"`
	From        *time.Time `json:"from" validate:"required" msg:"From date is required"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type educationRequest struct {
	School       string     `json:"school" validate:"required" msg:"School is required"`
	Degree       string     `json:"degree" validate:"required" msg:"Degree is required"`
	FieldOfStudy string     `json:"fieldofstudy" validate:"required" msg:"Field of Study is required"`
	From         *time.Time `json:"from" validate:"required" msg:"From date is required"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

// GetMyProfile handles GET /api/profile/me.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := middleware.AuthenticatedUser(c)

	profile, err := s.profiles.GetByUser(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if profile == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewBadRequestError("There is no profile for this user"))
	}

	s.attachOwner(c, profile)
	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profile: update the existing profile in
// place, or create one when absent.
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := middleware.AuthenticatedUser(c)

	var req profileRequest
	if !s.bindBody(c, &req) {
		return nil
	}

	upd := models.ProfileUpdate{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         models.ParseSkills(req.Skills),
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social: models.Social{
			Youtube:   req.Youtube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			Linkedin:  req.Linkedin,
			Instagram: req.Instagram,
		},
	}

	profile, err := s.profiles.Upsert(ctx, userID, upd)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(profile)
}

// ListProfiles handles GET /api/profile.
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	ctx := c.Context()

	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	for i := range profiles {
		s.attachOwner(c, &profiles[i])
	}
	return c.JSON(profiles)
}

// GetProfileByUser handles GET /api/profile/user/:user_id. A malformed user
// id is answered the same as an unknown one.
func (s *Server) GetProfileByUser(c *fiber.Ctx) error {
	ctx := c.Context()

	userID, err := s.parseObjectID(c, "user_id", "Profile not found")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	profile, perr := s.profiles.GetByUser(ctx, userID)
	if perr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, perr)
	}
	if profile == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Profile not found"))
	}

	s.attachOwner(c, profile)
	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile, removing the user's posts,
// profile, and user record.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := middleware.AuthenticatedUser(c)

	if err := s.posts.DeleteByUser(ctx, userID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if err := s.profiles.Delete(ctx, userID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"msg": "User deleted"})
}

// AddExperience handles PUT /api/profile/experience.
func (s *Server) AddExperience(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := middleware.AuthenticatedUser(c)

	var req experienceRequest
	if !s.bindBody(c, &req) {
		return nil
	}

	profile, err := s.loadOwnProfile(c, userID)
	if profile == nil {
		return err
	}

	profile.AddExperience(models.Experience{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        *req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})

	if err := s.profiles.Save(ctx, profile); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(profile)
}

// DeleteExperience handles DELETE /api/profile/experience/:exp_id.
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := middleware.AuthenticatedUser(c)

	expID, err := s.parseObjectID(c, "exp_id", "Experience not found")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	profile, perr := s.loadOwnProfile(c, userID)
	if profile == nil {
		return perr
	}

	if !profile.RemoveExperience(expID) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Experience not found"))
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(profile)
}

// AddEducation handles PUT /api/profile/education.
func (s *Server) AddEducation(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := middleware.AuthenticatedUser(c)

	var req educationRequest
	if !s.bindBody(c, &req) {
		return nil
	}

	profile, err := s.loadOwnProfile(c, userID)
	if profile == nil {
		return err
	}

	profile.AddEducation(models.Education{
		ID:           primitive.NewObjectID(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         *req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})

	if err := s.profiles.Save(ctx, profile); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(profile)
}

// DeleteEducation handles DELETE /api/profile/education/:edu_id.
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := middleware.AuthenticatedUser(c)

	eduID, err := s.parseObjectID(c, "edu_id", "Education not found")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	profile, perr := s.loadOwnProfile(c, userID)
	if profile == nil {
		return perr
	}

	if !profile.RemoveEducation(eduID) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Education not found"))
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(profile)
}

// loadOwnProfile fetches the authenticated user's profile, writing the error
// response when it is missing or the lookup fails. Callers return the error
// whenever the profile is nil.
func (s *Server) loadOwnProfile(c *fiber.Ctx, userID primitive.ObjectID) (*models.Profile, error) {
	profile, err := s.profiles.GetByUser(c.Context(), userID)
	if err != nil {
		return nil, models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if profile == nil {
		return nil, models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewBadRequestError("There is no profile for this user"))
	}
	return profile, nil
}

// attachOwner populates the profile's owner projection; a lookup failure
// leaves the profile as-is rather than failing the request.
func (s *Server) attachOwner(c *fiber.Ctx, profile *models.Profile) {
	user, err := s.users.GetByID(c.Context(), profile.UserID)
	if err != nil || user == nil {
		return
	}
	summary := user.Summary()
	profile.Owner = &summary
}
