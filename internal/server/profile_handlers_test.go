package server

import (
	"net/http"
	"testing"
	"time"

	"devconnector/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetMyProfileMissing(t *testing.T) {
	env := newTestEnv(t)
	userID := primitive.NewObjectID()

	env.profiles.On("GetByUser", mock.Anything, userID).Return(nil, nil)

	resp := env.request(t, http.MethodGet, "/api/profile/me", nil, &userID)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "There is no profile for this user", singleMsg(t, resp))
}

func TestGetMyProfile(t *testing.T) {
	env := newTestEnv(t)

	user := &models.User{ID: primitive.NewObjectID(), Name: "Dev User", Avatar: "a"}
	profile := &models.Profile{
		ID:     primitive.NewObjectID(),
		UserID: user.ID,
		Status: "Developer",
		Skills: []string{"Go"},
	}
	env.profiles.On("GetByUser", mock.Anything, user.ID).Return(profile, nil)
	env.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	resp := env.request(t, http.MethodGet, "/api/profile/me", nil, &user.ID)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.Profile
	decodeBody(t, resp, &body)
	assert.Equal(t, "Developer", body.Status)
	require.NotNil(t, body.Owner)
	assert.Equal(t, "Dev User", body.Owner.Name)
}

func TestUpsertProfile(t *testing.T) {
	env := newTestEnv(t)
	userID := primitive.NewObjectID()

	var captured models.ProfileUpdate
	saved := &models.Profile{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Status: "Developer",
		Skills: []string{"Go", "MongoDB"},
	}
	env.profiles.On("Upsert", mock.Anything, userID, mock.AnythingOfType("models.ProfileUpdate")).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(models.ProfileUpdate)
		}).
		Return(saved, nil)

	resp := env.request(t, http.MethodPost, "/api/profile/", map[string]string{
		"status":  "Developer",
		"skills":  "Go, MongoDB ,,",
		"company": "Acme",
		"twitter": "https://twitter.com/dev",
	}, &userID)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, []string{"Go", "MongoDB"}, captured.Skills)
	assert.Equal(t, "Acme", captured.Company)
	assert.Equal(t, "https://twitter.com/dev", captured.Social.Twitter)

	var body models.Profile
	decodeBody(t, resp, &body)
	assert.Equal(t, "Developer", body.Status)
}

func TestUpsertProfileValidation(t *testing.T) {
	env := newTestEnv(t)
	userID := primitive.NewObjectID()

	resp := env.request(t, http.MethodPost, "/api/profile/", map[string]string{
		"company": "Acme",
	}, &userID)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"Status is required"}, errorMsgs(t, resp))
	env.profiles.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpsertProfileSkillsOptional(t *testing.T) {
	env := newTestEnv(t)
	userID := primitive.NewObjectID()

	saved := &models.Profile{ID: primitive.NewObjectID(), UserID: userID, Status: "Student or Learning"}
	env.profiles.On("Upsert", mock.Anything, userID, mock.AnythingOfType("models.ProfileUpdate")).
		Return(saved, nil)

	resp := env.request(t, http.MethodPost, "/api/profile/", map[string]string{
		"status": "Student or Learning",
	}, &userID)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	env.profiles.AssertExpectations(t)
}

func TestGetProfileByUserMalformedID(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/profile/user/garbage", nil, nil)

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Profile not found", singleMsg(t, resp))
}

func TestListProfilesAttachesOwners(t *testing.T) {
	env := newTestEnv(t)

	user := &models.User{ID: primitive.NewObjectID(), Name: "Dev User", Avatar: "a"}
	profiles := []models.Profile{{
		ID:     primitive.NewObjectID(),
		UserID: user.ID,
		Status: "Developer",
	}}
	env.profiles.On("List", mock.Anything).Return(profiles, nil)
	env.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	resp := env.request(t, http.MethodGet, "/api/profile/", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []models.Profile
	decodeBody(t, resp, &body)
	require.Len(t, body, 1)
	require.NotNil(t, body[0].Owner)
	assert.Equal(t, "Dev User", body[0].Owner.Name)
}

func TestAddExperience(t *testing.T) {
	env := newTestEnv(t)
	userID := primitive.NewObjectID()

	earlier := models.Experience{
		ID:      primitive.NewObjectID(),
		Title:   "Junior Developer",
		Company: "Acme",
		From:    time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	profile := &models.Profile{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		Status:     "Developer",
		Experience: []models.Experience{earlier},
	}
	env.profiles.On("GetByUser", mock.Anything, userID).Return(profile, nil)
	env.profiles.On("Save", mock.Anything, profile).Return(nil)

	resp := env.request(t, http.MethodPut, "/api/profile/experience", map[string]interface{}{
		"title":   "Senior Developer",
		"company": "Acme",
		"from":    "2022-06-01T00:00:00Z",
		"current": true,
	}, &userID)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.Profile
	decodeBody(t, resp, &body)
	require.Len(t, body.Experience, 2)
	assert.Equal(t, "Senior Developer", body.Experience[0].Title)
	assert.True(t, body.Experience[0].Current)
	assert.Equal(t, "Junior Developer", body.Experience[1].Title)
}

func TestAddExperienceValidation(t *testing.T) {
	env := newTestEnv(t)
	userID := primitive.NewObjectID()

	resp := env.request(t, http.MethodPut, "/api/profile/experience", map[string]string{
		"location": "Remote",
	}, &userID)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	msgs := errorMsgs(t, resp)
	assert.Contains(t, msgs, "Title is required")
	assert.Contains(t, msgs, "Company is required")
	assert.Contains(t, msgs, "From date is required")
}

func TestDeleteExperience(t *testing.T) {
	env := newTestEnv(t)
	userID := primitive.NewObjectID()

	entry := models.Experience{ID: primitive.NewObjectID(), Title: "Developer", Company: "Acme"}
	profile := &models.Profile{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		Experience: []models.Experience{entry},
	}
	env.profiles.On("GetByUser", mock.Anything, userID).Return(profile, nil)
	env.profiles.On("Save", mock.Anything, profile).Return(nil)

	resp := env.request(t, http.MethodDelete,
		"/api/profile/experience/"+entry.ID.Hex(), nil, &userID)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.Profile
	decodeBody(t, resp, &body)
	assert.Empty(t, body.Experience)
}

func TestDeleteExperienceMissing(t *testing.T) {
	env := newTestEnv(t)
	userID := primitive.NewObjectID()

	profile := &models.Profile{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		Experience: []models.Experience{},
	}
	env.profiles.On("GetByUser", mock.Anything, userID).Return(profile, nil)

	resp := env.request(t, http.MethodDelete,
		"/api/profile/experience/"+primitive.NewObjectID().Hex(), nil, &userID)

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Experience not found", singleMsg(t, resp))
	env.profiles.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddEducationValidation(t *testing.T) {
	env := newTestEnv(t)
	userID := primitive.NewObjectID()

	resp := env.request(t, http.MethodPut, "/api/profile/education", map[string]string{}, &userID)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	msgs := errorMsgs(t, resp)
	assert.Contains(t, msgs, "School is required")
	assert.Contains(t, msgs, "Degree is required")
	assert.Contains(t, msgs, "Field of Study is required")
	assert.Contains(t, msgs, "From date is required")
}

func TestDeleteEducation(t *testing.T) {
	env := newTestEnv(t)
	userID := primitive.NewObjectID()

	entry := models.Education{ID: primitive.NewObjectID(), School: "MIT", Degree: "BSc"}
	profile := &models.Profile{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Education: []models.Education{entry},
	}
	env.profiles.On("GetByUser", mock.Anything, userID).Return(profile, nil)
	env.profiles.On("Save", mock.Anything, profile).Return(nil)

	resp := env.request(t, http.MethodDelete,
		"/api/profile/education/"+entry.ID.Hex(), nil, &userID)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.Profile
	decodeBody(t, resp, &body)
	assert.Empty(t, body.Education)
}

func TestDeleteAccount(t *testing.T) {
	env := newTestEnv(t)
	userID := primitive.NewObjectID()

	env.posts.On("DeleteByUser", mock.Anything, userID).Return(nil)
	env.profiles.On("Delete", mock.Anything, userID).Return(nil)
	env.users.On("Delete", mock.Anything, userID).Return(nil)

	resp := env.request(t, http.MethodDelete, "/api/profile/", nil, &userID)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "User deleted", singleMsg(t, resp))
	env.posts.AssertExpectations(t)
	env.profiles.AssertExpectations(t)
	env.users.AssertExpectations(t)
}
