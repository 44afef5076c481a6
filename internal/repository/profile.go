package repository

import (
	"context"
	"time"

	"devconnector/internal/database"
	"devconnector/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfileRepository defines the interface for profile data operations.
// Sub-list mutations go through Save, replacing the whole aggregate; no
// optimistic concurrency is applied to the read-modify-write sequence.
type ProfileRepository interface {
	// GetByUser returns (nil, nil) when the user has no profile.
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	// Upsert applies the supplied fields to the user's profile, creating it
	// when absent, and returns the resulting document.
	Upsert(ctx context.Context, userID primitive.ObjectID, upd models.ProfileUpdate) (*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
	Delete(ctx context.Context, userID primitive.ObjectID) error
}

type profileRepository struct {
	col *mongo.Collection
}

// NewProfileRepository creates a profile repository backed by the profiles collection.
func NewProfileRepository(db *mongo.Database) ProfileRepository {
	return &profileRepository{col: db.Collection(database.ProfilesCollection)}
}

func (r *profileRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.col.FindOne(ctx, bson.M{"user": userID}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer cur.Close(ctx)

	profiles := []models.Profile{}
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *profileRepository) Upsert(ctx context.Context, userID primitive.ObjectID, upd models.ProfileUpdate) (*models.Profile, error) {
	// Only supplied fields are set; social links are replaced as a whole,
	// matching the submission semantics of the profile form.
	set := bson.M{
		"user":   userID,
		"status": upd.Status,
		"social": upd.Social,
	}
	if upd.Company != "" {
		set["company"] = upd.Company
	}
	if upd.Website != "" {
		set["website"] = upd.Website
	}
	if upd.Location != "" {
		set["location"] = upd.Location
	}
	if upd.Bio != "" {
		set["bio"] = upd.Bio
	}
	if upd.GithubUsername != "" {
		set["githubusername"] = upd.GithubUsername
	}
	if len(upd.Skills) > 0 {
		set["skills"] = upd.Skills
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"date":       time.Now().UTC(),
			"experience": []models.Experience{},
			"education":  []models.Education{},
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var profile models.Profile
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&profile); err != nil {
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) Save(ctx context.Context, profile *models.Profile) error {
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) Delete(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := r.col.DeleteOne(ctx, bson.M{"user": userID}); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
