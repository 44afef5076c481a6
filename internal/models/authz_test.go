package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPostOwnedBy(t *testing.T) {
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	post := &Post{UserID: owner}

	assert.True(t, post.OwnedBy(owner))
	assert.False(t, post.OwnedBy(other))
}

func TestPostLikedBy(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	post := &Post{}
	assert.False(t, post.LikedBy(alice))

	post.AddLike(alice)
	assert.True(t, post.LikedBy(alice))
	assert.False(t, post.LikedBy(bob))
}

func TestCommentAuthoredBy(t *testing.T) {
	author := primitive.NewObjectID()
	comment := &Comment{UserID: author}

	assert.True(t, comment.AuthoredBy(author))
	assert.False(t, comment.AuthoredBy(primitive.NewObjectID()))
}

func TestProfileOwnedBy(t *testing.T) {
	owner := primitive.NewObjectID()
	profile := &Profile{UserID: owner}

	assert.True(t, profile.OwnedBy(owner))
	assert.False(t, profile.OwnedBy(primitive.NewObjectID()))
}
