package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Ownership and authorization checks are expressed as explicit predicates on
// (resource, identity) pairs so the authorization contract is testable in one
// place rather than scattered through handlers.

// OwnedBy reports whether the post was created by the given user.
func (p *Post) OwnedBy(userID primitive.ObjectID) bool {
	return p.UserID == userID
}

// LikedBy reports whether the given user already appears in the post's likes.
func (p *Post) LikedBy(userID primitive.ObjectID) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// AuthoredBy reports whether the comment was written by the given user.
func (c *Comment) AuthoredBy(userID primitive.ObjectID) bool {
	return c.UserID == userID
}

// OwnedBy reports whether the profile belongs to the given user.
func (p *Profile) OwnedBy(userID primitive.ObjectID) bool {
	return p.UserID == userID
}
