package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is an aggregate holding the text body plus embedded likes and comments.
// Name and avatar are denormalized snapshots of the author at creation time.
type Post struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID   primitive.ObjectID `bson:"user" json:"user"`
	Text     string             `bson:"text" json:"text"`
	Name     string             `bson:"name" json:"name"`
	Avatar   string             `bson:"avatar" json:"avatar"`
	Likes    []Like             `bson:"likes" json:"likes"`
	Comments []Comment          `bson:"comments" json:"comments"`
	Date     time.Time          `bson:"date" json:"date"`
}

// Like records a single user's like on a post. Uniqueness per (post, user)
// is enforced by the like/unlike operations, not by the store.
type Like struct {
	ID     primitive.ObjectID `bson:"_id" json:"_id"`
	UserID primitive.ObjectID `bson:"user" json:"user"`
}

// Comment is an embedded sub-entry of Post with a denormalized author snapshot.
type Comment struct {
	ID     primitive.ObjectID `bson:"_id" json:"_id"`
	UserID primitive.ObjectID `bson:"user" json:"user"`
	Text   string             `bson:"text" json:"text"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar" json:"avatar"`
	Date   time.Time          `bson:"date" json:"date"`
}

// AddLike prepends a like for the given user.
func (p *Post) AddLike(userID primitive.ObjectID) {
	like := Like{ID: primitive.NewObjectID(), UserID: userID}
	p.Likes = append([]Like{like}, p.Likes...)
}

// RemoveLike removes the given user's like. Returns false when the user had
// no like on the post.
func (p *Post) RemoveLike(userID primitive.ObjectID) bool {
	kept := p.Likes[:0]
	removed := false
	for _, l := range p.Likes {
		if l.UserID == userID {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	p.Likes = kept
	return removed
}

// AddComment prepends the comment, keeping most-recent-first ordering.
func (p *Post) AddComment(c Comment) {
	p.Comments = append([]Comment{c}, p.Comments...)
}

// FindComment returns the comment with the given id, or nil.
func (p *Post) FindComment(id primitive.ObjectID) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i]
		}
	}
	return nil
}

// RemoveComment removes the comment with the given id. Returns false when no
// comment matched.
func (p *Post) RemoveComment(id primitive.ObjectID) bool {
	kept := p.Comments[:0]
	removed := false
	for _, c := range p.Comments {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	p.Comments = kept
	return removed
}
