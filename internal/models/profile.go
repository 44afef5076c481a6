package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is the one-to-one extension of a User, persisted as a single
// aggregate with its embedded experience and education entries.
type Profile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID         primitive.ObjectID `bson:"user" json:"user"`
	Company        string             `bson:"company,omitempty" json:"company,omitempty"`
	Website        string             `bson:"website,omitempty" json:"website,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	Status         string             `bson:"status" json:"status"`
	Skills         []string           `bson:"skills" json:"skills"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	GithubUsername string             `bson:"githubusername,omitempty" json:"githubusername,omitempty"`
	Experience     []Experience       `bson:"experience" json:"experience"`
	Education      []Education        `bson:"education" json:"education"`
	Social         Social             `bson:"social" json:"social"`
	Date           time.Time          `bson:"date" json:"date"`

	// Owner is populated from the users collection on reads that join the
	// owning user's public identity. Never persisted with the profile.
	Owner *UserSummary `bson:"-" json:"owner,omitempty"`
}

// Social holds links to external platforms, keyed by platform name.
type Social struct {
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

// Experience is an embedded sub-entry of Profile with no independent lifecycle.
type Experience struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Company     string             `bson:"company" json:"company"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	From        time.Time          `bson:"from" json:"from"`
	To          *time.Time         `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool               `bson:"current" json:"current"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

// Education is an embedded sub-entry of Profile with no independent lifecycle.
type Education struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	School       string             `bson:"school" json:"school"`
	Degree       string             `bson:"degree" json:"degree"`
	FieldOfStudy string             `bson:"fieldofstudy" json:"fieldofstudy"`
	From         time.Time          `bson:"from" json:"from"`
	To           *time.Time         `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool               `bson:"current" json:"current"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
}

// ProfileUpdate carries the fields of a profile submission. Only non-zero
// fields are applied on upsert; Social is always replaced as a whole.
type ProfileUpdate struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         []string
	Bio            string
	GithubUsername string
	Social         Social
}

// ParseSkills splits a comma-delimited skill string into a trimmed ordered list.
func ParseSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

// AddExperience prepends the entry, keeping most-recent-first ordering.
func (p *Profile) AddExperience(e Experience) {
	p.Experience = append([]Experience{e}, p.Experience...)
}

// RemoveExperience removes the entry with the given id. Returns false when no
// entry matched.
func (p *Profile) RemoveExperience(id primitive.ObjectID) bool {
	kept := p.Experience[:0]
	removed := false
	for _, e := range p.Experience {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	p.Experience = kept
	return removed
}

// AddEducation prepends the entry, keeping most-recent-first ordering.
func (p *Profile) AddEducation(e Education) {
	p.Education = append([]Education{e}, p.Education...)
}

// RemoveEducation removes the entry with the given id. Returns false when no
// entry matched.
func (p *Profile) RemoveEducation(id primitive.ObjectID) bool {
	kept := p.Education[:0]
	removed := false
	for _, e := range p.Education {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	p.Education = kept
	return removed
}
