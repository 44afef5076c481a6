// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"devconnector/internal/avatar"
	"devconnector/internal/database"
	"devconnector/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var statuses = []string{
	"Developer", "Junior Developer", "Senior Developer",
	"Manager", "Student or Learning", "Instructor", "Intern",
}

var skillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "React", "Node.js",
	"MongoDB", "PostgreSQL", "Redis", "Docker", "Kubernetes", "AWS",
	"GraphQL", "HTML", "CSS",
}

// Options controls seeder volume and behavior.
type Options struct {
	Users int
	Posts int
	Clean bool
}

// Seeder populates the document store with generated users, profiles, and
// posts. All generated users share the password "password123".
type Seeder struct {
	db   *mongo.Database
	rand *rand.Rand
}

// NewSeeder creates a seeder bound to the given database.
func NewSeeder(db *mongo.Database) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run executes the full seeding pass.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	if opts.Clean {
		if err := s.ClearAll(ctx); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
	}

	users, err := s.createUsers(ctx, opts.Users)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ Created %d users", len(users))

	profiles, err := s.createProfiles(ctx, users)
	if err != nil {
		return fmt.Errorf("failed to create profiles: %w", err)
	}
	log.Printf("✓ Created %d profiles", profiles)

	posts, err := s.createPosts(ctx, users, opts.Posts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ Created %d posts", posts)

	return nil
}

// ClearAll drops all seeded collections' documents.
func (s *Seeder) ClearAll(ctx context.Context) error {
	log.Println("🗑️  Clearing existing data...")

	for _, col := range []string{
		database.PostsCollection,
		database.ProfilesCollection,
		database.UsersCollection,
	} {
		if _, err := s.db.Collection(col).DeleteMany(ctx, bson.M{}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) createUsers(ctx context.Context, count int) ([]models.User, error) {
	if count <= 0 {
		return nil, nil
	}

	// One hash shared across all seeded users keeps large runs fast.
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	docs := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		email := fmt.Sprintf("%s%d@example.com", gofakeit.Username(), gofakeit.Number(100, 999))
		user := models.User{
			ID:       primitive.NewObjectID(),
			Name:     gofakeit.Name(),
			Email:    email,
			Password: string(hashed),
			Avatar:   avatar.URL(email),
			Date:     s.pastTime(365),
		}
		users = append(users, user)
		docs = append(docs, user)
	}

	if _, err := s.db.Collection(database.UsersCollection).InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Seeder) createProfiles(ctx context.Context, users []models.User) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(users))
	for _, user := range users {
		profile := models.Profile{
			ID:             primitive.NewObjectID(),
			UserID:         user.ID,
			Company:        gofakeit.Company(),
			Website:        gofakeit.URL(),
			Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
			Status:         statuses[s.rand.Intn(len(statuses))],
			Skills:         s.pickSkills(),
			Bio:            gofakeit.Sentence(12),
			GithubUsername: gofakeit.Username(),
			Experience:     s.buildExperience(),
			Education:      s.buildEducation(),
			Social: models.Social{
				Twitter:  fmt.Sprintf("https://twitter.com/%s", gofakeit.Username()),
				Linkedin: fmt.Sprintf("https://linkedin.com/in/%s", gofakeit.Username()),
			},
			Date: s.pastTime(365),
		}
		docs = append(docs, profile)
	}

	if _, err := s.db.Collection(database.ProfilesCollection).InsertMany(ctx, docs); err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (s *Seeder) createPosts(ctx context.Context, users []models.User, count int) (int, error) {
	// Posts need authors; an empty user set seeds nothing.
	if count <= 0 || len(users) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.rand.Intn(len(users))]
		post := models.Post{
			ID:       primitive.NewObjectID(),
			UserID:   author.ID,
			Text:     gofakeit.Paragraph(1, 3, 8, " "),
			Name:     author.Name,
			Avatar:   author.Avatar,
			Likes:    s.buildLikes(users),
			Comments: s.buildComments(users),
			Date:     s.pastTime(90),
		}
		docs = append(docs, post)
	}

	if _, err := s.db.Collection(database.PostsCollection).InsertMany(ctx, docs); err != nil {
		return 0, err
	}
	return len(docs), nil
}

// buildLikes picks a random subset of distinct users as likers.
func (s *Seeder) buildLikes(users []models.User) []models.Like {
	n := s.rand.Intn(6)
	if n > len(users) {
		n = len(users)
	}
	likes := make([]models.Like, 0, n)
	seen := make(map[primitive.ObjectID]bool, n)
	for len(likes) < n {
		u := users[s.rand.Intn(len(users))]
		if seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		likes = append(likes, models.Like{ID: primitive.NewObjectID(), UserID: u.ID})
	}
	return likes
}

func (s *Seeder) buildComments(users []models.User) []models.Comment {
	n := s.rand.Intn(4)
	comments := make([]models.Comment, 0, n)
	for i := 0; i < n; i++ {
		u := users[s.rand.Intn(len(users))]
		comments = append(comments, models.Comment{
			ID:     primitive.NewObjectID(),
			UserID: u.ID,
			Text:   gofakeit.Sentence(10),
			Name:   u.Name,
			Avatar: u.Avatar,
			Date:   s.pastTime(30),
		})
	}
	return comments
}

func (s *Seeder) buildExperience() []models.Experience {
	n := s.rand.Intn(3)
	entries := make([]models.Experience, 0, n)
	for i := 0; i < n; i++ {
		from := s.pastTime(365 * 5)
		entry := models.Experience{
			ID:          primitive.NewObjectID(),
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			From:        from,
			Current:     i == 0,
			Description: gofakeit.Sentence(15),
		}
		if !entry.Current {
			to := from.Add(time.Duration(s.rand.Intn(365*2)+30) * 24 * time.Hour)
			entry.To = &to
		}
		entries = append(entries, entry)
	}
	return entries
}

func (s *Seeder) buildEducation() []models.Education {
	n := s.rand.Intn(2)
	entries := make([]models.Education, 0, n)
	for i := 0; i < n; i++ {
		from := s.pastTime(365 * 10)
		to := from.Add(time.Duration(365*4) * 24 * time.Hour)
		entries = append(entries, models.Education{
			ID:           primitive.NewObjectID(),
			School:       fmt.Sprintf("%s University", gofakeit.City()),
			Degree:       "BSc",
			FieldOfStudy: "Computer Science",
			From:         from,
			To:           &to,
			Description:  gofakeit.Sentence(10),
		})
	}
	return entries
}

func (s *Seeder) pickSkills() []string {
	n := s.rand.Intn(5) + 2
	picked := make([]string, 0, n)
	seen := make(map[string]bool, n)
	for len(picked) < n {
		skill := skillPool[s.rand.Intn(len(skillPool))]
		if seen[skill] {
			continue
		}
		seen[skill] = true
		picked = append(picked, skill)
	}
	return picked
}

// pastTime picks a random instant up to maxDays in the past.
func (s *Seeder) pastTime(maxDays int) time.Time {
	daysBack := s.rand.Intn(maxDays)
	hoursBack := s.rand.Intn(24)
	return time.Now().UTC().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
}
