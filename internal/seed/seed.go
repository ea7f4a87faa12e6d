// Package seed populates a database with demo doctors, posts, likes and
// comments. It is intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"medconnect/internal/middleware"
	"medconnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is the password every seeded doctor signs in with.
const DefaultPassword = "password123"

var specializations = []string{
	"Cardiology", "Dermatology", "Emergency Medicine", "Endocrinology",
	"Gastroenterology", "Internal Medicine", "Nephrology", "Neurology",
	"Oncology", "Pediatrics", "Psychiatry", "Radiology",
}

var professions = map[string]string{
	"Cardiology":         "Cardiologist",
	"Dermatology":        "Dermatologist",
	"Emergency Medicine": "Emergency Physician",
	"Endocrinology":      "Endocrinologist",
	"Gastroenterology":   "Gastroenterologist",
	"Internal Medicine":  "Internist",
	"Nephrology":         "Nephrologist",
	"Neurology":          "Neurologist",
	"Oncology":           "Oncologist",
	"Pediatrics":         "Pediatrician",
	"Psychiatry":         "Psychiatrist",
	"Radiology":          "Radiologist",
}

// Options controls how much data a Seeder writes.
type Options struct {
	Doctors            int
	Posts              int
	MaxLikesPerPost    int
	MaxCommentsPerPost int
	// MaxDays spreads post timestamps over this many days back from now.
	MaxDays int
	// RandSeed makes a run reproducible when non-zero.
	RandSeed int64
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// Result summarises what a run wrote.
type Result struct {
	Doctors  int
	Posts    int
	Likes    int
	Comments int
}

// Seeder writes generated data through GORM.
type Seeder struct {
	db   *gorm.DB
	opts Options
	fake *gofakeit.Faker
	now  func() time.Time
}

// NewSeeder binds a Seeder to db. Zero option values fall back to small defaults.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.Doctors <= 0 {
		opts.Doctors = 20
	}
	if opts.Posts < 0 {
		opts.Posts = 0
	}
	if opts.MaxLikesPerPost < 0 {
		opts.MaxLikesPerPost = 0
	}
	if opts.MaxCommentsPerPost < 0 {
		opts.MaxCommentsPerPost = 0
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 30
	}
	if opts.BcryptCost <= 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Seeder{db: db, opts: opts, fake: gofakeit.New(seed), now: time.Now}
}

// ClearAll removes every row the feed owns, children first.
func (s *Seeder) ClearAll(ctx context.Context) error {
	for _, table := range []string{"comments", "likes", "posts", "accounts"} {
		if err := s.db.WithContext(ctx).Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	middleware.Logger.Info("seed data cleared")
	return nil
}

// Run seeds doctors, then posts, then likes and comments on those posts.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var res Result

	doctors, err := s.SeedDoctors(ctx, s.opts.Doctors)
	if err != nil {
		return res, err
	}
	res.Doctors = len(doctors)

	posts, err := s.SeedPosts(ctx, doctors, s.opts.Posts)
	if err != nil {
		return res, err
	}
	res.Posts = len(posts)

	res.Likes, res.Comments, err = s.SeedEngagement(ctx, doctors, posts)
	if err != nil {
		return res, err
	}

	middleware.Logger.Info("seed complete",
		slog.Int("doctors", res.Doctors),
		slog.Int("posts", res.Posts),
		slog.Int("likes", res.Likes),
		slog.Int("comments", res.Comments),
	)
	return res, nil
}

// SeedDoctors creates n accounts that all share DefaultPassword.
func (s *Seeder) SeedDoctors(ctx context.Context, n int) ([]models.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), s.opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	doctors := make([]models.Account, 0, n)
	for i := range n {
		first, last := s.fake.FirstName(), s.fake.LastName()
		specialization := s.fake.RandomString(specializations)
		about := s.fake.Sentence(12)
		doctors = append(doctors, models.Account{
			Name:           fmt.Sprintf("Dr. %s %s", first, last),
			Email:          strings.ToLower(fmt.Sprintf("%s.%s.%d@medconnect.dev", first, last, i+1)),
			Specialization: specialization,
			Profession:     professions[specialization],
			About:          &about,
			Password:       string(hash),
		})
	}
	if len(doctors) == 0 {
		return doctors, nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(&doctors, 100).Error; err != nil {
		return nil, fmt.Errorf("create doctors: %w", err)
	}
	return doctors, nil
}

// SeedPosts creates n posts spread across authors and the configured time window.
func (s *Seeder) SeedPosts(ctx context.Context, authors []models.Account, n int) ([]models.Post, error) {
	if len(authors) == 0 || n == 0 {
		return nil, nil
	}

	now := s.now()
	posts := make([]models.Post, 0, n)
	for range n {
		author := authors[s.fake.Number(0, len(authors)-1)]
		age := time.Duration(s.fake.Number(0, s.opts.MaxDays*24*60)) * time.Minute
		post := models.Post{
			AccountID: author.ID,
			Content:   s.fake.Paragraph(1, s.fake.Number(1, 3), 12, " "),
			CreatedAt: now.Add(-age),
		}
		if s.fake.Number(1, 5) == 1 {
			img := fmt.Sprintf("https://picsum.photos/seed/%s/800/600", s.fake.UUID())
			post.Image = &img
		}
		posts = append(posts, post)
	}
	if err := s.db.WithContext(ctx).Omit("Account").CreateInBatches(&posts, 100).Error; err != nil {
		return nil, fmt.Errorf("create posts: %w", err)
	}
	return posts, nil
}

// SeedEngagement adds likes and comments from random doctors to each post.
// Duplicate likes collapse, so the like count may be below the draw.
func (s *Seeder) SeedEngagement(ctx context.Context, doctors []models.Account, posts []models.Post) (int, int, error) {
	if len(doctors) == 0 {
		return 0, 0, nil
	}

	var (
		likes    []models.Like
		comments []models.Comment
	)
	for _, post := range posts {
		seen := make(map[uint]struct{})
		for range s.fake.Number(0, s.opts.MaxLikesPerPost) {
			liker := doctors[s.fake.Number(0, len(doctors)-1)].ID
			if _, dup := seen[liker]; dup {
				continue
			}
			seen[liker] = struct{}{}
			likes = append(likes, models.Like{AccountID: liker, PostID: post.ID, CreatedAt: post.CreatedAt})
		}

		at := post.CreatedAt
		for range s.fake.Number(0, s.opts.MaxCommentsPerPost) {
			at = at.Add(time.Duration(s.fake.Number(1, 180)) * time.Minute)
			comments = append(comments, models.Comment{
				PostID:    post.ID,
				AccountID: doctors[s.fake.Number(0, len(doctors)-1)].ID,
				Content:   s.fake.Sentence(s.fake.Number(4, 16)),
				CreatedAt: at,
			})
		}
	}

	tx := s.db.WithContext(ctx)
	if len(likes) > 0 {
		if err := tx.Omit("Account", "Post").Clauses(clause.OnConflict{DoNothing: true}).
			CreateInBatches(&likes, 500).Error; err != nil {
			return 0, 0, fmt.Errorf("create likes: %w", err)
		}
	}
	if len(comments) > 0 {
		if err := tx.Omit("Account", "Post").CreateInBatches(&comments, 500).Error; err != nil {
			return 0, 0, fmt.Errorf("create comments: %w", err)
		}
	}
	return len(likes), len(comments), nil
}
