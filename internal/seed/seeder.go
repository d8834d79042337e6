package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/flocknet/flock/internal/logger"
	"github.com/flocknet/flock/internal/models"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// SeedDev seeds the development database with realistic data
func (s *Seeder) SeedDev() error {
	logger.Log.Info("creating users")
	users, err := s.seedUsers(50)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	logger.Log.Info("creating follow graph")
	if err := s.seedFollows(users, 300); err != nil {
		return fmt.Errorf("failed to seed follows: %w", err)
	}

	logger.Log.Info("creating posts")
	posts, err := s.seedPosts(users, 400)
	if err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}

	logger.Log.Info("creating replies")
	if err := s.seedReplies(users, posts, 200); err != nil {
		return fmt.Errorf("failed to seed replies: %w", err)
	}

	logger.Log.Info("creating likes and shares")
	if err := s.seedInteractions(users, posts, 800); err != nil {
		return fmt.Errorf("failed to seed interactions: %w", err)
	}

	logger.Log.Info("seeding complete")
	return nil
}

// SeedTest seeds a minimal data set for integration testing
func (s *Seeder) SeedTest() error {
	users, err := s.seedUsers(5)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := s.seedFollows(users, 8); err != nil {
		return fmt.Errorf("failed to seed follows: %w", err)
	}
	posts, err := s.seedPosts(users, 10)
	if err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}
	if err := s.seedInteractions(users, posts, 15); err != nil {
		return fmt.Errorf("failed to seed interactions: %w", err)
	}
	return nil
}

// Clean removes all rows from every seeded table
func (s *Seeder) Clean() error {
	tables := []string{"post_likes", "post_shares", "posts", "follows", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clean %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) seedUsers(count int) ([]models.User, error) {
	// All seeded accounts share one password so developers can log in as
	// any of them.
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		username := gofakeit.Username()
		email := gofakeit.Email()

		var existing models.User
		for {
			err := s.db.Where("username = ? OR email = ?", username, email).First(&existing).Error
			if err == gorm.ErrRecordNotFound {
				break
			}
			if err != nil {
				return nil, err
			}
			username = gofakeit.Username()
			email = gofakeit.Email()
		}

		user := models.User{
			Username:     username,
			Nickname:     gofakeit.Name(),
			Email:        email,
			PasswordHash: string(hashed),
			Bio:          gofakeit.Sentence(12),
			ProfilePic:   gofakeit.ImageURL(200, 200),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedFollows(users []models.User, count int) error {
	if len(users) < 2 {
		return nil
	}
	created := 0
	for attempts := 0; created < count && attempts < count*4; attempts++ {
		follower := users[rand.Intn(len(users))]
		followed := users[rand.Intn(len(users))]
		if follower.ID == followed.ID {
			continue
		}
		follow := models.Follow{FollowerID: follower.ID, FollowedID: followed.ID}
		err := s.db.Create(&follow).Error
		if err == gorm.ErrDuplicatedKey {
			continue
		}
		if err != nil {
			return err
		}
		created++
	}
	return nil
}

func (s *Seeder) seedPosts(users []models.User, count int) ([]models.Post, error) {
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		post := models.Post{
			UserID:      author.ID,
			TextContent: gofakeit.Sentence(gofakeit.Number(5, 30)),
			CreatedAt:   gofakeit.DateRange(time.Now().AddDate(0, -3, 0), time.Now()),
		}
		if err := s.db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Seeder) seedReplies(users []models.User, posts []models.Post, count int) error {
	if len(posts) == 0 {
		return nil
	}
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		parent := posts[rand.Intn(len(posts))]
		reply := models.Post{
			UserID:      author.ID,
			TextContent: gofakeit.Sentence(gofakeit.Number(3, 20)),
			ParentID:    &parent.ID,
		}
		if err := s.db.Create(&reply).Error; err != nil {
			return err
		}
		if err := s.db.Model(&models.Post{}).
			Where("id = ?", parent.ID).
			UpdateColumn("reply_count", gorm.Expr("reply_count + 1")).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedInteractions(users []models.User, posts []models.Post, count int) error {
	if len(posts) == 0 {
		return nil
	}
	for i := 0; i < count; i++ {
		actor := users[rand.Intn(len(users))]
		post := posts[rand.Intn(len(posts))]

		if gofakeit.Bool() {
			like := models.PostLike{UserID: actor.ID, PostID: post.ID}
			err := s.db.Create(&like).Error
			if err == gorm.ErrDuplicatedKey {
				continue
			}
			if err != nil {
				return err
			}
			if err := s.db.Model(&models.Post{}).
				Where("id = ?", post.ID).
				UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
				return err
			}
		} else {
			share := models.PostShare{UserID: actor.ID, PostID: post.ID}
			err := s.db.Create(&share).Error
			if err == gorm.ErrDuplicatedKey {
				continue
			}
			if err != nil {
				return err
			}
			if err := s.db.Model(&models.Post{}).
				Where("id = ?", post.ID).
				UpdateColumn("share_count", gorm.Expr("share_count + 1")).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
