package seed

import (
	"fmt"
	"log"

	"waypost/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	PostsPerUser int
	ShouldClean  bool
}

// DefaultOptions returns a reasonable demo dataset size.
func DefaultOptions() Options {
	return Options{NumUsers: 20, PostsPerUser: 8}
}

// Run populates the database with demo users, geo-clustered posts, and a
// light mesh of likes and comments so the recommendation feed has signal to
// work with.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts = DefaultOptions()
	}

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return fmt.Errorf("cleaning database: %w", err)
		}
	}

	factory := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		anchor := DefaultAnchors[i%len(DefaultAnchors)]
		user, err := factory.CreateUser(anchor)
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))

	posts := make([]*models.Post, 0, opts.NumUsers*opts.PostsPerUser)
	for i, user := range users {
		anchor := DefaultAnchors[i%len(DefaultAnchors)]
		for j := 0; j < opts.PostsPerUser; j++ {
			posts = append(posts, factory.BuildPost(user, anchor))
		}
	}
	if err := factory.CreatePostsBatch(posts); err != nil {
		return fmt.Errorf("creating posts: %w", err)
	}
	log.Printf("seeded %d posts", len(posts))

	if err := seedInteractions(db, factory, users, posts); err != nil {
		return fmt.Errorf("creating interactions: %w", err)
	}

	return nil
}

// seedInteractions sprinkles likes and comments between users and posts from
// the same anchor city, then fixes up the denormalized counters.
func seedInteractions(db *gorm.DB, factory *Factory, users []*models.User, posts []*models.Post) error {
	anchorOf := map[uint]int{}
	for i, user := range users {
		anchorOf[user.ID] = i % len(DefaultAnchors)
	}

	likes := 0
	comments := 0
	for _, user := range users {
		for _, post := range posts {
			if post.UserID == user.ID {
				continue
			}
			// keep interactions local: same anchor city
			if anchorOf[post.UserID] != anchorOf[user.ID] {
				continue
			}
			roll := factory.rng.Intn(100)
			if roll < 25 {
				if err := db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error; err != nil {
					return err
				}
				likes++
			}
			if roll < 10 {
				comment := &models.Comment{
					UserID: user.ID,
					PostID: post.ID,
					Body:   factory.commentBody(),
				}
				if err := db.Create(comment).Error; err != nil {
					return err
				}
				comments++
			}
		}
	}

	// recompute counters from the ground truth
	if err := db.Exec(`UPDATE posts SET likes_count = (SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id)`).Error; err != nil {
		return err
	}
	if err := db.Exec(`UPDATE posts SET comments_count = (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL)`).Error; err != nil {
		return err
	}

	log.Printf("seeded %d likes and %d comments", likes, comments)
	return nil
}

func clean(db *gorm.DB) error {
	for _, table := range []string{"comments", "likes", "posts", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	log.Println("cleaned existing data")
	return nil
}
