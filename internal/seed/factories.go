// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"waypost/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Anchor is a city around which demo users and posts are clustered.
type Anchor struct {
	City string
	Lat  float64
	Lng  float64
}

// DefaultAnchors are the demo cities posts cluster around.
var DefaultAnchors = []Anchor{
	{"Stockholm", 59.3293, 18.0686},
	{"Berlin", 52.5200, 13.4050},
	{"Lisbon", 38.7223, -9.1393},
	{"Austin", 30.2672, -97.7431},
}

var categoryVocab = []string{
	"food", "music", "art", "nightlife", "coffee", "outdoors",
	"sports", "market", "architecture", "photography", "street-art", "parks",
}

var moodVocab = []string{
	"chill", "energetic", "cozy", "hidden-gem", "crowded", "romantic",
	"family-friendly", "late-night", "sunny", "rainy-day",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a demo user near the given anchor city.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(anchor Anchor, overrides ...func(*models.User)) (*models.User, error) {
	lat, lng := f.jitter(anchor, 10)
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		Password:  string(hashed),
		Bio:       gofakeit.Sentence(10),
		City:      anchor.City,
		Latitude:  &lat,
		Longitude: &lng,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post near the anchor without persisting it.
func (f *Factory) BuildPost(user *models.User, anchor Anchor, overrides ...func(*models.Post)) *models.Post {
	lat, lng := f.jitter(anchor, 8)
	post := &models.Post{
		Title:      gofakeit.Sentence(5),
		Content:    gofakeit.Paragraph(1, 3, 5, "\n"),
		ImageURL:   fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		UserID:     user.ID,
		Latitude:   &lat,
		Longitude:  &lng,
		Categories: f.pickTags(categoryVocab, 1, 3),
		Moods:      f.pickTags(moodVocab, 0, 2),
		IsActive:   true,
	}

	// realistic created_at spread over the last 30 days
	hoursBack := f.rng.Intn(30*24) + f.rng.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(hoursBack) * time.Hour)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// jitter returns coordinates offset from the anchor by up to maxKm in each
// axis, so demo data exercises the radius filter and widening paths.
func (f *Factory) jitter(anchor Anchor, maxKm float64) (float64, float64) {
	// about 111km per degree of latitude
	maxDeg := maxKm / 111.0
	lat := anchor.Lat + (f.rng.Float64()*2-1)*maxDeg
	lng := anchor.Lng + (f.rng.Float64()*2-1)*maxDeg
	return lat, lng
}

// commentBody returns a short fake comment.
func (f *Factory) commentBody() string {
	return gofakeit.Sentence(3 + f.rng.Intn(8))
}

func (f *Factory) pickTags(vocab []string, min, max int) models.StringList {
	n := min
	if max > min {
		n += f.rng.Intn(max - min + 1)
	}
	picked := models.StringList{}
	seen := map[string]struct{}{}
	for len(picked) < n {
		tag := vocab[f.rng.Intn(len(vocab))]
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		picked = append(picked, tag)
	}
	return picked
}
