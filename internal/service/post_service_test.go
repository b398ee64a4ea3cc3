package service

import (
	"context"
	"testing"

	"waypost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubPostRepo is an in-memory PostRepository for service tests.
type stubPostRepo struct {
	posts  map[uint]*models.Post
	nextID uint
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: map[uint]*models.Post{}, nextID: 1}
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	post.ID = s.nextID
	s.nextID++
	copied := *post
	s.posts[post.ID] = &copied
	return nil
}

func (s *stubPostRepo) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *post
	return &copied, nil
}

func (s *stubPostRepo) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range s.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubPostRepo) ListActive(ctx context.Context) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range s.posts {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubPostRepo) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range s.posts {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubPostRepo) Update(ctx context.Context, post *models.Post) error {
	if _, ok := s.posts[post.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *post
	s.posts[post.ID] = &copied
	return nil
}

func (s *stubPostRepo) Delete(ctx context.Context, id uint) error {
	delete(s.posts, id)
	return nil
}

func (s *stubPostRepo) IncrementLikes(ctx context.Context, id uint, delta int) error {
	post, ok := s.posts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	post.LikesCount += delta
	return nil
}

func (s *stubPostRepo) IncrementComments(ctx context.Context, id uint, delta int) error {
	post, ok := s.posts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	post.CommentsCount += delta
	return nil
}

func floatPtr(f float64) *float64 { return &f }

func TestPostService_CreatePost(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, CreatePostInput{
		UserID:     1,
		Title:      "  Rooftop sunset  ",
		Content:    "golden hour",
		Latitude:   floatPtr(59.33),
		Longitude:  floatPtr(18.07),
		Categories: []string{" Food ", "food", "Music", ""},
		Moods:      []string{"Chill"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Rooftop sunset", post.Title)
	assert.True(t, post.IsActive)
	assert.Equal(t, models.StringList{"food", "music"}, post.Categories)
	assert.Equal(t, models.StringList{"chill"}, post.Moods)
}

func TestPostService_CreatePostValidation(t *testing.T) {
	svc := NewPostService(newStubPostRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreatePostInput
	}{
		{"empty title", CreatePostInput{UserID: 1, Title: "   "}},
		{"lat without lng", CreatePostInput{UserID: 1, Title: "x", Latitude: floatPtr(10)}},
		{"lng without lat", CreatePostInput{UserID: 1, Title: "x", Longitude: floatPtr(10)}},
		{"lat out of range", CreatePostInput{UserID: 1, Title: "x", Latitude: floatPtr(91), Longitude: floatPtr(0)}},
		{"lng out of range", CreatePostInput{UserID: 1, Title: "x", Latitude: floatPtr(0), Longitude: floatPtr(181)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(ctx, tt.input)
			require.Error(t, err)
			appErr, ok := err.(*models.AppError)
			require.True(t, ok)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestPostService_GetPostNotFound(t *testing.T) {
	svc := NewPostService(newStubPostRepo())

	_, err := svc.GetPost(context.Background(), 42)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostService_UpdatePostOwnership(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Title: "mine"})
	require.NoError(t, err)

	newTitle := "stolen"
	_, err = svc.UpdatePost(ctx, post.ID, 2, UpdatePostInput{Title: &newTitle})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)

	updated, err := svc.UpdatePost(ctx, post.ID, 1, UpdatePostInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "stolen", updated.Title)
}

func TestPostService_UpdatePostDeactivate(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Title: "mine"})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.UpdatePost(ctx, post.ID, 1, UpdatePostInput{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestPostService_DeletePostOwnership(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Title: "mine"})
	require.NoError(t, err)

	err = svc.DeletePost(ctx, post.ID, 2)
	require.Error(t, err)

	require.NoError(t, svc.DeletePost(ctx, post.ID, 1))
	_, err = svc.GetPost(ctx, post.ID)
	assert.Error(t, err)
}

func TestNormalizeTagsCap(t *testing.T) {
	tags := make([]string, 0, 15)
	for i := 0; i < 15; i++ {
		tags = append(tags, string(rune('a'+i)))
	}
	assert.Len(t, normalizeTags(tags), maxTags)
}
