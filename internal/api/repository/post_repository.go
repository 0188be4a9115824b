package repository

import (
	"context"

	"traderizz/internal/entity"

	"gorm.io/gorm"
)

// PostRepository defines the interface for feed post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	FindAll(ctx context.Context) ([]entity.Post, error)
}

// NewPostRepository creates a new GORM-based post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

type postRepository struct {
	db *gorm.DB
}

// Create inserts a new feed post.
func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// FindAll retrieves the feed, newest first.
func (r *postRepository) FindAll(ctx context.Context) ([]entity.Post, error) {
	var posts []entity.Post
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
