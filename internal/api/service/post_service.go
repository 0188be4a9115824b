package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"traderizz/internal/api/dto"
	"traderizz/internal/api/repository"
	"traderizz/internal/entity"
	"traderizz/pkg/logger"
	"traderizz/pkg/storage"
)

// ErrCaptionRequired is returned when creating a post without a caption.
var ErrCaptionRequired = errors.New("caption is required")

// PostService defines the interface for the shared feed.
type PostService interface {
	Create(ctx context.Context, userID uint, caption string, image io.Reader) (*dto.PostResponse, error)
	List(ctx context.Context) ([]dto.PostResponse, error)
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, blobStore *storage.Store, logger *logger.Logger) PostService {
	return &postService{
		postRepo:  postRepo,
		blobStore: blobStore,
		logger:    logger,
	}
}

type postService struct {
	postRepo  repository.PostRepository
	blobStore *storage.Store
	logger    *logger.Logger
}

// Create stores the image, if any, and appends the post to the feed.
func (s *postService) Create(ctx context.Context, userID uint, caption string, image io.Reader) (*dto.PostResponse, error) {
	caption = strings.TrimSpace(caption)
	if caption == "" {
		return nil, ErrCaptionRequired
	}

	var imageURL string
	if image != nil {
		url, err := s.blobStore.SaveImage("posts", image)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	post := &entity.Post{UserID: userID, Caption: caption, ImageURL: imageURL}
	if err := s.postRepo.Create(ctx, post); err != nil {
		s.logger.Error("Failed to create post", logger.ErrorField(err), logger.Field("user_id", userID))
		return nil, err
	}

	s.logger.Info("Post created", logger.Field("post_id", post.ID), logger.Field("user_id", userID))
	return postToResponse(post), nil
}

// List returns the feed, newest first.
func (s *postService) List(ctx context.Context) ([]dto.PostResponse, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, *postToResponse(&posts[i]))
	}
	return responses, nil
}

func postToResponse(post *entity.Post) *dto.PostResponse {
	return &dto.PostResponse{
		ID:        post.ID,
		Caption:   post.Caption,
		ImageURL:  post.ImageURL,
		CreatedAt: post.CreatedAt,
		AuthorID:  post.UserID,
	}
}
