package service

import (
	"context"
	"encoding/json"
	"io"

	"traderizz/internal/api/dto"
	"traderizz/internal/api/repository"
	"traderizz/internal/entity"
	"traderizz/pkg/logger"
	"traderizz/pkg/storage"

	"gorm.io/datatypes"
)

// ProfileService defines the interface for profile management.
type ProfileService interface {
	Get(ctx context.Context, userID uint) (*dto.ProfileResponse, error)
	Update(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UpdateAvatar(ctx context.Context, userID uint, image io.Reader) (*dto.ProfileResponse, error)
}

// NewProfileService creates a new profile service.
func NewProfileService(profileRepo repository.ProfileRepository, blobStore *storage.Store, logger *logger.Logger) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		blobStore:   blobStore,
		logger:      logger,
	}
}

type profileService struct {
	profileRepo repository.ProfileRepository
	blobStore   *storage.Store
	logger      *logger.Logger
}

// Get retrieves the user's profile.
func (s *profileService) Get(ctx context.Context, userID uint) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profileToResponse(profile), nil
}

// Update replaces username, bio and preferences on the user's profile.
func (s *profileService) Update(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Username = req.Username
	profile.Bio = req.Bio
	if req.Preferences != nil {
		profile.Preferences = datatypes.JSON(req.Preferences)
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		s.logger.Error("Failed to update profile", logger.ErrorField(err), logger.Field("user_id", userID))
		return nil, err
	}
	return profileToResponse(profile), nil
}

// UpdateAvatar stores a new avatar image and points the profile at it.
func (s *profileService) UpdateAvatar(ctx context.Context, userID uint, image io.Reader) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.blobStore.SaveImage("avatars", image)
	if err != nil {
		return nil, err
	}

	profile.AvatarURL = url
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		s.logger.Error("Failed to update avatar", logger.ErrorField(err), logger.Field("user_id", userID))
		return nil, err
	}
	return profileToResponse(profile), nil
}

func profileToResponse(profile *entity.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		UserID:      profile.UserID,
		Username:    profile.Username,
		Bio:         profile.Bio,
		AvatarURL:   profile.AvatarURL,
		Email:       profile.Email,
		Preferences: json.RawMessage(profile.Preferences),
	}
}
