// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package account

import (
	"context"
	"log/slog"

	"github.com/minhvban/vidora/internal/platform/validate"
)

// Service orchestrates profile reads and updates.
type Service struct {
	profileRepository ProfileRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository ProfileRepository, logger *slog.Logger) *Service {
	return &Service{
		profileRepository: repository,
		logger:            logger,
	}
}

/*
GetProfile fetches the caller's own profile.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Profile: Hydrated entity
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*Profile, error) {
	return service.profileRepository.FindByID(context, userID)
}

/*
UpdateProfile applies a partial update to the caller's own profile.

Description: Only name, bio, tel, and avatar are mutable here. Empty fields
keep their stored values.

Parameters:
  - context: context.Context
  - userID: string (Caller identity)
  - input: *Profile (Updated attributes)

Returns:
  - error: Validation errors or apperr.NotFound
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input *Profile) error {

	validator := &validate.Validator{}
	validator.MaxLen(FieldName, input.Name, MaxNameLength)
	validator.MaxLen(FieldBio, input.Bio, MaxBioLength)
	if input.Tel != "" {
		validator.Phone(FieldTel, input.Tel)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	input.ID = userID
	if err := service.profileRepository.UpdateProfile(context, input); err != nil {
		return err
	}

	service.logger.Info("profile_updated", slog.String("user_id", userID))

	return nil
}
