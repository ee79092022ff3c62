// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package video

import (
	"context"
	"log/slog"
	"strings"

	"github.com/minhvban/vidora/internal/platform/validate"
	"github.com/minhvban/vidora/pkg/slug"
	"github.com/minhvban/vidora/pkg/uuid"
)

// # Service Layer

// Service orchestrates the business logic for the video catalogue.
type Service struct {
	videoRepo  VideoRepository
	ratingRepo RatingRepository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(videoRepo VideoRepository, ratingRepo RatingRepository, logger *slog.Logger) *Service {
	return &Service{
		videoRepo:  videoRepo,
		ratingRepo: ratingRepo,
		logger:     logger,
	}
}

// # Video Lookups

/*
GetVideo fetches a single video by UUID or SEO slug and registers a view.

Description: The service determines the lookup strategy from the identifier
format. The view counter increments atomically and best-effort: a metrics
failure never blocks playback.

Parameters:
  - context: context.Context
  - identifier: string (UUID or Slug)

Returns:
  - *Video: The hydrated domain entity
  - error: ErrNotFound if no match is found
*/
func (service *Service) GetVideo(context context.Context, identifier string) (*Video, error) {
	var found *Video
	var err error

	// Identity format detection
	if isUUID(identifier) {
		found, err = service.videoRepo.FindByID(context, identifier)
	} else {
		found, err = service.videoRepo.FindBySlug(context, identifier)
	}
	if err != nil {
		return nil, err
	}

	if viewErr := service.videoRepo.RegisterView(context, found.ID); viewErr != nil {
		service.logger.Warn("video_view_count_failed",
			slog.String("video_id", found.ID),
			slog.Any("error", viewErr),
		)
	} else {
		found.Views++
	}

	return found, nil
}

/*
ListByChannel retrieves a paginated collection of a channel's videos.

Parameters:
  - context: context.Context
  - channelID: string
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Video: Slice of video records, newest first
  - int: Total count for pagination metadata
  - error: Repository level errors
*/
func (service *Service) ListByChannel(context context.Context, channelID string, limit, offset int) ([]*Video, int, error) {
	return service.videoRepo.ListByChannel(context, channelID, limit, offset)
}

/*
Search returns public videos whose titles match the query.

Description: Delegates matching and ranking to the search store. Blank
queries yield an empty result instead of a full-table scan.

Parameters:
  - context: context.Context
  - query: string
  - limit: int
  - offset: int

Returns:
  - []*Video: Page of matches
  - int: Total matching count
  - error: Repository level errors
*/
func (service *Service) Search(context context.Context, query string, limit, offset int) ([]*Video, int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*Video{}, 0, nil
	}

	return service.videoRepo.SearchByTitle(context, query, limit, offset)
}

// # Video Management

/*
CreateVideo initialises a new video record in the system.

Description: Performs business validation on the metadata, generates a
stable UUID v7 identity, and creates an SEO-friendly slug before persisting.

Parameters:
  - context: context.Context
  - video: *Video (The entity to be persisted)

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) CreateVideo(context context.Context, video *Video) error {

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldTitle, video.Title).MaxLen(FieldTitle, video.Title, 200)
	validator.Required(FieldVideoURL, video.VideoURL)
	validator.Required(FieldChannelID, video.ChannelID).UUID(FieldChannelID, video.ChannelID)
	validator.Custom(FieldDuration, video.Duration < 0, "Duration cannot be negative")

	// Visibility defaults to public when omitted
	if video.Visibility == "" {
		video.Visibility = VisibilityPublic
	}
	validator.Custom(FieldVisibility, !video.Visibility.IsValid(), "Unknown visibility")

	if err := validator.Err(); err != nil {
		return err
	}

	// Identity & Slug generation
	if video.ID == "" {
		video.ID = uuid.New()
	}
	if video.Slug == "" {
		video.Slug = slug.From(video.Title)
	}

	if err := service.videoRepo.Create(context, video); err != nil {
		return err
	}

	service.logger.Info("video_created",
		slog.String("video_id", video.ID),
		slog.String("channel_id", video.ChannelID),
	)

	return nil
}

/*
UpdateVideo applies modifications to an existing video.

Description: Supports partial updates. Non-empty fields in the input entity
overwrite existing values.

Parameters:
  - context: context.Context
  - video: *Video (Updated attributes)

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) UpdateVideo(context context.Context, video *Video) error {

	validator := &validate.Validator{}
	if video.Title != "" {
		validator.MaxLen(FieldTitle, video.Title, 200)
	}
	if video.Slug != "" {
		validator.Slug(FieldSlug, video.Slug)
	}
	if video.Visibility != "" {
		validator.Custom(FieldVisibility, !video.Visibility.IsValid(), "Unknown visibility")
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.videoRepo.Update(context, video); err != nil {
		return err
	}

	service.logger.Info("video_updated", slog.String("video_id", video.ID))

	return nil
}

/*
DeleteVideo removes a video from active discovery.

Description: Implements soft-delete logic. The record remains in the database
but no longer appears in lookups or listings.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: Persistence error if removal fails
*/
func (service *Service) DeleteVideo(context context.Context, id string) error {
	if err := service.videoRepo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.Warn("video_deleted", slog.String("video_id", id))

	return nil
}

// # Internal Helpers

// isUUID returns true if the string matches the standard UUID length.
func isUUID(s string) bool {
	return len(s) == 36
}
