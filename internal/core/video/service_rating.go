// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package video

import (
	"context"
	"log/slog"

	"github.com/minhvban/vidora/internal/platform/validate"
)

// # Rating Reconciliation

/*
Rate applies a user's reaction to a video and reconciles the counters.

Description: The previous state is read under a row lock inside the store
transaction, the counter deltas are derived from the (previous, next)
transition, and both the state row and the counters commit together. Rating
with the current state again is a no-op; rating with StateNone withdraws the
reaction entirely.

Parameters:
  - context: context.Context
  - videoID: string (UUID)
  - userID: string (UUID)
  - next: LikingState

Returns:
  - *Rating: New state plus authoritative counters
  - error: Validation errors or apperr.NotFound for a missing video
*/
func (service *Service) Rate(context context.Context, videoID, userID string, next LikingState) (*Rating, error) {

	validator := &validate.Validator{}
	validator.Required(FieldID, videoID).UUID(FieldID, videoID)
	validator.Custom(FieldState, !next.IsValid(), "Unknown liking state")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	likes, dislikes, err := service.ratingRepo.Rate(context, videoID, userID, next)
	if err != nil {
		return nil, err
	}

	service.logger.Info("video_rated",
		slog.String("video_id", videoID),
		slog.String("user_id", userID),
		slog.String("state", string(next)),
	)

	return &Rating{
		VideoID:  videoID,
		State:    next,
		Likes:    likes,
		Dislikes: dislikes,
	}, nil
}

/*
GetRating returns the caller's current reaction to a video.

Parameters:
  - context: context.Context
  - videoID: string
  - userID: string

Returns:
  - LikingState: Current reaction, StateNone if no reaction exists
  - error: Retrieval failures
*/
func (service *Service) GetRating(context context.Context, videoID, userID string) (LikingState, error) {
	return service.ratingRepo.GetState(context, videoID, userID)
}
