// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package comment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/minhvban/vidora/internal/platform/apperr"
	"github.com/minhvban/vidora/internal/platform/validate"
	"github.com/minhvban/vidora/pkg/uuid"
)

// Service orchestrates business logic for video comments.
type Service struct {
	commentRepository CommentRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository CommentRepository, logger *slog.Logger) *Service {
	return &Service{
		commentRepository: repository,
		logger:            logger,
	}
}

/*
Create posts a new comment on a video.

Parameters:
  - context: context.Context
  - videoID: string (UUID)
  - userID: string (UUID)
  - body: string

Returns:
  - *Comment: The persisted comment
  - error: Validation or persistence errors
*/
func (service *Service) Create(context context.Context, videoID, userID, body string) (*Comment, error) {
	body = strings.TrimSpace(body)

	validator := &validate.Validator{}
	validator.Required(FieldVideoID, videoID).UUID(FieldVideoID, videoID)
	validator.Required(FieldBody, body).MaxLen(FieldBody, body, MaxBodyLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:      uuid.New(),
		VideoID: videoID,
		UserID:  userID,
		Body:    body,
	}

	if err := service.commentRepository.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("video_id", videoID),
	)

	return comment, nil
}

/*
ListByVideo returns a page of a video's comments, newest first.

Parameters:
  - context: context.Context
  - videoID: string
  - limit: int
  - offset: int

Returns:
  - []*Comment: Page of comments
  - int: Total active count
  - error: Repository level errors
*/
func (service *Service) ListByVideo(context context.Context, videoID string, limit, offset int) ([]*Comment, int, error) {
	return service.commentRepository.ListByVideo(context, videoID, limit, offset)
}

/*
Delete removes a comment. Only the author may delete their own comment.

Parameters:
  - context: context.Context
  - commentID: string
  - userID: string (Caller identity)

Returns:
  - error: apperr.Forbidden for foreign comments, apperr.NotFound otherwise
*/
func (service *Service) Delete(context context.Context, commentID, userID string) error {
	comment, err := service.commentRepository.FindByID(context, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		return apperr.Forbidden("Only the author can delete this comment")
	}

	if err := service.commentRepository.SoftDelete(context, commentID); err != nil {
		return err
	}

	service.logger.Info("comment_deleted",
		slog.String("comment_id", commentID),
		slog.String("user_id", userID),
	)

	return nil
}

/*
TakeDown removes a comment regardless of authorship.

Description: Moderation path. The caller's role is enforced at the routing
layer; the service only records who performed the takedown.

Parameters:
  - context: context.Context
  - commentID: string
  - moderatorID: string

Returns:
  - error: apperr.NotFound for unknown or already deleted comments
*/
func (service *Service) TakeDown(context context.Context, commentID, moderatorID string) error {
	if err := service.commentRepository.SoftDelete(context, commentID); err != nil {
		return err
	}

	service.logger.Info("comment_taken_down",
		slog.String("comment_id", commentID),
		slog.String("moderator_id", moderatorID),
	)

	return nil
}
