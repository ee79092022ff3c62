// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package comment

import "context"

// # Repository Contracts

// CommentRepository defines persistence operations for video comments.
type CommentRepository interface {

	/*
		Create persists a new comment.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, comment *Comment) error

	/*
		FindByID retrieves a single active comment.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Comment: Hydrated entity
		  - error: apperr.NotFound or execution errors
	*/
	FindByID(context context.Context, id string) (*Comment, error)

	/*
		ListByVideo returns a page of a video's comments, newest first.

		Parameters:
		  - context: context.Context
		  - videoID: string
		  - limit: int
		  - offset: int

		Returns:
		  - []*Comment: Page of comments
		  - int: Total active count for the video
		  - error: Execution errors
	*/
	ListByVideo(context context.Context, videoID string, limit, offset int) ([]*Comment, int, error)

	/*
		SoftDelete marks a comment as deleted.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or execution errors
	*/
	SoftDelete(context context.Context, id string) error
}
