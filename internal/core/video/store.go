// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package video

import "context"

// # Video Data Access

// VideoRepository defines the data access contract for video metadata.
type VideoRepository interface {

	/*
		Create persists a new video record.

		Parameters:
		  - context: context.Context
		  - video: *Video

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, video *Video) error

	/*
		FindByID returns the video with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Video: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*Video, error)

	/*
		FindBySlug returns the video with the given URL slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Video: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindBySlug(context context.Context, slug string) (*Video, error)

	/*
		Update persists changes to mutable metadata fields.

		Parameters:
		  - context: context.Context
		  - video: *Video

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, video *Video) error

	/*
		SoftDelete marks the video as deleted without removing the row.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	SoftDelete(context context.Context, id string) error

	/*
		ListByChannel returns a page of a channel's videos, newest first.

		Parameters:
		  - context: context.Context
		  - channelID: string
		  - limit: int
		  - offset: int

		Returns:
		  - []*Video: Page of videos
		  - int: Total matching count (for pagination metadata)
		  - error: Retrieval failures
	*/
	ListByChannel(context context.Context, channelID string, limit, offset int) ([]*Video, int, error)

	/*
		SearchByTitle returns public videos whose titles match the query.

		Parameters:
		  - context: context.Context
		  - query: string
		  - limit: int
		  - offset: int

		Returns:
		  - []*Video: Page of matches ranked by relevance
		  - int: Total matching count
		  - error: Retrieval failures
	*/
	SearchByTitle(context context.Context, query string, limit, offset int) ([]*Video, int, error)

	/*
		RegisterView atomically increments the view counter.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	RegisterView(context context.Context, id string) error
}

// # Rating Data Access

// RatingRepository defines the contract for reconciled reaction updates.
//
// Implementations must guarantee that the per-user state row and the
// denormalized counters change atomically, so the counters always equal the
// number of rows in each state.
type RatingRepository interface {

	/*
		Rate applies a reaction transition and returns the updated counters.

		Description: Runs in a single transaction with the previous state row
		locked, so concurrent ratings from the same user serialize instead of
		corrupting the counters.

		Parameters:
		  - context: context.Context
		  - videoID: string
		  - userID: string
		  - next: LikingState

		Returns:
		  - int64: Likes after the transition
		  - int64: Dislikes after the transition
		  - error: apperr.NotFound if the video does not exist
	*/
	Rate(context context.Context, videoID, userID string, next LikingState) (int64, int64, error)

	/*
		GetState returns the user's current reaction, StateNone if absent.

		Parameters:
		  - context: context.Context
		  - videoID: string
		  - userID: string

		Returns:
		  - LikingState: Current reaction
		  - error: Retrieval failures
	*/
	GetState(context context.Context, videoID, userID string) (LikingState, error)
}
