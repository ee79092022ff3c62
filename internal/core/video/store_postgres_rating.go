// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package video

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhvban/vidora/internal/platform/apperr"
	"github.com/minhvban/vidora/internal/platform/database/schema"
)

// PostgresRatingRepository implements RatingRepository using pgx transactions.
type PostgresRatingRepository struct {
	pool *pgxpool.Pool
}

// NewRatingRepository creates a new PostgreSQL implementation of RatingRepository.
func NewRatingRepository(pool *pgxpool.Pool) *PostgresRatingRepository {
	return &PostgresRatingRepository{pool: pool}
}

/*
Rate applies a reaction transition inside a single transaction.

Description: The previous state row is read with SELECT ... FOR UPDATE so
concurrent ratings from the same user serialize on the row lock. Counter
adjustments use relative arithmetic (likes = likes + delta) against the
current stored value, never a value read earlier by the caller, which keeps
the counters exact under concurrency. The counter UPDATE doubles as the
existence check for the video.

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
func (repository *PostgresRatingRepository) Rate(context context.Context, videoID, userID string, next LikingState) (int64, int64, error) {
	lockStateQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s = $2
		FOR UPDATE`,
		schema.SocialLikeState.State, schema.SocialLikeState.Table,
		schema.SocialLikeState.UserID, schema.SocialLikeState.VideoID)

	adjustCountersQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = %s + $2, %s = %s + $3, %s = $4
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s, %s`,
		schema.CoreVideo.Table,
		schema.CoreVideo.Likes, schema.CoreVideo.Likes,
		schema.CoreVideo.Dislikes, schema.CoreVideo.Dislikes,
		schema.CoreVideo.UpdatedAt,
		schema.CoreVideo.ID, schema.CoreVideo.DeletedAt,
		schema.CoreVideo.Likes, schema.CoreVideo.Dislikes)

	upsertStateQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (%s, %s)
		DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		schema.SocialLikeState.Table,
		schema.SocialLikeState.UserID, schema.SocialLikeState.VideoID,
		schema.SocialLikeState.State, schema.SocialLikeState.CreatedAt,
		schema.SocialLikeState.UpdatedAt,
		schema.SocialLikeState.UserID, schema.SocialLikeState.VideoID,
		schema.SocialLikeState.State, schema.SocialLikeState.State,
		schema.SocialLikeState.UpdatedAt, schema.SocialLikeState.UpdatedAt)

	deleteStateQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialLikeState.Table,
		schema.SocialLikeState.UserID, schema.SocialLikeState.VideoID)

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return 0, 0, fmt.Errorf("postgres_rating_repo_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	// 1. Read and lock the previous state; a missing row means StateNone.
	previous := StateNone
	err = transaction.QueryRow(context, lockStateQuery, userID, videoID).Scan(&previous)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, fmt.Errorf("postgres_rating_repo_lock_failed: %w", err)
	}

	// 2. Adjust the counters; this also verifies the video exists.
	likesDelta, dislikesDelta := likeDelta(previous, next)

	var likes, dislikes int64
	err = transaction.QueryRow(context, adjustCountersQuery,
		videoID, likesDelta, dislikesDelta, time.Now(),
	).Scan(&likes, &dislikes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, apperr.NotFound("Video")
		}
		return 0, 0, fmt.Errorf("postgres_rating_repo_counters_failed: %w", err)
	}

	// 3. Write the new state row (or remove it for StateNone).
	if next == StateNone {
		if _, err := transaction.Exec(context, deleteStateQuery, userID, videoID); err != nil {
			return 0, 0, fmt.Errorf("postgres_rating_repo_delete_state_failed: %w", err)
		}
	} else {
		if _, err := transaction.Exec(context, upsertStateQuery, userID, videoID, next, time.Now()); err != nil {
			return 0, 0, fmt.Errorf("postgres_rating_repo_upsert_state_failed: %w", err)
		}
	}

	if err := transaction.Commit(context); err != nil {
		return 0, 0, fmt.Errorf("postgres_rating_repo_commit_failed: %w", err)
	}

	return likes, dislikes, nil
}

/*
GetState returns the user's current reaction, StateNone if absent.

Parameters:
  - context: context.Context
  - videoID: string
  - userID: string

Returns:
  - LikingState: Current reaction
  - error: Execution errors
*/
func (repository *PostgresRatingRepository) GetState(context context.Context, videoID, userID string) (LikingState, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialLikeState.State, schema.SocialLikeState.Table,
		schema.SocialLikeState.UserID, schema.SocialLikeState.VideoID)

	state := StateNone
	err := repository.pool.QueryRow(context, query, userID, videoID).Scan(&state)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StateNone, nil
		}
		return StateNone, fmt.Errorf("postgres_rating_repo_get_state_failed: %w", err)
	}

	return state, nil
}
