// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package channel

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

// PostgresSubscriptionRepository implements SubscriptionRepository using pgx
// transactions.
type PostgresSubscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository creates a new PostgreSQL implementation of SubscriptionRepository.
func NewSubscriptionRepository(pool *pgxpool.Pool) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{pool: pool}
}

/*
Subscribe inserts a membership row and bumps the counter atomically.

Description: ON CONFLICT DO NOTHING makes repeat subscriptions no-ops; the
counter only moves when the insert actually created a row. The counter
UPDATE uses relative arithmetic against the stored value and doubles as the
channel existence check.

Parameters:
  - context: context.Context
  - userID: string
  - channelID: string

Returns:
  - int64: Subscriber count after the operation
  - error: apperr.NotFound when the channel does not exist
*/
func (repository *PostgresSubscriptionRepository) Subscribe(context context.Context, userID, channelID string) (int64, error) {
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s) DO NOTHING`,
		schema.UserSubscription.Table,
		schema.UserSubscription.UserID, schema.UserSubscription.ChannelID,
		schema.UserSubscription.CreatedAt,
		schema.UserSubscription.UserID, schema.UserSubscription.ChannelID)

	counterQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = %s + $2, %s = $3
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s`,
		schema.UserChannel.Table,
		schema.UserChannel.Subscribers, schema.UserChannel.Subscribers,
		schema.UserChannel.UpdatedAt,
		schema.UserChannel.ID, schema.UserChannel.DeletedAt,
		schema.UserChannel.Subscribers)

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return 0, fmt.Errorf("postgres_subscription_repo_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	tag, err := transaction.Exec(context, insertQuery, userID, channelID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("postgres_subscription_repo_insert_failed: %w", err)
	}

	var count int64
	err = transaction.QueryRow(context, counterQuery, channelID, tag.RowsAffected(), time.Now()).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperr.NotFound("Channel")
		}
		return 0, fmt.Errorf("postgres_subscription_repo_counter_failed: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return 0, fmt.Errorf("postgres_subscription_repo_commit_failed: %w", err)
	}

	return count, nil
}

/*
Unsubscribe deletes the membership row and lowers the counter atomically.

Description: The counter only moves when a row was actually deleted, so
unsubscribing while not subscribed never drives it negative.

Parameters:
  - context: context.Context
  - userID: string
  - channelID: string

Returns:
  - int64: Subscriber count after the operation
  - error: apperr.NotFound when the channel does not exist
*/
func (repository *PostgresSubscriptionRepository) Unsubscribe(context context.Context, userID, channelID string) (int64, error) {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.UserSubscription.Table,
		schema.UserSubscription.UserID, schema.UserSubscription.ChannelID)

	counterQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = %s - $2, %s = $3
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s`,
		schema.UserChannel.Table,
		schema.UserChannel.Subscribers, schema.UserChannel.Subscribers,
		schema.UserChannel.UpdatedAt,
		schema.UserChannel.ID, schema.UserChannel.DeletedAt,
		schema.UserChannel.Subscribers)

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return 0, fmt.Errorf("postgres_subscription_repo_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	tag, err := transaction.Exec(context, deleteQuery, userID, channelID)
	if err != nil {
		return 0, fmt.Errorf("postgres_subscription_repo_delete_failed: %w", err)
	}

	var count int64
	err = transaction.QueryRow(context, counterQuery, channelID, tag.RowsAffected(), time.Now()).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperr.NotFound("Channel")
		}
		return 0, fmt.Errorf("postgres_subscription_repo_counter_failed: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return 0, fmt.Errorf("postgres_subscription_repo_commit_failed: %w", err)
	}

	return count, nil
}

/*
IsSubscribed reports whether the membership row exists.

Parameters:
  - context: context.Context
  - userID: string
  - channelID: string

Returns:
  - bool: true when the user is subscribed
  - error: Execution errors
*/
func (repository *PostgresSubscriptionRepository) IsSubscribed(context context.Context, userID, channelID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE %s = $1 AND %s = $2
		)`,
		schema.UserSubscription.Table,
		schema.UserSubscription.UserID, schema.UserSubscription.ChannelID)

	var subscribed bool
	err := repository.pool.QueryRow(context, query, userID, channelID).Scan(&subscribed)
	if err != nil {
		return false, fmt.Errorf("postgres_subscription_repo_exists_failed: %w", err)
	}

	return subscribed, nil
}
