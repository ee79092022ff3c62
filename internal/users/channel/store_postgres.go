// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package channel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhvban/vidora/internal/platform/apperr"
	"github.com/minhvban/vidora/internal/platform/database/schema"
	"github.com/minhvban/vidora/internal/platform/dberr"
)

// channelColumns is the canonical SELECT list shared by all lookups.
var channelColumns = strings.Join([]string{
	schema.UserChannel.ID,
	schema.UserChannel.OwnerID,
	schema.UserChannel.Handle,
	schema.UserChannel.Title,
	schema.UserChannel.Description,
	schema.UserChannel.AvatarURL,
	schema.UserChannel.CoverURL,
	schema.UserChannel.Subscribers,
	schema.UserChannel.CreatedAt,
	schema.UserChannel.UpdatedAt,
}, ", ")

// PostgresChannelRepository implements ChannelRepository using pgx.
type PostgresChannelRepository struct {
	pool *pgxpool.Pool
}

// NewChannelRepository creates a new PostgreSQL implementation of ChannelRepository.
func NewChannelRepository(pool *pgxpool.Pool) *PostgresChannelRepository {
	return &PostgresChannelRepository{pool: pool}
}

func scanChannel(row pgx.Row) (*Channel, error) {
	channel := &Channel{}
	err := row.Scan(
		&channel.ID,
		&channel.OwnerID,
		&channel.Handle,
		&channel.Title,
		&channel.Description,
		&channel.AvatarURL,
		&channel.CoverURL,
		&channel.Subscribers,
		&channel.CreatedAt,
		&channel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return channel, nil
}

func (repository *PostgresChannelRepository) Create(context context.Context, channel *Channel) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $8)`,
		schema.UserChannel.Table, channelColumns)

	now := time.Now()
	channel.CreatedAt = now
	channel.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		channel.ID,
		channel.OwnerID,
		channel.Handle,
		channel.Title,
		channel.Description,
		channel.AvatarURL,
		channel.CoverURL,
		now,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Channel already exists")
		}
		return fmt.Errorf("postgres_channel_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *PostgresChannelRepository) FindByID(context context.Context, id string) (*Channel, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		channelColumns, schema.UserChannel.Table, schema.UserChannel.ID, schema.UserChannel.DeletedAt)

	channel, err := scanChannel(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Channel")
		}
		return nil, fmt.Errorf("postgres_channel_repo_find_by_id_failed: %w", err)
	}

	return channel, nil
}

func (repository *PostgresChannelRepository) FindByHandle(context context.Context, handle string) (*Channel, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		channelColumns, schema.UserChannel.Table, schema.UserChannel.Handle, schema.UserChannel.DeletedAt)

	channel, err := scanChannel(repository.pool.QueryRow(context, query, handle))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Channel")
		}
		return nil, fmt.Errorf("postgres_channel_repo_find_by_handle_failed: %w", err)
	}

	return channel, nil
}

func (repository *PostgresChannelRepository) FindByOwner(context context.Context, ownerID string) (*Channel, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		channelColumns, schema.UserChannel.Table, schema.UserChannel.OwnerID, schema.UserChannel.DeletedAt)

	channel, err := scanChannel(repository.pool.QueryRow(context, query, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Channel")
		}
		return nil, fmt.Errorf("postgres_channel_repo_find_by_owner_failed: %w", err)
	}

	return channel, nil
}

func (repository *PostgresChannelRepository) Update(context context.Context, channel *Channel) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = COALESCE(NULLIF($2, ''), %s),
		    %s = COALESCE(NULLIF($3, ''), %s),
		    %s = COALESCE(NULLIF($4, ''), %s),
		    %s = COALESCE(NULLIF($5, ''), %s),
		    %s = $6
		WHERE %s = $1 AND %s IS NULL`,
		schema.UserChannel.Table,
		schema.UserChannel.Title, schema.UserChannel.Title,
		schema.UserChannel.Description, schema.UserChannel.Description,
		schema.UserChannel.AvatarURL, schema.UserChannel.AvatarURL,
		schema.UserChannel.CoverURL, schema.UserChannel.CoverURL,
		schema.UserChannel.UpdatedAt,
		schema.UserChannel.ID, schema.UserChannel.DeletedAt)

	channel.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		channel.ID,
		channel.Title,
		channel.Description,
		channel.AvatarURL,
		channel.CoverURL,
		channel.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_channel_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Channel")
	}

	return nil
}
