// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

// PostgreSQL implementation of the video metadata repository.
package video

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
)

// videoColumns is the canonical SELECT list shared by all lookups.
var videoColumns = strings.Join([]string{
	schema.CoreVideo.ID,
	schema.CoreVideo.ChannelID,
	schema.CoreVideo.Title,
	schema.CoreVideo.Description,
	schema.CoreVideo.Slug,
	schema.CoreVideo.VideoURL,
	schema.CoreVideo.CoverURL,
	schema.CoreVideo.Duration,
	schema.CoreVideo.Visibility,
	schema.CoreVideo.Views,
	schema.CoreVideo.Likes,
	schema.CoreVideo.Dislikes,
	schema.CoreVideo.PublishedAt,
	schema.CoreVideo.CreatedAt,
	schema.CoreVideo.UpdatedAt,
}, ", ")

// PostgresVideoRepository implements the VideoRepository interface using pgx.
type PostgresVideoRepository struct {
	pool *pgxpool.Pool
}

// NewVideoRepository creates a new PostgreSQL implementation of VideoRepository.
func NewVideoRepository(pool *pgxpool.Pool) *PostgresVideoRepository {
	return &PostgresVideoRepository{pool: pool}
}

// scanVideo hydrates a Video from a pgx row.
func scanVideo(row pgx.Row) (*Video, error) {
	video := &Video{}
	err := row.Scan(
		&video.ID,
		&video.ChannelID,
		&video.Title,
		&video.Description,
		&video.Slug,
		&video.VideoURL,
		&video.CoverURL,
		&video.Duration,
		&video.Visibility,
		&video.Views,
		&video.Likes,
		&video.Dislikes,
		&video.PublishedAt,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return video, nil
}

/*
Create persists a new video record into the core.video table.

Parameters:
  - context: context.Context
  - video: *Video

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresVideoRepository) Create(context context.Context, video *Video) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, 0, 0, $10, $11, $12)`,
		schema.CoreVideo.Table, videoColumns)

	now := time.Now()
	if video.CreatedAt.IsZero() {
		video.CreatedAt = now
	}
	video.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		video.ID,
		video.ChannelID,
		video.Title,
		video.Description,
		video.Slug,
		video.VideoURL,
		video.CoverURL,
		video.Duration,
		video.Visibility,
		video.PublishedAt,
		video.CreatedAt,
		video.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_video_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a video record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Video: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresVideoRepository) FindByID(context context.Context, id string) (*Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		videoColumns, schema.CoreVideo.Table, schema.CoreVideo.ID, schema.CoreVideo.DeletedAt)

	video, err := scanVideo(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Video")
		}
		return nil, fmt.Errorf("postgres_video_repo_find_by_id_failed: %w", err)
	}

	return video, nil
}

/*
FindBySlug retrieves a video record by its URL slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Video: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresVideoRepository) FindBySlug(context context.Context, slug string) (*Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		videoColumns, schema.CoreVideo.Table, schema.CoreVideo.Slug, schema.CoreVideo.DeletedAt)

	video, err := scanVideo(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Video")
		}
		return nil, fmt.Errorf("postgres_video_repo_find_by_slug_failed: %w", err)
	}

	return video, nil
}

/*
Update persists changes to a video's mutable metadata fields.

Description: COALESCE-style partial update: empty strings keep the stored
value, so callers only send the fields they change.

Parameters:
  - context: context.Context
  - video: *Video

Returns:
  - error: Update failures
*/
func (repository *PostgresVideoRepository) Update(context context.Context, video *Video) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = COALESCE(NULLIF($2, ''), %s),
		    %s = COALESCE(NULLIF($3, ''), %s),
		    %s = COALESCE(NULLIF($4, ''), %s),
		    %s = COALESCE(NULLIF($5, ''), %s),
		    %s = $6
		WHERE %s = $1 AND %s IS NULL`,
		schema.CoreVideo.Table,
		schema.CoreVideo.Title, schema.CoreVideo.Title,
		schema.CoreVideo.Description, schema.CoreVideo.Description,
		schema.CoreVideo.CoverURL, schema.CoreVideo.CoverURL,
		schema.CoreVideo.Visibility, schema.CoreVideo.Visibility,
		schema.CoreVideo.UpdatedAt,
		schema.CoreVideo.ID, schema.CoreVideo.DeletedAt,
	)

	video.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		video.ID,
		video.Title,
		video.Description,
		video.CoverURL,
		string(video.Visibility),
		video.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_video_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Video")
	}

	return nil
}

/*
SoftDelete marks a video as deleted using its ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresVideoRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1 AND %s IS NULL`,
		schema.CoreVideo.Table, schema.CoreVideo.DeletedAt,
		schema.CoreVideo.ID, schema.CoreVideo.DeletedAt)

	tag, err := repository.pool.Exec(context, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_video_repo_soft_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Video")
	}

	return nil
}

/*
ListByChannel returns a page of a channel's videos, newest first.

Parameters:
  - context: context.Context
  - channelID: string
  - limit: int
  - offset: int

Returns:
  - []*Video: Page of videos
  - int: Total matching count
  - error: Execution errors
*/
func (repository *PostgresVideoRepository) ListByChannel(context context.Context, channelID string, limit, offset int) ([]*Video, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1 AND %s IS NULL`,
		schema.CoreVideo.Table, schema.CoreVideo.ChannelID, schema.CoreVideo.DeletedAt)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, channelID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_video_repo_count_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3`,
		videoColumns, schema.CoreVideo.Table,
		schema.CoreVideo.ChannelID, schema.CoreVideo.DeletedAt,
		schema.CoreVideo.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, channelID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_video_repo_list_failed: %w", err)
	}
	defer rows.Close()

	videos := []*Video{}
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_video_repo_scan_failed: %w", err)
		}
		videos = append(videos, video)
	}

	return videos, total, rows.Err()
}

/*
SearchByTitle returns public videos whose titles match the query.

Description: Postgres full-text search with an ILIKE fallback condition, so
partial words still match. Only public, non-deleted videos are discoverable.

Parameters:
  - context: context.Context
  - search: string
  - limit: int
  - offset: int

Returns:
  - []*Video: Page of matches ranked by text relevance, then recency
  - int: Total matching count
  - error: Execution errors
*/
func (repository *PostgresVideoRepository) SearchByTitle(context context.Context, search string, limit, offset int) ([]*Video, int, error) {
	matchCondition := fmt.Sprintf(`
		%s = 'public' AND %s IS NULL
		AND (to_tsvector('simple', %s) @@ plainto_tsquery('simple', $1)
		     OR %s ILIKE '%%' || $1 || '%%')`,
		schema.CoreVideo.Visibility, schema.CoreVideo.DeletedAt,
		schema.CoreVideo.Title, schema.CoreVideo.Title,
	)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`,
		schema.CoreVideo.Table, matchCondition)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_video_repo_search_count_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY ts_rank(to_tsvector('simple', %s), plainto_tsquery('simple', $1)) DESC,
		         %s DESC
		LIMIT $2 OFFSET $3`,
		videoColumns, schema.CoreVideo.Table, matchCondition,
		schema.CoreVideo.Title, schema.CoreVideo.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, search, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_video_repo_search_failed: %w", err)
	}
	defer rows.Close()

	videos := []*Video{}
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_video_repo_search_scan_failed: %w", err)
		}
		videos = append(videos, video)
	}

	return videos, total, rows.Err()
}

/*
RegisterView atomically increments the view counter.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresVideoRepository) RegisterView(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1 AND %s IS NULL`,
		schema.CoreVideo.Table,
		schema.CoreVideo.Views, schema.CoreVideo.Views,
		schema.CoreVideo.ID, schema.CoreVideo.DeletedAt)

	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_video_repo_register_view_failed: %w", err)
	}

	return nil
}
