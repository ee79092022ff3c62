// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package comment

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

// commentColumns is the canonical SELECT list shared by all lookups.
var commentColumns = strings.Join([]string{
	schema.SocialComment.ID,
	schema.SocialComment.VideoID,
	schema.SocialComment.UserID,
	schema.SocialComment.Body,
	schema.SocialComment.CreatedAt,
	schema.SocialComment.UpdatedAt,
}, ", ")

// PostgresCommentRepository implements CommentRepository using pgx.
type PostgresCommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new PostgreSQL implementation of CommentRepository.
func NewCommentRepository(pool *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

func (repository *PostgresCommentRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $5)`,
		schema.SocialComment.Table, commentColumns)

	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		comment.ID,
		comment.VideoID,
		comment.UserID,
		comment.Body,
		now,
	)

	if err != nil {
		return fmt.Errorf("postgres_comment_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *PostgresCommentRepository) FindByID(context context.Context, id string) (*Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL`,
		commentColumns, schema.SocialComment.Table,
		schema.SocialComment.ID, schema.SocialComment.DeletedAt)

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&comment.ID,
		&comment.VideoID,
		&comment.UserID,
		&comment.Body,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres_comment_repo_find_failed: %w", err)
	}

	return comment, nil
}

func (repository *PostgresCommentRepository) ListByVideo(context context.Context, videoID string, limit, offset int) ([]*Comment, int, error) {
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s
		WHERE %s = $1 AND %s IS NULL`,
		schema.SocialComment.Table,
		schema.SocialComment.VideoID, schema.SocialComment.DeletedAt)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, videoID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_count_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3`,
		commentColumns, schema.SocialComment.Table,
		schema.SocialComment.VideoID, schema.SocialComment.DeletedAt,
		schema.SocialComment.CreatedAt)

	rows, err := repository.pool.Query(context, query, videoID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		comment := &Comment{}
		err := rows.Scan(
			&comment.ID,
			&comment.VideoID,
			&comment.UserID,
			&comment.Body,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_comment_repo_scan_failed: %w", err)
		}
		comments = append(comments, comment)
	}

	return comments, total, rows.Err()
}

func (repository *PostgresCommentRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1 AND %s IS NULL`,
		schema.SocialComment.Table, schema.SocialComment.DeletedAt,
		schema.SocialComment.ID, schema.SocialComment.DeletedAt)

	tag, err := repository.pool.Exec(context, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}
