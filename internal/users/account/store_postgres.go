// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package account

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

// PostgresProfileRepository implements ProfileRepository using pgx.
type PostgresProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new PostgreSQL implementation of ProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{pool: pool}
}

func (repository *PostgresProfileRepository) FindByID(context context.Context, id string) (*Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL`,
		schema.UserAccount.ID, schema.UserAccount.Nick, schema.UserAccount.Name,
		schema.UserAccount.Bio, schema.UserAccount.Tel, schema.UserAccount.Email,
		schema.UserAccount.AvatarURL, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt)

	profile := &Profile{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&profile.ID,
		&profile.Nick,
		&profile.Name,
		&profile.Bio,
		&profile.Tel,
		&profile.Email,
		&profile.AvatarURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_profile_repo_find_failed: %w", err)
	}

	return profile, nil
}

func (repository *PostgresProfileRepository) UpdateProfile(context context.Context, profile *Profile) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = COALESCE(NULLIF($2, ''), %s),
		    %s = COALESCE(NULLIF($3, ''), %s),
		    %s = COALESCE(NULLIF($4, ''), %s),
		    %s = COALESCE(NULLIF($5, ''), %s),
		    %s = $6
		WHERE %s = $1 AND %s IS NULL`,
		schema.UserAccount.Table,
		schema.UserAccount.Name, schema.UserAccount.Name,
		schema.UserAccount.Bio, schema.UserAccount.Bio,
		schema.UserAccount.Tel, schema.UserAccount.Tel,
		schema.UserAccount.AvatarURL, schema.UserAccount.AvatarURL,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt)

	profile.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		profile.ID,
		profile.Name,
		profile.Bio,
		profile.Tel,
		profile.AvatarURL,
		profile.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_profile_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}
