// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

// PostgreSQL implementations of the auth repositories.
//
// # Architecture
//
// Repositories in this file are strictly separated from domain logic. They
// implement the domain-defined interfaces (e.g., [UserRepository]) using the
// [pgxpool.Pool] connection manager.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhvban/vidora/internal/platform/apperr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
FindByID retrieves a user record by their unique ID.

Description: Primary key resolution for user accounts, filtering out
soft-deleted rows.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `
		SELECT id, nick, name, bio, tel, email, role, createdat, updatedat
		FROM users.account
		WHERE id = $1 AND deletedat IS NULL`

	user := &User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Nick,
		&user.Name,
		&user.Bio,
		&user.Tel,
		&user.Email,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
FindByNick retrieves a user record by their public nick.

Description: Nick uniqueness check and profile resolution.

Parameters:
  - context: context.Context
  - nick: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByNick(context context.Context, nick string) (*User, error) {
	const query = `
		SELECT id, nick, name, bio, tel, email, role, createdat, updatedat
		FROM users.account
		WHERE nick = $1 AND deletedat IS NULL`

	user := &User{}
	err := repository.pool.QueryRow(context, query, nick).Scan(
		&user.ID,
		&user.Nick,
		&user.Name,
		&user.Bio,
		&user.Tel,
		&user.Email,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_nick_failed: %w", err)
	}

	return user, nil
}

/*
CreateWithCredential persists a new account and its first credential atomically.

Description: Both inserts run inside one transaction; a unique-constraint
violation on either table rolls back the whole enrollment.

Parameters:
  - context: context.Context
  - user: *User
  - credential: *Credential

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) CreateWithCredential(context context.Context, user *User, credential *Credential) error {
	const insertUser = `
		INSERT INTO users.account (
			id, nick, name, bio, tel, email, role, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	const insertCredential = `
		INSERT INTO users.credential (
			userid, method, username, secrethash, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	credential.CreatedAt = now
	credential.UpdatedAt = now

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	_, err = transaction.Exec(context, insertUser,
		user.ID,
		user.Nick,
		user.Name,
		user.Bio,
		user.Tel,
		user.Email,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	_, err = transaction.Exec(context, insertCredential,
		credential.UserID,
		credential.Method,
		credential.Username,
		credential.SecretHash,
		credential.CreatedAt,
		credential.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_credential_repo_create_failed: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_user_repo_commit_failed: %w", err)
	}

	return nil
}

// # Credential Repository

// PostgresCredentialRepository implements the CredentialRepository interface.
type PostgresCredentialRepository struct {
	pool *pgxpool.Pool
}

// NewCredentialRepository creates a new PostgreSQL implementation of CredentialRepository.
func NewCredentialRepository(pool *pgxpool.Pool) *PostgresCredentialRepository {
	return &PostgresCredentialRepository{pool: pool}
}

/*
Find retrieves a credential by its (username, method) identity.

Parameters:
  - context: context.Context
  - username: string
  - method: Method

Returns:
  - *Credential: Hydrated credential
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresCredentialRepository) Find(context context.Context, username string, method Method) (*Credential, error) {
	const query = `
		SELECT userid, method, username, secrethash, createdat, updatedat
		FROM users.credential
		WHERE username = $1 AND method = $2`

	credential := &Credential{}
	err := repository.pool.QueryRow(context, query, username, method).Scan(
		&credential.UserID,
		&credential.Method,
		&credential.Username,
		&credential.SecretHash,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Credential")
		}
		return nil, fmt.Errorf("postgres_credential_repo_find_failed: %w", err)
	}

	return credential, nil
}

/*
UpdateSecret replaces the secret hash on an existing credential.

Parameters:
  - context: context.Context
  - username: string
  - method: Method
  - newHash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresCredentialRepository) UpdateSecret(context context.Context, username string, method Method, newHash string) error {
	const query = `
		UPDATE users.credential
		SET secrethash = $3, updatedat = $4
		WHERE username = $1 AND method = $2`

	_, err := repository.pool.Exec(context, query, username, method, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_credential_repo_update_secret_failed: %w", err)
	}

	return nil
}

// # Verification Code Repository

// PostgresVerificationCodeRepository implements VerificationCodeRepository.
type PostgresVerificationCodeRepository struct {
	pool *pgxpool.Pool
}

// NewVerificationCodeRepository creates a new PostgreSQL implementation of VerificationCodeRepository.
func NewVerificationCodeRepository(pool *pgxpool.Pool) *PostgresVerificationCodeRepository {
	return &PostgresVerificationCodeRepository{pool: pool}
}

/*
Upsert stores a code row, replacing any previous code for (username, purpose).

Description: ON CONFLICT keeps exactly one live code per flow, so only the
most recently issued code is ever accepted.

Parameters:
  - context: context.Context
  - code: *VerificationCode

Returns:
  - error: Execution errors
*/
func (repository *PostgresVerificationCodeRepository) Upsert(context context.Context, code *VerificationCode) error {
	const query = `
		INSERT INTO users.verificationcode (username, purpose, codehash, issuedat)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username, purpose)
		DO UPDATE SET codehash = EXCLUDED.codehash, issuedat = EXCLUDED.issuedat`

	if code.IssuedAt.IsZero() {
		code.IssuedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		code.Username,
		code.Purpose,
		code.CodeHash,
		code.IssuedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_code_repo_upsert_failed: %w", err)
	}

	return nil
}

/*
Find retrieves the pending code for (username, purpose).

Parameters:
  - context: context.Context
  - username: string
  - purpose: Purpose

Returns:
  - *VerificationCode: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresVerificationCodeRepository) Find(context context.Context, username string, purpose Purpose) (*VerificationCode, error) {
	const query = `
		SELECT username, purpose, codehash, issuedat
		FROM users.verificationcode
		WHERE username = $1 AND purpose = $2`

	code := &VerificationCode{}
	err := repository.pool.QueryRow(context, query, username, purpose).Scan(
		&code.Username,
		&code.Purpose,
		&code.CodeHash,
		&code.IssuedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Verification code")
		}
		return nil, fmt.Errorf("postgres_code_repo_find_failed: %w", err)
	}

	return code, nil
}

/*
Delete removes a consumed code.

Parameters:
  - context: context.Context
  - username: string
  - purpose: Purpose

Returns:
  - error: Execution errors
*/
func (repository *PostgresVerificationCodeRepository) Delete(context context.Context, username string, purpose Purpose) error {
	const query = "DELETE FROM users.verificationcode WHERE username = $1 AND purpose = $2"

	_, err := repository.pool.Exec(context, query, username, purpose)
	if err != nil {
		return fmt.Errorf("postgres_code_repo_delete_failed: %w", err)
	}

	return nil
}
