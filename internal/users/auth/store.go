// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByNick returns the account with the given public nick.

		Parameters:
		  - context: context.Context
		  - nick: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByNick(context context.Context, nick string) (*User, error)

	/*
		CreateWithCredential persists a new account and its first credential
		inside a single transaction, so a user row can never exist without a
		way to sign in.

		Parameters:
		  - context: context.Context
		  - user: *User
		  - credential: *Credential

		Returns:
		  - error: Persistence or uniqueness failures
	*/
	CreateWithCredential(context context.Context, user *User, credential *Credential) error
}

// # Credential Data Access

// CredentialRepository defines the data access contract for sign-in credentials.
type CredentialRepository interface {

	/*
		Find returns the credential for the given (username, method) pair.

		Parameters:
		  - context: context.Context
		  - username: string
		  - method: Method

		Returns:
		  - *Credential: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	Find(context context.Context, username string, method Method) (*Credential, error)

	/*
		UpdateSecret replaces the secret hash on an existing credential.

		Parameters:
		  - context: context.Context
		  - username: string
		  - method: Method
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdateSecret(context context.Context, username string, method Method, newHash string) error
}

// # Verification Code Data Access

// VerificationCodeRepository defines the contract for single-use code storage.
type VerificationCodeRepository interface {

	/*
		Upsert stores a code row, replacing any previous code for the same
		(username, purpose) pair.

		Parameters:
		  - context: context.Context
		  - code: *VerificationCode

		Returns:
		  - error: Persistence failures
	*/
	Upsert(context context.Context, code *VerificationCode) error

	/*
		Find returns the pending code for the given (username, purpose) pair.

		Parameters:
		  - context: context.Context
		  - username: string
		  - purpose: Purpose

		Returns:
		  - *VerificationCode: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	Find(context context.Context, username string, purpose Purpose) (*VerificationCode, error)

	/*
		Delete removes a code after successful verification (single use).

		Parameters:
		  - context: context.Context
		  - username: string
		  - purpose: Purpose

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, username string, purpose Purpose) error
}

// # Token Revocation

// TokenBlacklist defines the contract for revoking tokens before natural expiry.
//
// Reads are read-after-write consistent: a token added to the blacklist must
// be reported by Contains on every subsequent call.
type TokenBlacklist interface {

	/*
		Add records a token as revoked for the given duration. The TTL should
		match the token's remaining lifetime so entries expire with the token.

		Parameters:
		  - context: context.Context
		  - token: string
		  - ttl: time.Duration

		Returns:
		  - error: Storage failures
	*/
	Add(context context.Context, token string, ttl time.Duration) error

	/*
		Contains reports whether a token has been revoked.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - bool: true if the token is blacklisted
		  - error: Storage failures (callers fail closed)
	*/
	Contains(context context.Context, token string) (bool, error)
}
