// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

// Package account exposes the authenticated user's own profile.
//
// The nick and credentials are owned by the auth package and are immutable
// here; this package only manages the presentational profile fields.
package account

import "time"

// Profile is the user-facing slice of the account record.
type Profile struct {
	ID        string    `json:"id"`
	Nick      string    `json:"nick"`
	Name      string    `json:"name,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Tel       string    `json:"tel,omitempty"`
	Email     string    `json:"email,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Global field names for validation and response payloads.
const (
	FieldName      = "name"
	FieldBio       = "bio"
	FieldTel       = "tel"
	FieldAvatarURL = "avatar_url"
	FieldMessage   = "message"
)

const (
	// MaxNameLength caps the display name.
	MaxNameLength = 100

	// MaxBioLength caps the profile bio.
	MaxBioLength = 1000
)
