// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

/*
Package channel manages creator channels and viewer subscriptions.

Core Responsibility:

  - Identity: One channel per user, addressed by a slugified handle.
  - Presentation: Title, description, and artwork for the channel page.
  - Audience: Idempotent subscribe/unsubscribe with a consistent counter.
*/
package channel

import "time"

// Channel is a creator's public presence on the platform.
type Channel struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	Handle      string `json:"handle"` // URL-safe identifier
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`

	// Subscribers is kept consistent with users.subscription rows inside
	// the subscribe/unsubscribe transactions.
	Subscribers int64 `json:"subscribers"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// Global field names for validation and response payloads.
const (
	FieldID          = "id"
	FieldHandle      = "handle"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldAvatarURL   = "avatar_url"
	FieldCoverURL    = "cover_url"
	FieldSubscribed  = "subscribed"
	FieldMessage     = "message"
)

// CodeHandleTaken marks a handle collision during channel creation.
const CodeHandleTaken = "HANDLE_TAKEN"

const (
	// MaxTitleLength caps the channel title.
	MaxTitleLength = 100

	// MaxDescriptionLength caps the channel description.
	MaxDescriptionLength = 5000
)
