// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

/*
Package video defines the core domain entities for the Vidora catalogue.

It manages the lifecycle of hosted videos including metadata, view metrics,
and the like/dislike rating reconciliation that keeps the denormalized
counters consistent with the per-user reaction rows.

Core Responsibility:

  - Catalogue: Defines video metadata and visibility states.
  - Discovery: Title search and per-channel listings.
  - Reactions: The tri-state like model and its counter arithmetic.

This package acts as the source of truth for all content-related data models.
*/
package video

import "time"

// # Domain Enums

// Visibility controls who can discover and watch a video.
type Visibility string

const (
	// VisibilityPublic makes the video discoverable by everyone.
	VisibilityPublic Visibility = "public"

	// VisibilityUnlisted hides the video from listings but allows direct links.
	VisibilityUnlisted Visibility = "unlisted"

	// VisibilityPrivate restricts the video to its owner.
	VisibilityPrivate Visibility = "private"
)

// IsValid reports whether v is a recognised [Visibility] value.
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityUnlisted, VisibilityPrivate:
		return true
	}
	return false
}

// LikingState is a user's reaction to a video.
//
// A missing reaction row is equivalent to [StateNone]; the two forms are
// interchangeable everywhere in this package.
type LikingState string

const (
	StateLiked    LikingState = "LIKED"
	StateDisliked LikingState = "DISLIKED"
	StateNone     LikingState = "NONE"
)

// IsValid reports whether s is a recognised [LikingState] value.
func (s LikingState) IsValid() bool {
	switch s {
	case StateLiked, StateDisliked, StateNone:
		return true
	}
	return false
}

// # Rating Arithmetic

// likeDelta returns the counter adjustments for a reaction transition.
//
// The deltas are derived, not enumerated: leaving a state decrements its
// counter, entering a state increments it. Self-transitions are no-ops, which
// makes repeated identical ratings idempotent by construction.
func likeDelta(previous, next LikingState) (likesDelta, dislikesDelta int64) {
	if previous == next {
		return 0, 0
	}

	switch previous {
	case StateLiked:
		likesDelta--
	case StateDisliked:
		dislikesDelta--
	}

	switch next {
	case StateLiked:
		likesDelta++
	case StateDisliked:
		dislikesDelta++
	}

	return likesDelta, dislikesDelta
}

// # Core Entities

// Video is the central aggregate of the Vidora domain.
type Video struct {
	ID          string     `json:"id"`
	ChannelID   string     `json:"channel_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Slug        string     `json:"slug"` // URL-safe identifier
	VideoURL    string     `json:"video_url"`
	CoverURL    string     `json:"cover_url,omitempty"`
	Duration    int        `json:"duration"` // Seconds
	Visibility  Visibility `json:"visibility"`

	// # Computed Metrics
	// Views is incremented on every watch; Likes and Dislikes are kept
	// consistent with social.likestate inside the rating transaction.
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`

	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"` // nil = active; non-nil = soft-deleted
}

// Rating is the result of a reconciled rating operation: the caller's new
// state plus the authoritative counters after the transaction.
type Rating struct {
	VideoID  string      `json:"video_id"`
	State    LikingState `json:"state"`
	Likes    int64       `json:"likes"`
	Dislikes int64       `json:"dislikes"`
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID          = "id"
	FieldChannelID   = "channel_id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldSlug        = "slug"
	FieldVideoURL    = "video_url"
	FieldCoverURL    = "cover_url"
	FieldDuration    = "duration"
	FieldVisibility  = "visibility"
	FieldState       = "state"
	FieldQuery       = "q"
	FieldMessage     = "message"
)
