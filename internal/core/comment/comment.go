// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

// Package comment manages viewer discussions attached to videos.
//
// Comments are flat (no threading). Deletion is restricted to the comment's
// author and uses soft-delete so moderation history survives.
package comment

import "time"

// Comment is a single viewer remark on a video.
type Comment struct {
	ID        string     `json:"id"`
	VideoID   string     `json:"video_id"`
	UserID    string     `json:"user_id"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// Global field names for validation and response payloads.
const (
	FieldID      = "id"
	FieldVideoID = "video_id"
	FieldBody    = "body"
	FieldMessage = "message"
)

// MaxBodyLength caps a comment's body size.
const MaxBodyLength = 2000
