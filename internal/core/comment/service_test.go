// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package comment_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvban/vidora/internal/core/comment"
	"github.com/minhvban/vidora/internal/platform/apperr"
)

type fakeCommentRepository struct {
	comments map[string]*comment.Comment
}

func newFakeCommentRepository() *fakeCommentRepository {
	return &fakeCommentRepository{comments: make(map[string]*comment.Comment)}
}

func (f *fakeCommentRepository) Create(_ context.Context, c *comment.Comment) error {
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.comments[c.ID] = c
	return nil
}

func (f *fakeCommentRepository) FindByID(_ context.Context, id string) (*comment.Comment, error) {
	c, ok := f.comments[id]
	if !ok || c.DeletedAt != nil {
		return nil, apperr.NotFound("Comment")
	}
	return c, nil
}

func (f *fakeCommentRepository) ListByVideo(_ context.Context, videoID string, limit, offset int) ([]*comment.Comment, int, error) {
	matches := []*comment.Comment{}
	for _, c := range f.comments {
		if c.VideoID == videoID && c.DeletedAt == nil {
			matches = append(matches, c)
		}
	}
	return matches, len(matches), nil
}

func (f *fakeCommentRepository) SoftDelete(_ context.Context, id string) error {
	c, ok := f.comments[id]
	if !ok || c.DeletedAt != nil {
		return apperr.NotFound("Comment")
	}
	now := time.Now()
	c.DeletedAt = &now
	return nil
}

const (
	testVideoID = "01929b10-0000-7000-8000-0000000000dd"
	authorID    = "01929b10-0000-7000-8000-0000000000ee"
	strangerID  = "01929b10-0000-7000-8000-0000000000ff"
)

func TestComment_CreateAndList(t *testing.T) {
	repository := newFakeCommentRepository()
	service := comment.NewService(repository, slog.Default())
	ctx := context.Background()

	// 1. A valid comment is persisted with a generated identity.
	created, err := service.Create(ctx, testVideoID, authorID, "  Tuyệt vời!  ")
	require.NoError(t, err)
	assert.Len(t, created.ID, 36)
	assert.Equal(t, "Tuyệt vời!", created.Body)

	// 2. The comment shows up in the video's listing.
	comments, total, err := service.ListByVideo(ctx, testVideoID, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, comments, 1)
	assert.Equal(t, created.ID, comments[0].ID)
}

func TestComment_Create_Validation(t *testing.T) {
	service := comment.NewService(newFakeCommentRepository(), slog.Default())
	ctx := context.Background()

	// 1. Whitespace-only bodies are rejected.
	_, err := service.Create(ctx, testVideoID, authorID, "   ")
	require.Error(t, err)

	// 2. Malformed video IDs are rejected.
	_, err = service.Create(ctx, "not-a-uuid", authorID, "hello")
	require.Error(t, err)
}

func TestComment_Delete_OwnerOnly(t *testing.T) {
	repository := newFakeCommentRepository()
	service := comment.NewService(repository, slog.Default())
	ctx := context.Background()

	created, err := service.Create(ctx, testVideoID, authorID, "mine")
	require.NoError(t, err)

	// 1. A stranger cannot delete someone else's comment.
	err = service.Delete(ctx, created.ID, strangerID)
	require.Error(t, err)
	assert.Equal(t, 403, apperr.As(err).HTTPStatus)

	// 2. The author can.
	require.NoError(t, service.Delete(ctx, created.ID, authorID))

	// 3. Deleting again reports NotFound.
	err = service.Delete(ctx, created.ID, authorID)
	require.Error(t, err)
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)
}

func TestComment_TakeDown_IgnoresAuthorship(t *testing.T) {
	repository := newFakeCommentRepository()
	service := comment.NewService(repository, slog.Default())
	ctx := context.Background()

	created, err := service.Create(ctx, testVideoID, authorID, "reported")
	require.NoError(t, err)

	// 1. A moderator removes a comment they do not own.
	require.NoError(t, service.TakeDown(ctx, created.ID, strangerID))

	// 2. The comment is gone from listings.
	_, total, err := service.ListByVideo(ctx, testVideoID, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	// 3. A repeat takedown reports NotFound.
	err = service.TakeDown(ctx, created.ID, strangerID)
	require.Error(t, err)
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)
}
