// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package video_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvban/vidora/internal/core/video"
	"github.com/minhvban/vidora/internal/platform/apperr"
)

// # Fakes

type fakeVideoRepository struct {
	videos map[string]*video.Video
	views  map[string]int64
}

func newFakeVideoRepository() *fakeVideoRepository {
	return &fakeVideoRepository{
		videos: make(map[string]*video.Video),
		views:  make(map[string]int64),
	}
}

func (f *fakeVideoRepository) Create(_ context.Context, v *video.Video) error {
	f.videos[v.ID] = v
	return nil
}

func (f *fakeVideoRepository) FindByID(_ context.Context, id string) (*video.Video, error) {
	v, ok := f.videos[id]
	if !ok || v.DeletedAt != nil {
		return nil, apperr.NotFound("Video")
	}
	clone := *v
	return &clone, nil
}

func (f *fakeVideoRepository) FindBySlug(_ context.Context, slug string) (*video.Video, error) {
	for _, v := range f.videos {
		if v.Slug == slug && v.DeletedAt == nil {
			clone := *v
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Video")
}

func (f *fakeVideoRepository) Update(_ context.Context, v *video.Video) error {
	stored, ok := f.videos[v.ID]
	if !ok || stored.DeletedAt != nil {
		return apperr.NotFound("Video")
	}
	if v.Title != "" {
		stored.Title = v.Title
	}
	if v.Description != "" {
		stored.Description = v.Description
	}
	if v.Visibility != "" {
		stored.Visibility = v.Visibility
	}
	return nil
}

func (f *fakeVideoRepository) SoftDelete(_ context.Context, id string) error {
	stored, ok := f.videos[id]
	if !ok || stored.DeletedAt != nil {
		return apperr.NotFound("Video")
	}
	now := stored.CreatedAt
	stored.DeletedAt = &now
	return nil
}

func (f *fakeVideoRepository) ListByChannel(_ context.Context, channelID string, limit, offset int) ([]*video.Video, int, error) {
	matches := []*video.Video{}
	for _, v := range f.videos {
		if v.ChannelID == channelID && v.DeletedAt == nil {
			matches = append(matches, v)
		}
	}
	return matches, len(matches), nil
}

func (f *fakeVideoRepository) SearchByTitle(_ context.Context, search string, limit, offset int) ([]*video.Video, int, error) {
	matches := []*video.Video{}
	for _, v := range f.videos {
		if v.Visibility == video.VisibilityPublic && v.DeletedAt == nil && v.Title == search {
			matches = append(matches, v)
		}
	}
	return matches, len(matches), nil
}

func (f *fakeVideoRepository) RegisterView(_ context.Context, id string) error {
	f.views[id]++
	return nil
}

// fakeRatingRepository mimics the transactional store with an independent
// oracle: counters are recomputed by counting state rows, never by applying
// deltas, so a drift bug in the service arithmetic cannot hide here.
type fakeRatingRepository struct {
	videos *fakeVideoRepository
	states map[string]video.LikingState // key: userID|videoID
}

func newFakeRatingRepository(videos *fakeVideoRepository) *fakeRatingRepository {
	return &fakeRatingRepository{
		videos: videos,
		states: make(map[string]video.LikingState),
	}
}

func (f *fakeRatingRepository) Rate(_ context.Context, videoID, userID string, next video.LikingState) (int64, int64, error) {
	stored, ok := f.videos.videos[videoID]
	if !ok || stored.DeletedAt != nil {
		return 0, 0, apperr.NotFound("Video")
	}

	key := userID + "|" + videoID
	if next == video.StateNone {
		delete(f.states, key)
	} else {
		f.states[key] = next
	}

	var likes, dislikes int64
	for k, state := range f.states {
		if len(k) < len(videoID) || k[len(k)-len(videoID):] != videoID {
			continue
		}
		switch state {
		case video.StateLiked:
			likes++
		case video.StateDisliked:
			dislikes++
		}
	}
	stored.Likes = likes
	stored.Dislikes = dislikes

	return likes, dislikes, nil
}

func (f *fakeRatingRepository) GetState(_ context.Context, videoID, userID string) (video.LikingState, error) {
	state, ok := f.states[userID+"|"+videoID]
	if !ok {
		return video.StateNone, nil
	}
	return state, nil
}

// # Harness

type testHarness struct {
	service    *video.Service
	videoRepo  *fakeVideoRepository
	ratingRepo *fakeRatingRepository
}

func newTestHarness() *testHarness {
	videoRepo := newFakeVideoRepository()
	ratingRepo := newFakeRatingRepository(videoRepo)

	return &testHarness{
		service:    video.NewService(videoRepo, ratingRepo, slog.Default()),
		videoRepo:  videoRepo,
		ratingRepo: ratingRepo,
	}
}

const (
	testChannelID = "01929b10-0000-7000-8000-0000000000aa"
	testUserID    = "01929b10-0000-7000-8000-0000000000bb"
	otherUserID   = "01929b10-0000-7000-8000-0000000000cc"
)

func (harness *testHarness) seedVideo(t *testing.T, title string) *video.Video {
	t.Helper()

	seeded := &video.Video{
		ChannelID: testChannelID,
		Title:     title,
		VideoURL:  "https://cdn.vidora.app/v/" + title + ".mp4",
	}
	require.NoError(t, harness.service.CreateVideo(context.Background(), seeded))
	return seeded
}

// # Catalogue Tests

func TestVideo_CreateVideo(t *testing.T) {
	harness := newTestHarness()
	ctx := context.Background()

	// 1. A valid video gets an identity, a slug, and the public default.
	created := harness.seedVideo(t, "Khám Phá Việt Nam")
	assert.Len(t, created.ID, 36)
	assert.Equal(t, "kham-pha-viet-nam", created.Slug)
	assert.Equal(t, video.VisibilityPublic, created.Visibility)

	// 2. Missing title and malformed channel are rejected.
	err := harness.service.CreateVideo(ctx, &video.Video{
		ChannelID: "not-a-uuid",
		VideoURL:  "https://cdn.vidora.app/v/x.mp4",
	})
	require.Error(t, err)

	// 3. Negative durations are rejected.
	err = harness.service.CreateVideo(ctx, &video.Video{
		ChannelID: testChannelID,
		Title:     "Broken",
		VideoURL:  "https://cdn.vidora.app/v/broken.mp4",
		Duration:  -1,
	})
	require.Error(t, err)
}

func TestVideo_GetVideo(t *testing.T) {
	harness := newTestHarness()
	ctx := context.Background()
	seeded := harness.seedVideo(t, "Street Food Tour")

	// 1. Lookup by UUID registers a view.
	found, err := harness.service.GetVideo(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)
	assert.Equal(t, int64(1), found.Views)

	// 2. Lookup by slug resolves the same video.
	found, err = harness.service.GetVideo(ctx, seeded.Slug)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)

	// 3. Unknown identifiers surface NotFound.
	_, err = harness.service.GetVideo(ctx, "no-such-slug")
	require.Error(t, err)
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)
}

func TestVideo_Search_BlankQuery(t *testing.T) {
	harness := newTestHarness()
	harness.seedVideo(t, "Anything")

	// 1. A blank query never scans the catalogue.
	results, total, err := harness.service.Search(context.Background(), "   ", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, total)
}

func TestVideo_DeleteVideo_HidesFromLookups(t *testing.T) {
	harness := newTestHarness()
	ctx := context.Background()
	seeded := harness.seedVideo(t, "Ephemeral")

	require.NoError(t, harness.service.DeleteVideo(ctx, seeded.ID))

	_, err := harness.service.GetVideo(ctx, seeded.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)
}

// # Rating Tests

func TestVideo_Rate_Transitions(t *testing.T) {
	harness := newTestHarness()
	ctx := context.Background()
	seeded := harness.seedVideo(t, "Rated Content")

	// 1. A fresh like increments the like counter.
	rating, err := harness.service.Rate(ctx, seeded.ID, testUserID, video.StateLiked)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rating.Likes)
	assert.Equal(t, int64(0), rating.Dislikes)

	// 2. Rating the same state again is idempotent.
	rating, err = harness.service.Rate(ctx, seeded.ID, testUserID, video.StateLiked)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rating.Likes)
	assert.Equal(t, int64(0), rating.Dislikes)

	// 3. Switching to dislike moves the reaction between counters.
	rating, err = harness.service.Rate(ctx, seeded.ID, testUserID, video.StateDisliked)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rating.Likes)
	assert.Equal(t, int64(1), rating.Dislikes)

	// 4. Withdrawing restores both counters to zero.
	rating, err = harness.service.Rate(ctx, seeded.ID, testUserID, video.StateNone)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rating.Likes)
	assert.Equal(t, int64(0), rating.Dislikes)

	// 5. The state row is gone, not merely zeroed.
	state, err := harness.service.GetRating(ctx, seeded.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, video.StateNone, state)
}

func TestVideo_Rate_IndependentUsers(t *testing.T) {
	harness := newTestHarness()
	ctx := context.Background()
	seeded := harness.seedVideo(t, "Popular")

	_, err := harness.service.Rate(ctx, seeded.ID, testUserID, video.StateLiked)
	require.NoError(t, err)

	rating, err := harness.service.Rate(ctx, seeded.ID, otherUserID, video.StateDisliked)
	require.NoError(t, err)

	// 1. Each user's reaction counts once.
	assert.Equal(t, int64(1), rating.Likes)
	assert.Equal(t, int64(1), rating.Dislikes)

	// 2. One user's withdrawal leaves the other's reaction intact.
	rating, err = harness.service.Rate(ctx, seeded.ID, testUserID, video.StateNone)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rating.Likes)
	assert.Equal(t, int64(1), rating.Dislikes)
}

func TestVideo_Rate_Validation(t *testing.T) {
	harness := newTestHarness()
	ctx := context.Background()
	seeded := harness.seedVideo(t, "Strict")

	// 1. A malformed video ID is rejected before touching the store.
	_, err := harness.service.Rate(ctx, "not-a-uuid", testUserID, video.StateLiked)
	require.Error(t, err)
	assert.Equal(t, 400, apperr.As(err).HTTPStatus)

	// 2. An unknown state value is rejected.
	_, err = harness.service.Rate(ctx, seeded.ID, testUserID, video.LikingState("LOVED"))
	require.Error(t, err)
	assert.Equal(t, 400, apperr.As(err).HTTPStatus)

	// 3. A missing video surfaces NotFound.
	_, err = harness.service.Rate(ctx, "01929b10-dead-7000-8000-000000000000", testUserID, video.StateLiked)
	require.Error(t, err)
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)
}

func TestVideo_GetRating_DefaultsToNone(t *testing.T) {
	harness := newTestHarness()
	seeded := harness.seedVideo(t, "Unrated")

	state, err := harness.service.GetRating(context.Background(), seeded.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, video.StateNone, state)
}
