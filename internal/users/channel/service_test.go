// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package channel_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvban/vidora/internal/platform/apperr"
	"github.com/minhvban/vidora/internal/users/channel"
)

// # Fakes

type fakeChannelRepository struct {
	channels map[string]*channel.Channel
}

func newFakeChannelRepository() *fakeChannelRepository {
	return &fakeChannelRepository{channels: make(map[string]*channel.Channel)}
}

func (f *fakeChannelRepository) Create(_ context.Context, c *channel.Channel) error {
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.channels[c.ID] = c
	return nil
}

func (f *fakeChannelRepository) FindByID(_ context.Context, id string) (*channel.Channel, error) {
	c, ok := f.channels[id]
	if !ok || c.DeletedAt != nil {
		return nil, apperr.NotFound("Channel")
	}
	return c, nil
}

func (f *fakeChannelRepository) FindByHandle(_ context.Context, handle string) (*channel.Channel, error) {
	for _, c := range f.channels {
		if c.Handle == handle && c.DeletedAt == nil {
			return c, nil
		}
	}
	return nil, apperr.NotFound("Channel")
}

func (f *fakeChannelRepository) FindByOwner(_ context.Context, ownerID string) (*channel.Channel, error) {
	for _, c := range f.channels {
		if c.OwnerID == ownerID && c.DeletedAt == nil {
			return c, nil
		}
	}
	return nil, apperr.NotFound("Channel")
}

func (f *fakeChannelRepository) Update(_ context.Context, input *channel.Channel) error {
	stored, ok := f.channels[input.ID]
	if !ok || stored.DeletedAt != nil {
		return apperr.NotFound("Channel")
	}
	if input.Title != "" {
		stored.Title = input.Title
	}
	if input.Description != "" {
		stored.Description = input.Description
	}
	return nil
}

// fakeSubscriptionRepository recomputes the counter from membership rows so
// a drift bug cannot hide behind delta bookkeeping.
type fakeSubscriptionRepository struct {
	channels *fakeChannelRepository
	members  map[string]map[string]bool // channelID -> userID set
}

func newFakeSubscriptionRepository(channels *fakeChannelRepository) *fakeSubscriptionRepository {
	return &fakeSubscriptionRepository{
		channels: channels,
		members:  make(map[string]map[string]bool),
	}
}

func (f *fakeSubscriptionRepository) count(channelID string) int64 {
	return int64(len(f.members[channelID]))
}

func (f *fakeSubscriptionRepository) Subscribe(_ context.Context, userID, channelID string) (int64, error) {
	stored, ok := f.channels.channels[channelID]
	if !ok || stored.DeletedAt != nil {
		return 0, apperr.NotFound("Channel")
	}
	if f.members[channelID] == nil {
		f.members[channelID] = make(map[string]bool)
	}
	f.members[channelID][userID] = true
	stored.Subscribers = f.count(channelID)
	return stored.Subscribers, nil
}

func (f *fakeSubscriptionRepository) Unsubscribe(_ context.Context, userID, channelID string) (int64, error) {
	stored, ok := f.channels.channels[channelID]
	if !ok || stored.DeletedAt != nil {
		return 0, apperr.NotFound("Channel")
	}
	delete(f.members[channelID], userID)
	stored.Subscribers = f.count(channelID)
	return stored.Subscribers, nil
}

func (f *fakeSubscriptionRepository) IsSubscribed(_ context.Context, userID, channelID string) (bool, error) {
	return f.members[channelID][userID], nil
}

// # Harness

const (
	ownerID   = "01929b10-0000-7000-8000-000000000011"
	viewerID  = "01929b10-0000-7000-8000-000000000022"
	otherID   = "01929b10-0000-7000-8000-000000000033"
	missingID = "01929b10-dead-7000-8000-000000000000"
)

func newTestService() (*channel.Service, *fakeChannelRepository) {
	channels := newFakeChannelRepository()
	subscriptions := newFakeSubscriptionRepository(channels)
	return channel.NewService(channels, subscriptions, slog.Default()), channels
}

func openChannel(t *testing.T, service *channel.Service, owner, title string) *channel.Channel {
	t.Helper()

	opened := &channel.Channel{Title: title}
	require.NoError(t, service.CreateChannel(context.Background(), owner, opened))
	return opened
}

// # Tests

func TestChannel_Create(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	// 1. The handle derives from the title.
	opened := openChannel(t, service, ownerID, "Late Night Synthwave")
	assert.Equal(t, "late-night-synthwave", opened.Handle)
	assert.Equal(t, ownerID, opened.OwnerID)

	// 2. A second channel for the same owner is a conflict.
	err := service.CreateChannel(ctx, ownerID, &channel.Channel{Title: "Another"})
	require.Error(t, err)
	assert.Equal(t, 409, apperr.As(err).HTTPStatus)

	// 3. A colliding handle is a conflict with its reason code.
	err = service.CreateChannel(ctx, otherID, &channel.Channel{Title: "Late Night Synthwave"})
	require.Error(t, err)
	assert.Equal(t, channel.CodeHandleTaken, apperr.As(err).Code)
}

func TestChannel_GetByHandleAndID(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	opened := openChannel(t, service, ownerID, "Cooking With Hoa")

	byHandle, err := service.GetChannel(ctx, opened.Handle)
	require.NoError(t, err)
	assert.Equal(t, opened.ID, byHandle.ID)

	byID, err := service.GetChannel(ctx, opened.ID)
	require.NoError(t, err)
	assert.Equal(t, opened.Handle, byID.Handle)
}

func TestChannel_Subscribe_Idempotent(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	opened := openChannel(t, service, ownerID, "Daily Vlogs")

	// 1. First subscription counts.
	count, err := service.Subscribe(ctx, viewerID, opened.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 2. Repeat subscription leaves the counter unchanged.
	count, err = service.Subscribe(ctx, viewerID, opened.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 3. A second viewer counts once more.
	count, err = service.Subscribe(ctx, otherID, opened.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestChannel_Unsubscribe_Idempotent(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	opened := openChannel(t, service, ownerID, "Daily Vlogs")

	_, err := service.Subscribe(ctx, viewerID, opened.ID)
	require.NoError(t, err)

	// 1. Unsubscribing removes the membership.
	count, err := service.Unsubscribe(ctx, viewerID, opened.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// 2. Unsubscribing again never drives the counter negative.
	count, err = service.Unsubscribe(ctx, viewerID, opened.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestChannel_Subscribe_Guards(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	opened := openChannel(t, service, ownerID, "Self Help")

	// 1. Owners cannot subscribe to their own channel.
	_, err := service.Subscribe(ctx, ownerID, opened.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperr.As(err).HTTPStatus)

	// 2. Unknown channels surface NotFound.
	_, err = service.Subscribe(ctx, viewerID, missingID)
	require.Error(t, err)
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)
}

func TestChannel_SubscriptionStatus(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	opened := openChannel(t, service, ownerID, "Status Check")

	subscribed, err := service.IsSubscribed(ctx, viewerID, opened.ID)
	require.NoError(t, err)
	assert.False(t, subscribed)

	_, err = service.Subscribe(ctx, viewerID, opened.ID)
	require.NoError(t, err)

	subscribed, err = service.IsSubscribed(ctx, viewerID, opened.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)
}
