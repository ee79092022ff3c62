// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package channel

import (
	"context"
	"log/slog"

	"github.com/minhvban/vidora/internal/platform/apperr"
	"github.com/minhvban/vidora/internal/platform/validate"
	"github.com/minhvban/vidora/pkg/slug"
	"github.com/minhvban/vidora/pkg/uuid"
)

// Service orchestrates business logic for channels and subscriptions.
type Service struct {
	channelRepository      ChannelRepository
	subscriptionRepository SubscriptionRepository
	logger                 *slog.Logger
}

// NewService constructs a new [Service].
func NewService(channels ChannelRepository, subscriptions SubscriptionRepository, logger *slog.Logger) *Service {
	return &Service{
		channelRepository:      channels,
		subscriptionRepository: subscriptions,
		logger:                 logger,
	}
}

// # Channel Lifecycle

/*
CreateChannel opens a user's channel. Each user may own at most one.

Description: The handle derives from the title via slugification unless the
caller supplies one explicitly. Duplicate owners and duplicate handles both
surface as conflicts.

Parameters:
  - context: context.Context
  - ownerID: string (UUID)
  - channel: *Channel (Title required; Handle optional)

Returns:
  - error: Validation errors or apperr.Conflict
*/
func (service *Service) CreateChannel(context context.Context, ownerID string, channel *Channel) error {

	validator := &validate.Validator{}
	validator.Required(FieldTitle, channel.Title).MaxLen(FieldTitle, channel.Title, MaxTitleLength)
	validator.MaxLen(FieldDescription, channel.Description, MaxDescriptionLength)

	if channel.Handle == "" {
		channel.Handle = slug.From(channel.Title)
	}
	validator.Required(FieldHandle, channel.Handle).Slug(FieldHandle, channel.Handle)

	if err := validator.Err(); err != nil {
		return err
	}

	// One channel per user
	if _, err := service.channelRepository.FindByOwner(context, ownerID); err == nil {
		return apperr.Conflict("User already owns a channel")
	}

	if _, err := service.channelRepository.FindByHandle(context, channel.Handle); err == nil {
		return apperr.Conflict("Handle is already taken").WithCode(CodeHandleTaken)
	}

	channel.ID = uuid.New()
	channel.OwnerID = ownerID

	if err := service.channelRepository.Create(context, channel); err != nil {
		return err
	}

	service.logger.Info("channel_created",
		slog.String("channel_id", channel.ID),
		slog.String("owner_id", ownerID),
	)

	return nil
}

/*
GetChannel fetches a channel by UUID or handle.

Parameters:
  - context: context.Context
  - identifier: string (UUID or handle)

Returns:
  - *Channel: Hydrated entity
  - error: apperr.NotFound if no match is found
*/
func (service *Service) GetChannel(context context.Context, identifier string) (*Channel, error) {
	if len(identifier) == 36 {
		return service.channelRepository.FindByID(context, identifier)
	}
	return service.channelRepository.FindByHandle(context, identifier)
}

/*
UpdateChannel applies a partial update to the caller's own channel.

Parameters:
  - context: context.Context
  - ownerID: string (Caller identity)
  - input: *Channel (Non-empty fields overwrite stored values)

Returns:
  - error: Validation errors or apperr.NotFound
*/
func (service *Service) UpdateChannel(context context.Context, ownerID string, input *Channel) error {

	validator := &validate.Validator{}
	if input.Title != "" {
		validator.MaxLen(FieldTitle, input.Title, MaxTitleLength)
	}
	validator.MaxLen(FieldDescription, input.Description, MaxDescriptionLength)

	if err := validator.Err(); err != nil {
		return err
	}

	owned, err := service.channelRepository.FindByOwner(context, ownerID)
	if err != nil {
		return err
	}

	input.ID = owned.ID
	if err := service.channelRepository.Update(context, input); err != nil {
		return err
	}

	service.logger.Info("channel_updated", slog.String("channel_id", owned.ID))

	return nil
}

// # Subscriptions

/*
Subscribe adds the caller to a channel's audience.

Description: Idempotent. Subscribing twice leaves the membership and counter
unchanged. Owners cannot subscribe to their own channel.

Parameters:
  - context: context.Context
  - userID: string
  - channelID: string (UUID)

Returns:
  - int64: Subscriber count after the operation
  - error: Validation errors or apperr.NotFound
*/
func (service *Service) Subscribe(context context.Context, userID, channelID string) (int64, error) {

	validator := &validate.Validator{}
	validator.Required(FieldID, channelID).UUID(FieldID, channelID)
	if err := validator.Err(); err != nil {
		return 0, err
	}

	found, err := service.channelRepository.FindByID(context, channelID)
	if err != nil {
		return 0, err
	}
	if found.OwnerID == userID {
		return 0, apperr.Conflict("Cannot subscribe to your own channel")
	}

	count, err := service.subscriptionRepository.Subscribe(context, userID, channelID)
	if err != nil {
		return 0, err
	}

	service.logger.Info("channel_subscribed",
		slog.String("channel_id", channelID),
		slog.String("user_id", userID),
	)

	return count, nil
}

/*
Unsubscribe removes the caller from a channel's audience.

Description: Idempotent. Unsubscribing while not subscribed leaves the
counter unchanged.

Parameters:
  - context: context.Context
  - userID: string
  - channelID: string (UUID)

Returns:
  - int64: Subscriber count after the operation
  - error: Validation errors or apperr.NotFound
*/
func (service *Service) Unsubscribe(context context.Context, userID, channelID string) (int64, error) {

	validator := &validate.Validator{}
	validator.Required(FieldID, channelID).UUID(FieldID, channelID)
	if err := validator.Err(); err != nil {
		return 0, err
	}

	count, err := service.subscriptionRepository.Unsubscribe(context, userID, channelID)
	if err != nil {
		return 0, err
	}

	service.logger.Info("channel_unsubscribed",
		slog.String("channel_id", channelID),
		slog.String("user_id", userID),
	)

	return count, nil
}

/*
IsSubscribed reports whether the caller follows a channel.

Parameters:
  - context: context.Context
  - userID: string
  - channelID: string

Returns:
  - bool: true when subscribed
  - error: Retrieval failures
*/
func (service *Service) IsSubscribed(context context.Context, userID, channelID string) (bool, error) {
	return service.subscriptionRepository.IsSubscribed(context, userID, channelID)
}
