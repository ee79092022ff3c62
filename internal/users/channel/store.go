// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package channel

import "context"

// # Repository Contracts

// ChannelRepository defines persistence operations for channels.
type ChannelRepository interface {

	/*
		Create persists a new channel.

		Parameters:
		  - context: context.Context
		  - channel: *Channel

		Returns:
		  - error: apperr.Conflict when the owner or handle is taken
	*/
	Create(context context.Context, channel *Channel) error

	/*
		FindByID retrieves an active channel by its ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Channel: Hydrated entity
		  - error: apperr.NotFound or execution errors
	*/
	FindByID(context context.Context, id string) (*Channel, error)

	/*
		FindByHandle retrieves an active channel by its handle.

		Parameters:
		  - context: context.Context
		  - handle: string

		Returns:
		  - *Channel: Hydrated entity
		  - error: apperr.NotFound or execution errors
	*/
	FindByHandle(context context.Context, handle string) (*Channel, error)

	/*
		FindByOwner retrieves the channel owned by a user.

		Parameters:
		  - context: context.Context
		  - ownerID: string

		Returns:
		  - *Channel: Hydrated entity
		  - error: apperr.NotFound or execution errors
	*/
	FindByOwner(context context.Context, ownerID string) (*Channel, error)

	/*
		Update persists changes to a channel's mutable fields.

		Parameters:
		  - context: context.Context
		  - channel: *Channel

		Returns:
		  - error: apperr.NotFound or execution errors
	*/
	Update(context context.Context, channel *Channel) error
}

// SubscriptionRepository defines persistence operations for subscriptions.
//
// Both mutations adjust the channel's subscriber counter in the same
// transaction as the membership row, so the counter never drifts.
type SubscriptionRepository interface {

	/*
		Subscribe adds a user to a channel's audience.

		Description: Inserting an existing membership is a no-op and does
		not touch the counter.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - channelID: string

		Returns:
		  - int64: Subscriber count after the operation
		  - error: apperr.NotFound when the channel does not exist
	*/
	Subscribe(context context.Context, userID, channelID string) (int64, error)

	/*
		Unsubscribe removes a user from a channel's audience.

		Description: Removing an absent membership is a no-op and does not
		touch the counter.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - channelID: string

		Returns:
		  - int64: Subscriber count after the operation
		  - error: apperr.NotFound when the channel does not exist
	*/
	Unsubscribe(context context.Context, userID, channelID string) (int64, error)

	/*
		IsSubscribed reports whether a membership row exists.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - channelID: string

		Returns:
		  - bool: true when the user is subscribed
		  - error: Execution errors
	*/
	IsSubscribed(context context.Context, userID, channelID string) (bool, error)
}
