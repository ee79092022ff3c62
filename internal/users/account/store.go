// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package account

import "context"

// ProfileRepository defines persistence operations for profiles.
type ProfileRepository interface {

	/*
		FindByID retrieves an active profile by user ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Profile: Hydrated entity
		  - error: apperr.NotFound or execution errors
	*/
	FindByID(context context.Context, id string) (*Profile, error)

	/*
		UpdateProfile persists changes to the mutable profile fields.

		Parameters:
		  - context: context.Context
		  - profile: *Profile

		Returns:
		  - error: apperr.NotFound or execution errors
	*/
	UpdateProfile(context context.Context, profile *Profile) error
}
