// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/geoshare/pkg/core/model"
)

// LocationCache keeps the latest location of each live beacon, so
// rendering a room map does not need to query the database for every
// beacon. Cached items expire after their ttl, which is chosen to be
// the remaining lifetime of their beacon.
type LocationCache interface {
	// PutLatest replaces the cached location of its beacon with loc,
	// unless the cached location is more recent.
	PutLatest(ctx context.Context, loc *model.BeaconLocation, ttl time.Duration) error

	// Latest returns the cached location of the bid beacon. A cache
	// miss is reported by a nil location and a nil error.
	Latest(ctx context.Context, bid uuid.UUID) (*model.BeaconLocation, error)
}
