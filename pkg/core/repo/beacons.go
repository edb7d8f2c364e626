// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo specifies the repository interfaces which are
// implemented by the adapter layer and consumed by the use cases.
// Each repository provides a Conn and a Tx method which wrap a
// database connection or transaction, so the same queries may run
// on both of them.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/geoshare/pkg/core/model"
)

// BeaconsConnQueryer lists the beacons queries which may run on
// a connection.
type BeaconsConnQueryer interface {
	BeaconsQueryer
}

// BeaconsTxQueryer lists the beacons queries which may run in
// a transaction.
type BeaconsTxQueryer interface {
	BeaconsQueryer

	// BeaconForShare fetches the bid beacon like Beacon and keeps it
	// locked in the shared mode until the transaction finishes, so
	// concurrent StopBeacon calls wait for the transaction.
	BeaconForShare(ctx context.Context, bid uuid.UUID) (*model.Beacon, error)
}

// BeaconsQueryer contains the beacons and beacon locations queries.
// Queries which target a single missing beacon return an error which
// wraps a *cerr.Error with the not-found status.
type BeaconsQueryer interface {
	// CreateBeacon inserts b as a new beacon.
	CreateBeacon(ctx context.Context, b *model.Beacon) error

	// Beacon fetches the bid beacon.
	Beacon(ctx context.Context, bid uuid.UUID) (*model.Beacon, error)

	// StopBeacon clears the live flag of the bid beacon and returns
	// its updated version.
	StopBeacon(ctx context.Context, bid uuid.UUID) (*model.Beacon, error)

	// RoomBeacons lists beacons of the roomID room which have their
	// live flag set and are not expired at the given time, ordered by
	// their start time.
	RoomBeacons(ctx context.Context, roomID string, at time.Time) ([]model.Beacon, error)

	// AddLocation records one location of an existing beacon.
	AddLocation(ctx context.Context, loc *model.BeaconLocation) error

	// LatestLocation fetches the location of the bid beacon which
	// has the largest timestamp. If bid has no location, nil will be
	// returned with no error.
	LatestLocation(ctx context.Context, bid uuid.UUID) (*model.BeaconLocation, error)
}

// Beacons is the beacons repository.
type Beacons interface {
	Conn(Conn) BeaconsConnQueryer
	Tx(Tx) BeaconsTxQueryer
}
