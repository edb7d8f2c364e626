// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package beaconsrp implements the repo.Beacons repository over the
// PostgreSQL adapter. Each query is written once as a generic function
// and is exposed for connections and transactions by the connQueryer
// and txQueryer wrappers.
package beaconsrp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/geoshare/pkg/adapter/db/postgres"
	"github.com/momeni/geoshare/pkg/core/model"
	"github.com/momeni/geoshare/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (beacons *Repo) Conn(c repo.Conn) repo.BeaconsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) CreateBeacon(ctx context.Context, b *model.Beacon) error {
	return CreateBeacon(ctx, cq.Conn, b)
}

func (cq connQueryer) Beacon(ctx context.Context, bid uuid.UUID) (*model.Beacon, error) {
	return Beacon(ctx, cq.Conn, bid)
}

func (cq connQueryer) StopBeacon(ctx context.Context, bid uuid.UUID) (*model.Beacon, error) {
	return StopBeacon(ctx, cq.Conn, bid)
}

func (cq connQueryer) RoomBeacons(ctx context.Context, roomID string, at time.Time) ([]model.Beacon, error) {
	return RoomBeacons(ctx, cq.Conn, roomID, at)
}

func (cq connQueryer) AddLocation(ctx context.Context, loc *model.BeaconLocation) error {
	return AddLocation(ctx, cq.Conn, loc)
}

func (cq connQueryer) LatestLocation(ctx context.Context, bid uuid.UUID) (*model.BeaconLocation, error) {
	return LatestLocation(ctx, cq.Conn, bid)
}

type txQueryer struct {
	*postgres.Tx
}

func (beacons *Repo) Tx(tx repo.Tx) repo.BeaconsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) CreateBeacon(ctx context.Context, b *model.Beacon) error {
	return CreateBeacon(ctx, tq.Tx, b)
}

func (tq txQueryer) Beacon(ctx context.Context, bid uuid.UUID) (*model.Beacon, error) {
	return Beacon(ctx, tq.Tx, bid)
}

func (tq txQueryer) BeaconForShare(ctx context.Context, bid uuid.UUID) (*model.Beacon, error) {
	return BeaconForShare(ctx, tq.Tx, bid)
}

func (tq txQueryer) StopBeacon(ctx context.Context, bid uuid.UUID) (*model.Beacon, error) {
	return StopBeacon(ctx, tq.Tx, bid)
}

func (tq txQueryer) RoomBeacons(ctx context.Context, roomID string, at time.Time) ([]model.Beacon, error) {
	return RoomBeacons(ctx, tq.Tx, roomID, at)
}

func (tq txQueryer) AddLocation(ctx context.Context, loc *model.BeaconLocation) error {
	return AddLocation(ctx, tq.Tx, loc)
}

func (tq txQueryer) LatestLocation(ctx context.Context, bid uuid.UUID) (*model.BeaconLocation, error) {
	return LatestLocation(ctx, tq.Tx, bid)
}
