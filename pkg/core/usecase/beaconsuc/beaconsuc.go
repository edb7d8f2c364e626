// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package beaconsuc contains the beacons UseCase which supports the
// live location sharing use cases:
//  1. Starting a beacon in a room,
//  2. Publishing a geo URI location for a beacon,
//  3. Stopping a beacon,
//  4. Listing the live beacons of a room with their latest locations,
//  5. Preparing a room view with the bounds and center of a map which
//     shows all of those locations.
package beaconsuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/geoshare/pkg/core/cerr"
	"github.com/momeni/geoshare/pkg/core/log"
	"github.com/momeni/geoshare/pkg/core/model"
	"github.com/momeni/geoshare/pkg/core/repo"
)

// Errors which are returned (wrapped in a *cerr.Error) by the
// UseCase methods. They do not repeat the arguments since the caller
// knows them already.
var (
	ErrNotGeoURI            = errors.New("not a geo URI")
	ErrIncompleteCoordinate = errors.New("geo URI lacks latitude or longitude")
	ErrBeaconNotLive        = errors.New("beacon is not live at the location timestamp")
	ErrMissingRoom          = errors.New("room ID is empty")
	ErrMissingOwner         = errors.New("owner is empty")
)

// Default liveness durations which are used when the corresponding
// options are not given to New.
const (
	DefaultTimeout    = time.Hour
	DefaultMaxTimeout = 24 * time.Hour
)

// UseCase represents a beacons use case. It holds a database connection
// pool, the beacons repository instance (to be guided with the DB pool),
// an optional cache of the latest locations, and the beacons use case
// specific settings.
type UseCase struct {
	pool      repo.Pool
	beaconsrp repo.Beacons
	cache     repo.LocationCache

	defaultTimeout time.Duration
	maxTimeout     time.Duration
	now            func() time.Time
}

// New instantiates a beacons use case.
// Required parameters are passed individually, while optional ones are
// passed as functional options. By default, beacons are live for one
// hour, may be live for at most one day, and no cache is used.
func New(p repo.Pool, b repo.Beacons, opts ...Option) (*UseCase, error) {
	uc := &UseCase{pool: p, beaconsrp: b}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.defaultTimeout == 0 {
		uc.defaultTimeout = DefaultTimeout
	}
	if uc.maxTimeout == 0 {
		uc.maxTimeout = DefaultMaxTimeout
	}
	if uc.defaultTimeout > uc.maxTimeout {
		return nil, fmt.Errorf(
			"default timeout (%s) exceeds the max timeout (%s)",
			uc.defaultTimeout, uc.maxTimeout,
		)
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

// Start use case starts a new live beacon for the owner user in the
// roomID room. A zero timeout selects the default timeout. Negative
// timeouts, those shorter than a millisecond, or those which exceed
// the max timeout are rejected. StartedAt is truncated to microseconds
// and the timeout is truncated to milliseconds, as stored by the
// database.
func (beacons *UseCase) Start(
	ctx context.Context,
	roomID, owner, description string,
	timeout time.Duration,
) (*model.Beacon, error) {
	switch {
	case roomID == "":
		return nil, cerr.BadRequest(ErrMissingRoom)
	case owner == "":
		return nil, cerr.BadRequest(ErrMissingOwner)
	case timeout < 0:
		return nil, cerr.BadRequest(fmt.Errorf(
			"timeout (%s) is negative", timeout,
		))
	case timeout > beacons.maxTimeout:
		return nil, cerr.BadRequest(fmt.Errorf(
			"timeout (%s) exceeds %s", timeout, beacons.maxTimeout,
		))
	case timeout == 0:
		timeout = beacons.defaultTimeout
	case timeout < time.Millisecond:
		return nil, cerr.BadRequest(fmt.Errorf(
			"timeout (%s) is shorter than 1ms", timeout,
		))
	}
	timeout = timeout.Truncate(time.Millisecond)
	b := &model.Beacon{
		ID:          uuid.New(),
		RoomID:      roomID,
		Owner:       owner,
		Description: description,
		Live:        true,
		StartedAt:   beacons.now().UTC().Truncate(time.Microsecond),
		Timeout:     timeout,
	}
	err := beacons.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return beacons.beaconsrp.Conn(c).CreateBeacon(ctx, b)
	})
	if err != nil {
		return nil, fmt.Errorf("creating beacon: %w", err)
	}
	log.Info(ctx, "beacon started",
		log.ID("beacon", b.ID),
		slog.String("room", roomID),
		slog.Duration("timeout", timeout),
	)
	return b, nil
}

// Publish use case parses geoURI and records it as a location of the
// bid beacon at the ts time (or now if ts is zero). Strings which are
// not geo URIs, or lack a latitude or longitude, are rejected as bad
// requests. The beacon must be live at ts, and it is kept locked
// while the location is inserted, so it cannot be stopped meanwhile.
// When a location cache is configured, it is updated too, but cache
// failures are only logged.
func (beacons *UseCase) Publish(
	ctx context.Context, bid uuid.UUID, geoURI string, ts time.Time,
) (*model.BeaconLocation, error) {
	gc, ok := model.ParseGeoURI(geoURI)
	if !ok {
		return nil, cerr.BadRequest(ErrNotGeoURI)
	}
	if _, ok = gc.Coordinate(); !ok {
		return nil, cerr.BadRequest(ErrIncompleteCoordinate)
	}
	if ts.IsZero() {
		ts = beacons.now()
	}
	loc := &model.BeaconLocation{
		BeaconID:   bid,
		Timestamp:  ts.UTC().Truncate(time.Microsecond),
		GeoURI:     geoURI,
		Coordinate: gc,
	}
	var b *model.Beacon
	err := beacons.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) (err error) {
			q := beacons.beaconsrp.Tx(tx)
			b, err = q.BeaconForShare(ctx, bid)
			if err != nil {
				return err
			}
			if !b.IsLive(loc.Timestamp) {
				return cerr.Conflict(ErrBeaconNotLive)
			}
			return q.AddLocation(ctx, loc)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("adding location: %w", err)
	}
	if beacons.cache != nil {
		ttl := b.ExpiresAt().Sub(beacons.now())
		if ttl > 0 {
			if err := beacons.cache.PutLatest(ctx, loc, ttl); err != nil {
				log.Warn(ctx, "caching latest location failed",
					log.ID("beacon", bid), log.Err("err", err),
				)
			}
		}
	}
	log.Debug(ctx, "location published",
		log.ID("beacon", bid),
		log.Valuer("coordinate", gc),
	)
	return loc, nil
}

// Stop use case stops the bid beacon, so it is not live anymore.
// The updated beacon is returned.
func (beacons *UseCase) Stop(
	ctx context.Context, bid uuid.UUID,
) (b *model.Beacon, err error) {
	err = beacons.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		b, err = beacons.beaconsrp.Conn(c).StopBeacon(ctx, bid)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("stopping beacon: %w", err)
	}
	log.Info(ctx, "beacon stopped", log.ID("beacon", bid))
	return b, nil
}

// Live use case lists the beacons of the roomID room which are live
// now, each with its latest location (or nil if no location is
// published yet).
func (beacons *UseCase) Live(
	ctx context.Context, roomID string,
) (lbs []model.LiveBeacon, err error) {
	if roomID == "" {
		return nil, cerr.BadRequest(ErrMissingRoom)
	}
	now := beacons.now()
	err = beacons.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := beacons.beaconsrp.Conn(c)
		bs, err := q.RoomBeacons(ctx, roomID, now)
		if err != nil {
			return fmt.Errorf("listing room beacons: %w", err)
		}
		lbs = make([]model.LiveBeacon, 0, len(bs))
		for _, b := range bs {
			loc := beacons.cachedLatest(ctx, b.ID)
			if loc == nil {
				loc, err = q.LatestLocation(ctx, b.ID)
				if err != nil {
					return fmt.Errorf("fetching latest location: %w", err)
				}
			}
			lbs = append(lbs, model.LiveBeacon{Beacon: b, Latest: loc})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lbs, nil
}

// View use case prepares the map view of the roomID room, consisting
// of its live beacons, the bounds which contain their latest
// locations, and the geo URI of the center of those bounds.
func (beacons *UseCase) View(
	ctx context.Context, roomID string,
) (*model.RoomView, error) {
	lbs, err := beacons.Live(ctx, roomID)
	if err != nil {
		return nil, err
	}
	coords := make([]model.GeoCoordinate, 0, len(lbs))
	for _, lb := range lbs {
		if lb.Latest != nil {
			coords = append(coords, lb.Latest.Coordinate)
		}
	}
	v := &model.RoomView{Beacons: lbs}
	if b, ok := model.BoundsOf(coords...); ok {
		v.Bounds = &b
		v.CenterGeoURI = model.FormatGeoURI(b.Center().GeoCoordinate())
	}
	return v, nil
}

func (beacons *UseCase) cachedLatest(
	ctx context.Context, bid uuid.UUID,
) *model.BeaconLocation {
	if beacons.cache == nil {
		return nil
	}
	loc, err := beacons.cache.Latest(ctx, bid)
	if err != nil {
		log.Warn(ctx, "reading cached location failed",
			log.ID("beacon", bid), log.Err("err", err),
		)
		return nil
	}
	return loc
}
