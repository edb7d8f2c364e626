// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package locationrc implements the repo.LocationCache interface over
// a Redis server. Each beacon has one key which holds the JSON form of
// its latest location and expires with the beacon.
package locationrc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/geoshare/pkg/core/model"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix is prepended to the beacon IDs in order to form the keys
// of their cached locations.
const KeyPrefix = "geoshare:beacon:latest:"

// maxRetries limits the optimistic PutLatest attempts when the key is
// concurrently modified by another client.
const maxRetries = 5

// Cache is a Redis based cache of the latest beacon locations.
type Cache struct {
	rdb *redis.Client
}

// Options configure the Redis connection of a Cache.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// New connects to the Redis server which is described by opts and
// pings it. The ctx is only used for the ping.
func New(ctx context.Context, opts Options) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("pinging redis at %q: %w", opts.Addr, err)
	}
	return &Cache{rdb: rdb}, nil
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.rdb.Close()
}

func key(bid uuid.UUID) string {
	return KeyPrefix + bid.String()
}

// PutLatest stores loc as the latest location of its beacon for ttl,
// unless a location with a later timestamp is cached already. The
// key is watched, so concurrent writers cannot replace a more recent
// location with an older one.
func (c *Cache) PutLatest(
	ctx context.Context, loc *model.BeaconLocation, ttl time.Duration,
) error {
	data, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("marshaling location: %w", err)
	}
	k := key(loc.BeaconID)
	put := func(tx *redis.Tx) error {
		old, err := latest(ctx, tx, k)
		if err != nil {
			return err
		}
		if old != nil && old.Timestamp.After(loc.Timestamp) {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, data, ttl)
			return nil
		})
		return err
	}
	for i := 0; i < maxRetries; i++ {
		err = c.rdb.Watch(ctx, put, k)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("caching location of %s: %w", loc.BeaconID, err)
	}
	return nil
}

// Latest returns the cached location of the bid beacon, or nil if
// it is not cached (or is expired).
func (c *Cache) Latest(
	ctx context.Context, bid uuid.UUID,
) (*model.BeaconLocation, error) {
	loc, err := latest(ctx, c.rdb, key(bid))
	if err != nil {
		return nil, fmt.Errorf("reading location of %s: %w", bid, err)
	}
	return loc, nil
}

func latest(
	ctx context.Context, g redis.StringCmdable, k string,
) (*model.BeaconLocation, error) {
	data, err := g.Get(ctx, k).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, nil
	case err != nil:
		return nil, err
	}
	loc := &model.BeaconLocation{}
	if err := json.Unmarshal(data, loc); err != nil {
		return nil, fmt.Errorf("unmarshaling location: %w", err)
	}
	return loc, nil
}
