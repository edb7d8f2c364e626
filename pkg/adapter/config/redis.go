// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/geoshare/pkg/adapter/cache/redis/locationrc"
)

// Redis contains the connection settings of the Redis server which
// caches the latest beacon locations.
type Redis struct {
	Addr     string // host:port of the Redis server
	Password string `yaml:",omitempty"`
	DB       int    `yaml:",omitempty"`
}

// ValidateAndNormalize checks that r has an address and a valid DB.
func (r *Redis) ValidateAndNormalize() error {
	switch {
	case r.Addr == "":
		return errors.New("addr is empty")
	case r.DB < 0:
		return fmt.Errorf("db (%d) is negative", r.DB)
	}
	return nil
}

// LocationCache connects to the r Redis server.
func (r Redis) LocationCache(ctx context.Context) (*locationrc.Cache, error) {
	return locationrc.New(ctx, locationrc.Options{
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.DB,
	})
}
