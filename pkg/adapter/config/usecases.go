// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"time"

	"github.com/momeni/geoshare/pkg/adapter/config/settings"
	"github.com/momeni/geoshare/pkg/core/repo"
	"github.com/momeni/geoshare/pkg/core/usecase/beaconsuc"
)

// Usecases contains the settings of the supported use cases.
type Usecases struct {
	Beacons Beacons // beacons use cases related settings
}

// Beacons contains the beacons use case settings.
type Beacons struct {
	// DefaultTimeout is used when a beacon is started without
	// an explicit timeout.
	DefaultTimeout *settings.Duration `yaml:"default-timeout,omitempty"`
	// MaxTimeout is the longest acceptable beacon timeout.
	MaxTimeout *settings.Duration `yaml:"max-timeout,omitempty"`
}

// ValidateAndNormalize ensures that the given timeouts are at least
// one millisecond (as stored in the database) and the default timeout
// does not exceed the maximum one. A missing max-timeout is filled by
// beaconsuc.DefaultMaxTimeout and a missing default-timeout is filled
// by beaconsuc.DefaultTimeout (or max-timeout if it is shorter).
func (b *Beacons) ValidateAndNormalize() error {
	minb := settings.Duration(time.Millisecond)
	if b.MaxTimeout == nil {
		d := settings.Duration(beaconsuc.DefaultMaxTimeout)
		b.MaxTimeout = &d
	}
	if err := settings.VerifyRange(&b.MaxTimeout, &minb, nil); err != nil {
		return fmt.Errorf("max-timeout (%s): %w", str(err.Value), err)
	}
	if b.DefaultTimeout == nil {
		d := min(settings.Duration(beaconsuc.DefaultTimeout), *b.MaxTimeout)
		b.DefaultTimeout = &d
	}
	if err := settings.VerifyRange(
		&b.DefaultTimeout, &minb, b.MaxTimeout,
	); err != nil {
		return fmt.Errorf(
			"default-timeout (%s) with max-timeout=%s: %w",
			str(err.Value), str(b.MaxTimeout), err,
		)
	}
	return nil
}

func str(d *settings.Duration) string {
	if s := d.Marshal(); s != nil {
		return *s
	}
	return "nil"
}

// NewUseCase instantiates a beacons use case. The cache may be nil.
func (b Beacons) NewUseCase(
	p repo.Pool, r repo.Beacons, cache repo.LocationCache,
) (*beaconsuc.UseCase, error) {
	opts := make([]beaconsuc.Option, 0, 3)
	if b.DefaultTimeout != nil {
		d := time.Duration(*b.DefaultTimeout)
		opts = append(opts, beaconsuc.WithDefaultTimeout(d))
	}
	if b.MaxTimeout != nil {
		d := time.Duration(*b.MaxTimeout)
		opts = append(opts, beaconsuc.WithMaxTimeout(d))
	}
	if cache != nil {
		opts = append(opts, beaconsuc.WithLocationCache(cache))
	}
	return beaconsuc.New(p, r, opts...)
}
