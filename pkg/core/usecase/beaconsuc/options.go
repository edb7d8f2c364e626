// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package beaconsuc

import (
	"errors"
	"fmt"
	"time"

	"github.com/momeni/geoshare/pkg/core/repo"
)

// Option is a functional option for the beacons use case.
type Option func(uc *UseCase) error

// WithDefaultTimeout option configures the liveness duration of the
// beacons which are started without an explicit timeout. It must be
// at least one millisecond.
func WithDefaultTimeout(timeout time.Duration) Option {
	return func(uc *UseCase) error {
		if timeout < time.Millisecond {
			return fmt.Errorf("default timeout (%s) is shorter than 1ms", timeout)
		}
		if uc.defaultTimeout != 0 {
			return errors.New("default timeout is already configured")
		}
		uc.defaultTimeout = timeout
		return nil
	}
}

// WithMaxTimeout option configures the largest acceptable liveness
// duration of a beacon.
func WithMaxTimeout(timeout time.Duration) Option {
	return func(uc *UseCase) error {
		if timeout < time.Millisecond {
			return fmt.Errorf("max timeout (%s) is shorter than 1ms", timeout)
		}
		if uc.maxTimeout != 0 {
			return errors.New("max timeout is already configured")
		}
		uc.maxTimeout = timeout
		return nil
	}
}

// WithClock option replaces the time.Now function which is used to
// find out the live beacons and the default location timestamps.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock is nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}

// WithLocationCache option makes the use case to keep the latest
// location of beacons in c, consulting it before the database.
func WithLocationCache(c repo.LocationCache) Option {
	return func(uc *UseCase) error {
		if c == nil {
			return errors.New("location cache is nil")
		}
		if uc.cache != nil {
			return errors.New("location cache is already configured")
		}
		uc.cache = c
		return nil
	}
}
