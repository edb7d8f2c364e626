// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package nmea converts the NMEA 0183 sentences of GPS receivers into
// GeoCoordinate instances, so they can be shared as geo URIs.
// The RMC, GGA, and GLL sentences are supported.
package nmea

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/adrianmo/go-nmea"
	"github.com/momeni/geoshare/pkg/core/log"
	"github.com/momeni/geoshare/pkg/core/model"
)

// knotToMeterPerSecond converts the RMC speed to meters per second.
const knotToMeterPerSecond = 1852.0 / 3600.0

var (
	// ErrNoFix indicates that a sentence was valid, but the receiver
	// had no position fix when emitting it.
	ErrNoFix = errors.New("no position fix")

	// ErrUnsupported indicates that a sentence does not carry a
	// position (e.g., GSA and GSV sentences).
	ErrUnsupported = errors.New("unsupported sentence type")
)

// FromSentence parses the line NMEA sentence and returns its position.
// RMC sentences fill the latitude, longitude, heading, and speed
// (in meters per second), GGA sentences fill the latitude, longitude,
// and altitude, and GLL sentences only fill the latitude and longitude.
func FromSentence(line string) (model.GeoCoordinate, error) {
	s, err := nmea.Parse(strings.TrimSpace(line))
	if err != nil {
		return model.GeoCoordinate{}, fmt.Errorf("parsing NMEA: %w", err)
	}
	switch m := s.(type) {
	case nmea.RMC:
		if m.Validity != nmea.ValidRMC {
			return model.GeoCoordinate{}, ErrNoFix
		}
		return model.GeoCoordinate{
			Latitude:  model.Some(m.Latitude),
			Longitude: model.Some(m.Longitude),
			Heading:   model.Some(m.Course),
			Speed:     model.Some(m.Speed * knotToMeterPerSecond),
		}, nil
	case nmea.GGA:
		if m.FixQuality == nmea.Invalid {
			return model.GeoCoordinate{}, ErrNoFix
		}
		return model.GeoCoordinate{
			Latitude:  model.Some(m.Latitude),
			Longitude: model.Some(m.Longitude),
			Altitude:  model.Some(m.Altitude),
		}, nil
	case nmea.GLL:
		if m.Validity != nmea.ValidGLL {
			return model.GeoCoordinate{}, ErrNoFix
		}
		return model.GeoCoordinate{
			Latitude:  model.Some(m.Latitude),
			Longitude: model.Some(m.Longitude),
		}, nil
	default:
		return model.GeoCoordinate{}, fmt.Errorf(
			"%w: %s", ErrUnsupported, s.DataType(),
		)
	}
}

// Scan reads NMEA sentences from r, one per line, and calls f with
// the position of each one of them. Empty lines and those which do
// not start with a '$' are skipped. Sentences which cannot be parsed,
// have no fix, or carry no position are logged and skipped too, since
// receivers emit partial lines frequently. Scanning stops when r is
// exhausted, ctx is done, or f returns an error.
func Scan(
	ctx context.Context, r io.Reader, f func(model.GeoCoordinate) error,
) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "$") {
			continue
		}
		gc, err := FromSentence(line)
		if err != nil {
			log.Debug(ctx, "skipping NMEA sentence",
				log.Err("err", err),
			)
			continue
		}
		if err := f(gc); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading NMEA sentences: %w", err)
	}
	return nil
}
