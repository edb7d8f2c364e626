// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "math"

// Bounds is a latitude/longitude aligned box which contains a set of
// locations, so a map may be fitted to show all of them.
// The box is computed naively and does not wrap around the
// antimeridian.
type Bounds struct {
	North float64 `json:"north"` // largest latitude
	East  float64 `json:"east"`  // largest longitude
	West  float64 `json:"west"`  // smallest longitude
	South float64 `json:"south"` // smallest latitude
}

// BoundsOf computes the smallest Bounds containing all coords which
// carry both a finite latitude and a finite longitude. Other
// coordinates are skipped. If no coordinate qualifies, false will be
// returned.
func BoundsOf(coords ...GeoCoordinate) (b Bounds, ok bool) {
	for _, gc := range coords {
		c, complete := gc.Coordinate()
		if !complete || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
			continue
		}
		if !ok {
			b = Bounds{North: c.Lat, South: c.Lat, East: c.Lon, West: c.Lon}
			ok = true
			continue
		}
		b.North = max(b.North, c.Lat)
		b.South = min(b.South, c.Lat)
		b.East = max(b.East, c.Lon)
		b.West = min(b.West, c.Lon)
	}
	return
}

// Center returns the middle point of b.
func (b Bounds) Center() Coordinate {
	return Coordinate{
		Lat: (b.North + b.South) / 2,
		Lon: (b.East + b.West) / 2,
	}
}
