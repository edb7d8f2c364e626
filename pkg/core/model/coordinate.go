// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// Coordinate represents a geographical location with a latitude and
// longitude, both in decimal degrees. Despite the GeoCoordinate, both
// of its fields are mandatory, so it is used where a point is known
// to be complete, e.g., the corners and center of a Bounds box.
type Coordinate struct {
	Lat float64 `json:"lat"` // latitude of the geo-location
	Lon float64 `json:"lon"` // longitude of the geo-location
}

// GeoCoordinate converts c into a GeoCoordinate which has no altitude
// and accuracy, so it can be formatted as a geo URI.
func (c Coordinate) GeoCoordinate() GeoCoordinate {
	return GeoCoordinate{
		Latitude:  Some(c.Lat),
		Longitude: Some(c.Lon),
	}
}
