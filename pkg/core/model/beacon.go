// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// Beside the live location sharing entities, it hosts the geo URI
// codec since parsing geo URIs is a pure business-level computation.
package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Beacon models a live location share which is started by its Owner
// in a room. A beacon is live for Timeout since its StartedAt time,
// unless it is stopped explicitly by clearing its Live flag.
// Locations of a beacon are kept separately as BeaconLocation items.
// In JSON, the Timeout is written as a duration string like "1h0m0s".
type Beacon struct {
	ID          uuid.UUID     `json:"id"`
	RoomID      string        `json:"room_id"`
	Owner       string        `json:"owner"`
	Description string        `json:"description"`
	Live        bool          `json:"live"`
	StartedAt   time.Time     `json:"started_at"`
	Timeout     time.Duration `json:"timeout"`
}

// ExpiresAt returns the time that b stops being live, if it is not
// stopped sooner.
func (b *Beacon) ExpiresAt() time.Time {
	return b.StartedAt.Add(b.Timeout)
}

// IsLive reports whether b is live at the given time. A beacon is live
// if it is not stopped and now is in the [StartedAt, ExpiresAt) range.
func (b *Beacon) IsLive(now time.Time) bool {
	return b.Live && !now.Before(b.StartedAt) && now.Before(b.ExpiresAt())
}

type plainBeacon Beacon

// beaconJSON shadows the Timeout of Beacon with its string form.
type beaconJSON struct {
	plainBeacon
	Timeout string `json:"timeout"`
}

func newBeaconJSON(b Beacon) beaconJSON {
	return beaconJSON{plainBeacon: plainBeacon(b), Timeout: b.Timeout.String()}
}

func (bj beaconJSON) decode(b *Beacon) error {
	*b = Beacon(bj.plainBeacon)
	if bj.Timeout == "" {
		return nil
	}
	d, err := time.ParseDuration(bj.Timeout)
	if err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	b.Timeout = d
	return nil
}

// MarshalJSON implements json.Marshaler.
func (b Beacon) MarshalJSON() ([]byte, error) {
	return json.Marshal(newBeaconJSON(b))
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Beacon) UnmarshalJSON(data []byte) error {
	var bj beaconJSON
	if err := json.Unmarshal(data, &bj); err != nil {
		return err
	}
	return bj.decode(b)
}

// BeaconLocation is one location report of a beacon. The GeoURI keeps
// the reported string as is, while Coordinate holds its parsed form.
type BeaconLocation struct {
	BeaconID   uuid.UUID     `json:"beacon_id"`
	Timestamp  time.Time     `json:"timestamp"`
	GeoURI     string        `json:"geo_uri"`
	Coordinate GeoCoordinate `json:"coordinate"`
}

// LiveBeacon pairs a live beacon with its latest location.
// Latest is nil if no location is reported yet.
type LiveBeacon struct {
	Beacon
	Latest *BeaconLocation `json:"latest"`
}

type liveBeaconJSON struct {
	beaconJSON
	Latest *BeaconLocation `json:"latest"`
}

// MarshalJSON implements json.Marshaler, keeping the Latest field
// which the promoted Beacon.MarshalJSON would drop.
func (lb LiveBeacon) MarshalJSON() ([]byte, error) {
	return json.Marshal(liveBeaconJSON{
		beaconJSON: newBeaconJSON(lb.Beacon),
		Latest:     lb.Latest,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (lb *LiveBeacon) UnmarshalJSON(data []byte) error {
	var v liveBeaconJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	lb.Latest = v.Latest
	return v.decode(&lb.Beacon)
}

// RoomView describes what a map of a room shows. It contains all
// live beacons of the room, the box which contains their latest
// locations, and the geo URI of its center. Bounds is nil and the
// CenterGeoURI is empty if no live beacon has a location yet.
type RoomView struct {
	Beacons      []LiveBeacon `json:"beacons"`
	Bounds       *Bounds      `json:"bounds"`
	CenterGeoURI string       `json:"center_geo_uri"`
}
