// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/geoshare/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeaconJSON(t *testing.T) {
	b := model.Beacon{
		ID:        uuid.MustParse("0b2f7f8e-6c39-4d35-9a55-2f3a3f1d2c10"),
		RoomID:    "!room:server",
		Owner:     "@alice:server",
		Live:      true,
		StartedAt: time.Date(2022, 3, 14, 16, 15, 0, 0, time.UTC),
		Timeout:   90 * time.Minute,
	}
	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "0b2f7f8e-6c39-4d35-9a55-2f3a3f1d2c10",
		"room_id": "!room:server",
		"owner": "@alice:server",
		"description": "",
		"live": true,
		"started_at": "2022-03-14T16:15:00Z",
		"timeout": "1h30m0s"
	}`, string(data))

	var got model.Beacon
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, b, got)

	err = json.Unmarshal([]byte(`{"timeout": "soon"}`), &got)
	assert.ErrorContains(t, err, "timeout")
}

func TestLiveBeaconJSON(t *testing.T) {
	gc, _ := model.ParseGeoURI("geo:51,41")
	lb := model.LiveBeacon{
		Beacon: model.Beacon{
			ID:        uuid.MustParse("0b2f7f8e-6c39-4d35-9a55-2f3a3f1d2c10"),
			RoomID:    "!room:server",
			Owner:     "@alice:server",
			Live:      true,
			StartedAt: time.Date(2022, 3, 14, 16, 15, 0, 0, time.UTC),
			Timeout:   time.Hour,
		},
		Latest: &model.BeaconLocation{
			BeaconID:   uuid.MustParse("0b2f7f8e-6c39-4d35-9a55-2f3a3f1d2c10"),
			Timestamp:  time.Date(2022, 3, 14, 16, 16, 0, 0, time.UTC),
			GeoURI:     "geo:51,41",
			Coordinate: gc,
		},
	}
	data, err := json.Marshal(lb)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "1h0m0s", fields["timeout"])
	assert.Contains(t, fields, "latest")
	assert.Equal(t, "!room:server", fields["room_id"])

	var got model.LiveBeacon
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, lb, got)
}
