// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package beaconsrp

import (
	"context"
	"fmt"

	"github.com/momeni/geoshare/pkg/core/repo"
)

// Schema contains the DDL statements which create the beacons and
// beacon_locations tables. The parsed geo URI fields are nullable
// since each one of them may be absent.
const Schema = `CREATE TABLE IF NOT EXISTS beacons (
    bid UUID PRIMARY KEY,
    room_id TEXT NOT NULL,
    owner TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    live BOOLEAN NOT NULL,
    started_at TIMESTAMPTZ NOT NULL,
    timeout_ms BIGINT NOT NULL CHECK (timeout_ms > 0)
);
CREATE INDEX IF NOT EXISTS beacons_room_idx ON beacons (room_id, started_at);
CREATE TABLE IF NOT EXISTS beacon_locations (
    lid BIGSERIAL PRIMARY KEY,
    bid UUID NOT NULL REFERENCES beacons (bid) ON DELETE CASCADE,
    ts TIMESTAMPTZ NOT NULL,
    geo_uri TEXT NOT NULL,
    lat DOUBLE PRECISION,
    lon DOUBLE PRECISION,
    alt DOUBLE PRECISION,
    accuracy DOUBLE PRECISION
);
CREATE INDEX IF NOT EXISTS beacon_locations_latest_idx
    ON beacon_locations (bid, ts DESC, lid DESC)`

// CreateSchema creates the beacons tables if they do not exist.
// It should run in a transaction, so a partial schema is not left
// behind due to an error.
func CreateSchema(ctx context.Context, tx repo.Tx) error {
	if _, err := tx.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("creating beacons tables: %w", err)
	}
	return nil
}
