// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package beaconsrp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/geoshare/pkg/adapter/db/postgres"
	"github.com/momeni/geoshare/pkg/core/cerr"
	"github.com/momeni/geoshare/pkg/core/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gBeacon struct {
	BID         uuid.UUID `gorm:"primaryKey;type:uuid;column:bid"`
	RoomID      string
	Owner       string
	Description string
	Live        bool
	StartedAt   time.Time
	TimeoutMS   int64 `gorm:"column:timeout_ms"`
}

func (gb *gBeacon) TableName() string {
	return "beacons"
}

func newGBeacon(b *model.Beacon) *gBeacon {
	return &gBeacon{
		BID:         b.ID,
		RoomID:      b.RoomID,
		Owner:       b.Owner,
		Description: b.Description,
		Live:        b.Live,
		StartedAt:   b.StartedAt,
		TimeoutMS:   b.Timeout.Milliseconds(),
	}
}

func (gb *gBeacon) Model() *model.Beacon {
	return &model.Beacon{
		ID:          gb.BID,
		RoomID:      gb.RoomID,
		Owner:       gb.Owner,
		Description: gb.Description,
		Live:        gb.Live,
		StartedAt:   gb.StartedAt.UTC(),
		Timeout:     time.Duration(gb.TimeoutMS) * time.Millisecond,
	}
}

type gLocation struct {
	LID      int64     `gorm:"primaryKey;column:lid;autoIncrement"`
	BID      uuid.UUID `gorm:"type:uuid;column:bid"`
	TS       time.Time `gorm:"column:ts"`
	GeoURI   string    `gorm:"column:geo_uri"`
	Lat      *float64
	Lon      *float64
	Alt      *float64
	Accuracy *float64
}

func (gl *gLocation) TableName() string {
	return "beacon_locations"
}

func newGLocation(loc *model.BeaconLocation) *gLocation {
	gc := loc.Coordinate
	return &gLocation{
		BID:      loc.BeaconID,
		TS:       loc.Timestamp,
		GeoURI:   loc.GeoURI,
		Lat:      gc.Latitude.Ptr(),
		Lon:      gc.Longitude.Ptr(),
		Alt:      gc.Altitude.Ptr(),
		Accuracy: gc.Accuracy.Ptr(),
	}
}

func (gl *gLocation) Model() *model.BeaconLocation {
	return &model.BeaconLocation{
		BeaconID:  gl.BID,
		Timestamp: gl.TS.UTC(),
		GeoURI:    gl.GeoURI,
		Coordinate: model.GeoCoordinate{
			Latitude:  model.OptionalFromPtr(gl.Lat),
			Longitude: model.OptionalFromPtr(gl.Lon),
			Altitude:  model.OptionalFromPtr(gl.Alt),
			Accuracy:  model.OptionalFromPtr(gl.Accuracy),
		},
	}
}

func CreateBeacon[Q postgres.Queryer](ctx context.Context, q Q, b *model.Beacon) error {
	if err := q.GORM(ctx).Create(newGBeacon(b)).Error; err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}

func Beacon[Q postgres.Queryer](ctx context.Context, q Q, bid uuid.UUID) (*model.Beacon, error) {
	return beacon(q.GORM(ctx), bid)
}

// BeaconForShare runs SELECT ... FOR SHARE, which conflicts with the
// UPDATE of StopBeacon, so it is only meaningful in a transaction.
func BeaconForShare(ctx context.Context, tx *postgres.Tx, bid uuid.UUID) (*model.Beacon, error) {
	db := tx.GORM(ctx).Clauses(clause.Locking{Strength: "SHARE"})
	return beacon(db, bid)
}

func beacon(db *gorm.DB, bid uuid.UUID) (*model.Beacon, error) {
	var gbs []gBeacon
	err := db.Where("bid = ?", bid).Limit(1).Find(&gbs).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gbs); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gbs[0].Model(), nil
}

func StopBeacon[Q postgres.Queryer](ctx context.Context, q Q, bid uuid.UUID) (*model.Beacon, error) {
	var gbs []gBeacon
	err := q.GORM(ctx).Model(&gbs).Clauses(clause.Returning{}).Where(
		"bid = ?", bid,
	).Update("live", false).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gbs); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gbs[0].Model(), nil
}

func RoomBeacons[Q postgres.Queryer](ctx context.Context, q Q, roomID string, at time.Time) ([]model.Beacon, error) {
	var gbs []gBeacon
	err := q.GORM(ctx).Where(
		"room_id = ? AND live AND started_at <= ?"+
			" AND started_at + timeout_ms * INTERVAL '1 millisecond' > ?",
		roomID, at, at,
	).Order("started_at, bid").Find(&gbs).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	bs := make([]model.Beacon, 0, len(gbs))
	for i := range gbs {
		bs = append(bs, *gbs[i].Model())
	}
	return bs, nil
}

func AddLocation[Q postgres.Queryer](ctx context.Context, q Q, loc *model.BeaconLocation) error {
	if err := q.GORM(ctx).Create(newGLocation(loc)).Error; err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}

func LatestLocation[Q postgres.Queryer](ctx context.Context, q Q, bid uuid.UUID) (*model.BeaconLocation, error) {
	var gls []gLocation
	err := q.GORM(ctx).Where("bid = ?", bid).Order(
		"ts DESC, lid DESC",
	).Limit(1).Find(&gls).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gls) == 0 {
		return nil, nil
	}
	return gls[0].Model(), nil
}
