// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package beaconsrs realizes the beacons resource, allowing the live
// location sharing REST APIs to be accepted and delegated to the
// beacons use cases respectively.
package beaconsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/geoshare/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/geoshare/pkg/core/usecase/beaconsuc"
)

type resource struct {
	beacons *beaconsuc.UseCase
}

// Register instantiates a resource adapting the beacons use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/gsweb/v1/rooms/:rid/beacons
//     in order to start a beacon,
//  2. GET request to /api/gsweb/v1/rooms/:rid/beacons
//     in order to fetch the map view of a room,
//  3. POST request to /api/gsweb/v1/beacons/:bid/locations
//     in order to publish a geo URI location,
//  4. DELETE request to /api/gsweb/v1/beacons/:bid
//     in order to stop a beacon.
func Register(r *gin.RouterGroup, beacons *beaconsuc.UseCase) {
	rs := &resource{beacons: beacons}
	r.POST("rooms/:rid/beacons", rs.StartBeacon)
	r.GET("rooms/:rid/beacons", rs.RoomView)
	r.POST("beacons/:bid/locations", rs.PublishLocation)
	r.DELETE("beacons/:bid", rs.StopBeacon)
}

func (rs *resource) StartBeacon(c *gin.Context) {
	req := rs.DserStartReq(c)
	if req == nil {
		return
	}
	b, err := rs.beacons.Start(
		c, req.RoomID, req.Owner, req.Description, req.Timeout,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (rs *resource) RoomView(c *gin.Context) {
	v, err := rs.beacons.View(c, c.Param("rid"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (rs *resource) PublishLocation(c *gin.Context) {
	req := rs.DserPublishReq(c)
	if req == nil {
		return
	}
	loc, err := rs.beacons.Publish(c, req.BeaconID, req.GeoURI, req.Timestamp)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, loc)
}

func (rs *resource) StopBeacon(c *gin.Context) {
	bid, ok := dserBeaconID(c)
	if !ok {
		return
	}
	b, err := rs.beacons.Stop(c, bid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
