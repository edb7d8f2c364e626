// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/geoshare/pkg/adapter/config"
	"github.com/momeni/geoshare/pkg/adapter/db/postgres/beaconsrp"
	"github.com/momeni/geoshare/pkg/adapter/restful/gin/beaconsrs"
	"github.com/momeni/geoshare/pkg/adapter/restful/gin/geors"
	"github.com/momeni/geoshare/pkg/core/repo"
)

// Prefix is the path prefix of all REST APIs.
const Prefix = "/api/gsweb/v1"

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. The cache may be nil if the
// latest locations should be read from the database.
// Register instantiates the resources (from packages which are named
// like beaconsrs) in order to adapt the use cases interfaces with the
// REST APIs and registers them with the e gin-gonic engine instance.
func Register(
	e *gin.Engine, p repo.Pool, c config.Usecases, cache repo.LocationCache,
) error {
	beaconsUseCase, err := c.Beacons.NewUseCase(p, beaconsrp.New(), cache)
	if err != nil {
		return fmt.Errorf("creating beacons use case: %w", err)
	}
	r := e.Group(Prefix)
	geors.Register(r)
	beaconsrs.Register(r, beaconsUseCase)
	return nil
}
