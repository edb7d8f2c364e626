// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbcontainer is an internal helper for the test packages.
// It starts a temporary postgres:16 container, connects to it with a
// *postgres.Pool, and creates the beacons schema in it.
// Integration test suites which need a real PostgreSQL server use it.
package dbcontainer

import (
	"context"
	"errors"
	"net"
	"os"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/geoshare/pkg/adapter/db/postgres"
	"github.com/momeni/geoshare/pkg/adapter/db/postgres/beaconsrp"
	"github.com/momeni/geoshare/pkg/core/repo"
	"github.com/stretchr/testify/assert"
)

// New creates and starts up a postgres container and creates the
// beacons schema in it. The DOCKER_HOST environment variable must
// point to a docker (or podman) socket like
// DOCKER_HOST=unix://$XDG_RUNTIME_DIR/podman/podman.sock
// otherwise, the test is skipped.
// The ctx is used during the container start up and shutdown, while
// the timeout is only considered during the start up phase.
// Returned dfrs must be called (in order) even if ok is false.
func New(ctx context.Context, timeout time.Duration, t *testing.T) (
	pg *sqltestutil.PostgresContainer,
	pool *postgres.Pool,
	dfrs []func(),
	ok bool,
) {
	if os.Getenv("DOCKER_HOST") == "" {
		t.Skip("DOCKER_HOST is not set; skipping integration tests")
	}
	ctx2, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	dbmsVer := "16"
	pg, err := sqltestutil.StartPostgresContainer(ctx2, dbmsVer)
	ok = assert.NoError(t, err, "failed to set up a test database")
	if !ok {
		return
	}
	dfrs = append(dfrs, func() {
		err := pg.Shutdown(ctx)
		assert.NoError(t, err, "failed to shutdown test database")
	})
	u := pg.ConnectionString()
	for pool == nil {
		pool, err = postgres.NewPool(ctx2, u)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.SQLState() == "57P03" {
			continue // the database system is starting up
		}
		var netErr net.Error
		if ctx2.Err() == nil && errors.As(err, &netErr) {
			continue // tolerate network errors until a timeout
		}
		ok = assert.NoError(t, err, "cannot connect to test database")
		if !ok {
			return
		}
	}
	dfrs = append(dfrs, func() {
		err := pool.Close()
		assert.NoError(t, err, "failed to close the connections pool")
	})
	err = pool.Conn(ctx2, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return beaconsrp.CreateSchema(ctx, tx)
		})
	})
	ok = assert.NoError(t, err, "failed to create the beacons schema")
	return
}
