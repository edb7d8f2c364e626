// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/geoshare/pkg/adapter/config"
	"github.com/momeni/geoshare/pkg/adapter/db/postgres/beaconsrp"
	"github.com/momeni/geoshare/pkg/core/log"
	"github.com/momeni/geoshare/pkg/core/repo"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For a fresh installation, the init sub-command creates the tables.`,
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the beacons tables in the configured database",
	Long: `Create the beacons and beacon_locations tables (and their
indices) in the database which is described by the config file.
Existing tables are kept as is, so running it again is harmless.`,
	RunE: initDB,
	Args: cobra.NoArgs,
}

func initDB(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return beaconsrp.CreateSchema(ctx, tx)
		})
	})
	if err != nil {
		return fmt.Errorf("initializing DB: %w", err)
	}
	log.Info(ctx, "database schema is created")
	return nil
}

func init() {
	dbCmd.AddCommand(dbInitCmd)
	rootCmd.AddCommand(dbCmd)
}
