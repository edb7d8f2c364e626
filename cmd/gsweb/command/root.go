// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the geoshare
// web project. Commands are organized using the cobra library.
// The root command starts the web server itself, the "db" sub-command
// creates the database schema, and the "geo" sub-command parses and
// formats geo URIs offline.
//
//	./gsweb [-c /path/of/config.yaml] [--addr :8080]  # start web server
//	./gsweb db init [-c /path/of/config.yaml]
//	./gsweb geo parse 'geo:51.5,-0.12;u=5' ...
//	./gsweb geo format --lat 51.5 --lon -0.12 [--alt 20] [--accuracy 5]
//	./gsweb geo nmea ['$GPGGA,...'] ...  # or NMEA lines from stdin
//
// A .env file in the working directory is loaded before running any
// command, so secrets like GSWEB_DB_PASSWORD may be kept there.
package command

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/momeni/geoshare/pkg/adapter/config"
	"github.com/momeni/geoshare/pkg/adapter/restful/gin"
	"github.com/momeni/geoshare/pkg/adapter/restful/gin/routes"
	"github.com/momeni/geoshare/pkg/core/log"
	"github.com/momeni/geoshare/pkg/core/repo"
	"github.com/spf13/cobra"
)

var (
	cfgPath    string
	listenAddr string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "gsweb",
	Short: "A live location sharing web service based on geo URIs",
	Long: `A live location sharing web service based on geo URIs.
Users start beacons in rooms, publish their locations as geo URIs
(RFC 5870) like geo:51.5,-0.12;u=5 while the beacons are live, and
fetch the map view of a room which has the latest location of each
live beacon and the bounds and center of their map.
Beacons and locations are kept in a PostgreSQL database, while the
latest locations may be cached in a Redis server too.`,
	RunE:          startWebServer,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func startWebServer(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		cmd.Context(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	dbName, host, port := c.Database.ConnectionInfo()
	log.Info(ctx, "configs are loaded",
		slog.String("path", cfgPath),
		slog.String("db", fmt.Sprintf("%s@%s:%d", dbName, host, port)),
		slog.Bool("cache", c.Redis != nil),
	)
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	var cache repo.LocationCache
	if c.Redis != nil {
		rc, err := c.Redis.LocationCache(ctx)
		if err != nil {
			return fmt.Errorf("creating location cache: %w", err)
		}
		defer rc.Close()
		cache = rc
	}
	var e *gin.Engine = c.Gin.NewEngine()
	if err = routes.Register(e, p, c.Usecases, cache); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	return serve(ctx, e)
}

// serve runs the h handler on listenAddr until ctx is done, and then
// shuts the server down, waiting for the ongoing requests.
func serve(ctx context.Context, h http.Handler) error {
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", slog.String("addr", listenAddr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return fmt.Errorf("running HTTP server: %w", err)
	case <-ctx.Done():
	}
	log.Info(context.Background(), "shutting down the HTTP server")
	shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("running HTTP server: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code is
// zero for success and one for failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadDotEnv, fixConfigPath, setupLogger)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "one of debug, info, warn, error",
	)
	rootCmd.Flags().StringVar(
		&listenAddr, "addr", ":8080", "HTTP server listening address",
	)
}

// loadDotEnv loads the .env file (if it exists) without overriding
// the already set environment variables.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "ignoring .env file: %v\n", err)
	}
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}

func setupLogger() {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q, using info\n", logLevel)
		level = slog.LevelInfo
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	})
	slog.SetDefault(slog.New(h))
}
