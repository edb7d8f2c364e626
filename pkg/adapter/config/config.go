// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the gsweb to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// The parsed and validated configurations are passed to their
// ultimate components as a series of individual params (for the
// mandatory items) and a series of functional options (for the
// optional items), so they are validated again by those components.
//
// Secrets may be kept out of the config file. The GSWEB_DB_PASSWORD
// and GSWEB_REDIS_PASSWORD environment variables (possibly loaded from
// a .env file by the gsweb command) take precedence over the password
// fields of the config file.
package config

import (
	"fmt"
	"os"

	"github.com/momeni/geoshare/pkg/adapter/config/settings"
	"gopkg.in/yaml.v3"
)

// Environment variables which override the config file contents.
const (
	EnvDBPassword    = "GSWEB_DB_PASSWORD"
	EnvRedisPassword = "GSWEB_REDIS_PASSWORD"
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Redis    *Redis   `yaml:",omitempty"` // Optional locations cache
	Gin      Gin      // Gin-Gonic instantiation settings
	Usecases Usecases // Supported use cases configuration settings
}

// Load function loads, validates, and normalizes the configuration
// file and returns its settings as an instance of the Config struct.
// Environment variables are applied before the validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return c, nil
}

// Parse decodes data as a yaml document, overrides its secrets from
// the environment variables, and validates and normalizes it.
func Parse(data []byte) (*Config, error) {
	n := &yaml.Node{}
	if err := yaml.Unmarshal(data, n); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if l := len(n.Content); l != 1 {
		return nil, fmt.Errorf(
			"found %d children nodes, instead of 1 mapping child", l,
		)
	}
	c := &Config{}
	if err := n.Decode(c); err != nil {
		return nil, fmt.Errorf("decoding yaml node: %w", err)
	}
	c.applyEnv()
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if p, ok := os.LookupEnv(EnvDBPassword); ok {
		c.Database.Password = p
	}
	if p, ok := os.LookupEnv(EnvRedisPassword); ok && c.Redis != nil {
		c.Redis.Password = p
	}
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some settings with
// their expected default values (if they are not set).
func (c *Config) ValidateAndNormalize() error {
	settings.Nil2Zero(&c.Gin.Logger)
	settings.Nil2Zero(&c.Gin.Recovery)
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	if c.Redis != nil {
		if err := c.Redis.ValidateAndNormalize(); err != nil {
			return fmt.Errorf("validating redis settings: %w", err)
		}
	}
	if err := c.Usecases.Beacons.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating beacons settings: %w", err)
	}
	return nil
}
