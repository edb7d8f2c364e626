// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/momeni/geoshare/pkg/adapter/db/postgres"
)

// Database contains the PostgreSQL connection settings.
// The password may be given directly, by the GSWEB_DB_PASSWORD
// environment variable, or by a pgpass formatted file whose lines
// look like host:port:name:user:password.
type Database struct {
	Host     string // domain name or IP address of the DBMS server
	Port     int    // port number of the DBMS server
	Name     string // database name, like geoshare
	User     string // role name for connecting to the database
	Password string `yaml:",omitempty"`
	PassFile string `yaml:"pass-file,omitempty"`
	SSLMode  string `yaml:"sslmode,omitempty"`
}

var sslModes = []string{
	"disable", "allow", "prefer", "require", "verify-ca", "verify-full",
}

// ValidateAndNormalize checks the mandatory fields of d and fills the
// default port (5432) and sslmode (prefer) if they are not given.
func (d *Database) ValidateAndNormalize() error {
	switch {
	case d.Host == "":
		return errors.New("host is empty")
	case d.Name == "":
		return errors.New("name is empty")
	case d.User == "":
		return errors.New("user is empty")
	case d.Port < 0 || d.Port > 65535:
		return fmt.Errorf("port (%d) is out of range", d.Port)
	}
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "prefer"
	}
	for _, m := range sslModes {
		if d.SSLMode == m {
			return nil
		}
	}
	return fmt.Errorf("unsupported sslmode: %q", d.SSLMode)
}

// ConnectionURL returns the postgresql:// URL of the d database.
func (d Database) ConnectionURL() (string, error) {
	pass := d.Password
	if pass == "" && d.PassFile != "" {
		var err error
		pass, err = d.lookupPassFile()
		if err != nil {
			return "", fmt.Errorf("using %q pass-file: %w", d.PassFile, err)
		}
	}
	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(d.User, pass),
		Host:     d.Host + ":" + strconv.Itoa(d.Port),
		Path:     d.Name,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	if pass == "" {
		u.User = url.User(d.User)
	}
	return u.String(), nil
}

// lookupPassFile finds the password of d in its pgpass file. Lines
// have the hostname:port:database:username:password format, where the
// first four fields may be * (matching anything) and \: or \\ escape
// a literal colon or backslash. The first matching line wins.
func (d Database) lookupPassFile() (string, error) {
	passLines, err := os.ReadFile(d.PassFile)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	want := []string{d.Host, strconv.Itoa(d.Port), d.Name, d.User}
	for _, line := range strings.Split(string(passLines), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || line[0] == '#' {
			continue
		}
		fields := splitPassLine(line)
		if len(fields) != 5 {
			continue
		}
		if passLineMatches(fields[:4], want) {
			return unescapePassField(fields[4]), nil
		}
	}
	return "", errors.New("no matching password line")
}

// splitPassLine splits a pgpass line on its unescaped colons. Fields
// are returned as written, so an escaped \* can be told apart from the
// * wildcard. The password field keeps the rest of line.
func splitPassLine(line string) []string {
	var fields []string
	start, escaped := 0, false
	for i, r := range line {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == ':' && len(fields) < 4:
			fields = append(fields, line[start:i])
			start = i + 1
		}
	}
	return append(fields, line[start:])
}

func unescapePassField(f string) string {
	var b strings.Builder
	escaped := false
	for _, r := range f {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

func passLineMatches(fields, want []string) bool {
	for i, f := range fields {
		if f != "*" && unescapePassField(f) != want[i] {
			return false
		}
	}
	return true
}

// ConnectionPool creates a database connection pool for d.
func (d Database) ConnectionPool(ctx context.Context) (*postgres.Pool, error) {
	u, err := d.ConnectionURL()
	if err != nil {
		return nil, err
	}
	p, err := postgres.NewPool(ctx, u)
	if err != nil {
		return nil, fmt.Errorf(
			"connecting to %s@%s:%d/%s: %w",
			d.User, d.Host, d.Port, d.Name, err,
		)
	}
	return p, nil
}

// ConnectionInfo returns the database name, host, and port which
// can be reported to users without revealing the passwords.
func (d Database) ConnectionInfo() (dbName, host string, port int) {
	return d.Name, d.Host, d.Port
}
