// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
)

// Optional of T holds either a T value or nothing. It is used for the
// fields which may be missing in their source representation, such as
// the altitude of a geo URI, so the absence of a value is explicit
// and is not encoded as some sentinel (like a NaN or zero) which may
// leak into later computations.
// The zero value of Optional is an absent value.
type Optional[T any] struct {
	v  T
	ok bool
}

// Some returns an Optional which holds v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{v: v, ok: true}
}

// None returns an absent Optional of T.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// OptionalFromPtr converts a possibly nil pointer into an Optional.
// A nil pointer becomes an absent value, otherwise, the pointed value
// is copied.
func OptionalFromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Get returns the held value and true, or the zero value of T and
// false if o is absent.
func (o Optional[T]) Get() (T, bool) {
	return o.v, o.ok
}

// IsSet reports whether o holds a value.
func (o Optional[T]) IsSet() bool {
	return o.ok
}

// OrElse returns the held value or d if o is absent.
func (o Optional[T]) OrElse(d T) T {
	if o.ok {
		return o.v
	}
	return d
}

// Ptr returns a pointer to a copy of the held value, or nil if o is
// absent. It is the inverse of the OptionalFromPtr function and helps
// to store Optional fields in nullable database columns.
func (o Optional[T]) Ptr() *T {
	if !o.ok {
		return nil
	}
	v := o.v
	return &v
}

// String formats the held value with the %v verb, or returns "none".
func (o Optional[T]) String() string {
	if !o.ok {
		return "none"
	}
	return fmt.Sprintf("%v", o.v)
}

// MarshalJSON encodes an absent value as null and a present value as
// the JSON encoding of the held value. Since JSON has no infinite
// numbers, infinite float64 values are encoded as the "Infinity" and
// "-Infinity" strings which are also accepted by UnmarshalJSON.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	if f, ok := any(o.v).(float64); ok && math.IsInf(f, 0) {
		return json.Marshal(formatFloat(f))
	}
	return json.Marshal(o.v)
}

// UnmarshalJSON decodes null as an absent value and anything else as
// a T value. In case of errors, o is left unchanged.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = None[T]()
		return nil
	}
	var v T
	if f, ok := any(&v).(*float64); ok {
		var s string
		if json.Unmarshal(data, &s) == nil {
			n, ok := parseInfinity(s)
			if !ok {
				return fmt.Errorf("%q is not a number", s)
			}
			*f = n
			*o = Some(v)
			return nil
		}
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// LogValue implements slog.LogValuer, logging the held value or the
// constant "none" string for an absent value.
func (o Optional[T]) LogValue() slog.Value {
	if !o.ok {
		return slog.StringValue("none")
	}
	return slog.AnyValue(o.v)
}
