// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const infinity = "Infinity"

// ParseFloatPrefix parses the longest prefix of s which forms a decimal
// number, ignoring the leading white spaces and any trailing garbage.
// It follows the lenient conventions of web clients which produce and
// consume geo URIs, so "12.5abc" is parsed as 12.5 and " -3e2;" as
// -300. Accepted forms are an optional sign followed by the Infinity
// word, or by digits with an optional fraction and an optional
// exponent. Hexadecimal, underscored, Inf, and NaN forms are not
// accepted, so "0x10" yields 0 (the "0" prefix).
//
// The second return value is false if s has no numeric prefix. In that
// case, the first return value is zero and must not be used. Numbers
// which overflow the float64 range are returned as infinities.
func ParseFloatPrefix(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, isSpace)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], infinity) {
		return parseInfinity(s[:i+len(infinity)])
	}
	intDigits := countDigits(s[i:])
	i += intDigits
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		fracDigits = countDigits(s[i+1:])
		if intDigits > 0 || fracDigits > 0 {
			i += 1 + fracDigits
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return 0, false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if n := countDigits(s[j:]); n > 0 {
			i = j + n
		}
	}
	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		// the prefix is well-formed, so only a range error may happen
		// which carries the nearest representable value
		if !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
	}
	return f, true
}

// parseInfinity parses the [+-]Infinity forms.
func parseInfinity(s string) (float64, bool) {
	switch s {
	case infinity, "+" + infinity:
		return math.Inf(1), true
	case "-" + infinity:
		return math.Inf(-1), true
	default:
		return 0, false
	}
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && '0' <= s[n] && s[n] <= '9' {
		n++
	}
	return n
}

// formatFloat returns the shortest decimal representation of f which
// is parsed back to f by ParseFloatPrefix. Exponent notation is only
// used for very large or very small magnitudes.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return infinity
	case math.IsInf(f, -1):
		return "-" + infinity
	}
	if a := math.Abs(f); a >= 1e21 || (a != 0 && a < 1e-6) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// isSpace reports whether r is a white space or a line terminator
// as recognized by the geo URI trimming and number parsing.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\v', '\f', '\uFEFF':
		return true
	}
	return isLineTerminator(r) || unicode.Is(unicode.Zs, r)
}

func isLineTerminator(r rune) bool {
	switch r {
	case '\n', '\r', '\u2028', '\u2029':
		return true
	default:
		return false
	}
}
