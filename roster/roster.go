/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package roster turns the various forms a player list arrives in (pasted
// text, a club web page, a spreadsheet) into a clean list of names.
package roster

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mikeb26/pingpong-tdbot/bracket"
	"github.com/mikeb26/pingpong-tdbot/internal"
)

// ErrEmptyRoster is returned when input yields no player names.
var ErrEmptyRoster = bracket.ErrEmptyRoster

// ErrBadName is returned for a name containing ';', which separates match
// history entries in exported files.
var ErrBadName = errors.New("player name may not contain ';'")

var separators = regexp.MustCompile(`[\n,]+`)

// Parse splits free text on commas and newlines. Names are trimmed, blank
// entries dropped and repeats removed, keeping the first occurrence.
func Parse(text string) ([]string, error) {
	return clean(separators.Split(text, -1))
}

func clean(names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = internal.NormalizeName(n)
		if n == "" {
			continue
		}
		if strings.Contains(n, ";") {
			return nil, fmt.Errorf("%w: %q", ErrBadName, n)
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, ErrEmptyRoster
	}

	return out, nil
}
