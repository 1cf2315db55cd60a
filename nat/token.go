// nat/token.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nat

import (
	"fmt"
	"strings"
)

// RouteSeparator separates latitude and longitude in the names the feed
// gives to unnamed points (e.g. "52/40"); published fixes never contain it.
const RouteSeparator = "/"

// Variant selects how raw coordinate points are named.
type Variant int

const (
	// VariantDerived gives each raw coordinate a synthetic fix name,
	// "N" followed by the point's name with "/" replaced by "W", so that
	// 52/40 becomes N52W40. The fix is registered as an intersection in
	// the Airspace file and airways refer to it by name.
	VariantDerived Variant = iota
	// VariantRaw leaves raw coordinates unnamed; they are referred to by
	// their encoded position everywhere.
	VariantRaw
)

func (v Variant) String() string {
	switch v {
	case VariantDerived:
		return "derived"
	case VariantRaw:
		return "raw"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "derived", "named", "a":
		return VariantDerived, nil
	case "raw", "b":
		return VariantRaw, nil
	default:
		return 0, fmt.Errorf("%s: %w", s, ErrUnknownVariant)
	}
}

type TokenKind int

const (
	NamedFix TokenKind = iota
	RawCoordinate
)

// PointToken is one point of a route: either a published fix, referred to
// by name, or a raw coordinate with an optional derived fix name.
type PointToken struct {
	Kind TokenKind
	// Name is the fix name for NamedFix tokens.
	Name string
	// Latitude and Longitude are in decimal degrees for RawCoordinate
	// tokens.
	Latitude, Longitude string
	// Derived is the synthesized fix name for RawCoordinate tokens; it is
	// empty under VariantRaw.
	Derived string
}

func Fix(name string) PointToken {
	return PointToken{Kind: NamedFix, Name: name}
}

func Coordinate(lat, lon, derived string) PointToken {
	return PointToken{Kind: RawCoordinate, Latitude: lat, Longitude: lon, Derived: derived}
}

func (t PointToken) IsCoordinate() bool {
	return t.Kind == RawCoordinate
}

// RawPair returns the coordinate as "latitude/longitude".
func (t PointToken) RawPair() string {
	return t.Latitude + RouteSeparator + t.Longitude
}

func (t PointToken) String() string {
	if t.Kind == NamedFix {
		return t.Name
	}
	if t.Derived != "" {
		return t.RawPair() + "|" + t.Derived
	}
	return t.RawPair()
}

func isRawPair(name string) bool {
	return strings.Contains(name, RouteSeparator)
}

// DeriveFixName returns the synthetic fix name for a raw point name.
func DeriveFixName(name string) string {
	return "N" + strings.ReplaceAll(name, RouteSeparator, "W")
}

// ParseRoute converts a track's route into tokens, preserving order. Fix
// names that repeat are kept as-is.
func ParseRoute(route []RoutePoint, v Variant) []PointToken {
	tokens := make([]PointToken, 0, len(route))
	for _, pt := range route {
		if !isRawPair(pt.Name) {
			tokens = append(tokens, Fix(pt.Name))
			continue
		}

		var derived string
		if v == VariantDerived {
			derived = DeriveFixName(pt.Name)
		}
		tokens = append(tokens, Coordinate(pt.Latitude.String(), pt.Longitude.String(), derived))
	}
	return tokens
}

// TrackTokens holds a track's identifier along with its parsed route.
type TrackTokens struct {
	ID     string
	Tokens []PointToken
}

// ParseFeed parses the route of every track in the feed.
func ParseFeed(feed TrackFeed, v Variant) []TrackTokens {
	tracks := make([]TrackTokens, len(feed))
	for i, tr := range feed {
		tracks[i] = TrackTokens{ID: tr.ID, Tokens: ParseRoute(tr.Route, v)}
	}
	return tracks
}
