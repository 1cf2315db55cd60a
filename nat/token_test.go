// nat/token_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nat

import (
	"errors"
	"slices"
	"testing"
)

func TestParseRoute(t *testing.T) {
	route := []RoutePoint{
		{Name: "DOGAL", Latitude: "54", Longitude: "-15"},
		{Name: "54/20", Latitude: "54", Longitude: "-20"},
		{Name: "DOGAL", Latitude: "54", Longitude: "-15"},
		{Name: "52.5/30", Latitude: "52.5", Longitude: "-30"},
	}

	derived := ParseRoute(route, VariantDerived)
	expected := []PointToken{
		Fix("DOGAL"),
		Coordinate("54", "-20", "N54W20"),
		Fix("DOGAL"),
		Coordinate("52.5", "-30", "N52.5W30"),
	}
	if !slices.Equal(derived, expected) {
		t.Errorf("got %v, expected %v", derived, expected)
	}

	raw := ParseRoute(route, VariantRaw)
	expected[1].Derived, expected[3].Derived = "", ""
	if !slices.Equal(raw, expected) {
		t.Errorf("got %v, expected %v", raw, expected)
	}
}

func TestPointToken(t *testing.T) {
	c := Coordinate("52.5", "-30.25", "N52W30")
	if !c.IsCoordinate() {
		t.Errorf("coordinate token not reported as coordinate")
	}
	if c.RawPair() != "52.5/-30.25" {
		t.Errorf("got %q, expected %q", c.RawPair(), "52.5/-30.25")
	}
	if c.String() != "52.5/-30.25|N52W30" {
		t.Errorf("got %q", c.String())
	}

	f := Fix("MALOT")
	if f.IsCoordinate() || f.String() != "MALOT" {
		t.Errorf("unexpected fix token %+v", f)
	}
}

func TestDeriveFixName(t *testing.T) {
	for _, tc := range []struct{ in, expected string }{
		{"52/40", "N52W40"},
		{"5230/40", "N5230W40"},
		{"52.5/-30.25", "N52.5W-30.25"},
	} {
		if got := DeriveFixName(tc.in); got != tc.expected {
			t.Errorf("%q: got %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestParseVariant(t *testing.T) {
	for s, expected := range map[string]Variant{"derived": VariantDerived, "Named": VariantDerived, "raw": VariantRaw, "B": VariantRaw} {
		v, err := ParseVariant(s)
		if err != nil {
			t.Errorf("%q: unexpected error %v", s, err)
		} else if v != expected {
			t.Errorf("%q: got %s, expected %s", s, v, expected)
		}
	}
	if _, err := ParseVariant("both"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestParseFeed(t *testing.T) {
	feed := mustDecodeFeed(t, testFeedJSON)
	tracks := ParseFeed(feed, VariantDerived)
	if len(tracks) != 2 || tracks[0].ID != "A" || tracks[1].ID != "B" {
		t.Fatalf("unexpected tracks %+v", tracks)
	}
	if len(tracks[0].Tokens) != 3 || tracks[0].Tokens[2] != Coordinate("55.5", "-30", "N55W30") {
		t.Errorf("unexpected tokens for A: %v", tracks[0].Tokens)
	}
}
