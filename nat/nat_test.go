// nat/nat_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nat

import (
	"context"
	"testing"
)

// Two tracks in the shape the Gander feed publishes them.
const testFeedJSON = `[
  {
    "id": "A",
    "route": [
      {"name": "DOGAL", "latitude": 54.0, "longitude": -15.0},
      {"name": "54/20", "latitude": 54, "longitude": -20},
      {"name": "55/30", "latitude": 55.5, "longitude": -30}
    ]
  },
  {
    "id": "B",
    "route": [
      {"name": "53/20", "latitude": 53, "longitude": -20},
      {"name": "NEBIN", "latitude": 53.5, "longitude": -15}
    ]
  }
]`

const testMapsXML = `<Maps>
  <Map Type="System" Name="Tracks" Priority="1" CustomColourName="OffWhite">
    <Line>
      <Point>DOGAL/+54.000-020.000/+55.500-030.000</Point>
    </Line>
    <Label>
      <Point Name="A">DOGAL</Point>
    </Label>
    <Line>
      <Point>+53.000-020.000/NEBIN</Point>
    </Line>
    <Label>
      <Point Name="B">N53W20</Point>
    </Label>
  </Map>
</Maps>
`

const testAirspaceXML = `<?xml version="1.0" encoding="UTF-8"?>
<Airspace>
  <Intersections>
    <Point Name="N54W20" Type="Fix">+54.000-020.000</Point>
    <Point Name="N55W30" Type="Fix">+55.500-030.000</Point>
    <Point Name="N53W20" Type="Fix">+53.000-020.000</Point>
  </Intersections>
  <Airways>
    <Airway Name="NATA">DOGAL/N54W20/N55W30</Airway>
    <Airway Name="NATB">N53W20/NEBIN</Airway>
  </Airways>
</Airspace>
`

func mustDecodeFeed(t *testing.T, s string) TrackFeed {
	t.Helper()
	feed, err := DecodeFeed([]byte(s))
	if err != nil {
		t.Fatalf("decoding feed: %v", err)
	}
	return feed
}

// fetchFunc adapts a function to the Fetcher interface.
type fetchFunc func(ctx context.Context) (TrackFeed, error)

func (f fetchFunc) Fetch(ctx context.Context) (TrackFeed, error) { return f(ctx) }

type resolverFunc func() (OutputPaths, error)

func (f resolverFunc) ResolveOutputPaths() (OutputPaths, error) { return f() }
