// nat/airspace.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nat

import (
	"encoding/xml"
	"strings"

	"github.com/iancoleman/orderedmap"
)

// AirspaceDocument is the vatSys Airspace file with the fixes synthesized
// for the tracks' raw coordinates and an airway for each track.
type AirspaceDocument struct {
	XMLName       xml.Name      `xml:"Airspace"`
	Intersections Intersections `xml:"Intersections"`
	Airways       Airways       `xml:"Airways"`
}

type Intersections struct {
	Points []IntersectionPoint `xml:"Point"`
}

type IntersectionPoint struct {
	Name     string `xml:"Name,attr"`
	Type     string `xml:"Type,attr"`
	Position string `xml:",chardata"`
}

type Airways struct {
	Airways []Airway `xml:"Airway"`
}

type Airway struct {
	Name  string `xml:"Name,attr"`
	Route string `xml:",chardata"`
}

func AirwayName(trackID string) string {
	return "NAT" + trackID
}

// BuildAirspace builds the Airspace document. If two points derive the
// same fix name, the position registered last wins; the intersection
// stays where the name first appeared.
func BuildAirspace(tracks []TrackTokens, codec *Codec) (*AirspaceDocument, error) {
	fixes := orderedmap.New()
	doc := &AirspaceDocument{}

	for _, tr := range tracks {
		names := make([]string, len(tr.Tokens))
		for i, t := range tr.Tokens {
			if t.IsCoordinate() && t.Derived != "" {
				pos, err := codec.Encode(t.Latitude, t.Longitude)
				if err != nil {
					return nil, &DocumentAssemblyError{Document: "Airspace", Track: tr.ID, Err: err}
				}
				fixes.Set(t.Derived, pos)
			}

			n, err := fixName(t, codec)
			if err != nil {
				return nil, &DocumentAssemblyError{Document: "Airspace", Track: tr.ID, Err: err}
			}
			names[i] = n
		}

		doc.Airways.Airways = append(doc.Airways.Airways, Airway{
			Name:  AirwayName(tr.ID),
			Route: strings.Join(names, "/"),
		})
	}

	for _, name := range fixes.Keys() {
		pos, _ := fixes.Get(name)
		doc.Intersections.Points = append(doc.Intersections.Points,
			IntersectionPoint{Name: name, Type: "Fix", Position: pos.(string)})
	}

	return doc, nil
}

// Intersection returns the position registered for the named fix.
func (d *AirspaceDocument) Intersection(name string) (string, bool) {
	for _, p := range d.Intersections.Points {
		if p.Name == name {
			return p.Position, true
		}
	}
	return "", false
}
