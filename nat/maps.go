// nat/maps.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nat

import (
	"encoding/xml"
	"strings"
)

// MapAttributes are the display attributes of the vatSys map that holds
// the tracks.
type MapAttributes struct {
	Type             string
	Name             string
	Priority         string
	CustomColourName string // optional
}

func DefaultMapAttributes() MapAttributes {
	return MapAttributes{
		Type:             "System",
		Name:             "Tracks",
		Priority:         "1",
		CustomColourName: "OffWhite",
	}
}

// MapsDocument is the vatSys Maps file: a single map with a polyline and
// a label for each track.
type MapsDocument struct {
	XMLName xml.Name `xml:"Maps"`
	Map     Map      `xml:"Map"`
}

type Map struct {
	Attributes MapAttributes
	Tracks     []MapTrack
}

// MapTrack is the pair of map elements drawn for one track.
type MapTrack struct {
	Line  Line
	Label Label
}

type Line struct {
	Point string `xml:"Point"`
}

type Label struct {
	Point LabelPoint `xml:"Point"`
}

type LabelPoint struct {
	Name string `xml:"Name,attr"`
	Text string `xml:",chardata"`
}

// MarshalXML writes the map's attributes in the order vatSys's own files
// use and interleaves each track's Line and Label elements.
func (m Map) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "Map"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "Type"}, Value: m.Attributes.Type},
		{Name: xml.Name{Local: "Name"}, Value: m.Attributes.Name},
		{Name: xml.Name{Local: "Priority"}, Value: m.Attributes.Priority},
	}
	if m.Attributes.CustomColourName != "" {
		start.Attr = append(start.Attr,
			xml.Attr{Name: xml.Name{Local: "CustomColourName"}, Value: m.Attributes.CustomColourName})
	}

	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, tr := range m.Tracks {
		if err := e.EncodeElement(tr.Line, xml.StartElement{Name: xml.Name{Local: "Line"}}); err != nil {
			return err
		}
		if err := e.EncodeElement(tr.Label, xml.StartElement{Name: xml.Name{Local: "Label"}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// BuildMaps builds the Maps document, with tracks in the given order.
func BuildMaps(tracks []TrackTokens, attrs MapAttributes, codec *Codec) (*MapsDocument, error) {
	doc := &MapsDocument{Map: Map{Attributes: attrs}}

	for _, tr := range tracks {
		if len(tr.Tokens) == 0 {
			return nil, &DocumentAssemblyError{Document: "Maps", Track: tr.ID, Err: ErrEmptyRoute}
		}

		points := make([]string, len(tr.Tokens))
		for i, t := range tr.Tokens {
			p, err := polylinePoint(t, codec)
			if err != nil {
				return nil, &DocumentAssemblyError{Document: "Maps", Track: tr.ID, Err: err}
			}
			points[i] = p
		}

		first, err := fixName(tr.Tokens[0], codec)
		if err != nil {
			return nil, &DocumentAssemblyError{Document: "Maps", Track: tr.ID, Err: err}
		}

		doc.Map.Tracks = append(doc.Map.Tracks, MapTrack{
			Line:  Line{Point: strings.Join(points, "/")},
			Label: Label{Point: LabelPoint{Name: tr.ID, Text: first}},
		})
	}

	return doc, nil
}

// polylinePoint returns how a token is drawn: raw coordinates by their
// encoded position (never the derived name) and fixes by name.
func polylinePoint(t PointToken, codec *Codec) (string, error) {
	if t.IsCoordinate() {
		return codec.Encode(t.Latitude, t.Longitude)
	}
	return t.Name, nil
}

// fixName returns how a token is referred to as a fix: by its name,
// derived name, or, lacking either, its encoded position.
func fixName(t PointToken, codec *Codec) (string, error) {
	switch {
	case !t.IsCoordinate():
		return t.Name, nil
	case t.Derived != "":
		return t.Derived, nil
	default:
		return codec.Encode(t.Latitude, t.Longitude)
	}
}
