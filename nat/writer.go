// nat/writer.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nat

import (
	"bytes"
	"encoding/xml"

	"github.com/mmp/nattrack/util"
)

const (
	DefaultMapsFilename     = "NAT_TRACK.XML"
	DefaultAirspaceFilename = "Airspace.xml"
)

func marshalIndent(v any, header bool) ([]byte, error) {
	var buf bytes.Buffer
	if header {
		buf.WriteString(xml.Header)
	}

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// MarshalMaps serializes the Maps document. vatSys's map files don't
// carry an XML declaration.
func MarshalMaps(doc *MapsDocument) ([]byte, error) {
	b, err := marshalIndent(doc, false)
	if err != nil {
		return nil, &DocumentAssemblyError{Document: "Maps", Err: err}
	}
	return b, nil
}

// MarshalAirspace serializes the Airspace document, including a UTF-8 XML
// declaration.
func MarshalAirspace(doc *AirspaceDocument) ([]byte, error) {
	b, err := marshalIndent(doc, true)
	if err != nil {
		return nil, &DocumentAssemblyError{Document: "Airspace", Err: err}
	}
	return b, nil
}

// WriteMaps serializes doc and atomically replaces the file at path.
func WriteMaps(doc *MapsDocument, path string) error {
	b, err := MarshalMaps(doc)
	if err != nil {
		return err
	}
	return writeFile(path, b)
}

// WriteAirspace serializes doc and atomically replaces the file at path.
func WriteAirspace(doc *AirspaceDocument, path string) error {
	b, err := MarshalAirspace(doc)
	if err != nil {
		return err
	}
	return writeFile(path, b)
}

func writeFile(path string, b []byte) error {
	if err := util.WriteFileAtomic(path, b, 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
