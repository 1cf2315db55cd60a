// nat/coord_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nat

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"
)

func TestEncodeValue(t *testing.T) {
	for _, tc := range []struct {
		in, expected string
	}{
		{"52.5", "+52.500"},
		{"-30.25", "-030.250"},
		{"-5", "-005.000"},
		{"-100.125", "-100.125"},
		{"5", "+5.000"},
		{"0", "0.000"},
		{"0.5", "0.500"},
		{".25", "0.250"},
		{"10.", "+10.000"},
		{" 52.5 ", "+52.500"},
		{"180", "+180.000"},
		{"-180", "-180.000"},
		{"181", "-179.000"},
		{"181.5", "-179.500"},
		{"359.75", "-001.750"},
		{"1234", "+12.500"},
		{"1234.0", "+12.500"},
		{"5530.123", "+55.500"},
		{"-1234.7", "-001.500"},
		{"52.0005", "+52.000"},
		{"52.0015", "+52.002"},
		{"52.00051", "+52.001"},
		{"52.9996", "+53.000"},
		{"-30.9999", "-031.000"},
		{"1e1", "+10.000"},
		{"5.55e1", "+55.500"},
	} {
		enc, err := EncodeValue(tc.in)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.in, err)
		} else if enc != tc.expected {
			t.Errorf("%q: got %q, expected %q", tc.in, enc, tc.expected)
		}
	}
}

func TestEncodeValueMalformed(t *testing.T) {
	for _, in := range []string{"", " ", "abc", "N52", "52.5.1", "-", ".", "+-5", "1e", "NaN", "Inf", "1e999", "52,5"} {
		_, err := EncodeValue(in)
		var me *MalformedCoordinateError
		if !errors.As(err, &me) {
			t.Errorf("%q: expected MalformedCoordinateError, got %v", in, err)
		}
	}
}

func TestEncodeNegativeZeroLosesSign(t *testing.T) {
	// Values between -1 and 0 have an integer part of zero, which is
	// written without a sign.
	neg, _ := EncodeValue("-0.5")
	pos, _ := EncodeValue("0.5")
	if neg != pos || neg != "0.500" {
		t.Errorf("got %q and %q, expected both to be %q", neg, pos, "0.500")
	}
}

func TestEncodePair(t *testing.T) {
	enc, err := EncodePair("52.5/-30.25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc != "+52.500-030.250" {
		t.Errorf("got %q, expected %q", enc, "+52.500-030.250")
	}

	for _, bad := range []string{"52.5", "52.5/-30.25/1", "52.5/west", "/"} {
		if _, err := EncodePair(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestEncodeLongitudeWrap(t *testing.T) {
	intPart := func(enc string) string {
		i, _, _ := strings.Cut(enc, ".")
		return i
	}

	for _, v := range []float64{181, 190.5, 200, 270.25, 359} {
		wrapped, err := EncodeValue(strconv.FormatFloat(v, 'f', -1, 64))
		if err != nil {
			t.Fatalf("%f: %v", v, err)
		}
		signed, err := EncodeValue(strconv.FormatFloat(math.Trunc(v)-360, 'f', -1, 64))
		if err != nil {
			t.Fatalf("%f: %v", v, err)
		}
		if intPart(wrapped) != intPart(signed) {
			t.Errorf("%f: integer part %q doesn't match %q", v, intPart(wrapped), intPart(signed))
		}
	}
}

func TestEncodeNegativePadding(t *testing.T) {
	for i := 1; i < 100; i++ {
		enc, err := EncodeValue(strconv.Itoa(-i))
		if err != nil {
			t.Fatalf("%d: %v", -i, err)
		}
		ipart, _, _ := strings.Cut(enc, ".")
		if len(ipart) != 4 {
			t.Errorf("%d: got %q, expected 4 characters", -i, ipart)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for m := -180000; m < 180000; m += 37 {
		if m > -1000 && m < 0 {
			continue // sign isn't representable
		}
		v := float64(m) / 1000
		s := fmt.Sprintf("%.3f", v)

		enc, err := EncodeCoordinate(s, s)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		lat, lon, err := DecodeCoordinate(enc)
		if err != nil {
			t.Fatalf("%s: decoding %q: %v", s, enc, err)
		}
		if math.Abs(lat-v) > 1e-9 || math.Abs(lon-v) > 1e-9 {
			t.Errorf("%s: encoded as %q, decoded to %f/%f", s, enc, lat, lon)
		}

		again, _ := EncodeCoordinate(s, s)
		if again != enc {
			t.Errorf("%s: encoding not deterministic: %q vs %q", s, enc, again)
		}
	}
}

func TestDecodeCoordinate(t *testing.T) {
	for _, tc := range []struct {
		in       string
		lat, lon float64
	}{
		{"+52.500-030.250", 52.5, -30.25},
		{"0.500+5.000", 0.5, 5},
		{"-005.125-179.999", -5.125, -179.999},
	} {
		lat, lon, err := DecodeCoordinate(tc.in)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.in, err)
			continue
		}
		if lat != tc.lat || lon != tc.lon {
			t.Errorf("%q: got %f/%f, expected %f/%f", tc.in, lat, lon, tc.lat, tc.lon)
		}
	}

	for _, bad := range []string{"", "+52.5-030.250", "DOGAL", "+52.500"} {
		if _, _, err := DecodeCoordinate(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestCodecCache(t *testing.T) {
	c := NewCodec(4)
	for range 3 {
		enc, err := c.Encode("52.5", "-30.25")
		if err != nil {
			t.Fatal(err)
		}
		if enc != "+52.500-030.250" {
			t.Errorf("got %q, expected %q", enc, "+52.500-030.250")
		}
	}
	if c.Len() != 1 {
		t.Errorf("got %d cached entries, expected 1", c.Len())
	}

	if _, err := c.Encode("x", "1"); err == nil {
		t.Errorf("expected error for malformed latitude")
	}
	if c.Len() != 1 {
		t.Errorf("malformed coordinate was cached")
	}

	var nilCodec *Codec
	if enc, err := nilCodec.Encode("1234", "0"); err != nil || enc != "+12.5000.000" {
		t.Errorf("nil codec: got %q, %v", enc, err)
	}
}
