// nat/coord.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// vatSys positions are written as a pair of signed decimal degrees with
// exactly three fractional digits and no separator between latitude and
// longitude, e.g. +52.500-030.250. Negative values are zero-padded to
// three integer digits; positive values are not padded at all.

var (
	reDecimal = regexp.MustCompile(`^([+-]?)([0-9]*)(?:\.([0-9]*))?$`)
	reEncoded = regexp.MustCompile(`^([+-]?[0-9]+)\.([0-9]{3})([+-]?[0-9]+)\.([0-9]{3})$`)
)

// EncodePair encodes a raw "latitude/longitude" pair of decimal degrees.
func EncodePair(raw string) (string, error) {
	lat, lon, ok := strings.Cut(raw, "/")
	if !ok || strings.Contains(lon, "/") {
		return "", &MalformedCoordinateError{Value: raw, Err: fmt.Errorf("expected latitude/longitude pair")}
	}
	return EncodeCoordinate(lat, lon)
}

// EncodeCoordinate encodes the given latitude and longitude, each given in
// decimal degrees, into a single vatSys position string.
func EncodeCoordinate(lat, lon string) (string, error) {
	elat, err := EncodeValue(lat)
	if err != nil {
		return "", err
	}
	elon, err := EncodeValue(lon)
	if err != nil {
		return "", err
	}
	return elat + elon, nil
}

// EncodeValue encodes a single latitude or longitude value.
func EncodeValue(v string) (string, error) {
	s, err := normalizeDecimal(v)
	if err != nil {
		return "", err
	}

	// The feed occasionally drops the decimal point, giving values like
	// 5530 for 55.5. These are patched up by keeping the first two
	// characters and taking the midpoint of that degree.
	intStr, _, _ := strings.Cut(s, ".")
	if len(strings.TrimLeft(intStr, "+-")) > 3 {
		s = s[:2] + ".5"
	}

	m := reDecimal.FindStringSubmatch(s)
	if m == nil || m[2]+m[3] == "" {
		return "", &MalformedCoordinateError{Value: v, Err: ErrNotNumeric}
	}
	negative := m[1] == "-"

	whole := 0
	if m[2] != "" {
		if whole, err = strconv.Atoi(m[2]); err != nil {
			return "", &MalformedCoordinateError{Value: v, Err: err}
		}
	}

	// Work in thousandths of a degree; a fraction that rounds up to a
	// full degree carries into the integer part.
	milli := whole*1000 + roundThousandths(m[3])
	whole, frac := milli/1000, milli%1000

	ipart := whole
	if negative {
		ipart = -whole
	}
	if ipart > 180 {
		ipart -= 360
	}

	var sb strings.Builder
	switch {
	case ipart > 0:
		sb.WriteString("+" + strconv.Itoa(ipart))
	case ipart < 0:
		sb.WriteString(fmt.Sprintf("%04d", ipart))
	default:
		sb.WriteString("0")
	}
	sb.WriteString(fmt.Sprintf(".%03d", frac))
	return sb.String(), nil
}

// normalizeDecimal trims v and rewrites numbers given with an exponent
// (which JSON allows) in plain positional notation.
func normalizeDecimal(v string) (string, error) {
	s := strings.TrimSpace(v)
	if s == "" {
		return "", &MalformedCoordinateError{Value: v, Err: ErrNotNumeric}
	}
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return "", &MalformedCoordinateError{Value: v, Err: ErrNotNumeric}
		}
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	if !reDecimal.MatchString(s) {
		return "", &MalformedCoordinateError{Value: v, Err: ErrNotNumeric}
	}
	return s, nil
}

// roundThousandths rounds the fractional digits digits (those following
// the decimal point) to thousandths, rounding halves to even.
func roundThousandths(digits string) int {
	for len(digits) < 3 {
		digits += "0"
	}
	t, _ := strconv.Atoi(digits[:3])

	rest := digits[3:]
	if rest == "" {
		return t
	}
	switch {
	case rest[0] > '5':
		t++
	case rest[0] == '5':
		if strings.Trim(rest[1:], "0") != "" || t%2 == 1 {
			t++
		}
	}
	return t
}

// DecodeCoordinate parses a position produced by EncodeCoordinate back
// into latitude and longitude in decimal degrees.
func DecodeCoordinate(s string) (lat, lon float64, err error) {
	m := reEncoded.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, &MalformedCoordinateError{Value: s, Err: fmt.Errorf("not an encoded position")}
	}

	decode := func(ipart, frac string) float64 {
		i, _ := strconv.Atoi(ipart)
		f, _ := strconv.Atoi(frac)
		mag := float64(max(i, -i)) + float64(f)/1000
		if strings.HasPrefix(ipart, "-") {
			return -mag
		}
		return mag
	}
	return decode(m[1], m[2]), decode(m[3], m[4]), nil
}

const DefaultCodecCacheSize = 512

// Codec encodes coordinates, remembering recent results. It is safe for
// concurrent use; the Maps and Airspace builders share one.
type Codec struct {
	cache *lru.Cache[string, string]
}

func NewCodec(size int) *Codec {
	if size <= 0 {
		size = DefaultCodecCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		panic(err) // only happens for non-positive sizes
	}
	return &Codec{cache: cache}
}

// Encode is equivalent to EncodeCoordinate. A nil *Codec encodes without
// caching.
func (c *Codec) Encode(lat, lon string) (string, error) {
	if c == nil {
		return EncodeCoordinate(lat, lon)
	}

	key := lat + "/" + lon
	if enc, ok := c.cache.Get(key); ok {
		return enc, nil
	}
	enc, err := EncodeCoordinate(lat, lon)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, enc)
	return enc, nil
}

func (c *Codec) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}
