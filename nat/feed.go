// nat/feed.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/mmp/nattrack/log"
	"github.com/mmp/nattrack/util"
)

const (
	// FeedURL is the Gander Oceanic endpoint that publishes the current
	// day's tracks.
	FeedURL            = "https://tracks.ganderoceanic.ca/data"
	DefaultFeedTimeout = 30 * time.Second

	// Path of the most recently fetched feed in the user cache directory.
	FeedCachePath = "feed.msgpack.zst"

	// MaxFeedSize bounds the response body; the feed is normally a few KB.
	MaxFeedSize = 8 << 20
)

// TrackFeed is the list of tracks in the order the feed publishes them.
type TrackFeed []Track

type Track struct {
	ID    string       `json:"id" msgpack:"id"`
	Route []RoutePoint `json:"route" msgpack:"route"`
}

// RoutePoint is a single point along a track. Latitude and longitude are
// kept as they appear in the feed's JSON so that the coordinate codec
// sees exactly what was published.
type RoutePoint struct {
	Name      string     `json:"name" msgpack:"name"`
	Latitude  CoordValue `json:"latitude" msgpack:"latitude"`
	Longitude CoordValue `json:"longitude" msgpack:"longitude"`
}

// CoordValue holds the literal text of a latitude or longitude from the
// feed. It may be given as a JSON number or a string; null gives the
// empty string. Whether it is numeric is checked when it is encoded.
type CoordValue string

func (c CoordValue) String() string { return string(c) }

func (c *CoordValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*c = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = CoordValue(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*c = CoordValue(n)
	}
	return nil
}

// Fetcher provides the track feed for a run.
type Fetcher interface {
	Fetch(ctx context.Context) (TrackFeed, error)
}

// FeedClient fetches the feed over HTTP with a single GET request.
type FeedClient struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
	Logger  *log.Logger
}

func NewFeedClient(url string, timeout time.Duration, lg *log.Logger) *FeedClient {
	if url == "" {
		url = FeedURL
	}
	if timeout == 0 {
		timeout = DefaultFeedTimeout
	}
	return &FeedClient{
		URL:     url,
		Client:  &http.Client{Timeout: timeout},
		Timeout: timeout,
		Logger:  lg,
	}
}

func (fc *FeedClient) Fetch(ctx context.Context) (TrackFeed, error) {
	lg := fc.Logger.With("url", fc.URL)
	lg.Info("Fetching tracks")

	if fc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, fc.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fc.URL, nil)
	if err != nil {
		return nil, &FetchError{URL: fc.URL, Err: err}
	}

	client := fc.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: fc.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: fc.URL, Err: fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxFeedSize+1))
	if err != nil {
		return nil, &FetchError{URL: fc.URL, Err: err}
	} else if len(body) > MaxFeedSize {
		return nil, &FetchError{URL: fc.URL, Err: fmt.Errorf("%w: more than %d bytes", ErrFeedTooLarge, MaxFeedSize)}
	}
	lg.Debugf("Received %d bytes", len(body))

	feed, err := DecodeFeed(body)
	if err != nil {
		return nil, &FetchError{URL: fc.URL, Err: err}
	}
	lg.Info("Tracks fetched", "tracks", len(feed))

	return feed, nil
}

// DecodeFeed parses the JSON representation of the feed.
func DecodeFeed(b []byte) (TrackFeed, error) {
	var feed TrackFeed
	if err := util.UnmarshalJSONBytes(b, &feed); err != nil {
		return nil, err
	}
	return feed, nil
}

// FileFeed reads the feed from a local JSON file, e.g. one saved from the
// website when the endpoint is unavailable.
type FileFeed struct {
	Path string
}

func (f FileFeed) Fetch(ctx context.Context) (TrackFeed, error) {
	r, err := os.Open(f.Path)
	if err != nil {
		return nil, &FetchError{URL: f.Path, Err: err}
	}
	defer r.Close()

	var feed TrackFeed
	if err := util.UnmarshalJSON(r, &feed); err != nil {
		return nil, &FetchError{URL: f.Path, Err: err}
	}
	return feed, nil
}

// CachedFeed returns the feed most recently archived with ArchiveFeed.
type CachedFeed struct {
	Logger *log.Logger
}

func (c CachedFeed) Fetch(ctx context.Context) (TrackFeed, error) {
	var feed TrackFeed
	t, err := util.CacheRetrieveObject(FeedCachePath, &feed)
	if err != nil {
		return nil, &FetchError{URL: "cache:" + FeedCachePath, Err: err}
	}
	c.Logger.Infof("Using cached feed from %s", t.Format(time.RFC3339))
	return feed, nil
}

// ArchiveFeed stores feed in the user cache directory so that it can be
// used later via CachedFeed.
func ArchiveFeed(feed TrackFeed) error {
	return util.CacheStoreObject(FeedCachePath, feed)
}

// ValidateFeed checks that every track has an identifier and at least one
// route point and that every raw coordinate point has both a latitude and
// a longitude. All problems found are reported together.
func ValidateFeed(feed TrackFeed, lg *log.Logger) error {
	var e util.ErrorLogger
	for i, tr := range feed {
		e.Push("track " + trackLabel(tr, i))
		if tr.ID == "" {
			e.Error(ErrMissingTrackID)
		}
		if len(tr.Route) == 0 {
			e.Error(ErrEmptyRoute)
		}
		for j, pt := range tr.Route {
			if isRawPair(pt.Name) && (pt.Latitude == "" || pt.Longitude == "") {
				e.Push("point " + strconv.Itoa(j+1))
				e.Error(ErrMissingCoordinate)
				e.Pop()
			}
		}
		e.Pop()
	}

	if e.HaveErrors() {
		e.LogErrors(lg)
		return &DocumentAssemblyError{Document: "feed", Err: e.Err()}
	}
	return nil
}

func trackLabel(tr Track, idx int) string {
	if tr.ID != "" {
		return tr.ID
	}
	return "#" + strconv.Itoa(idx+1)
}
