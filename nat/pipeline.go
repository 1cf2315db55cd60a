// nat/pipeline.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nat

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/brunoga/deep"
	"github.com/mmp/nattrack/log"
	"golang.org/x/sync/errgroup"
)

// OutputPaths gives the directories the two output files are written to.
type OutputPaths struct {
	MapsDir    string // vatSys profile Maps directory
	ProfileDir string // vatSys profile directory; holds Airspace.xml
}

// LocationResolver finds the directories that the output files should be
// written to. Implementations return a *DiscoveryError if they can't.
type LocationResolver interface {
	ResolveOutputPaths() (OutputPaths, error)
}

// FixedLocation is a LocationResolver that always returns the given paths.
type FixedLocation OutputPaths

func (f FixedLocation) ResolveOutputPaths() (OutputPaths, error) {
	return OutputPaths(f), nil
}

// Publisher receives copies of the generated files after they have been
// written locally.
type Publisher interface {
	Publish(ctx context.Context, name string, data []byte) error
}

type Options struct {
	Variant          Variant
	MapAttributes    MapAttributes
	MapsFilename     string
	AirspaceFilename string
}

func DefaultOptions() Options {
	return Options{
		Variant:          VariantDerived,
		MapAttributes:    DefaultMapAttributes(),
		MapsFilename:     DefaultMapsFilename,
		AirspaceFilename: DefaultAirspaceFilename,
	}
}

type Documents struct {
	Maps     *MapsDocument
	Airspace *AirspaceDocument
}

// Assemble validates the feed and builds both documents from it. The two
// builders run concurrently, each with its own copy of the parsed routes.
func Assemble(feed TrackFeed, opts Options, codec *Codec, lg *log.Logger) (*Documents, error) {
	if err := ValidateFeed(feed, lg); err != nil {
		return nil, err
	}

	tracks := ParseFeed(feed, opts.Variant)
	lg.Debug("Parsed routes", "tracks", len(tracks), "variant", opts.Variant.String())

	var docs Documents
	var eg errgroup.Group
	mapTracks, airspaceTracks := deep.MustCopy(tracks), deep.MustCopy(tracks)
	eg.Go(func() error {
		var err error
		docs.Maps, err = BuildMaps(mapTracks, opts.MapAttributes, codec)
		return err
	})
	eg.Go(func() error {
		var err error
		docs.Airspace, err = BuildAirspace(airspaceTracks, codec)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	lg.Info("Assembled documents", "tracks", len(docs.Maps.Map.Tracks),
		"intersections", len(docs.Airspace.Intersections.Points))
	return &docs, nil
}

// Pipeline runs one complete update: it finds the output directories,
// fetches the feed, builds both documents and writes them out.
type Pipeline struct {
	Resolver  LocationResolver
	Fetcher   Fetcher
	Options   Options
	Codec     *Codec
	Publisher Publisher // optional
	// Archive stores the fetched feed in the user cache so that it can be
	// reused with CachedFeed.
	Archive bool
	Logger  *log.Logger
}

type Result struct {
	MapsPath      string
	AirspacePath  string
	MapsBytes     int
	AirspaceBytes int
	Tracks        int
	Intersections int
}

// Run executes the pipeline. Errors are returned as-is from the stage
// that failed; nothing is written unless both documents were built and
// serialized successfully.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	lg := p.Logger
	lg.Info("Starting")

	paths, err := p.Resolver.ResolveOutputPaths()
	if err != nil {
		return Result{}, err
	}
	lg.Info("Resolved output directories", "maps", paths.MapsDir, "profile", paths.ProfileDir)

	feed, err := p.Fetcher.Fetch(ctx)
	if err != nil {
		return Result{}, err
	}
	if p.Archive {
		if err := ArchiveFeed(feed); err != nil {
			lg.Warnf("Unable to archive feed: %v", err)
		}
	}

	codec := p.Codec
	if codec == nil {
		codec = NewCodec(0)
	}
	docs, err := Assemble(feed, p.Options, codec, lg)
	if err != nil {
		return Result{}, err
	}

	mapsXML, err := MarshalMaps(docs.Maps)
	if err != nil {
		return Result{}, err
	}
	airspaceXML, err := MarshalAirspace(docs.Airspace)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		MapsPath:      filepath.Join(paths.MapsDir, p.Options.MapsFilename),
		AirspacePath:  filepath.Join(paths.ProfileDir, p.Options.AirspaceFilename),
		MapsBytes:     len(mapsXML),
		AirspaceBytes: len(airspaceXML),
		Tracks:        len(docs.Maps.Map.Tracks),
		Intersections: len(docs.Airspace.Intersections.Points),
	}

	if err := writeFile(res.AirspacePath, airspaceXML); err != nil {
		return Result{}, err
	}
	lg.Info("Wrote airspace", "path", res.AirspacePath, "bytes", res.AirspaceBytes)

	if err := writeFile(res.MapsPath, mapsXML); err != nil {
		return Result{}, err
	}
	lg.Info("Wrote maps", "path", res.MapsPath, "bytes", res.MapsBytes)

	if p.Publisher != nil {
		if err := p.Publisher.Publish(ctx, p.Options.AirspaceFilename, airspaceXML); err != nil {
			return res, fmt.Errorf("publishing %s: %w", p.Options.AirspaceFilename, err)
		}
		if err := p.Publisher.Publish(ctx, p.Options.MapsFilename, mapsXML); err != nil {
			return res, fmt.Errorf("publishing %s: %w", p.Options.MapsFilename, err)
		}
	}

	return res, nil
}
