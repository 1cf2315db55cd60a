// cmd/nattrack/main.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// nattrack downloads the current North Atlantic Tracks and writes them to
// a vatSys profile as a Maps file and an Airspace file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/apenwarr/fixconsole"
	"github.com/goforj/godump"
	"github.com/mmp/nattrack/log"
	"github.com/mmp/nattrack/nat"
	"github.com/mmp/nattrack/publish"
	"github.com/mmp/nattrack/vatsys"
	"github.com/ncruces/zenity"
)

var (
	feedURL   = flag.String("url", nat.FeedURL, "URL of the NAT track feed")
	timeout   = flag.Duration("timeout", nat.DefaultFeedTimeout, "timeout for fetching the feed")
	filename  = flag.String("filename", nat.DefaultMapsFilename, "name of the maps file to write")
	mapsDir   = flag.String("mapsdir", "", "vatSys Maps directory (overrides profile lookup; Airspace.xml goes in its parent)")
	profile   = flag.String("profile", vatsys.DefaultProfile, "vatSys profile to update")
	colour    = flag.String("colour", nat.DefaultMapAttributes().CustomColourName, "custom colour name for the track map (empty for none)")
	variant   = flag.String("variant", "derived", "route point naming: derived (N54W20 fixes) or raw (coordinates only)")
	feedFile  = flag.String("feed", "", "read the feed from a local JSON file instead of the network")
	replay    = flag.Bool("replay", false, "use the most recently fetched feed from the cache")
	publishTo = flag.String("publish", "", "also upload the files to gs://bucket/prefix, s3://bucket/prefix or dryrun://")
	dump      = flag.Bool("dump", false, "print the parsed routes and exit without writing anything")
	dialog    = flag.Bool("dialog", false, "show a dialog box if an error occurs")
	logLevel  = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir    = flag.String("logdir", "", "log file directory")
)

var ErrNoRoutes = errors.New("No routes in feed")

func main() {
	flag.Parse()

	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		fmt.Printf("FixConsole: %v\n", err)
	}

	lg := log.New(*logLevel, *logDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, lg); err != nil {
		fail(err, lg)
	}
}

func run(ctx context.Context, lg *log.Logger) error {
	opts, err := makeOptions()
	if err != nil {
		return err
	}
	fetcher := makeFetcher(lg)

	if *dump {
		return dumpRoutes(ctx, fetcher, opts.Variant)
	}

	p := &nat.Pipeline{
		Resolver: vatsys.DocumentsResolver{
			Profile:         *profile,
			MapsDirOverride: *mapsDir,
			Logger:          lg,
		},
		Fetcher: fetcher,
		Options: opts,
		Codec:   nat.NewCodec(nat.DefaultCodecCacheSize),
		Archive: *feedFile == "" && !*replay,
		Logger:  lg,
	}

	if *publishTo != "" {
		pub, err := publish.Open(ctx, *publishTo, lg)
		if err != nil {
			return err
		}
		defer pub.Close()
		p.Publisher = pub
	}

	fmt.Println("Fetching NAT tracks...")
	res, err := p.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d tracks to %s\n", res.Tracks, res.MapsPath)
	fmt.Printf("Wrote %d intersections to %s\n", res.Intersections, res.AirspacePath)
	if *publishTo != "" {
		fmt.Printf("Published to %s\n", *publishTo)
	}
	return nil
}

func makeOptions() (nat.Options, error) {
	opts := nat.DefaultOptions()

	v, err := nat.ParseVariant(*variant)
	if err != nil {
		return opts, err
	}
	opts.Variant = v
	opts.MapAttributes.CustomColourName = *colour
	if *filename != "" {
		opts.MapsFilename = *filename
	}
	return opts, nil
}

func makeFetcher(lg *log.Logger) nat.Fetcher {
	switch {
	case *feedFile != "":
		return nat.FileFeed{Path: *feedFile}
	case *replay:
		return nat.CachedFeed{Logger: lg}
	default:
		return nat.NewFeedClient(*feedURL, *timeout, lg)
	}
}

func dumpRoutes(ctx context.Context, f nat.Fetcher, v nat.Variant) error {
	feed, err := f.Fetch(ctx)
	if err != nil {
		return err
	}
	tracks := nat.ParseFeed(feed, v)
	if len(tracks) == 0 {
		return ErrNoRoutes
	}
	godump.Fdump(os.Stdout, tracks)
	return nil
}

func fail(err error, lg *log.Logger) {
	kind := nat.ErrorKind(err)
	lg.Error("Update failed", "kind", kind, "error", err)
	fmt.Fprintf(os.Stderr, "nattrack: %s: %v\n", kind, err)

	if *dialog {
		derr := zenity.Error(err.Error(), zenity.Title("NAT track update failed"), zenity.ErrorIcon)
		if derr != nil && !errors.Is(derr, zenity.ErrCanceled) {
			lg.Warnf("Unable to show error dialog: %v", derr)
		}
	}
	os.Exit(1)
}
