// vatsys/resolve.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package vatsys locates the vatSys profile directories that the NAT track
// files are written to.
package vatsys

import (
	"os"
	"path/filepath"

	"github.com/mmp/nattrack/log"
	"github.com/mmp/nattrack/nat"
	"github.com/mmp/nattrack/util"
)

const (
	// DefaultProfile is the profile that ships the Gander/Shanwick
	// oceanic sectors.
	DefaultProfile = "gaats-gander-shanwick-dataset"

	filesDir    = "vatSys Files"
	profilesDir = "Profiles"
	mapsDir     = "Maps"
)

// DocumentsResolver finds the Maps and profile directories for a vatSys
// profile under the user's Documents folder.
type DocumentsResolver struct {
	Profile string
	// Documents overrides the Documents folder lookup when non-empty.
	Documents string
	// MapsDirOverride, if set, is used as the Maps directory and its
	// parent as the profile directory.
	MapsDirOverride string
	Logger          *log.Logger
}

func (r DocumentsResolver) ResolveOutputPaths() (nat.OutputPaths, error) {
	if r.MapsDirOverride != "" {
		paths := nat.OutputPaths{
			MapsDir:    r.MapsDirOverride,
			ProfileDir: filepath.Dir(filepath.Clean(r.MapsDirOverride)),
		}
		return paths, checkDirs(paths)
	}

	profile := r.Profile
	if profile == "" {
		profile = DefaultProfile
	}

	docs := DocumentsDirs()
	if r.Documents != "" {
		docs = []string{r.Documents}
	}
	return r.resolveIn(docs, profile)
}

// resolveIn returns the paths for profile under the first of the given
// documents folders that has both directories.
func (r DocumentsResolver) resolveIn(docs []string, profile string) (nat.OutputPaths, error) {
	var searched []string
	for _, d := range docs {
		paths := ProfilePaths(d, profile)
		missing := missingDirs(paths)
		if len(missing) == 0 {
			r.Logger.Debugf("Using documents folder %s", d)
			return paths, nil
		}
		r.Logger.Debugf("%s: profile %q not found", d, profile)
		searched = append(searched, missing...)
	}
	return nat.OutputPaths{}, &nat.DiscoveryError{Searched: searched, Err: nat.ErrDirectoryNotFound}
}

// ProfilePaths returns the expected output directories for the given
// profile under the documents folder docs. It doesn't check that they exist.
func ProfilePaths(docs, profile string) nat.OutputPaths {
	profileDir := filepath.Join(docs, filesDir, profilesDir, profile)
	return nat.OutputPaths{
		MapsDir:    filepath.Join(profileDir, mapsDir),
		ProfileDir: profileDir,
	}
}

func checkDirs(paths nat.OutputPaths) error {
	if missing := missingDirs(paths); len(missing) > 0 {
		return &nat.DiscoveryError{Searched: missing, Err: nat.ErrDirectoryNotFound}
	}
	return nil
}

func missingDirs(paths nat.OutputPaths) []string {
	var missing []string
	for _, d := range []string{paths.ProfileDir, paths.MapsDir} {
		if !util.DirExists(d) {
			missing = append(missing, d)
		}
	}
	return missing
}

// homeDocuments returns ~/Documents.
func homeDocuments() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Documents"), nil
}
