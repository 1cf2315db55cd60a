// vatsys/resolve_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package vatsys

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mmp/nattrack/nat"
)

func makeProfile(t *testing.T, docs, profile string) nat.OutputPaths {
	t.Helper()
	paths := ProfilePaths(docs, profile)
	if err := os.MkdirAll(paths.MapsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	return paths
}

func TestResolveDefaultProfile(t *testing.T) {
	docs := t.TempDir()
	expected := makeProfile(t, docs, DefaultProfile)

	paths, err := DocumentsResolver{Documents: docs}.ResolveOutputPaths()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paths != expected {
		t.Errorf("got %+v, expected %+v", paths, expected)
	}
	if paths.MapsDir != filepath.Join(docs, "vatSys Files", "Profiles", DefaultProfile, "Maps") {
		t.Errorf("got maps dir %q", paths.MapsDir)
	}
}

func TestResolveNamedProfile(t *testing.T) {
	docs := t.TempDir()
	expected := makeProfile(t, docs, "Test Profile")

	paths, err := DocumentsResolver{Documents: docs, Profile: "Test Profile"}.ResolveOutputPaths()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paths != expected {
		t.Errorf("got %+v, expected %+v", paths, expected)
	}
}

func TestResolveMissing(t *testing.T) {
	docs := t.TempDir()
	// Profile exists but has no Maps directory.
	profileDir := ProfilePaths(docs, DefaultProfile).ProfileDir
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := DocumentsResolver{Documents: docs}.ResolveOutputPaths()
	var de *nat.DiscoveryError
	if !errors.As(err, &de) {
		t.Fatalf("expected DiscoveryError, got %v", err)
	}
	if !errors.Is(err, nat.ErrDirectoryNotFound) {
		t.Errorf("expected ErrDirectoryNotFound in %v", err)
	}
	if len(de.Searched) != 1 || de.Searched[0] != filepath.Join(profileDir, "Maps") {
		t.Errorf("got searched %v", de.Searched)
	}

	_, err = DocumentsResolver{Documents: docs, Profile: "nope"}.ResolveOutputPaths()
	if !errors.As(err, &de) || len(de.Searched) != 2 {
		t.Errorf("expected both directories reported missing, got %v", err)
	}
}

func TestResolveMapsOverride(t *testing.T) {
	profile := t.TempDir()
	maps := filepath.Join(profile, "Maps")
	if err := os.Mkdir(maps, 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := DocumentsResolver{MapsDirOverride: maps + string(filepath.Separator)}.ResolveOutputPaths()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paths.MapsDir != maps+string(filepath.Separator) || paths.ProfileDir != profile {
		t.Errorf("got %+v", paths)
	}

	_, err = DocumentsResolver{MapsDirOverride: filepath.Join(profile, "missing")}.ResolveOutputPaths()
	if !errors.Is(err, nat.ErrDirectoryNotFound) {
		t.Errorf("expected ErrDirectoryNotFound, got %v", err)
	}
}

func TestResolveSearchesAllDocumentsDirs(t *testing.T) {
	redirected, home := t.TempDir(), t.TempDir()
	expected := makeProfile(t, home, DefaultProfile)

	r := DocumentsResolver{}
	paths, err := r.resolveIn([]string{redirected, home}, DefaultProfile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paths != expected {
		t.Errorf("got %+v, expected %+v", paths, expected)
	}

	_, err = r.resolveIn([]string{redirected, t.TempDir()}, DefaultProfile)
	var de *nat.DiscoveryError
	if !errors.As(err, &de) {
		t.Fatalf("expected DiscoveryError, got %v", err)
	}
	if len(de.Searched) != 4 || de.Searched[0] != ProfilePaths(redirected, DefaultProfile).ProfileDir {
		t.Errorf("expected both folders in searched list, got %v", de.Searched)
	}

	if _, err := r.resolveIn(nil, DefaultProfile); !errors.Is(err, nat.ErrDirectoryNotFound) {
		t.Errorf("expected ErrDirectoryNotFound with no folders, got %v", err)
	}
}

func TestDocumentsDirsFallback(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Documents folder comes from the registry on Windows")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)

	dirs := DocumentsDirs()
	if len(dirs) != 1 || dirs[0] != filepath.Join(home, "Documents") {
		t.Errorf("got %v, expected [%s]", dirs, filepath.Join(home, "Documents"))
	}
}
