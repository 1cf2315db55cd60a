// vatsys/documents_other.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

//go:build !windows

package vatsys

// DocumentsDirs returns the folders to look for vatSys Files in.
func DocumentsDirs() []string {
	if d, err := homeDocuments(); err == nil {
		return []string{d}
	}
	return nil
}
