// vatsys/documents_windows.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package vatsys

import (
	"golang.org/x/sys/windows/registry"
)

const shellFoldersKey = `Software\Microsoft\Windows\CurrentVersion\Explorer\User Shell Folders`

// DocumentsDirs returns the folders to look for vatSys Files in, in order.
// The shell folder registry entry comes first so that redirected Documents
// folders (e.g. to OneDrive) are found; %USERPROFILE%\Documents follows.
func DocumentsDirs() []string {
	var dirs []string
	if d, err := registryDocuments(); err == nil && d != "" {
		dirs = append(dirs, d)
	}
	if d, err := homeDocuments(); err == nil && (len(dirs) == 0 || dirs[0] != d) {
		dirs = append(dirs, d)
	}
	return dirs
}

func registryDocuments() (string, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, shellFoldersKey, registry.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer k.Close()

	v, _, err := k.GetStringValue("Personal")
	if err != nil {
		return "", err
	}
	// The value is usually REG_EXPAND_SZ, e.g. %USERPROFILE%\Documents.
	if exp, err := registry.ExpandString(v); err == nil {
		v = exp
	}
	return v, nil
}
