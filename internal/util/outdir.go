// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ParseOutputDir parses an output directory string and returns the absolute
// directory. It returns an error if the fs entry does not exist, is empty or
// is not a directory.
func ParseOutputDir(dir string) (string, error) {
	if dir == "" {
		return "", os.ErrInvalid
	}

	// If the path is relative, make it absolute.
	if !strings.HasPrefix(dir, "/") {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(cwd, dir)
	}

	if r, err := os.Stat(dir); err != nil {
		return "", err
	} else if !r.IsDir() {
		return "", os.ErrInvalid
	}

	return dir, nil
}
