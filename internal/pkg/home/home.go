// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

// Package home resolves the host-owned Enact directory.
package home

import (
	"os"
	"path/filepath"
)

// Dir returns the Enact home directory: $ENACT_HOME when set, otherwise
// $HOME/.enact.
func Dir() (string, error) {
	if dir := os.Getenv("ENACT_HOME"); dir != "" {
		return dir, nil
	}

	hd, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(hd, ".enact"), nil
}
