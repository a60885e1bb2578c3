// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package keystore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrKeyNotFound is the error returned when an export references a key the
// store does not hold.
var ErrKeyNotFound = errors.New("key not found")

// Bundle is the JSON key bundle written by Export.
type Bundle struct {
	Metadata   Metadata `json:"metadata"`
	PublicKey  string   `json:"publicKey"`
	PrivateKey string   `json:"privateKey,omitempty"`
}

// Export writes a JSON bundle for the key stored under id to path. When
// withPrivate is set, the bundle includes the private scalar and the file is
// written owner-only.
func (s *Store) Export(id, path string, withPrivate bool) error {
	pubHex, ok := s.GetPublic(id)
	if !ok {
		return fmt.Errorf("keystore: %w: %v", ErrKeyNotFound, id)
	}

	md, ok := s.GetMetadata(id)
	if !ok {
		md = s.newMetadata(id, "")
	}

	bundle := Bundle{Metadata: md, PublicKey: pubHex}

	mode := os.FileMode(publicMode)
	if withPrivate {
		kp, ok := s.Get(id)
		if !ok {
			return fmt.Errorf("keystore: %w: %v", ErrKeyNotFound, id)
		}
		bundle.PrivateKey = kp.PrivateKey
		mode = privateMode
	}

	b, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("keystore: %w", err)
	}

	if err := os.WriteFile(path, b, mode); err != nil {
		return fmt.Errorf("keystore: %w", err)
	}

	// WriteFile keeps the mode of an existing file.
	if withPrivate {
		if err := os.Chmod(path, mode); err != nil {
			return fmt.Errorf("keystore: %w", err)
		}
	}
	return nil
}
