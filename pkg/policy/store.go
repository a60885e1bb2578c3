// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package policy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/enactprotocol/security-go/internal/pkg/home"
)

const (
	configDirName  = "security"
	configFileName = "config.json"

	dirMode  = 0o755
	fileMode = 0o644
)

// Store is a handle to a persistent policy configuration rooted at an Enact
// home directory.
type Store struct {
	root string
}

// StoreOpt are used to configure a Store.
type StoreOpt func(*Store) error

// OptStoreRoot specifies dir as the Enact home directory for the store.
func OptStoreRoot(dir string) StoreOpt {
	return func(s *Store) error {
		s.root = dir
		return nil
	}
}

// NewStore returns a policy store configured with opts. Unless overridden
// with OptStoreRoot, the store is rooted at the default Enact home.
func NewStore(opts ...StoreOpt) (*Store, error) {
	s := &Store{}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("policy: %w", err)
		}
	}

	if s.root == "" {
		dir, err := home.Dir()
		if err != nil {
			return nil, fmt.Errorf("policy: %w", err)
		}
		s.root = dir
	}

	return s, nil
}

// path returns the location of the config file.
func (s *Store) path() string {
	return filepath.Join(s.root, configDirName, configFileName)
}

// write persists c to the config file.
func (s *Store) write(c Config) error {
	if err := os.MkdirAll(filepath.Dir(s.path()), dirMode); err != nil {
		return fmt.Errorf("policy: %w", err)
	}

	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("policy: %w", err)
	}

	if err := os.WriteFile(s.path(), b, fileMode); err != nil {
		return fmt.Errorf("policy: %w", err)
	}
	return nil
}

// read loads the config file and merges it over the defaults. The boolean
// reports whether a usable file was found.
func (s *Store) read() (Config, bool) {
	b, err := os.ReadFile(s.path())
	if err != nil {
		return Default(), false
	}

	var p Partial
	if err := json.Unmarshal(b, &p); err != nil {
		return Default(), false
	}

	c := p.apply(Default())
	if !Validate(c) {
		return Default(), false
	}
	return c, true
}

// Initialize returns the current configuration, writing the defaults first
// if no config file exists.
func (s *Store) Initialize() (Config, error) {
	if _, err := os.Stat(s.path()); os.IsNotExist(err) {
		if err := s.write(Default()); err != nil {
			return Default(), err
		}
	}

	c, _ := s.read()
	return c, nil
}

// Load returns the persisted configuration merged over the defaults. A
// missing file yields the defaults and persists them; an unparsable file
// yields the defaults without modifying it.
func (s *Store) Load() Config {
	if c, ok := s.read(); ok {
		return c
	}

	if _, err := os.Stat(s.path()); os.IsNotExist(err) {
		// Best effort; a read-only host still gets a usable policy.
		_ = s.write(Default())
	}

	return Default()
}

// Save validates and persists c.
func (s *Store) Save(c Config) error {
	if !Validate(c) {
		return fmt.Errorf("policy: %w", errInvalidConfig)
	}
	return s.write(c)
}

// Update loads the current configuration, overlays the non-nil fields of p,
// persists the result, and returns it.
func (s *Store) Update(p Partial) (Config, error) {
	c := p.apply(s.Load())
	if err := s.Save(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Reset overwrites the persisted configuration with the defaults.
func (s *Store) Reset() (Config, error) {
	c := Default()
	if err := s.write(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Import reads a policy from path, merges it over the defaults, persists
// and returns it.
func (s *Store) Import(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("policy: %w", err)
	}

	var p Partial
	if err := json.Unmarshal(b, &p); err != nil {
		return Config{}, fmt.Errorf("policy: %w", err)
	}

	c := p.apply(Default())
	if err := s.Save(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Export writes the current configuration to path.
func (s *Store) Export(path string) error {
	b, err := json.MarshalIndent(s.Load(), "", "  ")
	if err != nil {
		return fmt.Errorf("policy: %w", err)
	}

	if err := os.WriteFile(path, b, fileMode); err != nil {
		return fmt.Errorf("policy: %w", err)
	}
	return nil
}
