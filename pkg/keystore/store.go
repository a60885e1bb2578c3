// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

// Package keystore maintains a persistent directory of trusted public keys
// and locally held private keys, with JSON metadata per key.
package keystore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/enactprotocol/security-go/internal/pkg/home"
	"github.com/enactprotocol/security-go/pkg/keys"
)

const (
	trustedDirName = "trusted-keys"
	privateDirName = "private-keys"

	publicSuffix  = "-public.pem"
	privateSuffix = "-private.pem"
	metaSuffix    = ".meta"

	trustedDirMode = 0o755
	privateDirMode = 0o700
	publicMode     = 0o644
	privateMode    = 0o600
)

// Metadata describes a stored key.
type Metadata struct {
	KeyID       string `json:"keyId"`
	Created     string `json:"created"`
	Algorithm   string `json:"algorithm"`
	Description string `json:"description,omitempty"`
}

// KeyExistsError records an attempt to store a key under an identifier that
// is already in use.
type KeyExistsError struct {
	ID string // Key identifier.
}

func (e *KeyExistsError) Error() string {
	if e.ID == "" {
		return "key already exists"
	}
	return fmt.Sprintf("key %q already exists", e.ID)
}

// Is compares e against target. If target is a KeyExistsError and matches e
// or target has a zero value ID, true is returned.
func (e *KeyExistsError) Is(target error) bool {
	t, ok := target.(*KeyExistsError)
	if !ok {
		return false
	}
	return e.ID == t.ID || t.ID == ""
}

// Store is a handle to a key directory rooted at an Enact home directory.
type Store struct {
	root     string
	timeFunc func() time.Time
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

// OptStoreWithTime specifies fn as the func to obtain key creation
// timestamps.
func OptStoreWithTime(fn func() time.Time) StoreOpt {
	return func(s *Store) error {
		s.timeFunc = fn
		return nil
	}
}

// NewStore returns a key store configured with opts. Unless overridden with
// OptStoreRoot, the store is rooted at the default Enact home.
func NewStore(opts ...StoreOpt) (*Store, error) {
	s := &Store{timeFunc: time.Now}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("keystore: %w", err)
		}
	}

	if s.root == "" {
		dir, err := home.Dir()
		if err != nil {
			return nil, fmt.Errorf("keystore: %w", err)
		}
		s.root = dir
	}

	return s, nil
}

func (s *Store) trustedDir() string { return filepath.Join(s.root, trustedDirName) }
func (s *Store) privateDir() string { return filepath.Join(s.root, privateDirName) }

func (s *Store) publicPath(id string) string {
	return filepath.Join(s.trustedDir(), id+publicSuffix)
}

func (s *Store) metaPath(id string) string {
	return filepath.Join(s.trustedDir(), id+metaSuffix)
}

func (s *Store) privatePath(id string) string {
	return filepath.Join(s.privateDir(), id+privateSuffix)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// newMetadata returns metadata for a key stored now.
func (s *Store) newMetadata(id, description string) Metadata {
	return Metadata{
		KeyID:       id,
		Created:     s.timeFunc().UTC().Format(time.RFC3339),
		Algorithm:   keys.Algorithm,
		Description: description,
	}
}

// writeFile writes b to path with mode, creating dir with dirMode first.
// On success the written path is appended to *written for rollback.
func writeFile(path string, b []byte, mode os.FileMode, dirMode os.FileMode, written *[]string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return err
	}
	if err := os.WriteFile(path, b, mode); err != nil {
		return err
	}
	*written = append(*written, path)
	return nil
}

// rollback removes partially written files, best effort.
func rollback(written []string) {
	for _, path := range written {
		_ = os.Remove(path)
	}
}

// storePublic writes the public PEM and metadata for id.
func (s *Store) storePublic(id, pubHex, description string, written *[]string) error {
	pubPEM, err := keys.PublicToPEM(pubHex)
	if err != nil {
		return err
	}

	if err := writeFile(s.publicPath(id), []byte(pubPEM), publicMode, trustedDirMode, written); err != nil {
		return err
	}

	meta, err := json.MarshalIndent(s.newMetadata(id, description), "", "  ")
	if err != nil {
		return err
	}
	return writeFile(s.metaPath(id), meta, publicMode, trustedDirMode, written)
}

// storePair writes public PEM, metadata and private PEM for id, removing any
// partially written files on failure.
func (s *Store) storePair(id string, kp keys.KeyPair, description string) error {
	var written []string

	if err := s.storePublic(id, kp.PublicKey, description, &written); err != nil {
		rollback(written)
		return fmt.Errorf("keystore: %w", err)
	}

	privPEM, err := keys.PrivateToPEM(kp.PrivateKey)
	if err != nil {
		rollback(written)
		return fmt.Errorf("keystore: %w", err)
	}

	if err := writeFile(s.privatePath(id), []byte(privPEM), privateMode, privateDirMode, &written); err != nil {
		rollback(written)
		return fmt.Errorf("keystore: %w", err)
	}

	return nil
}

// Generate creates a new key pair and stores it under id. If id is empty, a
// UUID-derived identifier is minted. Fails if any file for id already
// exists.
func (s *Store) Generate(id, description string) (string, keys.KeyPair, error) {
	if id == "" {
		id = uuid.New().String()
	}

	if exists(s.publicPath(id)) || exists(s.privatePath(id)) {
		return "", keys.KeyPair{}, fmt.Errorf("keystore: %w", &KeyExistsError{ID: id})
	}

	kp, err := keys.Generate()
	if err != nil {
		return "", keys.KeyPair{}, fmt.Errorf("keystore: %w", err)
	}

	if err := s.storePair(id, kp, description); err != nil {
		return "", keys.KeyPair{}, err
	}
	return id, kp, nil
}

// ImportPublic stores a trusted public key under id. Only the public PEM and
// metadata are written. Fails if a public key with id already exists.
func (s *Store) ImportPublic(id, pubHex, description string) error {
	if exists(s.publicPath(id)) {
		return fmt.Errorf("keystore: %w", &KeyExistsError{ID: id})
	}

	var written []string
	if err := s.storePublic(id, pubHex, description, &written); err != nil {
		rollback(written)
		return fmt.Errorf("keystore: %w", err)
	}
	return nil
}

// ImportPrivate derives the public key from privHex and stores the pair
// under id, as Generate does.
func (s *Store) ImportPrivate(id, privHex, description string) (keys.KeyPair, error) {
	if exists(s.publicPath(id)) || exists(s.privatePath(id)) {
		return keys.KeyPair{}, fmt.Errorf("keystore: %w", &KeyExistsError{ID: id})
	}

	kp, err := keys.FromPrivate(privHex)
	if err != nil {
		return keys.KeyPair{}, fmt.Errorf("keystore: %w", err)
	}

	if err := s.storePair(id, kp, description); err != nil {
		return keys.KeyPair{}, err
	}
	return kp, nil
}

// Get returns the key pair stored under id. Both the public and private
// files must exist and decode; otherwise false is returned.
func (s *Store) Get(id string) (keys.KeyPair, bool) {
	pubHex, ok := s.GetPublic(id)
	if !ok {
		return keys.KeyPair{}, false
	}

	b, err := os.ReadFile(s.privatePath(id))
	if err != nil {
		return keys.KeyPair{}, false
	}

	privHex, err := keys.PEMToPrivate(string(b))
	if err != nil {
		return keys.KeyPair{}, false
	}

	return keys.KeyPair{PrivateKey: privHex, PublicKey: pubHex}, true
}

// GetPublic returns the hex public key stored under id.
func (s *Store) GetPublic(id string) (string, bool) {
	b, err := os.ReadFile(s.publicPath(id))
	if err != nil {
		return "", false
	}

	pubHex, err := keys.PEMToPublic(string(b))
	if err != nil {
		return "", false
	}
	return pubHex, true
}

// GetMetadata returns the metadata stored under id.
func (s *Store) GetMetadata(id string) (Metadata, bool) {
	b, err := os.ReadFile(s.metaPath(id))
	if err != nil {
		return Metadata{}, false
	}

	var md Metadata
	if err := json.Unmarshal(b, &md); err != nil {
		return Metadata{}, false
	}
	return md, true
}

// KeyExists reports whether both the public and private key files for id
// are present.
func (s *Store) KeyExists(id string) bool {
	return exists(s.publicPath(id)) && exists(s.privatePath(id))
}

// Remove deletes whatever subset of files exists for id, and reports
// whether anything was removed.
func (s *Store) Remove(id string) bool {
	removed := false
	for _, path := range []string{s.publicPath(id), s.metaPath(id), s.privatePath(id)} {
		if err := os.Remove(path); err == nil {
			removed = true
		}
	}
	return removed
}

// ListTrusted returns the identifiers of all trusted public keys, sorted.
func (s *Store) ListTrusted() []string {
	return listSuffix(s.trustedDir(), publicSuffix)
}

// ListPrivate returns the identifiers of all keys with stored private
// material, sorted.
func (s *Store) ListPrivate() []string {
	return listSuffix(s.privateDir(), privateSuffix)
}

// listSuffix returns the identifiers of files in dir carrying suffix. A
// missing or unreadable directory yields an empty list.
func listSuffix(dir, suffix string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), suffix))
	}

	sort.Strings(ids)
	return ids
}

// TrustedPublicKeys decodes every PEM file in the trusted directory and
// returns the hex public keys. Entries that fail to decode are skipped and
// reported by file name; they do not abort the enumeration.
func (s *Store) TrustedPublicKeys() (pubs []string, skipped []string) {
	entries, err := os.ReadDir(s.trustedDir())
	if err != nil {
		return nil, nil
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".pem") {
			continue
		}

		b, err := os.ReadFile(filepath.Join(s.trustedDir(), e.Name()))
		if err != nil {
			skipped = append(skipped, e.Name())
			continue
		}

		pubHex, err := keys.PEMToPublic(string(b))
		if err != nil {
			skipped = append(skipped, e.Name())
			continue
		}
		pubs = append(pubs, pubHex)
	}

	return pubs, skipped
}
