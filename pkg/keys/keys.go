// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

// Package keys provides secp256k1 key pairs, deterministic ECDSA signing, and
// a PEM codec tolerant of the public key shapes emitted by third-party
// producers.
package keys

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// PrivateKeySize is the size of a private scalar in bytes.
	PrivateKeySize = 32

	// PublicKeySize is the size of a compressed public point in bytes.
	PublicKeySize = 33

	// SignatureSize is the size of a compact (r || s) signature in bytes.
	SignatureSize = 64
)

// Algorithm is the only signature algorithm supported by this library.
const Algorithm = "secp256k1"

// ErrInvalidKey is the error returned when a private key is not a valid
// secp256k1 scalar.
var ErrInvalidKey = errors.New("invalid private key")

// ErrInvalidPublicKey is the error returned when a public key cannot be
// parsed as a secp256k1 point.
var ErrInvalidPublicKey = errors.New("invalid public key")

// KeyPair holds a secp256k1 key pair as hex strings. PrivateKey is the
// 32-byte scalar; PublicKey is the 33-byte compressed point.
type KeyPair struct {
	PrivateKey string `json:"privateKey"`
	PublicKey  string `json:"publicKey"`
}

// Generate returns a new key pair with a uniformly random valid scalar.
func Generate() (KeyPair, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return KeyPair{}, fmt.Errorf("keys: %w", err)
	}

	return KeyPair{
		PrivateKey: hex.EncodeToString(priv.Serialize()),
		PublicKey:  hex.EncodeToString(priv.PubKey().SerializeCompressed()),
	}, nil
}

// DerivePublic returns the hex-encoded compressed public point for the
// private scalar privHex. If privHex is not a valid scalar, an error wrapping
// ErrInvalidKey is returned.
func DerivePublic(privHex string) (string, error) {
	priv, err := parsePrivate(privHex)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(priv.PubKey().SerializeCompressed()), nil
}

// FromPrivate reconstructs a key pair from the private scalar privHex.
func FromPrivate(privHex string) (KeyPair, error) {
	priv, err := parsePrivate(privHex)
	if err != nil {
		return KeyPair{}, err
	}

	return KeyPair{
		PrivateKey: hex.EncodeToString(priv.Serialize()),
		PublicKey:  hex.EncodeToString(priv.PubKey().SerializeCompressed()),
	}, nil
}

// parsePrivate decodes and validates a hex private scalar. The scalar must be
// 32 bytes, non-zero and less than the group order.
func parsePrivate(privHex string) (*secp256k1.PrivateKey, error) {
	b, err := hex.DecodeString(privHex)
	if err != nil {
		return nil, fmt.Errorf("keys: %w: %v", ErrInvalidKey, err)
	}
	if len(b) != PrivateKeySize {
		return nil, fmt.Errorf("keys: %w: got %d bytes, want %d", ErrInvalidKey, len(b), PrivateKeySize)
	}

	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(b); overflow || s.IsZero() {
		return nil, fmt.Errorf("keys: %w: scalar out of range", ErrInvalidKey)
	}

	return secp256k1.NewPrivateKey(&s), nil
}

// parsePublic decodes a hex compressed or uncompressed public point.
func parsePublic(pubHex string) (*secp256k1.PublicKey, error) {
	b, err := hex.DecodeString(pubHex)
	if err != nil {
		return nil, fmt.Errorf("keys: %w: %v", ErrInvalidPublicKey, err)
	}

	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("keys: %w: %v", ErrInvalidPublicKey, err)
	}
	return pub, nil
}
