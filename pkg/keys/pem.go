// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package keys

import (
	"bytes"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"
)

// PEM block types emitted and accepted by this codec.
const (
	PEMTypePublic  = "PUBLIC KEY"
	PEMTypePrivate = "PRIVATE KEY"
)

// ErrPEMMalformed is the error returned when input cannot be decoded as a PEM
// block of the expected type, or when a DER body cannot be placed in any
// supported shape.
var ErrPEMMalformed = errors.New("malformed PEM")

// UnsupportedLengthError records a decoded public key body whose length does
// not correspond to any supported key shape.
type UnsupportedLengthError struct {
	Len int // Body length in bytes.
}

func (e *UnsupportedLengthError) Error() string {
	return fmt.Sprintf("unsupported public key length: %d bytes", e.Len)
}

// Is compares e against target. If target is an UnsupportedLengthError and
// matches e or target has a zero value Len, true is returned.
func (e *UnsupportedLengthError) Is(target error) bool {
	t, ok := target.(*UnsupportedLengthError)
	if !ok {
		return false
	}
	return e.Len == t.Len || t.Len == 0
}

// spkiPrefix is the DER prefix of a SubjectPublicKeyInfo structure for a
// secp256k1 public key carried as a 33-byte compressed point:
//
//	SEQUENCE {
//	  SEQUENCE { OID id-ecPublicKey, OID secp256k1 }
//	  BIT STRING (0 unused bits) <33-byte point>
//	}
var spkiPrefix = []byte{
	0x30, 0x36,
	0x30, 0x10,
	0x06, 0x07, 0x2a, 0x86, 0x48, 0xce, 0x3d, 0x02, 0x01,
	0x06, 0x05, 0x2b, 0x81, 0x04, 0x00, 0x0a,
	0x03, 0x22, 0x00,
}

// compressedPointTag is the bit-string tag introducing a 33-byte compressed
// EC point within a SubjectPublicKeyInfo body.
var compressedPointTag = []byte{0x03, 0x22, 0x00}

// scalarTag is the octet-string tag introducing a 32-byte private scalar
// within a PKCS8 body.
var scalarTag = []byte{0x04, 0x20}

// ecAlgorithmID is the DER AlgorithmIdentifier for id-ecPublicKey over
// secp256k1.
var ecAlgorithmID = []byte{
	0x30, 0x10,
	0x06, 0x07, 0x2a, 0x86, 0x48, 0xce, 0x3d, 0x02, 0x01,
	0x06, 0x05, 0x2b, 0x81, 0x04, 0x00, 0x0a,
}

// IsPEM is a cheap structural check for the presence of PEM BEGIN and END
// markers in s.
func IsPEM(s string) bool {
	return strings.Contains(s, "-----BEGIN ") && strings.Contains(s, "-----END ")
}

// PublicToPEM encodes the hex compressed public point pubHex as a PEM block
// of type "PUBLIC KEY" containing a SubjectPublicKeyInfo structure.
func PublicToPEM(pubHex string) (string, error) {
	b, err := hex.DecodeString(pubHex)
	if err != nil {
		return "", fmt.Errorf("keys: %w: %v", ErrInvalidPublicKey, err)
	}
	if len(b) != PublicKeySize {
		return "", fmt.Errorf("keys: %w: got %d bytes, want %d", ErrInvalidPublicKey, len(b), PublicKeySize)
	}

	der := make([]byte, 0, len(spkiPrefix)+len(b))
	der = append(der, spkiPrefix...)
	der = append(der, b...)

	return string(pem.EncodeToMemory(&pem.Block{Type: PEMTypePublic, Bytes: der})), nil
}

// PrivateToPEM encodes the hex private scalar privHex as a PEM block of type
// "PRIVATE KEY" containing a PKCS8 structure that embeds the scalar and the
// derived compressed public point.
func PrivateToPEM(privHex string) (string, error) {
	priv, err := parsePrivate(privHex)
	if err != nil {
		return "", err
	}

	scalar := priv.Serialize()
	point := priv.PubKey().SerializeCompressed()

	// ECPrivateKey per SEC1: version, scalar, [1] public point.
	ecPriv := &bytes.Buffer{}
	ecPriv.Write([]byte{0x30, 0x4b})
	ecPriv.Write([]byte{0x02, 0x01, 0x01})
	ecPriv.Write(scalarTag)
	ecPriv.Write(scalar)
	ecPriv.Write([]byte{0xa1, 0x24})
	ecPriv.Write(compressedPointTag)
	ecPriv.Write(point)

	// PKCS8: version, AlgorithmIdentifier, ECPrivateKey in an octet string.
	der := &bytes.Buffer{}
	der.Write([]byte{0x30, 0x64})
	der.Write([]byte{0x02, 0x01, 0x00})
	der.Write(ecAlgorithmID)
	der.Write([]byte{0x04, 0x4d})
	der.Write(ecPriv.Bytes())

	return string(pem.EncodeToMemory(&pem.Block{Type: PEMTypePrivate, Bytes: der.Bytes()})), nil
}

// decodeBlock decodes the first PEM block in s and checks its type.
func decodeBlock(s, wantType string) ([]byte, error) {
	block, _ := pem.Decode([]byte(s))
	if block == nil {
		return nil, fmt.Errorf("keys: %w: no PEM block found", ErrPEMMalformed)
	}
	if block.Type != wantType {
		return nil, fmt.Errorf("keys: %w: got type %q, want %q", ErrPEMMalformed, block.Type, wantType)
	}
	return block.Bytes, nil
}

// PEMToPublic decodes a public key PEM block to the hex compressed point.
//
// The decoder is tolerant of the public key shapes emitted by third-party
// producers: PKIX SubjectPublicKeyInfo, a raw compressed point, a raw
// 32-byte X coordinate (assumed even Y), and a raw uncompressed point.
// Canonical output is always the compressed 33-byte form where the input
// shape permits it.
func PEMToPublic(s string) (string, error) {
	b, err := decodeBlock(s, PEMTypePublic)
	if err != nil {
		return "", err
	}

	// SPKI: the compressed point follows the bit-string tag.
	if i := bytes.Index(b, compressedPointTag); i >= 0 && len(b) >= i+len(compressedPointTag)+PublicKeySize {
		point := b[i+len(compressedPointTag) : i+len(compressedPointTag)+PublicKeySize]
		return hex.EncodeToString(point), nil
	}

	switch {
	case len(b) == PublicKeySize && (b[0] == 0x02 || b[0] == 0x03):
		return hex.EncodeToString(b), nil

	case len(b) == 32:
		// X coordinate only; assume even Y.
		point := make([]byte, 0, PublicKeySize)
		point = append(point, 0x02)
		point = append(point, b...)
		return hex.EncodeToString(point), nil

	case len(b) == 65 && b[0] == 0x04:
		// Uncompressed; compress using the parity of Y.
		prefix := byte(0x02)
		if b[64]&1 == 1 {
			prefix = 0x03
		}
		point := make([]byte, 0, PublicKeySize)
		point = append(point, prefix)
		point = append(point, b[1:33]...)
		return hex.EncodeToString(point), nil

	case len(b) > 32 && len(b) < 65:
		return hex.EncodeToString(b), nil
	}

	return "", fmt.Errorf("keys: %w", &UnsupportedLengthError{Len: len(b)})
}

// PEMToPrivate decodes a private key PEM block to the hex 32-byte scalar. The
// decoder accepts PKCS8 bodies (including the historical variants that differ
// in their DER prefix) and raw 32-byte scalars.
func PEMToPrivate(s string) (string, error) {
	b, err := decodeBlock(s, PEMTypePrivate)
	if err != nil {
		return "", err
	}

	if i := bytes.Index(b, scalarTag); i >= 0 && len(b) >= i+len(scalarTag)+PrivateKeySize {
		scalar := b[i+len(scalarTag) : i+len(scalarTag)+PrivateKeySize]
		return hex.EncodeToString(scalar), nil
	}

	if len(b) == PrivateKeySize {
		return hex.EncodeToString(b), nil
	}

	return "", fmt.Errorf("keys: %w: no private scalar found", ErrPEMMalformed)
}
