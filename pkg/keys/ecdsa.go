// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// HashHex returns the hex-encoded SHA-256 digest of data.
func HashHex(data []byte) string {
	d := sha256.Sum256(data)
	return hex.EncodeToString(d[:])
}

// SignDigest signs the hex-encoded 32-byte digest digestHex with the private
// scalar privHex, and returns the compact (r || s) signature as 128 hex
// characters. Signatures are deterministic per RFC 6979.
//
// If privHex is not a valid scalar, an error wrapping ErrInvalidKey is
// returned.
func SignDigest(privHex, digestHex string) (string, error) {
	priv, err := parsePrivate(privHex)
	if err != nil {
		return "", err
	}

	digest, err := hex.DecodeString(digestHex)
	if err != nil {
		return "", fmt.Errorf("keys: digest: %w", err)
	}
	if len(digest) != sha256.Size {
		return "", fmt.Errorf("keys: digest: got %d bytes, want %d", len(digest), sha256.Size)
	}

	// SignCompact prepends a recovery code to the (r || s) pair; only the
	// pair itself is part of the signature format here.
	compact := ecdsa.SignCompact(priv, digest, true)
	return hex.EncodeToString(compact[1:]), nil
}

// VerifyDigest reports whether sigHex is a valid compact signature over the
// hex-encoded digest digestHex by the public key pubHex. Malformed input of
// any kind yields false; VerifyDigest never returns an error.
func VerifyDigest(pubHex, digestHex, sigHex string) bool {
	pub, err := parsePublic(pubHex)
	if err != nil {
		return false
	}

	digest, err := hex.DecodeString(digestHex)
	if err != nil || len(digest) != sha256.Size {
		return false
	}

	sigBytes, err := hex.DecodeString(sigHex)
	if err != nil || len(sigBytes) != SignatureSize {
		return false
	}

	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sigBytes[:32]); overflow {
		return false
	}
	if overflow := s.SetByteSlice(sigBytes[32:]); overflow {
		return false
	}

	return ecdsa.NewSignature(&r, &s).Verify(digest, pub)
}
